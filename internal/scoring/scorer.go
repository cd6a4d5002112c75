package scoring

import "github.com/medcomply/fmv-calc/internal/tabular"

// ScoreSet holds the nine per-criterion sub-scores of one record plus
// their sum. Total is always the arithmetic sum of the sub-scores and
// lies in [0, 54].
type ScoreSet struct {
	Sub   map[Criterion]int
	Total int
}

// Score evaluates one record against the lexicon. Missing columns, empty
// cells and "nan" values all read as "no answer" and score 0; unknown
// answer text also scores 0. There is no error path.
func Score(r tabular.Record, columns tabular.ColumnMap, lexicon Lexicon) ScoreSet {
	set := ScoreSet{Sub: make(map[Criterion]int, len(Criteria()))}
	for _, criterion := range Criteria() {
		answer := columns.Value(r, criterion.Field())
		score := lexicon.Score(criterion, answer)
		set.Sub[criterion] = score
		set.Total += score
	}
	return set
}
