package fmv

import (
	"testing"

	"go.uber.org/zap"

	"github.com/medcomply/fmv-calc/internal/rates"
	"github.com/medcomply/fmv-calc/internal/scoring"
	"github.com/medcomply/fmv-calc/internal/tabular"
)

const (
	nameCol      = "HCP Name"
	emailCol     = "HCP Email"
	specialtyCol = "Specialty / Super Specialty"
)

func testColumns() tabular.ColumnMap {
	columns := tabular.ColumnMap{
		tabular.FieldName:      nameCol,
		tabular.FieldEmail:     emailCol,
		tabular.FieldSpecialty: specialtyCol,
	}
	for _, criterion := range scoring.Criteria() {
		columns[criterion.Field()] = string(criterion)
	}
	return columns
}

func testRates() *rates.Resolver {
	return rates.NewResolver(rates.NewTable([]rates.Row{
		{
			Specialty: "Cardiology",
			Cells: map[string]string{
				"Tier 1": "8000",
				"Tier 2": "10000",
				"Tier 3": "15000",
				"Tier 4": "20000",
			},
		},
	}), zap.NewNop())
}

// answersScoring returns a record whose nine criterion answers all map to
// the given score in the default lexicon.
func answersScoring(t *testing.T, score int) tabular.Record {
	t.Helper()

	lexicon := scoring.DefaultLexicon()
	record := tabular.Record{}
	for _, criterion := range scoring.Criteria() {
		found := false
		for phrase, s := range lexicon[criterion] {
			if s == score {
				record[string(criterion)] = phrase
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("criterion %q has no phrase scoring %d", criterion, score)
		}
	}
	return record
}

func TestProcessScoresTiersAndRates(t *testing.T) {
	t.Parallel()

	lowest := answersScoring(t, 0)
	lowest[nameCol] = "Dr. Low"
	lowest[emailCol] = "low@example.com"

	highest := answersScoring(t, 6)
	highest[nameCol] = "Dr. High"
	highest[emailCol] = "high@example.com"
	highest[specialtyCol] = "Cardiology"

	table := &tabular.Table{Rows: []tabular.Record{lowest, highest}}
	processor := NewProcessor(scoring.DefaultLexicon(), testRates(), zap.NewNop())

	results := processor.Process(table, testColumns())

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	low := results[0]
	if low.Scores.Total != 0 {
		t.Fatalf("expected total 0, got %d", low.Scores.Total)
	}
	if low.Tier != scoring.Tier1 {
		t.Fatalf("expected Tier 1, got %s", low.Tier)
	}
	if low.Rate != 5000 {
		t.Fatalf("expected default rate 5000, got %d", low.Rate)
	}
	if low.Range != "0-0" {
		t.Fatalf("expected range 0-0, got %q", low.Range)
	}

	high := results[1]
	if high.Scores.Total != 54 {
		t.Fatalf("expected total 54, got %d", high.Scores.Total)
	}
	if high.Tier != scoring.Tier4 {
		t.Fatalf("expected Tier 4, got %s", high.Tier)
	}
	if high.Rate != 20000 {
		t.Fatalf("expected table rate 20000, got %d", high.Rate)
	}
	if high.Name != "Dr. High" {
		t.Fatalf("expected name carried through, got %q", high.Name)
	}
}

func TestProcessRecordWithNoDataStillProduces(t *testing.T) {
	t.Parallel()

	table := &tabular.Table{Rows: []tabular.Record{{emailCol: "empty@example.com"}}}
	processor := NewProcessor(scoring.DefaultLexicon(), testRates(), zap.NewNop())

	results := processor.Process(table, testColumns())

	if len(results) != 1 {
		t.Fatalf("a record without answers must still produce a row, got %d rows", len(results))
	}
	row := results[0]
	if row.Scores.Total != 0 || row.Tier != scoring.Tier1 || row.Rate != 5000 {
		t.Fatalf("expected zero score, Tier 1 and default rate, got total=%d tier=%s rate=%d",
			row.Scores.Total, row.Tier, row.Rate)
	}
}

func TestProcessSkipsFailingRecordAndKeepsOrder(t *testing.T) {
	t.Parallel()

	// A resolver without a table panics as soon as a lookup actually
	// touches the table, which only happens for non-blank specialties.
	// That makes the middle record fail while its neighbors succeed.
	broken := rates.NewResolver(nil, zap.NewNop())

	first := answersScoring(t, 0)
	first[nameCol] = "Dr. First"
	first[emailCol] = "first@example.com"

	poison := tabular.Record{
		nameCol:      "Dr. Poison",
		emailCol:     "poison@example.com",
		specialtyCol: "Cardiology",
	}

	third := answersScoring(t, 6)
	third[nameCol] = "Dr. Third"
	third[emailCol] = "third@example.com"

	table := &tabular.Table{Rows: []tabular.Record{first, poison, third}}
	processor := NewProcessor(scoring.DefaultLexicon(), broken, zap.NewNop())

	results := processor.Process(table, testColumns())

	if len(results) != 2 {
		t.Fatalf("expected the failing record to be skipped, got %d rows", len(results))
	}
	if results[0].Name != "Dr. First" || results[1].Name != "Dr. Third" {
		t.Fatalf("expected surviving records in input order, got %q then %q",
			results[0].Name, results[1].Name)
	}
	if results[0].Index != 1 || results[1].Index != 3 {
		t.Fatalf("expected original indexes 1 and 3, got %d and %d",
			results[0].Index, results[1].Index)
	}
	if results[1].Rate != 12000 {
		t.Fatalf("expected Tier 4 default 12000, got %d", results[1].Rate)
	}
}

func TestProcessEchoesRawAnswers(t *testing.T) {
	t.Parallel()

	record := tabular.Record{
		emailCol:                        "raw@example.com",
		string(scoring.YearsExperience): "  15+ years of experience  ",
	}
	table := &tabular.Table{Rows: []tabular.Record{record}}
	processor := NewProcessor(scoring.DefaultLexicon(), testRates(), zap.NewNop())

	results := processor.Process(table, testColumns())
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	// The output answer keeps the original cell text, untrimmed.
	if got := results[0].Answers[scoring.YearsExperience]; got != "  15+ years of experience  " {
		t.Fatalf("expected raw answer preserved, got %q", got)
	}
}
