// Package fmv drives the per-record scoring batch: score, classify,
// resolve a rate and assemble output rows, isolating per-record failures.
package fmv

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/medcomply/fmv-calc/internal/rates"
	"github.com/medcomply/fmv-calc/internal/scoring"
	"github.com/medcomply/fmv-calc/internal/tabular"
)

// ResultRow is one scored output record. Rows are assembled once and
// never mutated; Index keeps the record's 1-based position in the input,
// so skipped records leave gaps.
type ResultRow struct {
	Index         int
	Name          string
	Email         string
	Qualification string
	Specialty     string
	// Answers carries the raw free-text answer per criterion, exactly as
	// it appeared in the input.
	Answers map[scoring.Criterion]string
	Scores  scoring.ScoreSet
	// Range is the "N-N" label the legacy workbook carried per row.
	Range string
	Tier  scoring.Tier
	Rate  int
}

// Processor runs the batch. All of its inputs are read-only after
// construction.
type Processor struct {
	lexicon  scoring.Lexicon
	resolver *rates.Resolver
	logger   *zap.Logger
}

func NewProcessor(lexicon scoring.Lexicon, resolver *rates.Resolver, logger *zap.Logger) *Processor {
	return &Processor{
		lexicon:  lexicon,
		resolver: resolver,
		logger:   logger,
	}
}

// Process scores every record in input order. A record that fails is
// logged with its name and row index and skipped; the batch continues.
// The returned rows keep input order minus skips.
func (p *Processor) Process(t *tabular.Table, columns tabular.ColumnMap) []ResultRow {
	results := make([]ResultRow, 0, t.Len())
	for i, record := range t.Rows {
		index := i + 1
		row, err := p.processRecord(record, columns, index)
		if err != nil {
			p.logger.Error("skipping record",
				zap.Int("row", index),
				zap.String("hcp_name", columns.Value(record, tabular.FieldName)),
				zap.Error(err),
			)
			continue
		}
		results = append(results, row)
	}
	return results
}

func (p *Processor) processRecord(record tabular.Record, columns tabular.ColumnMap, index int) (row ResultRow, err error) {
	// A malformed record must never abort the batch.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("processing record: %v", r)
		}
	}()

	set := scoring.Score(record, columns, p.lexicon)
	tier := scoring.ClassifyTier(set.Total)
	specialty := columns.Value(record, tabular.FieldSpecialty)
	resolution := p.resolver.Resolve(specialty, tier)

	answers := make(map[scoring.Criterion]string, len(scoring.Criteria()))
	for _, criterion := range scoring.Criteria() {
		answers[criterion] = rawValue(record, columns, criterion.Field())
	}

	return ResultRow{
		Index:         index,
		Name:          rawValue(record, columns, tabular.FieldName),
		Email:         rawValue(record, columns, tabular.FieldEmail),
		Qualification: rawValue(record, columns, tabular.FieldQualification),
		Specialty:     specialty,
		Answers:       answers,
		Scores:        set,
		Range:         fmt.Sprintf("%d-%d", set.Total, set.Total),
		Tier:          tier,
		Rate:          resolution.Rate,
	}, nil
}

// rawValue reads the uncleaned cell so output rows echo the input verbatim.
func rawValue(record tabular.Record, columns tabular.ColumnMap, field tabular.Field) string {
	col, ok := columns.Column(field)
	if !ok {
		return ""
	}
	return record[col]
}
