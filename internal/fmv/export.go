package fmv

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/medcomply/fmv-calc/internal/scoring"
	"github.com/medcomply/fmv-calc/internal/tabular"
)

const resultsSheet = "Sheet1"

// resultHeaders replicates the legacy results workbook column layout,
// artifacts included ("_x000D_" came from the upstream export and
// consumers key on it).
var resultHeaders = []string{
	"i",
	"HCP Name",
	"Years of experience in the Specialty / Super Specialty?_x000D_\n",
	"Clinical Experience: i.e. Time Spent with Patients?",
	"Leadership position(s) in a Professional or Scientific Society and/or leadership position(s) in Hospital or other Patient Care Settings (e.g. Department Head or Chief, Medical Director, Lab Direct...",
	"Geographic influence as a Key Opinion Leader.",
	"Highest Academic Position Held in past 10 years",
	"Additional Educational Level",
	"Research Experience (e.g., industry-sponsored research, investigator-initiated research, other research) in past 10 years",
	"Publication experience in the past 10 years",
	"Speaking experience (professional, academic, scientific, or media experience) in the past 10 years.",
	"Score based on selection mentioned criteria",
	"Score 1",
	"Score 2",
	"Score 3",
	"Score 4",
	"Score 5",
	"Score 6",
	"Score 7",
	"Score 8",
	"Score 9",
	"Range",
	"Tier",
	"Rate of Honorarium",
	"Specialty / Super Specialty",
	"HCP Email",
	"Educational Qualification",
}

// WriteResults dumps the rows field-for-field into a single-sheet xlsx.
func WriteResults(path string, rows []ResultRow) error {
	f := excelize.NewFile()
	defer f.Close()

	out := make([][]any, 0, len(rows))
	for _, row := range rows {
		record := []any{
			row.Index,
			row.Name,
		}
		for _, criterion := range scoring.Criteria() {
			record = append(record, row.Answers[criterion])
		}
		record = append(record, row.Scores.Total)
		for _, criterion := range scoring.Criteria() {
			record = append(record, row.Scores.Sub[criterion])
		}
		record = append(record,
			row.Range,
			row.Tier.String(),
			row.Rate,
			row.Specialty,
			row.Email,
			row.Qualification,
		)
		out = append(out, record)
	}

	if err := tabular.WriteSheet(f, resultsSheet, resultHeaders, out); err != nil {
		return fmt.Errorf("writing results sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}

	return nil
}

// LogSummary reports batch totals the way operators eyeball a run: count,
// average score, total payout and the tier distribution.
func LogSummary(rows []ResultRow, logger *zap.Logger) {
	if len(rows) == 0 {
		logger.Info("no records produced")
		return
	}

	totalRate := 0
	totalScore := 0
	tiers := make(map[string]int)
	for _, row := range rows {
		totalRate += row.Rate
		totalScore += row.Scores.Total
		tiers[row.Tier.String()]++
	}

	tierFields := make([]zap.Field, 0, len(tiers))
	names := make([]string, 0, len(tiers))
	for name := range tiers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		tierFields = append(tierFields, zap.Int(name, tiers[name]))
	}

	logger.Info("batch summary",
		append([]zap.Field{
			zap.Int("records", len(rows)),
			zap.Float64("average_score", float64(totalScore)/float64(len(rows))),
			zap.Int("total_honorarium", totalRate),
		}, tierFields...)...,
	)
}
