// Package report extracts the monthly tabular summaries (division FMV
// status, consent status, HCP overlap, chronically missed HCPs) from the
// operational workbooks. Rendering them into slides is out of scope; the
// output is a plain summary workbook.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/medcomply/fmv-calc/internal/tabular"
)

const (
	workingCLTSheet     = "CLT"
	workingConsentSheet = "consent"
	missingSheet        = "New Visual"

	divisionHeader        = "Division"
	overlapDivisionColumn = "User: Division Name"

	maxDivisionRows = 10
	maxConsentRows  = 10
	maxOverlapRows  = 13
	maxMissedRows   = 12
)

// Section is one extracted summary table.
type Section struct {
	Name    string
	Headers []string
	Rows    [][]any
}

// Sources names the workbooks a monthly report is built from. Empty paths
// skip their sections.
type Sources struct {
	WorkingFile string
	OverlapFile string
	MissingFile string
}

// Extract builds all summary sections it can. A missing file or a sheet
// without the expected shape skips that section with a warning; it never
// fails the report as a whole.
func Extract(src Sources, logger *zap.Logger) []Section {
	type extraction struct {
		name string
		path string
		run  func(path string) (Section, error)
	}

	extractions := []extraction{
		{name: "Project FMV", path: src.WorkingFile, run: extractDivisionFMV},
		{name: "Consent Status", path: src.WorkingFile, run: extractConsent},
		{name: "HCP Overlap", path: src.OverlapFile, run: extractOverlap},
		{name: "Missed HCP", path: src.MissingFile, run: extractMissed},
	}

	sections := make([]Section, 0, len(extractions))
	for _, e := range extractions {
		if e.path == "" {
			logger.Warn("skipping report section", zap.String("section", e.name), zap.String("reason", "no source file configured"))
			continue
		}
		section, err := e.run(e.path)
		if err != nil {
			logger.Warn("skipping report section",
				zap.String("section", e.name),
				zap.String("path", e.path),
				zap.Error(err),
			)
			continue
		}
		logger.Info("extracted report section",
			zap.String("section", e.name),
			zap.Int("rows", len(section.Rows)),
		)
		sections = append(sections, section)
	}

	return sections
}

// extractDivisionFMV pulls the division completion table from the CLT
// sheet. The table does not start at a fixed row; it is located by
// scanning for the row that carries the "Division" header.
func extractDivisionFMV(path string) (Section, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Section{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(workingCLTSheet)
	if err != nil {
		return Section{}, fmt.Errorf("reading sheet %q: %w", workingCLTSheet, err)
	}

	headerRow := -1
	for i, row := range rows {
		for _, cell := range row {
			if strings.Contains(strings.TrimSpace(cell), divisionHeader) {
				headerRow = i
				break
			}
		}
		if headerRow != -1 {
			break
		}
	}
	if headerRow == -1 {
		return Section{}, fmt.Errorf("no %q header found in sheet %q", divisionHeader, workingCLTSheet)
	}

	section := Section{
		Name:    "Project FMV",
		Headers: []string{"Division Name", "% Response updated"},
	}
	for _, row := range rows[headerRow+1:] {
		if len(section.Rows) == maxDivisionRows {
			break
		}
		if len(row) < 2 {
			continue
		}
		division := strings.TrimSpace(row[0])
		value := strings.TrimSpace(row[1])
		if division == "" || division == divisionHeader {
			continue
		}
		section.Rows = append(section.Rows, []any{division, formatPercent(value)})
	}

	return section, nil
}

func extractConsent(path string) (Section, error) {
	table, err := tabular.LoadSheet(path, workingConsentSheet, 0)
	if err != nil {
		return Section{}, err
	}

	wanted := []string{"Division Name", "DVL", "# HCP Consent", "Consent Require", "% Consent Require"}
	available := make([]string, 0, len(wanted))
	for _, col := range wanted {
		if table.HasColumn(col) {
			available = append(available, col)
		}
	}
	if len(available) < 3 {
		return Section{}, fmt.Errorf("sheet %q is missing required columns", workingConsentSheet)
	}

	section := Section{Name: "Consent Status", Headers: available}
	for _, record := range table.Rows {
		if len(section.Rows) == maxConsentRows {
			break
		}
		row := make([]any, len(available))
		for i, col := range available {
			value := record[col]
			if strings.HasPrefix(col, "%") {
				value = formatPercent(value)
			}
			row[i] = value
		}
		section.Rows = append(section.Rows, row)
	}

	return section, nil
}

// extractOverlap groups the overlap dump by division and keeps the largest
// counts. Ties keep first-seen order so reruns are stable.
func extractOverlap(path string) (Section, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return Section{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Section{}, fmt.Errorf("%s has no sheets", path)
	}

	table, err := tabular.LoadSheet(path, sheets[0], 0)
	if err != nil {
		return Section{}, err
	}
	if !table.HasColumn(overlapDivisionColumn) {
		return Section{}, fmt.Errorf("sheet %q has no %q column", sheets[0], overlapDivisionColumn)
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, record := range table.Rows {
		division := strings.TrimSpace(record[overlapDivisionColumn])
		if division == "" {
			continue
		}
		if _, ok := counts[division]; !ok {
			order = append(order, division)
		}
		counts[division]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > maxOverlapRows {
		order = order[:maxOverlapRows]
	}

	section := Section{
		Name:    "HCP Overlap",
		Headers: []string{"Division Name", "Count"},
	}
	for _, division := range order {
		section.Rows = append(section.Rows, []any{division, counts[division]})
	}

	return section, nil
}

// missedRow mirrors the "New Visual" sheet columns, source typo included.
type missedRow struct {
	Division string `mapstructure:"Divison Name"`
	Missing  string `mapstructure:"Chronically missing"`
	Strength string `mapstructure:"Strength"`
	Percent  string `mapstructure:"%"`
}

func extractMissed(path string) (Section, error) {
	table, err := tabular.LoadSheet(path, missingSheet, 0)
	if err != nil {
		return Section{}, err
	}

	for _, col := range []string{"Divison Name", "Chronically missing", "Strength", "%"} {
		if !table.HasColumn(col) {
			return Section{}, fmt.Errorf("sheet %q has no %q column", missingSheet, col)
		}
	}

	section := Section{
		Name:    "Missed HCP",
		Headers: []string{"Division", "#HCPs Missed", "Strength", "%"},
	}
	for _, record := range table.Rows {
		if len(section.Rows) == maxMissedRows {
			break
		}
		var row missedRow
		if err := mapstructure.Decode(record, &row); err != nil {
			return Section{}, fmt.Errorf("decoding missed row: %w", err)
		}
		section.Rows = append(section.Rows, []any{
			row.Division,
			row.Missing,
			row.Strength,
			formatPercent(row.Percent),
		})
	}

	return section, nil
}

// Write saves the sections as a multi-sheet workbook.
func Write(path string, sections []Section) error {
	if len(sections) == 0 {
		return fmt.Errorf("no sections to write")
	}

	f := excelize.NewFile()
	defer f.Close()

	for _, section := range sections {
		if err := tabular.WriteSheet(f, section.Name, section.Headers, section.Rows); err != nil {
			return fmt.Errorf("section %q: %w", section.Name, err)
		}
	}

	// Drop the workbook's default sheet unless a section claimed the name.
	if err := deleteDefaultSheet(f, sections); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}

	return nil
}

func deleteDefaultSheet(f *excelize.File, sections []Section) error {
	for _, section := range sections {
		if section.Name == "Sheet1" {
			return nil
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("dropping default sheet: %w", err)
	}
	return nil
}

// formatPercent renders numeric cells as "NN.NN%"; already-formatted or
// non-numeric values pass through unchanged.
func formatPercent(value string) string {
	value = strings.TrimSpace(value)
	if value == "" || strings.HasSuffix(value, "%") {
		return value
	}
	var f float64
	if _, err := fmt.Sscanf(value, "%g", &f); err != nil {
		return value
	}
	return fmt.Sprintf("%.2f%%", f)
}
