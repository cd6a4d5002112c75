package tabular

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// LoadSheet reads one sheet of an xlsx workbook into a Table. headerOffset
// is the number of leading rows to skip before the header row (the rate
// workbook carries a title row above its real header).
func LoadSheet(path, sheet string, headerOffset int) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q of %s: %w", sheet, path, err)
	}

	if len(rows) <= headerOffset {
		return nil, fmt.Errorf("sheet %q of %s has no header row", sheet, path)
	}

	header := rows[headerOffset]
	table := &Table{Columns: header}
	for _, row := range rows[headerOffset+1:] {
		record := make(Record, len(header))
		for i, col := range header {
			if i < len(row) {
				record[col] = row[i]
			}
		}
		table.Rows = append(table.Rows, record)
	}

	return table, nil
}

// WriteSheet writes headers plus string rows into a sheet of the given
// workbook, creating the sheet when absent.
func WriteSheet(f *excelize.File, sheet string, headers []string, rows [][]any) error {
	index, err := f.GetSheetIndex(sheet)
	if err != nil {
		return fmt.Errorf("looking up sheet %q: %w", sheet, err)
	}
	if index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("creating sheet %q: %w", sheet, err)
		}
	}

	head := make([]any, len(headers))
	for i, h := range headers {
		head[i] = h
	}
	if err := writeRow(f, sheet, 1, head); err != nil {
		return err
	}

	for i, row := range rows {
		if err := writeRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}

	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("row %d: %w", rowNum, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing row %d of %q: %w", rowNum, sheet, err)
	}
	return nil
}
