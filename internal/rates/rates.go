// Package rates resolves honorarium rates from a specialty-indexed rate
// table. Resolution is total: every miss degrades to a per-tier default
// instead of failing.
package rates

import (
	"fmt"

	"github.com/medcomply/fmv-calc/internal/scoring"
	"github.com/medcomply/fmv-calc/internal/tabular"
)

const (
	countryColumn   = "Country"
	specialtyColumn = "HCP Specialty"
)

// Row is one specialty entry of the rate table. Cells keeps the raw cell
// text per tier label; parsing is deferred to resolution time so a bad
// cell only affects lookups that actually hit it.
type Row struct {
	Specialty string
	Cells     map[string]string
}

// Table is the jurisdiction-filtered rate table. Row order follows the
// source sheet, which matters: the substring match stage picks the first
// row in table order.
type Table struct {
	rows []Row
}

// NewTable builds a table directly from rows, preserving their order.
func NewTable(rows []Row) *Table {
	return &Table{rows: rows}
}

func (t *Table) Len() int {
	return len(t.rows)
}

// Load reads the rate sheet from an xlsx workbook and keeps only the rows
// of the requested country. The sheet carries a title row above the real
// header, hence the offset of one.
func Load(path, sheet, country string) (*Table, error) {
	src, err := tabular.LoadSheet(path, sheet, 1)
	if err != nil {
		return nil, fmt.Errorf("loading rate table: %w", err)
	}

	if !src.HasColumn(specialtyColumn) {
		return nil, fmt.Errorf("rate sheet %q has no %q column", sheet, specialtyColumn)
	}

	table := &Table{}
	for _, record := range src.Rows {
		if tabular.CleanCell(record[countryColumn]) != country {
			continue
		}

		cells := make(map[string]string, len(src.Columns))
		for _, col := range src.Columns {
			if col == countryColumn || col == specialtyColumn {
				continue
			}
			cells[col] = record[col]
		}

		table.rows = append(table.rows, Row{
			Specialty: tabular.CleanCell(record[specialtyColumn]),
			Cells:     cells,
		})
	}

	if table.Len() == 0 {
		return nil, fmt.Errorf("rate sheet %q has no rows for country %q", sheet, country)
	}

	return table, nil
}

// DefaultRate is the conservative per-tier fallback used whenever the
// table cannot produce a rate.
func DefaultRate(tier scoring.Tier) int {
	switch tier {
	case scoring.Tier2:
		return 7000
	case scoring.Tier3:
		return 9000
	case scoring.Tier4:
		return 12000
	default:
		return 5000
	}
}
