package tabular

import "strings"

// Record is one row of input data keyed by the actual column labels.
type Record map[string]string

// Table holds a loaded tabular dataset. Columns keeps the original
// header order; Rows keep the original row order.
type Table struct {
	Columns []string
	Rows    []Record
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether the table contains the exact column label.
func (t *Table) HasColumn(label string) bool {
	for _, col := range t.Columns {
		if col == label {
			return true
		}
	}
	return false
}

// CleanCell normalizes a raw cell value. Missing values, empty strings and
// the literal text "nan" (any case) all collapse to "" so downstream lookups
// treat them as "no answer".
func CleanCell(raw string) string {
	value := strings.TrimSpace(raw)
	if strings.EqualFold(value, "nan") {
		return ""
	}
	return value
}
