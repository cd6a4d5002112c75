package fmv

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/medcomply/fmv-calc/internal/tabular"
)

// CleanRecords enforces the identity contract on the input table before
// scoring: the email column must exist, emails are trimmed and lowercased
// in place, rows without a usable email are dropped, and duplicate emails
// keep their first occurrence. Returns a new table; the input is not
// modified beyond the normalized email cells.
func CleanRecords(t *tabular.Table, columns tabular.ColumnMap, logger *zap.Logger) (*tabular.Table, error) {
	emailCol, ok := columns.Column(tabular.FieldEmail)
	if !ok {
		return nil, fmt.Errorf("email column not found in input table")
	}

	cleaned := &tabular.Table{Columns: t.Columns}
	seen := make(map[string]bool, t.Len())
	dropped := 0

	for i, record := range t.Rows {
		email := strings.ToLower(tabular.CleanCell(record[emailCol]))
		if email == "" {
			dropped++
			logger.Warn("dropping record without email", zap.Int("row", i+1))
			continue
		}
		if seen[email] {
			dropped++
			logger.Warn("dropping duplicate email",
				zap.Int("row", i+1),
				zap.String("email", email),
			)
			continue
		}
		seen[email] = true

		record[emailCol] = email
		cleaned.Rows = append(cleaned.Rows, record)
	}

	if dropped > 0 {
		logger.Info("cleaned input records",
			zap.Int("kept", cleaned.Len()),
			zap.Int("dropped", dropped),
		)
	}

	return cleaned, nil
}
