package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// encodingCandidate pairs a name (for logs) with a decoder. A nil decoder
// means the bytes are used as-is and only need to be valid UTF-8.
type encodingCandidate struct {
	name    string
	decoder *encoding.Decoder
}

// Survey dumps arrive in whatever encoding the exporting tool felt like
// using, so loading tries a fixed chain and keeps the first that decodes.
func encodingCandidates() []encodingCandidate {
	return []encodingCandidate{
		{name: "utf-8", decoder: nil},
		{name: "latin-1", decoder: charmap.ISO8859_1.NewDecoder()},
		{name: "cp1252", decoder: charmap.Windows1252.NewDecoder()},
		{name: "iso-8859-1", decoder: charmap.ISO8859_1.NewDecoder()},
	}
}

// LoadCSV reads a CSV file into a Table, trying each candidate encoding in
// order. Every cell is kept as its raw string; no type coercion happens here.
func LoadCSV(path string, logger *zap.Logger) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var lastErr error
	for _, candidate := range encodingCandidates() {
		table, err := parseCSV(raw, candidate.decoder)
		if err != nil {
			lastErr = err
			continue
		}
		if logger != nil {
			logger.Info("loaded csv",
				zap.String("path", path),
				zap.String("encoding", candidate.name),
				zap.Int("records", table.Len()),
			)
		}
		return table, nil
	}

	return nil, fmt.Errorf("decoding %s with any supported encoding: %w", path, lastErr)
}

func parseCSV(raw []byte, decoder *encoding.Decoder) (*Table, error) {
	data := raw
	if decoder != nil {
		decoded, _, err := transform.Bytes(decoder, raw)
		if err != nil {
			return nil, fmt.Errorf("decode: %w", err)
		}
		data = decoded
	} else if !utf8.Valid(raw) {
		return nil, fmt.Errorf("decode: invalid utf-8")
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	table := &Table{Columns: header}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row: %w", err)
		}

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
