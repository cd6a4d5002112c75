package report

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func writeWorkbook(t *testing.T, name string, sheets map[string][][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	first := true
	for sheet, rows := range sheets {
		if first {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				t.Fatalf("renaming sheet: %v", err)
			}
			first = false
		} else if _, err := f.NewSheet(sheet); err != nil {
			t.Fatalf("creating sheet: %v", err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetSheetRow(sheet, cell, &row); err != nil {
				t.Fatalf("writing row: %v", err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("saving workbook: %v", err)
	}
	return path
}

func writeWorkingFile(t *testing.T) string {
	t.Helper()
	return writeWorkbook(t, "working.xlsx", map[string][][]any{
		"CLT": {
			{"AIL LT Working file"},
			{""},
			{"Division", "Total Dis"},
			{"North", 92.5},
			{"South", 87},
			{""},
		},
		"consent": {
			{"Division Name", "DVL", "# HCP Consent", "Consent Require", "% Consent Require"},
			{"North", "ND", 120, 150, 80},
			{"South", "SD", 90, 100, 90},
		},
	})
}

func TestExtractDivisionFMVFindsHeaderRow(t *testing.T) {
	t.Parallel()

	section, err := extractDivisionFMV(writeWorkingFile(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(section.Rows) != 2 {
		t.Fatalf("expected 2 data rows, got %d", len(section.Rows))
	}
	if section.Rows[0][0] != "North" {
		t.Fatalf("expected North first, got %v", section.Rows[0][0])
	}
	if section.Rows[0][1] != "92.50%" {
		t.Fatalf("expected formatted percentage, got %v", section.Rows[0][1])
	}
}

func TestExtractConsent(t *testing.T) {
	t.Parallel()

	section, err := extractConsent(writeWorkingFile(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(section.Headers) != 5 {
		t.Fatalf("expected all 5 consent columns, got %d", len(section.Headers))
	}
	if len(section.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(section.Rows))
	}
	if section.Rows[1][0] != "South" {
		t.Fatalf("expected South, got %v", section.Rows[1][0])
	}
}

func TestExtractOverlapGroupsAndSorts(t *testing.T) {
	t.Parallel()

	path := writeWorkbook(t, "overlap.xlsx", map[string][][]any{
		"dump": {
			{"User: Division Name", "HCP"},
			{"South", "h1"},
			{"North", "h2"},
			{"South", "h3"},
			{"East", "h4"},
			{"South", "h5"},
			{"North", "h6"},
		},
	})

	section, err := extractOverlap(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(section.Rows) != 3 {
		t.Fatalf("expected 3 divisions, got %d", len(section.Rows))
	}
	if section.Rows[0][0] != "South" || section.Rows[0][1] != 3 {
		t.Fatalf("expected South with count 3 first, got %v", section.Rows[0])
	}
	if section.Rows[1][0] != "North" || section.Rows[1][1] != 2 {
		t.Fatalf("expected North with count 2 second, got %v", section.Rows[1])
	}
}

func TestExtractMissed(t *testing.T) {
	t.Parallel()

	path := writeWorkbook(t, "missing.xlsx", map[string][][]any{
		"New Visual": {
			{"Divison Name", "Chronically missing", "Strength", "%"},
			{"North", 12, 300, 4},
			{"South", 7, 250, 2.8},
		},
	})

	section, err := extractMissed(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(section.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(section.Rows))
	}
	if section.Rows[0][3] != "4.00%" {
		t.Fatalf("expected formatted percentage, got %v", section.Rows[0][3])
	}
}

func TestExtractSkipsBrokenSources(t *testing.T) {
	t.Parallel()

	sections := Extract(Sources{
		WorkingFile: writeWorkingFile(t),
		OverlapFile: "",
		MissingFile: filepath.Join(t.TempDir(), "absent.xlsx"),
	}, zap.NewNop())

	if len(sections) != 2 {
		t.Fatalf("expected the two working-file sections, got %d", len(sections))
	}
	if sections[0].Name != "Project FMV" || sections[1].Name != "Consent Status" {
		t.Fatalf("unexpected sections: %q, %q", sections[0].Name, sections[1].Name)
	}
}

func TestWriteReport(t *testing.T) {
	t.Parallel()

	sections := Extract(Sources{WorkingFile: writeWorkingFile(t)}, zap.NewNop())
	path := filepath.Join(t.TempDir(), "summary.xlsx")

	if err := Write(path, sections); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopening summary: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Project FMV")
	if err != nil {
		t.Fatalf("reading summary sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}

	for _, sheet := range f.GetSheetList() {
		if sheet == "Sheet1" {
			t.Fatalf("default sheet should have been dropped")
		}
	}
}

func TestWriteReportRequiresSections(t *testing.T) {
	t.Parallel()

	if err := Write(filepath.Join(t.TempDir(), "empty.xlsx"), nil); err == nil {
		t.Fatalf("expected error for empty report")
	}
}

func TestFormatPercent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		value  string
		expect string
	}{
		{name: "plain number", value: "92.5", expect: "92.50%"},
		{name: "integer", value: "87", expect: "87.00%"},
		{name: "already formatted", value: "80.00%", expect: "80.00%"},
		{name: "text passes through", value: "n/a", expect: "n/a"},
		{name: "empty", value: "", expect: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := formatPercent(tt.value); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
