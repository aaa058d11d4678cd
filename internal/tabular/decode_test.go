package tabular

import (
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

// ----------------------------------------------------------------------------
// CSV decoding
// ----------------------------------------------------------------------------

func TestDecodeCSV(t *testing.T) {
	data := []byte("Department,Division,License Permit Title\n" +
		"Department of Health,Licensing,Food Service License\n" +
		"\"Department of Fish, Wildlife & Parks\",Permits,\"Fishing, Commercial\"\n")

	table, err := Decode(data, FormatCSV)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if len(table.Headers) != 3 {
		t.Fatalf("Headers = %d, want 3", len(table.Headers))
	}
	if len(table.Rows) != 2 {
		t.Fatalf("Rows = %d, want 2", len(table.Rows))
	}

	// Quoted commas stay inside the cell
	if got := table.Rows[1]["Department"]; got != "Department of Fish, Wildlife & Parks" {
		t.Errorf("quoted department = %q", got)
	}
	if got := table.Rows[1]["License Permit Title"]; got != "Fishing, Commercial" {
		t.Errorf("quoted title = %q", got)
	}
}

func TestDecodeCSV_SkipsEmptyRows(t *testing.T) {
	data := []byte("A,B\n1,2\n,\n\"\",\n3,4\n")

	table, err := Decode(data, FormatCSV)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("Rows = %d, want 2 (empty rows skipped)", len(table.Rows))
	}

	// Lines keep the original positions, counting the skipped blanks.
	if len(table.Lines) != 2 || table.Lines[0] != 1 || table.Lines[1] != 4 {
		t.Errorf("Lines = %v, want [1 4]", table.Lines)
	}
}

func TestDecodeCSV_HeaderWhitespaceAndBOM(t *testing.T) {
	data := []byte("\uFEFF Department , Division \nHealth,Licensing\n")

	table, err := Decode(data, FormatCSV)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if table.Headers[0] != "Department" || table.Headers[1] != "Division" {
		t.Errorf("Headers = %v, want trimmed names with casing preserved", table.Headers)
	}
	if table.Rows[0]["Department"] != "Health" {
		t.Errorf("row value = %q", table.Rows[0]["Department"])
	}
}

func TestDecodeCSV_RaggedRows(t *testing.T) {
	data := []byte("A,B,C\n1,2\n4,5,6,7\n")

	table, err := Decode(data, FormatCSV)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := table.Rows[0]["C"]; got != "" {
		t.Errorf("short row C = %q, want empty", got)
	}
	if got := table.Rows[1]["C"]; got != "6" {
		t.Errorf("long row C = %q, want 6", got)
	}
}

func TestDecodeCSV_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty file", ""},
		{"header only", "A,B\n"},
		{"malformed quoting", "A,B\n\"unterminated,2\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), FormatCSV)
			if err == nil {
				t.Fatal("Decode() expected error")
			}
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				t.Fatalf("error type = %T, want *DecodeError", err)
			}
			if decodeErr.Cause == "" {
				t.Error("DecodeError.Cause is empty")
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Spreadsheet decoding
// ----------------------------------------------------------------------------

func TestDecodeXLSX_FirstSheetOnly(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	_ = f.SetSheetRow(sheet, "A1", &[]any{"Department", "Division"})
	_ = f.SetSheetRow(sheet, "A2", &[]any{"Health", "Licensing"})

	// Data on a second sheet must be ignored.
	_, _ = f.NewSheet("Extra")
	_ = f.SetSheetRow("Extra", "A1", &[]any{"Other"})
	_ = f.SetSheetRow("Extra", "A2", &[]any{"ignored"})

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer() error = %v", err)
	}

	table, err := Decode(buf.Bytes(), FormatXLSX)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("Rows = %d, want 1", len(table.Rows))
	}
	if got := table.Rows[0]["Department"]; got != "Health" {
		t.Errorf("Department = %q", got)
	}
	if _, ok := table.Rows[0]["Other"]; ok {
		t.Error("second sheet leaked into decoded rows")
	}
}

func TestDecodeXLSX_Corrupt(t *testing.T) {
	_, err := Decode([]byte("not a workbook"), FormatXLSX)
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("error = %v, want *DecodeError", err)
	}
}

// ----------------------------------------------------------------------------
// JSON decoding
// ----------------------------------------------------------------------------

func TestDecodeJSON(t *testing.T) {
	data := []byte(`[
		{"department_name": "Health", "division": "Licensing", "volume_2024": 120},
		{},
		{"department_name": "Labor", "division": "Safety", "volume_2024": 4.5}
	]`)

	table, err := Decode(data, FormatJSON)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("Rows = %d, want 2 (empty object skipped)", len(table.Rows))
	}
	if len(table.Lines) != 2 || table.Lines[0] != 1 || table.Lines[1] != 3 {
		t.Errorf("Lines = %v, want [1 3]", table.Lines)
	}
	if got := table.Rows[0]["volume_2024"]; got != "120" {
		t.Errorf("integral number = %q, want 120", got)
	}
	if got := table.Rows[1]["volume_2024"]; got != "4.5" {
		t.Errorf("decimal number = %q, want 4.5", got)
	}
}

func TestDecodeJSON_NotAnArray(t *testing.T) {
	_, err := Decode([]byte(`{"department_name": "Health"}`), FormatJSON)
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("error = %v, want *DecodeError", err)
	}
}

// ----------------------------------------------------------------------------
// Format detection
// ----------------------------------------------------------------------------

func TestFormatForFile(t *testing.T) {
	tests := []struct {
		file    string
		want    Format
		wantErr bool
	}{
		{"inventory.csv", FormatCSV, false},
		{"Inventory.CSV", FormatCSV, false},
		{"report.xlsx", FormatXLSX, false},
		{"legacy.xls", FormatXLS, false},
		{"export.json", FormatJSON, false},
		{"notes.txt", "", true},
		{"noextension", "", true},
	}

	for _, tt := range tests {
		got, err := FormatForFile(tt.file)
		if tt.wantErr {
			if err == nil {
				t.Errorf("FormatForFile(%q) expected error", tt.file)
			}
			continue
		}
		if err != nil {
			t.Errorf("FormatForFile(%q) error = %v", tt.file, err)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatForFile(%q) = %q, want %q", tt.file, got, tt.want)
		}
	}
}
