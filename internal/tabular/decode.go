// Package tabular turns uploaded file bytes into header-keyed rows.
//
// CSV, XLSX/XLS, and JSON uploads all decode into the same shape: an ordered
// header list plus one map per data row, so everything downstream of the
// decoder is format-agnostic. Spreadsheets are read first-sheet-only.
package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/xuri/excelize/v2"
)

// Format identifies the declared upload format, usually taken from the file
// extension at the boundary.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
	FormatJSON Format = "json"
)

// FormatForFile returns the Format for a file name based on its extension.
func FormatForFile(name string) (Format, error) {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return "", fmt.Errorf("file %q has no extension", name)
	}
	switch strings.ToLower(name[i+1:]) {
	case "csv":
		return FormatCSV, nil
	case "xlsx":
		return FormatXLSX, nil
	case "xls":
		return FormatXLS, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported file extension %q", name[i:])
	}
}

// Row maps a column header (as found in the header row) to the raw cell value.
type Row map[string]string

// Table is the decoded form of an upload: headers in original order plus one
// Row per non-empty data row. Lines[i] is the 1-based position of Rows[i]
// among all data rows as uploaded, blank rows included, so error reports
// point at the row the user sees in their file.
type Table struct {
	Headers []string
	Rows    []Row
	Lines   []int
}

// DecodeError reports that an upload could not be parsed as its declared
// format. It is fatal to the whole upload; no rows are processed.
type DecodeError struct {
	Format Format
	Cause  string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode %s upload: %s", e.Format, e.Cause)
}

func decodeErr(format Format, cause string, args ...any) *DecodeError {
	return &DecodeError{Format: format, Cause: fmt.Sprintf(cause, args...)}
}

// Decode parses raw upload bytes as the declared format.
// It fails with a *DecodeError when the bytes cannot be parsed, the file has
// no header row, or no data rows follow the header.
func Decode(data []byte, format Format) (*Table, error) {
	switch format {
	case FormatCSV:
		return decodeCSV(data)
	case FormatXLSX, FormatXLS:
		return decodeSpreadsheet(data, format)
	case FormatJSON:
		return decodeJSON(data)
	default:
		return nil, decodeErr(format, "unknown format")
	}
}

// decodeCSV reads comma-delimited data with standard double-quote escaping.
// encoding/csv already treats a comma inside a quoted field as data, and
// reports malformed quoting as a parse error.
func decodeCSV(data []byte) (*Table, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // ragged rows are handled per-cell below

	header, err := r.Read()
	if err == io.EOF {
		return nil, decodeErr(FormatCSV, "file is empty")
	}
	if err != nil {
		return nil, decodeErr(FormatCSV, "bad header row: %v", err)
	}

	headers := cleanHeaders(header)

	var raw [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, decodeErr(FormatCSV, "%v", err)
		}
		raw = append(raw, rec)
	}

	return buildTable(FormatCSV, headers, raw)
}

// decodeSpreadsheet reads the first sheet of an Excel workbook. excelize
// handles both .xlsx and legacy .xls containers.
func decodeSpreadsheet(data []byte, format Format) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, decodeErr(format, "corrupt workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, decodeErr(format, "workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, decodeErr(format, "failed to read sheet %q: %v", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, decodeErr(format, "sheet %q has no data rows", sheets[0])
	}

	headers := cleanHeaders(rows[0])
	return buildTable(format, headers, rows[1:])
}

// decodeJSON reads an array of flat objects; every value is rendered back to
// its string form so JSON uploads flow through the same mapper as CSV rows.
func decodeJSON(data []byte) (*Table, error) {
	var objs []map[string]any
	if err := sonic.Unmarshal(data, &objs); err != nil {
		return nil, decodeErr(FormatJSON, "expected an array of objects: %v", err)
	}
	if len(objs) == 0 {
		return nil, decodeErr(FormatJSON, "array is empty")
	}

	// Collect the header set from all objects, first-seen order.
	var headers []string
	seen := make(map[string]bool)
	for _, obj := range objs {
		for k := range obj {
			if !seen[k] {
				seen[k] = true
				headers = append(headers, k)
			}
		}
	}

	table := &Table{Headers: headers}
	for i, obj := range objs {
		row := make(Row, len(obj))
		empty := true
		for k, v := range obj {
			s := stringifyJSONValue(v)
			if strings.TrimSpace(s) != "" {
				empty = false
			}
			row[k] = s
		}
		if empty {
			continue
		}
		table.Rows = append(table.Rows, row)
		table.Lines = append(table.Lines, i+1)
	}
	if len(table.Rows) == 0 {
		return nil, decodeErr(FormatJSON, "no data rows")
	}
	return table, nil
}

// buildTable zips header names with raw cell rows, skipping fully empty rows.
// Ragged rows are tolerated: missing trailing cells read as empty strings and
// extra cells beyond the header are dropped.
func buildTable(format Format, headers []string, raw [][]string) (*Table, error) {
	table := &Table{Headers: headers}

	for n, rec := range raw {
		empty := true
		row := make(Row, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			var cell string
			if i < len(rec) {
				cell = rec[i]
			}
			if strings.TrimSpace(cell) != "" {
				empty = false
			}
			row[h] = cell
		}
		if empty {
			continue
		}
		table.Rows = append(table.Rows, row)
		table.Lines = append(table.Lines, n+1)
	}

	if len(table.Rows) == 0 {
		return nil, decodeErr(format, "no data rows after header")
	}
	return table, nil
}

// cleanHeaders trims surrounding whitespace (and a leading BOM on the first
// header) but preserves casing; the mapper matches headers verbatim.
func cleanHeaders(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\uFEFF")
		out[i] = strings.TrimSpace(h)
	}
	return out
}

func stringifyJSONValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return "false"
	case float64:
		// Integral values print without a trailing ".0".
		if x == float64(int64(x)) {
			return fmt.Sprintf("%d", int64(x))
		}
		return fmt.Sprintf("%g", x)
	default:
		b, err := sonic.Marshal(x)
		if err != nil {
			return fmt.Sprintf("%v", x)
		}
		return string(b)
	}
}
