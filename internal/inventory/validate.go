package inventory

// validate.go builds a Record draft from a mapped row, or rejects the row.
//
// A rejection names every missing required field and carries the row's
// original 1-based position so the boundary can report "row 7 failed" even
// when rows are processed out of order. One bad row never aborts the batch.

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// requiredFields must be non-empty after trimming for a row to be accepted.
var requiredFields = []string{FieldDepartmentName, FieldDivision, FieldLicenseType}

// RowError is a single rejected row: its 1-based position in the upload
// (header excluded) and the required fields it was missing.
type RowError struct {
	Line    int      `json:"line"`
	Missing []string `json:"missing"`
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d: missing required fields: %s", e.Line, strings.Join(e.Missing, ", "))
}

// BuildRecord validates one mapped row and assembles a Record draft.
// The draft is pre-resolution: DepartmentID is empty until the resolver runs.
// line is the row's 1-based position for error reporting.
func BuildRecord(row MappedRow, line int, now time.Time) (*Record, *RowError) {
	var missing []string
	for _, f := range requiredFields {
		if strings.TrimSpace(row[f]) == "" {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, &RowError{Line: line, Missing: missing}
	}

	id := CleanCell(row[FieldRecordID])
	if id == "" {
		id = uuid.New().String()
	}

	rec := &Record{
		ID:             id,
		DepartmentName: CleanCell(row[FieldDepartmentName]),
		Division:       CleanCell(row[FieldDivision]),
		LicenseType:    CleanCell(row[FieldLicenseType]),
		Description:    CleanCell(row[FieldDescription]),
		AccessMode:     CleanCell(row[FieldAccessMode]),
		Regulations:    CleanCell(row[FieldRegulations]),
		UserType:       CleanCell(row[FieldUserType]),
		Cost:           CleanCell(row[FieldCost]),
		Status:         ParseStatus(row[FieldStatus]),
		CreatedAt:      now,
		UpdatedAt:      now,
		Years:          make(map[int]YearFigures, len(FiscalYears)),
	}

	rec.Category = ClassifyLicenseType(rec.LicenseType)
	rec.Channel = ClassifyAccessMode(rec.AccessMode)

	for _, y := range FiscalYears {
		rec.Years[y] = YearFigures{
			Revenue:        ParseMoney(row[revenueField(y)]),
			ProcessingTime: ParseDecimal(row[processingTimeField(y)]),
			Volume:         ParseCount(row[volumeField(y)]),
		}
	}

	return rec, nil
}

// Revalidate re-runs the full validation contract over an edited record by
// round-tripping it through its mapped-row form. Edits are all-or-nothing: a
// record missing a required field after the edit is rejected unchanged.
func Revalidate(rec *Record, now time.Time) (*Record, *RowError) {
	row := make(MappedRow)
	row[FieldRecordID] = rec.ID
	row[FieldDepartmentName] = rec.DepartmentName
	row[FieldDivision] = rec.Division
	row[FieldLicenseType] = rec.LicenseType
	row[FieldDescription] = rec.Description
	row[FieldAccessMode] = rec.AccessMode
	row[FieldRegulations] = rec.Regulations
	row[FieldUserType] = rec.UserType
	row[FieldCost] = rec.Cost
	row[FieldStatus] = string(rec.Status)
	for _, y := range FiscalYears {
		fig := rec.Figures(y)
		row[revenueField(y)] = fmt.Sprintf("%v", fig.Revenue)
		row[processingTimeField(y)] = fmt.Sprintf("%v", fig.ProcessingTime)
		row[volumeField(y)] = fmt.Sprintf("%d", fig.Volume)
	}

	out, rowErr := BuildRecord(row, 0, now)
	if rowErr != nil {
		return nil, rowErr
	}
	// Fresh records carry no creation time yet; keep the stamp from now.
	if !rec.CreatedAt.IsZero() {
		out.CreatedAt = rec.CreatedAt
	}
	return out, nil
}
