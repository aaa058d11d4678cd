package inventory

// mapper.go maps arbitrary upload columns onto the canonical field set.
//
// Mapping is by exact header-name match against a fixed table; there is no
// fuzzy matching. Unknown extra headers are ignored, and canonical fields
// missing from the upload default to empty strings so validation can report
// them uniformly.

import (
	"fmt"

	"github.com/statops/permitdesk/internal/tabular"
)

// Canonical field names produced by the mapper.
const (
	FieldDepartmentName = "department_name"
	FieldDivision       = "division"
	FieldLicenseType    = "license_permit_type"
	FieldDescription    = "description"
	FieldAccessMode     = "access_mode"
	FieldRegulations    = "regulations"
	FieldUserType       = "user_type"
	FieldCost           = "cost"
	FieldStatus         = "status"
	FieldRecordID       = "record_id"
)

// Year-suffixed numeric field names: revenue_2022 .. volume_2025.
func revenueField(year int) string        { return fmt.Sprintf("revenue_%d", year) }
func processingTimeField(year int) string { return fmt.Sprintf("processing_time_%d", year) }
func volumeField(year int) string         { return fmt.Sprintf("volume_%d", year) }

// headerAlias pairs an accepted upload header (matched verbatim,
// case-sensitive) with the canonical field it feeds.
type headerAlias struct {
	header string
	field  string
}

// headerAliases lists accepted headers in precedence order: when an upload
// carries two aliases for the same field, the first non-empty value in list
// order wins. The snake_case form is the canonical export shape and outranks
// the display form used by template exports.
var headerAliases = []headerAlias{
	{"department_name", FieldDepartmentName},
	{"Department", FieldDepartmentName},

	{"division", FieldDivision},
	{"Division", FieldDivision},

	{"license_permit_type", FieldLicenseType},
	{"License Permit Title", FieldLicenseType},

	{"description", FieldDescription},
	{"Description", FieldDescription},

	{"access_mode", FieldAccessMode},
	{"Access Mode", FieldAccessMode},

	{"regulations", FieldRegulations},
	{"Regulations", FieldRegulations},

	{"user_type", FieldUserType},
	{"User Type", FieldUserType},

	{"cost", FieldCost},
	{"Cost", FieldCost},

	{"status", FieldStatus},
	{"Status", FieldStatus},

	{"record_id", FieldRecordID},
	{"id", FieldRecordID},
}

func init() {
	// Year-suffixed columns map to themselves; they are already canonical.
	for _, y := range FiscalYears {
		for _, f := range []string{revenueField(y), processingTimeField(y), volumeField(y)} {
			headerAliases = append(headerAliases, headerAlias{f, f})
		}
	}
}

// MappedRow is a decoded row remapped onto canonical field names.
type MappedRow map[string]string

// CanonicalFields returns every canonical field name the mapper can produce,
// in a stable order (identity and text fields first, then year figures).
func CanonicalFields() []string {
	fields := []string{
		FieldRecordID, FieldDepartmentName, FieldDivision, FieldLicenseType,
		FieldDescription, FieldAccessMode, FieldRegulations, FieldUserType,
		FieldCost, FieldStatus,
	}
	for _, y := range FiscalYears {
		fields = append(fields, revenueField(y), processingTimeField(y), volumeField(y))
	}
	return fields
}

// MapRow remaps one decoded row onto the canonical field set. Canonical
// fields not present in the upload come back as empty strings; unknown extra
// columns are ignored.
func MapRow(row tabular.Row) MappedRow {
	out := make(MappedRow, len(headerAliases))
	for _, f := range CanonicalFields() {
		out[f] = ""
	}
	for _, a := range headerAliases {
		if out[a.field] != "" {
			continue
		}
		if raw, ok := row[a.header]; ok {
			out[a.field] = raw
		}
	}
	return out
}
