package inventory

import (
	"testing"

	"github.com/statops/permitdesk/internal/tabular"
)

func TestMapRow_DisplayHeaders(t *testing.T) {
	row := tabular.Row{
		"Department":           "Department of Health",
		"Division":             "Licensing",
		"License Permit Title": "Food Service License",
		"Access Mode":          "Online",
		"Cost":                 "$150",
	}

	mapped := MapRow(row)

	if got := mapped[FieldDepartmentName]; got != "Department of Health" {
		t.Errorf("department_name = %q", got)
	}
	if got := mapped[FieldLicenseType]; got != "Food Service License" {
		t.Errorf("license_permit_type = %q", got)
	}
	if got := mapped[FieldCost]; got != "$150" {
		t.Errorf("cost = %q", got)
	}
}

func TestMapRow_SnakeCaseHeaders(t *testing.T) {
	row := tabular.Row{
		"department_name":     "Department of Labor",
		"division":            "Safety",
		"license_permit_type": "Crane Operator Permit",
		"revenue_2024":        "5000",
		"volume_2024":         "42",
	}

	mapped := MapRow(row)

	if got := mapped[FieldDepartmentName]; got != "Department of Labor" {
		t.Errorf("department_name = %q", got)
	}
	if got := mapped["revenue_2024"]; got != "5000" {
		t.Errorf("revenue_2024 = %q", got)
	}
	if got := mapped["volume_2024"]; got != "42" {
		t.Errorf("volume_2024 = %q", got)
	}
}

func TestMapRow_UnknownAndMissingColumns(t *testing.T) {
	row := tabular.Row{
		"Department":      "Health",
		"Internal Notes":  "ignore me",
		"Reviewer Emails": "a@example.gov",
	}

	mapped := MapRow(row)

	// Unknown extra headers are dropped, not errors.
	if _, ok := mapped["Internal Notes"]; ok {
		t.Error("unknown header leaked into mapped row")
	}

	// Every canonical field is present even when absent from the upload.
	for _, f := range CanonicalFields() {
		if _, ok := mapped[f]; !ok {
			t.Errorf("canonical field %q missing from mapped row", f)
		}
	}
	if got := mapped[FieldDivision]; got != "" {
		t.Errorf("absent division = %q, want empty", got)
	}
}

func TestMapRow_AliasPrecedence(t *testing.T) {
	// Both aliases present: the snake_case form wins, every run.
	row := tabular.Row{
		"department_name": "Department of Health",
		"Department":      "Health (display export)",
		"record_id":       "rec-001",
		"id":              "legacy-id",
	}

	for i := 0; i < 20; i++ {
		mapped := MapRow(row)
		if got := mapped[FieldDepartmentName]; got != "Department of Health" {
			t.Fatalf("department_name = %q, want snake_case alias to win", got)
		}
		if got := mapped[FieldRecordID]; got != "rec-001" {
			t.Fatalf("record_id = %q, want record_id over id", got)
		}
	}
}

func TestMapRow_AliasFallback(t *testing.T) {
	// An empty higher-precedence alias falls through to the next one.
	mapped := MapRow(tabular.Row{
		"department_name": "",
		"Department":      "Department of Labor",
	})
	if got := mapped[FieldDepartmentName]; got != "Department of Labor" {
		t.Errorf("department_name = %q, want fallback to display alias", got)
	}
}

func TestMapRow_CaseSensitiveHeaders(t *testing.T) {
	// "DEPARTMENT" matches no header table entry; matching is verbatim.
	mapped := MapRow(tabular.Row{"DEPARTMENT": "Health"})
	if got := mapped[FieldDepartmentName]; got != "" {
		t.Errorf("department_name = %q, want empty for unmatched casing", got)
	}
}
