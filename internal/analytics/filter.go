// Package analytics computes the derived statistics behind every chart and
// table: per-department category counts, channel distribution, volume-weighted
// processing time, and revenue/application shares.
//
// Everything here is a pure function of a record slice plus a fiscal-year
// selector. Nothing is cached or mutated; callers recompute on every filter
// change.
package analytics

import (
	"strings"

	"github.com/statops/permitdesk/internal/inventory"
)

// Filter narrows the record set before any statistic is computed.
// Department matches exactly; division and license type match by
// case-insensitive substring; Search matches against title, description, and
// department name.
type Filter struct {
	Department  string
	Division    string
	LicenseType string
	Search      string
}

// IsZero reports whether the filter matches everything.
func (f Filter) IsZero() bool {
	return f.Department == "" && f.Division == "" && f.LicenseType == "" && f.Search == ""
}

// Apply returns the records matching the filter, in input order. The input
// slice is never mutated.
func Apply(records []*inventory.Record, f Filter) []*inventory.Record {
	if f.IsZero() {
		return records
	}

	out := make([]*inventory.Record, 0, len(records))
	for _, rec := range records {
		if f.Department != "" && rec.DepartmentName != f.Department {
			continue
		}
		if f.Division != "" && !containsFold(rec.Division, f.Division) {
			continue
		}
		if f.LicenseType != "" && !containsFold(rec.LicenseType, f.LicenseType) {
			continue
		}
		if f.Search != "" && !matchesSearch(rec, f.Search) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func matchesSearch(rec *inventory.Record, q string) bool {
	return containsFold(rec.LicenseType, q) ||
		containsFold(rec.Description, q) ||
		containsFold(rec.DepartmentName, q) ||
		containsFold(rec.Division, q)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
