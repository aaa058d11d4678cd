// Package inventory provides the ingestion core for license and permit
// inventory data: field mapping, validation, normalization, and department
// resolution. This package has no HTTP or storage dependencies and can be
// driven by any boundary.
package inventory

import (
	"strings"
	"time"
)

// FiscalYears lists the fiscal years tracked on every record, oldest first.
var FiscalYears = []int{2022, 2023, 2024, 2025}

// LicenseTypeCategory is the closed classification derived from the free-text
// license/permit title. Categories are matched by keyword in declaration
// order; the first match wins.
type LicenseTypeCategory string

const (
	CategoryLicense      LicenseTypeCategory = "License"
	CategoryPermit       LicenseTypeCategory = "Permit"
	CategoryStamp        LicenseTypeCategory = "Stamp"
	CategoryRegistration LicenseTypeCategory = "Registration"
	CategoryCertificate  LicenseTypeCategory = "Certificate"
	CategoryApproval     LicenseTypeCategory = "Approval"
	CategoryOther        LicenseTypeCategory = "Other"
)

// AccessChannel is the closed classification of how applications are
// submitted, derived from the free-text access mode.
type AccessChannel string

const (
	ChannelOnline  AccessChannel = "Online"
	ChannelManual  AccessChannel = "Manual"
	ChannelBoth    AccessChannel = "Both"
	ChannelUnknown AccessChannel = "Unknown"
)

// Status is the lifecycle state of a record.
type Status string

const (
	StatusActive      Status = "Active"
	StatusInactive    Status = "Inactive"
	StatusUnderReview Status = "Under Review"
)

// YearFigures holds the per-fiscal-year financial and operational figures for
// one record. Values default to zero when the source cell is absent or
// unparsable, so downstream aggregation never needs nil guards.
type YearFigures struct {
	Revenue        float64 `json:"revenue"`        // dollars collected
	ProcessingTime float64 `json:"processingTime"` // average days to process
	Volume         int     `json:"volume"`         // applications received
}

// Record is one license/permit offering tracked by one department/division.
type Record struct {
	ID string `json:"id"`

	// Classification
	DepartmentName string              `json:"departmentName"`
	DepartmentID   string              `json:"departmentId,omitempty"` // empty when unresolved
	Division       string              `json:"division"`
	LicenseType    string              `json:"licenseType"` // free-text title
	Category       LicenseTypeCategory `json:"category"`

	// Descriptive
	Description string        `json:"description,omitempty"`
	AccessMode  string        `json:"accessMode,omitempty"` // free text
	Channel     AccessChannel `json:"channel"`
	Regulations string        `json:"regulations,omitempty"`
	UserType    string        `json:"userType,omitempty"`
	Cost        string        `json:"cost,omitempty"`

	// Per fiscal year figures, keyed by year (2022-2025).
	Years map[int]YearFigures `json:"years"`

	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Figures returns the figures for a fiscal year, zero-valued if untracked.
func (r *Record) Figures(year int) YearFigures {
	if r.Years == nil {
		return YearFigures{}
	}
	return r.Years[year]
}

// Department is a canonical department entity that free-text department names
// resolve against. Name and ShortName are both valid match keys.
type Department struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName,omitempty"`
	Status    Status `json:"status"`
}

// DisplayName returns the department name with the leading "Department of "
// prefix stripped, for chart labels. Grouping keys use the full name.
func DisplayName(name string) string {
	const prefix = "Department of "
	if len(name) > len(prefix) && strings.EqualFold(name[:len(prefix)], prefix) {
		return name[len(prefix):]
	}
	return name
}

// ParseStatus maps a raw status cell onto one of the three allowed statuses.
// Anything unrecognized falls back to Active rather than failing the row.
func ParseStatus(raw string) Status {
	switch normalizeToken(raw) {
	case "active":
		return StatusActive
	case "inactive":
		return StatusInactive
	case "under review", "underreview", "under_review":
		return StatusUnderReview
	default:
		return StatusActive
	}
}
