package inventory

// ingest.go runs the full upload pipeline: decode, map, validate, resolve.
//
// Decode failures abort the upload before any row is processed. Row failures
// are collected and reported alongside the accepted records so the caller can
// persist the good rows and surface the bad ones in one operation.

import (
	"fmt"
	"time"

	"github.com/statops/permitdesk/internal/tabular"
)

// Result is the outcome of ingesting one upload.
type Result struct {
	Accepted []*Record  `json:"accepted"`
	Rejected []RowError `json:"rejected"`

	// TotalRows counts non-empty data rows seen (accepted + rejected).
	TotalRows  int `json:"totalRows"`
	Unresolved int `json:"unresolved"` // accepted records with no department match
}

// Summary renders the per-upload report line, e.g. "42 accepted, 3 rejected".
func (r *Result) Summary() string {
	return fmt.Sprintf("%d accepted, %d rejected", len(r.Accepted), len(r.Rejected))
}

// Ingestor turns raw upload bytes into validated, resolved records.
type Ingestor struct {
	resolver *Resolver
	now      func() time.Time
}

// NewIngestor creates an ingestor resolving against the given roster.
func NewIngestor(roster []Department) *Ingestor {
	return &Ingestor{
		resolver: NewResolver(roster),
		now:      time.Now,
	}
}

// Ingest decodes and processes one uploaded file. A *tabular.DecodeError is
// returned when the bytes cannot be parsed as the declared format; row-level
// problems never produce an error, only Rejected entries.
func (ing *Ingestor) Ingest(data []byte, format tabular.Format) (*Result, error) {
	table, err := tabular.Decode(data, format)
	if err != nil {
		return nil, err
	}
	return ing.IngestTable(table), nil
}

// IngestTable processes already-decoded rows. Row positions in Rejected come
// from table.Lines: the row's original 1-based position below the header,
// blank rows included, matching what a user sees in their file.
func (ing *Ingestor) IngestTable(table *tabular.Table) *Result {
	result := &Result{TotalRows: len(table.Rows)}
	now := ing.now()

	for i, row := range table.Rows {
		line := i + 1
		if i < len(table.Lines) {
			line = table.Lines[i]
		}

		rec, rowErr := BuildRecord(MapRow(row), line, now)
		if rowErr != nil {
			result.Rejected = append(result.Rejected, *rowErr)
			continue
		}

		ing.resolver.Resolve(rec)
		if rec.DepartmentID == "" {
			result.Unresolved++
		}
		result.Accepted = append(result.Accepted, rec)
	}

	return result
}
