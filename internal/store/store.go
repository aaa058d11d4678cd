// Package store defines the persistence port for inventory records and the
// department roster. The ingestion core never touches a concrete database
// client; boundaries pick an implementation (in-memory for dev and tests,
// postgres for deployments) and hand it across this interface.
package store

import (
	"context"
	"errors"

	"github.com/statops/permitdesk/internal/inventory"
)

// ErrNotFound is returned when a record or department does not exist.
var ErrNotFound = errors.New("not found")

// RecordFilter narrows QueryFiltered results. Zero-valued fields match
// everything. Department matches exactly; the rest match case-insensitive
// substrings, the same semantics the aggregation views use.
type RecordFilter struct {
	Department  string
	Division    string
	LicenseType string
	Search      string
	Status      inventory.Status
}

// RecordStore persists inventory records.
type RecordStore interface {
	// CreateMany inserts a batch of validated records and returns them as
	// persisted. Existing IDs are overwritten: re-uploading a file with
	// stable record IDs updates in place.
	CreateMany(ctx context.Context, records []*inventory.Record) ([]*inventory.Record, error)

	// Get returns one record by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*inventory.Record, error)

	// Update replaces a record wholesale. Callers re-validate before calling;
	// the store never persists a partially edited record.
	Update(ctx context.Context, rec *inventory.Record) (*inventory.Record, error)

	// DeleteOrArchive removes a record, or marks it Inactive when archive is
	// true. Returns ErrNotFound for unknown IDs.
	DeleteOrArchive(ctx context.Context, id string, archive bool) error

	// QueryFiltered returns records matching the filter.
	QueryFiltered(ctx context.Context, f RecordFilter) ([]*inventory.Record, error)
}

// DepartmentStore serves the canonical department roster. Resolution only
// needs the full roster, so the port stays a single call.
type DepartmentStore interface {
	List(ctx context.Context) ([]inventory.Department, error)
}
