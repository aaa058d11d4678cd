package store

// memory.go is the in-memory implementation of the persistence port, used by
// tests and the no-database dev mode. All methods copy on the way in and out
// so callers can never alias the store's internal state.

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/statops/permitdesk/internal/inventory"
)

// Memory is a mutex-guarded in-memory RecordStore and DepartmentStore.
type Memory struct {
	mu          sync.RWMutex
	records     map[string]*inventory.Record
	departments []inventory.Department
}

// NewMemory creates an empty in-memory store with the given roster.
func NewMemory(roster []inventory.Department) *Memory {
	return &Memory{
		records:     make(map[string]*inventory.Record),
		departments: append([]inventory.Department(nil), roster...),
	}
}

func (m *Memory) CreateMany(_ context.Context, records []*inventory.Record) ([]*inventory.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*inventory.Record, 0, len(records))
	for _, rec := range records {
		cp := cloneRecord(rec)
		m.records[cp.ID] = cp
		out = append(out, cloneRecord(cp))
	}
	return out, nil
}

func (m *Memory) Get(_ context.Context, id string) (*inventory.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneRecord(rec), nil
}

func (m *Memory) Update(_ context.Context, rec *inventory.Record) (*inventory.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.records[rec.ID]
	if !ok {
		return nil, ErrNotFound
	}

	cp := cloneRecord(rec)
	cp.CreatedAt = existing.CreatedAt
	cp.UpdatedAt = time.Now()
	m.records[cp.ID] = cp
	return cloneRecord(cp), nil
}

func (m *Memory) DeleteOrArchive(_ context.Context, id string, archive bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.records[id]
	if !ok {
		return ErrNotFound
	}
	if archive {
		rec.Status = inventory.StatusInactive
		rec.UpdatedAt = time.Now()
		return nil
	}
	delete(m.records, id)
	return nil
}

func (m *Memory) QueryFiltered(_ context.Context, f RecordFilter) ([]*inventory.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*inventory.Record, 0, len(m.records))
	for _, rec := range m.records {
		if !matches(rec, f) {
			continue
		}
		out = append(out, cloneRecord(rec))
	}
	// Map iteration order is random; sort for stable listings.
	sort.Slice(out, func(i, j int) bool {
		if out[i].DepartmentName != out[j].DepartmentName {
			return out[i].DepartmentName < out[j].DepartmentName
		}
		return out[i].LicenseType < out[j].LicenseType
	})
	return out, nil
}

func (m *Memory) List(_ context.Context) ([]inventory.Department, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]inventory.Department(nil), m.departments...), nil
}

func matches(rec *inventory.Record, f RecordFilter) bool {
	if f.Department != "" && rec.DepartmentName != f.Department {
		return false
	}
	if f.Division != "" && !containsFold(rec.Division, f.Division) {
		return false
	}
	if f.LicenseType != "" && !containsFold(rec.LicenseType, f.LicenseType) {
		return false
	}
	if f.Status != "" && rec.Status != f.Status {
		return false
	}
	if f.Search != "" {
		if !containsFold(rec.LicenseType, f.Search) &&
			!containsFold(rec.Description, f.Search) &&
			!containsFold(rec.DepartmentName, f.Search) &&
			!containsFold(rec.Division, f.Search) {
			return false
		}
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func cloneRecord(rec *inventory.Record) *inventory.Record {
	cp := *rec
	cp.Years = make(map[int]inventory.YearFigures, len(rec.Years))
	for y, fig := range rec.Years {
		cp.Years[y] = fig
	}
	return &cp
}
