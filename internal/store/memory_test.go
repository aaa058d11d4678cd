package store

import (
	"context"
	"errors"
	"testing"

	"github.com/statops/permitdesk/internal/inventory"
)

func seedRecord(id, dept, division, title string) *inventory.Record {
	return &inventory.Record{
		ID:             id,
		DepartmentName: dept,
		Division:       division,
		LicenseType:    title,
		Status:         inventory.StatusActive,
		Years: map[int]inventory.YearFigures{
			2024: {Revenue: 100, Volume: 10, ProcessingTime: 5},
		},
	}
}

func TestMemoryCreateManyAndGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(nil)

	in := []*inventory.Record{
		seedRecord("r1", "Department of Health", "Licensing", "Food Service License"),
		seedRecord("r2", "Department of Labor", "Safety", "Crane Operator Permit"),
	}
	out, err := m.CreateMany(ctx, in)
	if err != nil {
		t.Fatalf("CreateMany() error = %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("CreateMany() returned %d records, want 2", len(out))
	}

	got, err := m.Get(ctx, "r1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.LicenseType != "Food Service License" {
		t.Errorf("LicenseType = %q", got.LicenseType)
	}

	if _, err := m.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryCreateMany_UpsertsExistingID(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(nil)

	_, _ = m.CreateMany(ctx, []*inventory.Record{seedRecord("r1", "Health", "A", "Old Title License")})
	_, _ = m.CreateMany(ctx, []*inventory.Record{seedRecord("r1", "Health", "A", "New Title License")})

	got, err := m.Get(ctx, "r1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.LicenseType != "New Title License" {
		t.Errorf("LicenseType = %q, want re-upload to overwrite", got.LicenseType)
	}

	all, _ := m.QueryFiltered(ctx, RecordFilter{})
	if len(all) != 1 {
		t.Errorf("records = %d, want 1 after upsert", len(all))
	}
}

func TestMemoryGet_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(nil)
	_, _ = m.CreateMany(ctx, []*inventory.Record{seedRecord("r1", "Health", "A", "License")})

	got, _ := m.Get(ctx, "r1")
	got.LicenseType = "mutated"
	got.Years[2024] = inventory.YearFigures{Revenue: 999999}

	again, _ := m.Get(ctx, "r1")
	if again.LicenseType != "License" {
		t.Errorf("stored LicenseType = %q, caller mutation leaked in", again.LicenseType)
	}
	if again.Years[2024].Revenue != 100 {
		t.Errorf("stored Revenue = %v, caller mutation leaked into Years map", again.Years[2024].Revenue)
	}
}

func TestMemoryUpdate(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(nil)
	_, _ = m.CreateMany(ctx, []*inventory.Record{seedRecord("r1", "Health", "A", "License")})

	orig, _ := m.Get(ctx, "r1")

	edit := seedRecord("r1", "Health", "B", "Renamed License")
	updated, err := m.Update(ctx, edit)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Division != "B" {
		t.Errorf("Division = %q, want B", updated.Division)
	}
	if !updated.CreatedAt.Equal(orig.CreatedAt) {
		t.Errorf("CreatedAt changed on update: %v -> %v", orig.CreatedAt, updated.CreatedAt)
	}

	if _, err := m.Update(ctx, seedRecord("missing", "X", "Y", "Z")); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryDeleteOrArchive(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(nil)
	_, _ = m.CreateMany(ctx, []*inventory.Record{
		seedRecord("keep", "Health", "A", "License A"),
		seedRecord("gone", "Health", "A", "License B"),
	})

	// Hard delete removes the record.
	if err := m.DeleteOrArchive(ctx, "gone", false); err != nil {
		t.Fatalf("DeleteOrArchive() error = %v", err)
	}
	if _, err := m.Get(ctx, "gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(gone) error = %v, want ErrNotFound after delete", err)
	}

	// Archive keeps the record but flips its status.
	if err := m.DeleteOrArchive(ctx, "keep", true); err != nil {
		t.Fatalf("DeleteOrArchive(archive) error = %v", err)
	}
	got, err := m.Get(ctx, "keep")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Status != inventory.StatusInactive {
		t.Errorf("Status = %q, want %q after archive", got.Status, inventory.StatusInactive)
	}

	if err := m.DeleteOrArchive(ctx, "missing", false); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteOrArchive(missing) error = %v, want ErrNotFound", err)
	}
}

func TestMemoryQueryFiltered(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(nil)
	_, _ = m.CreateMany(ctx, []*inventory.Record{
		seedRecord("r1", "Department of Health", "Food Safety", "Food Service License"),
		seedRecord("r2", "Department of Health", "Vital Records", "Birth Certificate"),
		seedRecord("r3", "Department of Labor", "Safety", "Crane Operator Permit"),
	})
	_ = m.DeleteOrArchive(ctx, "r3", true) // archive: StatusInactive

	tests := []struct {
		name   string
		filter RecordFilter
		want   int
	}{
		{"all", RecordFilter{}, 3},
		{"by department exact", RecordFilter{Department: "Department of Health"}, 2},
		{"by division substring", RecordFilter{Division: "safety"}, 2},
		{"by license type", RecordFilter{LicenseType: "certificate"}, 1},
		{"by status", RecordFilter{Status: inventory.StatusInactive}, 1},
		{"by search", RecordFilter{Search: "crane"}, 1},
		{"combined no match", RecordFilter{Department: "Department of Labor", Division: "vital"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.QueryFiltered(ctx, tt.filter)
			if err != nil {
				t.Fatalf("QueryFiltered() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("QueryFiltered() = %d records, want %d", len(got), tt.want)
			}
		})
	}

	// Stable ordering: department name, then license type.
	all, _ := m.QueryFiltered(ctx, RecordFilter{})
	if all[0].ID != "r2" || all[1].ID != "r1" || all[2].ID != "r3" {
		t.Errorf("order = [%s %s %s], want [r2 r1 r3]", all[0].ID, all[1].ID, all[2].ID)
	}
}

func TestMemoryList_Departments(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(DefaultRoster())

	depts, err := m.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(depts) != len(DefaultRoster()) {
		t.Fatalf("List() = %d departments, want %d", len(depts), len(DefaultRoster()))
	}

	// The returned slice is a copy.
	depts[0].Name = "mutated"
	again, _ := m.List(ctx)
	if again[0].Name == "mutated" {
		t.Error("List() exposed internal roster slice")
	}
}
