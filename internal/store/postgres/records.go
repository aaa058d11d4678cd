package postgres

// records.go persists inventory records in a flat table: one column per
// scalar field plus twelve year-suffixed numeric columns (revenue,
// processing_time, volume for each tracked fiscal year). Flat columns keep
// QueryFiltered on plain SQL and the scanner free of JSON unpacking.

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/statops/permitdesk/internal/inventory"
	"github.com/statops/permitdesk/internal/store"
)

// recordColumns lists the table columns in insert/scan order.
func recordColumns() []string {
	cols := []string{
		"id", "department_name", "department_id", "division", "license_type",
		"category", "description", "access_mode", "channel", "regulations",
		"user_type", "cost", "status", "created_at", "updated_at",
	}
	for _, y := range inventory.FiscalYears {
		cols = append(cols,
			fmt.Sprintf("revenue_%d", y),
			fmt.Sprintf("processing_time_%d", y),
			fmt.Sprintf("volume_%d", y),
		)
	}
	return cols
}

// recordValues returns the column values for one record, matching
// recordColumns order.
func recordValues(rec *inventory.Record) []any {
	vals := []any{
		rec.ID, rec.DepartmentName, nullable(rec.DepartmentID), rec.Division,
		rec.LicenseType, string(rec.Category), rec.Description, rec.AccessMode,
		string(rec.Channel), rec.Regulations, rec.UserType, rec.Cost,
		string(rec.Status), rec.CreatedAt, rec.UpdatedAt,
	}
	for _, y := range inventory.FiscalYears {
		fig := rec.Figures(y)
		vals = append(vals, fig.Revenue, fig.ProcessingTime, fig.Volume)
	}
	return vals
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func scanRecord(row pgx.Row) (*inventory.Record, error) {
	rec := &inventory.Record{Years: make(map[int]inventory.YearFigures, len(inventory.FiscalYears))}
	var deptID *string
	var category, channel, status string

	dest := []any{
		&rec.ID, &rec.DepartmentName, &deptID, &rec.Division, &rec.LicenseType,
		&category, &rec.Description, &rec.AccessMode, &channel, &rec.Regulations,
		&rec.UserType, &rec.Cost, &status, &rec.CreatedAt, &rec.UpdatedAt,
	}
	figs := make([]inventory.YearFigures, len(inventory.FiscalYears))
	for i := range inventory.FiscalYears {
		dest = append(dest, &figs[i].Revenue, &figs[i].ProcessingTime, &figs[i].Volume)
	}

	if err := row.Scan(dest...); err != nil {
		return nil, wrapErr(err)
	}

	if deptID != nil {
		rec.DepartmentID = *deptID
	}
	rec.Category = inventory.LicenseTypeCategory(category)
	rec.Channel = inventory.AccessChannel(channel)
	rec.Status = inventory.Status(status)
	for i, y := range inventory.FiscalYears {
		rec.Years[y] = figs[i]
	}
	return rec, nil
}

// upsertSuffix builds the ON CONFLICT clause that makes re-uploads with
// stable record IDs update in place.
func upsertSuffix() string {
	cols := recordColumns()
	sets := make([]string, 0, len(cols)-2)
	for _, c := range cols {
		if c == "id" || c == "created_at" {
			continue
		}
		sets = append(sets, fmt.Sprintf("%s = EXCLUDED.%s", c, c))
	}
	return "ON CONFLICT (id) DO UPDATE SET " + strings.Join(sets, ", ")
}

func (s *Store) CreateMany(ctx context.Context, records []*inventory.Record) ([]*inventory.Record, error) {
	if len(records) == 0 {
		return nil, nil
	}

	q := builder().Insert(tableRecords).
		Columns(recordColumns()...).
		Suffix(upsertSuffix())
	for _, rec := range records {
		q = q.Values(recordValues(rec)...)
	}

	if err := exec(ctx, s.pool, q); err != nil {
		return nil, fmt.Errorf("insert records: %w", err)
	}
	return records, nil
}

func (s *Store) Get(ctx context.Context, id string) (*inventory.Record, error) {
	q := builder().Select(recordColumns()...).
		From(tableRecords).
		Where(squirrel.Eq{"id": id})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	return scanRecord(s.pool.QueryRow(ctx, sql, args...))
}

func (s *Store) Update(ctx context.Context, rec *inventory.Record) (*inventory.Record, error) {
	cols := recordColumns()
	vals := recordValues(rec)

	q := builder().Update(tableRecords).Where(squirrel.Eq{"id": rec.ID})
	for i, c := range cols {
		if c == "id" || c == "created_at" {
			continue
		}
		q = q.Set(c, vals[i])
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	tag, err := s.pool.Exec(ctx, sql, args...)
	if err != nil {
		return nil, wrapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, store.ErrNotFound
	}
	return rec, nil
}

func (s *Store) DeleteOrArchive(ctx context.Context, id string, archive bool) error {
	var q squirrel.Sqlizer
	if archive {
		q = builder().Update(tableRecords).
			Set("status", string(inventory.StatusInactive)).
			Set("updated_at", squirrel.Expr("now()")).
			Where(squirrel.Eq{"id": id})
	} else {
		q = builder().Delete(tableRecords).Where(squirrel.Eq{"id": id})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	tag, err := s.pool.Exec(ctx, sql, args...)
	if err != nil {
		return wrapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) QueryFiltered(ctx context.Context, f store.RecordFilter) ([]*inventory.Record, error) {
	q := builder().Select(recordColumns()...).
		From(tableRecords).
		OrderBy("department_name", "license_type")

	if f.Department != "" {
		q = q.Where(squirrel.Eq{"department_name": f.Department})
	}
	if f.Division != "" {
		q = q.Where(squirrel.ILike{"division": "%" + f.Division + "%"})
	}
	if f.LicenseType != "" {
		q = q.Where(squirrel.ILike{"license_type": "%" + f.LicenseType + "%"})
	}
	if f.Status != "" {
		q = q.Where(squirrel.Eq{"status": string(f.Status)})
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"license_type": like},
			squirrel.ILike{"description": like},
			squirrel.ILike{"department_name": like},
			squirrel.ILike{"division": like},
		})
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	var out []*inventory.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
