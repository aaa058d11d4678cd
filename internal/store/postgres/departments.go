package postgres

import (
	"context"
	"fmt"

	"github.com/statops/permitdesk/internal/inventory"
)

var departmentColumns = []string{"id", "name", "short_name", "status"}

func (s *Store) List(ctx context.Context) ([]inventory.Department, error) {
	q := builder().Select(departmentColumns...).
		From(tableDepartments).
		OrderBy("name")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	var out []inventory.Department
	for rows.Next() {
		var d inventory.Department
		var status string
		if err := rows.Scan(&d.ID, &d.Name, &d.ShortName, &status); err != nil {
			return nil, wrapErr(err)
		}
		d.Status = inventory.Status(status)
		out = append(out, d)
	}
	return out, rows.Err()
}
