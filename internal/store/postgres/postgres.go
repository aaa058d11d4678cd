// Package postgres implements the persistence port on PostgreSQL using a
// pgx connection pool and squirrel-built queries.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/statops/permitdesk/internal/store"
)

const (
	tableRecords     = "inventory_records"
	tableDepartments = "departments"
)

// Store implements store.RecordStore and store.DepartmentStore on PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// New wraps an existing connection pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// builder returns a squirrel statement builder with $n placeholders.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// wrapErr maps driver-level sentinels onto the port's errors.
func wrapErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func exec(ctx context.Context, pool *pgxpool.Pool, q squirrel.Sqlizer) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if _, err := pool.Exec(ctx, sql, args...); err != nil {
		return wrapErr(err)
	}
	return nil
}
