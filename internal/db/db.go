// Package db contains the hand-written query layer over PostgreSQL.
// It mirrors the shape of generated query code: a Queries struct bound
// to anything that satisfies DBTX, row structs using pgtype for
// nullable columns, and one method per statement.
package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgx operations the query layer needs.
// Both *pgxpool.Pool and pgx.Tx satisfy it.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries exposes the statements used by the application.
type Queries struct {
	db DBTX
}

// New returns a Queries bound to the given connection or pool.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}
