package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// URL is the row type for the urls table.
type URL struct {
	ID           uuid.UUID
	OriginalUrl  string
	ShortCode    string
	Alias        pgtype.Text
	CreatedAt    pgtype.Timestamptz
	TtlExpiresAt pgtype.Timestamptz
	IsActive     bool
}

const createURL = `
INSERT INTO urls (id, original_url, short_code, alias, ttl_expires_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, original_url, short_code, alias, created_at, ttl_expires_at, is_active
`

// CreateURLParams holds the arguments for CreateURL.
type CreateURLParams struct {
	ID           uuid.UUID
	OriginalUrl  string
	ShortCode    string
	Alias        pgtype.Text
	TtlExpiresAt pgtype.Timestamptz
}

// CreateURL inserts a new record. The unique constraint on short_code
// (and alias) is the final arbiter for concurrent creations; callers
// must treat a unique violation as a conflict, not a bug.
func (q *Queries) CreateURL(ctx context.Context, arg CreateURLParams) (URL, error) {
	row := q.db.QueryRow(ctx, createURL,
		arg.ID,
		arg.OriginalUrl,
		arg.ShortCode,
		arg.Alias,
		arg.TtlExpiresAt,
	)
	var u URL
	err := row.Scan(
		&u.ID,
		&u.OriginalUrl,
		&u.ShortCode,
		&u.Alias,
		&u.CreatedAt,
		&u.TtlExpiresAt,
		&u.IsActive,
	)
	return u, err
}

const getURLByCode = `
SELECT id, original_url, short_code, alias, created_at, ttl_expires_at, is_active
FROM urls
WHERE short_code = $1
`

// GetURLByCode fetches a record by its short code. Expired and
// inactive rows are returned as-is; liveness is decided by the caller.
func (q *Queries) GetURLByCode(ctx context.Context, shortCode string) (URL, error) {
	row := q.db.QueryRow(ctx, getURLByCode, shortCode)
	var u URL
	err := row.Scan(
		&u.ID,
		&u.OriginalUrl,
		&u.ShortCode,
		&u.Alias,
		&u.CreatedAt,
		&u.TtlExpiresAt,
		&u.IsActive,
	)
	return u, err
}

const updateURL = `
UPDATE urls
SET alias          = COALESCE($2, alias),
    short_code     = COALESCE($2, short_code),
    ttl_expires_at = COALESCE($3, ttl_expires_at)
WHERE short_code = $1
`

// UpdateURLParams holds the arguments for UpdateURL. A NULL NewAlias
// leaves alias and short_code untouched; a NULL TtlExpiresAt leaves
// the expiry untouched. When NewAlias is set, alias and short_code are
// rewritten together in the single statement.
type UpdateURLParams struct {
	ShortCode    string
	NewAlias     pgtype.Text
	TtlExpiresAt pgtype.Timestamptz
}

// UpdateURL applies the update and reports how many rows matched.
func (q *Queries) UpdateURL(ctx context.Context, arg UpdateURLParams) (int64, error) {
	tag, err := q.db.Exec(ctx, updateURL, arg.ShortCode, arg.NewAlias, arg.TtlExpiresAt)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteURL = `
DELETE FROM urls
WHERE short_code = $1
`

// DeleteURL hard-deletes a record and reports how many rows matched.
func (q *Queries) DeleteURL(ctx context.Context, shortCode string) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteURL, shortCode)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const deleteExpiredURLs = `
DELETE FROM urls
WHERE ttl_expires_at IS NOT NULL
  AND ttl_expires_at < $1
`

// DeleteExpiredURLs bulk-deletes every record whose expiry is strictly
// before the given instant. Running it twice in a row is safe; the
// second run matches zero rows.
func (q *Queries) DeleteExpiredURLs(ctx context.Context, before pgtype.Timestamptz) (int64, error) {
	tag, err := q.db.Exec(ctx, deleteExpiredURLs, before)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
