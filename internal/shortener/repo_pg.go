package shortener

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/shrinkr-app/shrinkr/internal/db"
	"github.com/shrinkr-app/shrinkr/internal/errx"
	"github.com/shrinkr-app/shrinkr/internal/idgen"
)

// DefaultQueryTimeout bounds every store call when the repository is
// not configured with an explicit timeout.
const DefaultQueryTimeout = 5 * time.Second

// querier is an internal interface that abstracts *db.Queries
type querier interface {
	CreateURL(ctx context.Context, arg db.CreateURLParams) (db.URL, error)
	GetURLByCode(ctx context.Context, shortCode string) (db.URL, error)
	UpdateURL(ctx context.Context, arg db.UpdateURLParams) (int64, error)
	DeleteURL(ctx context.Context, shortCode string) (int64, error)
	DeleteExpiredURLs(ctx context.Context, before pgtype.Timestamptz) (int64, error)
}

type repo struct {
	q            querier
	ids          idgen.Generator
	queryTimeout time.Duration
}

// RepositoryConfig holds configuration for the repository
type RepositoryConfig struct {
	IDGenerator  idgen.Generator
	QueryTimeout time.Duration
}

// NewRepository creates a new Repository implementation
func NewRepository(q querier, config *RepositoryConfig) Repository {
	if config == nil {
		config = &RepositoryConfig{}
	}

	// Default: UUID v7 (good for DB locality). Retry once by default inside idgen.NewV7.
	if config.IDGenerator == nil {
		config.IDGenerator = idgen.NewV7(idgen.WithRetries(1))
	}

	timeout := config.QueryTimeout
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}

	return &repo{
		q:            q,
		ids:          config.IDGenerator,
		queryTimeout: timeout,
	}
}

func mustTime(ts pgtype.Timestamptz, field string) (time.Time, error) {
	if !ts.Valid {
		return time.Time{}, fmt.Errorf("%s unexpectedly NULL", field)
	}
	return ts.Time, nil
}

func timePtr(ts pgtype.Timestamptz) *time.Time {
	if !ts.Valid {
		return nil
	}
	t := ts.Time
	return &t
}

func textPtr(tx pgtype.Text) *string {
	if !tx.Valid {
		return nil
	}
	s := tx.String
	return &s
}

func toText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func toTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: *t, Valid: true}
}

func toDomainURL(x db.URL) (URL, error) {
	createdAt, err := mustTime(x.CreatedAt, "created_at")
	if err != nil {
		return URL{}, err
	}

	return URL{
		ID:          x.ID,
		OriginalURL: x.OriginalUrl,
		ShortCode:   x.ShortCode,
		Alias:       textPtr(x.Alias),
		CreatedAt:   createdAt,
		ExpiresAt:   timePtr(x.TtlExpiresAt),
		IsActive:    x.IsActive,
	}, nil
}

func mapRepoError(op string, err error) error {
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return errx.E(op, errx.NotFound, err)

	case isUniqueViolation(err):
		return errx.E(op, errx.Conflict, err)

	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return errx.E(op, errx.Unavailable, err)

	default:
		return errx.E(op, errx.Unavailable, err)
	}
}

// withTimeout bounds a store call so a stuck database surfaces as
// Unavailable instead of hanging the request.
func (r *repo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.queryTimeout)
}

func (r *repo) Create(ctx context.Context, u URL) (URL, error) {
	const op = "shortener.repo.Create"

	// Generate ID if not provided
	if u.ID == uuid.Nil {
		id, err := r.ids.Generate()
		if err != nil {
			return URL{}, errx.E(op, errx.Unavailable, err)
		}
		u.ID = id
	}

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	row, err := r.q.CreateURL(ctx, db.CreateURLParams{
		ID:           u.ID,
		OriginalUrl:  u.OriginalURL,
		ShortCode:    u.ShortCode,
		Alias:        toText(u.Alias),
		TtlExpiresAt: toTimestamptz(u.ExpiresAt),
	})
	if err != nil {
		return URL{}, mapRepoError(op, err)
	}

	return toDomainURL(row)
}

func (r *repo) GetByCode(ctx context.Context, shortCode string) (URL, error) {
	const op = "shortener.repo.GetByCode"

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	row, err := r.q.GetURLByCode(ctx, shortCode)
	if err != nil {
		return URL{}, mapRepoError(op, err)
	}
	return toDomainURL(row)
}

func (r *repo) Update(ctx context.Context, shortCode string, upd URLUpdate) error {
	const op = "shortener.repo.Update"

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.q.UpdateURL(ctx, db.UpdateURLParams{
		ShortCode:    shortCode,
		NewAlias:     toText(upd.NewAlias),
		TtlExpiresAt: toTimestamptz(upd.ExpiresAt),
	})
	if err != nil {
		return mapRepoError(op, err)
	}
	if rows == 0 {
		return errx.E(op, errx.NotFound, errors.New("no record with that short code"))
	}
	return nil
}

func (r *repo) Delete(ctx context.Context, shortCode string) error {
	const op = "shortener.repo.Delete"

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.q.DeleteURL(ctx, shortCode)
	if err != nil {
		return mapRepoError(op, err)
	}
	if rows == 0 {
		return errx.E(op, errx.NotFound, errors.New("no record with that short code"))
	}
	return nil
}

func (r *repo) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	const op = "shortener.repo.DeleteExpired"

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.q.DeleteExpiredURLs(ctx, pgtype.Timestamptz{Time: before, Valid: true})
	if err != nil {
		return 0, mapRepoError(op, err)
	}
	return rows, nil
}
