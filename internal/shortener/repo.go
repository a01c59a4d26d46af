package shortener

import (
	"context"
	"time"
)

// URLUpdate describes a partial update of an existing record.
// A nil NewAlias leaves alias and short code untouched; a nil
// ExpiresAt leaves the expiry untouched. Setting NewAlias rewrites
// BOTH the alias and the short code atomically.
type URLUpdate struct {
	NewAlias  *string
	ExpiresAt *time.Time
}

// Repository defines the persistence operations for URL records.
// It abstracts the underlying data store; implementations surface
// uniqueness violations as conflicts and missing rows as not-found.
type Repository interface {
	Create(ctx context.Context, u URL) (URL, error)
	GetByCode(ctx context.Context, shortCode string) (URL, error)
	Update(ctx context.Context, shortCode string, upd URLUpdate) error
	Delete(ctx context.Context, shortCode string) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
