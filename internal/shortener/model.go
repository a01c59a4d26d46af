package shortener

import (
	"time"

	"github.com/google/uuid"
)

// URL is a single shortened-URL record. ShortCode is the public
// identifier; when the record was created (or updated) with a custom
// alias, Alias is set and equals ShortCode.
type URL struct {
	ID          uuid.UUID
	OriginalURL string
	ShortCode   string
	Alias       *string
	CreatedAt   time.Time
	ExpiresAt   *time.Time // nil means the record never expires
	IsActive    bool
}

// Expired reports whether the record's TTL has elapsed at the given
// instant. Records without an expiry never expire.
func (u URL) Expired(now time.Time) bool {
	return u.ExpiresAt != nil && !u.ExpiresAt.After(now)
}
