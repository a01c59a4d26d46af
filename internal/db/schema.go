package db

import (
	"context"
	"fmt"
)

// Schema is the DDL for the urls table. The unique constraints on
// short_code and alias back the application-level existence checks;
// the partial index supports the reaper's range delete.
const Schema = `
CREATE TABLE IF NOT EXISTS urls (
    id             UUID PRIMARY KEY,
    original_url   TEXT NOT NULL,
    short_code     VARCHAR(255) NOT NULL,
    alias          VARCHAR(255),
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
    ttl_expires_at TIMESTAMPTZ,
    is_active      BOOLEAN NOT NULL DEFAULT TRUE,
    CONSTRAINT urls_short_code_unique UNIQUE (short_code),
    CONSTRAINT urls_alias_unique UNIQUE (alias)
);

CREATE INDEX IF NOT EXISTS urls_ttl_expires_at_idx
    ON urls (ttl_expires_at)
    WHERE ttl_expires_at IS NOT NULL;
`

// EnsureSchema creates the urls table and its indexes if they do not
// exist yet. Called once at startup and by tests against throwaway
// databases.
func EnsureSchema(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
