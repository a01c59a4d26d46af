package shortener

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shrinkr-app/shrinkr/internal/errx"
)

/***************
 * Mocks
 ***************/

// mockRepository implements Repository interface for testing.
type mockRepository struct {
	createFunc        func(ctx context.Context, u URL) (URL, error)
	getByCodeFunc     func(ctx context.Context, shortCode string) (URL, error)
	updateFunc        func(ctx context.Context, shortCode string, upd URLUpdate) error
	deleteFunc        func(ctx context.Context, shortCode string) error
	deleteExpiredFunc func(ctx context.Context, before time.Time) (int64, error)
}

func (m *mockRepository) Create(ctx context.Context, u URL) (URL, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, u)
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	u.IsActive = true
	return u, nil
}

func (m *mockRepository) GetByCode(ctx context.Context, shortCode string) (URL, error) {
	if m.getByCodeFunc != nil {
		return m.getByCodeFunc(ctx, shortCode)
	}
	return URL{}, errx.E("repo.GetByCode", errx.NotFound, errors.New("not found"))
}

func (m *mockRepository) Update(ctx context.Context, shortCode string, upd URLUpdate) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, shortCode, upd)
	}
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, shortCode string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, shortCode)
	}
	return nil
}

func (m *mockRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	if m.deleteExpiredFunc != nil {
		return m.deleteExpiredFunc(ctx, before)
	}
	return 0, nil
}

// mockCodeGenerator implements the code generator for testing.
type mockCodeGenerator struct {
	generateFunc func(length int) (string, error)
	codes        []string
	callCount    int
}

func (m *mockCodeGenerator) Generate(length int) (string, error) {
	m.callCount++

	if m.generateFunc != nil {
		return m.generateFunc(length)
	}
	if m.codes != nil {
		idx := m.callCount - 1
		if idx >= 0 && idx < len(m.codes) {
			return m.codes[idx], nil
		}
	}
	return "abc123", nil
}

func ptrInt64(v int64) *int64 { return &v }

/***************
 * Constructor Tests
 ***************/

func TestNewService(t *testing.T) {
	t.Run("creates service with nil config", func(t *testing.T) {
		repo := &mockRepository{}
		svc := NewService(repo, nil)
		if svc == nil {
			t.Fatal("NewService() returned nil")
		}
	})

	t.Run("creates service with custom generator", func(t *testing.T) {
		repo := &mockRepository{}
		gen := &mockCodeGenerator{}
		svc := NewService(repo, &ServiceConfig{
			CodeGenerator: gen,
			CodeLength:    10,
		})
		if svc == nil {
			t.Fatal("NewService() returned nil")
		}
	})

	t.Run("uses default code length when non-positive", func(t *testing.T) {
		repo := &mockRepository{}
		gen := &mockCodeGenerator{}
		svc := NewService(repo, &ServiceConfig{CodeGenerator: gen, CodeLength: 0})

		_, err := svc.Shorten(context.Background(), ShortenRequest{OriginalURL: "https://example.com"})
		if err != nil {
			t.Fatalf("Shorten() unexpected error: %v", err)
		}
	})
}

/***************
 * Shorten
 ***************/

func TestService_Shorten(t *testing.T) {
	ctx := context.Background()

	t.Run("creates link with generated code", func(t *testing.T) {
		repo := &mockRepository{}
		gen := &mockCodeGenerator{codes: []string{"x7Ab9Q"}}
		svc := NewService(repo, &ServiceConfig{CodeGenerator: gen})

		created, err := svc.Shorten(ctx, ShortenRequest{OriginalURL: "https://example.com/a"})
		if err != nil {
			t.Fatalf("Shorten() unexpected error: %v", err)
		}
		if created.ShortCode != "x7Ab9Q" {
			t.Errorf("ShortCode = %q, want %q", created.ShortCode, "x7Ab9Q")
		}
		if created.Alias != nil {
			t.Errorf("Alias = %v, want nil for generated codes", *created.Alias)
		}
		if created.ExpiresAt != nil {
			t.Errorf("ExpiresAt = %v, want nil when no ttl is given", created.ExpiresAt)
		}
		if created.OriginalURL != "https://example.com/a" {
			t.Errorf("OriginalURL = %q, want %q", created.OriginalURL, "https://example.com/a")
		}
	})

	t.Run("generated code uses configured length", func(t *testing.T) {
		repo := &mockRepository{}
		var gotLength int
		gen := &mockCodeGenerator{generateFunc: func(length int) (string, error) {
			gotLength = length
			return "abcdef", nil
		}}
		svc := NewService(repo, &ServiceConfig{CodeGenerator: gen, CodeLength: 6})

		if _, err := svc.Shorten(ctx, ShortenRequest{OriginalURL: "https://example.com"}); err != nil {
			t.Fatalf("Shorten() unexpected error: %v", err)
		}
		if gotLength != 6 {
			t.Errorf("generator called with length %d, want 6", gotLength)
		}
	})

	t.Run("creates link with custom alias", func(t *testing.T) {
		repo := &mockRepository{
			getByCodeFunc: func(ctx context.Context, shortCode string) (URL, error) {
				return URL{}, errx.E("repo.GetByCode", errx.NotFound, errors.New("not found"))
			},
		}
		gen := &mockCodeGenerator{}
		svc := NewService(repo, &ServiceConfig{CodeGenerator: gen})

		created, err := svc.Shorten(ctx, ShortenRequest{
			OriginalURL: "https://example.com",
			Alias:       "promo",
		})
		if err != nil {
			t.Fatalf("Shorten() unexpected error: %v", err)
		}
		if created.ShortCode != "promo" {
			t.Errorf("ShortCode = %q, want %q", created.ShortCode, "promo")
		}
		if created.Alias == nil || *created.Alias != "promo" {
			t.Errorf("Alias = %v, want promo", created.Alias)
		}
		if gen.callCount != 0 {
			t.Errorf("generator called %d times for custom alias, want 0", gen.callCount)
		}
	})

	t.Run("computes expiry from ttl", func(t *testing.T) {
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		repo := &mockRepository{}
		gen := &mockCodeGenerator{}
		svc := NewService(repo, &ServiceConfig{
			CodeGenerator: gen,
			Now:           func() time.Time { return now },
		})

		created, err := svc.Shorten(ctx, ShortenRequest{
			OriginalURL: "https://example.com",
			TTLSeconds:  ptrInt64(3600),
		})
		if err != nil {
			t.Fatalf("Shorten() unexpected error: %v", err)
		}
		if created.ExpiresAt == nil {
			t.Fatal("ExpiresAt = nil, want set")
		}
		want := now.Add(time.Hour)
		if !created.ExpiresAt.Equal(want) {
			t.Errorf("ExpiresAt = %v, want %v", created.ExpiresAt, want)
		}
	})

	t.Run("rejects empty url", func(t *testing.T) {
		svc := NewService(&mockRepository{}, nil)

		_, err := svc.Shorten(ctx, ShortenRequest{OriginalURL: ""})
		if errx.KindOf(err) != errx.Invalid {
			t.Errorf("KindOf(err) = %v, want Invalid", errx.KindOf(err))
		}
	})

	t.Run("rejects url without scheme", func(t *testing.T) {
		svc := NewService(&mockRepository{}, nil)

		_, err := svc.Shorten(ctx, ShortenRequest{OriginalURL: "example.com/path"})
		if errx.KindOf(err) != errx.Invalid {
			t.Errorf("KindOf(err) = %v, want Invalid", errx.KindOf(err))
		}
	})

	t.Run("rejects non-http scheme", func(t *testing.T) {
		svc := NewService(&mockRepository{}, nil)

		_, err := svc.Shorten(ctx, ShortenRequest{OriginalURL: "ftp://example.com/file"})
		if errx.KindOf(err) != errx.Invalid {
			t.Errorf("KindOf(err) = %v, want Invalid", errx.KindOf(err))
		}
	})

	t.Run("rejects overlong url", func(t *testing.T) {
		svc := NewService(&mockRepository{}, nil)

		long := "https://example.com/" + strings.Repeat("x", MaxURLLength)
		_, err := svc.Shorten(ctx, ShortenRequest{OriginalURL: long})
		if errx.KindOf(err) != errx.Invalid {
			t.Errorf("KindOf(err) = %v, want Invalid", errx.KindOf(err))
		}
	})

	t.Run("rejects non-positive ttl", func(t *testing.T) {
		svc := NewService(&mockRepository{}, nil)

		for _, ttl := range []int64{0, -1, -3600} {
			_, err := svc.Shorten(ctx, ShortenRequest{
				OriginalURL: "https://example.com",
				TTLSeconds:  ptrInt64(ttl),
			})
			if errx.KindOf(err) != errx.Invalid {
				t.Errorf("ttl=%d: KindOf(err) = %v, want Invalid", ttl, errx.KindOf(err))
			}
		}
	})

	t.Run("rejects alias with invalid characters", func(t *testing.T) {
		svc := NewService(&mockRepository{}, nil)

		for _, alias := range []string{"has space", "a/b", "-leading", "trailing_", "emoji☃"} {
			_, err := svc.Shorten(ctx, ShortenRequest{
				OriginalURL: "https://example.com",
				Alias:       alias,
			})
			if errx.KindOf(err) != errx.Invalid {
				t.Errorf("alias=%q: KindOf(err) = %v, want Invalid", alias, errx.KindOf(err))
			}
		}
	})

	t.Run("fails with conflict when alias already exists", func(t *testing.T) {
		repo := &mockRepository{
			getByCodeFunc: func(ctx context.Context, shortCode string) (URL, error) {
				return URL{ShortCode: shortCode, IsActive: true}, nil
			},
		}
		svc := NewService(repo, nil)

		_, err := svc.Shorten(ctx, ShortenRequest{
			OriginalURL: "https://example.com",
			Alias:       "promo",
		})
		if errx.KindOf(err) != errx.Conflict {
			t.Errorf("KindOf(err) = %v, want Conflict", errx.KindOf(err))
		}
	})

	t.Run("conflict even when existing record is inactive", func(t *testing.T) {
		repo := &mockRepository{
			getByCodeFunc: func(ctx context.Context, shortCode string) (URL, error) {
				return URL{ShortCode: shortCode, IsActive: false}, nil
			},
		}
		svc := NewService(repo, nil)

		_, err := svc.Shorten(ctx, ShortenRequest{
			OriginalURL: "https://example.com",
			Alias:       "promo",
		})
		if errx.KindOf(err) != errx.Conflict {
			t.Errorf("KindOf(err) = %v, want Conflict", errx.KindOf(err))
		}
	})

	t.Run("store conflict on insert surfaces as conflict after passing pre-check", func(t *testing.T) {
		// Two concurrent requests can both pass the existence check;
		// the constraint at the store decides, the loser gets Conflict.
		repo := &mockRepository{
			getByCodeFunc: func(ctx context.Context, shortCode string) (URL, error) {
				return URL{}, errx.E("repo.GetByCode", errx.NotFound, errors.New("not found"))
			},
			createFunc: func(ctx context.Context, u URL) (URL, error) {
				return URL{}, errx.E("repo.Create", errx.Conflict, errors.New("duplicate key"))
			},
		}
		svc := NewService(repo, nil)

		_, err := svc.Shorten(ctx, ShortenRequest{
			OriginalURL: "https://example.com",
			Alias:       "promo",
		})
		if errx.KindOf(err) != errx.Conflict {
			t.Errorf("KindOf(err) = %v, want Conflict", errx.KindOf(err))
		}
	})

	t.Run("retries generated code on conflict", func(t *testing.T) {
		attempts := 0
		repo := &mockRepository{
			createFunc: func(ctx context.Context, u URL) (URL, error) {
				attempts++
				if attempts < 3 {
					return URL{}, errx.E("repo.Create", errx.Conflict, errors.New("duplicate key"))
				}
				u.ID = uuid.New()
				u.CreatedAt = time.Now()
				u.IsActive = true
				return u, nil
			},
		}
		gen := &mockCodeGenerator{codes: []string{"aaa111", "bbb222", "ccc333"}}
		svc := NewService(repo, &ServiceConfig{CodeGenerator: gen, CodeMaxRetries: 5})

		created, err := svc.Shorten(ctx, ShortenRequest{OriginalURL: "https://example.com"})
		if err != nil {
			t.Fatalf("Shorten() unexpected error: %v", err)
		}
		if created.ShortCode != "ccc333" {
			t.Errorf("ShortCode = %q, want %q", created.ShortCode, "ccc333")
		}
		if gen.callCount != 3 {
			t.Errorf("generator called %d times, want 3", gen.callCount)
		}
	})

	t.Run("fails exhausted after bounded retries", func(t *testing.T) {
		repo := &mockRepository{
			createFunc: func(ctx context.Context, u URL) (URL, error) {
				return URL{}, errx.E("repo.Create", errx.Conflict, errors.New("duplicate key"))
			},
		}
		gen := &mockCodeGenerator{}
		svc := NewService(repo, &ServiceConfig{CodeGenerator: gen, CodeMaxRetries: 4})

		_, err := svc.Shorten(ctx, ShortenRequest{OriginalURL: "https://example.com"})
		if errx.KindOf(err) != errx.Exhausted {
			t.Errorf("KindOf(err) = %v, want Exhausted", errx.KindOf(err))
		}
		if gen.callCount != 4 {
			t.Errorf("generator called %d times, want 4", gen.callCount)
		}
	})

	t.Run("does not retry on non-conflict store errors", func(t *testing.T) {
		attempts := 0
		repo := &mockRepository{
			createFunc: func(ctx context.Context, u URL) (URL, error) {
				attempts++
				return URL{}, errx.E("repo.Create", errx.Unavailable, errors.New("connection refused"))
			},
		}
		svc := NewService(repo, &ServiceConfig{CodeGenerator: &mockCodeGenerator{}})

		_, err := svc.Shorten(ctx, ShortenRequest{OriginalURL: "https://example.com"})
		if errx.KindOf(err) != errx.Unavailable {
			t.Errorf("KindOf(err) = %v, want Unavailable", errx.KindOf(err))
		}
		if attempts != 1 {
			t.Errorf("create attempted %d times, want 1", attempts)
		}
	})
}

/***************
 * Resolve
 ***************/

func TestService_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("returns original url for live record", func(t *testing.T) {
		repo := &mockRepository{
			getByCodeFunc: func(ctx context.Context, shortCode string) (URL, error) {
				return URL{
					OriginalURL: "https://example.com/a",
					ShortCode:   shortCode,
					IsActive:    true,
				}, nil
			},
		}
		svc := NewService(repo, nil)

		got, err := svc.Resolve(ctx, "abc123")
		if err != nil {
			t.Fatalf("Resolve() unexpected error: %v", err)
		}
		if got != "https://example.com/a" {
			t.Errorf("Resolve() = %q, want %q", got, "https://example.com/a")
		}
	})

	t.Run("rejects empty code", func(t *testing.T) {
		svc := NewService(&mockRepository{}, nil)

		_, err := svc.Resolve(ctx, "")
		if errx.KindOf(err) != errx.Invalid {
			t.Errorf("KindOf(err) = %v, want Invalid", errx.KindOf(err))
		}
	})

	t.Run("missing record is not found", func(t *testing.T) {
		svc := NewService(&mockRepository{}, nil)

		_, err := svc.Resolve(ctx, "nope")
		if errx.KindOf(err) != errx.NotFound {
			t.Errorf("KindOf(err) = %v, want NotFound", errx.KindOf(err))
		}
	})

	t.Run("inactive record is indistinguishable from missing", func(t *testing.T) {
		repo := &mockRepository{
			getByCodeFunc: func(ctx context.Context, shortCode string) (URL, error) {
				return URL{
					OriginalURL: "https://example.com",
					ShortCode:   shortCode,
					IsActive:    false,
				}, nil
			},
		}
		svc := NewService(repo, nil)

		_, err := svc.Resolve(ctx, "disabled")
		if errx.KindOf(err) != errx.NotFound {
			t.Errorf("KindOf(err) = %v, want NotFound", errx.KindOf(err))
		}
	})

	t.Run("expired record reports gone without deleting", func(t *testing.T) {
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		expired := now.Add(-time.Second)
		deleted := false
		repo := &mockRepository{
			getByCodeFunc: func(ctx context.Context, shortCode string) (URL, error) {
				return URL{
					OriginalURL: "https://example.com",
					ShortCode:   shortCode,
					ExpiresAt:   &expired,
					IsActive:    true,
				}, nil
			},
			deleteFunc: func(ctx context.Context, shortCode string) error {
				deleted = true
				return nil
			},
		}
		svc := NewService(repo, &ServiceConfig{Now: func() time.Time { return now }})

		_, err := svc.Resolve(ctx, "old")
		if errx.KindOf(err) != errx.Gone {
			t.Errorf("KindOf(err) = %v, want Gone", errx.KindOf(err))
		}
		if deleted {
			t.Error("Resolve() deleted the record; deletion is the reaper's job")
		}
	})

	t.Run("expiry exactly now is expired", func(t *testing.T) {
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		repo := &mockRepository{
			getByCodeFunc: func(ctx context.Context, shortCode string) (URL, error) {
				at := now
				return URL{
					OriginalURL: "https://example.com",
					ShortCode:   shortCode,
					ExpiresAt:   &at,
					IsActive:    true,
				}, nil
			},
		}
		svc := NewService(repo, &ServiceConfig{Now: func() time.Time { return now }})

		_, err := svc.Resolve(ctx, "edge")
		if errx.KindOf(err) != errx.Gone {
			t.Errorf("KindOf(err) = %v, want Gone", errx.KindOf(err))
		}
	})

	t.Run("future expiry still resolves", func(t *testing.T) {
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		future := now.Add(time.Second)
		repo := &mockRepository{
			getByCodeFunc: func(ctx context.Context, shortCode string) (URL, error) {
				return URL{
					OriginalURL: "https://example.com/b",
					ShortCode:   shortCode,
					ExpiresAt:   &future,
					IsActive:    true,
				}, nil
			},
		}
		svc := NewService(repo, &ServiceConfig{Now: func() time.Time { return now }})

		got, err := svc.Resolve(ctx, "soon")
		if err != nil {
			t.Fatalf("Resolve() unexpected error: %v", err)
		}
		if got != "https://example.com/b" {
			t.Errorf("Resolve() = %q, want %q", got, "https://example.com/b")
		}
	})

	t.Run("store errors propagate", func(t *testing.T) {
		repo := &mockRepository{
			getByCodeFunc: func(ctx context.Context, shortCode string) (URL, error) {
				return URL{}, errx.E("repo.GetByCode", errx.Unavailable, errors.New("timeout"))
			},
		}
		svc := NewService(repo, nil)

		_, err := svc.Resolve(ctx, "abc123")
		if errx.KindOf(err) != errx.Unavailable {
			t.Errorf("KindOf(err) = %v, want Unavailable", errx.KindOf(err))
		}
	})
}

/***************
 * Update
 ***************/

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("alias update rewrites alias and short code together", func(t *testing.T) {
		var gotUpdate URLUpdate
		repo := &mockRepository{
			getByCodeFunc: func(ctx context.Context, shortCode string) (URL, error) {
				return URL{}, errx.E("repo.GetByCode", errx.NotFound, errors.New("not found"))
			},
			updateFunc: func(ctx context.Context, shortCode string, upd URLUpdate) error {
				gotUpdate = upd
				return nil
			},
		}
		svc := NewService(repo, nil)

		if err := svc.Update(ctx, "abc", UpdateRequest{Alias: "xyz"}); err != nil {
			t.Fatalf("Update() unexpected error: %v", err)
		}
		if gotUpdate.NewAlias == nil || *gotUpdate.NewAlias != "xyz" {
			t.Errorf("NewAlias = %v, want xyz", gotUpdate.NewAlias)
		}
		if gotUpdate.ExpiresAt != nil {
			t.Errorf("ExpiresAt = %v, want nil when ttl not supplied", gotUpdate.ExpiresAt)
		}
	})

	t.Run("ttl update recomputes expiry from now", func(t *testing.T) {
		now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		var gotUpdate URLUpdate
		repo := &mockRepository{
			updateFunc: func(ctx context.Context, shortCode string, upd URLUpdate) error {
				gotUpdate = upd
				return nil
			},
		}
		svc := NewService(repo, &ServiceConfig{Now: func() time.Time { return now }})

		if err := svc.Update(ctx, "abc", UpdateRequest{TTLSeconds: ptrInt64(60)}); err != nil {
			t.Fatalf("Update() unexpected error: %v", err)
		}
		if gotUpdate.ExpiresAt == nil {
			t.Fatal("ExpiresAt = nil, want set")
		}
		want := now.Add(time.Minute)
		if !gotUpdate.ExpiresAt.Equal(want) {
			t.Errorf("ExpiresAt = %v, want %v", gotUpdate.ExpiresAt, want)
		}
		if gotUpdate.NewAlias != nil {
			t.Errorf("NewAlias = %v, want nil when alias not supplied", *gotUpdate.NewAlias)
		}
	})

	t.Run("rejects update with nothing to change", func(t *testing.T) {
		svc := NewService(&mockRepository{}, nil)

		err := svc.Update(ctx, "abc", UpdateRequest{})
		if errx.KindOf(err) != errx.Invalid {
			t.Errorf("KindOf(err) = %v, want Invalid", errx.KindOf(err))
		}
	})

	t.Run("rejects empty short code", func(t *testing.T) {
		svc := NewService(&mockRepository{}, nil)

		err := svc.Update(ctx, "", UpdateRequest{Alias: "xyz"})
		if errx.KindOf(err) != errx.Invalid {
			t.Errorf("KindOf(err) = %v, want Invalid", errx.KindOf(err))
		}
	})

	t.Run("rejects non-positive ttl", func(t *testing.T) {
		svc := NewService(&mockRepository{}, nil)

		err := svc.Update(ctx, "abc", UpdateRequest{TTLSeconds: ptrInt64(0)})
		if errx.KindOf(err) != errx.Invalid {
			t.Errorf("KindOf(err) = %v, want Invalid", errx.KindOf(err))
		}
	})

	t.Run("fails with conflict when new alias is taken", func(t *testing.T) {
		repo := &mockRepository{
			getByCodeFunc: func(ctx context.Context, shortCode string) (URL, error) {
				return URL{ShortCode: shortCode, IsActive: true}, nil
			},
		}
		svc := NewService(repo, nil)

		err := svc.Update(ctx, "abc", UpdateRequest{Alias: "taken"})
		if errx.KindOf(err) != errx.Conflict {
			t.Errorf("KindOf(err) = %v, want Conflict", errx.KindOf(err))
		}
	})

	t.Run("fails not found for missing record", func(t *testing.T) {
		repo := &mockRepository{
			getByCodeFunc: func(ctx context.Context, shortCode string) (URL, error) {
				return URL{}, errx.E("repo.GetByCode", errx.NotFound, errors.New("not found"))
			},
			updateFunc: func(ctx context.Context, shortCode string, upd URLUpdate) error {
				return errx.E("repo.Update", errx.NotFound, errors.New("no record with that short code"))
			},
		}
		svc := NewService(repo, nil)

		err := svc.Update(ctx, "missing", UpdateRequest{Alias: "xyz"})
		if errx.KindOf(err) != errx.NotFound {
			t.Errorf("KindOf(err) = %v, want NotFound", errx.KindOf(err))
		}
	})
}

/***************
 * Delete
 ***************/

func TestService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes existing record", func(t *testing.T) {
		called := false
		repo := &mockRepository{
			deleteFunc: func(ctx context.Context, shortCode string) error {
				called = true
				if shortCode != "abc123" {
					t.Errorf("Delete called with %q, want abc123", shortCode)
				}
				return nil
			},
		}
		svc := NewService(repo, nil)

		if err := svc.Delete(ctx, "abc123"); err != nil {
			t.Fatalf("Delete() unexpected error: %v", err)
		}
		if !called {
			t.Error("repository Delete was not called")
		}
	})

	t.Run("rejects empty short code", func(t *testing.T) {
		svc := NewService(&mockRepository{}, nil)

		err := svc.Delete(ctx, "")
		if errx.KindOf(err) != errx.Invalid {
			t.Errorf("KindOf(err) = %v, want Invalid", errx.KindOf(err))
		}
	})

	t.Run("fails not found for missing record", func(t *testing.T) {
		repo := &mockRepository{
			deleteFunc: func(ctx context.Context, shortCode string) error {
				return errx.E("repo.Delete", errx.NotFound, errors.New("no record with that short code"))
			},
		}
		svc := NewService(repo, nil)

		err := svc.Delete(ctx, "missing")
		if errx.KindOf(err) != errx.NotFound {
			t.Errorf("KindOf(err) = %v, want NotFound", errx.KindOf(err))
		}
	})
}
