package shortener

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/shrinkr-app/shrinkr/codegen"
	"github.com/shrinkr-app/shrinkr/internal/errx"
)

const (
	DefaultCodeLength     = codegen.DefaultLength
	MinAliasLength        = 1
	MaxAliasLength        = 255
	MaxURLLength          = 2048
	DefaultCodeMaxRetries = 5
)

// ShortenRequest represents the parameters for creating a short link.
type ShortenRequest struct {
	OriginalURL string
	Alias       string // Optional: if empty, a code will be generated
	TTLSeconds  *int64 // Optional: nil means the link never expires
}

// UpdateRequest represents the parameters for updating an existing
// short link. At least one field must be supplied. A new alias
// replaces both the alias and the short code; a new TTL replaces any
// prior expiry, counted from the moment of the update. There is no
// way to clear an expiry back to "never expires".
type UpdateRequest struct {
	Alias      string
	TTLSeconds *int64
}

// Service defines the business logic operations for URL shortening.
type Service interface {
	Shorten(ctx context.Context, req ShortenRequest) (URL, error)
	Resolve(ctx context.Context, shortCode string) (string, error)
	Update(ctx context.Context, shortCode string, req UpdateRequest) error
	Delete(ctx context.Context, shortCode string) error
}

// service implements the Service interface.
type service struct {
	repo           Repository
	codeGenerator  codegen.Generator
	codeLength     int
	codeMaxRetries int
	now            func() time.Time
}

// ServiceConfig holds configuration for the service.
type ServiceConfig struct {
	CodeGenerator  codegen.Generator
	CodeLength     int
	CodeMaxRetries int              // attempts when generating a unique code (default: 5)
	Now            func() time.Time // override for tests
}

// NewService creates a new service instance.
func NewService(repo Repository, config *ServiceConfig) Service {
	if config == nil {
		config = &ServiceConfig{}
	}

	gen := config.CodeGenerator
	if gen == nil {
		gen = codegen.NewBase62()
	}

	length := config.CodeLength
	if length <= 0 || length > MaxAliasLength {
		length = DefaultCodeLength
	}

	retries := config.CodeMaxRetries
	if retries <= 0 {
		retries = DefaultCodeMaxRetries
	}

	now := config.Now
	if now == nil {
		now = time.Now
	}

	return &service{
		repo:           repo,
		codeGenerator:  gen,
		codeLength:     length,
		codeMaxRetries: retries,
		now:            now,
	}
}

// Shorten creates a new short link with an optional custom alias and
// optional TTL.
func (s *service) Shorten(ctx context.Context, req ShortenRequest) (URL, error) {
	const op = "shortener.service.Shorten"

	if err := validateURL(req.OriginalURL); err != nil {
		return URL{}, errx.E(op, errx.Invalid, err)
	}

	expiresAt, err := s.computeExpiry(req.TTLSeconds)
	if err != nil {
		return URL{}, errx.E(op, errx.Invalid, err)
	}

	// Custom alias path: pre-check, then create once. The pre-check is
	// a fast path for a friendly error; the unique constraint at the
	// store decides races, so a concurrent winner still turns the
	// loser's insert into a conflict rather than a duplicate.
	if req.Alias != "" {
		if err := validateAlias(req.Alias); err != nil {
			return URL{}, errx.E(op, errx.Invalid, err)
		}

		if err := s.checkAliasFree(ctx, req.Alias); err != nil {
			return URL{}, errx.E(op, errx.KindOf(err), err)
		}

		alias := req.Alias
		created, err := s.repo.Create(ctx, URL{
			OriginalURL: req.OriginalURL,
			ShortCode:   alias,
			Alias:       &alias,
			ExpiresAt:   expiresAt,
		})
		if err != nil {
			return URL{}, errx.E(op, errx.KindOf(err), err)
		}
		return created, nil
	}

	// Generated code path: retry on conflicts
	for range s.codeMaxRetries {
		code, err := s.codeGenerator.Generate(s.codeLength)
		if err != nil {
			return URL{}, errx.E(op, errx.Unavailable, err)
		}

		created, err := s.repo.Create(ctx, URL{
			OriginalURL: req.OriginalURL,
			ShortCode:   code,
			ExpiresAt:   expiresAt,
		})
		if err == nil {
			return created, nil
		}

		// Retry on conflict, fail on other errors
		if errx.KindOf(err) != errx.Conflict {
			return URL{}, errx.E(op, errx.KindOf(err), err)
		}
	}

	return URL{}, errx.E(op, errx.Exhausted,
		errors.New("could not generate unique short code after retries"))
}

// Resolve returns the original URL for a live short code. Inactive
// records are indistinguishable from missing ones; expired records
// report a distinct condition and are left in place for the reaper.
func (s *service) Resolve(ctx context.Context, shortCode string) (string, error) {
	const op = "shortener.service.Resolve"

	if shortCode == "" {
		return "", errx.E(op, errx.Invalid, errors.New("short code cannot be empty"))
	}

	u, err := s.repo.GetByCode(ctx, shortCode)
	if err != nil {
		return "", errx.E(op, errx.KindOf(err), err)
	}

	if !u.IsActive {
		return "", errx.E(op, errx.NotFound, errors.New("short code not found"))
	}

	if u.Expired(s.now()) {
		return "", errx.E(op, errx.Gone, errors.New("short link has expired"))
	}

	return u.OriginalURL, nil
}

// Update changes the alias and/or TTL of an existing record.
func (s *service) Update(ctx context.Context, shortCode string, req UpdateRequest) error {
	const op = "shortener.service.Update"

	if shortCode == "" {
		return errx.E(op, errx.Invalid, errors.New("short code cannot be empty"))
	}
	if req.Alias == "" && req.TTLSeconds == nil {
		return errx.E(op, errx.Invalid, errors.New("nothing to update: supply an alias or a ttl"))
	}

	upd := URLUpdate{}

	if req.Alias != "" {
		if err := validateAlias(req.Alias); err != nil {
			return errx.E(op, errx.Invalid, err)
		}
		if err := s.checkAliasFree(ctx, req.Alias); err != nil {
			return errx.E(op, errx.KindOf(err), err)
		}
		alias := req.Alias
		upd.NewAlias = &alias
	}

	if req.TTLSeconds != nil {
		expiresAt, err := s.computeExpiry(req.TTLSeconds)
		if err != nil {
			return errx.E(op, errx.Invalid, err)
		}
		upd.ExpiresAt = expiresAt
	}

	if err := s.repo.Update(ctx, shortCode, upd); err != nil {
		return errx.E(op, errx.KindOf(err), err)
	}
	return nil
}

// Delete hard-deletes a record regardless of its active or expiry
// state. Deleted records are gone for good.
func (s *service) Delete(ctx context.Context, shortCode string) error {
	const op = "shortener.service.Delete"

	if shortCode == "" {
		return errx.E(op, errx.Invalid, errors.New("short code cannot be empty"))
	}

	if err := s.repo.Delete(ctx, shortCode); err != nil {
		return errx.E(op, errx.KindOf(err), err)
	}
	return nil
}

// computeExpiry turns an optional TTL in seconds into an absolute
// expiry timestamp. A nil TTL means no expiry.
func (s *service) computeExpiry(ttlSeconds *int64) (*time.Time, error) {
	if ttlSeconds == nil {
		return nil, nil
	}
	if *ttlSeconds <= 0 {
		return nil, errors.New("ttl must be a positive number of seconds")
	}
	expiresAt := s.now().Add(time.Duration(*ttlSeconds) * time.Second)
	return &expiresAt, nil
}

// checkAliasFree reports Conflict if any record already uses the alias
// as its short code. Since an alias becomes the short code, checking
// the short code column covers both generated codes and aliases.
func (s *service) checkAliasFree(ctx context.Context, alias string) error {
	const op = "shortener.service.checkAliasFree"

	_, err := s.repo.GetByCode(ctx, alias)
	switch {
	case err == nil:
		return errx.E(op, errx.Conflict, errors.New("alias already exists"))
	case errx.KindOf(err) == errx.NotFound:
		return nil
	default:
		return errx.E(op, errx.KindOf(err), err)
	}
}

func validateURL(rawURL string) error {
	if rawURL == "" {
		return errors.New("url cannot be empty")
	}
	if len(rawURL) > MaxURLLength {
		return errors.New("url too long (max 2048 characters)")
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return errors.New("invalid url format")
	}
	if parsedURL.Scheme == "" {
		return errors.New("url must include scheme (http or https)")
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return errors.New("url scheme must be http or https")
	}
	if parsedURL.Host == "" {
		return errors.New("url must include host")
	}
	return nil
}

func validateAlias(alias string) error {
	if alias == "" {
		return errors.New("alias cannot be empty")
	}
	if len(alias) > MaxAliasLength {
		return errors.New("alias too long (maximum 255 characters)")
	}

	if strings.HasPrefix(alias, "-") || strings.HasPrefix(alias, "_") ||
		strings.HasSuffix(alias, "-") || strings.HasSuffix(alias, "_") {
		return errors.New("alias cannot start or end with dash or underscore")
	}

	for _, char := range alias {
		if !isValidAliasChar(char) {
			return errors.New("alias contains invalid characters (only alphanumeric, dash, and underscore allowed)")
		}
	}
	return nil
}

func isValidAliasChar(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_':
		return true
	default:
		return false
	}
}
