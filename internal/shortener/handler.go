package shortener

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shrinkr-app/shrinkr/internal/errx"
	"github.com/shrinkr-app/shrinkr/internal/httpx"
)

// HTTPShortenRequest represents the JSON request body for creating a short link.
type HTTPShortenRequest struct {
	OriginalURL string `json:"original_url"`
	Alias       string `json:"alias,omitempty"`
	TTL         *int64 `json:"ttl,omitempty"` // seconds
}

// HTTPUpdateRequest represents the JSON request body for updating a short link.
type HTTPUpdateRequest struct {
	Alias string `json:"alias,omitempty"`
	TTL   *int64 `json:"ttl,omitempty"` // seconds, counted from now
}

// ShortenResponse represents the JSON response for a created link.
type ShortenResponse struct {
	ID          string  `json:"id"`
	OriginalURL string  `json:"original_url"`
	ShortURL    string  `json:"short_url"`
	ShortCode   string  `json:"short_code"`
	Alias       *string `json:"alias"`
	TTL         *string `json:"ttl"` // absolute expiry timestamp, null when the link never expires
	CreatedAt   string  `json:"created_at"`
}

// Handler provides HTTP handlers for the URL shortener service.
type Handler struct {
	service Service
	logger  *slog.Logger
	baseURL string
}

// HandlerConfig holds configuration for the handler.
type HandlerConfig struct {
	Service Service
	Logger  *slog.Logger
	BaseURL string // Base URL for constructing short URLs (e.g., "https://shrin.kr")
}

// NewHandler creates a new Handler instance.
func NewHandler(cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		service: cfg.Service,
		logger:  logger,
		baseURL: cfg.BaseURL,
	}
}

// Shorten handles POST requests to create a new short link.
func (h *Handler) Shorten(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.requestLogger(r)

	req, err := httpx.DecodeJSON[HTTPShortenRequest](r)
	if err != nil {
		logger.WarnContext(ctx, "failed to decode request",
			"error", err.Error(),
		)
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error(), nil)
		return
	}

	if req.OriginalURL == "" {
		logger.WarnContext(ctx, "request validation failed", "error", "original_url is required")
		httpx.WriteError(w, http.StatusBadRequest, "validation_failed", "original_url is required", nil)
		return
	}

	created, err := h.service.Shorten(ctx, ShortenRequest{
		OriginalURL: req.OriginalURL,
		Alias:       req.Alias,
		TTLSeconds:  req.TTL,
	})
	if err != nil {
		h.handleShortenError(ctx, w, err)
		return
	}

	logger.InfoContext(ctx, "short link created",
		"link_id", created.ID.String(),
		"short_code", created.ShortCode,
		"custom_alias", req.Alias != "",
		"expires", created.ExpiresAt != nil,
	)

	httpx.WriteJSON(w, http.StatusCreated, h.toShortenResponse(created))
}

// Redirect handles GET requests that resolve a short code and redirect
// to the original URL.
func (h *Handler) Redirect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.requestLogger(r)

	shortCode := r.PathValue("short_code")
	if shortCode == "" {
		logger.WarnContext(ctx, "missing short code in path")
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "short code is required", nil)
		return
	}

	originalURL, err := h.service.Resolve(ctx, shortCode)
	if err != nil {
		h.handleResolveError(ctx, w, err, shortCode)
		return
	}

	logger.InfoContext(ctx, "short code resolved",
		"short_code", shortCode,
		"original_url", originalURL,
	)

	http.Redirect(w, r, originalURL, http.StatusFound)
}

// Update handles PUT requests that change a link's alias and/or TTL.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.requestLogger(r)

	shortCode := r.PathValue("short_code")
	if shortCode == "" {
		logger.WarnContext(ctx, "missing short code in path")
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "short code is required", nil)
		return
	}

	req, err := httpx.DecodeJSON[HTTPUpdateRequest](r)
	if err != nil {
		logger.WarnContext(ctx, "failed to decode request",
			"error", err.Error(),
		)
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error(), nil)
		return
	}

	err = h.service.Update(ctx, shortCode, UpdateRequest{
		Alias:      req.Alias,
		TTLSeconds: req.TTL,
	})
	if err != nil {
		h.handleUpdateError(ctx, w, err, shortCode)
		return
	}

	logger.InfoContext(ctx, "short link updated",
		"short_code", shortCode,
		"new_alias", req.Alias != "",
		"new_ttl", req.TTL != nil,
	)

	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "URL updated successfully",
	})
}

// Delete handles DELETE requests that permanently remove a short link.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := h.requestLogger(r)

	shortCode := r.PathValue("short_code")
	if shortCode == "" {
		logger.WarnContext(ctx, "missing short code in path")
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "short code is required", nil)
		return
	}

	if err := h.service.Delete(ctx, shortCode); err != nil {
		h.handleDeleteError(ctx, w, err, shortCode)
		return
	}

	logger.InfoContext(ctx, "short link deleted", "short_code", shortCode)

	httpx.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "URL deleted successfully",
	})
}

func (h *Handler) requestLogger(r *http.Request) *slog.Logger {
	return h.logger.With(
		"request_id", httpx.GetRequestID(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
	)
}

func (h *Handler) toShortenResponse(u URL) ShortenResponse {
	var ttl *string
	if u.ExpiresAt != nil {
		s := u.ExpiresAt.Format(time.RFC3339)
		ttl = &s
	}

	return ShortenResponse{
		ID:          u.ID.String(),
		OriginalURL: u.OriginalURL,
		ShortURL:    fmt.Sprintf("%s/%s", h.baseURL, u.ShortCode),
		ShortCode:   u.ShortCode,
		Alias:       u.Alias,
		TTL:         ttl,
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
}

// respondError writes the standard status and code for kind along
// with an operation-specific message.
func (h *Handler) respondError(w http.ResponseWriter, kind errx.Kind, message string, details any) {
	httpx.WriteError(w, httpx.ErrorKindToStatus(kind), httpx.ErrorKindToCode(kind), message, details)
}

// handleShortenError handles errors from the Shorten service method.
func (h *Handler) handleShortenError(ctx context.Context, w http.ResponseWriter, err error) {
	kind := errx.KindOf(err)

	logAttrs := []any{
		"error", err.Error(),
		"error_kind", kind,
		"operation", errx.OpOf(err),
	}

	switch kind {
	case errx.Conflict:
		h.logger.WarnContext(ctx, "alias conflict", logAttrs...)
		h.respondError(w, kind, "Alias already exists",
			map[string]string{
				"hint": "Try a different alias or let us generate a code for you",
			})

	case errx.Invalid:
		h.logger.WarnContext(ctx, "invalid shorten request", logAttrs...)
		h.respondError(w, kind, err.Error(), nil)

	case errx.Exhausted:
		h.logger.ErrorContext(ctx, "short code space exhausted", logAttrs...)
		h.respondError(w, kind, "Unable to find a free short code. Please try again.", nil)

	case errx.Unavailable:
		h.logger.ErrorContext(ctx, "store unavailable", logAttrs...)
		h.respondError(w, kind, "Unable to create short link at this time. Please try again.", nil)

	default:
		h.logger.ErrorContext(ctx, "unexpected error creating short link", logAttrs...)
		h.respondError(w, errx.Internal, "Unable to create short link at this time. Please try again.", nil)
	}
}

// handleResolveError handles errors from the Resolve service method.
func (h *Handler) handleResolveError(ctx context.Context, w http.ResponseWriter, err error, shortCode string) {
	kind := errx.KindOf(err)

	logAttrs := []any{
		"error", err.Error(),
		"error_kind", kind,
		"operation", errx.OpOf(err),
		"short_code", shortCode,
	}

	switch kind {
	case errx.NotFound:
		h.logger.WarnContext(ctx, "short code not found", logAttrs...)
		h.respondError(w, kind, "short link doesn't exist", nil)

	case errx.Gone:
		h.logger.InfoContext(ctx, "short link expired", logAttrs...)
		h.respondError(w, kind, "short link has expired", nil)

	case errx.Invalid:
		h.logger.WarnContext(ctx, "invalid short code", logAttrs...)
		h.respondError(w, kind, err.Error(), nil)

	case errx.Unavailable:
		h.logger.ErrorContext(ctx, "store unavailable", logAttrs...)
		h.respondError(w, kind, "Unable to resolve this link at this time", nil)

	default:
		h.logger.ErrorContext(ctx, "unexpected error resolving short link", logAttrs...)
		h.respondError(w, errx.Internal, "Unable to resolve this link at this time", nil)
	}
}

// handleUpdateError handles errors from the Update service method.
func (h *Handler) handleUpdateError(ctx context.Context, w http.ResponseWriter, err error, shortCode string) {
	kind := errx.KindOf(err)

	logAttrs := []any{
		"error", err.Error(),
		"error_kind", kind,
		"operation", errx.OpOf(err),
		"short_code", shortCode,
	}

	switch kind {
	case errx.NotFound:
		h.logger.WarnContext(ctx, "short code not found", logAttrs...)
		h.respondError(w, kind, "short link doesn't exist", nil)

	case errx.Conflict:
		h.logger.WarnContext(ctx, "alias conflict", logAttrs...)
		h.respondError(w, kind, "Alias already exists", nil)

	case errx.Invalid:
		h.logger.WarnContext(ctx, "invalid update request", logAttrs...)
		h.respondError(w, kind, err.Error(), nil)

	case errx.Unavailable:
		h.logger.ErrorContext(ctx, "store unavailable", logAttrs...)
		h.respondError(w, kind, "Unable to update this link at this time", nil)

	default:
		h.logger.ErrorContext(ctx, "unexpected error updating short link", logAttrs...)
		h.respondError(w, errx.Internal, "Unable to update this link at this time", nil)
	}
}

// handleDeleteError handles errors from the Delete service method.
func (h *Handler) handleDeleteError(ctx context.Context, w http.ResponseWriter, err error, shortCode string) {
	kind := errx.KindOf(err)

	logAttrs := []any{
		"error", err.Error(),
		"error_kind", kind,
		"operation", errx.OpOf(err),
		"short_code", shortCode,
	}

	switch kind {
	case errx.NotFound:
		h.logger.WarnContext(ctx, "short code not found", logAttrs...)
		h.respondError(w, kind, "short link doesn't exist", nil)

	case errx.Invalid:
		h.logger.WarnContext(ctx, "invalid delete request", logAttrs...)
		h.respondError(w, kind, err.Error(), nil)

	case errx.Unavailable:
		h.logger.ErrorContext(ctx, "store unavailable", logAttrs...)
		h.respondError(w, kind, "Unable to delete this link at this time", nil)

	default:
		h.logger.ErrorContext(ctx, "unexpected error deleting short link", logAttrs...)
		h.respondError(w, errx.Internal, "Unable to delete this link at this time", nil)
	}
}
