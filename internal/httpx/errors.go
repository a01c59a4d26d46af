package httpx

import (
	"net/http"

	"github.com/shrinkr-app/shrinkr/internal/errx"
)

var kindStatus = map[errx.Kind]int{
	errx.NotFound:     http.StatusNotFound,
	errx.Conflict:     http.StatusConflict,
	errx.Invalid:      http.StatusBadRequest,
	errx.Gone:         http.StatusGone,
	errx.Exhausted:    http.StatusServiceUnavailable,
	errx.Unauthorized: http.StatusUnauthorized,
	errx.Forbidden:    http.StatusForbidden,
	errx.Unavailable:  http.StatusServiceUnavailable,
}

var kindCode = map[errx.Kind]string{
	errx.NotFound:     "not_found",
	errx.Conflict:     "conflict",
	errx.Invalid:      "invalid_input",
	errx.Gone:         "expired",
	errx.Exhausted:    "exhausted",
	errx.Unauthorized: "unauthorized",
	errx.Forbidden:    "forbidden",
	errx.Unavailable:  "unavailable",
}

// ErrorKindToStatus maps an errx.Kind to its HTTP status code.
// Unclassified kinds, including Internal, fall back to 500.
func ErrorKindToStatus(kind errx.Kind) int {
	if status, ok := kindStatus[kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ErrorKindToCode maps an errx.Kind to the machine-readable code used
// in JSON error bodies.
func ErrorKindToCode(kind errx.Kind) string {
	if code, ok := kindCode[kind]; ok {
		return code
	}
	return "internal_error"
}
