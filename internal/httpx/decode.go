package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxRequestBodySize caps request bodies at 1MB. Shorten and update
// payloads are tiny; anything near the cap is not a legitimate request.
const MaxRequestBodySize = 1 << 20

// DecodeJSON reads a single JSON document from the request body into T.
// Unknown fields and trailing data are rejected so that client typos
// surface as 400s instead of silently dropped fields.
func DecodeJSON[T any](r *http.Request) (T, error) {
	var v T

	r.Body = http.MaxBytesReader(nil, r.Body, MaxRequestBodySize)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&v); err != nil {
		var zero T
		return zero, decodeError(err)
	}

	if dec.More() {
		var zero T
		return zero, errors.New("request body must contain a single JSON object")
	}

	return v, nil
}

func decodeError(err error) error {
	var (
		syntaxErr   *json.SyntaxError
		typeErr     *json.UnmarshalTypeError
		maxBytesErr *http.MaxBytesError
	)

	switch {
	case errors.Is(err, io.EOF):
		return errors.New("request body is empty")
	case errors.As(err, &syntaxErr):
		return fmt.Errorf("malformed JSON at position %d", syntaxErr.Offset)
	case errors.As(err, &typeErr):
		if typeErr.Field == "" {
			return fmt.Errorf("invalid JSON value of type %s", typeErr.Value)
		}
		return fmt.Errorf("invalid value for field %q", typeErr.Field)
	case errors.As(err, &maxBytesErr):
		return fmt.Errorf("request body too large (max %d bytes)", MaxRequestBodySize)
	default:
		return fmt.Errorf("failed to decode JSON: %w", err)
	}
}
