// Package errx classifies application errors by kind so transport
// layers can map them to status codes without inspecting messages.
package errx

import (
	"errors"
	"fmt"
)

// Kind is the coarse classification of an error.
type Kind uint8

const (
	Unknown Kind = iota
	NotFound
	Conflict
	Invalid
	Gone        // resource existed but its TTL has elapsed
	Exhausted   // retry budget spent without success
	Unauthorized
	Forbidden
	Unavailable
	Internal
)

var kindNames = [...]string{
	Unknown:      "Unknown",
	NotFound:     "NotFound",
	Conflict:     "Conflict",
	Invalid:      "Invalid",
	Gone:         "Gone",
	Exhausted:    "Exhausted",
	Unauthorized: "Unauthorized",
	Forbidden:    "Forbidden",
	Unavailable:  "Unavailable",
	Internal:     "Internal",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Error wraps an underlying error with the operation that produced it
// and its kind.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

// E builds an *Error. A nil err yields nil so call sites can wrap
// unconditionally.
func E(op string, kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{
		Op:   op,
		Kind: kind,
		Err:  err,
	}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op
	}
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of the first *Error in err's chain, or
// Unknown when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// OpOf returns the operation of the first *Error in err's chain.
func OpOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Op
	}
	return ""
}
