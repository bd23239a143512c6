package workflow

import (
	"errors"
	"fmt"
)

// Kind classifies why a workflow call was rejected.
type Kind string

const (
	KindNotFound          Kind = "NOT_FOUND"
	KindInsufficientStock Kind = "INSUFFICIENT_STOCK"
	KindForbidden         Kind = "FORBIDDEN"
	KindNotEligible       Kind = "NOT_ELIGIBLE"
	KindDuplicateReview   Kind = "DUPLICATE_REVIEW"
	KindInvalidInput      Kind = "INVALID_INPUT"
	KindStoreUnavailable  Kind = "STORE_UNAVAILABLE"
)

// Sentinels for errors.Is. Any *Error of the same Kind matches.
var (
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrInsufficientStock = &Error{Kind: KindInsufficientStock}
	ErrForbidden         = &Error{Kind: KindForbidden}
	ErrNotEligible       = &Error{Kind: KindNotEligible}
	ErrDuplicateReview   = &Error{Kind: KindDuplicateReview}
	ErrInvalidInput      = &Error{Kind: KindInvalidInput}
	ErrStoreUnavailable  = &Error{Kind: KindStoreUnavailable}
)

// Error is the typed outcome of a rejected workflow call. A rejected call leaves
// the store unchanged.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	s := string(e.Kind)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(op string, kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// KindOf returns the Kind of err, or "" when err is not a workflow error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsRetryable reports whether err is transient. Only store failures are;
// every other kind needs new input before a retry can succeed.
func IsRetryable(err error) bool {
	return KindOf(err) == KindStoreUnavailable
}
