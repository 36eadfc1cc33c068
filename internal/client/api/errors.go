package api

import (
	"errors"
	"fmt"
)

// Kind classifies a failed remote call. Every error returned by this
// package carries exactly one kind, so callers can branch without
// inspecting transport details.
type Kind string

const (
	// KindAuthRejected: the login credentials were not accepted.
	KindAuthRejected Kind = "auth_rejected"
	// KindValidationRejected: a registration constraint was violated,
	// e.g. a duplicate username.
	KindValidationRejected Kind = "validation_rejected"
	// KindSessionExpired: a previously valid credential was rejected on a
	// protected call.
	KindSessionExpired Kind = "session_expired"
	// KindRequestRejected: any other 4xx on a data operation.
	KindRequestRejected Kind = "request_rejected"
	// KindUnreachable: transport failure or a 5xx response.
	KindUnreachable Kind = "unreachable"
)

// Error is the uniform failure shape for remote calls: a machine-readable
// kind plus an optional human-readable detail drawn from the server
// response when present.
type Error struct {
	Kind   Kind
	Detail string
	cause  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %s: %s", e.Kind, e.Message())
}

// Message returns the server-supplied detail when present, else a generic
// fallback suitable for direct display near the triggering form or action.
func (e *Error) Message() string {
	if e.Detail != "" {
		return e.Detail
	}
	switch e.Kind {
	case KindAuthRejected:
		return "login failed"
	case KindValidationRejected:
		return "registration failed"
	case KindSessionExpired:
		return "session expired, please log in again"
	case KindRequestRejected:
		return "request rejected"
	default:
		return "server unreachable"
	}
}

func (e *Error) Unwrap() error { return e.cause }

func newError(kind Kind, detail string, cause error) *Error {
	return &Error{Kind: kind, Detail: detail, cause: cause}
}

// KindOf extracts the failure kind from err, or "" when err is not an
// *Error from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
