package provider

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an upstream failure. The orchestrator branches on exactly
// one kind (KindRateLimited); everything else propagates to the caller
// unchanged.
type Kind string

const (
	// KindRateLimited means the upstream explicitly signaled "too many
	// requests". The only kind that triggers provider fallback.
	KindRateLimited Kind = "rate_limited"
	// KindNotFound covers missing or unparsed resources, and operations
	// a provider does not implement.
	KindNotFound Kind = "not_found"
	// KindMalformed means the payload did not match the expected shape.
	KindMalformed Kind = "malformed"
	// KindUnauthenticated means missing or rejected credentials.
	KindUnauthenticated Kind = "unauthenticated"
	// KindUnavailable covers network failures, timeouts and 5xx responses.
	KindUnavailable Kind = "unavailable"
)

// Error is a typed upstream failure carrying the source provider name and
// the HTTP status code (0 for transport-level failures).
type Error struct {
	Source     string
	Op         string
	StatusCode int
	Kind       Kind
	Msg        string
	Err        error
}

func (e *Error) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("%s %s: %s (%s)", e.Source, e.Op, e.Msg, e.Kind)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v (%s)", e.Source, e.Op, e.Err, e.Kind)
	}
	return fmt.Sprintf("%s %s: status %d (%s)", e.Source, e.Op, e.StatusCode, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// classifyStatus maps an HTTP status to an error kind. A timeout never
// lands here; transport failures are classified as unavailable by the
// callers directly.
func classifyStatus(code int) Kind {
	switch {
	case code == http.StatusTooManyRequests:
		return KindRateLimited
	case code == http.StatusNotFound:
		return KindNotFound
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return KindUnauthenticated
	default:
		return KindUnavailable
	}
}

func isKind(err error, kind Kind) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.Kind == kind
}

// IsRateLimited reports whether err classifies as an upstream rate limit.
func IsRateLimited(err error) bool { return isKind(err, KindRateLimited) }

// IsNotFound reports whether err classifies as a missing resource.
func IsNotFound(err error) bool { return isKind(err, KindNotFound) }

// IsMalformed reports whether err classifies as a payload shape mismatch.
func IsMalformed(err error) bool { return isKind(err, KindMalformed) }

// IsUnauthenticated reports whether err classifies as a credential failure.
func IsUnauthenticated(err error) bool { return isKind(err, KindUnauthenticated) }
