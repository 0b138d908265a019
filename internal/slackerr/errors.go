// Package slackerr implements the error taxonomy used across this module:
// every error raised carries a Kind so callers can decide whether to treat
// it as fatal, a warning to log and skip, or a signal to unwind.
package slackerr

import (
	"errors"
	"fmt"
)

// Kind classifies an error into one of the taxonomy's fixed categories.
type Kind int

const (
	// ConfigError signals a startup-fatal misconfiguration (missing token,
	// malformed config file).
	ConfigError Kind = iota
	// AuthError signals a 401/403 from a remote collaborator.
	AuthError
	// NotFoundError signals a 404 (channel/user/ticket absent).
	NotFoundError
	// RetryableError signals a 429/5xx; the client surfaces it but does not
	// itself retry.
	RetryableError
	// CancelledError signals a caller-provided deadline/cancellation fired.
	CancelledError
	// IOError signals a filesystem/write failure.
	IOError
	// SchemaError signals a row violating a required-field invariant — a bug.
	SchemaError
)

func (k Kind) String() string {
	switch k {
	case ConfigError:
		return "ConfigError"
	case AuthError:
		return "AuthError"
	case NotFoundError:
		return "NotFoundError"
	case RetryableError:
		return "RetryableError"
	case CancelledError:
		return "CancelledError"
	case IOError:
		return "IOError"
	case SchemaError:
		return "SchemaError"
	default:
		return "UnknownError"
	}
}

// Error is a Kind-tagged, entity-annotated error. Entity names the affected
// item (e.g. "user=U123", "thread=100", "ticket=ABC-123") so that per-item
// warnings are self-describing.
type Error struct {
	Kind   Kind
	Entity string
	Cause  error
}

func (e *Error) Error() string {
	if e.Entity != "" {
		return fmt.Sprintf("%s[%s]: %v", e.Kind, e.Entity, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New wraps cause with kind and an optional entity label.
func New(kind Kind, entity string, cause error) *Error {
	return &Error{Kind: kind, Entity: entity, Cause: cause}
}

// Is reports whether err (or anything it wraps) is a *Error of the given Kind.
func Is(err error, kind Kind) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}

// ExitCode maps a slackerr.Kind (or a nil/plain error) to the CLI exit code
// contract: 0 success, 1 user/config error, 2 runtime error.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var se *Error
	if errors.As(err, &se) {
		if se.Kind == ConfigError {
			return 1
		}
	}
	return 2
}
