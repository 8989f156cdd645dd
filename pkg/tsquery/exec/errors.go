package exec

import "fmt"

// ErrorKind is the closed set of error kinds the core can raise (spec.md
// §7).
type ErrorKind int

const (
	// ConfigError: invalid or missing config, raised at node construction.
	ConfigError ErrorKind = iota
	// UpstreamError: a wrapped error received from an upstream node,
	// re-emitted unchanged.
	UpstreamError
	// TypeError: a series exposes a kind whose element representation
	// violates an invariant (out-of-order timestamps, missing interval).
	TypeError
	// Cancelled: operation aborted by the cancellation token.
	Cancelled
)

func (k ErrorKind) String() string {
	switch k {
	case ConfigError:
		return "ConfigError"
	case UpstreamError:
		return "UpstreamError"
	case TypeError:
		return "TypeError"
	case Cancelled:
		return "Cancelled"
	default:
		return "UnknownError"
	}
}

// Error is the core's single error type: a closed Kind plus a
// human-readable message and an optional wrapped cause (spec.md §7, "a
// failed result carries the error kind and a human-readable message").
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches any *Error with the same Kind, so callers can test
// errors.Is(err, exec.KindError(exec.ConfigError)) without needing to
// construct the original message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// KindError returns a bare *Error carrying only a Kind, for use with
// errors.Is.
func KindError(k ErrorKind) *Error { return &Error{Kind: k} }

// NewConfigError builds a ConfigError with a formatted message.
func NewConfigError(format string, args ...any) *Error {
	return &Error{Kind: ConfigError, Message: fmt.Sprintf(format, args...)}
}

// NewTypeError builds a TypeError with a formatted message.
func NewTypeError(format string, args ...any) *Error {
	return &Error{Kind: TypeError, Message: fmt.Sprintf(format, args...)}
}

// WrapUpstreamError re-wraps an error received from an upstream node,
// unchanged in meaning (spec.md §7 propagation policy), tagging it
// UpstreamError if it isn't already a core *Error.
func WrapUpstreamError(err error) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	return &Error{Kind: UpstreamError, Message: "upstream error", Cause: err}
}

// NewCancelled builds a Cancelled error.
func NewCancelled(reason string) *Error {
	return &Error{Kind: Cancelled, Message: reason}
}
