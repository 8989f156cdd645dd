package exec

import (
	"errors"
	"testing"
)

func TestNewConfigErrorFormatsMessage(t *testing.T) {
	err := NewConfigError("missing field %q", "id")
	if err.Kind != ConfigError {
		t.Fatalf("Kind = %v, want ConfigError", err.Kind)
	}
	if err.Error() != "ConfigError: missing field \"id\"" {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestNewTypeErrorFormatsMessage(t *testing.T) {
	err := NewTypeError("out of order at %d", 3)
	if err.Kind != TypeError {
		t.Fatalf("Kind = %v, want TypeError", err.Kind)
	}
}

func TestWrapUpstreamErrorPreservesCoreErrors(t *testing.T) {
	original := NewConfigError("bad window")
	wrapped := WrapUpstreamError(original)
	if wrapped != original {
		t.Fatal("WrapUpstreamError should pass a core *Error through unchanged")
	}
}

func TestWrapUpstreamErrorTagsForeignErrors(t *testing.T) {
	foreign := errors.New("boom")
	wrapped := WrapUpstreamError(foreign)
	e, ok := wrapped.(*Error)
	if !ok {
		t.Fatal("WrapUpstreamError should return a *Error")
	}
	if e.Kind != UpstreamError {
		t.Fatalf("Kind = %v, want UpstreamError", e.Kind)
	}
	if !errors.Is(e, foreign) {
		t.Fatal("the original error should still be unwrappable via errors.Is")
	}
}

func TestWrapUpstreamErrorNil(t *testing.T) {
	if WrapUpstreamError(nil) != nil {
		t.Fatal("WrapUpstreamError(nil) should return nil")
	}
}

func TestNewCancelledCarriesReason(t *testing.T) {
	err := NewCancelled("deadline exceeded")
	if err.Kind != Cancelled {
		t.Fatalf("Kind = %v, want Cancelled", err.Kind)
	}
	if err.Error() != "Cancelled: deadline exceeded" {
		t.Fatalf("Error() = %q", err.Error())
	}
}

func TestErrorKindString(t *testing.T) {
	cases := map[ErrorKind]string{
		ConfigError:   "ConfigError",
		UpstreamError: "UpstreamError",
		TypeError:     "TypeError",
		Cancelled:     "Cancelled",
		ErrorKind(99): "UnknownError",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Fatalf("ErrorKind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestKindErrorMatchesByKindOnlyViaErrorsIs(t *testing.T) {
	specific := NewConfigError("missing field %q", "id")
	if !errors.Is(specific, KindError(ConfigError)) {
		t.Fatal("errors.Is should match on Kind alone, ignoring Message")
	}
	if errors.Is(specific, KindError(TypeError)) {
		t.Fatal("errors.Is should not match a different Kind")
	}
}
