package exec

import (
	"time"

	"github.com/jrmccluskey/tsquery/pkg/tsquery/tstime"
)

// Clock is the external collaborator contract from spec.md §6: now() ->
// TimeStamp.
type Clock interface {
	Now() tstime.TimeStamp
}

// SystemClock is the default Clock, backed by the Go runtime clock.
type SystemClock struct{}

func (SystemClock) Now() tstime.TimeStamp {
	return tstime.FromMillis(time.Now().UnixMilli())
}

// FixedClock is a Clock that always reports the same instant, used by
// tests that need deterministic "current time" behavior.
type FixedClock struct {
	At tstime.TimeStamp
}

func (f FixedClock) Now() tstime.TimeStamp { return f.At }
