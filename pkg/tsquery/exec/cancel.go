package exec

import "sync/atomic"

// CancelToken is a cancellation flag shared through a Context (spec.md §5).
// The sliding-window scalar iterator consults it before each source point
// and, once cancelled, reports end-of-stream on its next invocation rather
// than raising. No other iterator and no node consults it: nodes keep
// delivering upstream Results and do not send onComplete on cancellation.
type CancelToken struct {
	cancelled atomic.Bool
	reason    atomic.Value // string
}

// NewCancelToken returns a fresh, uncancelled token.
func NewCancelToken() *CancelToken {
	return &CancelToken{}
}

// Cancel marks the token cancelled. Safe to call more than once; only the
// first reason sticks.
func (c *CancelToken) Cancel(reason string) {
	if c.cancelled.CompareAndSwap(false, true) {
		c.reason.Store(reason)
	}
}

// Cancelled reports whether Cancel has been called.
func (c *CancelToken) Cancelled() bool {
	return c.cancelled.Load()
}

// Reason returns the reason passed to the first Cancel call, or "" if the
// token has not been cancelled.
func (c *CancelToken) Reason() string {
	if r, ok := c.reason.Load().(string); ok {
		return r
	}
	return ""
}
