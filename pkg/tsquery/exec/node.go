package exec

import (
	"log/slog"
	"sync"

	"github.com/jrmccluskey/tsquery/pkg/tsquery/result"
)

// Node is the abstract lifecycle every pipeline node implements (spec.md
// §4.1). Upstreams push via OnNext synchronously on the caller's goroutine;
// a node must either emit immediately or buffer internally — no
// backpressure protocol is prescribed at this layer.
type Node interface {
	result.Source
	// OnNext is called by from when a Result is available.
	OnNext(from Node, res result.Result) error
	// OnComplete announces that from has produced totalSeq results in
	// total, the last one carrying finalSeq.
	OnComplete(from Node, finalSeq, totalSeq int64) error
	// OnError propagates an upstream error as-is; no recovery at this
	// layer.
	OnError(from Node, err error) error
	// Close releases any retained resources. Idempotent.
	Close() error
}

// Base implements the wiring, fan-in/fan-out bookkeeping, and default
// error/complete propagation every concrete Node embeds (spec.md §4.1). It
// does not implement OnNext itself — each node kind defines its own,
// typically ending with a call to SendDownstream.
type Base struct {
	id          string
	logger      *slog.Logger
	mu          sync.Mutex
	downstreams []Node
	errored     map[string]bool
	closed      bool
}

// NewBase constructs a Base with the given node id. A nil logger falls
// back to slog.Default().
func NewBase(id string, logger *slog.Logger) *Base {
	if logger == nil {
		logger = slog.Default()
	}
	return &Base{id: id, logger: logger}
}

// NodeID implements result.Source.
func (b *Base) NodeID() string { return b.id }

// Logger returns the node's logger.
func (b *Base) Logger() *slog.Logger { return b.logger }

// AddDownstream wires n as a downstream consumer of this node's output.
func (b *Base) AddDownstream(n Node) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.downstreams = append(b.downstreams, n)
}

// Downstreams returns the node's current downstream wiring.
func (b *Base) Downstreams() []Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Node, len(b.downstreams))
	copy(out, b.downstreams)
	return out
}

// MarkErrored records that from has delivered an error. Once any upstream
// has errored, the node must stop producing its own results but must still
// forward onComplete from its other upstreams (spec.md §4.1).
func (b *Base) MarkErrored(fromID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.errored == nil {
		b.errored = map[string]bool{}
	}
	b.errored[fromID] = true
}

// HasErrored reports whether fromID (or any upstream, if fromID is "") has
// previously delivered an error to this node.
func (b *Base) HasErrored(fromID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if fromID == "" {
		return len(b.errored) > 0
	}
	return b.errored[fromID]
}

// SendDownstream forwards res to every downstream, reporting self as the
// sender. It stops at the first error, mirroring synchronous push
// semantics: a failing downstream short-circuits the fan-out.
func (b *Base) SendDownstream(self Node, res result.Result) error {
	for _, d := range b.Downstreams() {
		if err := d.OnNext(self, res); err != nil {
			return err
		}
	}
	return nil
}

// ForwardComplete forwards onComplete to every downstream, preserving
// (finalSeq, totalSeq) exactly (spec.md §4.1).
func (b *Base) ForwardComplete(self Node, finalSeq, totalSeq int64) error {
	for _, d := range b.Downstreams() {
		if err := d.OnComplete(self, finalSeq, totalSeq); err != nil {
			return err
		}
	}
	return nil
}

// ForwardError propagates err to every downstream through WrapUpstreamError
// (a core *Error passes through as is; any other error arrives tagged
// UpstreamError) and returns that propagated error (spec.md §7: "no
// recovery at this layer").
func (b *Base) ForwardError(self Node, err error) error {
	wrapped := WrapUpstreamError(err)
	for _, d := range b.Downstreams() {
		if ferr := d.OnError(self, wrapped); ferr != nil {
			return ferr
		}
	}
	return wrapped
}

// Close marks the node closed. Idempotent (spec.md §4.1).
func (b *Base) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (b *Base) Closed() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.closed
}
