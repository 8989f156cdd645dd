package exec

import (
	"log/slog"

	"github.com/jrmccluskey/tsquery/pkg/tsquery/value"
)

// Context is the PipelineContext shared across every node in one query
// execution (spec.md §4.6): a handle to the IteratorFactory registry, a
// Clock, and a CancelToken. One Context is constructed per pipeline
// execution; node instances may be shared across pipelines only if they
// hold no per-query state (spec.md §5).
type Context struct {
	Registry *Registry
	Clock    Clock
	Cancel   *CancelToken
	Logger   *slog.Logger
}

// NewContext builds a Context with the given registry and clock. A nil
// clock defaults to SystemClock{}; a nil logger defaults to
// slog.Default().
func NewContext(reg *Registry, clock Clock, logger *slog.Logger) *Context {
	if clock == nil {
		clock = SystemClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Context{Registry: reg, Clock: clock, Cancel: NewCancelToken(), Logger: logger}
}

// NodeFactory is the external-facing construction contract per node kind
// (spec.md §6): Create builds a Node from a context, id, and descriptor
// config; ValueKinds reports which ValueKinds the node transforms (the rest
// pass through unchanged, per spec.md §4.3).
type NodeFactory interface {
	Kind() NodeKind
	ValueKinds() map[value.Kind]bool
	Create(ctx *Context, id string, config map[string]any) (Node, error)
}
