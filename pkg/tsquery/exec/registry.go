package exec

import (
	"github.com/jrmccluskey/tsquery/pkg/tsquery/result"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/series"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/value"
)

// NodeKind names a node implementation for registry lookup (e.g.
// "sliding-window", "summarizer"). It is a plain string, not a reflected
// type, per spec.md §9 "explicit mapping ... no reflection".
type NodeKind string

// ScalarFactory builds a node-specific ScalarIterator over one upstream
// series.
type ScalarFactory func(node Node, res result.Result, source series.TimeSeries) series.ScalarIterator

// ArrayFactory builds a node-specific ArrayIterator over one upstream
// series.
type ArrayFactory func(node Node, res result.Result, source series.TimeSeries) series.ArrayIterator

// SummaryFactory builds a node-specific SummaryIterator over one upstream
// series.
type SummaryFactory func(node Node, res result.Result, source series.TimeSeries) series.SummaryIterator

// Registry is the IteratorFactory registry (spec.md §4.3): an explicit
// mapping from (node-kind, value-kind) to a typed iterator constructor.
type Registry struct {
	scalar  map[NodeKind]ScalarFactory
	array   map[NodeKind]ArrayFactory
	summary map[NodeKind]SummaryFactory
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		scalar:  map[NodeKind]ScalarFactory{},
		array:   map[NodeKind]ArrayFactory{},
		summary: map[NodeKind]SummaryFactory{},
	}
}

// RegisterScalar registers kind's NumericScalar factory.
func (r *Registry) RegisterScalar(kind NodeKind, f ScalarFactory) { r.scalar[kind] = f }

// RegisterArray registers kind's NumericArray factory.
func (r *Registry) RegisterArray(kind NodeKind, f ArrayFactory) { r.array[kind] = f }

// RegisterSummary registers kind's NumericSummary factory.
func (r *Registry) RegisterSummary(kind NodeKind, f SummaryFactory) { r.summary[kind] = f }

// Project wraps source for node kind, producing a TimeSeries whose
// iterators are node-specific where the node registered a factory for that
// ValueKind, and pass-through (bit-identical to source) otherwise (spec.md
// §4.3 rules 1-3).
func (r *Registry) Project(kind NodeKind, node Node, res result.Result, source series.TimeSeries) series.TimeSeries {
	return &projectedSeries{reg: r, kind: kind, node: node, res: res, source: source}
}

type projectedSeries struct {
	reg    *Registry
	kind   NodeKind
	node   Node
	res    result.Result
	source series.TimeSeries
}

func (p *projectedSeries) ID() series.ID { return p.source.ID() }

// Kinds reports the union of the source's kinds and any kind this node
// registered a node-specific factory for, since a node may introduce a
// ValueKind its source never carried (e.g. a summarizer registers only a
// NumericSummary factory over a NumericScalar/NumericArray source).
func (p *projectedSeries) Kinds() map[value.Kind]bool {
	out := map[value.Kind]bool{}
	for k, v := range p.source.Kinds() {
		out[k] = v
	}
	if _, ok := p.reg.scalar[p.kind]; ok {
		out[value.NumericScalar] = true
	}
	if _, ok := p.reg.array[p.kind]; ok {
		out[value.NumericArray] = true
	}
	if _, ok := p.reg.summary[p.kind]; ok {
		out[value.NumericSummary] = true
	}
	return out
}

// Scalar, Array, and Summary each resolve independently per spec.md §4.3:
// a node-specific factory wins if registered, otherwise the source's own
// iterator passes through unchanged, otherwise the kind is absent.
func (p *projectedSeries) Scalar() (series.ScalarIterator, bool) {
	if f, ok := p.reg.scalar[p.kind]; ok {
		return f(p.node, p.res, p.source), true
	}
	if !p.source.Kinds()[value.NumericScalar] {
		return nil, false
	}
	return p.source.Scalar()
}

func (p *projectedSeries) Array() (series.ArrayIterator, bool) {
	if f, ok := p.reg.array[p.kind]; ok {
		return f(p.node, p.res, p.source), true
	}
	if !p.source.Kinds()[value.NumericArray] {
		return nil, false
	}
	return p.source.Array()
}

func (p *projectedSeries) Summary() (series.SummaryIterator, bool) {
	if f, ok := p.reg.summary[p.kind]; ok {
		return f(p.node, p.res, p.source), true
	}
	if !p.source.Kinds()[value.NumericSummary] {
		return nil, false
	}
	return p.source.Summary()
}
