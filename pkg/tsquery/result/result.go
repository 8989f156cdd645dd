// Package result implements Result, the batch of time-series a node
// produces for one sequenceId, and ResultView, the zero-copy wrapper every
// transforming node uses to re-present an upstream Result (spec.md §3,
// §4.2).
package result

import (
	"github.com/jrmccluskey/tsquery/pkg/tsquery/series"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/tstime"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/value"
)

// Source is the non-owning back-reference a Result carries to the node
// that emitted it (spec.md §9 "weak back-references"). It is intentionally
// minimal so that the result package never needs to import the exec
// package; exec.Node satisfies this interface structurally.
type Source interface {
	NodeID() string
}

// Result is one batch of time-series produced by a node for a given
// sequenceId (spec.md §3). sequenceId strictly increases within a single
// upstream and never repeats.
type Result interface {
	SequenceID() int64
	TimeSpecification() (tstime.Specification, bool)
	Resolution() tstime.Unit
	RollupConfig() value.RollupConfig
	IDKind() series.IDKind
	TimeSeries() []series.TimeSeries
	Source() Source
	// Close releases the Result. It is idempotent; downstream consumers
	// must call it exactly once when done (spec.md §3 Lifecycles).
	Close() error
}

// Base is a simple, owned Result implementation: the leaf representation a
// store.DataStore emits, and the building block ResultView wraps.
type Base struct {
	Seq       int64
	Spec      tstime.Specification
	HasSpec   bool
	Res       tstime.Unit
	Rollup    value.RollupConfig
	IDK       series.IDKind
	Series    []series.TimeSeries
	SourceRef Source
	closed    bool
}

// NewBase constructs a Base Result with a TimeSpecification.
func NewBase(seq int64, spec tstime.Specification, res tstime.Unit, rollup value.RollupConfig, idKind series.IDKind, ts []series.TimeSeries, src Source) *Base {
	return &Base{Seq: seq, Spec: spec, HasSpec: true, Res: res, Rollup: rollup, IDK: idKind, Series: ts, SourceRef: src}
}

// NewBaseNoSpec constructs a Base Result with no TimeSpecification.
func NewBaseNoSpec(seq int64, res tstime.Unit, rollup value.RollupConfig, idKind series.IDKind, ts []series.TimeSeries, src Source) *Base {
	return &Base{Seq: seq, Res: res, Rollup: rollup, IDK: idKind, Series: ts, SourceRef: src}
}

func (b *Base) SequenceID() int64 { return b.Seq }

func (b *Base) TimeSpecification() (tstime.Specification, bool) { return b.Spec, b.HasSpec }

func (b *Base) Resolution() tstime.Unit { return b.Res }

func (b *Base) RollupConfig() value.RollupConfig { return b.Rollup }

func (b *Base) IDKind() series.IDKind { return b.IDK }

func (b *Base) TimeSeries() []series.TimeSeries { return b.Series }

func (b *Base) Source() Source { return b.SourceRef }

// Close marks the Base closed. Idempotent, as required by spec.md §3.
func (b *Base) Close() error {
	b.closed = true
	return nil
}
