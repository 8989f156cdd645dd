package result

import (
	"sync"

	"github.com/jrmccluskey/tsquery/pkg/tsquery/series"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/tstime"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/value"
)

// View is the Result wrapper every transforming node uses (spec.md §4.2).
// It delegates all metadata to the wrapped upstream Result and replaces
// only TimeSeries() with freshly projected series; it reports itself
// (rather than the upstream) as the source node for downstream traversal.
// Closing a View closes the wrapped Result exactly once, even if Close is
// called more than once or concurrently.
type View struct {
	upstream  Result
	projected []series.TimeSeries
	src       Source
	once      sync.Once
	closeErr  error
}

// Project turns one upstream TimeSeries into its wrapped projection. Nodes
// supply this via their IteratorFactory registrations (spec.md §4.3).
type Project func(series.TimeSeries) series.TimeSeries

// NewView wraps upstream, projecting each of its series through project and
// reporting src as the new source node.
func NewView(upstream Result, src Source, project Project) *View {
	srcSeries := upstream.TimeSeries()
	projected := make([]series.TimeSeries, len(srcSeries))
	for i, s := range srcSeries {
		projected[i] = project(s)
	}
	return &View{upstream: upstream, projected: projected, src: src}
}

func (v *View) SequenceID() int64 { return v.upstream.SequenceID() }

func (v *View) TimeSpecification() (tstime.Specification, bool) {
	return v.upstream.TimeSpecification()
}

func (v *View) Resolution() tstime.Unit { return v.upstream.Resolution() }

func (v *View) RollupConfig() value.RollupConfig { return v.upstream.RollupConfig() }

func (v *View) IDKind() series.IDKind { return v.upstream.IDKind() }

func (v *View) TimeSeries() []series.TimeSeries { return v.projected }

func (v *View) Source() Source { return v.src }

// Close releases the wrapped upstream Result exactly once, regardless of
// how many times Close is called (spec.md §4.2, §9 "use scoped
// acquisition").
func (v *View) Close() error {
	v.once.Do(func() {
		v.closeErr = v.upstream.Close()
	})
	return v.closeErr
}
