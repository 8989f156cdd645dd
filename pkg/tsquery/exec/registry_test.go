package exec

import (
	"testing"

	"github.com/jrmccluskey/tsquery/pkg/tsquery/result"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/series"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/value"
)

// summaryOnlyIterator is a no-op SummaryIterator used to verify dispatch,
// not to exercise summarization math.
type summaryOnlyIterator struct{}

func (summaryOnlyIterator) HasNext() bool                    { return false }
func (summaryOnlyIterator) Next() (value.SummaryPoint, error) { return value.SummaryPoint{}, nil }
func (summaryOnlyIterator) Close() error                     { return nil }

const testKind NodeKind = "test-summarizer"

// TestProjectKindChangingNodeIsReachable guards the registry dispatch-order
// fix: a node that registers only a Summary factory must still be reachable
// even though its source series never carries NumericSummary.
func TestProjectKindChangingNodeIsReachable(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterSummary(testKind, func(node Node, res result.Result, source series.TimeSeries) series.SummaryIterator {
		return summaryOnlyIterator{}
	})

	source := series.NewScalarSeries(series.StringIdentity("s1"), nil)
	projected := reg.Project(testKind, nil, nil, source)

	kinds := projected.Kinds()
	if !kinds[value.NumericSummary] {
		t.Fatal("Kinds() should report NumericSummary once a Summary factory is registered for this kind")
	}
	if !kinds[value.NumericScalar] {
		t.Fatal("Kinds() should still report the source's own NumericScalar kind")
	}

	it, ok := projected.Summary()
	if !ok {
		t.Fatal("Summary() should succeed: a factory is registered for testKind")
	}
	if it == nil {
		t.Fatal("Summary() returned a nil iterator")
	}
}

// TestProjectPassesThroughUnregisteredKinds verifies that a ValueKind with
// no node-specific factory falls back to the source's own iterator
// unchanged.
func TestProjectPassesThroughUnregisteredKinds(t *testing.T) {
	reg := NewRegistry()
	source := series.NewScalarSeries(series.StringIdentity("s1"), []value.ScalarPoint{
		{Value: value.Int(1)},
	})
	projected := reg.Project(testKind, nil, nil, source)

	if !projected.Kinds()[value.NumericScalar] {
		t.Fatal("Kinds() should report the source's NumericScalar kind with no factory registered")
	}
	it, ok := projected.Scalar()
	if !ok || it == nil {
		t.Fatal("Scalar() should pass through to the source's own iterator")
	}
	if _, ok := projected.Array(); ok {
		t.Fatal("Array() should report absent: neither the source nor a factory provides it")
	}
}
