package series

import "github.com/jrmccluskey/tsquery/pkg/tsquery/value"

// TimeSeries is an identified sequence of values exposing a stable set of
// ValueKinds for its lifetime (spec.md §3). Asking for an iterator of a kind
// the series does not expose yields "absent" (ok == false), never an error.
type TimeSeries interface {
	ID() ID
	Kinds() map[value.Kind]bool
	Scalar() (ScalarIterator, bool)
	Array() (ArrayIterator, bool)
	Summary() (SummaryIterator, bool)
}

// sliceScalarIterator is the leaf ScalarIterator over an in-memory slice,
// the shape every store.DataStore reference implementation in this repo
// produces.
type sliceScalarIterator struct {
	points []value.ScalarPoint
	pos    int
}

// NewScalarIterator wraps a pre-sorted slice of points as a ScalarIterator.
// Callers (store backends) are responsible for the non-decreasing
// timestamp invariant (spec.md §3).
func NewScalarIterator(points []value.ScalarPoint) ScalarIterator {
	return &sliceScalarIterator{points: points}
}

func (it *sliceScalarIterator) HasNext() bool { return it.pos < len(it.points) }

func (it *sliceScalarIterator) Next() (value.ScalarPoint, error) {
	p := it.points[it.pos]
	it.pos++
	return p, nil
}

func (it *sliceScalarIterator) Close() error { return nil }

// sliceArrayIterator wraps a single pre-built Array.
type sliceArrayIterator struct {
	arr  *value.Array
	done bool
}

// NewArrayIterator wraps a single Array as a one-shot ArrayIterator.
func NewArrayIterator(arr *value.Array) ArrayIterator {
	return &sliceArrayIterator{arr: arr}
}

func (it *sliceArrayIterator) HasNext() bool { return !it.done && it.arr != nil }

func (it *sliceArrayIterator) Next() (*value.Array, error) {
	it.done = true
	return it.arr, nil
}

func (it *sliceArrayIterator) Close() error { return nil }

// leafSeries is the concrete TimeSeries every reference store backend
// constructs: scalar points and/or a single array, never a summary (only
// SummarizerNode produces NumericSummary).
type leafSeries struct {
	id      ID
	scalars []value.ScalarPoint
	arr     *value.Array
	kinds   map[value.Kind]bool
}

// NewScalarSeries builds a leaf TimeSeries exposing only NumericScalar.
func NewScalarSeries(id ID, points []value.ScalarPoint) TimeSeries {
	return &leafSeries{id: id, scalars: points, kinds: map[value.Kind]bool{value.NumericScalar: true}}
}

// NewArraySeries builds a leaf TimeSeries exposing only NumericArray.
func NewArraySeries(id ID, arr *value.Array) TimeSeries {
	return &leafSeries{id: id, arr: arr, kinds: map[value.Kind]bool{value.NumericArray: true}}
}

func (s *leafSeries) ID() ID                      { return s.id }
func (s *leafSeries) Kinds() map[value.Kind]bool  { return s.kinds }

func (s *leafSeries) Scalar() (ScalarIterator, bool) {
	if !s.kinds[value.NumericScalar] {
		return nil, false
	}
	return NewScalarIterator(s.scalars), true
}

func (s *leafSeries) Array() (ArrayIterator, bool) {
	if !s.kinds[value.NumericArray] {
		return nil, false
	}
	return NewArrayIterator(s.arr), true
}

func (s *leafSeries) Summary() (SummaryIterator, bool) { return nil, false }
