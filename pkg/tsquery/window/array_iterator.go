package window

import (
	"github.com/jrmccluskey/tsquery/pkg/tsquery/series"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/tstime"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/value"
)

// arrayIterator produces a single windowed NumericArray from a single
// source NumericArray (spec.md §4.4: "windowing operates on array indices
// ... produces a new NumericArray whose first emitted index is the
// smallest j with startTs + j*interval >= Q").
type arrayIterator struct {
	out  *value.Array
	err  error
	done bool
}

func newArrayWindowIterator(src series.ArrayIterator, cfg Config, q tstime.TimeStamp) *arrayIterator {
	if !src.HasNext() {
		return &arrayIterator{}
	}
	arr, err := src.Next()
	if err != nil {
		return &arrayIterator{err: err}
	}
	out, err := windowArray(arr, cfg, q)
	if err != nil {
		return &arrayIterator{err: err}
	}
	return &arrayIterator{out: out}
}

func (it *arrayIterator) HasNext() bool { return !it.done && (it.out != nil || it.err != nil) }

func (it *arrayIterator) Next() (*value.Array, error) {
	it.done = true
	if it.err != nil {
		return nil, it.err
	}
	return it.out, nil
}

func (it *arrayIterator) Close() error { return nil }

// windowArray runs the sliding-window aggregate over every index of arr,
// starting at the smallest index whose timestamp is >= q, and packs the
// per-index aggregates into a new Array (promoted to floating if any
// emitted value is floating).
func windowArray(arr *value.Array, cfg Config, q tstime.TimeStamp) (*value.Array, error) {
	st := newState(cfg.WindowSize, cfg.InfectiousNaN, cfg.EvictionBound)
	var outTs []tstime.TimeStamp
	var outVals []value.Number

	for i := 0; i < arr.Len(); i++ {
		ts := arr.TimestampAt(i)
		st.admit(ts, arr.At(i))
		if !ts.Before(q) {
			outTs = append(outTs, ts)
			outVals = append(outVals, st.aggregate(cfg.Aggregator))
		}
	}

	if len(outVals) == 0 {
		return value.NewIntArray(arr.Start, arr.Interval, nil), nil
	}

	floating := false
	for _, v := range outVals {
		if v.IsFloat() {
			floating = true
			break
		}
	}
	if floating {
		floats := make([]float64, len(outVals))
		for i, v := range outVals {
			floats[i] = v.AsFloat()
		}
		return value.NewFloatArray(outTs[0], arr.Interval, floats), nil
	}
	ints := make([]int64, len(outVals))
	for i, v := range outVals {
		ints[i] = v.Int64()
	}
	return value.NewIntArray(outTs[0], arr.Interval, ints), nil
}
