// Package summarize implements SummarizerNode: a whole-series reduction to
// a single multi-statistic NumericSummary point (spec.md §4.5).
package summarize

import (
	"math"

	"github.com/jrmccluskey/tsquery/pkg/tsquery/series"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/tstime"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/value"
)

// request is one summary the caller wants in the output map, already
// resolved to its RollupConfig id.
type request struct {
	name string
	id   int
}

// accumulator tracks the running reduction state for one series. Promotion
// to floating is permanent and series-wide: once any input is floating,
// every subsequent statistic is computed in floating form (spec.md §4.5),
// unlike the sliding window's per-point promotion.
type accumulator struct {
	infectious bool

	firstTS   tstime.TimeStamp
	haveFirst bool

	isFloat bool
	sawNaN  bool

	sumInt   int64
	sumFloat float64

	countAll    int64
	countNonNaN int64

	haveExtrema bool
	minInt      int64
	maxInt      int64
	minFloat    float64
	maxFloat    float64

	haveFirstVal bool
	firstVal     value.Number
	lastVal      value.Number
}

func (a *accumulator) observe(ts tstime.TimeStamp, v value.Number) {
	if !a.haveFirst {
		a.firstTS = ts
		a.haveFirst = true
	}
	a.countAll++

	if v.IsFloat() {
		a.isFloat = true
	}

	if v.IsNaN() {
		a.sawNaN = true
		if !a.infectious {
			return // non-infectious: NaN contributes to nothing, not even count
		}
		return // infectious: counted above via countAll, but never folds arithmetically
	}

	a.countNonNaN++

	if v.IsFloat() {
		a.sumFloat += v.Float64()
	} else {
		a.sumInt += v.Int64()
	}

	f := v.AsFloat()
	if !a.haveExtrema {
		a.haveExtrema = true
		a.minInt, a.maxInt = v.Int64(), v.Int64()
		a.minFloat, a.maxFloat = f, f
	} else {
		if f < a.minFloat {
			a.minInt, a.minFloat = v.Int64(), f
		}
		if f > a.maxFloat {
			a.maxInt, a.maxFloat = v.Int64(), f
		}
	}

	if !a.haveFirstVal {
		a.haveFirstVal = true
		a.firstVal = v
	}
	a.lastVal = v
}

func (a *accumulator) sum() value.Number {
	if a.isFloat {
		return value.Float(float64(a.sumInt) + a.sumFloat)
	}
	return value.Int(a.sumInt)
}

func (a *accumulator) extremum(isMin bool) value.Number {
	if a.isFloat {
		if isMin {
			return value.Float(a.minFloat)
		}
		return value.Float(a.maxFloat)
	}
	if isMin {
		return value.Int(a.minInt)
	}
	return value.Int(a.maxInt)
}

// finalize builds the requested summary values, applying the infectious
// NaN override: sum/min/max/first/last/avg all become NaN, but count
// always counts every input when infectious (spec.md §4.5) — the opposite
// of the sliding window's count behavior.
func (a *accumulator) finalize(reqs []request) map[int]value.Number {
	out := make(map[int]value.Number, len(reqs))
	forceNaN := a.infectious && a.sawNaN
	for _, r := range reqs {
		switch r.name {
		case "count":
			if a.infectious {
				out[r.id] = value.Int(a.countAll)
			} else {
				out[r.id] = value.Int(a.countNonNaN)
			}
		case "sum":
			out[r.id] = nanOr(forceNaN, a.sum())
		case "avg":
			out[r.id] = nanOr(forceNaN, value.Float(a.sum().AsFloat()/float64(a.countNonNaN)))
		case "min":
			out[r.id] = nanOr(forceNaN, a.extremum(true))
		case "max":
			out[r.id] = nanOr(forceNaN, a.extremum(false))
		case "first":
			out[r.id] = nanOr(forceNaN, a.promoted(a.firstVal))
		case "last":
			out[r.id] = nanOr(forceNaN, a.promoted(a.lastVal))
		}
	}
	return out
}

// promoted returns v in the accumulator's series-wide kind.
func (a *accumulator) promoted(v value.Number) value.Number {
	if a.isFloat {
		return value.Float(v.AsFloat())
	}
	return v
}

func nanOr(force bool, v value.Number) value.Number {
	if force {
		return value.Float(math.NaN())
	}
	return v
}

// summaryIterator emits at most one SummaryPoint (spec.md §4.5). It is not
// restartable: a fresh iterator must be constructed over the same source
// to reduce it again.
type summaryIterator struct {
	point value.SummaryPoint
	have  bool
	err   error
	sent  bool
}

func newSummaryIterator(points pointSource, reqs []request, infectious bool) *summaryIterator {
	acc := &accumulator{infectious: infectious}
	any := false
	for {
		ts, v, ok, err := points.next()
		if err != nil {
			return &summaryIterator{err: err}
		}
		if !ok {
			break
		}
		any = true
		acc.observe(ts, v)
	}
	if !any {
		return &summaryIterator{}
	}
	return &summaryIterator{
		point: value.SummaryPoint{Timestamp: tstime.FromSeconds(acc.firstTS.Seconds()), Values: acc.finalize(reqs)},
		have:  true,
	}
}

func (it *summaryIterator) HasNext() bool {
	return !it.sent && (it.have || it.err != nil)
}

func (it *summaryIterator) Next() (value.SummaryPoint, error) {
	it.sent = true
	if it.err != nil {
		return value.SummaryPoint{}, it.err
	}
	return it.point, nil
}

func (it *summaryIterator) Close() error { return nil }

// pointSource abstracts over a scalar or array source series so the
// reduction loop above is written once regardless of input kind
// (spec.md §4.5: "the node accepts either NumericScalar or NumericArray
// input series").
type pointSource interface {
	next() (tstime.TimeStamp, value.Number, bool, error)
}

type scalarSource struct{ it series.ScalarIterator }

func (s scalarSource) next() (tstime.TimeStamp, value.Number, bool, error) {
	if !s.it.HasNext() {
		return tstime.TimeStamp{}, value.Number{}, false, nil
	}
	p, err := s.it.Next()
	if err != nil {
		return tstime.TimeStamp{}, value.Number{}, false, err
	}
	return p.Timestamp, p.Value, true, nil
}

type arraySource struct {
	it  series.ArrayIterator
	arr *value.Array
	idx int
	got bool
}

func (s *arraySource) next() (tstime.TimeStamp, value.Number, bool, error) {
	if !s.got {
		s.got = true
		if !s.it.HasNext() {
			return tstime.TimeStamp{}, value.Number{}, false, nil
		}
		arr, err := s.it.Next()
		if err != nil {
			return tstime.TimeStamp{}, value.Number{}, false, err
		}
		s.arr = arr
	}
	if s.arr == nil || s.idx >= s.arr.Len() {
		return tstime.TimeStamp{}, value.Number{}, false, nil
	}
	ts := s.arr.TimestampAt(s.idx)
	v := s.arr.At(s.idx)
	s.idx++
	return ts, v, true, nil
}
