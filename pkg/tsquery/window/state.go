package window

import (
	"math"

	"github.com/jrmccluskey/tsquery/pkg/tsquery/tstime"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/value"
)

// recomputeEvictionBound is the default number of evictions the running
// sum accumulator tolerates before a full recomputation from the deque, a
// guard against floating-point drift (spec.md §4.4).
const recomputeEvictionBound = 1024

// state tracks everything needed to answer "what is the aggregate of the
// current window" after each admitted point, following spec.md §4.4: a
// plain deque for eviction bookkeeping and NaN/float accounting, a running
// accumulator for sum/avg/count, and a monotonic deque for min/max.
type state struct {
	windowSize tstime.Duration
	infectious bool
	evictBound int

	all    deque // every admitted point still in the window, NaN or not
	nonNaN deque // admitted non-NaN points still in the window
	mono   deque // monotonic candidates for whichever of min/max is active
	isMax  bool  // only meaningful once mono is used

	floatCount int // admitted points (incl. NaN) currently in window tagged floating
	nanCount   int // admitted NaN points currently in window

	sumInt          int64   // running sum of integer-tagged non-NaN points
	sumFloat        float64 // running sum of float-tagged non-NaN points
	evictedSinceSum int     // evictions of float-tagged points since last full recompute
}

func newState(windowSize tstime.Duration, infectious bool, evictBound int) *state {
	if evictBound <= 0 {
		evictBound = recomputeEvictionBound
	}
	return &state{windowSize: windowSize, infectious: infectious, evictBound: evictBound}
}

// admit adds p to the window and evicts everything that falls outside
// (ts(p) - windowSize, ts(p)].
func (s *state) admit(ts tstime.TimeStamp, v value.Number) {
	p := point{ts: ts, val: v}
	s.all.PushBack(p)
	if v.IsFloat() {
		s.floatCount++
	}
	if v.IsNaN() {
		s.nanCount++
	} else {
		s.nonNaN.PushBack(p)
		s.admitNonNaN(p)
	}

	edge := tstime.TimeStamp{Millis: ts.Millis - s.windowSize.Millis()}
	for _, e := range s.all.EvictLE(edge) {
		if e.val.IsFloat() {
			s.floatCount--
		}
		if e.val.IsNaN() {
			s.nanCount--
		}
	}
	for _, e := range s.nonNaN.EvictLE(edge) {
		s.evictNonNaN(e)
	}
	s.mono.EvictLE(edge)
}

func (s *state) admitNonNaN(p point) {
	if p.val.IsFloat() {
		s.sumFloat += p.val.Float64()
	} else {
		s.sumInt += p.val.Int64()
	}
	s.monoPush(p)
}

func (s *state) evictNonNaN(p point) {
	if p.val.IsFloat() {
		s.sumFloat -= p.val.Float64()
		s.evictedSinceSum++
		if s.evictedSinceSum >= s.evictBound {
			s.recomputeSumFloat()
		}
	} else {
		s.sumInt -= p.val.Int64()
	}
}

func (s *state) recomputeSumFloat() {
	var total float64
	for i := 0; i < s.nonNaN.Len(); i++ {
		p := s.nonNaN.buf[s.nonNaN.start+i]
		if p.val.IsFloat() {
			total += p.val.Float64()
		}
	}
	s.sumFloat = total
	s.evictedSinceSum = 0
}

// monoPush maintains s.mono as a monotonic deque: decreasing (for max) or
// increasing (for min) from front to back, so the front is always the
// current extremum (spec.md §4.4 "amortized O(1) per step").
func (s *state) monoPush(p point) {
	for {
		back, ok := s.mono.Back()
		if !ok {
			break
		}
		dominated := back.val.AsFloat() <= p.val.AsFloat()
		if s.isMax && dominated {
			s.mono.PopBack()
			continue
		}
		if !s.isMax && back.val.AsFloat() >= p.val.AsFloat() {
			s.mono.PopBack()
			continue
		}
		break
	}
	s.mono.PushBack(p)
}

// isFloating reports whether the current window's aggregate should be
// reported as floating: it contains any floating-tagged point, NaN or not
// (spec.md §4.4/§4.5: promotion is driven by a point's tag, not by whether
// it ends up contributing to the result).
func (s *state) isFloating() bool { return s.floatCount > 0 }

// nonNaNCount is the value Count always reports (spec.md §4.4: "integral
// count of non-NaN values in window", unconditional on infectiousNaN).
func (s *state) nonNaNCount() int64 { return int64(s.nonNaN.Len()) }

// sum returns the sum of non-NaN values in the window, tagged per
// isFloating.
func (s *state) sum() value.Number {
	if s.isFloating() {
		return value.Float(float64(s.sumInt) + s.sumFloat)
	}
	return value.Int(s.sumInt)
}

// avg returns the floating mean of non-NaN values in the window. An empty
// non-NaN set yields NaN via 0/0, which downstream emission logic never
// observes because a window is only ever evaluated at an admitted point.
func (s *state) avg() value.Number {
	return value.Float(s.sum().AsFloat() / float64(s.nonNaNCount()))
}

func (s *state) setExtremum(isMax bool) {
	if s.isMax == isMax && s.mono.Len() > 0 {
		return
	}
	s.isMax = isMax
	s.mono = deque{}
	for i := 0; i < s.nonNaN.Len(); i++ {
		s.monoPush(s.nonNaN.buf[s.nonNaN.start+i])
	}
}

// extremum returns the current min or max of the non-NaN subset, tagged
// per isFloating. NaN if no non-NaN candidate exists.
func (s *state) extremum(isMax bool) value.Number {
	s.setExtremum(isMax)
	front, ok := s.mono.Front()
	if !ok {
		return value.Float(nan())
	}
	if s.isFloating() {
		return front.val.Promote()
	}
	return front.val
}

// first returns the earliest-timestamped non-NaN value in the window.
func (s *state) first() value.Number {
	p, ok := s.nonNaN.Front()
	if !ok {
		return value.Float(nan())
	}
	if s.isFloating() {
		return p.val.Promote()
	}
	return p.val
}

// last returns the latest-timestamped non-NaN value in the window.
func (s *state) last() value.Number {
	p, ok := s.nonNaN.Back()
	if !ok {
		return value.Float(nan())
	}
	if s.isFloating() {
		return p.val.Promote()
	}
	return p.val
}

// aggregate computes agg over the current window, applying the infectious
// NaN override (spec.md §4.4/§4.5): if infectiousNan and any NaN currently
// sits in the window, every aggregate except count reports NaN.
func (s *state) aggregate(agg Aggregator) value.Number {
	if agg != Count && s.infectious && s.nanCount > 0 {
		return value.Float(nan())
	}
	switch agg {
	case Sum:
		return s.sum()
	case Avg:
		return s.avg()
	case Min:
		return s.extremum(false)
	case Max:
		return s.extremum(true)
	case Count:
		return value.Int(s.nonNaNCount())
	case First:
		return s.first()
	case Last:
		return s.last()
	default:
		return value.Float(nan())
	}
}

func nan() float64 { return math.NaN() }
