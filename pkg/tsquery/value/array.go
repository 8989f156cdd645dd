package value

import "github.com/jrmccluskey/tsquery/pkg/tsquery/tstime"

// Array is a dense NumericArray series: a start timestamp, the interval
// governing element spacing, and values tagged "all integral" or "all
// floating" at the series level (spec.md §3). Promotion from integral to
// floating is monotonic and permanent for the series.
type Array struct {
	Start    tstime.TimeStamp
	Interval tstime.Duration
	floating bool
	ints     []int64
	floats   []float64
}

// NewIntArray builds an all-integral Array.
func NewIntArray(start tstime.TimeStamp, interval tstime.Duration, values []int64) *Array {
	return &Array{Start: start, Interval: interval, ints: values}
}

// NewFloatArray builds an all-floating Array.
func NewFloatArray(start tstime.TimeStamp, interval tstime.Duration, values []float64) *Array {
	return &Array{Start: start, Interval: interval, floating: true, floats: values}
}

// Len reports the number of elements in the array.
func (a *Array) Len() int {
	if a.floating {
		return len(a.floats)
	}
	return len(a.ints)
}

// IsFloat reports whether the array is tagged floating.
func (a *Array) IsFloat() bool { return a.floating }

// At returns the value at index i as a Number, preserving the array's tag.
func (a *Array) At(i int) Number {
	if a.floating {
		return Float(a.floats[i])
	}
	return Int(a.ints[i])
}

// TimestampAt returns the timestamp of element i, derived from Start and
// Interval (spec.md §3 invariant: length + interval fully determine
// timestamps).
func (a *Array) TimestampAt(i int) tstime.TimeStamp {
	return tstime.TimeStamp{Millis: a.Start.Millis + int64(i)*a.Interval.Millis()}
}

// Promote returns a copy of a re-tagged as floating. A no-op if a is already
// floating.
func (a *Array) Promote() *Array {
	if a.floating {
		return a
	}
	floats := make([]float64, len(a.ints))
	for i, v := range a.ints {
		floats[i] = float64(v)
	}
	return NewFloatArray(a.Start, a.Interval, floats)
}
