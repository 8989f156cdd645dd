// Package tstime implements the instant and duration types the pipeline
// uses to reason about point order and window boundaries.
package tstime

import "fmt"

// Unit is a duration unit a TimeStamp can be advanced by.
type Unit int

const (
	Millis Unit = iota
	Seconds
	Minutes
	Hours
	Days
)

func (u Unit) String() string {
	switch u {
	case Millis:
		return "ms"
	case Seconds:
		return "s"
	case Minutes:
		return "m"
	case Hours:
		return "h"
	case Days:
		return "d"
	default:
		return fmt.Sprintf("Unit(%d)", int(u))
	}
}

// millisPer reports how many milliseconds one unit of u spans.
func (u Unit) millisPer() int64 {
	switch u {
	case Millis:
		return 1
	case Seconds:
		return 1000
	case Minutes:
		return 60 * 1000
	case Hours:
		return 60 * 60 * 1000
	case Days:
		return 24 * 60 * 60 * 1000
	default:
		panic(fmt.Sprintf("tstime: unknown unit %d", int(u)))
	}
}

// Duration is an (amount, unit) pair, e.g. the "5m" in a sliding window.
type Duration struct {
	Amount int64
	Unit   Unit
}

// Millis reports the duration's length in milliseconds.
func (d Duration) Millis() int64 {
	return d.Amount * d.Unit.millisPer()
}

// TimeStamp is an instant represented as milliseconds since the Unix epoch.
// Ordering and arithmetic are always done at millisecond resolution; callers
// that only need second precision simply keep their millis a multiple of
// 1000.
type TimeStamp struct {
	Millis int64
}

// FromMillis builds a TimeStamp from a millisecond epoch offset.
func FromMillis(ms int64) TimeStamp { return TimeStamp{Millis: ms} }

// FromSeconds builds a TimeStamp from a second epoch offset.
func FromSeconds(s int64) TimeStamp { return TimeStamp{Millis: s * 1000} }

// Seconds reports the timestamp truncated to whole epoch seconds, the unit
// NumericSummary points are reported in (spec.md §4.5).
func (t TimeStamp) Seconds() int64 { return t.Millis / 1000 }

// Add returns t advanced by d.
func (t TimeStamp) Add(d Duration) TimeStamp {
	return TimeStamp{Millis: t.Millis + d.Millis()}
}

// Before reports whether t occurs strictly before o.
func (t TimeStamp) Before(o TimeStamp) bool { return t.Millis < o.Millis }

// After reports whether t occurs strictly after o.
func (t TimeStamp) After(o TimeStamp) bool { return t.Millis > o.Millis }

// Equal reports whether t and o represent the same instant.
func (t TimeStamp) Equal(o TimeStamp) bool { return t.Millis == o.Millis }

// Compare returns -1, 0, or 1 as t is before, equal to, or after o.
func (t TimeStamp) Compare(o TimeStamp) int {
	switch {
	case t.Millis < o.Millis:
		return -1
	case t.Millis > o.Millis:
		return 1
	default:
		return 0
	}
}

func (t TimeStamp) String() string {
	return fmt.Sprintf("ts(%dms)", t.Millis)
}
