// Package window implements SlidingWindowNode: a rolling aggregate over a
// fixed window of points at the head of each time-series (spec.md §4.4).
package window

import "fmt"

// Aggregator is one of the seven rolling-window reducers spec.md §4.4
// names.
type Aggregator int

const (
	Sum Aggregator = iota
	Avg
	Min
	Max
	Count
	First
	Last
)

func (a Aggregator) String() string {
	switch a {
	case Sum:
		return "sum"
	case Avg:
		return "avg"
	case Min:
		return "min"
	case Max:
		return "max"
	case Count:
		return "count"
	case First:
		return "first"
	case Last:
		return "last"
	default:
		return fmt.Sprintf("Aggregator(%d)", int(a))
	}
}

// ParseAggregator resolves a descriptor's "aggregator" field (spec.md §6).
func ParseAggregator(name string) (Aggregator, bool) {
	switch name {
	case "sum":
		return Sum, true
	case "avg":
		return Avg, true
	case "min":
		return Min, true
	case "max":
		return Max, true
	case "count":
		return Count, true
	case "first":
		return First, true
	case "last":
		return Last, true
	default:
		return 0, false
	}
}
