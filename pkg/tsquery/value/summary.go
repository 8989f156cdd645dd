package value

import "github.com/jrmccluskey/tsquery/pkg/tsquery/tstime"

// SummaryPoint is a (timestamp, {summary-id -> scalar}) observation, the
// element type of a NumericSummary series (spec.md §3). summary-ids are
// small non-negative integers whose meaning is defined by a RollupConfig.
type SummaryPoint struct {
	Timestamp tstime.TimeStamp
	Values    map[int]Number
}

// RollupConfig maps human summary names to the compact numeric ids carried
// inside NumericSummary points (spec.md §3, §6). It is immutable for the
// lifetime of the Result that references it (spec.md §5).
type RollupConfig interface {
	SummaryID(name string) (int, bool)
	SummaryName(id int) (string, bool)
}
