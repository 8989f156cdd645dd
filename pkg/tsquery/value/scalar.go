package value

import "github.com/jrmccluskey/tsquery/pkg/tsquery/tstime"

// ScalarPoint is a single (timestamp, Number) observation, the element type
// of a NumericScalar series (spec.md §3).
type ScalarPoint struct {
	Timestamp tstime.TimeStamp
	Value     Number
}
