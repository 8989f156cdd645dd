// Package value implements the tagged numeric point/array representation
// (spec.md §3, §9 "Polymorphic value dispatch") flowing through every node
// in the pipeline, plus the coercion rules between its variants.
package value

// Kind selects among the closed set of value representations a TimeSeries
// may expose (spec.md §3).
type Kind int

const (
	NumericScalar Kind = iota
	NumericArray
	NumericSummary
)

func (k Kind) String() string {
	switch k {
	case NumericScalar:
		return "NumericScalar"
	case NumericArray:
		return "NumericArray"
	case NumericSummary:
		return "NumericSummary"
	default:
		return "Kind(unknown)"
	}
}
