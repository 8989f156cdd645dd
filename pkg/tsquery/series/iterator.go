package series

import "github.com/jrmccluskey/tsquery/pkg/tsquery/value"

// ScalarIterator yields NumericScalar points in non-decreasing timestamp
// order (spec.md §3 invariant). It is single-pass; a fresh iterator must be
// constructed to re-read a series.
type ScalarIterator interface {
	HasNext() bool
	Next() (value.ScalarPoint, error)
	Close() error
}

// ArrayIterator yields NumericArray series. Most array-producing nodes
// yield exactly one Array per source series, but the interface allows more
// for nodes (like a re-chunking transform) that split one input into many.
type ArrayIterator interface {
	HasNext() bool
	Next() (*value.Array, error)
	Close() error
}

// SummaryIterator yields NumericSummary points. The summarizer (spec.md
// §4.5) always yields at most one.
type SummaryIterator interface {
	HasNext() bool
	Next() (value.SummaryPoint, error)
	Close() error
}
