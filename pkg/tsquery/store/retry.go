package store

import (
	"time"

	"gopkg.in/retry.v1"
)

// transientStrategy retries a transient failure at a fixed 200ms interval
// within a 600ms total budget, wrapping the bigquery, bigtable, gcsparquet,
// configstore, mysql and postgres store calls the way a production client
// would guard against momentary network blips (SPEC_FULL.md §3).
var transientStrategy = retry.Regular{
	Total: 3 * 200 * time.Millisecond,
	Delay: 200 * time.Millisecond,
}

// WithRetry runs fn, retrying on error per transientStrategy, and returns
// the last error if every attempt fails.
func WithRetry(fn func() error) error {
	var err error
	for a := retry.Start(transientStrategy, nil); a.Next(); {
		if err = fn(); err == nil {
			return nil
		}
		if !a.More() {
			break
		}
	}
	return err
}
