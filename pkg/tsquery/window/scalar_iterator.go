package window

import (
	"github.com/jrmccluskey/tsquery/pkg/tsquery/exec"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/series"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/tstime"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/value"
)

// scalarIterator produces the rolling aggregate over a NumericScalar
// series (spec.md §4.4). It is single-pass and restartable only by
// constructing a fresh iterator from the same source.
type scalarIterator struct {
	src    series.ScalarIterator
	cfg    Config
	q      tstime.TimeStamp
	cancel *exec.CancelToken
	st     *state

	next    *value.ScalarPoint
	err     error
	errSent bool
}

func newScalarIterator(src series.ScalarIterator, cfg Config, q tstime.TimeStamp, cancel *exec.CancelToken) *scalarIterator {
	it := &scalarIterator{
		src:    src,
		cfg:    cfg,
		q:      q,
		cancel: cancel,
		st:     newState(cfg.WindowSize, cfg.InfectiousNaN, cfg.EvictionBound),
	}
	it.advance()
	return it
}

func (it *scalarIterator) advance() {
	for it.src.HasNext() {
		if it.cancel != nil && it.cancel.Cancelled() {
			it.next = nil
			return
		}
		p, err := it.src.Next()
		if err != nil {
			it.err = err
			it.next = nil
			return
		}
		it.st.admit(p.Timestamp, p.Value)
		if !p.Timestamp.Before(it.q) {
			agg := it.st.aggregate(it.cfg.Aggregator)
			it.next = &value.ScalarPoint{Timestamp: p.Timestamp, Value: agg}
			return
		}
	}
	it.next = nil
}

func (it *scalarIterator) HasNext() bool {
	return it.next != nil || (it.err != nil && !it.errSent)
}

func (it *scalarIterator) Next() (value.ScalarPoint, error) {
	if it.next == nil && it.err != nil {
		it.errSent = true
		return value.ScalarPoint{}, it.err
	}
	out := *it.next
	it.advance()
	return out, nil
}

func (it *scalarIterator) Close() error { return it.src.Close() }
