package memory

import (
	"context"
	"testing"

	"github.com/jrmccluskey/tsquery/pkg/tsquery/exec"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/result"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/rollup"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/series"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/tstime"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/value"
)

type captureSink struct {
	*exec.Base
	results []result.Result
	done    bool
	err     error
}

func newCaptureSink() *captureSink {
	return &captureSink{Base: exec.NewBase("sink", nil)}
}

func (c *captureSink) OnNext(from exec.Node, res result.Result) error {
	c.results = append(c.results, res)
	return nil
}

func (c *captureSink) OnComplete(from exec.Node, finalSeq, totalSeq int64) error {
	c.done = true
	return nil
}

func (c *captureSink) OnError(from exec.Node, err error) error {
	c.err = err
	return nil
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	f, err := Open("TestMemoryStoreRoundTrip", nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	f.Rollup = rollup.Default()

	if err := f.Insert("series-1", tstime.FromSeconds(0), value.Int(10)); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := f.Insert("series-1", tstime.FromSeconds(1), value.Int(20)); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	ctx := context.Background()
	ds, err := f.Open(ctx, "series-1")
	if err != nil {
		t.Fatalf("Open(series-1): %v", err)
	}

	sink := newCaptureSink()
	if err := ds.Run(ctx, sink); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sink.err != nil {
		t.Fatalf("sink received an error: %v", sink.err)
	}
	if !sink.done {
		t.Fatal("sink never received OnComplete")
	}
	if len(sink.results) != 1 {
		t.Fatalf("sink received %d Results, want 1", len(sink.results))
	}

	ts := sink.results[0].TimeSeries()
	if len(ts) != 1 {
		t.Fatalf("Result has %d series, want 1", len(ts))
	}
	if ts[0].ID().String() != "series-1" {
		t.Fatalf("series id = %q, want %q", ts[0].ID().String(), "series-1")
	}
	it, ok := ts[0].Scalar()
	if !ok {
		t.Fatal("expected a NumericScalar iterator")
	}
	var points []value.ScalarPoint
	for it.HasNext() {
		p, err := it.Next()
		if err != nil {
			t.Fatal(err)
		}
		points = append(points, p)
	}
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	if points[0].Timestamp.Seconds() != 0 || points[0].Value.Int64() != 10 {
		t.Fatalf("points[0] = %+v, want ts=0 value=10", points[0])
	}
	if points[1].Timestamp.Seconds() != 1 || points[1].Value.Int64() != 20 {
		t.Fatalf("points[1] = %+v, want ts=1 value=20", points[1])
	}
}

func TestMemoryStoreIDKindAndPushdown(t *testing.T) {
	f, err := Open("TestMemoryStoreIDKindAndPushdown", nil)
	if err != nil {
		t.Fatal(err)
	}
	if f.IDKind() != series.StringID {
		t.Fatalf("IDKind() = %v, want StringID", f.IDKind())
	}
	if f.SupportsPushdown(exec.NodeKind("anything")) {
		t.Fatal("SupportsPushdown should always report false")
	}
}
