package sink

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/jrmccluskey/tsquery/pkg/tsquery/exec"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/result"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/rollup"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/series"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/tstime"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/value"
)

type stubSource struct{ id string }

func (s stubSource) NodeID() string { return s.id }

func newTestContext() *exec.Context {
	return exec.NewContext(exec.NewRegistry(), nil, nil)
}

func TestWriterPrintsScalarSeries(t *testing.T) {
	var buf bytes.Buffer
	w := New(newTestContext(), "sink1", &buf)

	ts := series.NewScalarSeries(series.StringIdentity("s1"), []value.ScalarPoint{
		{Timestamp: tstime.FromSeconds(0), Value: value.Int(10)},
		{Timestamp: tstime.FromSeconds(1), Value: value.Float(2.5)},
	})
	res := result.NewBaseNoSpec(0, tstime.Millis, nil, series.StringID, []series.TimeSeries{ts}, stubSource{"up"})

	if err := w.OnNext(nil, res); err != nil {
		t.Fatalf("OnNext: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "s1\t0\t10") {
		t.Fatalf("output missing first scalar line: %q", out)
	}
	if !strings.Contains(out, "s1\t1000\t2.5") {
		t.Fatalf("output missing second scalar line: %q", out)
	}
}

func TestWriterPrintsSummaryUsingRollupNames(t *testing.T) {
	var buf bytes.Buffer
	w := New(newTestContext(), "sink2", &buf)

	it := &oneShotSummaryIterator{point: value.SummaryPoint{
		Timestamp: tstime.FromSeconds(0),
		Values:    map[int]value.Number{rollup.Sum: value.Int(59), rollup.Count: value.Int(4)},
	}}
	ts := summarySeries{id: series.StringIdentity("s1"), it: it}
	res := result.NewBaseNoSpec(0, tstime.Millis, rollup.Default(), series.StringID, []series.TimeSeries{ts}, stubSource{"up"})

	if err := w.OnNext(nil, res); err != nil {
		t.Fatalf("OnNext: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "sum=59") {
		t.Fatalf("output missing named sum summary: %q", out)
	}
	if !strings.Contains(out, "count=4") {
		t.Fatalf("output missing named count summary: %q", out)
	}
}

func TestWriterOnCompleteAndOnErrorSignalDone(t *testing.T) {
	var buf bytes.Buffer
	w := New(newTestContext(), "sink3", &buf)
	if err := w.OnComplete(nil, 0, 1); err != nil {
		t.Fatal(err)
	}
	select {
	case err := <-w.Done:
		if err != nil {
			t.Fatalf("Done received %v, want nil", err)
		}
	default:
		t.Fatal("OnComplete should push to Done")
	}

	boom := errors.New("boom")
	if err := w.OnError(nil, boom); err != nil {
		t.Fatal(err)
	}
	select {
	case err := <-w.Done:
		if err != boom {
			t.Fatalf("Done received %v, want %v", err, boom)
		}
	default:
		t.Fatal("OnError should push to Done")
	}
}

// summarySeries and oneShotSummaryIterator are minimal test doubles exposing
// only NumericSummary, exercising Writer's printSummary path.
type summarySeries struct {
	id series.ID
	it series.SummaryIterator
}

func (s summarySeries) ID() series.ID                         { return s.id }
func (s summarySeries) Kinds() map[value.Kind]bool            { return map[value.Kind]bool{value.NumericSummary: true} }
func (s summarySeries) Scalar() (series.ScalarIterator, bool) { return nil, false }
func (s summarySeries) Array() (series.ArrayIterator, bool)   { return nil, false }
func (s summarySeries) Summary() (series.SummaryIterator, bool) {
	return s.it, true
}

type oneShotSummaryIterator struct {
	point value.SummaryPoint
	done  bool
}

func (it *oneShotSummaryIterator) HasNext() bool { return !it.done }

func (it *oneShotSummaryIterator) Next() (value.SummaryPoint, error) {
	it.done = true
	return it.point, nil
}

func (it *oneShotSummaryIterator) Close() error { return nil }
