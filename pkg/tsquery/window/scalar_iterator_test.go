package window

import (
	"math"
	"testing"

	"github.com/jrmccluskey/tsquery/pkg/tsquery/series"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/tstime"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/value"
)

// TestScalarIteratorSumWindow verifies the sliding-sum scenario: a
// 5-second window over integer value-1 points at t=1..6s with query start
// Q=1s emits sums 1, 2, 3, 4, 5, 5 — each point's window is
// (ts-windowSize, ts], so t=6 evicts t=1 and the sum holds steady.
func TestScalarIteratorSumWindow(t *testing.T) {
	var points []value.ScalarPoint
	for i := int64(1); i <= 6; i++ {
		points = append(points, value.ScalarPoint{Timestamp: tstime.FromSeconds(i), Value: value.Int(1)})
	}
	src := series.NewScalarIterator(points)
	cfg := Config{
		ID:         "w1",
		WindowSize: tstime.Duration{Amount: 5, Unit: tstime.Seconds},
		Aggregator: Sum,
	}
	it := newScalarIterator(src, cfg, tstime.FromSeconds(1), nil)

	want := []int64{1, 2, 3, 4, 5, 5}
	var got []int64
	for it.HasNext() {
		p, err := it.Next()
		if err != nil {
			t.Fatal(err)
		}
		if p.Value.IsFloat() {
			t.Fatalf("sum of integral inputs should remain integral, got %+v", p.Value)
		}
		got = append(got, p.Value.Int64())
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

// TestScalarIteratorRespectsQueryStart verifies that points before Q still
// admit into the window (and so influence later sums) but never themselves
// produce output (spec.md §4.4, §9 head-of-series resolution).
func TestScalarIteratorRespectsQueryStart(t *testing.T) {
	points := []value.ScalarPoint{
		{Timestamp: tstime.FromSeconds(1), Value: value.Int(10)},
		{Timestamp: tstime.FromSeconds(2), Value: value.Int(20)},
		{Timestamp: tstime.FromSeconds(3), Value: value.Int(30)},
	}
	src := series.NewScalarIterator(points)
	cfg := Config{
		ID:         "w2",
		WindowSize: tstime.Duration{Amount: 5, Unit: tstime.Seconds},
		Aggregator: Sum,
	}
	it := newScalarIterator(src, cfg, tstime.FromSeconds(3), nil)

	if !it.HasNext() {
		t.Fatal("expected exactly one emitted point at or after Q")
	}
	p, err := it.Next()
	if err != nil {
		t.Fatal(err)
	}
	if p.Value.Int64() != 60 {
		t.Fatalf("sum at t=3 = %d, want 60 (10+20+30, window includes pre-Q points)", p.Value.Int64())
	}
	if it.HasNext() {
		t.Fatal("no further points should be emitted")
	}
}

// TestScalarIteratorInfectiousNaN verifies, with the Sum aggregator, that a
// NaN point poisons the aggregate for as long as it sits in the window.
func TestScalarIteratorInfectiousNaN(t *testing.T) {
	points := []value.ScalarPoint{
		{Timestamp: tstime.FromSeconds(1), Value: value.Int(10)},
		{Timestamp: tstime.FromSeconds(2), Value: value.Float(math.NaN())},
		{Timestamp: tstime.FromSeconds(3), Value: value.Int(30)},
	}
	src := series.NewScalarIterator(points)
	cfg := Config{
		ID:            "w3",
		WindowSize:    tstime.Duration{Amount: 5, Unit: tstime.Seconds},
		Aggregator:    Sum,
		InfectiousNaN: true,
	}
	it := newScalarIterator(src, cfg, tstime.FromSeconds(1), nil)

	var sums []value.Number
	for it.HasNext() {
		p, err := it.Next()
		if err != nil {
			t.Fatal(err)
		}
		sums = append(sums, p.Value)
	}
	if len(sums) != 3 {
		t.Fatalf("got %d points, want 3", len(sums))
	}
	if sums[0].IsNaN() {
		t.Fatal("sum at t=1 should not be NaN: no NaN has entered the window yet")
	}
	if !sums[1].IsNaN() || !sums[2].IsNaN() {
		t.Fatal("sum at t=2 and t=3 should be NaN: the window still contains the NaN point")
	}
}
