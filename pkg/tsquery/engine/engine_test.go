package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestRunnerRunsAllPipelines(t *testing.T) {
	r := New(nil)
	var count atomic.Int32
	pipelines := make([]Pipeline, 5)
	for i := range pipelines {
		pipelines[i] = func(ctx context.Context) error {
			count.Add(1)
			return nil
		}
	}
	if err := r.Run(context.Background(), pipelines); err != nil {
		t.Fatal(err)
	}
	if count.Load() != 5 {
		t.Fatalf("ran %d pipelines, want 5", count.Load())
	}
}

func TestRunnerPropagatesFirstError(t *testing.T) {
	r := New(nil)
	boom := errors.New("boom")
	pipelines := []Pipeline{
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) error { return boom },
	}
	err := r.Run(context.Background(), pipelines)
	if !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, want %v", err, boom)
	}
}

func TestRunnerRespectsLimit(t *testing.T) {
	r := New(nil)
	r.Limit = 2
	var inFlight, maxInFlight atomic.Int32
	pipelines := make([]Pipeline, 6)
	for i := range pipelines {
		pipelines[i] = func(ctx context.Context) error {
			n := inFlight.Add(1)
			for {
				cur := maxInFlight.Load()
				if n <= cur || maxInFlight.CompareAndSwap(cur, n) {
					break
				}
			}
			inFlight.Add(-1)
			return nil
		}
	}
	if err := r.Run(context.Background(), pipelines); err != nil {
		t.Fatal(err)
	}
	if maxInFlight.Load() > 2 {
		t.Fatalf("observed %d concurrent pipelines, want <= 2", maxInFlight.Load())
	}
}
