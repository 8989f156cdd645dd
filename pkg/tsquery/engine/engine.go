// Package engine runs multiple independent pipeline executions concurrently,
// generalizing the teacher's bounded-parallelism bundle execution
// (runners/prism/internal/execute.go's errgroup.SetLimit(8) pattern) from
// per-bundle to per-pipeline scope, per spec.md §5: "multiple pipelines may
// execute in parallel on different threads."
package engine

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/jrmccluskey/tsquery/pkg/tsquery/core/id"
)

// defaultLimit mirrors the teacher's eg.SetLimit(8).
const defaultLimit = 8

// Pipeline is one independently runnable query execution: everything a
// caller needs to drive a DataStore through a constructed Node graph to
// completion.
type Pipeline func(ctx context.Context) error

// Runner executes a batch of Pipelines concurrently, bounded by Limit.
type Runner struct {
	// Limit caps concurrently running pipelines. 0 uses defaultLimit.
	Limit  int
	Logger *slog.Logger
}

// New constructs a Runner with the teacher's default concurrency limit.
func New(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{Limit: defaultLimit, Logger: logger}
}

// Run executes every pipeline in pipelines, each on its own goroutine,
// bounded by r.Limit concurrently in flight. It returns the first error
// encountered (errgroup cancels the shared context on first failure, so
// sibling pipelines still in flight observe ctx.Done()). Every log line for
// this batch carries the same runID (id.NewRunID), correlating one call to
// Run across however many pipelines it drives.
func (r *Runner) Run(ctx context.Context, pipelines []Pipeline) error {
	limit := r.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	runID := id.NewRunID()
	logger = logger.With(slog.String("runID", runID))

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(limit)
	for i, p := range pipelines {
		p := p
		idx := i
		eg.Go(func() error {
			logger.Debug("pipeline starting", slog.Int("index", idx))
			err := p(egctx)
			logger.Debug("pipeline done", slog.Int("index", idx), slog.Any("error", err))
			return err
		})
	}
	return eg.Wait()
}
