package store

import (
	"context"

	"github.com/jrmccluskey/tsquery/pkg/tsquery/exec"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/result"
)

// SingleResult is the common shape every reference DataStore in this
// package reduces to: load the data for id, emit it as exactly one Result,
// then complete. Real backends differ only in how Load reaches the
// series — SQL query, GCP client call, or local file read — not in the
// onNext/onComplete/onError lifecycle, so that lifecycle lives here once.
type SingleResult struct {
	id   string
	Load func(ctx context.Context) (result.Result, error)
}

// NewSingleResult builds a SingleResult DataStore identified by id, loading
// its one Result via load.
func NewSingleResult(id string, load func(ctx context.Context) (result.Result, error)) *SingleResult {
	return &SingleResult{id: id, Load: load}
}

// NodeID implements result.Source: a DataStore is itself a weak
// back-reference target, the root of a pipeline's node graph.
func (s *SingleResult) NodeID() string { return s.id }

// Run loads the store's Result and drives sink's lifecycle: one OnNext
// followed by OnComplete on success, or OnError on failure (spec.md §6).
func (s *SingleResult) Run(ctx context.Context, sink exec.Node) error {
	res, err := s.Load(ctx)
	if err != nil {
		return sink.OnError(s, exec.WrapUpstreamError(err))
	}
	if err := sink.OnNext(s, res); err != nil {
		return err
	}
	return sink.OnComplete(s, res.SequenceID(), 1)
}
