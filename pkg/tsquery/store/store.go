// Package store declares the external DataStoreFactory/DataStore
// collaborator contracts spec.md §6 names without prescribing a body, plus
// the shared local-cache locking helper the GCS/Avro-backed reference
// implementations use and the transient-retry helper most SQL- and
// GCP-backed ones use (SPEC_FULL.md §3).
package store

import (
	"context"

	"github.com/jrmccluskey/tsquery/pkg/tsquery/exec"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/result"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/series"
)

// Factory is DataStoreFactory (spec.md §6): opens a named DataStore and
// reports the series.ID representation and pushdown capability it offers.
// No backend here supports pushdown — query planning/pushdown is out of
// scope (spec.md §1 Non-goals; SPEC_FULL.md §4).
type Factory interface {
	Open(ctx context.Context, id string) (DataStore, error)
	IDKind() series.IDKind
	SupportsPushdown(kind exec.NodeKind) bool
}

// DataStore is the external collaborator that emits Results to a node via
// onNext/onComplete/onError (spec.md §6). Run drives sink through exactly
// the lifecycle spec.md §4.1 describes: zero or more OnNext calls, followed
// by exactly one OnComplete, or an OnError if the store cannot continue.
type DataStore interface {
	result.Source
	Run(ctx context.Context, sink exec.Node) error
}
