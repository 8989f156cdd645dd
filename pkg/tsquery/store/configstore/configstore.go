// Package configstore persists RollupConfig summary-id mappings in Cloud
// Datastore via cloud.google.com/go/datastore, the teacher's direct
// dependency (SPEC_FULL.md §3), so a deployment can manage summary-id
// mappings centrally instead of compiling them into every descriptor.
// Store implements rollup.Loader; internal/descriptor.ResolveRollupConfig
// falls back to it when a descriptor's YAML has no inline "rollup" section
// and a caller (cmd/tsquery's run command, via --rollup-project) configures
// one.
package configstore

import (
	"context"
	"fmt"

	"cloud.google.com/go/datastore"

	"github.com/jrmccluskey/tsquery/pkg/tsquery/rollup"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/store"
)

// entryKind is the Datastore kind each summary-name/id pair is stored
// under.
const entryKind = "RollupSummary"

// entry is one summary-name -> id mapping, keyed by Name.
type entry struct {
	Name string
	ID   int
}

// Store reads and writes RollupConfig mappings for a single named
// configuration (e.g. "default").
type Store struct {
	client *datastore.Client
	name   string
}

// Open builds a Store for projectID, scoped to the named configuration.
func Open(ctx context.Context, projectID, name string) (*Store, error) {
	client, err := datastore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("configstore: new client: %w", err)
	}
	return &Store{client: client, name: name}, nil
}

// Load fetches every summary mapping for this Store's configuration and
// returns it as a *rollup.Config, retrying transient RPC failures
// (SPEC_FULL.md §3). Returns rollup.Default() if none are stored.
func (s *Store) Load(ctx context.Context) (*rollup.Config, error) {
	var entries []entry
	err := store.WithRetry(func() error {
		entries = nil
		query := datastore.NewQuery(entryKind).Ancestor(s.ancestorKey())
		_, err := s.client.GetAll(ctx, query, &entries)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("configstore: load %q: %w", s.name, err)
	}
	if len(entries) == 0 {
		return rollup.Default(), nil
	}
	byName := make(map[string]int, len(entries))
	for _, e := range entries {
		byName[e.Name] = e.ID
	}
	return rollup.New(byName), nil
}

// Save persists one summary-name -> id mapping under this Store's
// configuration.
func (s *Store) Save(ctx context.Context, name string, id int) error {
	key := datastore.NameKey(entryKind, name, s.ancestorKey())
	return store.WithRetry(func() error {
		_, err := s.client.Put(ctx, key, &entry{Name: name, ID: id})
		return err
	})
}

func (s *Store) ancestorKey() *datastore.Key {
	return datastore.NameKey("RollupConfig", s.name, nil)
}
