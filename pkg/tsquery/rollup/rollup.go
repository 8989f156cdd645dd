// Package rollup provides a minimal map-backed RollupConfig, the default
// summary-id/summary-name mapping used when a descriptor does not supply
// its own (SPEC_FULL.md §4).
package rollup

import "context"

// Loader resolves a Config from an external source — e.g.
// store/configstore's Cloud Datastore-backed Store — for deployments that
// manage summary-id mappings centrally instead of compiling them into every
// descriptor (SPEC_FULL.md §3). internal/descriptor.ResolveRollupConfig
// falls back to a Loader when a descriptor's YAML has no inline "rollup"
// section.
type Loader interface {
	Load(ctx context.Context) (*Config, error)
}

// Well-known summary ids matching spec.md §8 Scenario S1. Id 4 is
// deliberately left unassigned (spec.md §9 open question): requesting a
// summary with no id mapping is a ConfigError, not a silently skipped
// summary. Since a RollupConfig belongs to a Result rather than to a node's
// static descriptor, resolution (and this failure) happens the first time a
// Result carrying this config reaches the requesting node, not at node
// construction; see summarize.Node.OnNext.
const (
	Sum   = 0
	Count = 1
	Max   = 2
	Min   = 3
	Avg   = 5
)

// Config is a bidirectional name<->id mapping.
type Config struct {
	byName map[string]int
	byID   map[int]string
}

// Default returns the sample RollupConfig from spec.md §8: sum=0, count=1,
// max=2, min=3, avg=5. First and last are left for callers to add via
// WithSummary since the sample config does not define them.
func Default() *Config {
	return New(map[string]int{
		"sum":   Sum,
		"count": Count,
		"max":   Max,
		"min":   Min,
		"avg":   Avg,
	})
}

// New builds a Config from an explicit name->id mapping.
func New(byName map[string]int) *Config {
	c := &Config{byName: make(map[string]int, len(byName)), byID: make(map[int]string, len(byName))}
	for name, id := range byName {
		c.byName[name] = id
		c.byID[id] = name
	}
	return c
}

// WithSummary returns a copy of c with name additionally mapped to id.
func (c *Config) WithSummary(name string, id int) *Config {
	next := New(c.byName)
	next.byName[name] = id
	next.byID[id] = name
	return next
}

// SummaryID implements value.RollupConfig.
func (c *Config) SummaryID(name string) (int, bool) {
	id, ok := c.byName[name]
	return id, ok
}

// SummaryName implements value.RollupConfig.
func (c *Config) SummaryName(id int) (string, bool) {
	name, ok := c.byID[id]
	return name, ok
}
