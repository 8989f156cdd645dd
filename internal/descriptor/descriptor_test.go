package descriptor

import (
	"context"
	"testing"

	"github.com/jrmccluskey/tsquery/pkg/tsquery/exec"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/rollup"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/summarize"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/window"
)

const sampleYAML = `
nodes:
  - id: w1
    kind: sliding-window
    upstream: [series-root]
    window: 5m
    aggregator: sum
  - id: s1
    kind: summarizer
    upstream: [w1]
    summaries: [sum, count]
`

func newTestContext() *exec.Context {
	reg := exec.NewRegistry()
	window.Register(reg)
	summarize.Register(reg)
	return exec.NewContext(reg, nil, nil)
}

func TestBuildWiresDeclaredChain(t *testing.T) {
	ctx := newTestContext()
	factories := NewRegistry(window.Factory{}, summarize.Factory{})

	g, err := Build(ctx, factories, []byte(sampleYAML))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(g.Nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(g.Nodes))
	}
	if _, ok := g.Nodes["w1"]; !ok {
		t.Fatal("missing node w1")
	}
	if _, ok := g.Nodes["s1"]; !ok {
		t.Fatal("missing node s1")
	}

	roots, ok := g.Roots["w1"]
	if !ok || len(roots) != 1 || roots[0] != "series-root" {
		t.Fatalf("Roots[w1] = %v, want [series-root]", roots)
	}
	if _, ok := g.Roots["s1"]; ok {
		t.Fatal("s1's upstream (w1) was already built; it should not appear in Roots")
	}

	terminals := g.Terminals()
	if len(terminals) != 1 {
		t.Fatalf("got %d terminal nodes, want 1 (only s1, since w1 feeds s1)", len(terminals))
	}
	if terminals[0].NodeID() != "s1" {
		t.Fatalf("terminal node = %q, want %q", terminals[0].NodeID(), "s1")
	}
}

func TestBuildRejectsUnknownKind(t *testing.T) {
	ctx := newTestContext()
	factories := NewRegistry(window.Factory{})
	_, err := Build(ctx, factories, []byte(`
nodes:
  - id: s1
    kind: summarizer
    summaries: [sum]
`))
	if err == nil {
		t.Fatal("Build should fail: no summarizer factory registered")
	}
}

func TestResolveRollupConfigPrefersInlineSection(t *testing.T) {
	cfg, err := ResolveRollupConfig(context.Background(), []byte(`
rollup:
  sum: 0
  p99: 9
nodes: []
`), nil)
	if err != nil {
		t.Fatalf("ResolveRollupConfig: %v", err)
	}
	if id, ok := cfg.SummaryID("p99"); !ok || id != 9 {
		t.Fatalf("SummaryID(\"p99\") = %d,%v, want 9,true", id, ok)
	}
}

type fakeLoader struct {
	cfg *rollup.Config
}

func (f fakeLoader) Load(ctx context.Context) (*rollup.Config, error) { return f.cfg, nil }

func TestResolveRollupConfigFallsBackToLoader(t *testing.T) {
	want := rollup.Default().WithSummary("p99", 9)
	cfg, err := ResolveRollupConfig(context.Background(), []byte(`nodes: []`), fakeLoader{cfg: want})
	if err != nil {
		t.Fatalf("ResolveRollupConfig: %v", err)
	}
	if cfg != want {
		t.Fatal("ResolveRollupConfig should return exactly what the fallback loader returned")
	}
}

func TestResolveRollupConfigDefaultsWithNoFallback(t *testing.T) {
	cfg, err := ResolveRollupConfig(context.Background(), []byte(`nodes: []`), nil)
	if err != nil {
		t.Fatalf("ResolveRollupConfig: %v", err)
	}
	if _, ok := cfg.SummaryID("sum"); !ok {
		t.Fatal("with no inline section and no fallback, ResolveRollupConfig should return rollup.Default()")
	}
}

func TestBuildAssignsIDWhenOmitted(t *testing.T) {
	ctx := newTestContext()
	factories := NewRegistry(window.Factory{})
	g, err := Build(ctx, factories, []byte(`
nodes:
  - kind: sliding-window
    window: 1m
    aggregator: max
`))
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(g.Nodes))
	}
	for id := range g.Nodes {
		if id == "" {
			t.Fatal("an auto-assigned node id should not be empty")
		}
	}
}
