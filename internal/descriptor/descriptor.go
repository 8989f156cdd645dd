// Package descriptor turns the node-descriptor table spec.md §6 describes
// into a constructed graph of wired exec.Node instances. It is the
// "separate collaborator" responsible for parsing a no-wire-protocol
// descriptor (spec.md §6: "No wire protocol is mandated by the core
// itself; a descriptor parser is a separate collaborator"), decoded with
// gopkg.in/yaml.v2, the teacher's YAML library.
package descriptor

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v2"

	"github.com/jrmccluskey/tsquery/pkg/tsquery/core/id"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/exec"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/rollup"
)

// nodeDoc is one entry in a descriptor file's "nodes" list: the §6 table's
// recognized fields, plus "kind" (which factory builds this node) and
// "upstream" (the node/store ids this node consumes from) needed to
// assemble a graph rather than a single node.
type nodeDoc struct {
	ID         string   `yaml:"id"`
	Kind       string   `yaml:"kind"`
	Upstream   []string `yaml:"upstream"`
	Window     string   `yaml:"window"`
	Aggregator string   `yaml:"aggregator"`
	Infectious bool     `yaml:"infectiousNan"`
	Summaries  []string `yaml:"summaries"`
}

// doc is the top-level descriptor document: a list of nodes forming a DAG
// rooted at one or more store/upstream ids external to this file.
type doc struct {
	Nodes []nodeDoc `yaml:"nodes"`
}

// Registry maps a descriptor's "kind" string to the exec.NodeFactory that
// builds it. Callers build it with NewRegistry from every node factory their
// binary supports (e.g. window.Factory{}, summarize.Factory{}) before
// calling Build.
type Registry map[string]exec.NodeFactory

// NewRegistry builds a Registry from a list of factories, keyed by each
// factory's own Kind().
func NewRegistry(factories ...exec.NodeFactory) Registry {
	r := make(Registry, len(factories))
	for _, f := range factories {
		r[string(f.Kind())] = f
	}
	return r
}

// Graph is a built, wired set of nodes plus the declared upstream ids each
// root-level node needs fed from outside this package (typically a
// store.DataStore).
type Graph struct {
	Nodes    map[string]exec.Node
	Roots    map[string][]string // node id -> upstream ids not found among Nodes
	consumed map[string]bool     // node ids that appear as someone else's upstream
}

// Terminals returns the nodes no other declared node consumes from: the
// sinks a caller should attach its own output collector to.
func (g *Graph) Terminals() []exec.Node {
	var out []exec.Node
	for nodeID, n := range g.Nodes {
		if !g.consumed[nodeID] {
			out = append(out, n)
		}
	}
	return out
}

// Build parses a YAML descriptor and constructs every node it declares,
// wiring each to its listed upstreams via AddDownstream. Nodes are
// constructed in declaration order; an upstream id not declared earlier in
// the document is not an error but is recorded in Graph.Roots as an
// external input, so a forward reference to a later node is treated as a
// root rather than wired to that node.
func Build(ctx *exec.Context, reg Registry, yamlDoc []byte) (*Graph, error) {
	var d doc
	if err := yaml.Unmarshal(yamlDoc, &d); err != nil {
		return nil, fmt.Errorf("descriptor: parse: %w", err)
	}

	g := &Graph{Nodes: map[string]exec.Node{}, Roots: map[string][]string{}, consumed: map[string]bool{}}
	for _, nd := range d.Nodes {
		factory, ok := reg[nd.Kind]
		if !ok {
			return nil, exec.NewConfigError("descriptor: node %q: unknown kind %q", nd.ID, nd.Kind)
		}
		nodeID := nd.ID
		if nodeID == "" {
			nodeID = id.NewNodeID()
		}
		node, err := factory.Create(ctx, nodeID, nd.config())
		if err != nil {
			return nil, fmt.Errorf("descriptor: node %q: %w", nodeID, err)
		}
		g.Nodes[nodeID] = node

		for _, up := range nd.Upstream {
			upNode, ok := g.Nodes[up]
			if !ok {
				g.Roots[nodeID] = append(g.Roots[nodeID], up)
				continue
			}
			g.consumed[up] = true
			if base, ok := upNode.(interface{ AddDownstream(exec.Node) }); ok {
				base.AddDownstream(node)
			} else {
				return nil, exec.NewConfigError("descriptor: node %q cannot accept downstream wiring", up)
			}
		}
	}
	return g, nil
}

// rollupDoc captures a descriptor's optional top-level "rollup" section: an
// inline summary-name -> id mapping (spec.md §6's RollupConfig), parsed
// separately from doc since it is orthogonal to the node graph itself.
type rollupDoc struct {
	Rollup map[string]int `yaml:"rollup"`
}

// ResolveRollupConfig returns the RollupConfig a descriptor names: its
// inline "rollup" mapping if yamlDoc declares one, otherwise whatever
// fallback loads (e.g. configstore.Store.Load), or rollup.Default() if
// fallback is nil.
func ResolveRollupConfig(ctx context.Context, yamlDoc []byte, fallback rollup.Loader) (*rollup.Config, error) {
	var rd rollupDoc
	if err := yaml.Unmarshal(yamlDoc, &rd); err != nil {
		return nil, fmt.Errorf("descriptor: parse rollup section: %w", err)
	}
	if len(rd.Rollup) > 0 {
		return rollup.New(rd.Rollup), nil
	}
	if fallback != nil {
		return fallback.Load(ctx)
	}
	return rollup.Default(), nil
}

// config assembles the map[string]any a NodeFactory.Create expects from
// nd's typed fields, matching the exact field names spec.md §6 lists.
func (nd nodeDoc) config() map[string]any {
	cfg := map[string]any{}
	if nd.Window != "" {
		cfg["window"] = nd.Window
	}
	if nd.Aggregator != "" {
		cfg["aggregator"] = nd.Aggregator
	}
	cfg["infectiousNan"] = nd.Infectious
	if len(nd.Summaries) > 0 {
		raw := make([]any, len(nd.Summaries))
		for i, s := range nd.Summaries {
			raw[i] = s
		}
		cfg["summaries"] = raw
	}
	return cfg
}
