package summarize

import (
	"fmt"

	"github.com/jrmccluskey/tsquery/pkg/tsquery/exec"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/result"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/series"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/value"
)

// Kind is this node's registry key (spec.md §4.3, §6).
const Kind exec.NodeKind = "summarizer"

// Config is the SummarizerNode descriptor config (spec.md §4.5, §6).
type Config struct {
	ID            string
	Summaries     []string
	InfectiousNaN bool
}

// Validate checks the statically-knowable part of cfg; summary-name
// resolution against a RollupConfig happens per-Result in OnNext, since a
// RollupConfig is a property of the Result, not of this node (spec.md
// §4.5).
func (c Config) Validate() error {
	if c.ID == "" {
		return exec.NewConfigError("summarizer: missing id")
	}
	if len(c.Summaries) == 0 {
		return exec.NewConfigError("summarizer %q: at least one summary must be requested", c.ID)
	}
	return nil
}

// Node is SummarizerNode (spec.md §4.5): reduces each input series to a
// single NumericSummary point.
type Node struct {
	*exec.Base
	cfg Config
	ctx *exec.Context
}

// New constructs a Node, validating cfg's static shape (spec.md §7).
func New(ctx *exec.Context, cfg Config) (*Node, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Node{Base: exec.NewBase(cfg.ID, ctx.Logger), cfg: cfg, ctx: ctx}, nil
}

// OnNext resolves this node's requested summary names against res's
// RollupConfig, failing with ConfigError if any name is undefined, then
// wraps res in a ResultView that projects each series through the
// registered summary iterator factory (spec.md §4.1, §4.2, §4.5).
func (n *Node) OnNext(from exec.Node, res result.Result) error {
	if n.HasErrored("") {
		return nil
	}
	if _, err := n.resolve(res.RollupConfig()); err != nil {
		n.MarkErrored(from.NodeID())
		return n.ForwardError(n, err)
	}
	view := result.NewView(res, n, func(s series.TimeSeries) series.TimeSeries {
		return n.ctx.Registry.Project(Kind, n, res, s)
	})
	return n.SendDownstream(n, view)
}

// OnComplete forwards completion downstream, preserving (finalSeq,
// totalSeq) (spec.md §4.1).
func (n *Node) OnComplete(from exec.Node, finalSeq, totalSeq int64) error {
	return n.ForwardComplete(n, finalSeq, totalSeq)
}

// OnError marks from as errored and propagates err downstream via
// ForwardError (spec.md §4.1, §7).
func (n *Node) OnError(from exec.Node, err error) error {
	n.MarkErrored(from.NodeID())
	return n.ForwardError(n, err)
}

// resolve maps the node's configured summary names to ids via cfg, failing
// with ConfigError on any undefined name (spec.md §4.5: "if the config does
// not define a requested name, the node fails with ConfigError"). A nil
// RollupConfig also fails with ConfigError as soon as any summary is
// configured.
func (n *Node) resolve(cfg value.RollupConfig) ([]request, error) {
	reqs := make([]request, 0, len(n.cfg.Summaries))
	for _, name := range n.cfg.Summaries {
		if cfg == nil {
			return nil, exec.NewConfigError("summarizer %q: no rollup config available to resolve summary %q", n.cfg.ID, name)
		}
		id, ok := cfg.SummaryID(name)
		if !ok {
			return nil, exec.NewConfigError("summarizer %q: rollup config does not define summary %q", n.cfg.ID, name)
		}
		reqs = append(reqs, request{name: name, id: id})
	}
	return reqs, nil
}

// Factory implements exec.NodeFactory for summarizer nodes, turning a
// descriptor's config map into a validated Node (spec.md §6).
type Factory struct{}

func (Factory) Kind() exec.NodeKind { return Kind }

func (Factory) ValueKinds() map[value.Kind]bool {
	return map[value.Kind]bool{value.NumericSummary: true}
}

func (Factory) Create(ctx *exec.Context, id string, config map[string]any) (exec.Node, error) {
	cfg, err := configFromDescriptor(id, config)
	if err != nil {
		return nil, err
	}
	return New(ctx, cfg)
}

func configFromDescriptor(id string, config map[string]any) (Config, error) {
	raw, _ := config["summaries"].([]any)
	if len(raw) == 0 {
		return Config{}, exec.NewConfigError("summarizer %q: missing summaries list", id)
	}
	names := make([]string, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			return Config{}, exec.NewConfigError("summarizer %q: summaries entries must be strings", id)
		}
		names = append(names, s)
	}
	infectious, _ := config["infectiousNan"].(bool)
	return Config{ID: id, Summaries: names, InfectiousNaN: infectious}, nil
}

// Register installs the summarizer node's typed iterator factory into reg
// (spec.md §4.3). It registers only a NumericSummary factory: the
// summarizer's output carries exclusively NumericSummary points regardless
// of whether its input was NumericScalar or NumericArray.
func Register(reg *exec.Registry) {
	reg.RegisterSummary(Kind, func(node exec.Node, res result.Result, source series.TimeSeries) series.SummaryIterator {
		n := mustNode(node)
		reqs, err := n.resolve(res.RollupConfig())
		if err != nil {
			return &errorIterator{err: err}
		}
		kinds := source.Kinds()
		switch {
		case kinds[value.NumericArray]:
			it, _ := source.Array()
			return newSummaryIterator(&arraySource{it: it}, reqs, n.cfg.InfectiousNaN)
		case kinds[value.NumericScalar]:
			it, _ := source.Scalar()
			return newSummaryIterator(scalarSource{it: it}, reqs, n.cfg.InfectiousNaN)
		default:
			return &errorIterator{err: exec.NewTypeError("summarizer %q: source series %s exposes neither NumericScalar nor NumericArray", n.cfg.ID, source.ID())}
		}
	})
}

// errorIterator is a SummaryIterator that yields a single error, used when
// the summary factory itself cannot construct a real iterator (a
// resolution or type failure discovered per-series rather than
// per-Result).
type errorIterator struct {
	err  error
	sent bool
}

func (e *errorIterator) HasNext() bool { return !e.sent }

func (e *errorIterator) Next() (value.SummaryPoint, error) {
	e.sent = true
	return value.SummaryPoint{}, e.err
}

func (e *errorIterator) Close() error { return nil }

func mustNode(n exec.Node) *Node {
	node, ok := n.(*Node)
	if !ok {
		panic(fmt.Sprintf("summarize: registered factory invoked with non-summarizer node %T", n))
	}
	return node
}
