package window

import (
	"fmt"

	"github.com/jrmccluskey/tsquery/pkg/tsquery/exec"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/result"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/series"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/tstime"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/value"
)

// Kind is this node's registry key (spec.md §4.3, §6).
const Kind exec.NodeKind = "sliding-window"

// Config is the SlidingWindowNode descriptor config (spec.md §4.4, §6).
type Config struct {
	ID            string
	WindowSize    tstime.Duration
	Aggregator    Aggregator
	InfectiousNaN bool
	// EvictionBound bounds the running-sum accumulator's tolerance for
	// evictions before a full recompute guards against float drift;
	// 0 means "use the default" (spec.md §4.4).
	EvictionBound int
}

// Validate checks cfg against spec.md §4.4/§6, returning a ConfigError.
func (c Config) Validate() error {
	if c.ID == "" {
		return exec.NewConfigError("sliding-window: missing id")
	}
	if c.WindowSize.Millis() <= 0 {
		return exec.NewConfigError("sliding-window %q: window must be positive, got %v", c.ID, c.WindowSize)
	}
	return nil
}

// Node is SlidingWindowNode (spec.md §4.4): a rolling aggregate over each
// time-series, computed lazily per point as downstream pulls.
type Node struct {
	*exec.Base
	cfg Config
	ctx *exec.Context
}

// New constructs a Node, validating cfg per spec.md §7 (ConfigError at
// construction).
func New(ctx *exec.Context, cfg Config) (*Node, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Node{Base: exec.NewBase(cfg.ID, ctx.Logger), cfg: cfg, ctx: ctx}, nil
}

// OnNext wraps the upstream Result in a ResultView that projects each
// series through this node's registered iterator factories, then forwards
// it downstream (spec.md §4.1, §4.2).
func (n *Node) OnNext(from exec.Node, res result.Result) error {
	if n.HasErrored("") {
		return nil
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

// queryStart resolves Q, the query-start instant windows are emitted from
// and after (spec.md §4.4). A Result with no TimeSpecification emits every
// point, matching spec.md §9's resolution of the head-of-series open
// question.
func queryStart(res result.Result) tstime.TimeStamp {
	spec, ok := res.TimeSpecification()
	if !ok {
		return tstime.TimeStamp{Millis: -1 << 62}
	}
	return spec.Start
}

// Factory implements exec.NodeFactory for sliding-window nodes, turning a
// descriptor's config map into a validated Node (spec.md §6).
type Factory struct{}

func (Factory) Kind() exec.NodeKind { return Kind }

func (Factory) ValueKinds() map[value.Kind]bool {
	return map[value.Kind]bool{value.NumericScalar: true, value.NumericArray: true}
}

func (Factory) Create(ctx *exec.Context, id string, config map[string]any) (exec.Node, error) {
	cfg, err := configFromDescriptor(id, config)
	if err != nil {
		return nil, err
	}
	return New(ctx, cfg)
}

func configFromDescriptor(id string, config map[string]any) (Config, error) {
	windowStr, _ := config["window"].(string)
	d, err := tstime.ParseDuration(windowStr)
	if err != nil {
		return Config{}, exec.NewConfigError("sliding-window %q: invalid window %q: %v", id, windowStr, err)
	}
	aggStr, _ := config["aggregator"].(string)
	agg, ok := ParseAggregator(aggStr)
	if !ok {
		return Config{}, exec.NewConfigError("sliding-window %q: unknown aggregator %q", id, aggStr)
	}
	infectious, _ := config["infectiousNan"].(bool)
	return Config{ID: id, WindowSize: d, Aggregator: agg, InfectiousNaN: infectious}, nil
}

// Register installs the sliding-window node's typed iterator factories
// into reg (spec.md §4.3). Call once per pipeline's Registry.
func Register(reg *exec.Registry) {
	reg.RegisterScalar(Kind, func(node exec.Node, res result.Result, source series.TimeSeries) series.ScalarIterator {
		n := mustNode(node)
		src, _ := source.Scalar()
		return newScalarIterator(src, n.cfg, queryStart(res), n.ctx.Cancel)
	})
	reg.RegisterArray(Kind, func(node exec.Node, res result.Result, source series.TimeSeries) series.ArrayIterator {
		n := mustNode(node)
		src, _ := source.Array()
		return newArrayWindowIterator(src, n.cfg, queryStart(res))
	})
}

func mustNode(n exec.Node) *Node {
	node, ok := n.(*Node)
	if !ok {
		panic(fmt.Sprintf("window: registered factory invoked with non-window node %T", n))
	}
	return node
}
