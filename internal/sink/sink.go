// Package sink provides a terminal exec.Node that drains a pipeline's
// output to an io.Writer, the role a real deployment's RPC/export layer
// would otherwise play. It has no registry factories of its own: it only
// consumes whatever NumericScalar/NumericArray/NumericSummary iterators the
// upstream nodes already projected.
package sink

import (
	"fmt"
	"io"
	"sort"

	"github.com/jrmccluskey/tsquery/pkg/tsquery/exec"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/result"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/series"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/value"
)

// Writer prints every Result it receives to Out, one line per scalar point,
// array element, or summary value.
type Writer struct {
	*exec.Base
	Out  io.Writer
	Done chan error
}

// New builds a Writer node with the given id, writing to out.
func New(ctx *exec.Context, id string, out io.Writer) *Writer {
	return &Writer{Base: exec.NewBase(id, ctx.Logger), Out: out, Done: make(chan error, 1)}
}

func (w *Writer) OnNext(from exec.Node, res result.Result) error {
	for _, ts := range res.TimeSeries() {
		if err := w.printSeries(res, ts); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) printSeries(res result.Result, ts series.TimeSeries) error {
	kinds := ts.Kinds()
	switch {
	case kinds[value.NumericSummary]:
		return w.printSummary(res, ts)
	case kinds[value.NumericArray]:
		return w.printArray(ts)
	case kinds[value.NumericScalar]:
		return w.printScalar(ts)
	default:
		return nil
	}
}

func (w *Writer) printScalar(ts series.TimeSeries) error {
	it, ok := ts.Scalar()
	if !ok {
		return nil
	}
	defer it.Close()
	for it.HasNext() {
		p, err := it.Next()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w.Out, "%s\t%d\t%s\n", ts.ID(), p.Timestamp.Millis, numberString(p.Value)); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) printArray(ts series.TimeSeries) error {
	it, ok := ts.Array()
	if !ok {
		return nil
	}
	defer it.Close()
	for it.HasNext() {
		arr, err := it.Next()
		if err != nil {
			return err
		}
		for i := 0; i < arr.Len(); i++ {
			ms := arr.TimestampAt(i).Millis
			if _, err := fmt.Fprintf(w.Out, "%s\t%d\t%s\n", ts.ID(), ms, numberString(arr.At(i))); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *Writer) printSummary(res result.Result, ts series.TimeSeries) error {
	it, ok := ts.Summary()
	if !ok {
		return nil
	}
	defer it.Close()
	cfg := res.RollupConfig()
	for it.HasNext() {
		p, err := it.Next()
		if err != nil {
			return err
		}
		ids := make([]int, 0, len(p.Values))
		for id := range p.Values {
			ids = append(ids, id)
		}
		sort.Ints(ids)
		for _, id := range ids {
			name := fmt.Sprintf("summary:%d", id)
			if cfg != nil {
				if n, ok := cfg.SummaryName(id); ok {
					name = n
				}
			}
			if _, err := fmt.Fprintf(w.Out, "%s\t%d\t%s=%s\n", ts.ID(), p.Timestamp.Millis, name, numberString(p.Values[id])); err != nil {
				return err
			}
		}
	}
	return nil
}

func numberString(n value.Number) string {
	if n.IsFloat() {
		return fmt.Sprintf("%g", n.Float64())
	}
	return fmt.Sprintf("%d", n.Int64())
}

func (w *Writer) OnComplete(from exec.Node, finalSeq, totalSeq int64) error {
	w.Done <- nil
	return nil
}

func (w *Writer) OnError(from exec.Node, err error) error {
	w.Done <- err
	return nil
}
