// Package bigtable is a reference DataStoreFactory backed by Cloud
// Bigtable via cloud.google.com/go/bigtable, the teacher's direct
// dependency (SPEC_FULL.md §3). Points are stored wide-column style: one
// row per series, one column per timestamp in family "p" — the idiomatic
// column-per-timestamp encoding OpenTSDB-style stores use on HBase/Bigtable.
package bigtable

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"cloud.google.com/go/bigtable"

	"github.com/jrmccluskey/tsquery/pkg/tsquery/exec"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/result"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/series"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/store"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/tstime"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/value"
)

// family is the column family every point cell lives in.
const family = "p"

// Factory implements store.Factory over a Bigtable table.
type Factory struct {
	client *bigtable.Client
	tbl    *bigtable.Table
	logger *slog.Logger
	Spec   tstime.Specification
	Rollup value.RollupConfig
}

// Open connects to Bigtable instance within project and binds to table.
func Open(ctx context.Context, project, instance, table string, logger *slog.Logger) (*Factory, error) {
	if logger == nil {
		logger = slog.Default()
	}
	client, err := bigtable.NewClient(ctx, project, instance)
	if err != nil {
		return nil, fmt.Errorf("bigtable: new client: %w", err)
	}
	return &Factory{client: client, tbl: client.Open(table), logger: logger}, nil
}

func (f *Factory) IDKind() series.IDKind { return series.StringID }

func (f *Factory) SupportsPushdown(exec.NodeKind) bool { return false }

// Open implements store.Factory: reads the single row keyed by id and
// turns each column-per-timestamp cell into a ScalarPoint, retrying
// transient RPC failures (SPEC_FULL.md §3).
func (f *Factory) Open(ctx context.Context, id string) (store.DataStore, error) {
	var ds *store.SingleResult
	ds = store.NewSingleResult(id, func(ctx context.Context) (result.Result, error) {
		var points []value.ScalarPoint
		err := store.WithRetry(func() error {
			points = nil
			row, err := f.tbl.ReadRow(ctx, id, bigtable.RowFilter(bigtable.FamilyFilter(family)))
			if err != nil {
				return fmt.Errorf("bigtable: read row %q: %w", id, err)
			}
			for _, item := range row[family] {
				ms, v, err := decodeCell(item.Column, item.Value)
				if err != nil {
					return fmt.Errorf("bigtable: decode cell %q: %w", item.Column, err)
				}
				points = append(points, value.ScalarPoint{Timestamp: tstime.FromMillis(ms), Value: v})
			}
			sort.Slice(points, func(i, j int) bool { return points[i].Timestamp.Before(points[j].Timestamp) })
			return nil
		})
		if err != nil {
			return nil, err
		}
		ts := series.NewScalarSeries(series.StringIdentity(id), points)
		return result.NewBase(0, f.Spec, tstime.Millis, f.Rollup, series.StringID, []series.TimeSeries{ts}, ds), nil
	})
	return ds, nil
}

// decodeCell parses a "p:<ts_millis>" column qualifier and an
// "i:<n>"/"f:<n>" tagged cell value, the encoding Insert below writes.
func decodeCell(column string, raw []byte) (int64, value.Number, error) {
	_, qualifier, ok := strings.Cut(column, ":")
	if !ok {
		return 0, value.Number{}, fmt.Errorf("malformed column %q", column)
	}
	ms, err := strconv.ParseInt(qualifier, 10, 64)
	if err != nil {
		return 0, value.Number{}, err
	}
	tag, num, ok := strings.Cut(string(raw), ":")
	if !ok {
		return 0, value.Number{}, fmt.Errorf("malformed cell value %q", raw)
	}
	switch tag {
	case "f":
		f, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, value.Number{}, err
		}
		return ms, value.Float(f), nil
	default:
		n, err := strconv.ParseInt(num, 10, 64)
		if err != nil {
			return 0, value.Number{}, err
		}
		return ms, value.Int(n), nil
	}
}

// Insert writes one point into row id's family, used by tests to seed data.
func (f *Factory) Insert(ctx context.Context, id string, ms int64, v value.Number) error {
	mut := bigtable.NewMutation()
	var encoded string
	if v.IsFloat() {
		encoded = "f:" + strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	} else {
		encoded = "i:" + strconv.FormatInt(v.Int64(), 10)
	}
	mut.Set(family, strconv.FormatInt(ms, 10), bigtable.Now(), []byte(encoded))
	return f.tbl.Apply(ctx, id, mut)
}
