// Package bigquery is a reference DataStoreFactory backed by BigQuery via
// cloud.google.com/go/bigquery, the teacher's direct dependency
// (SPEC_FULL.md §3). BigQuery rows become NumericScalar points: the
// batch-analytics analogue of a time-series query.
package bigquery

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"

	"github.com/jrmccluskey/tsquery/pkg/tsquery/exec"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/result"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/series"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/store"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/tstime"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/value"
)

// pointRow mirrors the BigQuery table layout this backend expects: one row
// per observation.
type pointRow struct {
	SeriesID string  `bigquery:"series_id"`
	TSMillis int64   `bigquery:"ts_millis"`
	IsFloat  bool    `bigquery:"is_float"`
	IVal     int64   `bigquery:"ival"`
	FVal     float64 `bigquery:"fval"`
}

// Factory implements store.Factory over a BigQuery client.
type Factory struct {
	client  *bigquery.Client
	table   string
	logger  *slog.Logger
	Spec    tstime.Specification
	Rollup  value.RollupConfig
}

// Open builds a BigQuery client for projectID and binds it to table (a
// fully-qualified "dataset.table" reference).
func Open(ctx context.Context, projectID, table string, logger *slog.Logger) (*Factory, error) {
	if logger == nil {
		logger = slog.Default()
	}
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("bigquery: new client: %w", err)
	}
	return &Factory{client: client, table: table, logger: logger}, nil
}

func (f *Factory) IDKind() series.IDKind { return series.StringID }

func (f *Factory) SupportsPushdown(exec.NodeKind) bool { return false }

// Open implements store.Factory: runs a parameterized query for id,
// retrying transient RPC failures (SPEC_FULL.md §3).
func (f *Factory) Open(ctx context.Context, id string) (store.DataStore, error) {
	var ds *store.SingleResult
	ds = store.NewSingleResult(id, func(ctx context.Context) (result.Result, error) {
		var points []value.ScalarPoint
		err := store.WithRetry(func() error {
			points = nil
			q := f.client.Query(fmt.Sprintf(
				"SELECT series_id, ts_millis, is_float, ival, fval FROM `%s` WHERE series_id = @id ORDER BY ts_millis ASC",
				f.table,
			))
			q.Parameters = []bigquery.QueryParameter{{Name: "id", Value: id}}
			it, err := q.Read(ctx)
			if err != nil {
				return fmt.Errorf("bigquery: query %q: %w", id, err)
			}
			for {
				var row pointRow
				err := it.Next(&row)
				if err == iterator.Done {
					break
				}
				if err != nil {
					return fmt.Errorf("bigquery: read %q: %w", id, err)
				}
				v := value.Int(row.IVal)
				if row.IsFloat {
					v = value.Float(row.FVal)
				}
				points = append(points, value.ScalarPoint{Timestamp: tstime.FromMillis(row.TSMillis), Value: v})
			}
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
