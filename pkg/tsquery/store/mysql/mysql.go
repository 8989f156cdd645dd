// Package mysql is a reference DataStoreFactory backed by MySQL via
// github.com/go-sql-driver/mysql, the teacher's direct dependency
// (SPEC_FULL.md §3). It assumes an existing
// `points(series_id, ts_millis, is_float, ival, fval)` table.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/go-sql-driver/mysql"

	"github.com/jrmccluskey/tsquery/pkg/tsquery/exec"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/result"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/series"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/store"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/tstime"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/value"
)

// Factory implements store.Factory over a MySQL connection.
type Factory struct {
	db     *sql.DB
	logger *slog.Logger
	Spec   tstime.Specification
	Rollup value.RollupConfig
}

// Open connects to MySQL at dsn (the go-sql-driver/mysql DSN form,
// "user:pass@tcp(host:3306)/db").
func Open(dsn string, logger *slog.Logger) (*Factory, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("mysql: open: %w", err)
	}
	return &Factory{db: db, logger: logger}, nil
}

func (f *Factory) IDKind() series.IDKind { return series.StringID }

func (f *Factory) SupportsPushdown(exec.NodeKind) bool { return false }

// Open implements store.Factory, retrying transient connection failures
// (SPEC_FULL.md §3).
func (f *Factory) Open(ctx context.Context, id string) (store.DataStore, error) {
	var ds *store.SingleResult
	ds = store.NewSingleResult(id, func(ctx context.Context) (result.Result, error) {
		var points []value.ScalarPoint
		err := store.WithRetry(func() error {
			points = nil
			rows, err := f.db.QueryContext(ctx,
				`SELECT ts_millis, is_float, ival, fval FROM points WHERE series_id = ? ORDER BY ts_millis ASC`, id)
			if err != nil {
				return fmt.Errorf("mysql: query %q: %w", id, err)
			}
			defer rows.Close()
			for rows.Next() {
				var ms int64
				var isFloat bool
				var ival int64
				var fval float64
				if err := rows.Scan(&ms, &isFloat, &ival, &fval); err != nil {
					return fmt.Errorf("mysql: scan %q: %w", id, err)
				}
				v := value.Int(ival)
				if isFloat {
					v = value.Float(fval)
				}
				points = append(points, value.ScalarPoint{Timestamp: tstime.FromMillis(ms), Value: v})
			}
			return rows.Err()
		})
		if err != nil {
			return nil, err
		}
		ts := series.NewScalarSeries(series.StringIdentity(id), points)
		return result.NewBase(0, f.Spec, tstime.Millis, f.Rollup, series.StringID, []series.TimeSeries{ts}, ds), nil
	})
	return ds, nil
}
