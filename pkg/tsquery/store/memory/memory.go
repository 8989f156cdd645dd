// Package memory is the default reference DataStoreFactory: an in-process
// SQL table backed by ramsql, the teacher's pure-Go engine, requiring no
// external service (SPEC_FULL.md §3). It is also the backend unit and
// pipeline-level tests exercise.
package memory

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/proullon/ramsql/driver"

	"github.com/jrmccluskey/tsquery/pkg/tsquery/exec"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/result"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/rollup"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/series"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/store"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/tstime"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/value"
)

// schema is created once per database name; points are keyed by a plain
// text series identity, matching series.StringIdentity.
const schema = `CREATE TABLE IF NOT EXISTS points (
	series_id TEXT,
	ts_millis BIGINT,
	is_float BOOLEAN,
	ival BIGINT,
	fval DOUBLE
)`

// Factory implements store.Factory over a ramsql in-process database. Spec
// and Rollup describe the fixed query context (time range, summary-id
// mapping) this reference backend serves; a production DataStoreFactory
// would instead derive these per query, which is the query-parsing concern
// spec.md §1 excludes from the core.
type Factory struct {
	db     *sql.DB
	logger *slog.Logger
	Spec   tstime.Specification
	Rollup value.RollupConfig
}

// Open creates (or reuses) the named in-process database and ensures its
// schema exists.
func Open(dbName string, logger *slog.Logger) (*Factory, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("ramsql", dbName)
	if err != nil {
		return nil, fmt.Errorf("memory: open %q: %w", dbName, err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("memory: create schema: %w", err)
	}
	return &Factory{db: db, logger: logger, Rollup: rollup.Default()}, nil
}

// IDKind implements store.Factory: this backend identifies series by
// their plain string metric+tag identity.
func (f *Factory) IDKind() series.IDKind { return series.StringID }

// SupportsPushdown always reports false: query planning/pushdown is out of
// scope (spec.md §1 Non-goals).
func (f *Factory) SupportsPushdown(exec.NodeKind) bool { return false }

// Insert adds a point for seriesID, used by tests to seed data without a
// separate ingestion path.
func (f *Factory) Insert(seriesID string, ts tstime.TimeStamp, v value.Number) error {
	_, err := f.db.Exec(
		`INSERT INTO points (series_id, ts_millis, is_float, ival, fval) VALUES (?, ?, ?, ?, ?)`,
		seriesID, ts.Millis, v.IsFloat(), v.Int64(), v.Float64(),
	)
	return err
}

// Open implements store.Factory: returns a DataStore that, when Run, loads
// every point for id ordered by timestamp and emits it as one
// NumericScalar series inside a single Result.
func (f *Factory) Open(ctx context.Context, id string) (store.DataStore, error) {
	var ds *store.SingleResult
	ds = store.NewSingleResult(id, func(ctx context.Context) (result.Result, error) {
		rows, err := f.db.QueryContext(ctx,
			`SELECT ts_millis, is_float, ival, fval FROM points WHERE series_id = ? ORDER BY ts_millis ASC`, id)
		if err != nil {
			return nil, fmt.Errorf("memory: query %q: %w", id, err)
		}
		defer rows.Close()

		var points []value.ScalarPoint
		for rows.Next() {
			var ms int64
			var isFloat bool
			var ival int64
			var fval float64
			if err := rows.Scan(&ms, &isFloat, &ival, &fval); err != nil {
				return nil, fmt.Errorf("memory: scan %q: %w", id, err)
			}
			v := value.Int(ival)
			if isFloat {
				v = value.Float(fval)
			}
			points = append(points, value.ScalarPoint{Timestamp: tstime.FromMillis(ms), Value: v})
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}

		ts := series.NewScalarSeries(series.StringIdentity(id), points)
		return result.NewBase(0, f.Spec, tstime.Millis, f.Rollup, series.StringID, []series.TimeSeries{ts}, ds), nil
	})
	return ds, nil
}
