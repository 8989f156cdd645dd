// Package avroimport is a reference DataStoreFactory that reads
// Avro-encoded result batches from local backup files via
// github.com/linkedin/goavro, the teacher's direct dependency
// (SPEC_FULL.md §3). Each file holds one Avro Object Container File with
// one record per observation, sharded one file per series under Dir.
package avroimport

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/linkedin/goavro"

	"github.com/jrmccluskey/tsquery/pkg/tsquery/exec"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/result"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/series"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/store"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/tstime"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/value"
)

// Factory implements store.Factory over local Avro backup files.
type Factory struct {
	Dir    string
	cache  *store.CacheDir
	logger *slog.Logger
	Spec   tstime.Specification
	Rollup value.RollupConfig
}

// Open binds a Factory to dir, guarding it with the same one-shot
// cache-directory lock the gcsparquet backend uses (SPEC_FULL.md §3),
// since both backends stage/read local files a concurrent process must not
// race with.
func Open(dir string, logger *slog.Logger) (*Factory, error) {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{Dir: dir, cache: store.NewCacheDir(dir), logger: logger}, nil
}

func (f *Factory) IDKind() series.IDKind { return series.StringID }

func (f *Factory) SupportsPushdown(exec.NodeKind) bool { return false }

// Open implements store.Factory: reads "<Dir>/<id>.avro" and decodes every
// record into a NumericScalar series.
func (f *Factory) Open(_ context.Context, id string) (store.DataStore, error) {
	var ds *store.SingleResult
	ds = store.NewSingleResult(id, func(ctx context.Context) (result.Result, error) {
		if err := f.cache.Ensure(); err != nil {
			return nil, err
		}
		path := filepath.Join(f.Dir, id+".avro")
		fh, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("avroimport: open %q: %w", path, err)
		}
		defer fh.Close()

		ocf, err := goavro.NewOCFReader(fh)
		if err != nil {
			return nil, fmt.Errorf("avroimport: open OCF %q: %w", path, err)
		}

		var points []value.ScalarPoint
		for ocf.Scan() {
			datum, err := ocf.Read()
			if err != nil {
				return nil, fmt.Errorf("avroimport: read record in %q: %w", path, err)
			}
			rec, ok := datum.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("avroimport: record in %q is not a map", path)
			}
			ms, _ := rec["ts_millis"].(int64)
			isFloat, _ := rec["is_float"].(bool)
			v := value.Int(toInt64(rec["ival"]))
			if isFloat {
				v = value.Float(toFloat64(rec["fval"]))
			}
			points = append(points, value.ScalarPoint{Timestamp: tstime.FromMillis(ms), Value: v})
		}
		if err := ocf.Err(); err != nil {
			return nil, fmt.Errorf("avroimport: scan %q: %w", path, err)
		}
		sort.Slice(points, func(i, j int) bool { return points[i].Timestamp.Before(points[j].Timestamp) })

		ts := series.NewScalarSeries(series.StringIdentity(id), points)
		return result.NewBase(0, f.Spec, tstime.Millis, f.Rollup, series.StringID, []series.TimeSeries{ts}, ds), nil
	})
	return ds, nil
}

func toInt64(v interface{}) int64 {
	n, _ := v.(int64)
	return n
}

func toFloat64(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	default:
		return 0
	}
}
