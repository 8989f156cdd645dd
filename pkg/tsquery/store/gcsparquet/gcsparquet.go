// Package gcsparquet is a reference DataStoreFactory that reads columnar
// time-series exports from Cloud Storage via cloud.google.com/go/storage,
// github.com/xitongsys/parquet-go, and .../parquet-go-source — all direct
// teacher dependencies (SPEC_FULL.md §3). Objects are staged to a local
// cache directory guarded by store.CacheDir before parquet-go reads them,
// since parquet-go-source's local reader expects a filesystem path.
package gcsparquet

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"

	"github.com/jrmccluskey/tsquery/pkg/tsquery/exec"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/result"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/series"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/store"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/tstime"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/value"
)

// pointRow is the parquet row schema this backend expects: one row per
// observation, sharded into one object per series under the bucket.
type pointRow struct {
	TSMillis int64   `parquet:"name=ts_millis, type=INT64"`
	IsFloat  bool    `parquet:"name=is_float, type=BOOLEAN"`
	IVal     int64   `parquet:"name=ival, type=INT64"`
	FVal     float64 `parquet:"name=fval, type=DOUBLE"`
}

// Factory implements store.Factory over Cloud Storage objects, one per
// series, named "<id>.parquet" under Prefix.
type Factory struct {
	client *storage.Client
	bucket string
	Prefix string
	cache  *store.CacheDir
	logger *slog.Logger
	Spec   tstime.Specification
	Rollup value.RollupConfig
}

// Open builds a Cloud Storage client bound to bucket, staging downloaded
// objects under cacheDir.
func Open(ctx context.Context, bucket, cacheDir string, logger *slog.Logger) (*Factory, error) {
	if logger == nil {
		logger = slog.Default()
	}
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcsparquet: new client: %w", err)
	}
	return &Factory{client: client, bucket: bucket, cache: store.NewCacheDir(cacheDir), logger: logger}, nil
}

func (f *Factory) IDKind() series.IDKind { return series.StringID }

func (f *Factory) SupportsPushdown(exec.NodeKind) bool { return false }

// Open implements store.Factory: downloads "<Prefix><id>.parquet" from the
// bucket into the local cache (if not already staged), then reads every
// row into a NumericScalar series.
func (f *Factory) Open(ctx context.Context, id string) (store.DataStore, error) {
	var ds *store.SingleResult
	ds = store.NewSingleResult(id, func(ctx context.Context) (result.Result, error) {
		if err := f.cache.Ensure(); err != nil {
			return nil, err
		}
		objectName := f.Prefix + id + ".parquet"
		localPath := filepath.Join(f.cache.Path(), id+".parquet")

		var points []value.ScalarPoint
		err := store.WithRetry(func() error {
			if err := f.stage(ctx, objectName, localPath); err != nil {
				return err
			}
			rows, err := readRows(localPath)
			if err != nil {
				return err
			}
			points = rows
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

// stage copies objectName from the bucket to localPath if localPath does
// not already exist.
func (f *Factory) stage(ctx context.Context, objectName, localPath string) error {
	if _, err := os.Stat(localPath); err == nil {
		return nil
	}
	rc, err := f.client.Bucket(f.bucket).Object(objectName).NewReader(ctx)
	if err != nil {
		return fmt.Errorf("gcsparquet: open object %q: %w", objectName, err)
	}
	defer rc.Close()

	out, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("gcsparquet: create local staging file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, rc); err != nil {
		return fmt.Errorf("gcsparquet: stage object %q: %w", objectName, err)
	}
	return nil
}

func readRows(localPath string) ([]value.ScalarPoint, error) {
	fr, err := local.NewLocalFileReader(localPath)
	if err != nil {
		return nil, fmt.Errorf("gcsparquet: open local file: %w", err)
	}
	defer fr.Close()

	pr, err := reader.NewParquetReader(fr, new(pointRow), 4)
	if err != nil {
		return nil, fmt.Errorf("gcsparquet: new parquet reader: %w", err)
	}
	defer pr.ReadStop()

	n := int(pr.GetNumRows())
	rows := make([]pointRow, n)
	if err := pr.Read(&rows); err != nil {
		return nil, fmt.Errorf("gcsparquet: read rows: %w", err)
	}

	points := make([]value.ScalarPoint, 0, n)
	for _, r := range rows {
		v := value.Int(r.IVal)
		if r.IsFloat {
			v = value.Float(r.FVal)
		}
		points = append(points, value.ScalarPoint{Timestamp: tstime.FromMillis(r.TSMillis), Value: v})
	}
	return points, nil
}
