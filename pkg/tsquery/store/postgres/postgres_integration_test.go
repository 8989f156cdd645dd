//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jrmccluskey/tsquery/pkg/tsquery/exec"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/result"
)

type captureSink struct {
	*exec.Base
	results []result.Result
	done    bool
	err     error
}

func newCaptureSink() *captureSink {
	return &captureSink{Base: exec.NewBase("sink", nil)}
}

func (c *captureSink) OnNext(from exec.Node, res result.Result) error {
	c.results = append(c.results, res)
	return nil
}

func (c *captureSink) OnComplete(from exec.Node, finalSeq, totalSeq int64) error {
	c.done = true
	return nil
}

func (c *captureSink) OnError(from exec.Node, err error) error {
	c.err = err
	return nil
}

// TestPostgresRoundTrip exercises Factory.Open against a real PostgreSQL
// instance, requiring Docker. Run with `go test -tags integration ./...`.
func TestPostgresRoundTrip(t *testing.T) {
	ctx := context.Background()

	container, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("tsquery_test"),
		tcpostgres.WithUsername("tsquery"),
		tcpostgres.WithPassword("tsquery"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	defer container.Terminate(ctx)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	f, err := Open(dsn, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	const schema = `CREATE TABLE points (
		series_id  TEXT NOT NULL,
		ts_millis  BIGINT NOT NULL,
		is_float   BOOLEAN NOT NULL,
		ival       BIGINT NOT NULL DEFAULT 0,
		fval       DOUBLE PRECISION NOT NULL DEFAULT 0
	)`
	if _, err := f.db.ExecContext(ctx, schema); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	const insert = `INSERT INTO points (series_id, ts_millis, is_float, ival, fval) VALUES ($1, $2, $3, $4, $5)`
	if _, err := f.db.ExecContext(ctx, insert, "series-1", int64(0), false, int64(10), 0.0); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if _, err := f.db.ExecContext(ctx, insert, "series-1", int64(1000), true, int64(0), 20.5); err != nil {
		t.Fatalf("insert: %v", err)
	}

	ds, err := f.Open(ctx, "series-1")
	if err != nil {
		t.Fatalf("Open(series-1): %v", err)
	}

	sink := newCaptureSink()
	if err := ds.Run(ctx, sink); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sink.err != nil {
		t.Fatalf("sink received an error: %v", sink.err)
	}
	if !sink.done {
		t.Fatal("sink never received OnComplete")
	}
	if len(sink.results) != 1 {
		t.Fatalf("sink received %d Results, want 1", len(sink.results))
	}

	ts := sink.results[0].TimeSeries()
	if len(ts) != 1 {
		t.Fatalf("Result has %d series, want 1", len(ts))
	}
	it, ok := ts[0].Scalar()
	if !ok {
		t.Fatal("expected a NumericScalar iterator")
	}
	var count int
	for it.HasNext() {
		p, err := it.Next()
		if err != nil {
			t.Fatal(err)
		}
		count++
		if p.Timestamp.Millis == 0 && p.Value.Int64() != 10 {
			t.Fatalf("row 0 value = %v, want 10", p.Value)
		}
		if p.Timestamp.Millis == 1000 && p.Value.Float64() != 20.5 {
			t.Fatalf("row 1 value = %v, want 20.5", p.Value)
		}
	}
	if count != 2 {
		t.Fatalf("got %d points, want 2", count)
	}
}
