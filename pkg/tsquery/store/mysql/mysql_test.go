package mysql

import (
	"context"
	"testing"

	"github.com/jrmccluskey/tsquery/pkg/tsquery/exec"
	"github.com/jrmccluskey/tsquery/pkg/tsquery/series"
)

func TestFactoryIDKindAndPushdown(t *testing.T) {
	f, err := Open("tsquery:tsquery@tcp(127.0.0.1:3306)/tsquery_test", nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if f.IDKind() != series.StringID {
		t.Fatalf("IDKind() = %v, want StringID", f.IDKind())
	}
	if f.SupportsPushdown(exec.NodeKind("anything")) {
		t.Fatal("SupportsPushdown should always report false")
	}
}

// TestFactoryOpenIsLazy confirms Factory.Open defers the query until the
// returned DataStore is actually Run, so building one never needs a
// reachable MySQL server.
func TestFactoryOpenIsLazy(t *testing.T) {
	f, err := Open("tsquery:tsquery@tcp(127.0.0.1:3306)/tsquery_test", nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	ds, err := f.Open(context.Background(), "series-1")
	if err != nil {
		t.Fatalf("Factory.Open: %v", err)
	}
	if ds.NodeID() != "series-1" {
		t.Fatalf("NodeID() = %q, want %q", ds.NodeID(), "series-1")
	}
}
