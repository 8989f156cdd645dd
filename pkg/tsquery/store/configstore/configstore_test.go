package configstore

import (
	"testing"

	"github.com/jrmccluskey/tsquery/pkg/tsquery/rollup"
)

// Store must satisfy rollup.Loader so internal/descriptor.ResolveRollupConfig
// can use it as a fallback without depending on this package directly.
var _ rollup.Loader = (*Store)(nil)

func TestAncestorKeyIsStableForSameName(t *testing.T) {
	s1 := &Store{name: "default"}
	s2 := &Store{name: "default"}
	if s1.ancestorKey().String() != s2.ancestorKey().String() {
		t.Fatal("ancestorKey should be deterministic for a given Store name")
	}

	other := &Store{name: "other"}
	if s1.ancestorKey().String() == other.ancestorKey().String() {
		t.Fatal("ancestorKey should differ across distinct Store names")
	}
}
