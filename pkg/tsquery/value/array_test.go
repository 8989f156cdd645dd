package value

import (
	"testing"

	"github.com/jrmccluskey/tsquery/pkg/tsquery/tstime"
)

func TestArrayTimestampAt(t *testing.T) {
	arr := NewIntArray(tstime.FromMillis(1000), tstime.Duration{Amount: 1, Unit: tstime.Seconds}, []int64{1, 2, 3})
	if arr.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", arr.Len())
	}
	for i, want := range []int64{1000, 2000, 3000} {
		if got := arr.TimestampAt(i).Millis; got != want {
			t.Fatalf("TimestampAt(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestArrayAtPreservesTag(t *testing.T) {
	arr := NewIntArray(tstime.TimeStamp{}, tstime.Duration{Amount: 1, Unit: tstime.Seconds}, []int64{4, 5})
	if arr.At(0).IsFloat() {
		t.Fatal("NewIntArray elements should not be tagged floating")
	}
	if arr.At(0).Int64() != 4 {
		t.Fatalf("At(0) = %d, want 4", arr.At(0).Int64())
	}
}

func TestArrayPromote(t *testing.T) {
	arr := NewIntArray(tstime.TimeStamp{}, tstime.Duration{Amount: 1, Unit: tstime.Seconds}, []int64{4, 5})
	p := arr.Promote()
	if !p.IsFloat() {
		t.Fatal("Promote() should produce a floating array")
	}
	if p.At(0).Float64() != 4.0 || p.At(1).Float64() != 5.0 {
		t.Fatalf("Promote() values = %v, %v, want 4.0, 5.0", p.At(0).Float64(), p.At(1).Float64())
	}

	f := NewFloatArray(tstime.TimeStamp{}, tstime.Duration{Amount: 1, Unit: tstime.Seconds}, []float64{1.5})
	if f.Promote() != f {
		t.Fatal("Promote on an already-floating array should be a no-op")
	}
}
