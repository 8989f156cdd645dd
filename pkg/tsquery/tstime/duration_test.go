package tstime

import "testing"

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in     string
		amount int64
		unit   Unit
	}{
		{"5m", 5, Minutes},
		{"1h", 1, Hours},
		{"500ms", 500, Millis},
		{"30s", 30, Seconds},
		{"2d", 2, Days},
	}
	for _, c := range cases {
		d, err := ParseDuration(c.in)
		if err != nil {
			t.Fatalf("ParseDuration(%q) error: %v", c.in, err)
		}
		if d.Amount != c.amount || d.Unit != c.unit {
			t.Fatalf("ParseDuration(%q) = %+v, want {%d %v}", c.in, d, c.amount, c.unit)
		}
	}
}

func TestParseDurationMillis(t *testing.T) {
	d, err := ParseDuration("5m")
	if err != nil {
		t.Fatal(err)
	}
	if d.Millis() != 5*60*1000 {
		t.Fatalf("Millis() = %d, want %d", d.Millis(), 5*60*1000)
	}
}

func TestParseDurationErrors(t *testing.T) {
	for _, in := range []string{"", "5", "5x", "m"} {
		if _, err := ParseDuration(in); err == nil {
			t.Fatalf("ParseDuration(%q) should have failed", in)
		}
	}
}
