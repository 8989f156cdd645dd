package window

import "testing"

func TestParseAggregatorRoundTrip(t *testing.T) {
	names := []string{"sum", "avg", "min", "max", "count", "first", "last"}
	for _, name := range names {
		a, ok := ParseAggregator(name)
		if !ok {
			t.Fatalf("ParseAggregator(%q) reported not-found", name)
		}
		if a.String() != name {
			t.Fatalf("Aggregator(%q).String() = %q", name, a.String())
		}
	}
}

func TestParseAggregatorUnknown(t *testing.T) {
	if _, ok := ParseAggregator("p99"); ok {
		t.Fatal("ParseAggregator(\"p99\") should report not-found")
	}
}

func TestAggregatorStringUnknownValue(t *testing.T) {
	a := Aggregator(99)
	if a.String() != "Aggregator(99)" {
		t.Fatalf("Aggregator(99).String() = %q", a.String())
	}
}
