package exec

import "testing"

func TestCancelTokenFirstReasonSticks(t *testing.T) {
	c := NewCancelToken()
	if c.Cancelled() {
		t.Fatal("a fresh token should not be cancelled")
	}
	c.Cancel("first")
	c.Cancel("second")
	if !c.Cancelled() {
		t.Fatal("token should be cancelled after Cancel")
	}
	if c.Reason() != "first" {
		t.Fatalf("Reason() = %q, want %q (first reason sticks)", c.Reason(), "first")
	}
}
