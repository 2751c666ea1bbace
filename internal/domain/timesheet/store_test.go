package timesheet

import "testing"

func TestNullIfEmptyOptionalLinks(t *testing.T) {
	if got := nullIfEmpty(""); got != nil {
		t.Fatalf("expected nil for empty link, got %v", got)
	}
	if got := nullIfEmpty("c1"); got != "c1" {
		t.Fatalf("expected value passed through, got %v", got)
	}
}
