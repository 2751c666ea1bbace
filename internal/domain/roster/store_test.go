package roster

import "testing"

func TestNullIfEmptyOptionalLinks(t *testing.T) {
	if got := nullIfEmpty(""); got != nil {
		t.Fatalf("expected nil for empty link, got %v", got)
	}
	if got := nullIfEmpty("p1"); got != "p1" {
		t.Fatalf("expected value passed through, got %v", got)
	}
}
