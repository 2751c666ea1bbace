package shared

import "testing"

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-03-04")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Year() != 2024 || parsed.Month() != 3 || parsed.Day() != 4 {
		t.Fatalf("unexpected date: %v", parsed)
	}

	if _, err := ParseDate("2024-03-04T10:00:00Z"); err != nil {
		t.Fatalf("expected RFC3339 to parse, got %v", err)
	}

	if _, err := ParseDate("not-a-date"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestParseClock(t *testing.T) {
	parsed, err := ParseClock("09:30")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Hour() != 9 || parsed.Minute() != 30 {
		t.Fatalf("unexpected clock time: %v", parsed)
	}

	if _, err := ParseClock("17:45:30"); err != nil {
		t.Fatalf("expected HH:MM:SS to parse, got %v", err)
	}

	if _, err := ParseClock("25:00"); err == nil {
		t.Fatal("expected parse error for invalid hour")
	}
}
