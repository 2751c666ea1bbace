package roster

import (
	"errors"
	"testing"
	"time"

	"bizops/internal/domain/timesheet"
)

func TestIsEditablePendingHours(t *testing.T) {
	entry := Entry{ID: "r1", IsLocked: false}
	hours := []timesheet.WorkingHour{
		{RosterID: "r1", Status: timesheet.StatusPending},
	}

	if !IsEditable(entry, hours) {
		t.Fatal("expected roster with only pending hours to be editable")
	}

	hours[0].Status = timesheet.StatusApproved
	if IsEditable(entry, hours) {
		t.Fatal("expected roster with approved hours to be locked")
	}
}

func TestIsEditableLockedFlag(t *testing.T) {
	entry := Entry{ID: "r1", IsLocked: true}

	if IsEditable(entry, nil) {
		t.Fatal("expected locked roster to be uneditable without approved hours")
	}
}

func TestIsEditableIgnoresOtherRosters(t *testing.T) {
	entry := Entry{ID: "r1"}
	hours := []timesheet.WorkingHour{
		{RosterID: "r2", Status: timesheet.StatusApproved},
		{RosterID: "r1", Status: timesheet.StatusRejected},
	}

	if !IsEditable(entry, hours) {
		t.Fatal("expected approvals on other rosters not to lock this one")
	}
}

func TestCheckEditableCarriesApprovedCount(t *testing.T) {
	entry := Entry{ID: "r1"}
	hours := []timesheet.WorkingHour{
		{RosterID: "r1", Status: timesheet.StatusApproved},
		{RosterID: "r1", Status: timesheet.StatusApproved},
	}

	err := CheckEditable(entry, hours)
	if err == nil {
		t.Fatal("expected lock error")
	}
	var locked *LockedError
	if !errors.As(err, &locked) {
		t.Fatalf("expected LockedError, got %T", err)
	}
	if locked.ApprovedCount != 2 {
		t.Fatalf("expected approved count 2, got %d", locked.ApprovedCount)
	}
}

func TestCheckEditableUnlocked(t *testing.T) {
	entry := Entry{ID: "r1"}
	if err := CheckEditable(entry, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestShiftHours(t *testing.T) {
	start := time.Date(2000, 1, 1, 9, 0, 0, 0, time.UTC)
	end := time.Date(2000, 1, 1, 17, 30, 0, 0, time.UTC)

	if hours := ShiftHours(start, end); hours != 8.5 {
		t.Fatalf("expected 8.5 hours, got %v", hours)
	}
}

func TestShiftHoursFloorsAtZero(t *testing.T) {
	start := time.Date(2000, 1, 1, 17, 0, 0, 0, time.UTC)
	end := time.Date(2000, 1, 1, 9, 0, 0, 0, time.UTC)

	if hours := ShiftHours(start, end); hours != 0 {
		t.Fatalf("expected 0 hours for inverted range, got %v", hours)
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusPending, StatusPending, false},
		{"unknown", StatusConfirmed, false},
		{StatusPending, "unknown", false},
	}

	for _, tc := range tests {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Fatalf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}
