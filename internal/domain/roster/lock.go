package roster

import (
	"fmt"
	"time"

	"bizops/internal/domain/timesheet"
)

// LockedError rejects an edit on a roster entry that is locked or has
// approved working hours logged against it.
type LockedError struct {
	ApprovedCount int
}

func (e *LockedError) Error() string {
	if e.ApprovedCount > 0 {
		return fmt.Sprintf("roster has %d approved working hour record(s) and cannot be edited", e.ApprovedCount)
	}
	return "roster is locked and cannot be edited"
}

// ApprovedHourCount counts approved working-hour records linked back to
// the roster entry.
func ApprovedHourCount(entry Entry, workingHours []timesheet.WorkingHour) int {
	count := 0
	for _, wh := range workingHours {
		if wh.RosterID == entry.ID && wh.Status == timesheet.StatusApproved {
			count++
		}
	}
	return count
}

// IsEditable reports whether the entry's shift details may still be
// mutated: no approved working hours and not explicitly locked.
func IsEditable(entry Entry, workingHours []timesheet.WorkingHour) bool {
	return ApprovedHourCount(entry, workingHours) == 0 && !entry.IsLocked
}

// CheckEditable returns a LockedError carrying the approved count when
// the entry may no longer be edited.
func CheckEditable(entry Entry, workingHours []timesheet.WorkingHour) error {
	approved := ApprovedHourCount(entry, workingHours)
	if approved > 0 || entry.IsLocked {
		return &LockedError{ApprovedCount: approved}
	}
	return nil
}

// ShiftHours returns the scheduled hours between two clock times,
// floored at zero.
func ShiftHours(start, end time.Time) float64 {
	hours := end.Sub(start).Hours()
	if hours < 0 {
		return 0
	}
	return hours
}
