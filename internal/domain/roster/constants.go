package roster

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// statusRank orders the shift lifecycle; transitions only move forward.
var statusRank = map[string]int{
	StatusPending:   0,
	StatusConfirmed: 1,
	StatusCancelled: 2,
}

// CanTransition reports whether a status change moves forward through
// pending -> confirmed -> cancelled. Editability is a separate guard
// and does not constrain status changes.
func CanTransition(from, to string) bool {
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}
