package payroll

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusPaid     = "paid"

	DeductionFlat    = "flat"
	DeductionPercent = "percent"
)

// statusRank orders the pay lifecycle; status only advances.
var statusRank = map[string]int{
	StatusPending:  0,
	StatusApproved: 1,
	StatusPaid:     2,
}

func CanAdvance(from, to string) bool {
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
