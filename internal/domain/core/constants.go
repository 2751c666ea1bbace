package core

const (
	ClientStatusActive   = "active"
	ClientStatusInactive = "inactive"

	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
	ProjectStatusOnHold    = "on-hold"
)

var Roles = []string{"admin", "employee", "accountant", "operation", "sales_manager"}

var EmploymentTypes = []string{"full-time", "part-time", "casual"}
