package auth

const (
	RoleAdmin        = "admin"
	RoleEmployee     = "employee"
	RoleAccountant   = "accountant"
	RoleOperation    = "operation"
	RoleSalesManager = "sales_manager"
)

const (
	PermProfilesRead        = "core.profiles.read"
	PermProfilesWrite       = "core.profiles.write"
	PermClientsRead         = "core.clients.read"
	PermClientsWrite        = "core.clients.write"
	PermProjectsRead        = "core.projects.read"
	PermProjectsWrite       = "core.projects.write"
	PermBankRead            = "bank.read"
	PermBankWrite           = "bank.write"
	PermWorkingHoursRead    = "timesheet.read"
	PermWorkingHoursWrite   = "timesheet.write"
	PermWorkingHoursApprove = "timesheet.approve"
	PermRosterRead          = "roster.read"
	PermRosterWrite         = "roster.write"
	PermPayrollRead         = "payroll.read"
	PermPayrollWrite        = "payroll.write"
	PermPayrollApprove      = "payroll.approve"
	PermReportsRead         = "reports.read"
)

var DefaultPermissions = []string{
	PermProfilesRead,
	PermProfilesWrite,
	PermClientsRead,
	PermClientsWrite,
	PermProjectsRead,
	PermProjectsWrite,
	PermBankRead,
	PermBankWrite,
	PermWorkingHoursRead,
	PermWorkingHoursWrite,
	PermWorkingHoursApprove,
	PermRosterRead,
	PermRosterWrite,
	PermPayrollRead,
	PermPayrollWrite,
	PermPayrollApprove,
	PermReportsRead,
}

// RolePermissions is the static role-to-capability map consulted before
// handlers run. Roles mirror the profile role enumeration.
var RolePermissions = map[string][]string{
	RoleAdmin: DefaultPermissions,
	RoleEmployee: {
		PermProfilesRead,
		PermClientsRead,
		PermProjectsRead,
		PermWorkingHoursRead,
		PermWorkingHoursWrite,
		PermRosterRead,
		PermPayrollRead,
	},
	RoleAccountant: {
		PermProfilesRead,
		PermClientsRead,
		PermProjectsRead,
		PermBankRead,
		PermBankWrite,
		PermWorkingHoursRead,
		PermWorkingHoursApprove,
		PermRosterRead,
		PermPayrollRead,
		PermPayrollWrite,
		PermPayrollApprove,
		PermReportsRead,
	},
	RoleOperation: {
		PermProfilesRead,
		PermClientsRead,
		PermProjectsRead,
		PermWorkingHoursRead,
		PermWorkingHoursWrite,
		PermWorkingHoursApprove,
		PermRosterRead,
		PermRosterWrite,
		PermReportsRead,
	},
	RoleSalesManager: {
		PermProfilesRead,
		PermClientsRead,
		PermClientsWrite,
		PermProjectsRead,
		PermProjectsWrite,
		PermRosterRead,
		PermReportsRead,
	},
}

func HasPermission(role, permission string) bool {
	for _, perm := range RolePermissions[role] {
		if perm == permission {
			return true
		}
	}
	return false
}
