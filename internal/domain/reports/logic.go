package reports

func FinanceDashboard(totalBalance, totalIncome, totalExpense float64, accountCount int) map[string]any {
	return map[string]any{
		"totalBalance": totalBalance,
		"totalIncome":  totalIncome,
		"totalExpense": totalExpense,
		"accountCount": accountCount,
	}
}

func PayrollDashboard(totalHours, totalGross, totalDeductions, totalNet float64, payrollCount int) map[string]any {
	return map[string]any{
		"totalHours":      totalHours,
		"totalGross":      totalGross,
		"totalDeductions": totalDeductions,
		"totalNet":        totalNet,
		"payrollCount":    payrollCount,
	}
}

func OperationsDashboard(activeProfiles, activeProjects, pendingHours, pendingRosters int) map[string]any {
	return map[string]any{
		"activeProfiles": activeProfiles,
		"activeProjects": activeProjects,
		"pendingHours":   pendingHours,
		"pendingRosters": pendingRosters,
	}
}
