package reports

import "testing"

func TestFinanceDashboard(t *testing.T) {
	payload := FinanceDashboard(1300, 500, 200, 2)
	if payload["totalBalance"].(float64) != 1300 {
		t.Fatal("unexpected total balance")
	}
	if payload["totalIncome"].(float64) != 500 {
		t.Fatal("unexpected total income")
	}
	if payload["totalExpense"].(float64) != 200 {
		t.Fatal("unexpected total expense")
	}
	if payload["accountCount"].(int) != 2 {
		t.Fatal("unexpected account count")
	}
}

func TestPayrollDashboard(t *testing.T) {
	payload := PayrollDashboard(14, 350, 35, 315, 1)
	if payload["totalGross"].(float64) != 350 {
		t.Fatal("unexpected total gross")
	}
	if payload["totalNet"].(float64) != 315 {
		t.Fatal("unexpected total net")
	}
	if payload["payrollCount"].(int) != 1 {
		t.Fatal("unexpected payroll count")
	}
}

func TestOperationsDashboard(t *testing.T) {
	payload := OperationsDashboard(5, 3, 7, 2)
	if payload["activeProfiles"].(int) != 5 {
		t.Fatal("unexpected active profiles")
	}
	if payload["pendingRosters"].(int) != 2 {
		t.Fatal("unexpected pending rosters")
	}
}
