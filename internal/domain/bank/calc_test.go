package bank

import "testing"

func TestComputeAccountBalance(t *testing.T) {
	account := Account{ID: "a1", OpeningBalance: 1000}
	transactions := []Transaction{
		{BankAccountID: "a1", Type: TypeDeposit, Amount: 500},
		{BankAccountID: "a1", Type: TypeWithdrawal, Amount: 200},
	}

	balance := ComputeAccountBalance(account, transactions)
	if balance != 1300 {
		t.Fatalf("expected balance 1300, got %v", balance)
	}
}

func TestComputeAccountBalanceFiltersOtherAccounts(t *testing.T) {
	account := Account{ID: "a1", OpeningBalance: 100}
	transactions := []Transaction{
		{BankAccountID: "a1", Type: TypeDeposit, Amount: 50},
		{BankAccountID: "a2", Type: TypeDeposit, Amount: 999},
		{BankAccountID: "a2", Type: TypeWithdrawal, Amount: 10},
	}

	balance := ComputeAccountBalance(account, transactions)
	if balance != 150 {
		t.Fatalf("expected balance 150, got %v", balance)
	}
}

func TestComputeAccountBalanceNegativeOpening(t *testing.T) {
	account := Account{ID: "a1", OpeningBalance: -250}
	transactions := []Transaction{
		{BankAccountID: "a1", Type: TypeDeposit, Amount: 100},
	}

	balance := ComputeAccountBalance(account, transactions)
	if balance != -150 {
		t.Fatalf("expected balance -150, got %v", balance)
	}
}

func TestComputeAccountBalanceIgnoresUnknownTypes(t *testing.T) {
	account := Account{ID: "a1", OpeningBalance: 0}
	transactions := []Transaction{
		{BankAccountID: "a1", Type: "transfer", Amount: 40},
		{BankAccountID: "a1", Type: TypeDeposit, Amount: 10},
	}

	balance := ComputeAccountBalance(account, transactions)
	if balance != 10 {
		t.Fatalf("expected balance 10, got %v", balance)
	}
}

func TestComputeAccountBalanceIdempotent(t *testing.T) {
	account := Account{ID: "a1", OpeningBalance: 42}
	transactions := []Transaction{
		{BankAccountID: "a1", Type: TypeDeposit, Amount: 8},
		{BankAccountID: "a1", Type: TypeWithdrawal, Amount: 3},
	}

	first := ComputeAccountBalance(account, transactions)
	second := ComputeAccountBalance(account, transactions)
	if first != second {
		t.Fatalf("expected identical results, got %v and %v", first, second)
	}
}

func TestComputeTotalBalanceMatchesPerAccountSum(t *testing.T) {
	accounts := []Account{
		{ID: "a1", OpeningBalance: 1000},
		{ID: "a2", OpeningBalance: -50},
		{ID: "a3", OpeningBalance: 0},
	}
	transactions := []Transaction{
		{BankAccountID: "a1", Type: TypeDeposit, Amount: 500},
		{BankAccountID: "a1", Type: TypeWithdrawal, Amount: 200},
		{BankAccountID: "a2", Type: TypeDeposit, Amount: 75},
		{BankAccountID: "a3", Type: TypeWithdrawal, Amount: 25},
	}

	total := ComputeTotalBalance(accounts, transactions)

	sum := 0.0
	for _, account := range accounts {
		sum += ComputeAccountBalance(account, transactions)
	}
	if total != sum {
		t.Fatalf("expected total %v to equal per-account sum %v", total, sum)
	}
	if total != 1300 {
		t.Fatalf("expected total 1300, got %v", total)
	}
}

func TestTotalsByType(t *testing.T) {
	transactions := []Transaction{
		{Type: TypeDeposit, Amount: 100},
		{Type: TypeDeposit, Amount: 50},
		{Type: TypeWithdrawal, Amount: 30},
	}

	income, expense := TotalsByType(transactions)
	if income != 150 {
		t.Fatalf("expected income 150, got %v", income)
	}
	if expense != 30 {
		t.Fatalf("expected expense 30, got %v", expense)
	}
}
