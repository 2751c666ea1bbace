package bank

// ComputeAccountBalance folds an account's transactions onto its opening
// balance. Deposits add, withdrawals subtract; transactions belonging to
// other accounts are ignored. The fold is order-independent.
func ComputeAccountBalance(account Account, transactions []Transaction) float64 {
	total := account.OpeningBalance
	for _, tx := range transactions {
		if tx.BankAccountID != account.ID {
			continue
		}
		switch tx.Type {
		case TypeDeposit:
			total += tx.Amount
		case TypeWithdrawal:
			total -= tx.Amount
		}
	}
	return total
}

// ComputeTotalBalance sums the per-account balance over all accounts.
func ComputeTotalBalance(accounts []Account, transactions []Transaction) float64 {
	total := 0.0
	for _, account := range accounts {
		total += ComputeAccountBalance(account, transactions)
	}
	return total
}

// TotalsByType returns summed deposit and withdrawal amounts.
func TotalsByType(transactions []Transaction) (income, expense float64) {
	for _, tx := range transactions {
		switch tx.Type {
		case TypeDeposit:
			income += tx.Amount
		case TypeWithdrawal:
			expense += tx.Amount
		}
	}
	return income, expense
}
