package bank

const (
	TypeDeposit    = "deposit"
	TypeWithdrawal = "withdrawal"
)
