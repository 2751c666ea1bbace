package bank

import "time"

type Account struct {
	ID                string    `json:"id"`
	ProfileID         string    `json:"profileId,omitempty"`
	BankName          string    `json:"bankName"`
	AccountNumber     string    `json:"accountNumber"`
	BSBCode           string    `json:"bsbCode,omitempty"`
	AccountHolderName string    `json:"accountHolderName"`
	OpeningBalance    float64   `json:"openingBalance"`
	IsPrimary         bool      `json:"isPrimary"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type Transaction struct {
	ID            string    `json:"id"`
	BankAccountID string    `json:"bankAccountId"`
	Description   string    `json:"description"`
	Amount        float64   `json:"amount"`
	Type          string    `json:"type"`
	Category      string    `json:"category"`
	Date          time.Time `json:"date"`
	ClientID      string    `json:"clientId,omitempty"`
	ProjectID     string    `json:"projectId,omitempty"`
	ProfileID     string    `json:"profileId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Filter narrows a ledger query. Zero values match everything.
type Filter struct {
	BankAccountID string
	Type          string
	From          time.Time
	To            time.Time
}
