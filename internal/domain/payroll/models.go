package payroll

import "time"

type Payroll struct {
	ID             string    `json:"id"`
	ProfileID      string    `json:"profileId"`
	PayPeriodStart time.Time `json:"payPeriodStart"`
	PayPeriodEnd   time.Time `json:"payPeriodEnd"`
	TotalHours     float64   `json:"totalHours"`
	HourlyRate     float64   `json:"hourlyRate"`
	GrossPay       float64   `json:"grossPay"`
	Deductions     float64   `json:"deductions"`
	NetPay         float64   `json:"netPay"`
	Status         string    `json:"status"`
	BankAccountID  string    `json:"bankAccountId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Result is one computed pay outcome for a profile over a period.
type Result struct {
	ProfileID  string  `json:"profileId"`
	TotalHours float64 `json:"totalHours"`
	HourlyRate float64 `json:"hourlyRate"`
	GrossPay   float64 `json:"grossPay"`
	Deductions float64 `json:"deductions"`
	NetPay     float64 `json:"netPay"`
}

// Filter optionally restricts the working hours that price a payroll run.
// Empty fields match any client or project.
type Filter struct {
	ClientID  string
	ProjectID string
}

// DeductionPolicy resolves the deduction for a run: a flat amount or a
// percentage of gross. The policy lives in configuration, not call sites.
type DeductionPolicy struct {
	Kind  string
	Value float64
}

func (p DeductionPolicy) Resolve(gross float64) float64 {
	switch p.Kind {
	case DeductionPercent:
		return gross * p.Value / 100
	case DeductionFlat:
		return p.Value
	default:
		return 0
	}
}
