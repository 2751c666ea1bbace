package payroll

import "errors"

var (
	ErrInvalidPeriod  = errors.New("pay period start is after pay period end")
	ErrUnknownProfile = errors.New("profile has no hourly rate and records carry no payable amount")
)
