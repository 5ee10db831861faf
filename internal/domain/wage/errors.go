package wage

import "errors"

// Wage domain errors
var (
	ErrPayrollNotFound      = errors.New("payroll record not found")
	ErrPayrollAlreadyExists = errors.New("payroll already generated for this worker and month")
	ErrPayrollNotDraft      = errors.New("payroll is no longer a draft")
	ErrDailyWageNotFound    = errors.New("daily wage record not found")
)
