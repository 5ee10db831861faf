package wage

import (
	"time"

	"github.com/shopspring/decimal"
)

// Breakdown is one day's pay. Each subtotal is rounded to 2 decimals
// independently so displayed figures reproduce exactly.
type Breakdown struct {
	Base       decimal.Decimal `json:"base"`
	Overtime   decimal.Decimal `json:"overtime"`
	Allowances decimal.Decimal `json:"allowances"`
	Total      decimal.Decimal `json:"total"`
}

type Meta struct {
	RateUsed                decimal.Decimal `json:"rate_used"`
	HoursWorked             float64         `json:"hours_worked"`
	OvertimeHours           float64         `json:"overtime_hours"`
	IsOvertimeLimitExceeded bool            `json:"is_overtime_limit_exceeded"`
}

// DailyWageRecord is a projection over AttendanceRecord + WageConfig.
// It is fully recomputable and never hand-edited.
type DailyWageRecord struct {
	ID        string
	FactoryID string
	WorkerID  string
	Date      time.Time
	Breakdown Breakdown
	Meta      Meta
	CreatedAt time.Time
	UpdatedAt time.Time
}

type PayrollStatus string

const (
	PayrollStatusDraft  PayrollStatus = "DRAFT"
	PayrollStatusLocked PayrollStatus = "LOCKED"
	PayrollStatusPaid   PayrollStatus = "PAID"
)

type AttendanceSummary struct {
	WorkedDays         int     `json:"worked_days"` // days with base wage > 0
	TotalHours         float64 `json:"total_hours"`
	TotalOvertimeHours float64 `json:"total_overtime_hours"`
}

type Earnings struct {
	Basic      decimal.Decimal `json:"basic"`
	Overtime   decimal.Decimal `json:"overtime"`
	Allowances decimal.Decimal `json:"allowances"`
	Gross      decimal.Decimal `json:"gross"`
}

type DeductionLine struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

type Deductions struct {
	Advances decimal.Decimal `json:"advances"`
	Flat     decimal.Decimal `json:"flat"`
	Total    decimal.Decimal `json:"total"`
	Details  []DeductionLine `json:"details"`
}

// FlatDeduction is a policy knob: a fixed charge applied to every
// payroll in a run (canteen, processing fee). Configured per run, never
// hardcoded.
type FlatDeduction struct {
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// MonthlyPayroll aggregates one worker's daily wages for one month plus
// that month's approved advances. NetPayable is not clamped; a negative
// value means advances exceeded earnings and callers decide how to
// surface it.
type MonthlyPayroll struct {
	ID         string
	FactoryID  string
	WorkerID   string
	Month      string // YYYY-MM
	Summary    AttendanceSummary
	Earnings   Earnings
	Deductions Deductions
	NetPayable decimal.Decimal
	Status     PayrollStatus
	PaidAt     *time.Time
	PaidBy     *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	WorkerName *string
}
