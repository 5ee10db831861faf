package worker

import (
	"time"

	"github.com/shopspring/decimal"
)

type WageType string

const (
	WageTypeDaily   WageType = "DAILY"
	WageTypeMonthly WageType = "MONTHLY"
)

// DefaultWorkingDaysPerMonth converts a monthly gross into a daily rate.
const DefaultWorkingDaysPerMonth = 26

// DefaultOvertimeLimitHours flags unusually long overtime in wage meta.
const DefaultOvertimeLimitHours = 4.0

// Allowances are flat per-day amounts paid on worked days.
type Allowances struct {
	Travel     decimal.Decimal `json:"travel"`
	Food       decimal.Decimal `json:"food"`
	NightShift decimal.Decimal `json:"night_shift"`
}

// WageConfig is the per-worker pay-rate configuration.
type WageConfig struct {
	Type                WageType         `json:"type"`
	Amount              decimal.Decimal  `json:"amount"` // daily rate or monthly gross
	OvertimeEligible    bool             `json:"overtime_eligible"`
	OvertimeRatePerHour *decimal.Decimal `json:"overtime_rate_per_hour,omitempty"`
	OvertimeLimitHours  float64          `json:"overtime_limit_hours"`
	WorkingDaysPerMonth int              `json:"working_days_per_month"`
	Allowances          Allowances       `json:"allowances"`
}

// DailyRate returns the effective daily rate: the amount itself for
// DAILY workers, amount/workingDaysPerMonth for MONTHLY ones.
func (w *WageConfig) DailyRate() decimal.Decimal {
	if w.Type == WageTypeMonthly {
		days := w.WorkingDaysPerMonth
		if days <= 0 {
			days = DefaultWorkingDaysPerMonth
		}
		return w.Amount.Div(decimal.NewFromInt(int64(days)))
	}
	return w.Amount
}

// OvertimeLimitOrDefault returns the overtime-limit flag threshold in hours.
func (w *WageConfig) OvertimeLimitOrDefault() float64 {
	if w.OvertimeLimitHours <= 0 {
		return DefaultOvertimeLimitHours
	}
	return w.OvertimeLimitHours
}

type Worker struct {
	ID          string
	FactoryID   string
	FullName    string
	PhoneNumber *string
	PhotoURL    *string
	ShiftID     string
	Wage        WageConfig
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}
