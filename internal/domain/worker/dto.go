package worker

import (
	"strings"

	"github.com/factorydesk/workforce-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type WageConfigRequest struct {
	Type                string           `json:"type"` // DAILY or MONTHLY
	Amount              decimal.Decimal  `json:"amount"`
	OvertimeEligible    bool             `json:"overtime_eligible"`
	OvertimeRatePerHour *decimal.Decimal `json:"overtime_rate_per_hour,omitempty"`
	OvertimeLimitHours  *float64         `json:"overtime_limit_hours,omitempty"`
	WorkingDaysPerMonth *int             `json:"working_days_per_month,omitempty"`
	TravelAllowance     decimal.Decimal  `json:"travel_allowance"`
	FoodAllowance       decimal.Decimal  `json:"food_allowance"`
	NightShiftAllowance decimal.Decimal  `json:"night_shift_allowance"`
}

func (r *WageConfigRequest) validate(errs validator.ValidationErrors) validator.ValidationErrors {
	wageType := strings.ToUpper(r.Type)
	if wageType != string(WageTypeDaily) && wageType != string(WageTypeMonthly) {
		errs = append(errs, validator.ValidationError{
			Field:   "wage.type",
			Message: "wage type must be DAILY or MONTHLY",
		})
	}

	if r.Amount.IsNegative() || r.Amount.IsZero() {
		errs = append(errs, validator.ValidationError{
			Field:   "wage.amount",
			Message: "wage amount must be greater than zero",
		})
	}

	if r.OvertimeRatePerHour != nil && r.OvertimeRatePerHour.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "wage.overtime_rate_per_hour",
			Message: "overtime rate must not be negative",
		})
	}

	if r.WorkingDaysPerMonth != nil && (*r.WorkingDaysPerMonth < 1 || *r.WorkingDaysPerMonth > 31) {
		errs = append(errs, validator.ValidationError{
			Field:   "wage.working_days_per_month",
			Message: "working_days_per_month must be between 1 and 31",
		})
	}

	return errs
}

// ToConfig converts the request into a WageConfig, applying defaults.
func (r *WageConfigRequest) ToConfig() WageConfig {
	cfg := WageConfig{
		Type:                WageType(strings.ToUpper(r.Type)),
		Amount:              r.Amount,
		OvertimeEligible:    r.OvertimeEligible,
		OvertimeRatePerHour: r.OvertimeRatePerHour,
		OvertimeLimitHours:  DefaultOvertimeLimitHours,
		WorkingDaysPerMonth: DefaultWorkingDaysPerMonth,
		Allowances: Allowances{
			Travel:     r.TravelAllowance,
			Food:       r.FoodAllowance,
			NightShift: r.NightShiftAllowance,
		},
	}
	if r.OvertimeLimitHours != nil && *r.OvertimeLimitHours > 0 {
		cfg.OvertimeLimitHours = *r.OvertimeLimitHours
	}
	if r.WorkingDaysPerMonth != nil && *r.WorkingDaysPerMonth > 0 {
		cfg.WorkingDaysPerMonth = *r.WorkingDaysPerMonth
	}
	return cfg
}

type CreateWorkerRequest struct {
	FullName    string            `json:"full_name"`
	PhoneNumber *string           `json:"phone_number,omitempty"`
	PhotoURL    *string           `json:"photo_url,omitempty"`
	ShiftID     string            `json:"shift_id"`
	Wage        WageConfigRequest `json:"wage"`
}

func (r *CreateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id is required",
		})
	}

	errs = r.Wage.validate(errs)

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateWorkerRequest struct {
	ID          string             `json:"-"`
	FullName    *string            `json:"full_name,omitempty"`
	PhoneNumber *string            `json:"phone_number,omitempty"`
	PhotoURL    *string            `json:"photo_url,omitempty"`
	ShiftID     *string            `json:"shift_id,omitempty"`
	Active      *bool              `json:"active,omitempty"`
	Wage        *WageConfigRequest `json:"wage,omitempty"`
}

func (r *UpdateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not be empty",
		})
	}

	if r.Wage != nil {
		errs = r.Wage.validate(errs)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WorkerResponse struct {
	ID          string     `json:"id"`
	FullName    string     `json:"full_name"`
	PhoneNumber *string    `json:"phone_number,omitempty"`
	PhotoURL    *string    `json:"photo_url,omitempty"`
	ShiftID     string     `json:"shift_id"`
	Wage        WageConfig `json:"wage"`
	Active      bool       `json:"active"`
	CreatedAt   string     `json:"created_at"`
	UpdatedAt   string     `json:"updated_at"`
}

type WorkerFilter struct {
	Search  *string `json:"search,omitempty"`
	ShiftID *string `json:"shift_id,omitempty"`
	Active  *bool   `json:"active,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *WorkerFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListWorkerResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Workers    []WorkerResponse `json:"workers"`
}
