package wage

import (
	"strings"

	"github.com/factorydesk/workforce-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GeneratePayrollRequest struct {
	Month          string          `json:"month"` // YYYY-MM
	WorkerIDs      []string        `json:"worker_ids,omitempty"`
	FlatDeductions []FlatDeduction `json:"flat_deductions,omitempty"`
}

func (r *GeneratePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, valid := validator.IsValidMonth(r.Month); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be in YYYY-MM format",
		})
	}

	for _, d := range r.FlatDeductions {
		if validator.IsEmpty(d.Description) || d.Amount.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   "flat_deductions",
				Message: "each flat deduction needs a description and a non-negative amount",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type FinalizePayrollRequest struct {
	PayrollIDs []string `json:"payroll_ids"`
	Status     string   `json:"status"` // LOCKED or PAID
}

func (r *FinalizePayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.PayrollIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "payroll_ids",
			Message: "payroll_ids is required",
		})
	}

	status := strings.ToUpper(r.Status)
	if status != string(PayrollStatusLocked) && status != string(PayrollStatusPaid) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be LOCKED or PAID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DailyWageResponse struct {
	ID                      string          `json:"id"`
	WorkerID                string          `json:"worker_id"`
	Date                    string          `json:"date"`
	BaseWage                decimal.Decimal `json:"base_wage"`
	OvertimeWage            decimal.Decimal `json:"overtime_wage"`
	Allowances              decimal.Decimal `json:"allowances"`
	Total                   decimal.Decimal `json:"total"`
	RateUsed                decimal.Decimal `json:"rate_used"`
	HoursWorked             float64         `json:"hours_worked"`
	OvertimeHours           float64         `json:"overtime_hours"`
	IsOvertimeLimitExceeded bool            `json:"is_overtime_limit_exceeded"`
}

type PayrollResponse struct {
	ID         string            `json:"id"`
	WorkerID   string            `json:"worker_id"`
	WorkerName string            `json:"worker_name,omitempty"`
	Month      string            `json:"month"`
	Summary    AttendanceSummary `json:"attendance_summary"`
	Earnings   Earnings          `json:"earnings"`
	Deductions Deductions        `json:"deductions"`
	NetPayable decimal.Decimal   `json:"net_payable"`
	Status     string            `json:"status"`
	PaidAt     *string           `json:"paid_at,omitempty"`
}

type PayrollFilter struct {
	Month    *string `json:"month,omitempty"` // YYYY-MM
	WorkerID *string `json:"worker_id,omitempty"`
	Status   *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *PayrollFilter) Validate() error {
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

	if f.Month != nil && *f.Month != "" {
		if _, valid := validator.IsValidMonth(*f.Month); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "month",
				Message: "month must be in YYYY-MM format",
			})
		}
	}

	if f.Status != nil {
		validStatuses := []string{
			string(PayrollStatusDraft), string(PayrollStatusLocked), string(PayrollStatusPaid),
		}
		if !validator.IsInSlice(strings.ToUpper(*f.Status), validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: DRAFT, LOCKED, PAID",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListPayrollResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Payrolls   []PayrollResponse `json:"payrolls"`
}
