package advance

import (
	"github.com/factorydesk/workforce-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateAdvanceRequest struct {
	WorkerID string          `json:"worker_id"`
	Amount   decimal.Decimal `json:"amount"`
	Date     string          `json:"date"` // YYYY-MM-DD
	Reason   string          `json:"reason"`
}

func (r *CreateAdvanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "worker_id is required",
		})
	}

	if r.Amount.IsNegative() || r.Amount.IsZero() {
		errs = append(errs, validator.ValidationError{
			Field:   "amount",
			Message: "amount must be greater than zero",
		})
	}

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AdvanceResponse struct {
	ID         string          `json:"id"`
	WorkerID   string          `json:"worker_id"`
	WorkerName string          `json:"worker_name,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Date       string          `json:"date"`
	Reason     string          `json:"reason"`
	Status     string          `json:"status"`
	CreatedAt  string          `json:"created_at"`
}

type AdvanceFilter struct {
	WorkerID *string `json:"worker_id,omitempty"`
	Month    *string `json:"month,omitempty"` // YYYY-MM
	Status   *string `json:"status,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *AdvanceFilter) Validate() error {
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
			string(StatusPending), string(StatusApproved), string(StatusRepaid),
		}
		if !validator.IsInSlice(*f.Status, validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: PENDING, APPROVED, REPAID",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListAdvanceResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Advances   []AdvanceResponse `json:"advances"`
}
