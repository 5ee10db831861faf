package shift

import (
	"github.com/factorydesk/workforce-backend-go/internal/pkg/validator"
)

type CreateShiftRequest struct {
	Name              string `json:"name"`
	StartTime         string `json:"start_time"` // HH:MM
	EndTime           string `json:"end_time"`   // HH:MM
	GracePeriodMins   int    `json:"grace_period_mins"`
	MaxGraceAllowed   int    `json:"max_grace_allowed"`
	BreakDurationMins int    `json:"break_duration_mins"`
	MinOvertimeMins   int    `json:"min_overtime_mins"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !validator.IsValidTimeOfDay(r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}

	if !validator.IsValidTimeOfDay(r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}

	if r.GracePeriodMins < 0 || r.MaxGraceAllowed < 0 || r.BreakDurationMins < 0 || r.MinOvertimeMins < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "minutes",
			Message: "minute fields must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateShiftRequest struct {
	ID                string  `json:"-"`
	Name              *string `json:"name,omitempty"`
	StartTime         *string `json:"start_time,omitempty"`
	EndTime           *string `json:"end_time,omitempty"`
	GracePeriodMins   *int    `json:"grace_period_mins,omitempty"`
	MaxGraceAllowed   *int    `json:"max_grace_allowed,omitempty"`
	BreakDurationMins *int    `json:"break_duration_mins,omitempty"`
	MinOvertimeMins   *int    `json:"min_overtime_mins,omitempty"`
}

func (r *UpdateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.StartTime != nil && !validator.IsValidTimeOfDay(*r.StartTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be in HH:MM format",
		})
	}

	if r.EndTime != nil && !validator.IsValidTimeOfDay(*r.EndTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be in HH:MM format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ShiftResponse struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	StartTime         string  `json:"start_time"`
	EndTime           string  `json:"end_time"`
	GracePeriodMins   int     `json:"grace_period_mins"`
	MaxGraceAllowed   int     `json:"max_grace_allowed"`
	BreakDurationMins int     `json:"break_duration_mins"`
	MinOvertimeMins   int     `json:"min_overtime_mins"`
	DurationHours     float64 `json:"duration_hours"`
}
