package attendance

import (
	"strings"

	"github.com/factorydesk/workforce-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type PunchRequest struct {
	WorkerID  string  `json:"worker_id"`
	Type      string  `json:"type"` // IN or OUT
	Device    string  `json:"device"`
	Location  *string `json:"location,omitempty"`
	Timestamp *string `json:"timestamp,omitempty"` // RFC3339; defaults to now
}

func (r *PunchRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_id",
			Message: "worker_id is required",
		})
	}

	punchType := strings.ToUpper(r.Type)
	if punchType != string(PunchIn) && punchType != string(PunchOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be IN or OUT",
		})
	}

	if validator.IsEmpty(r.Device) {
		errs = append(errs, validator.ValidationError{
			Field:   "device",
			Message: "device is required",
		})
	}

	if r.Timestamp != nil && *r.Timestamp != "" {
		if _, valid := validator.IsValidDateTime(*r.Timestamp); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "timestamp",
				Message: "timestamp must be an RFC3339 datetime",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// RegulateRequest replaces one punch in the timeline: the first IN for an
// IN-edit, the last OUT for an OUT-edit. The record is re-resolved after.
type RegulateRequest struct {
	ID        string `json:"-"`
	Type      string `json:"type"`      // IN or OUT
	Timestamp string `json:"timestamp"` // RFC3339
}

func (r *RegulateRequest) Validate() error {
	var errs validator.ValidationErrors

	punchType := strings.ToUpper(r.Type)
	if punchType != string(PunchIn) && punchType != string(PunchOut) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be IN or OUT",
		})
	}

	if _, valid := validator.IsValidDateTime(r.Timestamp); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "timestamp",
			Message: "timestamp must be an RFC3339 datetime",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type PunchResponse struct {
	Timestamp     string  `json:"timestamp"`
	Type          string  `json:"type"`
	Device        string  `json:"device"`
	Location      *string `json:"location,omitempty"`
	OutOfGeofence bool    `json:"out_of_geofence,omitempty"`
}

type AttendanceResponse struct {
	ID             string          `json:"id"`
	WorkerID       string          `json:"worker_id"`
	WorkerName     string          `json:"worker_name,omitempty"`
	Date           string          `json:"date"`
	Timeline       []PunchResponse `json:"timeline"`
	Status         string          `json:"status"`
	IsLate         bool            `json:"is_late"`
	LateByMins     int             `json:"late_by_mins"`
	PenaltyApplied bool            `json:"penalty_applied"`
	GrossHours     float64         `json:"gross_hours"`
	NetHours       float64         `json:"net_hours"`
	OvertimeHours  float64         `json:"overtime_hours"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at"`
}

type AttendanceFilter struct {
	WorkerID  *string `json:"worker_id,omitempty"`
	Date      *string `json:"date,omitempty"`       // YYYY-MM-DD
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status    *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // date, worker_name, status
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	if f.Status != nil {
		validStatuses := []string{
			string(StatusPresent), string(StatusHalfDay),
			string(StatusAbsent), string(StatusOnLeave),
		}
		if !validator.IsInSlice(strings.ToUpper(*f.Status), validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: PRESENT, HALF_DAY, ABSENT, ON_LEAVE",
			})
		}
	}

	if f.Date != nil && *f.Date != "" {
		if _, valid := validator.IsValidDate(*f.Date); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if f.SortBy != "" {
		validSortFields := []string{"date", "worker_name", "status"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: date, worker_name, status",
			})
		}
	} else {
		f.SortBy = "date" // Default sort
	}

	if f.SortOrder != "" {
		validSortOrders := []string{"asc", "desc"}
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), validSortOrders) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc" // Default descending (newest first)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListAttendanceResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	TotalPages  int                  `json:"total_pages"`
	Showing     string               `json:"showing"`
	Attendances []AttendanceResponse `json:"attendances"`
}
