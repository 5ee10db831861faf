package response

import (
	"errors"
	"net/http"

	"github.com/factorydesk/workforce-backend-go/internal/domain/advance"
	"github.com/factorydesk/workforce-backend-go/internal/domain/attendance"
	"github.com/factorydesk/workforce-backend-go/internal/domain/auth"
	"github.com/factorydesk/workforce-backend-go/internal/domain/shift"
	"github.com/factorydesk/workforce-backend-go/internal/domain/wage"
	"github.com/factorydesk/workforce-backend-go/internal/domain/worker"
	"github.com/factorydesk/workforce-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, auth.ErrAdminOnly):
		Forbidden(w, "Admin privilege required")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, attendance.ErrNoShiftAssigned):
		BadRequest(w, "Worker has no shift assigned", nil)
	case errors.Is(err, attendance.ErrOnLeave):
		Conflict(w, "Record is marked on leave")
	case errors.Is(err, attendance.ErrNoPunchToRegulate):
		BadRequest(w, "No punch of the requested type exists", nil)

	// Worker domain errors
	case errors.Is(err, worker.ErrWorkerNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, worker.ErrWorkerInactive):
		Conflict(w, "Worker is inactive")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrShiftInUse):
		Conflict(w, "Shift is assigned to workers and cannot be deleted")

	// Wage domain errors
	case errors.Is(err, wage.ErrPayrollNotFound):
		NotFound(w, "Payroll not found")
	case errors.Is(err, wage.ErrPayrollAlreadyExists):
		Conflict(w, "Payroll already generated for this worker and month")
	case errors.Is(err, wage.ErrPayrollNotDraft):
		Conflict(w, "Payroll is no longer a draft")
	case errors.Is(err, wage.ErrDailyWageNotFound):
		NotFound(w, "Daily wage record not found")

	// Advance domain errors
	case errors.Is(err, advance.ErrAdvanceNotFound):
		NotFound(w, "Advance not found")
	case errors.Is(err, advance.ErrAdvanceAlreadyProcessed):
		Conflict(w, "Advance has already been approved or repaid")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
