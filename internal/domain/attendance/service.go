package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// RecordPunch appends a punch to the worker's record for the punch day
	// and re-resolves status and hours.
	RecordPunch(ctx context.Context, req PunchRequest) (AttendanceResponse, error)

	// GetAttendance retrieves a single record by ID
	GetAttendance(ctx context.Context, id string) (AttendanceResponse, error)

	// ListAttendance retrieves records with filters (admin)
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	// RegulatePunch replaces a missed or wrong punch and re-resolves the record
	RegulatePunch(ctx context.Context, req RegulateRequest) (AttendanceResponse, error)

	// MarkOnLeave overrides a record to ON_LEAVE; the resolver never runs over it
	MarkOnLeave(ctx context.Context, id string) (AttendanceResponse, error)
}
