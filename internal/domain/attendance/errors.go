package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrWorkerNotFound     = errors.New("worker not found for punch")
	ErrNoShiftAssigned    = errors.New("worker has no shift assigned")
	ErrOnLeave            = errors.New("record is marked on leave and cannot be recomputed")
	ErrNoPunchToRegulate  = errors.New("no punch of the requested type exists to regulate")
)
