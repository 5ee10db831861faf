package shift

import "errors"

// Shift domain errors
var (
	ErrShiftNotFound = errors.New("shift not found")
	ErrShiftInUse    = errors.New("shift is assigned to workers and cannot be deleted")
)
