package shift

import (
	"time"
)

// Default fallbacks. Non-zero so grace comparisons and duration math
// never divide by zero or trivially pass.
const (
	DefaultGracePeriodMins = 15
	DefaultMaxGraceAllowed = 3
)

// ShiftConfig is a named work schedule. EndTime may be numerically
// earlier than StartTime: the shift wraps past midnight and its duration
// is computed modulo 24h.
type ShiftConfig struct {
	ID                string
	FactoryID         string
	Name              string
	StartTime         string // HH:MM
	EndTime           string // HH:MM
	GracePeriodMins   int
	MaxGraceAllowed   int
	BreakDurationMins int
	MinOvertimeMins   int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// GraceOrDefault returns the grace period, falling back when unset.
func (s *ShiftConfig) GraceOrDefault() int {
	if s.GracePeriodMins <= 0 {
		return DefaultGracePeriodMins
	}
	return s.GracePeriodMins
}

// MaxGraceOrDefault returns the monthly late-arrival cap, falling back when unset.
func (s *ShiftConfig) MaxGraceOrDefault() int {
	if s.MaxGraceAllowed <= 0 {
		return DefaultMaxGraceAllowed
	}
	return s.MaxGraceAllowed
}

// StartOnDay returns the nominal shift start instant on the same
// calendar day as ref, in ref's location.
func (s *ShiftConfig) StartOnDay(ref time.Time) time.Time {
	h, m := parseHHMM(s.StartTime)
	return time.Date(ref.Year(), ref.Month(), ref.Day(), h, m, 0, 0, ref.Location())
}

// DurationHours returns the nominal shift length in hours, wrapping
// past midnight when the end reads earlier than the start.
func (s *ShiftConfig) DurationHours() float64 {
	sh, sm := parseHHMM(s.StartTime)
	eh, em := parseHHMM(s.EndTime)

	minutes := (eh*60 + em) - (sh*60 + sm)
	if minutes <= 0 {
		minutes += 24 * 60
	}
	return float64(minutes) / 60.0
}

func parseHHMM(hhmm string) (hour, minute int) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, 0
	}
	return t.Hour(), t.Minute()
}
