package shift

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDurationHours(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		want  float64
	}{
		{"standard day shift", "09:00", "18:00", 9},
		{"half hour boundaries", "08:30", "17:15", 8.75},
		{"night shift wraps midnight", "22:00", "06:00", 8},
		{"ends exactly at midnight", "16:00", "00:00", 8},
		{"equal start and end reads as full day", "09:00", "09:00", 24},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := ShiftConfig{StartTime: c.start, EndTime: c.end}
			assert.InDelta(t, c.want, s.DurationHours(), 1e-9)
		})
	}
}

func TestStartOnDay(t *testing.T) {
	s := ShiftConfig{StartTime: "09:00", EndTime: "18:00"}

	ref := time.Date(2025, 7, 14, 14, 37, 12, 0, time.UTC)
	got := s.StartOnDay(ref)

	assert.Equal(t, time.Date(2025, 7, 14, 9, 0, 0, 0, time.UTC), got)
}

func TestGraceDefaults(t *testing.T) {
	var s ShiftConfig
	assert.Equal(t, DefaultGracePeriodMins, s.GraceOrDefault())
	assert.Equal(t, DefaultMaxGraceAllowed, s.MaxGraceOrDefault())

	s.GracePeriodMins = 10
	s.MaxGraceAllowed = 5
	assert.Equal(t, 10, s.GraceOrDefault())
	assert.Equal(t, 5, s.MaxGraceOrDefault())
}
