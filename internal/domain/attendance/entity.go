package attendance

import (
	"time"
)

type PunchType string

const (
	PunchIn  PunchType = "IN"
	PunchOut PunchType = "OUT"
)

// Punch is one check-in/check-out event recorded by a kiosk or a manual
// admin entry. Immutable once recorded except via regulation.
type Punch struct {
	Timestamp     time.Time `json:"timestamp"`
	Type          PunchType `json:"type"`
	Device        string    `json:"device"`
	Location      *string   `json:"location,omitempty"`
	OutOfGeofence bool      `json:"out_of_geofence,omitempty"`
}

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusHalfDay Status = "HALF_DAY"
	StatusAbsent  Status = "ABSENT"
	StatusOnLeave Status = "ON_LEAVE"
)

type LateStatus struct {
	IsLate         bool `json:"is_late"`
	LateByMins     int  `json:"late_by_mins"`
	PenaltyApplied bool `json:"penalty_applied"`
}

// Hours holds worked time for one day. Net is derived solely from the
// timeline; it is never set independently.
type Hours struct {
	Gross    float64 `json:"gross"`
	Net      float64 `json:"net"`
	Overtime float64 `json:"overtime"`
}

// AttendanceRecord is the per-worker per-day unit. At most one record
// exists per (factory, worker, date).
type AttendanceRecord struct {
	ID        string
	FactoryID string
	WorkerID  string
	Date      time.Time
	Timeline  []Punch
	Status    Status
	Late      LateStatus
	Hours     Hours
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	WorkerName *string
}

// FirstIn returns the earliest IN punch in the timeline, or nil.
func (r *AttendanceRecord) FirstIn() *Punch {
	var first *Punch
	for i := range r.Timeline {
		p := &r.Timeline[i]
		if p.Type != PunchIn {
			continue
		}
		if first == nil || p.Timestamp.Before(first.Timestamp) {
			first = p
		}
	}
	return first
}

// LastOut returns the latest OUT punch in the timeline, or nil.
func (r *AttendanceRecord) LastOut() *Punch {
	var last *Punch
	for i := range r.Timeline {
		p := &r.Timeline[i]
		if p.Type != PunchOut {
			continue
		}
		if last == nil || p.Timestamp.After(last.Timestamp) {
			last = p
		}
	}
	return last
}
