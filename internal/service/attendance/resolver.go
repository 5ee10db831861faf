package attendance

import (
	"math"
	"sort"
	"time"

	"github.com/factorydesk/workforce-backend-go/internal/domain/attendance"
	"github.com/factorydesk/workforce-backend-go/internal/domain/shift"
)

// Status thresholds in net worked hours. Fixed, not configurable.
const (
	halfDayThresholdHours = 4.0
	presentThresholdHours = 6.0
)

// CalculateHours sums the actual IN→OUT segments of one day's timeline.
// Punches are sorted internally, so input order does not matter. A
// duplicate IN while one is already open is ignored (kiosk double-tap),
// an OUT with no open IN contributes nothing, and an IN still open at
// the end accrues up to now, so hours for an in-progress day grow live.
// Time between an OUT and the next IN is never counted.
func CalculateHours(timeline []attendance.Punch, now time.Time) float64 {
	punches := make([]attendance.Punch, len(timeline))
	copy(punches, timeline)
	sort.SliceStable(punches, func(i, j int) bool {
		return punches[i].Timestamp.Before(punches[j].Timestamp)
	})

	var total time.Duration
	var openIn *time.Time

	for i := range punches {
		p := punches[i]
		switch p.Type {
		case attendance.PunchIn:
			if openIn == nil {
				t := p.Timestamp
				openIn = &t
			}
		case attendance.PunchOut:
			if openIn != nil {
				// clamp per segment: an OUT placed before its IN by a
				// manual edit must not reduce the total
				if seg := p.Timestamp.Sub(*openIn); seg > 0 {
					total += seg
				}
				openIn = nil
			}
		}
	}

	if openIn != nil {
		if seg := now.Sub(*openIn); seg > 0 {
			total += seg
		}
	}

	return total.Hours()
}

// ProcessDailyStatus resolves one day's record against its shift: net
// worked hours, lateness against the grace period, a categorical
// status, and overtime past the nominal shift duration. It is pure
// given its inputs; now is only consulted for a still-open IN.
//
// lateCountThisMonth is the number of days already flagged late for
// this worker this month, excluding the record being processed. Once it
// reaches the shift's monthly cap, a late day that earned PRESENT on
// hours alone is downgraded to HALF_DAY with the penalty flag set.
//
// ON_LEAVE is never produced here; it is an administrative override and
// callers must not re-run the resolver over an ON_LEAVE day.
func ProcessDailyStatus(record attendance.AttendanceRecord, cfg shift.ShiftConfig, lateCountThisMonth int, now time.Time) attendance.AttendanceRecord {
	firstIn := record.FirstIn()
	if firstIn == nil {
		// no attendance at all: full reset, not a merge
		record.Status = attendance.StatusAbsent
		record.Late = attendance.LateStatus{}
		record.Hours = attendance.Hours{}
		return record
	}

	shiftStart := cfg.StartOnDay(firstIn.Timestamp)
	lateBy := int(math.Floor(firstIn.Timestamp.Sub(shiftStart).Minutes()))
	if lateBy < 0 {
		lateBy = 0
	}
	isLate := lateBy > cfg.GraceOrDefault()

	netHours := CalculateHours(record.Timeline, now)

	var status attendance.Status
	switch {
	case netHours < halfDayThresholdHours:
		status = attendance.StatusAbsent
	case netHours < presentThresholdHours:
		status = attendance.StatusHalfDay
	default:
		status = attendance.StatusPresent
	}

	penalty := false
	if status == attendance.StatusPresent && isLate && lateCountThisMonth >= cfg.MaxGraceOrDefault() {
		status = attendance.StatusHalfDay
		penalty = true
	}

	overtime := 0.0
	if extra := netHours - cfg.DurationHours(); extra > 0 {
		// credited in full once past the minimum threshold, no clipping
		if extra >= float64(cfg.MinOvertimeMins)/60.0 {
			overtime = extra
		}
	}

	record.Status = status
	record.Late = attendance.LateStatus{
		IsLate:         isLate,
		LateByMins:     lateBy,
		PenaltyApplied: penalty,
	}
	record.Hours = attendance.Hours{
		Gross:    netHours,
		Net:      round2(netHours),
		Overtime: round2(overtime),
	}
	return record
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
