package attendance

import (
	"testing"
	"time"

	"github.com/factorydesk/workforce-backend-go/internal/domain/attendance"
	"github.com/factorydesk/workforce-backend-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 7, 14, hour, minute, 0, 0, time.UTC)
}

func punch(ts time.Time, typ attendance.PunchType) attendance.Punch {
	return attendance.Punch{Timestamp: ts, Type: typ, Device: "KIOSK_1"}
}

func dayShift() shift.ShiftConfig {
	return shift.ShiftConfig{
		Name:            "General",
		StartTime:       "09:00",
		EndTime:         "18:00",
		GracePeriodMins: 15,
		MaxGraceAllowed: 3,
		MinOvertimeMins: 30,
	}
}

func TestCalculateHours_AlternatingPairs(t *testing.T) {
	timeline := []attendance.Punch{
		punch(at(9, 0), attendance.PunchIn),
		punch(at(13, 0), attendance.PunchOut),
		punch(at(14, 0), attendance.PunchIn),
		punch(at(18, 0), attendance.PunchOut),
	}

	got := CalculateHours(timeline, at(23, 0))
	assert.InDelta(t, 8.0, got, 1e-9)
}

func TestCalculateHours_OrderIndependent(t *testing.T) {
	ordered := []attendance.Punch{
		punch(at(9, 0), attendance.PunchIn),
		punch(at(13, 0), attendance.PunchOut),
		punch(at(14, 0), attendance.PunchIn),
		punch(at(18, 0), attendance.PunchOut),
	}
	shuffled := []attendance.Punch{ordered[3], ordered[1], ordered[2], ordered[0]}

	assert.Equal(t, CalculateHours(ordered, at(23, 0)), CalculateHours(shuffled, at(23, 0)))
}

func TestCalculateHours_DuplicateInIgnored(t *testing.T) {
	timeline := []attendance.Punch{
		punch(at(9, 0), attendance.PunchIn),
		punch(at(9, 1), attendance.PunchIn), // kiosk double-tap
		punch(at(17, 0), attendance.PunchOut),
	}

	got := CalculateHours(timeline, at(23, 0))
	assert.InDelta(t, 8.0, got, 1e-9)
}

func TestCalculateHours_OrphanOutIgnored(t *testing.T) {
	timeline := []attendance.Punch{
		punch(at(8, 0), attendance.PunchOut),
		punch(at(9, 0), attendance.PunchIn),
		punch(at(17, 0), attendance.PunchOut),
	}

	got := CalculateHours(timeline, at(23, 0))
	assert.InDelta(t, 8.0, got, 1e-9)
}

func TestCalculateHours_OpenInAccruesToNow(t *testing.T) {
	timeline := []attendance.Punch{
		punch(at(9, 0), attendance.PunchIn),
	}

	assert.InDelta(t, 3.0, CalculateHours(timeline, at(12, 0)), 1e-9)
	assert.InDelta(t, 5.5, CalculateHours(timeline, at(14, 30)), 1e-9)
}

func TestCalculateHours_Monotonic(t *testing.T) {
	timeline := []attendance.Punch{
		punch(at(9, 0), attendance.PunchIn),
		punch(at(12, 0), attendance.PunchOut),
		punch(at(13, 0), attendance.PunchIn),
	}

	earlier := CalculateHours(timeline, at(15, 0))
	later := CalculateHours(timeline, at(16, 0))
	assert.GreaterOrEqual(t, later, earlier)
}

func TestCalculateHours_Empty(t *testing.T) {
	assert.Zero(t, CalculateHours(nil, at(12, 0)))
}

func TestProcessDailyStatus_NoPunchesIsAbsent(t *testing.T) {
	record := attendance.AttendanceRecord{
		Status: attendance.StatusHalfDay, // stale values from an earlier edit
		Late:   attendance.LateStatus{IsLate: true, LateByMins: 20},
		Hours:  attendance.Hours{Gross: 5, Net: 5},
	}

	got := ProcessDailyStatus(record, dayShift(), 0, at(23, 0))

	assert.Equal(t, attendance.StatusAbsent, got.Status)
	assert.Equal(t, attendance.LateStatus{}, got.Late)
	assert.Equal(t, attendance.Hours{}, got.Hours)
}

func TestProcessDailyStatus_OutOnlyIsAbsent(t *testing.T) {
	record := attendance.AttendanceRecord{
		Timeline: []attendance.Punch{punch(at(17, 0), attendance.PunchOut)},
	}

	got := ProcessDailyStatus(record, dayShift(), 0, at(23, 0))
	assert.Equal(t, attendance.StatusAbsent, got.Status)
}

func TestProcessDailyStatus_FullDayWithinGrace(t *testing.T) {
	record := attendance.AttendanceRecord{
		Timeline: []attendance.Punch{
			punch(at(9, 5), attendance.PunchIn),
			punch(at(18, 10), attendance.PunchOut),
		},
	}

	got := ProcessDailyStatus(record, dayShift(), 0, at(23, 0))

	assert.Equal(t, attendance.StatusPresent, got.Status)
	assert.False(t, got.Late.IsLate)
	assert.Equal(t, 5, got.Late.LateByMins)
	assert.False(t, got.Late.PenaltyApplied)
	assert.InDelta(t, 9.08, got.Hours.Net, 0.01)
	// 5 extra minutes is under the 30-minute overtime threshold
	assert.Zero(t, got.Hours.Overtime)
}

func TestProcessDailyStatus_LateWithoutPenalty(t *testing.T) {
	record := attendance.AttendanceRecord{
		Timeline: []attendance.Punch{
			punch(at(9, 45), attendance.PunchIn),
			punch(at(18, 0), attendance.PunchOut),
		},
	}

	got := ProcessDailyStatus(record, dayShift(), 2, at(23, 0))

	assert.Equal(t, attendance.StatusPresent, got.Status)
	assert.True(t, got.Late.IsLate)
	assert.Equal(t, 45, got.Late.LateByMins)
	assert.False(t, got.Late.PenaltyApplied)
}

func TestProcessDailyStatus_LatePenaltyDowngrade(t *testing.T) {
	record := attendance.AttendanceRecord{
		Timeline: []attendance.Punch{
			punch(at(9, 45), attendance.PunchIn),
			punch(at(18, 0), attendance.PunchOut),
		},
	}

	got := ProcessDailyStatus(record, dayShift(), 3, at(23, 0))

	assert.Equal(t, attendance.StatusHalfDay, got.Status)
	assert.True(t, got.Late.IsLate)
	assert.True(t, got.Late.PenaltyApplied)
}

func TestProcessDailyStatus_PenaltyNeverLiftsHalfDay(t *testing.T) {
	// 5 worked hours is HALF_DAY on hours alone; the penalty path must
	// not touch it even with the late cap exhausted
	record := attendance.AttendanceRecord{
		Timeline: []attendance.Punch{
			punch(at(9, 45), attendance.PunchIn),
			punch(at(14, 45), attendance.PunchOut),
		},
	}

	got := ProcessDailyStatus(record, dayShift(), 5, at(23, 0))

	assert.Equal(t, attendance.StatusHalfDay, got.Status)
	assert.False(t, got.Late.PenaltyApplied)
}

func TestProcessDailyStatus_StatusThresholds(t *testing.T) {
	cases := []struct {
		name    string
		outHour int
		outMin  int
		want    attendance.Status
	}{
		{"under four hours", 12, 59, attendance.StatusAbsent},
		{"exactly four hours", 13, 0, attendance.StatusHalfDay},
		{"under six hours", 14, 59, attendance.StatusHalfDay},
		{"exactly six hours", 15, 0, attendance.StatusPresent},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			record := attendance.AttendanceRecord{
				Timeline: []attendance.Punch{
					punch(at(9, 0), attendance.PunchIn),
					punch(at(c.outHour, c.outMin), attendance.PunchOut),
				},
			}
			got := ProcessDailyStatus(record, dayShift(), 0, at(23, 0))
			assert.Equal(t, c.want, got.Status)
		})
	}
}

func TestProcessDailyStatus_OvertimeCreditedInFull(t *testing.T) {
	record := attendance.AttendanceRecord{
		Timeline: []attendance.Punch{
			punch(at(9, 0), attendance.PunchIn),
			punch(at(20, 0), attendance.PunchOut),
		},
	}

	got := ProcessDailyStatus(record, dayShift(), 0, at(23, 0))

	// 11 worked vs a 9-hour shift: the full 2 extra hours count
	assert.InDelta(t, 2.0, got.Hours.Overtime, 0.01)
}

func TestProcessDailyStatus_Idempotent(t *testing.T) {
	record := attendance.AttendanceRecord{
		Timeline: []attendance.Punch{
			punch(at(9, 5), attendance.PunchIn),
			punch(at(18, 10), attendance.PunchOut),
		},
	}

	once := ProcessDailyStatus(record, dayShift(), 1, at(23, 0))
	twice := ProcessDailyStatus(once, dayShift(), 1, at(23, 0))

	assert.Equal(t, once.Status, twice.Status)
	assert.Equal(t, once.Late, twice.Late)
	assert.Equal(t, once.Hours, twice.Hours)
}

func TestProcessDailyStatus_NightShiftDuration(t *testing.T) {
	night := shift.ShiftConfig{
		Name:            "Night",
		StartTime:       "22:00",
		EndTime:         "06:00",
		GracePeriodMins: 15,
		MaxGraceAllowed: 3,
		MinOvertimeMins: 30,
	}

	record := attendance.AttendanceRecord{
		Timeline: []attendance.Punch{
			punch(at(22, 0), attendance.PunchIn),
			punch(at(22, 0).Add(8*time.Hour), attendance.PunchOut),
		},
	}

	got := ProcessDailyStatus(record, night, 0, at(22, 0).Add(10*time.Hour))

	// 22:00-06:00 wraps midnight and reads as 8 hours, so no overtime
	assert.Equal(t, attendance.StatusPresent, got.Status)
	assert.Zero(t, got.Hours.Overtime)
}

func TestProcessDailyStatus_ManualOutBeforeInClamped(t *testing.T) {
	record := attendance.AttendanceRecord{
		Timeline: []attendance.Punch{
			punch(at(9, 0), attendance.PunchIn),
			punch(at(8, 0), attendance.PunchOut), // bad manual edit
			punch(at(10, 0), attendance.PunchIn),
			punch(at(17, 0), attendance.PunchOut),
		},
	}

	got := ProcessDailyStatus(record, dayShift(), 0, at(23, 0))
	assert.GreaterOrEqual(t, got.Hours.Net, 0.0)
}
