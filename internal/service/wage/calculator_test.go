package wage

import (
	"testing"
	"time"

	"github.com/factorydesk/workforce-backend-go/internal/domain/advance"
	"github.com/factorydesk/workforce-backend-go/internal/domain/attendance"
	"github.com/factorydesk/workforce-backend-go/internal/domain/wage"
	"github.com/factorydesk/workforce-backend-go/internal/domain/worker"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2025, 7, d, 0, 0, 0, 0, time.UTC)
}

func dailyWorker(rate int64) worker.Worker {
	return worker.Worker{
		ID:        "w1",
		FactoryID: "f1",
		Wage: worker.WageConfig{
			Type:                worker.WageTypeDaily,
			Amount:              decimal.NewFromInt(rate),
			OvertimeEligible:    true,
			WorkingDaysPerMonth: 26,
			Allowances: worker.Allowances{
				Travel:     decimal.NewFromInt(50),
				Food:       decimal.NewFromInt(30),
				NightShift: decimal.NewFromInt(100),
			},
		},
	}
}

func presentRecord(d time.Time, net, overtime float64) attendance.AttendanceRecord {
	return attendance.AttendanceRecord{
		Date:   d,
		Status: attendance.StatusPresent,
		Hours:  attendance.Hours{Gross: net, Net: net, Overtime: overtime},
		Timeline: []attendance.Punch{
			{Timestamp: d.Add(9 * time.Hour), Type: attendance.PunchIn, Device: "KIOSK_1"},
			{Timestamp: d.Add(18 * time.Hour), Type: attendance.PunchOut, Device: "KIOSK_1"},
		},
	}
}

func TestCalculateDailyWage_HalfDay(t *testing.T) {
	w := dailyWorker(600)
	rec := presentRecord(day(14), 5, 0)
	rec.Status = attendance.StatusHalfDay

	got := CalculateDailyWage(w, rec)

	assert.True(t, got.Breakdown.Base.Equal(decimal.NewFromInt(300)), "base = %s", got.Breakdown.Base)
	assert.True(t, got.Breakdown.Overtime.IsZero())
	assert.True(t, got.Breakdown.Allowances.Equal(decimal.NewFromInt(80)), "allowances = %s", got.Breakdown.Allowances)
	assert.True(t, got.Breakdown.Total.Equal(decimal.NewFromInt(380)), "total = %s", got.Breakdown.Total)
}

func TestCalculateDailyWage_AbsentEarnsNothing(t *testing.T) {
	w := dailyWorker(600)
	rec := attendance.AttendanceRecord{Date: day(14), Status: attendance.StatusAbsent}

	got := CalculateDailyWage(w, rec)

	assert.True(t, got.Breakdown.Total.IsZero())
	assert.True(t, got.Breakdown.Allowances.IsZero())
}

func TestCalculateDailyWage_OnLeaveEarnsNothing(t *testing.T) {
	w := dailyWorker(600)
	rec := attendance.AttendanceRecord{Date: day(14), Status: attendance.StatusOnLeave}

	got := CalculateDailyWage(w, rec)
	assert.True(t, got.Breakdown.Total.IsZero())
}

func TestCalculateDailyWage_MonthlyRate(t *testing.T) {
	w := dailyWorker(0)
	w.Wage.Type = worker.WageTypeMonthly
	w.Wage.Amount = decimal.NewFromInt(26000)

	got := CalculateDailyWage(w, presentRecord(day(14), 9, 0))

	assert.True(t, got.Breakdown.Base.Equal(decimal.NewFromInt(1000)), "base = %s", got.Breakdown.Base)
	assert.True(t, got.Meta.RateUsed.Equal(decimal.NewFromInt(1000)))
}

func TestCalculateDailyWage_OvertimeDoubleRate(t *testing.T) {
	w := dailyWorker(600)

	got := CalculateDailyWage(w, presentRecord(day(14), 11, 2))

	// 600/8*2 = 150 per hour, 2 hours
	assert.True(t, got.Breakdown.Overtime.Equal(decimal.NewFromInt(300)), "overtime = %s", got.Breakdown.Overtime)
}

func TestCalculateDailyWage_OvertimeOverrideWins(t *testing.T) {
	w := dailyWorker(600)
	override := decimal.NewFromInt(200)
	w.Wage.OvertimeRatePerHour = &override

	got := CalculateDailyWage(w, presentRecord(day(14), 11, 2))

	assert.True(t, got.Breakdown.Overtime.Equal(decimal.NewFromInt(400)), "overtime = %s", got.Breakdown.Overtime)
}

func TestCalculateDailyWage_NotEligibleNoOvertime(t *testing.T) {
	w := dailyWorker(600)
	w.Wage.OvertimeEligible = false

	got := CalculateDailyWage(w, presentRecord(day(14), 11, 2))
	assert.True(t, got.Breakdown.Overtime.IsZero())
}

func TestCalculateDailyWage_NightShiftAllowance(t *testing.T) {
	w := dailyWorker(600)

	rec := presentRecord(day(14), 8, 0)
	rec.Timeline[1].Timestamp = day(14).Add(22*time.Hour + 30*time.Minute)

	got := CalculateDailyWage(w, rec)
	// 50 + 30 + 100
	assert.True(t, got.Breakdown.Allowances.Equal(decimal.NewFromInt(180)), "allowances = %s", got.Breakdown.Allowances)

	rec.Timeline[1].Timestamp = day(14).Add(21*time.Hour + 59*time.Minute)
	got = CalculateDailyWage(w, rec)
	assert.True(t, got.Breakdown.Allowances.Equal(decimal.NewFromInt(80)), "allowances = %s", got.Breakdown.Allowances)
}

func TestCalculateDailyWage_OvertimeLimitFlag(t *testing.T) {
	w := dailyWorker(600)

	got := CalculateDailyWage(w, presentRecord(day(14), 14, 5))
	assert.True(t, got.Meta.IsOvertimeLimitExceeded)

	got = CalculateDailyWage(w, presentRecord(day(14), 12, 3))
	assert.False(t, got.Meta.IsOvertimeLimitExceeded)
}

func TestBuildMonthlyPayroll_Aggregates(t *testing.T) {
	w := dailyWorker(600)

	var dailyWages []wage.DailyWageRecord
	for d := 1; d <= 3; d++ {
		dailyWages = append(dailyWages, CalculateDailyWage(w, presentRecord(day(d), 9, 0)))
	}

	got := BuildMonthlyPayroll(w, "2025-07", dailyWages, nil, nil)

	assert.Equal(t, 3, got.Summary.WorkedDays)
	assert.InDelta(t, 27.0, got.Summary.TotalHours, 1e-9)
	assert.True(t, got.Earnings.Basic.Equal(decimal.NewFromInt(1800)), "basic = %s", got.Earnings.Basic)
	assert.True(t, got.Earnings.Allowances.Equal(decimal.NewFromInt(240)))
	assert.True(t, got.Earnings.Gross.Equal(decimal.NewFromInt(2040)))
	assert.True(t, got.NetPayable.Equal(decimal.NewFromInt(2040)))
	assert.Equal(t, wage.PayrollStatusDraft, got.Status)
}

func TestBuildMonthlyPayroll_AdvanceDeductionItemized(t *testing.T) {
	w := dailyWorker(600)
	dailyWages := []wage.DailyWageRecord{CalculateDailyWage(w, presentRecord(day(14), 9, 0))}

	advances := []advance.Advance{
		{
			WorkerID: "w1",
			Amount:   decimal.NewFromInt(2000),
			Date:     day(10),
			Reason:   "medical",
			Status:   advance.StatusApproved,
		},
		{
			// still pending, must not be deducted
			WorkerID: "w1",
			Amount:   decimal.NewFromInt(500),
			Date:     day(12),
			Reason:   "festival",
			Status:   advance.StatusPending,
		},
	}

	got := BuildMonthlyPayroll(w, "2025-07", dailyWages, advances, nil)

	assert.True(t, got.Deductions.Advances.Equal(decimal.NewFromInt(2000)), "advances = %s", got.Deductions.Advances)
	require.Len(t, got.Deductions.Details, 1)
	assert.Equal(t, "Advance (2025-07-10): medical", got.Deductions.Details[0].Description)

	// 680 gross - 2000 advance goes negative and stays negative
	assert.True(t, got.NetPayable.IsNegative(), "net = %s", got.NetPayable)
	assert.True(t, got.NetPayable.Equal(decimal.NewFromInt(-1320)), "net = %s", got.NetPayable)
}

func TestBuildMonthlyPayroll_FlatDeductions(t *testing.T) {
	w := dailyWorker(600)
	dailyWages := []wage.DailyWageRecord{CalculateDailyWage(w, presentRecord(day(14), 9, 0))}

	flat := []wage.FlatDeduction{
		{Description: "Canteen", Amount: decimal.NewFromInt(150)},
		{Description: "Processing fee", Amount: decimal.NewFromInt(20)},
	}

	got := BuildMonthlyPayroll(w, "2025-07", dailyWages, nil, flat)

	assert.True(t, got.Deductions.Flat.Equal(decimal.NewFromInt(170)))
	assert.True(t, got.Deductions.Total.Equal(decimal.NewFromInt(170)))
	require.Len(t, got.Deductions.Details, 2)
	assert.True(t, got.NetPayable.Equal(decimal.NewFromInt(510)), "net = %s", got.NetPayable)
}

func TestBuildMonthlyPayroll_FiltersOtherMonths(t *testing.T) {
	w := dailyWorker(600)

	june := CalculateDailyWage(w, presentRecord(time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), 9, 0))
	july := CalculateDailyWage(w, presentRecord(day(1), 9, 0))

	advances := []advance.Advance{
		{
			Amount: decimal.NewFromInt(100),
			Date:   time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			Reason: "old",
			Status: advance.StatusApproved,
		},
	}

	got := BuildMonthlyPayroll(w, "2025-07", []wage.DailyWageRecord{june, july}, advances, nil)

	assert.Equal(t, 1, got.Summary.WorkedDays)
	assert.True(t, got.Earnings.Basic.Equal(decimal.NewFromInt(600)))
	assert.True(t, got.Deductions.Total.IsZero())
}

func TestBuildMonthlyPayroll_HalfDaysCountAsWorked(t *testing.T) {
	w := dailyWorker(600)

	half := presentRecord(day(2), 5, 0)
	half.Status = attendance.StatusHalfDay
	absent := attendance.AttendanceRecord{Date: day(3), Status: attendance.StatusAbsent}

	dailyWages := []wage.DailyWageRecord{
		CalculateDailyWage(w, presentRecord(day(1), 9, 0)),
		CalculateDailyWage(w, half),
		CalculateDailyWage(w, absent),
	}

	got := BuildMonthlyPayroll(w, "2025-07", dailyWages, nil, nil)

	// absent days pay nothing so only two days count
	assert.Equal(t, 2, got.Summary.WorkedDays)
	assert.True(t, got.Earnings.Basic.Equal(decimal.NewFromInt(900)))
}
