package wage

import (
	"fmt"
	"strings"

	"github.com/factorydesk/workforce-backend-go/internal/domain/advance"
	"github.com/factorydesk/workforce-backend-go/internal/domain/attendance"
	"github.com/factorydesk/workforce-backend-go/internal/domain/wage"
	"github.com/factorydesk/workforce-backend-go/internal/domain/worker"
	"github.com/shopspring/decimal"
)

var (
	half          = decimal.NewFromFloat(0.5)
	hoursPerShift = decimal.NewFromInt(8)
	doubleRate    = decimal.NewFromInt(2)
)

// CalculateDailyWage converts one resolved attendance record plus the
// worker's wage config into a pay breakdown. Every subtotal is rounded
// to 2 decimals independently so displayed figures reproduce exactly.
func CalculateDailyWage(w worker.Worker, rec attendance.AttendanceRecord) wage.DailyWageRecord {
	dailyRate := w.Wage.DailyRate()

	var base decimal.Decimal
	switch rec.Status {
	case attendance.StatusPresent:
		base = dailyRate
	case attendance.StatusHalfDay:
		base = dailyRate.Mul(half)
	default:
		// ABSENT and ON_LEAVE earn nothing
		base = decimal.Zero
	}
	base = base.Round(2)

	overtimePay := decimal.Zero
	if w.Wage.OvertimeEligible && rec.Hours.Overtime > 0 {
		// an explicit per-hour override wins; otherwise overtime pays
		// double the implied hourly rate
		otRate := dailyRate.Div(hoursPerShift).Mul(doubleRate)
		if w.Wage.OvertimeRatePerHour != nil && !w.Wage.OvertimeRatePerHour.IsZero() {
			otRate = *w.Wage.OvertimeRatePerHour
		}
		overtimePay = otRate.Mul(decimal.NewFromFloat(rec.Hours.Overtime)).Round(2)
	}

	allowances := decimal.Zero
	if rec.Status == attendance.StatusPresent || rec.Status == attendance.StatusHalfDay {
		allowances = w.Wage.Allowances.Travel.Add(w.Wage.Allowances.Food)
		if lastOut := rec.LastOut(); lastOut != nil {
			// night-shift allowance only for a late or overnight checkout
			hour := lastOut.Timestamp.Hour()
			if hour >= 22 || hour < 5 {
				allowances = allowances.Add(w.Wage.Allowances.NightShift)
			}
		}
		allowances = allowances.Round(2)
	}

	return wage.DailyWageRecord{
		FactoryID: w.FactoryID,
		WorkerID:  w.ID,
		Date:      rec.Date,
		Breakdown: wage.Breakdown{
			Base:       base,
			Overtime:   overtimePay,
			Allowances: allowances,
			Total:      base.Add(overtimePay).Add(allowances),
		},
		Meta: wage.Meta{
			RateUsed:                dailyRate.Round(2),
			HoursWorked:             rec.Hours.Net,
			OvertimeHours:           rec.Hours.Overtime,
			IsOvertimeLimitExceeded: rec.Hours.Overtime > w.Wage.OvertimeLimitOrDefault(),
		},
	}
}

// BuildMonthlyPayroll folds one worker's daily wages for month
// (YYYY-MM) plus that month's approved advances and any configured flat
// deductions into a DRAFT payroll. NetPayable is not clamped: it goes
// negative when advances exceed earnings and callers decide how to
// surface that.
func BuildMonthlyPayroll(w worker.Worker, month string, dailyWages []wage.DailyWageRecord, advances []advance.Advance, flatDeductions []wage.FlatDeduction) wage.MonthlyPayroll {
	summary := wage.AttendanceSummary{}
	basic := decimal.Zero
	overtime := decimal.Zero
	allowances := decimal.Zero

	for _, dw := range dailyWages {
		if !strings.HasPrefix(dw.Date.Format("2006-01-02"), month) {
			continue
		}
		if dw.Breakdown.Base.IsPositive() {
			summary.WorkedDays++
		}
		summary.TotalHours += dw.Meta.HoursWorked
		summary.TotalOvertimeHours += dw.Meta.OvertimeHours
		basic = basic.Add(dw.Breakdown.Base)
		overtime = overtime.Add(dw.Breakdown.Overtime)
		allowances = allowances.Add(dw.Breakdown.Allowances)
	}

	gross := basic.Add(overtime).Add(allowances)

	deductions := wage.Deductions{
		Advances: decimal.Zero,
		Flat:     decimal.Zero,
	}
	for _, adv := range advances {
		if adv.Status != advance.StatusApproved {
			continue
		}
		if !strings.HasPrefix(adv.Date.Format("2006-01-02"), month) {
			continue
		}
		deductions.Advances = deductions.Advances.Add(adv.Amount)
		deductions.Details = append(deductions.Details, wage.DeductionLine{
			Description: fmt.Sprintf("Advance (%s): %s", adv.Date.Format("2006-01-02"), adv.Reason),
			Amount:      adv.Amount,
		})
	}
	for _, fd := range flatDeductions {
		deductions.Flat = deductions.Flat.Add(fd.Amount)
		deductions.Details = append(deductions.Details, wage.DeductionLine{
			Description: fd.Description,
			Amount:      fd.Amount,
		})
	}
	deductions.Total = deductions.Advances.Add(deductions.Flat)

	return wage.MonthlyPayroll{
		FactoryID: w.FactoryID,
		WorkerID:  w.ID,
		Month:     month,
		Summary:   summary,
		Earnings: wage.Earnings{
			Basic:      basic,
			Overtime:   overtime,
			Allowances: allowances,
			Gross:      gross,
		},
		Deductions: deductions,
		NetPayable: gross.Sub(deductions.Total).Round(2),
		Status:     wage.PayrollStatusDraft,
	}
}
