package wage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/factorydesk/workforce-backend-go/internal/domain/advance"
	"github.com/factorydesk/workforce-backend-go/internal/domain/attendance"
	"github.com/factorydesk/workforce-backend-go/internal/domain/wage"
	"github.com/factorydesk/workforce-backend-go/internal/domain/worker"
	"github.com/factorydesk/workforce-backend-go/internal/pkg/database"
	"github.com/go-chi/jwtauth/v5"
)

type WageServiceImpl struct {
	db             *database.DB
	wageRepo       wage.WageRepository
	workerRepo     worker.WorkerRepository
	attendanceRepo attendance.AttendanceRepository
	advanceRepo    advance.AdvanceRepository
}

func NewWageService(
	db *database.DB,
	wageRepo wage.WageRepository,
	workerRepo worker.WorkerRepository,
	attendanceRepo attendance.AttendanceRepository,
	advanceRepo advance.AdvanceRepository,
) wage.WageService {
	return &WageServiceImpl{
		db:             db,
		wageRepo:       wageRepo,
		workerRepo:     workerRepo,
		attendanceRepo: attendanceRepo,
		advanceRepo:    advanceRepo,
	}
}

// Helper to get factory_id and user_id from JWT context
func getClaimsFromContext(ctx context.Context) (factoryID, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	factoryID, ok := claims["factory_id"].(string)
	if !ok || factoryID == "" {
		return "", "", fmt.Errorf("factory_id claim is missing or invalid")
	}

	userID, _ = claims["user_id"].(string)

	return factoryID, userID, nil
}

// ComputeDailyWage implements wage.WageService.
func (s *WageServiceImpl) ComputeDailyWage(ctx context.Context, workerID string, date string) (wage.DailyWageResponse, error) {
	factoryID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return wage.DailyWageResponse{}, err
	}

	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return wage.DailyWageResponse{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	w, err := s.workerRepo.GetByID(ctx, workerID, factoryID)
	if err != nil {
		return wage.DailyWageResponse{}, fmt.Errorf("failed to get worker: %w", err)
	}

	rec, err := s.attendanceRepo.GetByWorkerAndDate(ctx, workerID, day, factoryID)
	if err != nil {
		return wage.DailyWageResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}
	if rec == nil {
		return wage.DailyWageResponse{}, attendance.ErrAttendanceNotFound
	}

	record := CalculateDailyWage(w, *rec)

	saved, err := s.wageRepo.UpsertDailyWage(ctx, record)
	if err != nil {
		return wage.DailyWageResponse{}, fmt.Errorf("failed to save daily wage: %w", err)
	}

	return mapDailyWageToResponse(saved), nil
}

// GeneratePayroll implements wage.WageService.
func (s *WageServiceImpl) GeneratePayroll(ctx context.Context, req wage.GeneratePayrollRequest) ([]wage.PayrollResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	factoryID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	var workers []worker.Worker
	if len(req.WorkerIDs) > 0 {
		for _, id := range req.WorkerIDs {
			w, err := s.workerRepo.GetByID(ctx, id, factoryID)
			if err != nil {
				if errors.Is(err, worker.ErrWorkerNotFound) {
					continue
				}
				return nil, fmt.Errorf("failed to get worker %s: %w", id, err)
			}
			workers = append(workers, w)
		}
	} else {
		workers, err = s.workerRepo.ListActive(ctx, factoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to list workers: %w", err)
		}
	}

	var responses []wage.PayrollResponse
	for _, w := range workers {
		// Skip workers whose payroll for this month already exists
		_, err := s.wageRepo.GetPayrollByWorkerAndMonth(ctx, w.ID, req.Month, factoryID)
		if err == nil {
			continue
		}
		if !errors.Is(err, wage.ErrPayrollNotFound) {
			return nil, fmt.Errorf("failed to check existing payroll: %w", err)
		}

		dailyWages, err := s.wageRepo.ListDailyWagesByMonth(ctx, w.ID, req.Month, factoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to list daily wages for worker %s: %w", w.ID, err)
		}

		advances, err := s.advanceRepo.ListApprovedByWorkerAndMonth(ctx, w.ID, req.Month, factoryID)
		if err != nil {
			return nil, fmt.Errorf("failed to list advances for worker %s: %w", w.ID, err)
		}

		payroll := BuildMonthlyPayroll(w, req.Month, dailyWages, advances, req.FlatDeductions)

		created, err := s.wageRepo.CreatePayroll(ctx, payroll)
		if err != nil {
			if errors.Is(err, wage.ErrPayrollAlreadyExists) {
				continue
			}
			return nil, fmt.Errorf("failed to create payroll for worker %s: %w", w.ID, err)
		}
		responses = append(responses, mapPayrollToResponse(created))
	}

	return responses, nil
}

// GetPayroll implements wage.WageService.
func (s *WageServiceImpl) GetPayroll(ctx context.Context, id string) (wage.PayrollResponse, error) {
	factoryID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return wage.PayrollResponse{}, err
	}

	payroll, err := s.wageRepo.GetPayrollByID(ctx, id, factoryID)
	if err != nil {
		if errors.Is(err, wage.ErrPayrollNotFound) {
			return wage.PayrollResponse{}, wage.ErrPayrollNotFound
		}
		return wage.PayrollResponse{}, fmt.Errorf("failed to get payroll: %w", err)
	}

	return mapPayrollToResponse(payroll), nil
}

// ListPayrolls implements wage.WageService.
func (s *WageServiceImpl) ListPayrolls(ctx context.Context, filter wage.PayrollFilter) (wage.ListPayrollResponse, error) {
	if err := filter.Validate(); err != nil {
		return wage.ListPayrollResponse{}, err
	}

	factoryID, _, err := getClaimsFromContext(ctx)
	if err != nil {
		return wage.ListPayrollResponse{}, err
	}

	payrolls, total, err := s.wageRepo.ListPayrolls(ctx, filter, factoryID)
	if err != nil {
		return wage.ListPayrollResponse{}, fmt.Errorf("failed to list payrolls: %w", err)
	}

	responses := make([]wage.PayrollResponse, 0, len(payrolls))
	for _, p := range payrolls {
		responses = append(responses, mapPayrollToResponse(p))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return wage.ListPayrollResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Payrolls:   responses,
	}, nil
}

// FinalizePayroll implements wage.WageService.
func (s *WageServiceImpl) FinalizePayroll(ctx context.Context, req wage.FinalizePayrollRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	factoryID, userID, err := getClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	status := wage.PayrollStatus(strings.ToUpper(req.Status))
	return s.wageRepo.FinalizePayrolls(ctx, req.PayrollIDs, status, userID, factoryID)
}

// ========== HELPERS ==========

func mapDailyWageToResponse(r wage.DailyWageRecord) wage.DailyWageResponse {
	return wage.DailyWageResponse{
		ID:                      r.ID,
		WorkerID:                r.WorkerID,
		Date:                    r.Date.Format("2006-01-02"),
		BaseWage:                r.Breakdown.Base,
		OvertimeWage:            r.Breakdown.Overtime,
		Allowances:              r.Breakdown.Allowances,
		Total:                   r.Breakdown.Total,
		RateUsed:                r.Meta.RateUsed,
		HoursWorked:             r.Meta.HoursWorked,
		OvertimeHours:           r.Meta.OvertimeHours,
		IsOvertimeLimitExceeded: r.Meta.IsOvertimeLimitExceeded,
	}
}

func mapPayrollToResponse(p wage.MonthlyPayroll) wage.PayrollResponse {
	var paidAtStr *string
	if p.PaidAt != nil {
		str := p.PaidAt.Format(time.RFC3339)
		paidAtStr = &str
	}

	workerName := ""
	if p.WorkerName != nil {
		workerName = *p.WorkerName
	}

	return wage.PayrollResponse{
		ID:         p.ID,
		WorkerID:   p.WorkerID,
		WorkerName: workerName,
		Month:      p.Month,
		Summary:    p.Summary,
		Earnings:   p.Earnings,
		Deductions: p.Deductions,
		NetPayable: p.NetPayable,
		Status:     string(p.Status),
		PaidAt:     paidAtStr,
	}
}
