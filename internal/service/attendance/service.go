package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/factorydesk/workforce-backend-go/internal/domain/attendance"
	"github.com/factorydesk/workforce-backend-go/internal/domain/shift"
	"github.com/factorydesk/workforce-backend-go/internal/domain/worker"
	"github.com/factorydesk/workforce-backend-go/internal/pkg/clock"
	"github.com/factorydesk/workforce-backend-go/internal/pkg/database"
	"github.com/factorydesk/workforce-backend-go/internal/repository/postgresql"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
)

type AttendanceServiceImpl struct {
	db             *database.DB
	attendanceRepo attendance.AttendanceRepository
	workerRepo     worker.WorkerRepository
	shiftRepo      shift.ShiftRepository
	clock          clock.Clock
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.AttendanceRepository,
	workerRepo worker.WorkerRepository,
	shiftRepo shift.ShiftRepository,
	clk clock.Clock,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:             db,
		attendanceRepo: attendanceRepo,
		workerRepo:     workerRepo,
		shiftRepo:      shiftRepo,
		clock:          clk,
	}
}

// Helper to get factory_id from JWT context
func factoryIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	factoryID, ok := claims["factory_id"].(string)
	if !ok || factoryID == "" {
		return "", fmt.Errorf("factory_id claim is missing or invalid")
	}

	return factoryID, nil
}

// RecordPunch implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RecordPunch(ctx context.Context, req attendance.PunchRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	factoryID, err := factoryIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.clock.Now()
	punchedAt := now
	if req.Timestamp != nil && *req.Timestamp != "" {
		parsed, err := time.Parse(time.RFC3339, *req.Timestamp)
		if err != nil {
			return attendance.AttendanceResponse{}, fmt.Errorf("failed to parse punch timestamp: %w", err)
		}
		punchedAt = parsed
	}

	w, err := a.workerRepo.GetByID(ctx, req.WorkerID, factoryID)
	if err != nil {
		if errors.Is(err, worker.ErrWorkerNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrWorkerNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get worker: %w", err)
	}
	if !w.Active {
		return attendance.AttendanceResponse{}, worker.ErrWorkerInactive
	}
	if w.ShiftID == "" {
		return attendance.AttendanceResponse{}, attendance.ErrNoShiftAssigned
	}

	shiftCfg, err := a.shiftRepo.GetByID(ctx, w.ShiftID, factoryID)
	if err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrNoShiftAssigned
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get shift: %w", err)
	}

	// Date is the working day, not a timestamp
	day := punchedAt.Truncate(24 * time.Hour)

	// Concurrent punches for the same worker and day serialize on the
	// row lock so no timeline entry is lost.
	var saved attendance.AttendanceRecord
	err = postgresql.WithTransaction(ctx, a.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		existing, err := a.attendanceRepo.GetByWorkerAndDateForUpdate(txCtx, w.ID, day, factoryID)
		if err != nil {
			return fmt.Errorf("failed to get attendance for day: %w", err)
		}

		record := attendance.AttendanceRecord{
			FactoryID: factoryID,
			WorkerID:  w.ID,
			Date:      day,
		}
		if existing != nil {
			record = *existing
		}

		record.Timeline = append(record.Timeline, attendance.Punch{
			Timestamp: punchedAt,
			Type:      attendance.PunchType(strings.ToUpper(req.Type)),
			Device:    req.Device,
			Location:  req.Location,
		})

		// An administrative leave override wins over any late punches;
		// the resolver must not run over an ON_LEAVE day.
		if record.Status != attendance.StatusOnLeave {
			lateCount, err := a.attendanceRepo.CountLateThisMonth(txCtx, w.ID, day.Format("2006-01"), record.ID, factoryID)
			if err != nil {
				return fmt.Errorf("failed to count late days: %w", err)
			}
			record = ProcessDailyStatus(record, shiftCfg, lateCount, now)
		}

		saved, err = a.attendanceRepo.Upsert(txCtx, record)
		if err != nil {
			return fmt.Errorf("failed to save attendance record: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapRecordToResponse(saved), nil
}

// RegulatePunch implements attendance.AttendanceService.
// Admins fix a wrong or missed punch by replacing the first IN or the
// last OUT; the record is fully re-resolved so status and hours can
// never drift out of sync with the timeline.
func (a *AttendanceServiceImpl) RegulatePunch(ctx context.Context, req attendance.RegulateRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	factoryID, err := factoryIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.attendanceRepo.GetByID(ctx, req.ID, factoryID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	if record.Status == attendance.StatusOnLeave {
		return attendance.AttendanceResponse{}, attendance.ErrOnLeave
	}

	punchedAt, _ := time.Parse(time.RFC3339, req.Timestamp)
	punchType := attendance.PunchType(strings.ToUpper(req.Type))

	var target *attendance.Punch
	if punchType == attendance.PunchIn {
		target = record.FirstIn()
	} else {
		target = record.LastOut()
	}

	if target != nil {
		target.Timestamp = punchedAt
		target.Device = "MANUAL_OVERRIDE_BY_ADMIN"
	} else {
		// missed punch: nothing to replace, record the corrected entry
		record.Timeline = append(record.Timeline, attendance.Punch{
			Timestamp: punchedAt,
			Type:      punchType,
			Device:    "MANUAL_OVERRIDE_BY_ADMIN",
		})
	}

	w, err := a.workerRepo.GetByID(ctx, record.WorkerID, factoryID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get worker: %w", err)
	}

	shiftCfg, err := a.shiftRepo.GetByID(ctx, w.ShiftID, factoryID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get shift: %w", err)
	}

	lateCount, err := a.attendanceRepo.CountLateThisMonth(ctx, record.WorkerID, record.Date.Format("2006-01"), record.ID, factoryID)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to count late days: %w", err)
	}

	record = ProcessDailyStatus(record, shiftCfg, lateCount, a.clock.Now())

	saved, err := a.attendanceRepo.Upsert(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to save regulated record: %w", err)
	}

	return mapRecordToResponse(saved), nil
}

// MarkOnLeave implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkOnLeave(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	factoryID, err := factoryIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.attendanceRepo.GetByID(ctx, id, factoryID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	// Direct override, bypassing the resolver entirely
	record.Status = attendance.StatusOnLeave
	record.Late = attendance.LateStatus{}
	record.Hours = attendance.Hours{}

	saved, err := a.attendanceRepo.Upsert(ctx, record)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to mark record on leave: %w", err)
	}

	return mapRecordToResponse(saved), nil
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	factoryID, err := factoryIDFromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	record, err := a.attendanceRepo.GetByID(ctx, id, factoryID)
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return attendance.AttendanceResponse{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return mapRecordToResponse(record), nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	factoryID, err := factoryIDFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, total, err := a.attendanceRepo.List(ctx, filter, factoryID)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapRecordToResponse(rec))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  totalPages,
		Showing:     showing,
		Attendances: responses,
	}, nil
}

// mapRecordToResponse converts an AttendanceRecord entity to AttendanceResponse
func mapRecordToResponse(rec attendance.AttendanceRecord) attendance.AttendanceResponse {
	var workerName string
	if rec.WorkerName != nil {
		workerName = *rec.WorkerName
	}

	timeline := make([]attendance.PunchResponse, 0, len(rec.Timeline))
	for _, p := range rec.Timeline {
		timeline = append(timeline, attendance.PunchResponse{
			Timestamp:     p.Timestamp.Format(time.RFC3339),
			Type:          string(p.Type),
			Device:        p.Device,
			Location:      p.Location,
			OutOfGeofence: p.OutOfGeofence,
		})
	}

	return attendance.AttendanceResponse{
		ID:             rec.ID,
		WorkerID:       rec.WorkerID,
		WorkerName:     workerName,
		Date:           rec.Date.Format("2006-01-02"),
		Timeline:       timeline,
		Status:         string(rec.Status),
		IsLate:         rec.Late.IsLate,
		LateByMins:     rec.Late.LateByMins,
		PenaltyApplied: rec.Late.PenaltyApplied,
		GrossHours:     rec.Hours.Gross,
		NetHours:       rec.Hours.Net,
		OvertimeHours:  rec.Hours.Overtime,
		CreatedAt:      rec.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:      rec.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
