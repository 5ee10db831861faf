package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/factorydesk/workforce-backend-go/internal/domain/attendance"
	"github.com/factorydesk/workforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceColumns = `
	a.id, a.factory_id, a.worker_id, a.date, a.timeline,
	a.status, a.is_late, a.late_by_mins, a.penalty_applied,
	a.gross_hours, a.net_hours, a.overtime_hours,
	a.created_at, a.updated_at
`

func scanAttendance(row pgx.Row) (attendance.AttendanceRecord, error) {
	var rec attendance.AttendanceRecord
	var timeline []byte

	err := row.Scan(
		&rec.ID, &rec.FactoryID, &rec.WorkerID, &rec.Date, &timeline,
		&rec.Status, &rec.Late.IsLate, &rec.Late.LateByMins, &rec.Late.PenaltyApplied,
		&rec.Hours.Gross, &rec.Hours.Net, &rec.Hours.Overtime,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return attendance.AttendanceRecord{}, err
	}

	if len(timeline) > 0 {
		if err := json.Unmarshal(timeline, &rec.Timeline); err != nil {
			return attendance.AttendanceRecord{}, fmt.Errorf("failed to decode timeline: %w", err)
		}
	}

	return rec, nil
}

// Upsert implements attendance.AttendanceRepository.
func (a *attendanceRepository) Upsert(ctx context.Context, record attendance.AttendanceRecord) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	timeline, err := json.Marshal(record.Timeline)
	if err != nil {
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to encode timeline: %w", err)
	}

	query := `
		INSERT INTO attendance_records (
			factory_id, worker_id, date, timeline,
			status, is_late, late_by_mins, penalty_applied,
			gross_hours, net_hours, overtime_hours
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (factory_id, worker_id, date) DO UPDATE SET
			timeline = EXCLUDED.timeline,
			status = EXCLUDED.status,
			is_late = EXCLUDED.is_late,
			late_by_mins = EXCLUDED.late_by_mins,
			penalty_applied = EXCLUDED.penalty_applied,
			gross_hours = EXCLUDED.gross_hours,
			net_hours = EXCLUDED.net_hours,
			overtime_hours = EXCLUDED.overtime_hours,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		record.FactoryID,
		record.WorkerID,
		record.Date,
		timeline,
		record.Status,
		record.Late.IsLate,
		record.Late.LateByMins,
		record.Late.PenaltyApplied,
		record.Hours.Gross,
		record.Hours.Net,
		record.Hours.Overtime,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to upsert attendance record: %w", err)
	}

	return record, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string, factoryID string) (attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.id = $1 AND a.factory_id = $2
	`

	rec, err := scanAttendance(q.QueryRow(ctx, query, id, factoryID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.AttendanceRecord{}, attendance.ErrAttendanceNotFound
		}
		return attendance.AttendanceRecord{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return rec, nil
}

// GetByWorkerAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByWorkerAndDate(ctx context.Context, workerID string, date time.Time, factoryID string) (*attendance.AttendanceRecord, error) {
	return a.getByWorkerAndDate(ctx, workerID, date, factoryID, "")
}

// GetByWorkerAndDateForUpdate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByWorkerAndDateForUpdate(ctx context.Context, workerID string, date time.Time, factoryID string) (*attendance.AttendanceRecord, error) {
	return a.getByWorkerAndDate(ctx, workerID, date, factoryID, "FOR UPDATE")
}

func (a *attendanceRepository) getByWorkerAndDate(ctx context.Context, workerID string, date time.Time, factoryID string, lock string) (*attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.worker_id = $1 AND a.date = $2 AND a.factory_id = $3
		LIMIT 1 ` + lock

	rec, err := scanAttendance(q.QueryRow(ctx, query, workerID, date, factoryID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return &rec, nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter, factoryID string) ([]attendance.AttendanceRecord, int64, error) {
	q := GetQuerier(ctx, a.db)

	conditions := []string{"a.factory_id = $1"}
	args := []interface{}{factoryID}
	argPos := 2

	if filter.WorkerID != nil && *filter.WorkerID != "" {
		conditions = append(conditions, fmt.Sprintf("a.worker_id = $%d", argPos))
		args = append(args, *filter.WorkerID)
		argPos++
	}
	if filter.Date != nil && *filter.Date != "" {
		conditions = append(conditions, fmt.Sprintf("a.date = $%d", argPos))
		args = append(args, *filter.Date)
		argPos++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		conditions = append(conditions, fmt.Sprintf("a.date >= $%d", argPos))
		args = append(args, *filter.StartDate)
		argPos++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		conditions = append(conditions, fmt.Sprintf("a.date <= $%d", argPos))
		args = append(args, *filter.EndDate)
		argPos++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argPos))
		args = append(args, strings.ToUpper(*filter.Status))
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := `
		SELECT COUNT(*)
		FROM attendance_records a
		WHERE ` + whereClause

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	sortColumn := map[string]string{
		"date":        "a.date",
		"worker_name": "w.full_name",
		"status":      "a.status",
	}[filter.SortBy]
	if sortColumn == "" {
		sortColumn = "a.date"
	}
	sortOrder := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		sortOrder = "ASC"
	}

	listQuery := fmt.Sprintf(`
		SELECT %s, w.full_name
		FROM attendance_records a
		JOIN workers w ON w.id = a.worker_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, attendanceColumns, whereClause, sortColumn, sortOrder, argPos, argPos+1)

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		var rec attendance.AttendanceRecord
		var timeline []byte
		var workerName string

		err := rows.Scan(
			&rec.ID, &rec.FactoryID, &rec.WorkerID, &rec.Date, &timeline,
			&rec.Status, &rec.Late.IsLate, &rec.Late.LateByMins, &rec.Late.PenaltyApplied,
			&rec.Hours.Gross, &rec.Hours.Net, &rec.Hours.Overtime,
			&rec.CreatedAt, &rec.UpdatedAt,
			&workerName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		if len(timeline) > 0 {
			if err := json.Unmarshal(timeline, &rec.Timeline); err != nil {
				return nil, 0, fmt.Errorf("failed to decode timeline: %w", err)
			}
		}
		rec.WorkerName = &workerName
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, total, nil
}

// ListByWorkerAndMonth implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByWorkerAndMonth(ctx context.Context, workerID string, month string, factoryID string) ([]attendance.AttendanceRecord, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records a
		WHERE a.worker_id = $1
		  AND to_char(a.date, 'YYYY-MM') = $2
		  AND a.factory_id = $3
		ORDER BY a.date ASC
	`

	rows, err := q.Query(ctx, query, workerID, month, factoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.AttendanceRecord
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, nil
}

// CountLateThisMonth implements attendance.AttendanceRepository.
func (a *attendanceRepository) CountLateThisMonth(ctx context.Context, workerID string, month string, excludeID string, factoryID string) (int, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT COUNT(*)
		FROM attendance_records a
		WHERE a.worker_id = $1
		  AND to_char(a.date, 'YYYY-MM') = $2
		  AND a.factory_id = $3
		  AND a.is_late = TRUE
		  AND ($4 = '' OR a.id::text <> $4)
	`

	var count int
	if err := q.QueryRow(ctx, query, workerID, month, factoryID, excludeID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count late records: %w", err)
	}

	return count, nil
}
