package postgresql

import (
	"context"
	"fmt"

	"github.com/factorydesk/workforce-backend-go/internal/domain/shift"
	"github.com/factorydesk/workforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type shiftRepository struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepository{db: db}
}

const shiftColumns = `
	id, factory_id, name, start_time, end_time,
	grace_period_mins, max_grace_allowed, break_duration_mins, min_overtime_mins,
	created_at, updated_at
`

func scanShift(row pgx.Row) (shift.ShiftConfig, error) {
	var s shift.ShiftConfig
	err := row.Scan(
		&s.ID, &s.FactoryID, &s.Name, &s.StartTime, &s.EndTime,
		&s.GracePeriodMins, &s.MaxGraceAllowed, &s.BreakDurationMins, &s.MinOvertimeMins,
		&s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// Create implements shift.ShiftRepository.
func (r *shiftRepository) Create(ctx context.Context, newShift shift.ShiftConfig) (shift.ShiftConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts (
			factory_id, name, start_time, end_time,
			grace_period_mins, max_grace_allowed, break_duration_mins, min_overtime_mins
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newShift.FactoryID, newShift.Name, newShift.StartTime, newShift.EndTime,
		newShift.GracePeriodMins, newShift.MaxGraceAllowed, newShift.BreakDurationMins, newShift.MinOvertimeMins,
	).Scan(&newShift.ID, &newShift.CreatedAt, &newShift.UpdatedAt)

	if err != nil {
		return shift.ShiftConfig{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return newShift, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepository) GetByID(ctx context.Context, id string, factoryID string) (shift.ShiftConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE id = $1 AND factory_id = $2
	`

	s, err := scanShift(q.QueryRow(ctx, query, id, factoryID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.ShiftConfig{}, shift.ErrShiftNotFound
		}
		return shift.ShiftConfig{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return s, nil
}

// List implements shift.ShiftRepository.
func (r *shiftRepository) List(ctx context.Context, factoryID string) ([]shift.ShiftConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE factory_id = $1
		ORDER BY name ASC
	`

	rows, err := q.Query(ctx, query, factoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.ShiftConfig
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shifts: %w", err)
	}

	return shifts, nil
}

// Update implements shift.ShiftRepository.
func (r *shiftRepository) Update(ctx context.Context, s shift.ShiftConfig) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET name = $1, start_time = $2, end_time = $3,
			grace_period_mins = $4, max_grace_allowed = $5,
			break_duration_mins = $6, min_overtime_mins = $7,
			updated_at = NOW()
		WHERE id = $8 AND factory_id = $9
	`

	tag, err := q.Exec(ctx, query,
		s.Name, s.StartTime, s.EndTime,
		s.GracePeriodMins, s.MaxGraceAllowed,
		s.BreakDurationMins, s.MinOvertimeMins,
		s.ID, s.FactoryID,
	)
	if err != nil {
		return fmt.Errorf("failed to update shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

// Delete implements shift.ShiftRepository.
func (r *shiftRepository) Delete(ctx context.Context, id string, factoryID string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM shifts WHERE id = $1 AND factory_id = $2`

	tag, err := q.Exec(ctx, query, id, factoryID)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

// CountAssignedWorkers implements shift.ShiftRepository.
func (r *shiftRepository) CountAssignedWorkers(ctx context.Context, id string, factoryID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM workers
		WHERE shift_id = $1 AND factory_id = $2 AND deleted_at IS NULL
	`

	var count int
	if err := q.QueryRow(ctx, query, id, factoryID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count assigned workers: %w", err)
	}

	return count, nil
}
