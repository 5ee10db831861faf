package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/factorydesk/workforce-backend-go/internal/domain/advance"
	"github.com/factorydesk/workforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type advanceRepository struct {
	db *database.DB
}

func NewAdvanceRepository(db *database.DB) advance.AdvanceRepository {
	return &advanceRepository{db: db}
}

// Create implements advance.AdvanceRepository.
func (r *advanceRepository) Create(ctx context.Context, newAdvance advance.Advance) (advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO advances (factory_id, worker_id, amount, date, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAdvance.FactoryID, newAdvance.WorkerID, newAdvance.Amount,
		newAdvance.Date, newAdvance.Reason, newAdvance.Status,
	).Scan(&newAdvance.ID, &newAdvance.CreatedAt, &newAdvance.UpdatedAt)

	if err != nil {
		return advance.Advance{}, fmt.Errorf("failed to create advance: %w", err)
	}

	return newAdvance, nil
}

// GetByID implements advance.AdvanceRepository.
func (r *advanceRepository) GetByID(ctx context.Context, id string, factoryID string) (advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT a.id, a.factory_id, a.worker_id, a.amount, a.date, a.reason, a.status,
			   a.created_at, a.updated_at, w.full_name
		FROM advances a
		JOIN workers w ON w.id = a.worker_id
		WHERE a.id = $1 AND a.factory_id = $2
	`

	var adv advance.Advance
	var workerName string
	err := q.QueryRow(ctx, query, id, factoryID).Scan(
		&adv.ID, &adv.FactoryID, &adv.WorkerID, &adv.Amount, &adv.Date, &adv.Reason, &adv.Status,
		&adv.CreatedAt, &adv.UpdatedAt, &workerName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return advance.Advance{}, advance.ErrAdvanceNotFound
		}
		return advance.Advance{}, fmt.Errorf("failed to get advance: %w", err)
	}
	adv.WorkerName = &workerName

	return adv, nil
}

// List implements advance.AdvanceRepository.
func (r *advanceRepository) List(ctx context.Context, filter advance.AdvanceFilter, factoryID string) ([]advance.Advance, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"a.factory_id = $1"}
	args := []interface{}{factoryID}
	argPos := 2

	if filter.WorkerID != nil && *filter.WorkerID != "" {
		conditions = append(conditions, fmt.Sprintf("a.worker_id = $%d", argPos))
		args = append(args, *filter.WorkerID)
		argPos++
	}
	if filter.Month != nil && *filter.Month != "" {
		conditions = append(conditions, fmt.Sprintf("to_char(a.date, 'YYYY-MM') = $%d", argPos))
		args = append(args, *filter.Month)
		argPos++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", argPos))
		args = append(args, strings.ToUpper(*filter.Status))
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := `SELECT COUNT(*) FROM advances a WHERE ` + whereClause

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count advances: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT a.id, a.factory_id, a.worker_id, a.amount, a.date, a.reason, a.status,
			   a.created_at, a.updated_at, w.full_name
		FROM advances a
		JOIN workers w ON w.id = a.worker_id
		WHERE %s
		ORDER BY a.date DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argPos, argPos+1)

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list advances: %w", err)
	}
	defer rows.Close()

	var advances []advance.Advance
	for rows.Next() {
		var adv advance.Advance
		var workerName string
		err := rows.Scan(
			&adv.ID, &adv.FactoryID, &adv.WorkerID, &adv.Amount, &adv.Date, &adv.Reason, &adv.Status,
			&adv.CreatedAt, &adv.UpdatedAt, &workerName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan advance: %w", err)
		}
		adv.WorkerName = &workerName
		advances = append(advances, adv)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate advances: %w", err)
	}

	return advances, total, nil
}

// ListApprovedByWorkerAndMonth implements advance.AdvanceRepository.
func (r *advanceRepository) ListApprovedByWorkerAndMonth(ctx context.Context, workerID string, month string, factoryID string) ([]advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, factory_id, worker_id, amount, date, reason, status, created_at, updated_at
		FROM advances
		WHERE worker_id = $1
		  AND to_char(date, 'YYYY-MM') = $2
		  AND factory_id = $3
		  AND status = 'APPROVED'
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, workerID, month, factoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved advances: %w", err)
	}
	defer rows.Close()

	var advances []advance.Advance
	for rows.Next() {
		var adv advance.Advance
		err := rows.Scan(
			&adv.ID, &adv.FactoryID, &adv.WorkerID, &adv.Amount, &adv.Date, &adv.Reason, &adv.Status,
			&adv.CreatedAt, &adv.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan advance: %w", err)
		}
		advances = append(advances, adv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate advances: %w", err)
	}

	return advances, nil
}

// UpdateStatus implements advance.AdvanceRepository.
func (r *advanceRepository) UpdateStatus(ctx context.Context, id string, status advance.AdvanceStatus, factoryID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE advances
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND factory_id = $3
	`

	tag, err := q.Exec(ctx, query, status, id, factoryID)
	if err != nil {
		return fmt.Errorf("failed to update advance status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return advance.ErrAdvanceNotFound
	}

	return nil
}

// Delete implements advance.AdvanceRepository.
func (r *advanceRepository) Delete(ctx context.Context, id string, factoryID string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM advances WHERE id = $1 AND factory_id = $2`

	tag, err := q.Exec(ctx, query, id, factoryID)
	if err != nil {
		return fmt.Errorf("failed to delete advance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return advance.ErrAdvanceNotFound
	}

	return nil
}
