package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/factorydesk/workforce-backend-go/internal/domain/worker"
	"github.com/factorydesk/workforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workerRepository struct {
	db *database.DB
}

func NewWorkerRepository(db *database.DB) worker.WorkerRepository {
	return &workerRepository{db: db}
}

const workerColumns = `
	id, factory_id, full_name, phone_number, photo_url,
	shift_id, wage, active, created_at, updated_at, deleted_at
`

func scanWorker(row pgx.Row) (worker.Worker, error) {
	var w worker.Worker
	var wage []byte

	err := row.Scan(
		&w.ID, &w.FactoryID, &w.FullName, &w.PhoneNumber, &w.PhotoURL,
		&w.ShiftID, &wage, &w.Active, &w.CreatedAt, &w.UpdatedAt, &w.DeletedAt,
	)
	if err != nil {
		return worker.Worker{}, err
	}

	if len(wage) > 0 {
		if err := json.Unmarshal(wage, &w.Wage); err != nil {
			return worker.Worker{}, fmt.Errorf("failed to decode wage config: %w", err)
		}
	}

	return w, nil
}

// Create implements worker.WorkerRepository.
func (r *workerRepository) Create(ctx context.Context, newWorker worker.Worker) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	wage, err := json.Marshal(newWorker.Wage)
	if err != nil {
		return worker.Worker{}, fmt.Errorf("failed to encode wage config: %w", err)
	}

	query := `
		INSERT INTO workers (factory_id, full_name, phone_number, photo_url, shift_id, wage, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		newWorker.FactoryID,
		newWorker.FullName,
		newWorker.PhoneNumber,
		newWorker.PhotoURL,
		newWorker.ShiftID,
		wage,
		newWorker.Active,
	).Scan(&newWorker.ID, &newWorker.CreatedAt, &newWorker.UpdatedAt)

	if err != nil {
		return worker.Worker{}, fmt.Errorf("failed to create worker: %w", err)
	}

	return newWorker, nil
}

// GetByID implements worker.WorkerRepository.
func (r *workerRepository) GetByID(ctx context.Context, id string, factoryID string) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + workerColumns + `
		FROM workers
		WHERE id = $1 AND factory_id = $2 AND deleted_at IS NULL
	`

	w, err := scanWorker(q.QueryRow(ctx, query, id, factoryID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker: %w", err)
	}

	return w, nil
}

// List implements worker.WorkerRepository.
func (r *workerRepository) List(ctx context.Context, filter worker.WorkerFilter, factoryID string) ([]worker.Worker, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"factory_id = $1", "deleted_at IS NULL"}
	args := []interface{}{factoryID}
	argPos := 2

	if filter.Search != nil && *filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("full_name ILIKE $%d", argPos))
		args = append(args, "%"+*filter.Search+"%")
		argPos++
	}
	if filter.ShiftID != nil && *filter.ShiftID != "" {
		conditions = append(conditions, fmt.Sprintf("shift_id = $%d", argPos))
		args = append(args, *filter.ShiftID)
		argPos++
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("active = $%d", argPos))
		args = append(args, *filter.Active)
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := `SELECT COUNT(*) FROM workers WHERE ` + whereClause

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count workers: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM workers
		WHERE %s
		ORDER BY full_name ASC
		LIMIT $%d OFFSET $%d
	`, workerColumns, whereClause, argPos, argPos+1)

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list workers: %w", err)
	}
	defer rows.Close()

	var workers []worker.Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate workers: %w", err)
	}

	return workers, total, nil
}

// ListActive implements worker.WorkerRepository.
func (r *workerRepository) ListActive(ctx context.Context, factoryID string) ([]worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + workerColumns + `
		FROM workers
		WHERE factory_id = $1 AND active = TRUE AND deleted_at IS NULL
		ORDER BY full_name ASC
	`

	rows, err := q.Query(ctx, query, factoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active workers: %w", err)
	}
	defer rows.Close()

	var workers []worker.Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate workers: %w", err)
	}

	return workers, nil
}

// Update implements worker.WorkerRepository.
func (r *workerRepository) Update(ctx context.Context, w worker.Worker) error {
	q := GetQuerier(ctx, r.db)

	wage, err := json.Marshal(w.Wage)
	if err != nil {
		return fmt.Errorf("failed to encode wage config: %w", err)
	}

	query := `
		UPDATE workers
		SET full_name = $1, phone_number = $2, photo_url = $3,
			shift_id = $4, wage = $5, active = $6, updated_at = NOW()
		WHERE id = $7 AND factory_id = $8 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query,
		w.FullName, w.PhoneNumber, w.PhotoURL,
		w.ShiftID, wage, w.Active,
		w.ID, w.FactoryID,
	)
	if err != nil {
		return fmt.Errorf("failed to update worker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return worker.ErrWorkerNotFound
	}

	return nil
}

// Delete implements worker.WorkerRepository. Soft delete: history stays
// available for past payrolls.
func (r *workerRepository) Delete(ctx context.Context, id string, factoryID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE workers
		SET deleted_at = NOW(), active = FALSE, updated_at = NOW()
		WHERE id = $1 AND factory_id = $2 AND deleted_at IS NULL
	`

	tag, err := q.Exec(ctx, query, id, factoryID)
	if err != nil {
		return fmt.Errorf("failed to delete worker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return worker.ErrWorkerNotFound
	}

	return nil
}
