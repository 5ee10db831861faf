package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/factorydesk/workforce-backend-go/internal/domain/wage"
	"github.com/factorydesk/workforce-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type wageRepository struct {
	db *database.DB
}

func NewWageRepository(db *database.DB) wage.WageRepository {
	return &wageRepository{db: db}
}

// ========== DAILY WAGES ==========

// UpsertDailyWage implements wage.WageRepository.
func (r *wageRepository) UpsertDailyWage(ctx context.Context, record wage.DailyWageRecord) (wage.DailyWageRecord, error) {
	q := GetQuerier(ctx, r.db)

	breakdown, err := json.Marshal(record.Breakdown)
	if err != nil {
		return wage.DailyWageRecord{}, fmt.Errorf("failed to encode breakdown: %w", err)
	}
	meta, err := json.Marshal(record.Meta)
	if err != nil {
		return wage.DailyWageRecord{}, fmt.Errorf("failed to encode meta: %w", err)
	}

	query := `
		INSERT INTO daily_wages (factory_id, worker_id, date, breakdown, meta)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (factory_id, worker_id, date) DO UPDATE SET
			breakdown = EXCLUDED.breakdown,
			meta = EXCLUDED.meta,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		record.FactoryID, record.WorkerID, record.Date, breakdown, meta,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return wage.DailyWageRecord{}, fmt.Errorf("failed to upsert daily wage: %w", err)
	}

	return record, nil
}

// ListDailyWagesByMonth implements wage.WageRepository.
func (r *wageRepository) ListDailyWagesByMonth(ctx context.Context, workerID string, month string, factoryID string) ([]wage.DailyWageRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, factory_id, worker_id, date, breakdown, meta, created_at, updated_at
		FROM daily_wages
		WHERE worker_id = $1
		  AND to_char(date, 'YYYY-MM') = $2
		  AND factory_id = $3
		ORDER BY date ASC
	`

	rows, err := q.Query(ctx, query, workerID, month, factoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily wages: %w", err)
	}
	defer rows.Close()

	var records []wage.DailyWageRecord
	for rows.Next() {
		var rec wage.DailyWageRecord
		var breakdown, meta []byte

		err := rows.Scan(
			&rec.ID, &rec.FactoryID, &rec.WorkerID, &rec.Date,
			&breakdown, &meta, &rec.CreatedAt, &rec.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily wage: %w", err)
		}
		if err := json.Unmarshal(breakdown, &rec.Breakdown); err != nil {
			return nil, fmt.Errorf("failed to decode breakdown: %w", err)
		}
		if err := json.Unmarshal(meta, &rec.Meta); err != nil {
			return nil, fmt.Errorf("failed to decode meta: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily wages: %w", err)
	}

	return records, nil
}

// ========== PAYROLLS ==========

const payrollColumns = `
	p.id, p.factory_id, p.worker_id, p.month,
	p.summary, p.earnings, p.deductions, p.net_payable,
	p.status, p.paid_at, p.paid_by, p.created_at, p.updated_at
`

func scanPayroll(row pgx.Row) (wage.MonthlyPayroll, error) {
	var p wage.MonthlyPayroll
	var summary, earnings, deductions []byte

	err := row.Scan(
		&p.ID, &p.FactoryID, &p.WorkerID, &p.Month,
		&summary, &earnings, &deductions, &p.NetPayable,
		&p.Status, &p.PaidAt, &p.PaidBy, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return wage.MonthlyPayroll{}, err
	}

	if err := json.Unmarshal(summary, &p.Summary); err != nil {
		return wage.MonthlyPayroll{}, fmt.Errorf("failed to decode summary: %w", err)
	}
	if err := json.Unmarshal(earnings, &p.Earnings); err != nil {
		return wage.MonthlyPayroll{}, fmt.Errorf("failed to decode earnings: %w", err)
	}
	if err := json.Unmarshal(deductions, &p.Deductions); err != nil {
		return wage.MonthlyPayroll{}, fmt.Errorf("failed to decode deductions: %w", err)
	}

	return p, nil
}

// CreatePayroll implements wage.WageRepository.
func (r *wageRepository) CreatePayroll(ctx context.Context, payroll wage.MonthlyPayroll) (wage.MonthlyPayroll, error) {
	q := GetQuerier(ctx, r.db)

	summary, err := json.Marshal(payroll.Summary)
	if err != nil {
		return wage.MonthlyPayroll{}, fmt.Errorf("failed to encode summary: %w", err)
	}
	earnings, err := json.Marshal(payroll.Earnings)
	if err != nil {
		return wage.MonthlyPayroll{}, fmt.Errorf("failed to encode earnings: %w", err)
	}
	deductions, err := json.Marshal(payroll.Deductions)
	if err != nil {
		return wage.MonthlyPayroll{}, fmt.Errorf("failed to encode deductions: %w", err)
	}

	query := `
		INSERT INTO payrolls (factory_id, worker_id, month, summary, earnings, deductions, net_payable, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		payroll.FactoryID, payroll.WorkerID, payroll.Month,
		summary, earnings, deductions, payroll.NetPayable, payroll.Status,
	).Scan(&payroll.ID, &payroll.CreatedAt, &payroll.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_worker_month") {
			return wage.MonthlyPayroll{}, wage.ErrPayrollAlreadyExists
		}
		return wage.MonthlyPayroll{}, fmt.Errorf("failed to create payroll: %w", err)
	}

	return payroll, nil
}

// GetPayrollByID implements wage.WageRepository.
func (r *wageRepository) GetPayrollByID(ctx context.Context, id string, factoryID string) (wage.MonthlyPayroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `, w.full_name
		FROM payrolls p
		JOIN workers w ON w.id = p.worker_id
		WHERE p.id = $1 AND p.factory_id = $2
	`

	var p wage.MonthlyPayroll
	var summary, earnings, deductions []byte
	var workerName string

	err := q.QueryRow(ctx, query, id, factoryID).Scan(
		&p.ID, &p.FactoryID, &p.WorkerID, &p.Month,
		&summary, &earnings, &deductions, &p.NetPayable,
		&p.Status, &p.PaidAt, &p.PaidBy, &p.CreatedAt, &p.UpdatedAt,
		&workerName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return wage.MonthlyPayroll{}, wage.ErrPayrollNotFound
		}
		return wage.MonthlyPayroll{}, fmt.Errorf("failed to get payroll: %w", err)
	}

	if err := json.Unmarshal(summary, &p.Summary); err != nil {
		return wage.MonthlyPayroll{}, fmt.Errorf("failed to decode summary: %w", err)
	}
	if err := json.Unmarshal(earnings, &p.Earnings); err != nil {
		return wage.MonthlyPayroll{}, fmt.Errorf("failed to decode earnings: %w", err)
	}
	if err := json.Unmarshal(deductions, &p.Deductions); err != nil {
		return wage.MonthlyPayroll{}, fmt.Errorf("failed to decode deductions: %w", err)
	}
	p.WorkerName = &workerName

	return p, nil
}

// GetPayrollByWorkerAndMonth implements wage.WageRepository.
func (r *wageRepository) GetPayrollByWorkerAndMonth(ctx context.Context, workerID string, month string, factoryID string) (wage.MonthlyPayroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payrolls p
		WHERE p.worker_id = $1 AND p.month = $2 AND p.factory_id = $3
	`

	p, err := scanPayroll(q.QueryRow(ctx, query, workerID, month, factoryID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return wage.MonthlyPayroll{}, wage.ErrPayrollNotFound
		}
		return wage.MonthlyPayroll{}, fmt.Errorf("failed to get payroll: %w", err)
	}

	return p, nil
}

// ListPayrolls implements wage.WageRepository.
func (r *wageRepository) ListPayrolls(ctx context.Context, filter wage.PayrollFilter, factoryID string) ([]wage.MonthlyPayroll, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"p.factory_id = $1"}
	args := []interface{}{factoryID}
	argPos := 2

	if filter.Month != nil && *filter.Month != "" {
		conditions = append(conditions, fmt.Sprintf("p.month = $%d", argPos))
		args = append(args, *filter.Month)
		argPos++
	}
	if filter.WorkerID != nil && *filter.WorkerID != "" {
		conditions = append(conditions, fmt.Sprintf("p.worker_id = $%d", argPos))
		args = append(args, *filter.WorkerID)
		argPos++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", argPos))
		args = append(args, strings.ToUpper(*filter.Status))
		argPos++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := `SELECT COUNT(*) FROM payrolls p WHERE ` + whereClause

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payrolls: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT %s, w.full_name
		FROM payrolls p
		JOIN workers w ON w.id = p.worker_id
		WHERE %s
		ORDER BY p.month DESC, w.full_name ASC
		LIMIT $%d OFFSET $%d
	`, payrollColumns, whereClause, argPos, argPos+1)

	offset := (filter.Page - 1) * filter.Limit
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payrolls: %w", err)
	}
	defer rows.Close()

	var payrolls []wage.MonthlyPayroll
	for rows.Next() {
		var p wage.MonthlyPayroll
		var summary, earnings, deductions []byte
		var workerName string

		err := rows.Scan(
			&p.ID, &p.FactoryID, &p.WorkerID, &p.Month,
			&summary, &earnings, &deductions, &p.NetPayable,
			&p.Status, &p.PaidAt, &p.PaidBy, &p.CreatedAt, &p.UpdatedAt,
			&workerName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll: %w", err)
		}
		if err := json.Unmarshal(summary, &p.Summary); err != nil {
			return nil, 0, fmt.Errorf("failed to decode summary: %w", err)
		}
		if err := json.Unmarshal(earnings, &p.Earnings); err != nil {
			return nil, 0, fmt.Errorf("failed to decode earnings: %w", err)
		}
		if err := json.Unmarshal(deductions, &p.Deductions); err != nil {
			return nil, 0, fmt.Errorf("failed to decode deductions: %w", err)
		}
		p.WorkerName = &workerName
		payrolls = append(payrolls, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate payrolls: %w", err)
	}

	return payrolls, total, nil
}

// FinalizePayrolls implements wage.WageRepository. Only DRAFT rows move;
// anything already locked or paid makes the whole batch fail.
func (r *wageRepository) FinalizePayrolls(ctx context.Context, ids []string, status wage.PayrollStatus, userID string, factoryID string) error {
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			UPDATE payrolls
			SET status = $1,
				paid_at = CASE WHEN $1 = 'PAID' THEN NOW() ELSE paid_at END,
				paid_by = CASE WHEN $1 = 'PAID' THEN $2 ELSE paid_by END,
				updated_at = NOW()
			WHERE id = ANY($3) AND factory_id = $4 AND status = 'DRAFT'
		`

		tag, err := tx.Exec(ctx, query, status, userID, ids, factoryID)
		if err != nil {
			return fmt.Errorf("failed to finalize payrolls: %w", err)
		}
		if tag.RowsAffected() != int64(len(ids)) {
			return wage.ErrPayrollNotDraft
		}

		return nil
	})
}
