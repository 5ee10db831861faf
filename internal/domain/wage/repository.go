package wage

import "context"

// WageRepository defines data access for daily wage projections and
// monthly payrolls.
type WageRepository interface {
	// UpsertDailyWage replaces the projection for its (factory, worker, date) key.
	UpsertDailyWage(ctx context.Context, record DailyWageRecord) (DailyWageRecord, error)

	// ListDailyWagesByMonth returns a worker's daily wages dated within month (YYYY-MM).
	ListDailyWagesByMonth(ctx context.Context, workerID string, month string, factoryID string) ([]DailyWageRecord, error)

	CreatePayroll(ctx context.Context, payroll MonthlyPayroll) (MonthlyPayroll, error)
	GetPayrollByID(ctx context.Context, id string, factoryID string) (MonthlyPayroll, error)
	GetPayrollByWorkerAndMonth(ctx context.Context, workerID string, month string, factoryID string) (MonthlyPayroll, error)
	ListPayrolls(ctx context.Context, filter PayrollFilter, factoryID string) ([]MonthlyPayroll, int64, error)

	// FinalizePayrolls moves DRAFT payrolls to LOCKED or PAID.
	FinalizePayrolls(ctx context.Context, ids []string, status PayrollStatus, userID string, factoryID string) error
}
