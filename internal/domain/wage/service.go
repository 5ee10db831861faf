package wage

import "context"

// WageService defines business logic for wage and payroll derivation
type WageService interface {
	// ComputeDailyWage recomputes and stores the projection for one
	// worker and date (YYYY-MM-DD).
	ComputeDailyWage(ctx context.Context, workerID string, date string) (DailyWageResponse, error)

	// GeneratePayroll folds a month of daily wages plus approved
	// advances into DRAFT payrolls for the requested workers.
	GeneratePayroll(ctx context.Context, req GeneratePayrollRequest) ([]PayrollResponse, error)

	GetPayroll(ctx context.Context, id string) (PayrollResponse, error)
	ListPayrolls(ctx context.Context, filter PayrollFilter) (ListPayrollResponse, error)

	// FinalizePayroll is the administrative DRAFT → LOCKED/PAID transition.
	FinalizePayroll(ctx context.Context, req FinalizePayrollRequest) error
}
