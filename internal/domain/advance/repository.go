package advance

import "context"

// AdvanceRepository defines data access for cash advances.
type AdvanceRepository interface {
	Create(ctx context.Context, advance Advance) (Advance, error)
	GetByID(ctx context.Context, id string, factoryID string) (Advance, error)
	List(ctx context.Context, filter AdvanceFilter, factoryID string) ([]Advance, int64, error)

	// ListApprovedByWorkerAndMonth returns APPROVED advances dated within
	// month (YYYY-MM); these are the only ones payroll deducts.
	ListApprovedByWorkerAndMonth(ctx context.Context, workerID string, month string, factoryID string) ([]Advance, error)

	UpdateStatus(ctx context.Context, id string, status AdvanceStatus, factoryID string) error
	Delete(ctx context.Context, id string, factoryID string) error
}
