package shift

import "context"

// ShiftRepository defines data access for shift configurations.
type ShiftRepository interface {
	Create(ctx context.Context, shift ShiftConfig) (ShiftConfig, error)
	GetByID(ctx context.Context, id string, factoryID string) (ShiftConfig, error)
	List(ctx context.Context, factoryID string) ([]ShiftConfig, error)
	Update(ctx context.Context, shift ShiftConfig) error
	Delete(ctx context.Context, id string, factoryID string) error
	CountAssignedWorkers(ctx context.Context, id string, factoryID string) (int, error)
}
