package worker

import "context"

// WorkerRepository defines data access for workers.
type WorkerRepository interface {
	Create(ctx context.Context, worker Worker) (Worker, error)
	GetByID(ctx context.Context, id string, factoryID string) (Worker, error)
	List(ctx context.Context, filter WorkerFilter, factoryID string) ([]Worker, int64, error)
	ListActive(ctx context.Context, factoryID string) ([]Worker, error)
	Update(ctx context.Context, worker Worker) error
	Delete(ctx context.Context, id string, factoryID string) error
}
