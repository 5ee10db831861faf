package worker

import "context"

// WorkerService defines business logic for worker management
type WorkerService interface {
	CreateWorker(ctx context.Context, req CreateWorkerRequest) (WorkerResponse, error)
	GetWorker(ctx context.Context, id string) (WorkerResponse, error)
	ListWorkers(ctx context.Context, filter WorkerFilter) (ListWorkerResponse, error)
	UpdateWorker(ctx context.Context, req UpdateWorkerRequest) (WorkerResponse, error)
	DeleteWorker(ctx context.Context, id string) error
}
