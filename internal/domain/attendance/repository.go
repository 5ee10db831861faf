package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access for attendance records.
// All methods take factoryID to prevent cross-factory data access.
type AttendanceRepository interface {
	// Upsert inserts or replaces the record for its (factory, worker, date) key.
	Upsert(ctx context.Context, record AttendanceRecord) (AttendanceRecord, error)

	// GetByID retrieves a record by ID with factory isolation
	GetByID(ctx context.Context, id string, factoryID string) (AttendanceRecord, error)

	// GetByWorkerAndDate returns nil when no record exists yet for that day.
	GetByWorkerAndDate(ctx context.Context, workerID string, date time.Time, factoryID string) (*AttendanceRecord, error)

	// GetByWorkerAndDateForUpdate is GetByWorkerAndDate with a row lock; must
	// run inside a transaction so concurrent punch writes serialize per day.
	GetByWorkerAndDateForUpdate(ctx context.Context, workerID string, date time.Time, factoryID string) (*AttendanceRecord, error)

	// List retrieves records with filters and pagination
	List(ctx context.Context, filter AttendanceFilter, factoryID string) ([]AttendanceRecord, int64, error)

	// ListByWorkerAndMonth returns all of a worker's records dated within month (YYYY-MM).
	ListByWorkerAndMonth(ctx context.Context, workerID string, month string, factoryID string) ([]AttendanceRecord, error)

	// CountLateThisMonth counts records flagged late for the worker in month,
	// excluding excludeID (the record currently being resolved).
	CountLateThisMonth(ctx context.Context, workerID string, month string, excludeID string, factoryID string) (int, error)
}
