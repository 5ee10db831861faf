package worker

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/factorydesk/workforce-backend-go/internal/domain/shift"
	"github.com/factorydesk/workforce-backend-go/internal/domain/worker"
	"github.com/factorydesk/workforce-backend-go/internal/pkg/database"
	"github.com/go-chi/jwtauth/v5"
)

type WorkerServiceImpl struct {
	db         *database.DB
	workerRepo worker.WorkerRepository
	shiftRepo  shift.ShiftRepository
}

func NewWorkerService(
	db *database.DB,
	workerRepo worker.WorkerRepository,
	shiftRepo shift.ShiftRepository,
) worker.WorkerService {
	return &WorkerServiceImpl{
		db:         db,
		workerRepo: workerRepo,
		shiftRepo:  shiftRepo,
	}
}

func factoryIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	factoryID, ok := claims["factory_id"].(string)
	if !ok || factoryID == "" {
		return "", fmt.Errorf("factory_id claim is missing or invalid")
	}

	return factoryID, nil
}

// CreateWorker implements worker.WorkerService.
func (s *WorkerServiceImpl) CreateWorker(ctx context.Context, req worker.CreateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	factoryID, err := factoryIDFromContext(ctx)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	// The shift must exist before a worker can be assigned to it
	if _, err := s.shiftRepo.GetByID(ctx, req.ShiftID, factoryID); err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			return worker.WorkerResponse{}, shift.ErrShiftNotFound
		}
		return worker.WorkerResponse{}, fmt.Errorf("failed to get shift: %w", err)
	}

	data := worker.Worker{
		FactoryID:   factoryID,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		PhotoURL:    req.PhotoURL,
		ShiftID:     req.ShiftID,
		Wage:        req.Wage.ToConfig(),
		Active:      true,
	}

	created, err := s.workerRepo.Create(ctx, data)
	if err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("failed to create worker: %w", err)
	}

	return mapWorkerToResponse(created), nil
}

// GetWorker implements worker.WorkerService.
func (s *WorkerServiceImpl) GetWorker(ctx context.Context, id string) (worker.WorkerResponse, error) {
	factoryID, err := factoryIDFromContext(ctx)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	w, err := s.workerRepo.GetByID(ctx, id, factoryID)
	if err != nil {
		if errors.Is(err, worker.ErrWorkerNotFound) {
			return worker.WorkerResponse{}, worker.ErrWorkerNotFound
		}
		return worker.WorkerResponse{}, fmt.Errorf("failed to get worker: %w", err)
	}

	return mapWorkerToResponse(w), nil
}

// ListWorkers implements worker.WorkerService.
func (s *WorkerServiceImpl) ListWorkers(ctx context.Context, filter worker.WorkerFilter) (worker.ListWorkerResponse, error) {
	if err := filter.Validate(); err != nil {
		return worker.ListWorkerResponse{}, err
	}

	factoryID, err := factoryIDFromContext(ctx)
	if err != nil {
		return worker.ListWorkerResponse{}, err
	}

	workers, total, err := s.workerRepo.List(ctx, filter, factoryID)
	if err != nil {
		return worker.ListWorkerResponse{}, fmt.Errorf("failed to list workers: %w", err)
	}

	responses := make([]worker.WorkerResponse, 0, len(workers))
	for _, w := range workers {
		responses = append(responses, mapWorkerToResponse(w))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return worker.ListWorkerResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Workers:    responses,
	}, nil
}

// UpdateWorker implements worker.WorkerService.
func (s *WorkerServiceImpl) UpdateWorker(ctx context.Context, req worker.UpdateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	factoryID, err := factoryIDFromContext(ctx)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	w, err := s.workerRepo.GetByID(ctx, req.ID, factoryID)
	if err != nil {
		if errors.Is(err, worker.ErrWorkerNotFound) {
			return worker.WorkerResponse{}, worker.ErrWorkerNotFound
		}
		return worker.WorkerResponse{}, fmt.Errorf("failed to get worker: %w", err)
	}

	if req.FullName != nil {
		w.FullName = *req.FullName
	}
	if req.PhoneNumber != nil {
		w.PhoneNumber = req.PhoneNumber
	}
	if req.PhotoURL != nil {
		w.PhotoURL = req.PhotoURL
	}
	if req.ShiftID != nil && *req.ShiftID != "" {
		if _, err := s.shiftRepo.GetByID(ctx, *req.ShiftID, factoryID); err != nil {
			if errors.Is(err, shift.ErrShiftNotFound) {
				return worker.WorkerResponse{}, shift.ErrShiftNotFound
			}
			return worker.WorkerResponse{}, fmt.Errorf("failed to get shift: %w", err)
		}
		w.ShiftID = *req.ShiftID
	}
	if req.Active != nil {
		w.Active = *req.Active
	}
	if req.Wage != nil {
		w.Wage = req.Wage.ToConfig()
	}

	if err := s.workerRepo.Update(ctx, w); err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("failed to update worker: %w", err)
	}

	updated, err := s.workerRepo.GetByID(ctx, req.ID, factoryID)
	if err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("failed to get updated worker: %w", err)
	}

	return mapWorkerToResponse(updated), nil
}

// DeleteWorker implements worker.WorkerService.
func (s *WorkerServiceImpl) DeleteWorker(ctx context.Context, id string) error {
	factoryID, err := factoryIDFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.workerRepo.Delete(ctx, id, factoryID); err != nil {
		if errors.Is(err, worker.ErrWorkerNotFound) {
			return worker.ErrWorkerNotFound
		}
		return fmt.Errorf("failed to delete worker: %w", err)
	}

	return nil
}

func mapWorkerToResponse(w worker.Worker) worker.WorkerResponse {
	return worker.WorkerResponse{
		ID:          w.ID,
		FullName:    w.FullName,
		PhoneNumber: w.PhoneNumber,
		PhotoURL:    w.PhotoURL,
		ShiftID:     w.ShiftID,
		Wage:        w.Wage,
		Active:      w.Active,
		CreatedAt:   w.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:   w.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}
