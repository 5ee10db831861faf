package advance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/factorydesk/workforce-backend-go/internal/domain/advance"
	"github.com/factorydesk/workforce-backend-go/internal/domain/worker"
	"github.com/factorydesk/workforce-backend-go/internal/pkg/database"
	"github.com/go-chi/jwtauth/v5"
)

type AdvanceServiceImpl struct {
	db          *database.DB
	advanceRepo advance.AdvanceRepository
	workerRepo  worker.WorkerRepository
}

func NewAdvanceService(
	db *database.DB,
	advanceRepo advance.AdvanceRepository,
	workerRepo worker.WorkerRepository,
) advance.AdvanceService {
	return &AdvanceServiceImpl{
		db:          db,
		advanceRepo: advanceRepo,
		workerRepo:  workerRepo,
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

// CreateAdvance implements advance.AdvanceService.
func (s *AdvanceServiceImpl) CreateAdvance(ctx context.Context, req advance.CreateAdvanceRequest) (advance.AdvanceResponse, error) {
	if err := req.Validate(); err != nil {
		return advance.AdvanceResponse{}, err
	}

	factoryID, err := factoryIDFromContext(ctx)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	w, err := s.workerRepo.GetByID(ctx, req.WorkerID, factoryID)
	if err != nil {
		if errors.Is(err, worker.ErrWorkerNotFound) {
			return advance.AdvanceResponse{}, worker.ErrWorkerNotFound
		}
		return advance.AdvanceResponse{}, fmt.Errorf("failed to get worker: %w", err)
	}
	if !w.Active {
		return advance.AdvanceResponse{}, worker.ErrWorkerInactive
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return advance.AdvanceResponse{}, fmt.Errorf("invalid date %q: %w", req.Date, err)
	}

	data := advance.Advance{
		FactoryID: factoryID,
		WorkerID:  req.WorkerID,
		Amount:    req.Amount,
		Date:      date,
		Reason:    req.Reason,
		Status:    advance.StatusPending,
	}

	created, err := s.advanceRepo.Create(ctx, data)
	if err != nil {
		return advance.AdvanceResponse{}, fmt.Errorf("failed to create advance: %w", err)
	}

	return mapAdvanceToResponse(created), nil
}

// GetAdvance implements advance.AdvanceService.
func (s *AdvanceServiceImpl) GetAdvance(ctx context.Context, id string) (advance.AdvanceResponse, error) {
	factoryID, err := factoryIDFromContext(ctx)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	adv, err := s.advanceRepo.GetByID(ctx, id, factoryID)
	if err != nil {
		if errors.Is(err, advance.ErrAdvanceNotFound) {
			return advance.AdvanceResponse{}, advance.ErrAdvanceNotFound
		}
		return advance.AdvanceResponse{}, fmt.Errorf("failed to get advance: %w", err)
	}

	return mapAdvanceToResponse(adv), nil
}

// ListAdvances implements advance.AdvanceService.
func (s *AdvanceServiceImpl) ListAdvances(ctx context.Context, filter advance.AdvanceFilter) (advance.ListAdvanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return advance.ListAdvanceResponse{}, err
	}

	factoryID, err := factoryIDFromContext(ctx)
	if err != nil {
		return advance.ListAdvanceResponse{}, err
	}

	advances, total, err := s.advanceRepo.List(ctx, filter, factoryID)
	if err != nil {
		return advance.ListAdvanceResponse{}, fmt.Errorf("failed to list advances: %w", err)
	}

	responses := make([]advance.AdvanceResponse, 0, len(advances))
	for _, adv := range advances {
		responses = append(responses, mapAdvanceToResponse(adv))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return advance.ListAdvanceResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Advances:   responses,
	}, nil
}

// ApproveAdvance implements advance.AdvanceService.
func (s *AdvanceServiceImpl) ApproveAdvance(ctx context.Context, id string) (advance.AdvanceResponse, error) {
	return s.transition(ctx, id, advance.StatusPending, advance.StatusApproved)
}

// MarkRepaid implements advance.AdvanceService.
func (s *AdvanceServiceImpl) MarkRepaid(ctx context.Context, id string) (advance.AdvanceResponse, error) {
	return s.transition(ctx, id, advance.StatusApproved, advance.StatusRepaid)
}

// transition moves an advance from one status to the next. Anything
// outside PENDING -> APPROVED -> REPAID is rejected.
func (s *AdvanceServiceImpl) transition(ctx context.Context, id string, from, to advance.AdvanceStatus) (advance.AdvanceResponse, error) {
	factoryID, err := factoryIDFromContext(ctx)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	adv, err := s.advanceRepo.GetByID(ctx, id, factoryID)
	if err != nil {
		if errors.Is(err, advance.ErrAdvanceNotFound) {
			return advance.AdvanceResponse{}, advance.ErrAdvanceNotFound
		}
		return advance.AdvanceResponse{}, fmt.Errorf("failed to get advance: %w", err)
	}

	if adv.Status != from {
		return advance.AdvanceResponse{}, advance.ErrAdvanceAlreadyProcessed
	}

	if err := s.advanceRepo.UpdateStatus(ctx, id, to, factoryID); err != nil {
		return advance.AdvanceResponse{}, fmt.Errorf("failed to update advance status: %w", err)
	}

	adv.Status = to
	return mapAdvanceToResponse(adv), nil
}

// DeleteAdvance implements advance.AdvanceService.
func (s *AdvanceServiceImpl) DeleteAdvance(ctx context.Context, id string) error {
	factoryID, err := factoryIDFromContext(ctx)
	if err != nil {
		return err
	}

	adv, err := s.advanceRepo.GetByID(ctx, id, factoryID)
	if err != nil {
		if errors.Is(err, advance.ErrAdvanceNotFound) {
			return advance.ErrAdvanceNotFound
		}
		return fmt.Errorf("failed to get advance: %w", err)
	}

	// Approved or repaid advances are part of payroll history
	if adv.Status != advance.StatusPending {
		return advance.ErrAdvanceAlreadyProcessed
	}

	if err := s.advanceRepo.Delete(ctx, id, factoryID); err != nil {
		return fmt.Errorf("failed to delete advance: %w", err)
	}

	return nil
}

func mapAdvanceToResponse(adv advance.Advance) advance.AdvanceResponse {
	workerName := ""
	if adv.WorkerName != nil {
		workerName = *adv.WorkerName
	}

	return advance.AdvanceResponse{
		ID:         adv.ID,
		WorkerID:   adv.WorkerID,
		WorkerName: workerName,
		Amount:     adv.Amount,
		Date:       adv.Date.Format("2006-01-02"),
		Reason:     adv.Reason,
		Status:     string(adv.Status),
		CreatedAt:  adv.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
