package shift

import (
	"context"
	"errors"
	"fmt"

	"github.com/factorydesk/workforce-backend-go/internal/domain/shift"
	"github.com/factorydesk/workforce-backend-go/internal/pkg/database"
	"github.com/go-chi/jwtauth/v5"
)

type ShiftServiceImpl struct {
	db        *database.DB
	shiftRepo shift.ShiftRepository
}

func NewShiftService(db *database.DB, shiftRepo shift.ShiftRepository) shift.ShiftService {
	return &ShiftServiceImpl{
		db:        db,
		shiftRepo: shiftRepo,
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

// CreateShift implements shift.ShiftService.
func (s *ShiftServiceImpl) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	factoryID, err := factoryIDFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	data := shift.ShiftConfig{
		FactoryID:         factoryID,
		Name:              req.Name,
		StartTime:         req.StartTime,
		EndTime:           req.EndTime,
		GracePeriodMins:   req.GracePeriodMins,
		MaxGraceAllowed:   req.MaxGraceAllowed,
		BreakDurationMins: req.BreakDurationMins,
		MinOvertimeMins:   req.MinOvertimeMins,
	}

	created, err := s.shiftRepo.Create(ctx, data)
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return mapShiftToResponse(created), nil
}

// GetShift implements shift.ShiftService.
func (s *ShiftServiceImpl) GetShift(ctx context.Context, id string) (shift.ShiftResponse, error) {
	factoryID, err := factoryIDFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	cfg, err := s.shiftRepo.GetByID(ctx, id, factoryID)
	if err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			return shift.ShiftResponse{}, shift.ErrShiftNotFound
		}
		return shift.ShiftResponse{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return mapShiftToResponse(cfg), nil
}

// ListShifts implements shift.ShiftService.
func (s *ShiftServiceImpl) ListShifts(ctx context.Context) ([]shift.ShiftResponse, error) {
	factoryID, err := factoryIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	shifts, err := s.shiftRepo.List(ctx, factoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}

	responses := make([]shift.ShiftResponse, 0, len(shifts))
	for _, cfg := range shifts {
		responses = append(responses, mapShiftToResponse(cfg))
	}

	return responses, nil
}

// UpdateShift implements shift.ShiftService.
func (s *ShiftServiceImpl) UpdateShift(ctx context.Context, req shift.UpdateShiftRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}

	factoryID, err := factoryIDFromContext(ctx)
	if err != nil {
		return shift.ShiftResponse{}, err
	}

	cfg, err := s.shiftRepo.GetByID(ctx, req.ID, factoryID)
	if err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			return shift.ShiftResponse{}, shift.ErrShiftNotFound
		}
		return shift.ShiftResponse{}, fmt.Errorf("failed to get shift: %w", err)
	}

	if req.Name != nil {
		cfg.Name = *req.Name
	}
	if req.StartTime != nil {
		cfg.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		cfg.EndTime = *req.EndTime
	}
	if req.GracePeriodMins != nil {
		cfg.GracePeriodMins = *req.GracePeriodMins
	}
	if req.MaxGraceAllowed != nil {
		cfg.MaxGraceAllowed = *req.MaxGraceAllowed
	}
	if req.BreakDurationMins != nil {
		cfg.BreakDurationMins = *req.BreakDurationMins
	}
	if req.MinOvertimeMins != nil {
		cfg.MinOvertimeMins = *req.MinOvertimeMins
	}

	if err := s.shiftRepo.Update(ctx, cfg); err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to update shift: %w", err)
	}

	return mapShiftToResponse(cfg), nil
}

// DeleteShift implements shift.ShiftService.
func (s *ShiftServiceImpl) DeleteShift(ctx context.Context, id string) error {
	factoryID, err := factoryIDFromContext(ctx)
	if err != nil {
		return err
	}

	assigned, err := s.shiftRepo.CountAssignedWorkers(ctx, id, factoryID)
	if err != nil {
		return fmt.Errorf("failed to count assigned workers: %w", err)
	}
	if assigned > 0 {
		return shift.ErrShiftInUse
	}

	if err := s.shiftRepo.Delete(ctx, id, factoryID); err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			return shift.ErrShiftNotFound
		}
		return fmt.Errorf("failed to delete shift: %w", err)
	}

	return nil
}

func mapShiftToResponse(cfg shift.ShiftConfig) shift.ShiftResponse {
	return shift.ShiftResponse{
		ID:                cfg.ID,
		Name:              cfg.Name,
		StartTime:         cfg.StartTime,
		EndTime:           cfg.EndTime,
		GracePeriodMins:   cfg.GracePeriodMins,
		MaxGraceAllowed:   cfg.MaxGraceAllowed,
		BreakDurationMins: cfg.BreakDurationMins,
		MinOvertimeMins:   cfg.MinOvertimeMins,
		DurationHours:     cfg.DurationHours(),
	}
}
