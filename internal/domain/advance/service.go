package advance

import "context"

// AdvanceService defines business logic for cash advances
type AdvanceService interface {
	CreateAdvance(ctx context.Context, req CreateAdvanceRequest) (AdvanceResponse, error)
	GetAdvance(ctx context.Context, id string) (AdvanceResponse, error)
	ListAdvances(ctx context.Context, filter AdvanceFilter) (ListAdvanceResponse, error)
	ApproveAdvance(ctx context.Context, id string) (AdvanceResponse, error)
	MarkRepaid(ctx context.Context, id string) (AdvanceResponse, error)
	DeleteAdvance(ctx context.Context, id string) error
}
