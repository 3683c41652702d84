package port

import (
	"context"

	"github.com/google/uuid"

	"partsync/internal/domain"
)

// RunRepository defines the contract for reconciliation run persistence.
type RunRepository interface {
	Create(ctx context.Context, run *domain.ReconciliationRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ReconciliationRun, error)
	List(ctx context.Context, filter domain.RunFilter) ([]domain.ReconciliationRun, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.RunStatus) error
	GetStats(ctx context.Context) (*domain.RunStats, error)
}

// DecisionRepository defines the contract for operator decision persistence.
// A run holds at most one decision per property key; a newer decision replaces the older one.
type DecisionRepository interface {
	Upsert(ctx context.Context, decision *domain.SuggestionDecision) error
	ListByRun(ctx context.Context, runID uuid.UUID) ([]domain.SuggestionDecision, error)
}
