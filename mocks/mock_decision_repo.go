package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"partsync/internal/domain"
)

// MockDecisionRepo is a mock implementation of port.DecisionRepository.
type MockDecisionRepo struct {
	mock.Mock
}

func (m *MockDecisionRepo) Upsert(ctx context.Context, decision *domain.SuggestionDecision) error {
	args := m.Called(ctx, decision)
	return args.Error(0)
}

func (m *MockDecisionRepo) ListByRun(ctx context.Context, runID uuid.UUID) ([]domain.SuggestionDecision, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SuggestionDecision), args.Error(1)
}
