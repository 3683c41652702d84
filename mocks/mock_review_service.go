package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"partsync/internal/domain"
	"partsync/internal/service"
)

// MockReviewService is a mock implementation of service.ReviewService.
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Decide(ctx context.Context, input *service.DecideInput) (*service.ReviewOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReviewOutput), args.Error(1)
}

func (m *MockReviewService) ListDecisions(ctx context.Context, runID uuid.UUID) ([]domain.SuggestionDecision, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SuggestionDecision), args.Error(1)
}

func (m *MockReviewService) ApprovedProperties(ctx context.Context, runID uuid.UUID) (map[string]string, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}
