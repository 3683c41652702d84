package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"partsync/internal/domain"
	"partsync/internal/service"
	"partsync/mocks"
)

func newReviewService() (service.ReviewService, *mocks.MockRunRepo, *mocks.MockDecisionRepo) {
	runRepo := new(mocks.MockRunRepo)
	decisionRepo := new(mocks.MockDecisionRepo)
	return service.NewReviewService(runRepo, decisionRepo, zap.NewNop()), runRepo, decisionRepo
}

// gapFillRun has two suggestions: Revision (gap-fill) and F210 (deburr flag).
// Print is confirmed and already current, so it produces nothing.
func gapFillRun(t *testing.T) *domain.ReconciliationRun {
	return storedRun(t,
		&domain.PartRecord{PartNumber: "100-200"},
		&domain.DrawingRecord{
			PartNumber: "100-200",
			Revision:   "C",
			RoutingHints: []domain.RoutingHint{
				{Operation: domain.RoutingOpDeburr, Confidence: 0.9},
			},
		},
		map[string]string{"Print": "100-200"},
	)
}

func TestReviewService_Decide_Partial(t *testing.T) {
	svc, runRepo, decisionRepo := newReviewService()
	run := gapFillRun(t)
	require.Equal(t, 2, run.SuggestionCount)

	runRepo.On("GetByID", mock.Anything, run.ID).Return(run, nil)
	decisionRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(d *domain.SuggestionDecision) bool {
		return d.PropertyKey == "Revision" && d.Value == "C" && d.DecidedBy == "jlee"
	})).Return(nil)
	decisionRepo.On("ListByRun", mock.Anything, run.ID).Return([]domain.SuggestionDecision{
		{RunID: run.ID, PropertyKey: "Revision", Value: "C", Decision: domain.DecisionAccepted},
	}, nil)
	runRepo.On("UpdateStatus", mock.Anything, run.ID, domain.RunStatusPartial).Return(nil)

	out, err := svc.Decide(context.Background(), &service.DecideInput{
		RunID:     run.ID,
		DecidedBy: "jlee",
		Items:     []service.DecisionItem{{PropertyKey: "Revision", Decision: domain.DecisionAccepted}},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusPartial, out.Status)
	assert.Len(t, out.Decisions, 1)
	runRepo.AssertExpectations(t)
	decisionRepo.AssertExpectations(t)
}

func TestReviewService_Decide_AllDecidedIsReviewed(t *testing.T) {
	svc, runRepo, decisionRepo := newReviewService()
	run := gapFillRun(t)
	run.Status = domain.RunStatusPartial

	runRepo.On("GetByID", mock.Anything, run.ID).Return(run, nil)
	decisionRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)
	decisionRepo.On("ListByRun", mock.Anything, run.ID).Return([]domain.SuggestionDecision{
		{PropertyKey: "Revision", Decision: domain.DecisionAccepted},
		{PropertyKey: "F210", Decision: domain.DecisionRejected},
	}, nil)
	runRepo.On("UpdateStatus", mock.Anything, run.ID, domain.RunStatusReviewed).Return(nil)

	out, err := svc.Decide(context.Background(), &service.DecideInput{
		RunID: run.ID,
		Items: []service.DecisionItem{{PropertyKey: "F210", Decision: domain.DecisionRejected}},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RunStatusReviewed, out.Status)
}

func TestReviewService_Decide_RejectsWholeBatch(t *testing.T) {
	tests := []struct {
		name    string
		items   []service.DecisionItem
		wantErr error
	}{
		{
			name: "invalid decision",
			items: []service.DecisionItem{
				{PropertyKey: "Revision", Decision: domain.DecisionAccepted},
				{PropertyKey: "F210", Decision: "maybe"},
			},
			wantErr: domain.ErrInvalidDecision,
		},
		{
			name: "unknown key",
			items: []service.DecisionItem{
				{PropertyKey: "Revision", Decision: domain.DecisionAccepted},
				{PropertyKey: "Description", Decision: domain.DecisionAccepted},
			},
			wantErr: domain.ErrUnknownSuggestion,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, runRepo, decisionRepo := newReviewService()
			run := gapFillRun(t)
			runRepo.On("GetByID", mock.Anything, run.ID).Return(run, nil)

			_, err := svc.Decide(context.Background(), &service.DecideInput{RunID: run.ID, Items: tt.items})
			assert.ErrorIs(t, err, tt.wantErr)
			decisionRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		})
	}
}

func TestReviewService_Decide_RunNotFound(t *testing.T) {
	svc, runRepo, _ := newReviewService()
	id := uuid.New()
	runRepo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrRunNotFound)

	_, err := svc.Decide(context.Background(), &service.DecideInput{RunID: id})
	assert.ErrorIs(t, err, domain.ErrRunNotFound)
}

func TestReviewService_ApprovedProperties(t *testing.T) {
	svc, runRepo, decisionRepo := newReviewService()
	run := gapFillRun(t)

	runRepo.On("GetByID", mock.Anything, run.ID).Return(run, nil)
	decisionRepo.On("ListByRun", mock.Anything, run.ID).Return([]domain.SuggestionDecision{
		{PropertyKey: "Revision", Decision: domain.DecisionAccepted},
		{PropertyKey: "F210", Decision: domain.DecisionRejected},
	}, nil)

	props, err := svc.ApprovedProperties(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Revision": "C"}, props)
}

func TestReviewService_ApprovedProperties_NothingDecided(t *testing.T) {
	svc, runRepo, decisionRepo := newReviewService()
	run := gapFillRun(t)

	runRepo.On("GetByID", mock.Anything, run.ID).Return(run, nil)
	decisionRepo.On("ListByRun", mock.Anything, run.ID).Return([]domain.SuggestionDecision{}, nil)

	props, err := svc.ApprovedProperties(context.Background(), run.ID)
	require.NoError(t, err)
	assert.Empty(t, props)
}
