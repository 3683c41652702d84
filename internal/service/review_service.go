package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"partsync/internal/domain"
	"partsync/internal/metrics"
	"partsync/internal/port"
	"partsync/internal/property"
	"partsync/internal/reconcile"
)

// DecisionItem is one accept/reject verdict submitted by an operator.
type DecisionItem struct {
	PropertyKey string          `json:"property_key" binding:"required"`
	Decision    domain.Decision `json:"decision" binding:"required"`
	Note        string          `json:"note"`
}

// DecideInput is the DTO for recording decisions on a run.
type DecideInput struct {
	RunID     uuid.UUID
	DecidedBy string
	Items     []DecisionItem
}

// ReviewOutput is a run's decisions together with its resulting status.
type ReviewOutput struct {
	Status    domain.RunStatus            `json:"status"`
	Decisions []domain.SuggestionDecision `json:"decisions"`
}

// ReviewService records operator decisions and produces the approved property map
// the property writer applies. Nothing is written to a document without acceptance.
type ReviewService interface {
	Decide(ctx context.Context, input *DecideInput) (*ReviewOutput, error)
	ListDecisions(ctx context.Context, runID uuid.UUID) ([]domain.SuggestionDecision, error)
	ApprovedProperties(ctx context.Context, runID uuid.UUID) (map[string]string, error)
}

type reviewService struct {
	runRepo      port.RunRepository
	decisionRepo port.DecisionRepository
	logger       *zap.Logger
}

// NewReviewService creates a new ReviewService implementation.
func NewReviewService(runRepo port.RunRepository, decisionRepo port.DecisionRepository, logger *zap.Logger) ReviewService {
	return &reviewService{
		runRepo:      runRepo,
		decisionRepo: decisionRepo,
		logger:       logger,
	}
}

func (s *reviewService) Decide(ctx context.Context, input *DecideInput) (*ReviewOutput, error) {
	run, err := s.runRepo.GetByID(ctx, input.RunID)
	if err != nil {
		return nil, err
	}
	payload, err := decodeRunPayload(run)
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]property.PropertySuggestion, len(payload.Suggestions))
	for _, sug := range payload.Suggestions {
		byKey[sug.Key] = sug
	}

	// Validate the whole batch before writing any of it.
	for _, item := range input.Items {
		if item.Decision != domain.DecisionAccepted && item.Decision != domain.DecisionRejected {
			return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDecision, item.Decision)
		}
		if _, ok := byKey[item.PropertyKey]; !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSuggestion, item.PropertyKey)
		}
	}

	for _, item := range input.Items {
		d := &domain.SuggestionDecision{
			ID:          uuid.New(),
			RunID:       run.ID,
			PropertyKey: item.PropertyKey,
			Value:       byKey[item.PropertyKey].Value,
			Decision:    item.Decision,
			DecidedBy:   input.DecidedBy,
			Note:        item.Note,
		}
		if err := s.decisionRepo.Upsert(ctx, d); err != nil {
			return nil, fmt.Errorf("recording decision for %s: %w", item.PropertyKey, err)
		}
		metrics.RecordDecision(item.Decision)
	}

	decisions, err := s.decisionRepo.ListByRun(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	status := reviewStatus(payload.Suggestions, decisions)
	if status != run.Status {
		if err := s.runRepo.UpdateStatus(ctx, run.ID, status); err != nil {
			return nil, err
		}
	}

	s.logger.Info("review decisions recorded",
		zap.String("run_id", run.ID.String()),
		zap.String("decided_by", input.DecidedBy),
		zap.Int("items", len(input.Items)),
		zap.String("status", string(status)),
	)
	return &ReviewOutput{Status: status, Decisions: decisions}, nil
}

// reviewStatus is reviewed once every suggestion has a decision.
func reviewStatus(suggestions []property.PropertySuggestion, decisions []domain.SuggestionDecision) domain.RunStatus {
	if len(decisions) == 0 {
		return domain.RunStatusPendingReview
	}
	decided := make(map[string]bool, len(decisions))
	for _, d := range decisions {
		decided[d.PropertyKey] = true
	}
	for _, sug := range suggestions {
		if !decided[sug.Key] {
			return domain.RunStatusPartial
		}
	}
	return domain.RunStatusReviewed
}

func (s *reviewService) ListDecisions(ctx context.Context, runID uuid.UUID) ([]domain.SuggestionDecision, error) {
	if _, err := s.runRepo.GetByID(ctx, runID); err != nil {
		return nil, err
	}
	return s.decisionRepo.ListByRun(ctx, runID)
}

func (s *reviewService) ApprovedProperties(ctx context.Context, runID uuid.UUID) (map[string]string, error) {
	run, err := s.runRepo.GetByID(ctx, runID)
	if err != nil {
		return nil, err
	}
	payload, err := decodeRunPayload(run)
	if err != nil {
		return nil, err
	}
	decisions, err := s.decisionRepo.ListByRun(ctx, runID)
	if err != nil {
		return nil, err
	}

	accepted := make(map[string]bool, len(decisions))
	for _, d := range decisions {
		if d.Decision == domain.DecisionAccepted {
			accepted[d.PropertyKey] = true
		}
	}
	out := make(map[string]string)
	for _, sug := range payload.Suggestions {
		if accepted[sug.Key] {
			out[sug.Key] = sug.Value
		}
	}
	return out, nil
}

// runPayload is the decoded JSON stored on a run.
type runPayload struct {
	Result      *reconcile.Result
	Suggestions []property.PropertySuggestion
	Unassigned  []property.UnassignedSuggestion
}

func decodeRunPayload(run *domain.ReconciliationRun) (*runPayload, error) {
	p := &runPayload{Result: &reconcile.Result{}}
	if len(run.Result) > 0 {
		if err := json.Unmarshal(run.Result, p.Result); err != nil {
			return nil, fmt.Errorf("decoding run %s result: %w", run.ID, err)
		}
	}
	if len(run.Suggestions) > 0 {
		if err := json.Unmarshal(run.Suggestions, &p.Suggestions); err != nil {
			return nil, fmt.Errorf("decoding run %s suggestions: %w", run.ID, err)
		}
	}
	if len(run.Unassigned) > 0 {
		if err := json.Unmarshal(run.Unassigned, &p.Unassigned); err != nil {
			return nil, fmt.Errorf("decoding run %s unassigned: %w", run.ID, err)
		}
	}
	return p, nil
}
