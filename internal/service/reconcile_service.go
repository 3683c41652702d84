package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"partsync/internal/domain"
	"partsync/internal/metrics"
	"partsync/internal/port"
)

// ReconcileService persists reconciliation runs for the approval UI.
type ReconcileService interface {
	Preview(ctx context.Context, input *ReconcileInput) (*Evaluation, error)
	Run(ctx context.Context, input *ReconcileInput) (*domain.ReconciliationRun, error)
	GetRun(ctx context.Context, id uuid.UUID) (*domain.ReconciliationRun, error)
	ListRuns(ctx context.Context, filter domain.RunFilter) ([]domain.ReconciliationRun, int, error)
	GetStats(ctx context.Context) (*domain.RunStats, error)
}

type reconcileService struct {
	reconciler *Reconciler
	runRepo    port.RunRepository
	notifier   port.ConflictNotifier
	logger     *zap.Logger
}

// NewReconcileService creates a new ReconcileService implementation.
func NewReconcileService(
	reconciler *Reconciler,
	runRepo port.RunRepository,
	notifier port.ConflictNotifier,
	logger *zap.Logger,
) ReconcileService {
	return &reconcileService{
		reconciler: reconciler,
		runRepo:    runRepo,
		notifier:   notifier,
		logger:     logger,
	}
}

// Preview evaluates input without storing a run or sending alerts.
func (s *reconcileService) Preview(_ context.Context, input *ReconcileInput) (*Evaluation, error) {
	start := time.Now()
	eval, err := s.reconciler.Evaluate(input)
	if err != nil {
		return nil, err
	}
	metrics.RecordRun(eval.Kind, "preview", eval.Result, eval.Suggestions, time.Since(start))
	return eval, nil
}

func (s *reconcileService) Run(ctx context.Context, input *ReconcileInput) (*domain.ReconciliationRun, error) {
	start := time.Now()
	eval, err := s.reconciler.Evaluate(input)
	if err != nil {
		return nil, err
	}
	metrics.RecordRun(eval.Kind, "api", eval.Result, eval.Suggestions, time.Since(start))

	run, err := newRun(input, eval)
	if err != nil {
		return nil, err
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("persisting run: %w", err)
	}

	s.logger.Info("reconciliation run stored",
		zap.String("run_id", run.ID.String()),
		zap.String("kind", string(run.Kind)),
		zap.String("part_number", run.PartNumber),
		zap.String("status", string(run.Status)),
		zap.Int("conflicts", run.ConflictCount),
		zap.Int("suggestions", run.SuggestionCount),
		zap.Int("unassigned", run.UnassignedCount),
	)

	if eval.Result.HasConflicts() {
		alert := port.ConflictAlert{
			RunID:      run.ID,
			PartNumber: run.PartNumber,
			FilePath:   run.FilePath,
			Conflicts:  eval.Result.Conflicts,
		}
		if err := s.notifier.NotifyConflicts(ctx, alert); err != nil {
			s.logger.Warn("conflict notification failed",
				zap.String("run_id", run.ID.String()),
				zap.Error(err),
			)
		}
	}
	return run, nil
}

// newRun builds the persisted form of an evaluation. A run with nothing to review
// is stored as no_action; a rename alone still needs the user's approval.
func newRun(input *ReconcileInput, eval *Evaluation) (*domain.ReconciliationRun, error) {
	result, err := json.Marshal(eval.Result)
	if err != nil {
		return nil, fmt.Errorf("encoding result: %w", err)
	}
	suggestions, err := json.Marshal(eval.Suggestions.Suggestions)
	if err != nil {
		return nil, fmt.Errorf("encoding suggestions: %w", err)
	}
	unassigned, err := json.Marshal(eval.Suggestions.Unassigned)
	if err != nil {
		return nil, fmt.Errorf("encoding unassigned suggestions: %w", err)
	}

	status := domain.RunStatusPendingReview
	if !eval.Result.HasConflicts() && !eval.Result.HasRenameSuggestion() &&
		len(eval.Suggestions.Suggestions) == 0 && !eval.Suggestions.HasUnassigned() {
		status = domain.RunStatusNoAction
	}

	run := &domain.ReconciliationRun{
		ID:              uuid.New(),
		Kind:            eval.Kind,
		Status:          status,
		Summary:         eval.Summary,
		ConflictCount:   len(eval.Result.Conflicts),
		GapFillCount:    len(eval.Result.GapFills),
		SuggestionCount: len(eval.Suggestions.Suggestions),
		UnassignedCount: len(eval.Suggestions.Unassigned),
		Result:          result,
		Suggestions:     suggestions,
		Unassigned:      unassigned,
		CreatedBy:       input.CreatedBy,
	}
	if input.Part != nil {
		run.FilePath = input.Part.FilePath
		run.PartNumber = input.Part.PartNumber
	}
	if input.Drawing != nil && input.Drawing.PartNumber != "" {
		run.PartNumber = input.Drawing.PartNumber
	}
	return run, nil
}

func (s *reconcileService) GetRun(ctx context.Context, id uuid.UUID) (*domain.ReconciliationRun, error) {
	return s.runRepo.GetByID(ctx, id)
}

func (s *reconcileService) ListRuns(ctx context.Context, filter domain.RunFilter) ([]domain.ReconciliationRun, int, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.runRepo.List(ctx, filter)
}

func (s *reconcileService) GetStats(ctx context.Context) (*domain.RunStats, error) {
	return s.runRepo.GetStats(ctx)
}
