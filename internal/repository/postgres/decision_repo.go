package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"partsync/internal/domain"
	"partsync/internal/port"
)

type decisionRepo struct {
	db *sqlx.DB
}

// NewDecisionRepo creates a new PostgreSQL-backed DecisionRepository.
func NewDecisionRepo(db *sqlx.DB) port.DecisionRepository {
	return &decisionRepo{db: db}
}

func (r *decisionRepo) Upsert(ctx context.Context, d *domain.SuggestionDecision) error {
	query := `INSERT INTO suggestion_decisions (id, run_id, property_key, value, decision, decided_by, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (run_id, property_key) DO UPDATE SET
			value = EXCLUDED.value,
			decision = EXCLUDED.decision,
			decided_by = EXCLUDED.decided_by,
			note = EXCLUDED.note,
			decided_at = NOW()
		RETURNING id, decided_at`

	err := r.db.QueryRowxContext(ctx, query,
		d.ID, d.RunID, d.PropertyKey, d.Value, d.Decision, d.DecidedBy, d.Note,
	).Scan(&d.ID, &d.DecidedAt)
	if err != nil {
		return fmt.Errorf("decisionRepo.Upsert: %w", err)
	}
	return nil
}

func (r *decisionRepo) ListByRun(ctx context.Context, runID uuid.UUID) ([]domain.SuggestionDecision, error) {
	var decisions []domain.SuggestionDecision
	err := r.db.SelectContext(ctx, &decisions,
		`SELECT * FROM suggestion_decisions WHERE run_id = $1 ORDER BY decided_at, property_key`,
		runID)
	if err != nil {
		return nil, fmt.Errorf("decisionRepo.ListByRun: %w", err)
	}
	return decisions, nil
}
