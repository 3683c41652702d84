package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ReconciliationRun is a persisted reconciliation of one part or assembly document,
// holding the engine result and the generated property suggestions for review.
type ReconciliationRun struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	Kind            DocumentKind    `db:"kind" json:"kind"`
	FilePath        string          `db:"file_path" json:"file_path"`
	PartNumber      string          `db:"part_number" json:"part_number"`
	Status          RunStatus       `db:"status" json:"status"`
	Summary         string          `db:"summary" json:"summary"`
	ConflictCount   int             `db:"conflict_count" json:"conflict_count"`
	GapFillCount    int             `db:"gap_fill_count" json:"gap_fill_count"`
	SuggestionCount int             `db:"suggestion_count" json:"suggestion_count"`
	UnassignedCount int             `db:"unassigned_count" json:"unassigned_count"`
	Result          json.RawMessage `db:"result" json:"result"`
	Suggestions     json.RawMessage `db:"suggestions" json:"suggestions"`
	Unassigned      json.RawMessage `db:"unassigned" json:"unassigned"`
	CreatedBy       string          `db:"created_by" json:"created_by"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// SuggestionDecision records an operator's accept/reject verdict on one property key.
type SuggestionDecision struct {
	ID          uuid.UUID `db:"id" json:"id"`
	RunID       uuid.UUID `db:"run_id" json:"run_id"`
	PropertyKey string    `db:"property_key" json:"property_key"`
	Value       string    `db:"value" json:"value"`
	Decision    Decision  `db:"decision" json:"decision"`
	DecidedBy   string    `db:"decided_by" json:"decided_by"`
	Note        string    `db:"note" json:"note"`
	DecidedAt   time.Time `db:"decided_at" json:"decided_at"`
}

// RunStats holds aggregate counts across persisted runs.
type RunStats struct {
	TotalRuns       int `db:"total_runs" json:"total_runs"`
	PendingReview   int `db:"pending_review" json:"pending_review"`
	Reviewed        int `db:"reviewed" json:"reviewed"`
	WithConflicts   int `db:"with_conflicts" json:"with_conflicts"`
	TotalConflicts  int `db:"total_conflicts" json:"total_conflicts"`
	TotalUnassigned int `db:"total_unassigned" json:"total_unassigned"`
}

// RunFilter narrows a run listing. Zero values match everything.
type RunFilter struct {
	Status     RunStatus
	Kind       DocumentKind
	PartNumber string
	Offset     int
	Limit      int
}
