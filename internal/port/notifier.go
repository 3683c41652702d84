package port

import (
	"context"

	"github.com/google/uuid"

	"partsync/internal/reconcile"
)

// ConflictAlert describes a run whose part and drawing disagree.
type ConflictAlert struct {
	RunID      uuid.UUID
	PartNumber string
	FilePath   string
	Conflicts  []reconcile.Conflict
}

// ConflictNotifier tells engineering that a run needs a human decision.
type ConflictNotifier interface {
	NotifyConflicts(ctx context.Context, alert ConflictAlert) error
}
