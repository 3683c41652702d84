package noop

import (
	"context"

	"go.uber.org/zap"

	"partsync/internal/notify"
	"partsync/internal/port"
)

type noopNotifier struct {
	reviewURL string
	logger    *zap.Logger
}

// NewNoopNotifier creates a ConflictNotifier that only logs the alert.
func NewNoopNotifier(reviewURL string, logger *zap.Logger) port.ConflictNotifier {
	return &noopNotifier{reviewURL: reviewURL, logger: logger}
}

func (n *noopNotifier) NotifyConflicts(_ context.Context, alert port.ConflictAlert) error {
	msg := notify.BuildConflictMessage(alert, n.reviewURL)
	n.logger.Info("[NOOP ALERT] "+msg.Subject,
		zap.String("run_id", alert.RunID.String()),
		zap.String("review_url", notify.RunURL(n.reviewURL, alert)),
	)
	return nil
}
