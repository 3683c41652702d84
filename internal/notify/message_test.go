package notify_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"partsync/internal/domain"
	"partsync/internal/notify"
	"partsync/internal/port"
	"partsync/internal/reconcile"
)

func TestBuildConflictMessage(t *testing.T) {
	runID := uuid.MustParse("6f1c2a8e-1f5b-4b7e-9a55-0c3c6a7e9d10")
	alert := port.ConflictAlert{
		RunID:      runID,
		PartNumber: "100-200",
		Conflicts: []reconcile.Conflict{{
			Field:          reconcile.FieldMaterial,
			ModelValue:     "304 SS",
			DrawingValue:   "A36 <CS>",
			Severity:       domain.SeverityHigh,
			Recommendation: reconcile.RecommendUsePartValue,
		}},
	}

	msg := notify.BuildConflictMessage(alert, "https://partsync.example/runs/")

	assert.Equal(t, "[PartSync] 1 conflict on 100-200", msg.Subject)
	assert.Contains(t, msg.TextBody, `Material: part "304 SS", drawing "A36 <CS>"`)
	assert.Contains(t, msg.TextBody, "https://partsync.example/runs/"+runID.String())
	assert.Contains(t, msg.HTMLBody, "A36 &lt;CS&gt;")
	assert.NotContains(t, msg.HTMLBody, "A36 <CS>")
}

func TestBuildConflictMessage_FallsBackToFilePath(t *testing.T) {
	alert := port.ConflictAlert{
		RunID:    uuid.New(),
		FilePath: `C:\Vault\Part7.SLDPRT`,
		Conflicts: []reconcile.Conflict{
			{Field: reconcile.FieldMaterial},
			{Field: reconcile.FieldThickness},
		},
	}

	msg := notify.BuildConflictMessage(alert, "http://localhost:3000/runs")

	assert.Equal(t, `[PartSync] 2 conflicts on C:\Vault\Part7.SLDPRT`, msg.Subject)
}
