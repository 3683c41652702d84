package service_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"partsync/internal/domain"
	"partsync/internal/property"
	"partsync/internal/reconcile"
	"partsync/internal/service"
)

func newReconciler() *service.Reconciler {
	return service.NewReconciler(
		reconcile.NewEngine(reconcile.DefaultTables()),
		property.NewMapper(property.DefaultDefaults()),
	)
}

// storedRun evaluates part and drawing and returns the run as the repository would hold it.
func storedRun(t *testing.T, part *domain.PartRecord, drawing *domain.DrawingRecord, current map[string]string) *domain.ReconciliationRun {
	t.Helper()
	eval, err := newReconciler().Evaluate(&service.ReconcileInput{Part: part, Drawing: drawing, Current: current})
	require.NoError(t, err)

	result, err := json.Marshal(eval.Result)
	require.NoError(t, err)
	suggestions, err := json.Marshal(eval.Suggestions.Suggestions)
	require.NoError(t, err)
	unassigned, err := json.Marshal(eval.Suggestions.Unassigned)
	require.NoError(t, err)

	return &domain.ReconciliationRun{
		ID:              uuid.New(),
		Kind:            eval.Kind,
		PartNumber:      drawing.PartNumber,
		Status:          domain.RunStatusPendingReview,
		Summary:         eval.Summary,
		SuggestionCount: len(eval.Suggestions.Suggestions),
		Result:          result,
		Suggestions:     suggestions,
		Unassigned:      unassigned,
	}
}
