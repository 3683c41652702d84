package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partsync/internal/domain"
	"partsync/internal/reconcile"
)

func TestCanonicalFileName(t *testing.T) {
	assert.Equal(t, "100-200_MOUNTING BRACKET", reconcile.CanonicalFileName("100-200", "MOUNTING  BRACKET"))
	assert.Equal(t, "100-200", reconcile.CanonicalFileName("100-200", "  "))
	assert.Equal(t, "100-200_BRACKET- 2-3 THK", reconcile.CanonicalFileName("100-200", `BRACKET: 2/3 THK.`))
	assert.Equal(t, "", reconcile.CanonicalFileName("", "BRACKET"))
}

func TestReconcile_RenameSuggested(t *testing.T) {
	part := &domain.PartRecord{FilePath: `C:\Vault\Parts\Part7.SLDPRT`}
	drawing := &domain.DrawingRecord{PartNumber: "100-200", Description: "MOUNTING BRACKET"}

	res := reconcile.Reconcile(part, drawing)

	require.NotNil(t, res.Rename)
	assert.Equal(t, `C:\Vault\Parts\Part7.SLDPRT`, res.Rename.CurrentPath)
	assert.Equal(t, "Part7.SLDPRT", res.Rename.CurrentName)
	assert.Equal(t, "100-200_MOUNTING BRACKET.SLDPRT", res.Rename.SuggestedName)
	assert.True(t, res.Rename.RequiresUserApproval)
	assert.NotEmpty(t, res.Rename.Reason)
}

func TestReconcile_RenameNotSuggested(t *testing.T) {
	tests := []struct {
		name    string
		part    domain.PartRecord
		drawing domain.DrawingRecord
	}{
		{
			name:    "already canonical",
			part:    domain.PartRecord{FilePath: "/vault/100-200_mounting bracket.sldprt"},
			drawing: domain.DrawingRecord{PartNumber: "100-200", Description: "MOUNTING BRACKET"},
		},
		{
			name:    "no file path",
			drawing: domain.DrawingRecord{PartNumber: "100-200", Description: "MOUNTING BRACKET"},
		},
		{
			name:    "no part number anywhere",
			part:    domain.PartRecord{FilePath: "/vault/Part7.sldprt"},
			drawing: domain.DrawingRecord{Description: "MOUNTING BRACKET"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			part, drawing := tc.part, tc.drawing
			res := reconcile.Reconcile(&part, &drawing)
			assert.Nil(t, res.Rename)
			assert.False(t, res.HasRenameSuggestion())
		})
	}
}

func TestReconcile_RenameFallsBackToPartValues(t *testing.T) {
	part := &domain.PartRecord{FilePath: "/vault/Part7.sldprt", PartNumber: "100-300", Description: "GUSSET"}

	res := reconcile.Reconcile(part, &domain.DrawingRecord{Revision: "A"})

	require.NotNil(t, res.Rename)
	assert.Equal(t, "100-300_GUSSET.sldprt", res.Rename.SuggestedName)
}

func TestResult_Summary(t *testing.T) {
	var nilResult *reconcile.Result
	assert.Equal(t, "No drawing data", nilResult.Summary())

	res := reconcile.Reconcile(nil, &domain.DrawingRecord{})
	assert.Equal(t, "No action needed", res.Summary())

	res = reconcile.Reconcile(&domain.PartRecord{Revision: "A", Material: "304"}, &domain.DrawingRecord{Revision: "A", Material: "304 SS"})
	assert.Equal(t, "No action needed; 2 fields confirmed", res.Summary())

	res = reconcile.Reconcile(
		&domain.PartRecord{Material: "304", FilePath: "/vault/Part7.sldprt"},
		&domain.DrawingRecord{
			PartNumber: "100-200",
			Revision:   "B",
			Material:   "A36",
			RoutingHints: []domain.RoutingHint{
				{Operation: domain.RoutingOpWeld, NoteText: "WELD"},
				{Operation: domain.RoutingOpInspect, NoteText: "INSPECT"},
			},
		},
	)
	assert.Equal(t, "1 conflict, 2 gap-fills, 2 routing suggestions, rename suggested", res.Summary())
}
