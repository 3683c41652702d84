package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"partsync/internal/domain"
	"partsync/internal/property"
	"partsync/internal/reconcile"
)

func testSheet(t *testing.T) *ReviewSheet {
	t.Helper()
	res := reconcile.Reconcile(
		&domain.PartRecord{Material: "304 SS"},
		&domain.DrawingRecord{
			PartNumber: "100-200",
			Revision:   "C",
			Material:   "A36 CARBON STEEL",
			RoutingHints: []domain.RoutingHint{
				{Operation: domain.RoutingOpDeburr, NoteText: "TUMBLE DEBURR", Confidence: 0.9},
				{Operation: domain.RoutingOp("laser_etch"), NoteText: "ETCH PN", Confidence: 0.5},
			},
			BOM: []domain.BOMRow{{ItemNumber: "1", PartNumber: "HW-1032", Description: "PEM NUT", Quantity: 4}},
		},
	)
	set := property.GeneratePartSuggestions(res, map[string]string{"F210_RN": "BREAK ALL EDGES"})
	return &ReviewSheet{
		RunID:       uuid.MustParse("6f1c2a8e-1f5b-4b7e-9a55-0c3c6a7e9d10"),
		Kind:        domain.DocumentKindPart,
		PartNumber:  "100-200",
		Status:      domain.RunStatusPartial,
		Summary:     res.Summary(),
		CreatedAt:   time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC),
		Result:      res,
		Suggestions: set.Suggestions,
		Unassigned:  set.Unassigned,
		Decisions: map[string]domain.SuggestionDecision{
			"Revision": {PropertyKey: "Revision", Decision: domain.DecisionAccepted, DecidedBy: "jlee", Note: "matches ECO"},
		},
	}
}

func TestCSVWriter_WriteSheet(t *testing.T) {
	sheet := testSheet(t)

	var buf bytes.Buffer
	require.NoError(t, NewCSVWriter(&buf).WriteSheet(sheet))

	raw := buf.Bytes()
	require.True(t, bytes.HasPrefix(raw, BOM))

	rows, err := csv.NewReader(bytes.NewReader(raw[len(BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1+len(sheet.Suggestions)+len(sheet.Unassigned))
	assert.Equal(t, suggestionColumns, rows[0])

	byKey := make(map[string][]string)
	for _, row := range rows[1:] {
		byKey[row[0]] = row
	}

	rev := byKey["Revision"]
	require.NotNil(t, rev)
	assert.Equal(t, "identity", rev[1])
	assert.Equal(t, "C", rev[3])
	assert.Equal(t, changeGapFill, rev[4])
	assert.Equal(t, "0.90", rev[5])
	assert.Equal(t, "accepted", rev[7])
	assert.Equal(t, "jlee", rev[8])
	assert.Equal(t, "matches ECO", rev[9])

	note := byKey["F210_RN"]
	require.NotNil(t, note)
	assert.Equal(t, "BREAK ALL EDGES", note[2])
	assert.Equal(t, "BREAK ALL EDGES; TUMBLE DEBURR", note[3])
	assert.Equal(t, changeOverride, note[4])
	assert.Empty(t, note[7])

	etch := byKey["laser_etch"]
	require.NotNil(t, etch)
	assert.Equal(t, changeUnassigned, etch[4])
	assert.Equal(t, "ETCH PN", etch[3])
}

func TestWriteXLSX(t *testing.T) {
	sheet := testSheet(t)

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sheet))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetRun, SheetSuggestions, SheetUnassigned, SheetConflicts, SheetBOM}, f.GetSheetList())

	runRows, err := f.GetRows(SheetRun)
	require.NoError(t, err)
	assert.Equal(t, []string{"Part Number", "100-200"}, runRows[3])

	suggestions, err := f.GetRows(SheetSuggestions)
	require.NoError(t, err)
	assert.Len(t, suggestions, 1+len(sheet.Suggestions))
	assert.Equal(t, suggestionColumns, suggestions[0])

	conflicts, err := f.GetRows(SheetConflicts)
	require.NoError(t, err)
	require.Len(t, conflicts, 2)
	assert.Equal(t, []string{"Material", "304 SS", "A36 CARBON STEEL", "high", reconcile.RecommendUsePartValue}, conflicts[1])

	bom, err := f.GetRows(SheetBOM)
	require.NoError(t, err)
	require.Len(t, bom, 2)
	assert.Equal(t, []string{"1", "HW-1032", "PEM NUT", "4"}, bom[1])

	unassigned, err := f.GetRows(SheetUnassigned)
	require.NoError(t, err)
	require.Len(t, unassigned, 2)
	assert.Equal(t, "ETCH PN", unassigned[1][2])
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"part number", "100-200", "100-200"},
		{"spaces and slashes", "BRKT 12/A rev.C", "BRKT_12_A_rev_C"},
		{"consecutive underscores collapsed", "a___b", "a_b"},
		{"leading/trailing cleaned", "  x  ", "x"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	now := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	sheet := &ReviewSheet{RunID: uuid.MustParse("6f1c2a8e-1f5b-4b7e-9a55-0c3c6a7e9d10"), PartNumber: "100-200"}

	assert.Equal(t, "100-200_review_2026-03-02.csv", BuildFilename(sheet, domain.ExportFormatCSV, now))

	sheet.PartNumber = ""
	assert.Equal(t, "6f1c2a8e-1f5b-4b7e-9a55-0c3c6a7e9d10_review_2026-03-02.xlsx", BuildFilename(sheet, domain.ExportFormatXLSX, now))
}
