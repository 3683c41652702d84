package property_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partsync/internal/domain"
	"partsync/internal/property"
	"partsync/internal/reconcile"
)

func hint(op domain.RoutingOp, note string) domain.RoutingHint {
	return domain.RoutingHint{Operation: op, NoteText: note, Confidence: 0.9}
}

func reconcileHints(hints ...domain.RoutingHint) *reconcile.Result {
	return reconcile.Reconcile(&domain.PartRecord{}, &domain.DrawingRecord{RoutingHints: hints})
}

func requireSuggestion(t *testing.T, set *property.SuggestionSet, key string) property.PropertySuggestion {
	t.Helper()
	s, ok := set.Find(key)
	require.True(t, ok, "expected a suggestion for %s", key)
	return s
}

func TestGeneratePartSuggestions_DeburrGapFill(t *testing.T) {
	res := reconcileHints(hint(domain.RoutingOpDeburr, "BREAK ALL EDGES"))

	set := property.GeneratePartSuggestions(res, map[string]string{})

	flag := requireSuggestion(t, set, "F210")
	assert.Equal(t, "1", flag.Value)
	assert.True(t, flag.IsGapFill())
	assert.False(t, flag.IsOverride())
	assert.Equal(t, domain.CategoryRouting, flag.Category)

	note := requireSuggestion(t, set, "F210_RN")
	assert.Equal(t, "BREAK ALL EDGES", note.Value)
	assert.True(t, note.IsGapFill())
	assert.Empty(t, set.Unassigned)
}

func TestGeneratePartSuggestions_NoteAppendsToExisting(t *testing.T) {
	res := reconcileHints(
		hint(domain.RoutingOpDeburr, "BREAK ALL EDGES"),
		hint(domain.RoutingOpDeburr, "TUMBLE DEBURR"),
	)
	current := map[string]string{"F210_RN": "BREAK ALL EDGES"}

	set := property.GeneratePartSuggestions(res, current)

	note := requireSuggestion(t, set, "F210_RN")
	assert.Equal(t, "BREAK ALL EDGES; TUMBLE DEBURR", note.Value)
	assert.Less(t, strings.Index(note.Value, "BREAK ALL EDGES"), strings.Index(note.Value, "TUMBLE DEBURR"))
	assert.True(t, note.IsOverride())
	assert.False(t, note.IsGapFill())
	assert.Equal(t, "BREAK ALL EDGES", note.CurrentValue)
}

func TestGeneratePartSuggestions_NoteAlreadyPresentIsNoOp(t *testing.T) {
	res := reconcileHints(hint(domain.RoutingOpDeburr, "break all edges"))
	current := map[string]string{"F210": "1", "F210_RN": "DEBURR .015 MAX; BREAK ALL EDGES"}

	set := property.GeneratePartSuggestions(res, current)

	assert.Empty(t, set.Suggestions)
}

func TestGeneratePartSuggestions_NoteSubstringOfExistingIsAppended(t *testing.T) {
	res := reconcileHints(hint(domain.RoutingOpOutsideProcess, "PLATE"))
	current := map[string]string{"OS_RN": "NO PLATE"}

	set := property.GeneratePartSuggestions(res, current)

	note := requireSuggestion(t, set, "OS_RN")
	assert.Equal(t, "NO PLATE; PLATE", note.Value)
	assert.Equal(t, "NO PLATE", note.CurrentValue)
}

func TestGeneratePartSuggestions_NoteSubstringInSameCallIsAppended(t *testing.T) {
	res := reconcileHints(
		hint(domain.RoutingOpTap, "TAP 1/4-20"),
		hint(domain.RoutingOpTap, "TAP 1/4-2"),
		hint(domain.RoutingOpTap, "tap 1/4-20"),
	)
	current := map[string]string{"F220_RN": "WELD NUTS 10 PLACES"}

	set := property.GeneratePartSuggestions(res, current)

	note := requireSuggestion(t, set, "F220_RN")
	assert.Equal(t, "WELD NUTS 10 PLACES; TAP 1/4-20; TAP 1/4-2", note.Value)
}

func TestGeneratePartSuggestions_FlexibleSlots(t *testing.T) {
	res := reconcileHints(
		hint(domain.RoutingOpWeld, "WELD PER DWG"),
		hint(domain.RoutingOpInspect, "INSPECT ALL WELDS"),
	)

	set := property.GeneratePartSuggestions(res, nil)
	props := set.Properties()

	assert.Equal(t, "1", props["OtherWC_CB"])
	assert.Equal(t, "60", props["OtherOP"])
	assert.Equal(t, "F400", props["Other_WC"])
	assert.Equal(t, "15", props["Other_S"])
	assert.Equal(t, "10", props["Other_R"])
	assert.Equal(t, "WELD PER DWG", props["Other_RN"])

	assert.Equal(t, "1", props["OtherWC_CB2"])
	assert.Equal(t, "70", props["Other_OP2"])
	assert.Equal(t, "INSPECT ALL WELDS", props["Other_RN2"])
	assert.NotContains(t, props, "OtherOP2")
	assert.NotContains(t, props, "Other_WC2")
}

func TestGeneratePartSuggestions_SeventhFlexibleOpIsUnassigned(t *testing.T) {
	var hints []domain.RoutingHint
	for i := 1; i <= 7; i++ {
		hints = append(hints, hint(domain.RoutingOpWeld, fmt.Sprintf("WELD %d", i)))
	}

	set := property.GeneratePartSuggestions(reconcileHints(hints...), nil)

	props := set.Properties()
	assert.Equal(t, "WELD 1", props["Other_RN"])
	assert.Equal(t, "WELD 6", props["Other_RN6"])
	assert.Equal(t, "110", props["Other_OP6"])
	require.Len(t, set.Unassigned, 1)
	assert.True(t, set.HasUnassigned())
	assert.Equal(t, domain.RoutingOpWeld, set.Unassigned[0].Operation)
	assert.Equal(t, "WELD 7", set.Unassigned[0].Value)
	assert.NotEmpty(t, set.Unassigned[0].Reason)
}

func TestGeneratePartSuggestions_OutsideProcess(t *testing.T) {
	finish := hint(domain.RoutingOpFinish, "POWDER COAT BLACK")
	finish.WorkCenter = "V-PC01"
	res := reconcileHints(
		hint(domain.RoutingOpHeatTreat, "HEAT TREAT TO RC 40-45"),
		finish,
		hint(domain.RoutingOpOutsideProcess, "ZINC PLATE"),
	)

	set := property.GeneratePartSuggestions(res, nil)
	props := set.Properties()

	assert.Equal(t, "ZINC PLATE; HEAT TREAT TO RC 40-45; POWDER COAT BLACK", props["OS_RN"])
	assert.Equal(t, "V-PC01", props["OS_WC"])
}

func TestGeneratePartSuggestions_ProcessOverride(t *testing.T) {
	first := hint(domain.RoutingOpProcessOverride, "LASER CUT ONLY")
	first.WorkCenter = "F110"
	second := hint(domain.RoutingOpProcessOverride, "WATERJET")
	second.WorkCenter = "F120"

	set := property.GeneratePartSuggestions(reconcileHints(first, second), nil)
	props := set.Properties()

	assert.Equal(t, "F110", props["OP20"])
	assert.Equal(t, "LASER CUT ONLY; WATERJET", props["OP20_RN"])
	require.Len(t, set.Unassigned, 1)
	assert.Equal(t, "OP20", set.Unassigned[0].Field)
	assert.Equal(t, "F120", set.Unassigned[0].WorkCenter)
}

func TestGeneratePartSuggestions_FlagsAreMutuallyExclusive(t *testing.T) {
	res := reconcileHints(
		hint(domain.RoutingOpDeburr, "DEBURR"),
		hint(domain.RoutingOpTap, "TAP 4X 10-32"),
	)

	set := property.GeneratePartSuggestions(res, nil)

	var keys []string
	for _, s := range set.Suggestions {
		keys = append(keys, s.Key)
	}
	assert.ElementsMatch(t, []string{"F210", "F210_RN", "F220", "F220_RN"}, keys)
	for _, s := range set.Suggestions {
		assert.False(t, s.IsGapFill() && s.IsOverride(), s.Key)
	}
}

func TestGeneratePartSuggestions_UnknownOperation(t *testing.T) {
	set := property.GeneratePartSuggestions(reconcileHints(hint(domain.RoutingOp("laser_etch"), "ETCH PN")), nil)

	assert.Empty(t, set.Suggestions)
	require.Len(t, set.Unassigned, 1)
	assert.Equal(t, "ETCH PN", set.Unassigned[0].Value)
}

func TestGeneratePartSuggestions_Identity(t *testing.T) {
	part := &domain.PartRecord{Material: "304 SS", Description: "BRACKET"}
	drawing := &domain.DrawingRecord{
		PartNumber:  "100-200",
		Description: "bracket",
		Revision:    "C",
		Material:    "AISI 304",
		Thickness:   "1/8",
	}
	res := reconcile.Reconcile(part, drawing)
	current := map[string]string{"description": "BRACKET", "OptiMaterial": ""}

	set := property.GeneratePartSuggestions(res, current)

	rev := requireSuggestion(t, set, "Revision")
	assert.Equal(t, "C", rev.Value)
	assert.Equal(t, domain.CategoryIdentity, rev.Category)
	assert.Equal(t, reconcile.SourceTitleBlock, rev.Source)

	printNo := requireSuggestion(t, set, "Print")
	assert.Equal(t, "100-200", printNo.Value)

	mat := requireSuggestion(t, set, "OptiMaterial")
	assert.Equal(t, "304 SS", mat.Value)
	assert.Equal(t, domain.CategoryMaterial, mat.Category)
	assert.Equal(t, 1.0, mat.Confidence)

	// Current Description already matches the confirmed value.
	_, ok := set.Find("Description")
	assert.False(t, ok)

	require.Len(t, set.Unassigned, 1)
	assert.Equal(t, string(reconcile.FieldThickness), set.Unassigned[0].Field)
	assert.Equal(t, "0.125 in", set.Unassigned[0].Value)
}

func TestGeneratePartSuggestions_EquivalentCurrentMaterialIsKept(t *testing.T) {
	res := reconcile.Reconcile(&domain.PartRecord{Material: "304 SS"}, &domain.DrawingRecord{Material: "AISI 304 STAINLESS STEEL"})

	set := property.GeneratePartSuggestions(res, map[string]string{"OptiMaterial": "304 STAINLESS"})
	_, ok := set.Find("OptiMaterial")
	assert.False(t, ok)

	set = property.GeneratePartSuggestions(res, map[string]string{"OptiMaterial": "316 SS"})
	mat := requireSuggestion(t, set, "OptiMaterial")
	assert.Equal(t, "304 SS", mat.Value)
	assert.True(t, mat.IsOverride())
}

type gradeTable map[string]string

func (g gradeTable) EquivalentMaterials(a, b string) bool { return g[a] != "" && g[a] == g[b] }

func TestMapper_WithMaterials(t *testing.T) {
	res := reconcile.Reconcile(nil, &domain.DrawingRecord{Material: "CRS"})
	current := map[string]string{"OptiMaterial": "1008"}

	set := property.NewMapper(property.DefaultDefaults()).GeneratePartSuggestions(res, current)
	requireSuggestion(t, set, "OptiMaterial")

	m := property.NewMapper(property.DefaultDefaults()).WithMaterials(gradeTable{"CRS": "1008", "1008": "1008"})
	set = m.GeneratePartSuggestions(res, current)
	_, ok := set.Find("OptiMaterial")
	assert.False(t, ok)
}

func TestGeneratePartSuggestions_ConflictsAreNotSuggested(t *testing.T) {
	res := reconcile.Reconcile(&domain.PartRecord{Material: "304 SS"}, &domain.DrawingRecord{Material: "A36 CARBON STEEL"})

	set := property.GeneratePartSuggestions(res, map[string]string{"OptiMaterial": "304 SS"})

	_, ok := set.Find("OptiMaterial")
	assert.False(t, ok)
}

func TestGeneratePartSuggestions_NilResult(t *testing.T) {
	set := property.GeneratePartSuggestions(nil, nil)

	require.NotNil(t, set)
	assert.Empty(t, set.Suggestions)
	assert.Empty(t, set.Unassigned)
	assert.Empty(t, set.Properties())
}

func TestGeneratePartSuggestions_DoesNotMutateCurrent(t *testing.T) {
	current := map[string]string{"F210_RN": "BREAK ALL EDGES"}
	_ = property.GeneratePartSuggestions(reconcileHints(hint(domain.RoutingOpDeburr, "TUMBLE")), current)

	assert.Equal(t, map[string]string{"F210_RN": "BREAK ALL EDGES"}, current)
}

func TestGeneratePartSuggestions_KeysAreInSchema(t *testing.T) {
	var hints []domain.RoutingHint
	for _, op := range domain.AllRoutingOps {
		h := hint(op, "NOTE "+string(op))
		h.WorkCenter = "WC"
		hints = append(hints, h)
	}
	res := reconcile.Reconcile(nil, &domain.DrawingRecord{
		PartNumber: "1", Description: "D", Revision: "A", Material: "304", RoutingHints: hints,
	})

	set := property.GeneratePartSuggestions(res, nil)

	schema := make(map[string]bool)
	for _, k := range property.SchemaKeys() {
		schema[k] = true
	}
	for _, s := range set.Suggestions {
		assert.True(t, schema[s.Key], "unexpected key %s", s.Key)
	}
}

func TestPropertySuggestion_MarshalJSON(t *testing.T) {
	s := property.PropertySuggestion{Key: "Revision", Value: "C", Category: domain.CategoryIdentity, Confidence: 0.9}

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "Revision", out["key"])
	assert.Equal(t, true, out["is_gap_fill"])
	assert.Equal(t, false, out["is_override"])
}

func TestMapper_CustomDefaults(t *testing.T) {
	d := property.DefaultDefaults()
	d.OtherSlotOpNumbers = [property.OtherSlotCount]int{65, 75, 85, 95, 105, 115}
	d.NoteSeparator = " | "
	d.WorkCenters[domain.RoutingOpInspect] = "Q100"
	m := property.NewMapper(d)

	res := reconcileHints(
		hint(domain.RoutingOpInspect, "CMM"),
		hint(domain.RoutingOpDeburr, "A"),
		hint(domain.RoutingOpDeburr, "B"),
	)
	props := m.GeneratePartSuggestions(res, nil).Properties()

	assert.Equal(t, "65", props["OtherOP"])
	assert.Equal(t, "Q100", props["Other_WC"])
	assert.Equal(t, "A | B", props["F210_RN"])
}

func TestMapper_ConcurrentUse(t *testing.T) {
	m := property.NewMapper(property.DefaultDefaults())
	res := reconcileHints(
		hint(domain.RoutingOpWeld, "WELD"),
		hint(domain.RoutingOpDeburr, "DEBURR"),
		hint(domain.RoutingOpFinish, "PAINT"),
	)
	want := m.GeneratePartSuggestions(res, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, m.GeneratePartSuggestions(res, nil))
		}()
	}
	wg.Wait()
}
