package reconcile

import (
	"math"
	"sort"
	"strings"

	"partsync/internal/domain"
)

// Engine reconciles a part record against a drawing record. It holds only immutable
// tables, so one Engine may serve any number of concurrent Reconcile calls.
type Engine struct {
	tables    Tables
	materials *materialNormalizer
}

// NewEngine creates an Engine from a private copy of tables.
func NewEngine(tables Tables) *Engine {
	t := tables.clone()
	return &Engine{
		tables:    t,
		materials: newMaterialNormalizer(t.MaterialSuffixes, t.MaterialPrefixes),
	}
}

var defaultEngine = NewEngine(DefaultTables())

// Reconcile runs the default-table engine.
func Reconcile(part *domain.PartRecord, drawing *domain.DrawingRecord) *Result {
	return defaultEngine.Reconcile(part, drawing)
}

// EquivalentMaterials reports whether a and b name the same grade under the engine's
// material tables.
func (e *Engine) EquivalentMaterials(a, b string) bool {
	return e.materials.Equivalent(a, b)
}

// Tables returns a copy of the engine's tables.
func (e *Engine) Tables() Tables {
	return e.tables.clone()
}

// Reconcile compares part against drawing. It never fails: a nil drawing yields an
// empty result and a nil part lets every drawing value become a gap-fill.
// Neither input is modified.
func (e *Engine) Reconcile(part *domain.PartRecord, drawing *domain.DrawingRecord) *Result {
	res := newResult()
	if drawing == nil {
		return res
	}
	var p domain.PartRecord
	if part != nil {
		p = *part
	}

	e.compareText(res, FieldDescription, p.Description, drawing.Description)
	e.compareText(res, FieldRevision, p.Revision, drawing.Revision)
	e.compareText(res, FieldPartNumber, p.PartNumber, drawing.PartNumber)
	e.compareMaterial(res, p.Material, drawing.Material)
	e.compareThickness(res, p.Thickness, drawing.Thickness)

	res.RoutingSuggestions = e.routingSuggestions(drawing.RoutingHints)
	res.Rename = e.renameSuggestion(p, drawing)
	res.BOM = append(res.BOM, drawing.BOM...)
	return res
}

// compareText handles identity fields, which have no conflict path: a differing
// value already on the part is operator-trusted and left alone.
func (e *Engine) compareText(res *Result, field Field, partVal, drawingVal string) {
	pv, dv := strings.TrimSpace(partVal), strings.TrimSpace(drawingVal)
	switch {
	case dv == "":
	case pv == "":
		e.addGapFill(res, field, dv)
	case normalizeText(pv) == normalizeText(dv):
		res.Confirmations = append(res.Confirmations, Confirmation{Field: field, ModelValue: pv, DrawingValue: dv})
	}
}

func (e *Engine) compareMaterial(res *Result, partVal, drawingVal string) {
	pv, dv := strings.TrimSpace(partVal), strings.TrimSpace(drawingVal)
	switch {
	case dv == "":
	case pv == "":
		e.addGapFill(res, FieldMaterial, dv)
	case e.materials.Equivalent(pv, dv):
		res.Confirmations = append(res.Confirmations, Confirmation{Field: FieldMaterial, ModelValue: pv, DrawingValue: dv})
	default:
		res.Conflicts = append(res.Conflicts, newConflict(FieldMaterial, pv, dv))
	}
}

func (e *Engine) compareThickness(res *Result, partVal *float64, drawingVal string) {
	dv, ok := ParseThickness(drawingVal)
	if !ok {
		return
	}
	if !validThickness(partVal) {
		e.addGapFill(res, FieldThickness, formatInches(dv))
		return
	}
	model := formatInches(*partVal)
	printed := strings.TrimSpace(drawingVal)
	if math.Abs(*partVal-dv) <= e.tables.ThicknessTolerance {
		res.Confirmations = append(res.Confirmations, Confirmation{Field: FieldThickness, ModelValue: model, DrawingValue: printed})
		return
	}
	res.Conflicts = append(res.Conflicts, newConflict(FieldThickness, model, printed))
}

func (e *Engine) addGapFill(res *Result, field Field, value string) {
	res.GapFills = append(res.GapFills, GapFill{
		Field:      field,
		Value:      value,
		Source:     SourceTitleBlock,
		Confidence: e.tables.GapFillConfidence,
	})
}

func newConflict(field Field, modelVal, drawingVal string) Conflict {
	return Conflict{
		Field:          field,
		ModelValue:     modelVal,
		DrawingValue:   drawingVal,
		Severity:       domain.SeverityHigh,
		Recommendation: RecommendUsePartValue,
	}
}

// routingSuggestions assigns ordering numbers and sorts ascending; ties keep input order.
func (e *Engine) routingSuggestions(hints []domain.RoutingHint) []RoutingSuggestion {
	out := make([]RoutingSuggestion, 0, len(hints))
	for _, h := range hints {
		out = append(out, RoutingSuggestion{
			Operation:         h.Operation,
			WorkCenter:        strings.TrimSpace(h.WorkCenter),
			NoteText:          strings.TrimSpace(h.NoteText),
			SourceNote:        h.SourceNote,
			Confidence:        clampConfidence(h.Confidence),
			SetupMinutes:      copyMinutes(h.SetupMinutes),
			RunMinutes:        copyMinutes(h.RunMinutes),
			SuggestedOpNumber: e.tables.OpNumber(h.Operation),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SuggestedOpNumber < out[j].SuggestedOpNumber
	})
	return out
}

func clampConfidence(c float64) float64 {
	switch {
	case math.IsNaN(c) || c < 0:
		return 0
	case c > 1:
		return 1
	}
	return c
}

// copyMinutes detaches the result from the caller's hint; malformed values become absent.
func copyMinutes(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
		return nil
	}
	m := *v
	return &m
}
