package property

import (
	"fmt"
	"strconv"
	"strings"

	"partsync/internal/domain"
	"partsync/internal/reconcile"
)

const (
	sourceConfirmed = "confirmed by model and drawing"
	flagOn          = "1"
)

// identityTargets maps reconciled fields onto the fixed identity/material properties.
var identityTargets = []struct {
	field    reconcile.Field
	target   Field
	category domain.SuggestionCategory
}{
	{reconcile.FieldDescription, FieldDescription, domain.CategoryIdentity},
	{reconcile.FieldRevision, FieldRevision, domain.CategoryIdentity},
	{reconcile.FieldPartNumber, FieldPrint, domain.CategoryIdentity},
	{reconcile.FieldMaterial, FieldOptiMaterial, domain.CategoryMaterial},
}

// MaterialMatcher reports whether two material callouts name the same grade.
// *reconcile.Engine implements it.
type MaterialMatcher interface {
	EquivalentMaterials(a, b string) bool
}

// Mapper turns a reconciliation result into property suggestions. It holds only
// immutable defaults and is safe for concurrent use.
type Mapper struct {
	defaults  Defaults
	materials MaterialMatcher
}

// NewMapper creates a Mapper from a private copy of d. Materials compare with the
// default reconcile tables until WithMaterials is used.
func NewMapper(d Defaults) *Mapper {
	return &Mapper{defaults: d.clone(), materials: reconcile.NewEngine(reconcile.DefaultTables())}
}

// WithMaterials returns a copy of m that compares materials with mm.
func (m *Mapper) WithMaterials(mm MaterialMatcher) *Mapper {
	if mm == nil {
		return m
	}
	return &Mapper{defaults: m.defaults, materials: mm}
}

var defaultMapper = NewMapper(DefaultDefaults())

// GeneratePartSuggestions runs the default-table mapper for a part document.
func GeneratePartSuggestions(result *reconcile.Result, current map[string]string) *SuggestionSet {
	return defaultMapper.GeneratePartSuggestions(result, current)
}

// GenerateAssemblySuggestions runs the default-table mapper for an assembly document.
func GenerateAssemblySuggestions(result *reconcile.Result, current map[string]string, baseOp int) *SuggestionSet {
	return defaultMapper.GenerateAssemblySuggestions(result, current, baseOp)
}

// Defaults returns a copy of the mapper's tables.
func (m *Mapper) Defaults() Defaults {
	return m.defaults.clone()
}

// GeneratePartSuggestions maps identity values, then routing suggestions in result
// order, into the part schema. current may be nil.
func (m *Mapper) GeneratePartSuggestions(result *reconcile.Result, current map[string]string) *SuggestionSet {
	b := newBuilder(current, m.defaults.NoteSeparator)
	if result == nil {
		return b.build()
	}
	m.mapIdentity(b, result)

	slot := 0
	for _, rs := range result.RoutingSuggestions {
		switch strategyFor(rs.Operation) {
		case strategyFixedSlot:
			m.mapFixedSlot(b, rs)
		case strategyOutsideProcess:
			m.mapOutsideProcess(b, rs)
		case strategyFlexibleSlot:
			slot++
			m.mapFlexibleSlot(b, rs, slot)
		default:
			b.unassign(UnassignedSuggestion{
				Operation:  rs.Operation,
				Value:      rs.NoteText,
				WorkCenter: rs.WorkCenter,
				Reason:     fmt.Sprintf("unknown routing operation %q", rs.Operation),
			})
		}
	}
	return b.build()
}

// mapIdentity writes gap-fills and confirmed values. Conflicts are never written;
// they wait for a human decision. A current material that is another spelling of
// the same grade is left as it is.
func (m *Mapper) mapIdentity(b *builder, result *reconcile.Result) {
	for _, t := range identityTargets {
		key := t.target.Key()
		if g, ok := result.GapFillFor(t.field); ok {
			if !m.sameMaterial(t.field, b.currentValue(key), g.Value) {
				b.set(key, g.Value, t.category, g.Confidence, g.Source)
			}
			continue
		}
		for _, c := range result.Confirmations {
			if c.Field == t.field {
				if !m.sameMaterial(t.field, b.currentValue(key), c.ModelValue) {
					b.set(key, c.ModelValue, t.category, 1.0, sourceConfirmed)
				}
				break
			}
		}
	}
	if g, ok := result.GapFillFor(reconcile.FieldThickness); ok {
		b.unassign(UnassignedSuggestion{
			Field:  string(reconcile.FieldThickness),
			Value:  g.Value,
			Reason: "the property schema has no thickness field",
		})
	}
}

func (m *Mapper) sameMaterial(field reconcile.Field, current, value string) bool {
	if field != reconcile.FieldMaterial || strings.TrimSpace(current) == "" {
		return false
	}
	return m.materials.EquivalentMaterials(current, value)
}

func (m *Mapper) mapFixedSlot(b *builder, rs reconcile.RoutingSuggestion) {
	slot := fixedSlots[rs.Operation]
	source := noteSource(rs.Operation, rs.SourceNote)
	if slot.hasFlag {
		b.set(slot.flag.Key(), flagOn, domain.CategoryRouting, rs.Confidence, source)
	} else if rs.WorkCenter != "" {
		m.setOrUnassign(b, slot.workCenter.Key(), rs, source)
	}
	b.appendNote(slot.note.Key(), rs.NoteText, domain.CategoryRouting, rs.Confidence, source)
}

// mapOutsideProcess writes OS_RN; finishing also names its vendor work center in OS_WC.
func (m *Mapper) mapOutsideProcess(b *builder, rs reconcile.RoutingSuggestion) {
	source := noteSource(rs.Operation, rs.SourceNote)
	if rs.Operation == domain.RoutingOpFinish && rs.WorkCenter != "" {
		m.setOrUnassign(b, FieldOutsideWorkCenter.Key(), rs, source)
	}
	b.appendNote(FieldOutsideNote.Key(), rs.NoteText, domain.CategoryRouting, rs.Confidence, source)
}

func (m *Mapper) mapFlexibleSlot(b *builder, rs reconcile.RoutingSuggestion, n int) {
	keys, ok := OtherSlotKeys(n)
	if !ok {
		b.unassign(UnassignedSuggestion{
			Operation:  rs.Operation,
			Value:      rs.NoteText,
			WorkCenter: rs.WorkCenter,
			Reason:     fmt.Sprintf("all %d Other routing slots are in use", OtherSlotCount),
		})
		return
	}
	source := noteSource(rs.Operation, rs.SourceNote)
	b.set(keys.Enable, flagOn, domain.CategoryRouting, rs.Confidence, source)
	b.set(keys.OpNumber, strconv.Itoa(m.defaults.OtherSlotOpNumbers[n-1]), domain.CategoryRouting, rs.Confidence, source)
	b.set(keys.WorkCenter, m.defaults.workCenterFor(rs.Operation, rs.WorkCenter), domain.CategoryRouting, rs.Confidence, source)
	setup, run := m.defaults.timingFor(rs.Operation, rs.SetupMinutes, rs.RunMinutes)
	if setup != nil {
		b.set(keys.Setup, formatMinutes(*setup), domain.CategoryRouting, rs.Confidence, source)
	}
	if run != nil {
		b.set(keys.Run, formatMinutes(*run), domain.CategoryRouting, rs.Confidence, source)
	}
	b.appendNote(keys.Note, rs.NoteText, domain.CategoryRouting, rs.Confidence, source)
}

// setOrUnassign writes a single-valued work center field; a second, different work
// center for the same field in one call is reported instead of overwriting the first.
func (m *Mapper) setOrUnassign(b *builder, key string, rs reconcile.RoutingSuggestion, source string) {
	if pending, ok := b.set(key, rs.WorkCenter, domain.CategoryRouting, rs.Confidence, source); !ok {
		b.unassign(UnassignedSuggestion{
			Operation:  rs.Operation,
			Field:      key,
			Value:      rs.NoteText,
			WorkCenter: rs.WorkCenter,
			Reason:     fmt.Sprintf("%s already suggested as %q", key, pending),
		})
	}
}

func formatMinutes(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
