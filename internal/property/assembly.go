package property

import (
	"partsync/internal/domain"
	"partsync/internal/reconcile"
)

// AssemblyOperation is one numbered routing operation on an assembly document.
type AssemblyOperation struct {
	OpNumber     int              `json:"op_number"`
	Operation    domain.RoutingOp `json:"operation"`
	WorkCenter   string           `json:"work_center"`
	SetupMinutes *float64         `json:"setup_minutes,omitempty"`
	RunMinutes   *float64         `json:"run_minutes,omitempty"`
	Note         string           `json:"note"`
	Confidence   float64          `json:"confidence"`
	Source       string           `json:"source"`
}

// Properties returns the four-property layout of the operation. Empty values are left out.
func (o AssemblyOperation) Properties() map[string]string {
	keys := AssemblyOperationKeys(o.OpNumber)
	out := make(map[string]string, 4)
	if o.WorkCenter != "" {
		out[keys.WorkCenter] = o.WorkCenter
	}
	if o.SetupMinutes != nil {
		out[keys.Setup] = formatMinutes(*o.SetupMinutes)
	}
	if o.RunMinutes != nil {
		out[keys.Run] = formatMinutes(*o.RunMinutes)
	}
	if o.Note != "" {
		out[keys.Note] = o.Note
	}
	return out
}

// AssemblyOperations numbers the result's routing suggestions from baseOp in steps of
// the configured increment, keeping the result's canonical order. baseOp <= 0 uses
// the configured base.
func (m *Mapper) AssemblyOperations(result *reconcile.Result, baseOp int) []AssemblyOperation {
	if result == nil {
		return []AssemblyOperation{}
	}
	if baseOp <= 0 {
		baseOp = m.defaults.AssemblyBaseOp
	}
	ops := make([]AssemblyOperation, 0, len(result.RoutingSuggestions))
	for i, rs := range result.RoutingSuggestions {
		setup, run := m.defaults.timingFor(rs.Operation, rs.SetupMinutes, rs.RunMinutes)
		ops = append(ops, AssemblyOperation{
			OpNumber:     baseOp + i*m.defaults.AssemblyOpStep,
			Operation:    rs.Operation,
			WorkCenter:   m.defaults.workCenterFor(rs.Operation, rs.WorkCenter),
			SetupMinutes: setup,
			RunMinutes:   run,
			Note:         rs.NoteText,
			Confidence:   rs.Confidence,
			Source:       noteSource(rs.Operation, rs.SourceNote),
		})
	}
	return ops
}

// GenerateAssemblySuggestions maps identity values and numbered routing operations
// into the assembly schema.
func (m *Mapper) GenerateAssemblySuggestions(result *reconcile.Result, current map[string]string, baseOp int) *SuggestionSet {
	b := newBuilder(current, m.defaults.NoteSeparator)
	if result == nil {
		return b.build()
	}
	m.mapIdentity(b, result)

	for _, op := range m.AssemblyOperations(result, baseOp) {
		keys := AssemblyOperationKeys(op.OpNumber)
		b.set(keys.WorkCenter, op.WorkCenter, domain.CategoryRouting, op.Confidence, op.Source)
		if op.SetupMinutes != nil {
			b.set(keys.Setup, formatMinutes(*op.SetupMinutes), domain.CategoryRouting, op.Confidence, op.Source)
		}
		if op.RunMinutes != nil {
			b.set(keys.Run, formatMinutes(*op.RunMinutes), domain.CategoryRouting, op.Confidence, op.Source)
		}
		b.appendNote(keys.Note, op.Note, domain.CategoryRouting, op.Confidence, op.Source)
	}
	return b.build()
}
