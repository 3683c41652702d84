package reconcile

import (
	"fmt"
	"strings"

	"partsync/internal/domain"
)

// Field names a reconciled attribute of a part.
type Field string

const (
	FieldDescription Field = "Description"
	FieldRevision    Field = "Revision"
	FieldPartNumber  Field = "PartNumber"
	FieldMaterial    Field = "Material"
	FieldThickness   Field = "Thickness"
)

const (
	// SourceTitleBlock is the provenance recorded on every gap-fill.
	SourceTitleBlock = "drawing title block"
	// RecommendUsePartValue is the only conflict recommendation: the solid model is measured.
	RecommendUsePartValue = "use part value"
)

// Confirmation records agreement between the part and drawing values for a field.
type Confirmation struct {
	Field        Field  `json:"field"`
	ModelValue   string `json:"model_value"`
	DrawingValue string `json:"drawing_value"`
}

// Conflict records a disagreement that needs a human decision. Conflicts never auto-resolve.
type Conflict struct {
	Field          Field           `json:"field"`
	ModelValue     string          `json:"model_value"`
	DrawingValue   string          `json:"drawing_value"`
	Severity       domain.Severity `json:"severity"`
	Recommendation string          `json:"recommendation"`
}

// GapFill is a drawing value proposed for a field that is empty on the part.
type GapFill struct {
	Field      Field   `json:"field"`
	Value      string  `json:"value"`
	Source     string  `json:"source"`
	Confidence float64 `json:"confidence"`
}

// RoutingSuggestion is a routing hint with its canonical ordering number assigned.
// SuggestedOpNumber orders the list only; it is not the schema slot.
type RoutingSuggestion struct {
	Operation         domain.RoutingOp `json:"operation"`
	WorkCenter        string           `json:"work_center,omitempty"`
	NoteText          string           `json:"note_text"`
	SourceNote        string           `json:"source_note,omitempty"`
	Confidence        float64          `json:"confidence"`
	SetupMinutes      *float64         `json:"setup_minutes,omitempty"`
	RunMinutes        *float64         `json:"run_minutes,omitempty"`
	SuggestedOpNumber int              `json:"suggested_op_number"`
}

// RenameSuggestion proposes a canonical file name. The rename collaborator must
// always ask the user before touching the file system.
type RenameSuggestion struct {
	CurrentPath          string `json:"current_path"`
	CurrentName          string `json:"current_name"`
	SuggestedName        string `json:"suggested_name"`
	Reason               string `json:"reason"`
	RequiresUserApproval bool   `json:"requires_user_approval"`
}

// Result is the outcome of reconciling one part record against one drawing record.
type Result struct {
	Confirmations      []Confirmation      `json:"confirmations"`
	Conflicts          []Conflict          `json:"conflicts"`
	GapFills           []GapFill           `json:"gap_fills"`
	RoutingSuggestions []RoutingSuggestion `json:"routing_suggestions"`
	Rename             *RenameSuggestion   `json:"rename,omitempty"`
	BOM                []domain.BOMRow     `json:"bom"`
}

func newResult() *Result {
	return &Result{
		Confirmations:      []Confirmation{},
		Conflicts:          []Conflict{},
		GapFills:           []GapFill{},
		RoutingSuggestions: []RoutingSuggestion{},
		BOM:                []domain.BOMRow{},
	}
}

// HasConflicts returns true if any field disagrees between part and drawing.
func (r *Result) HasConflicts() bool { return r != nil && len(r.Conflicts) > 0 }

// HasGapFills returns true if the drawing can fill any empty part field.
func (r *Result) HasGapFills() bool { return r != nil && len(r.GapFills) > 0 }

// HasRoutingSuggestions returns true if the drawing notes produced routing operations.
func (r *Result) HasRoutingSuggestions() bool { return r != nil && len(r.RoutingSuggestions) > 0 }

// HasRenameSuggestion returns true if the file name differs from the canonical name.
func (r *Result) HasRenameSuggestion() bool { return r != nil && r.Rename != nil }

// HasActions returns true if anything in the result needs operator attention.
func (r *Result) HasActions() bool {
	return r.HasConflicts() || r.HasGapFills() || r.HasRoutingSuggestions() || r.HasRenameSuggestion()
}

// GapFillFor returns the gap-fill recorded for field, if any.
func (r *Result) GapFillFor(field Field) (GapFill, bool) {
	if r == nil {
		return GapFill{}, false
	}
	for _, g := range r.GapFills {
		if g.Field == field {
			return g, true
		}
	}
	return GapFill{}, false
}

// IsConfirmed returns true if field was present and equivalent on both sides.
func (r *Result) IsConfirmed(field Field) bool {
	if r == nil {
		return false
	}
	for _, c := range r.Confirmations {
		if c.Field == field {
			return true
		}
	}
	return false
}

// Summary returns a one-line human-readable description of the result.
func (r *Result) Summary() string {
	if r == nil {
		return "No drawing data"
	}
	if !r.HasActions() {
		if len(r.Confirmations) > 0 {
			return fmt.Sprintf("No action needed; %s confirmed", plural(len(r.Confirmations), "field"))
		}
		return "No action needed"
	}

	var parts []string
	if r.HasConflicts() {
		parts = append(parts, plural(len(r.Conflicts), "conflict"))
	}
	if r.HasGapFills() {
		parts = append(parts, plural(len(r.GapFills), "gap-fill"))
	}
	if r.HasRoutingSuggestions() {
		parts = append(parts, plural(len(r.RoutingSuggestions), "routing suggestion"))
	}
	if r.HasRenameSuggestion() {
		parts = append(parts, "rename suggested")
	}
	if len(r.Confirmations) > 0 {
		parts = append(parts, fmt.Sprintf("%s confirmed", plural(len(r.Confirmations), "field")))
	}
	return strings.Join(parts, ", ")
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
