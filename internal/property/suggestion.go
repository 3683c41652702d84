package property

import (
	"encoding/json"
	"strings"

	"partsync/internal/domain"
)

// PropertySuggestion is one proposed write into the document's property map.
type PropertySuggestion struct {
	Key          string                    `json:"key"`
	Value        string                    `json:"value"`
	Category     domain.SuggestionCategory `json:"category"`
	CurrentValue string                    `json:"current_value"`
	Confidence   float64                   `json:"confidence"`
	Source       string                    `json:"source"`
}

// IsGapFill is true when the property is currently empty and would receive a value.
func (s PropertySuggestion) IsGapFill() bool {
	return s.Value != s.CurrentValue && strings.TrimSpace(s.CurrentValue) == ""
}

// IsOverride is true when a different, non-empty current value would be replaced.
func (s PropertySuggestion) IsOverride() bool {
	return s.Value != s.CurrentValue && strings.TrimSpace(s.CurrentValue) != ""
}

// MarshalJSON adds the derived flags for the approval UI.
func (s PropertySuggestion) MarshalJSON() ([]byte, error) {
	type alias PropertySuggestion
	return json.Marshal(struct {
		alias
		IsGapFill  bool `json:"is_gap_fill"`
		IsOverride bool `json:"is_override"`
	}{alias(s), s.IsGapFill(), s.IsOverride()})
}

// UnassignedSuggestion records information that could not be placed into the schema,
// such as a seventh flexible routing operation. Nothing is dropped silently.
type UnassignedSuggestion struct {
	Operation  domain.RoutingOp `json:"operation,omitempty"`
	Field      string           `json:"field,omitempty"`
	Value      string           `json:"value"`
	WorkCenter string           `json:"work_center,omitempty"`
	Reason     string           `json:"reason"`
}

// SuggestionSet is the ordered output of the mapper.
type SuggestionSet struct {
	Suggestions []PropertySuggestion   `json:"suggestions"`
	Unassigned  []UnassignedSuggestion `json:"unassigned"`
}

// HasUnassigned returns true if anything could not be placed into the schema.
func (s *SuggestionSet) HasUnassigned() bool {
	return s != nil && len(s.Unassigned) > 0
}

// Find returns the suggestion for key, if one was generated.
func (s *SuggestionSet) Find(key string) (PropertySuggestion, bool) {
	if s == nil {
		return PropertySuggestion{}, false
	}
	for _, sug := range s.Suggestions {
		if sug.Key == key {
			return sug, true
		}
	}
	return PropertySuggestion{}, false
}

// Properties flattens the suggestions into the key/value map a property writer applies.
func (s *SuggestionSet) Properties() map[string]string {
	out := make(map[string]string)
	if s == nil {
		return out
	}
	for _, sug := range s.Suggestions {
		out[sug.Key] = sug.Value
	}
	return out
}
