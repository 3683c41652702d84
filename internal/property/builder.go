package property

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"partsync/internal/domain"
)

// builder accumulates suggestions in emission order. A key is emitted at most once:
// note fields merge, other fields keep the first value.
type builder struct {
	current    map[string]string
	separator  string
	order      []string
	byKey      map[string]*PropertySuggestion
	unassigned []UnassignedSuggestion
}

func newBuilder(current map[string]string, separator string) *builder {
	return &builder{
		current:   current,
		separator: separator,
		byKey:     make(map[string]*PropertySuggestion),
	}
}

// currentValue looks the key up exactly, then case-insensitively; CAD property
// names are not case sensitive.
func (b *builder) currentValue(key string) string {
	if v, ok := b.current[key]; ok {
		return v
	}
	for k, v := range b.current {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

// set proposes value for key. It returns the already-pending value and false when a
// different value was proposed earlier in the same call.
func (b *builder) set(key, value string, cat domain.SuggestionCategory, confidence float64, source string) (string, bool) {
	if value == "" {
		return "", true
	}
	if s, ok := b.byKey[key]; ok {
		if s.Value != value {
			return s.Value, false
		}
		s.Confidence = minFloat(s.Confidence, confidence)
		return value, true
	}
	b.add(key, value, cat, confidence, source)
	return value, true
}

// appendNote applies the note-append policy: existing text first, new text after.
// Text equal to a whole entry of the note is not repeated.
func (b *builder) appendNote(key, text string, cat domain.SuggestionCategory, confidence float64, source string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if s, ok := b.byKey[key]; ok {
		if !b.hasEntry(s.Value, text) {
			s.Value = s.Value + b.separator + text
		}
		s.Confidence = minFloat(s.Confidence, confidence)
		return
	}
	existing := strings.TrimSpace(b.currentValue(key))
	value := text
	switch {
	case existing == "":
	case b.hasEntry(existing, text):
		value = existing
	default:
		value = existing + b.separator + text
	}
	b.add(key, value, cat, confidence, source)
}

func (b *builder) add(key, value string, cat domain.SuggestionCategory, confidence float64, source string) {
	b.order = append(b.order, key)
	b.byKey[key] = &PropertySuggestion{
		Key:          key,
		Value:        value,
		Category:     cat,
		CurrentValue: b.currentValue(key),
		Confidence:   confidence,
		Source:       source,
	}
}

func (b *builder) unassign(u UnassignedSuggestion) {
	b.unassigned = append(b.unassigned, u)
}

// build drops no-op suggestions whose value already matches the current property.
func (b *builder) build() *SuggestionSet {
	set := &SuggestionSet{
		Suggestions: make([]PropertySuggestion, 0, len(b.order)),
		Unassigned:  append([]UnassignedSuggestion{}, b.unassigned...),
	}
	for _, key := range b.order {
		s := *b.byKey[key]
		if strings.TrimSpace(s.Value) == strings.TrimSpace(s.CurrentValue) {
			continue
		}
		set.Suggestions = append(set.Suggestions, s)
	}
	return set
}

// hasEntry splits note on the separator and compares each entry with text,
// trimmed and case-folded. A substring of an entry is a different instruction.
func (b *builder) hasEntry(note, text string) bool {
	fold := cases.Fold()
	want := fold.String(strings.TrimSpace(text))
	sep := strings.TrimSpace(b.separator)
	if sep == "" {
		sep = b.separator
	}
	entries := []string{note}
	if sep != "" {
		entries = strings.Split(note, sep)
	}
	for _, e := range entries {
		if fold.String(strings.TrimSpace(e)) == want {
			return true
		}
	}
	return false
}

func minFloat(a, b float64) float64 {
	if b < a {
		return b
	}
	return a
}

func noteSource(op domain.RoutingOp, sourceNote string) string {
	if sourceNote == "" {
		return fmt.Sprintf("drawing note (%s)", op)
	}
	return fmt.Sprintf("drawing note (%s): %s", op, sourceNote)
}
