// Package export renders reconciliation runs as review sheets for engineering sign-off.
package export

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"partsync/internal/domain"
	"partsync/internal/property"
	"partsync/internal/reconcile"
)

// ReviewSheet is everything a review sheet shows about one run.
type ReviewSheet struct {
	RunID       uuid.UUID
	Kind        domain.DocumentKind
	PartNumber  string
	FilePath    string
	Status      domain.RunStatus
	Summary     string
	CreatedAt   time.Time
	Result      *reconcile.Result
	Suggestions []property.PropertySuggestion
	Unassigned  []property.UnassignedSuggestion
	Decisions   map[string]domain.SuggestionDecision
}

// suggestionColumns is the header of the suggestion table in both formats.
var suggestionColumns = []string{
	"Property",
	"Category",
	"Current Value",
	"Suggested Value",
	"Change",
	"Confidence",
	"Source",
	"Decision",
	"Decided By",
	"Decision Note",
}

const (
	changeGapFill    = "gap-fill"
	changeOverride   = "override"
	changeUnassigned = "unassigned"
)

func suggestionToRow(s *property.PropertySuggestion, decisions map[string]domain.SuggestionDecision) []string {
	row := make([]string, len(suggestionColumns))
	row[0] = s.Key
	row[1] = string(s.Category)
	row[2] = s.CurrentValue
	row[3] = s.Value
	switch {
	case s.IsGapFill():
		row[4] = changeGapFill
	case s.IsOverride():
		row[4] = changeOverride
	}
	row[5] = formatConfidence(s.Confidence)
	row[6] = s.Source
	if d, ok := decisions[s.Key]; ok {
		row[7] = string(d.Decision)
		row[8] = d.DecidedBy
		row[9] = d.Note
	}
	return row
}

// unassignedToRow places an unassigned record into the suggestion table layout so
// nothing is lost in the single-table CSV.
func unassignedToRow(u *property.UnassignedSuggestion) []string {
	row := make([]string, len(suggestionColumns))
	row[0] = u.Field
	if row[0] == "" {
		row[0] = string(u.Operation)
	}
	row[1] = changeUnassigned
	row[3] = u.Value
	row[4] = changeUnassigned
	row[6] = u.Reason
	return row
}

func formatConfidence(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a part number for use in object keys and
// Content-Disposition, truncated to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns `{part}_review_{YYYY-MM-DD}.{ext}`; runs without a part
// number use the run ID.
func BuildFilename(sheet *ReviewSheet, format domain.ExportFormat, now time.Time) string {
	name := SanitizeFilename(sheet.PartNumber)
	if name == "" {
		name = sheet.RunID.String()
	}
	return fmt.Sprintf("%s_review_%s.%s", name, now.Format("2006-01-02"), format)
}
