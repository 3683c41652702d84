package reconcile

import (
	"fmt"
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"partsync/internal/domain"
)

const invalidFileNameChars = `<>:"/\|?*`

// CanonicalFileName builds the shop's `{PartNumber}_{Description}` file stem.
// The description part is dropped when empty.
func CanonicalFileName(partNumber, description string) string {
	pn := sanitizeFileNamePart(partNumber)
	if pn == "" {
		return ""
	}
	desc := sanitizeFileNamePart(description)
	if desc == "" {
		return pn
	}
	return pn + "_" + desc
}

func sanitizeFileNamePart(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) || strings.ContainsRune(invalidFileNameChars, r) {
			return '-'
		}
		return r
	}, s)
	s = strings.Join(strings.Fields(s), " ")
	return strings.Trim(s, " .")
}

// baseName splits on both separators; CAD paths arrive in Windows form.
func baseName(p string) string {
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		return p[i+1:]
	}
	return p
}

func (e *Engine) renameSuggestion(part domain.PartRecord, drawing *domain.DrawingRecord) *RenameSuggestion {
	current := strings.TrimSpace(part.FilePath)
	if current == "" {
		return nil
	}
	partNumber := firstNonEmpty(drawing.PartNumber, part.PartNumber)
	if partNumber == "" {
		return nil
	}
	canonical := CanonicalFileName(partNumber, firstNonEmpty(drawing.Description, part.Description))
	if canonical == "" {
		return nil
	}

	name := baseName(current)
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	if strings.EqualFold(stem, canonical) {
		return nil
	}
	return &RenameSuggestion{
		CurrentPath:          current,
		CurrentName:          name,
		SuggestedName:        canonical + ext,
		Reason:               fmt.Sprintf("file name %q does not follow PartNumber_Description", name),
		RequiresUserApproval: true,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
