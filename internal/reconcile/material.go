package reconcile

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// materialNormalizer reduces a material callout to its grade so that
// "304 SS" and "AISI 304 Stainless Steel" compare equal.
type materialNormalizer struct {
	suffixes [][]string
	prefixes map[string]bool
}

func newMaterialNormalizer(suffixes, prefixes []string) *materialNormalizer {
	n := &materialNormalizer{prefixes: make(map[string]bool, len(prefixes))}
	for _, s := range suffixes {
		if toks := tokens(s); len(toks) > 0 {
			n.suffixes = append(n.suffixes, toks)
		}
	}
	// Longest suffix first so "carbon steel" wins over "steel".
	sort.SliceStable(n.suffixes, func(i, j int) bool {
		return len(n.suffixes[i]) > len(n.suffixes[j])
	})
	for _, p := range prefixes {
		for _, tok := range tokens(p) {
			n.prefixes[tok] = true
		}
	}
	return n
}

// Normalize returns the comparison key for a material name.
// A strip that would leave nothing is skipped.
func (n *materialNormalizer) Normalize(s string) string {
	toks := tokens(s)
	for len(toks) > 1 && n.prefixes[toks[0]] {
		toks = toks[1:]
	}
	for {
		stripped := false
		for _, suffix := range n.suffixes {
			if len(toks) > len(suffix) && hasSuffixTokens(toks, suffix) {
				toks = toks[:len(toks)-len(suffix)]
				stripped = true
				break
			}
		}
		if !stripped {
			break
		}
	}
	return strings.Join(toks, "")
}

// Equivalent reports whether two material names normalize to the same grade.
func (n *materialNormalizer) Equivalent(a, b string) bool {
	return n.Normalize(a) == n.Normalize(b)
}

func hasSuffixTokens(toks, suffix []string) bool {
	offset := len(toks) - len(suffix)
	for i, s := range suffix {
		if toks[offset+i] != s {
			return false
		}
	}
	return true
}

// tokens folds case, applies NFKC (OCR output often carries full-width forms) and
// splits on anything that is not a letter or digit.
func tokens(s string) []string {
	s = cases.Fold().String(norm.NFKC.String(s))
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// normalizeText is the comparison key for free-text identity fields.
func normalizeText(s string) string {
	s = cases.Fold().String(norm.NFKC.String(s))
	return strings.Join(strings.Fields(s), " ")
}
