package reconcile

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const mmPerInch = 25.4

var (
	thicknessRe = regexp.MustCompile(`^(?:T\s*=\s*)?(\d+\s+\d+/\d+|\d+/\d+|\d*\.?\d+)\s*(MM|CM|INCHES|INCH|IN|"|'')?\.?\s*(?:THK|THICK|THICKNESS)?\.?$`)
	gaugeRe     = regexp.MustCompile(`^(\d{1,2})\s*(?:GA|GAUGE|GAGE)\.?(?:\s*(?:THK|THICK))?$`)
)

// sheetGauges is the manufacturers' standard gauge for sheet steel, in inches.
var sheetGauges = map[int]float64{
	7:  0.1793,
	8:  0.1644,
	9:  0.1495,
	10: 0.1345,
	11: 0.1196,
	12: 0.1046,
	13: 0.0897,
	14: 0.0747,
	15: 0.0673,
	16: 0.0598,
	17: 0.0538,
	18: 0.0478,
	19: 0.0418,
	20: 0.0359,
	22: 0.0299,
	24: 0.0239,
	26: 0.0179,
	28: 0.0149,
}

// ParseThickness converts a printed thickness callout to inches. Unitless values
// are inches. Anything unparseable, zero or negative reports ok=false.
func ParseThickness(s string) (float64, bool) {
	s = strings.ToUpper(strings.TrimSpace(norm.NFKC.String(s)))
	if s == "" {
		return 0, false
	}
	// European drawings print decimal commas.
	if !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}

	if m := gaugeRe.FindStringSubmatch(s); m != nil {
		g, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		in, ok := sheetGauges[g]
		return in, ok
	}

	m := thicknessRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, ok := parseNumber(m[1])
	if !ok {
		return 0, false
	}
	switch m[2] {
	case "MM":
		v /= mmPerInch
	case "CM":
		v = v * 10 / mmPerInch
	}
	if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// parseNumber handles decimals, simple fractions and mixed fractions ("1 1/4").
func parseNumber(s string) (float64, bool) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		if strings.Contains(fields[0], "/") {
			return parseFraction(fields[0])
		}
		v, err := strconv.ParseFloat(fields[0], 64)
		return v, err == nil
	case 2:
		whole, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return 0, false
		}
		frac, ok := parseFraction(fields[1])
		return whole + frac, ok
	}
	return 0, false
}

func parseFraction(s string) (float64, bool) {
	num, den, found := strings.Cut(s, "/")
	if !found {
		return 0, false
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, false
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0, false
	}
	return n / d, true
}

// validThickness reports whether a measured part thickness is usable.
func validThickness(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0) && *v > 0
}

// formatInches renders a thickness for display, rounded to 4 decimals.
func formatInches(v float64) string {
	return strconv.FormatFloat(math.Round(v*10000)/10000, 'f', -1, 64) + " in"
}
