package reconcile

import (
	"math"
	"strings"

	"partsync/internal/config"
	"partsync/internal/domain"
)

const (
	// MinGapFillConfidence is the lowest confidence a title-block gap-fill may carry.
	MinGapFillConfidence = 0.85

	defaultGapFillConfidence  = 0.90
	defaultThicknessTolerance = 0.005 // inches
	unknownOpNumber           = 1000
)

// Tables holds the immutable lookup data the engine needs. Build it once and hand it
// to NewEngine; the engine keeps its own copy.
type Tables struct {
	ThicknessTolerance float64
	GapFillConfidence  float64
	MaterialSuffixes   []string
	MaterialPrefixes   []string
	OpNumbers          map[domain.RoutingOp]int
}

// DefaultOpNumbers is the canonical ordering key per routing category.
func DefaultOpNumbers() map[domain.RoutingOp]int {
	return map[domain.RoutingOp]int{
		domain.RoutingOpProcessOverride: 20,
		domain.RoutingOpDeburr:          30,
		domain.RoutingOpTap:             35,
		domain.RoutingOpMachine:         40,
		domain.RoutingOpDrill:           45,
		domain.RoutingOpWeld:            50,
		domain.RoutingOpHardware:        55,
		domain.RoutingOpOutsideProcess:  60,
		domain.RoutingOpHeatTreat:       70,
		domain.RoutingOpFinish:          80,
		domain.RoutingOpInspect:         90,
	}
}

// DefaultMaterialSuffixes are trailing words dropped before comparing material names.
func DefaultMaterialSuffixes() []string {
	return []string{
		"stainless steel", "stainless", "sst", "ss",
		"carbon steel", "mild steel", "cold rolled", "hot rolled", "steel",
		"crs", "hrs", "cs",
		"aluminum", "aluminium", "alum", "al",
	}
}

// DefaultMaterialPrefixes are leading designation words dropped before comparison.
func DefaultMaterialPrefixes() []string {
	return []string{"aisi", "astm", "sae", "type", "uns"}
}

// DefaultTables returns the shop's standard reconciliation tables.
func DefaultTables() Tables {
	return Tables{
		ThicknessTolerance: defaultThicknessTolerance,
		GapFillConfidence:  defaultGapFillConfidence,
		MaterialSuffixes:   DefaultMaterialSuffixes(),
		MaterialPrefixes:   DefaultMaterialPrefixes(),
		OpNumbers:          DefaultOpNumbers(),
	}
}

// TablesFromConfig overlays configured values onto DefaultTables. Zero values keep
// the defaults. Op number keys match routing categories case-insensitively.
func TablesFromConfig(cfg *config.ReconcileConfig) Tables {
	t := DefaultTables()
	if cfg == nil {
		return t
	}
	if cfg.ThicknessToleranceIn > 0 {
		t.ThicknessTolerance = cfg.ThicknessToleranceIn
	}
	if cfg.GapFillConfidence > 0 {
		t.GapFillConfidence = cfg.GapFillConfidence
	}
	if len(cfg.MaterialSuffixes) > 0 {
		t.MaterialSuffixes = cfg.MaterialSuffixes
	}
	if len(cfg.MaterialPrefixes) > 0 {
		t.MaterialPrefixes = cfg.MaterialPrefixes
	}
	for key, n := range cfg.OpNumbers {
		for _, op := range domain.AllRoutingOps {
			if strings.EqualFold(key, string(op)) {
				t.OpNumbers[op] = n
			}
		}
	}
	return t
}

// clone deep-copies t and clamps the gap-fill confidence into [MinGapFillConfidence, 1].
func (t Tables) clone() Tables {
	out := Tables{
		ThicknessTolerance: t.ThicknessTolerance,
		GapFillConfidence:  t.GapFillConfidence,
		MaterialSuffixes:   append([]string(nil), t.MaterialSuffixes...),
		MaterialPrefixes:   append([]string(nil), t.MaterialPrefixes...),
		OpNumbers:          make(map[domain.RoutingOp]int, len(t.OpNumbers)),
	}
	for op, n := range t.OpNumbers {
		out.OpNumbers[op] = n
	}
	if out.ThicknessTolerance <= 0 || math.IsNaN(out.ThicknessTolerance) {
		out.ThicknessTolerance = defaultThicknessTolerance
	}
	if out.GapFillConfidence < MinGapFillConfidence || math.IsNaN(out.GapFillConfidence) {
		out.GapFillConfidence = MinGapFillConfidence
	}
	if out.GapFillConfidence > 1 {
		out.GapFillConfidence = 1
	}
	return out
}

// OpNumber returns the canonical ordering key for op. Unknown categories sort last.
func (t Tables) OpNumber(op domain.RoutingOp) int {
	if n, ok := t.OpNumbers[op]; ok {
		return n
	}
	return unknownOpNumber
}
