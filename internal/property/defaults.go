package property

import (
	"strings"

	"partsync/internal/config"
	"partsync/internal/domain"
)

// Timing is a default setup/run time in minutes.
type Timing struct {
	SetupMinutes float64
	RunMinutes   float64
}

// Defaults holds the immutable tables the mapper falls back to when a hint is silent.
type Defaults struct {
	OtherSlotOpNumbers [OtherSlotCount]int
	AssemblyBaseOp     int
	AssemblyOpStep     int
	NoteSeparator      string
	Timings            map[domain.RoutingOp]Timing
	WorkCenters        map[domain.RoutingOp]string
}

// DefaultTimings is the shop's standard per-category setup/run table.
func DefaultTimings() map[domain.RoutingOp]Timing {
	return map[domain.RoutingOp]Timing{
		domain.RoutingOpWeld:     {SetupMinutes: 15, RunMinutes: 10},
		domain.RoutingOpInspect:  {SetupMinutes: 5, RunMinutes: 2},
		domain.RoutingOpHardware: {SetupMinutes: 10, RunMinutes: 1},
		domain.RoutingOpMachine:  {SetupMinutes: 30, RunMinutes: 5},
		domain.RoutingOpDrill:    {SetupMinutes: 10, RunMinutes: 2},
		domain.RoutingOpDeburr:   {SetupMinutes: 5, RunMinutes: 1},
		domain.RoutingOpTap:      {SetupMinutes: 10, RunMinutes: 1},
	}
}

// DefaultWorkCenters maps categories to the work center used when a hint names none.
func DefaultWorkCenters() map[domain.RoutingOp]string {
	return map[domain.RoutingOp]string{
		domain.RoutingOpWeld:   "F400",
		domain.RoutingOpDeburr: "F210",
		domain.RoutingOpTap:    "F220",
	}
}

// DefaultDefaults returns the built-in mapper tables.
func DefaultDefaults() Defaults {
	return Defaults{
		OtherSlotOpNumbers: [OtherSlotCount]int{60, 70, 80, 90, 100, 110},
		AssemblyBaseOp:     20,
		AssemblyOpStep:     10,
		NoteSeparator:      "; ",
		Timings:            DefaultTimings(),
		WorkCenters:        DefaultWorkCenters(),
	}
}

// DefaultsFromConfig overlays configured routing values onto DefaultDefaults.
// Category keys match case-insensitively since viper lower-cases map keys.
func DefaultsFromConfig(cfg *config.RoutingConfig) Defaults {
	d := DefaultDefaults()
	if cfg == nil {
		return d
	}
	if len(cfg.OtherSlotOpNumbers) == OtherSlotCount {
		copy(d.OtherSlotOpNumbers[:], cfg.OtherSlotOpNumbers)
	}
	if cfg.AssemblyBaseOp > 0 {
		d.AssemblyBaseOp = cfg.AssemblyBaseOp
	}
	if cfg.AssemblyOpStep > 0 {
		d.AssemblyOpStep = cfg.AssemblyOpStep
	}
	if cfg.NoteSeparator != "" {
		d.NoteSeparator = cfg.NoteSeparator
	}
	for key, t := range cfg.Timings {
		if op, ok := lookupOp(key); ok {
			d.Timings[op] = Timing{SetupMinutes: t.SetupMinutes, RunMinutes: t.RunMinutes}
		}
	}
	for key, wc := range cfg.WorkCenters {
		if op, ok := lookupOp(key); ok {
			d.WorkCenters[op] = wc
		}
	}
	return d
}

func lookupOp(key string) (domain.RoutingOp, bool) {
	for _, op := range domain.AllRoutingOps {
		if strings.EqualFold(key, string(op)) {
			return op, true
		}
	}
	return "", false
}

func (d Defaults) clone() Defaults {
	out := d
	out.Timings = make(map[domain.RoutingOp]Timing, len(d.Timings))
	for op, t := range d.Timings {
		out.Timings[op] = t
	}
	out.WorkCenters = make(map[domain.RoutingOp]string, len(d.WorkCenters))
	for op, wc := range d.WorkCenters {
		out.WorkCenters[op] = wc
	}
	if out.AssemblyBaseOp <= 0 {
		out.AssemblyBaseOp = 20
	}
	if out.AssemblyOpStep <= 0 {
		out.AssemblyOpStep = 10
	}
	if out.NoteSeparator == "" {
		out.NoteSeparator = "; "
	}
	return out
}

// timingFor returns the hint's own minutes where present, else the category default.
func (d Defaults) timingFor(op domain.RoutingOp, setup, run *float64) (s, r *float64) {
	def, hasDefault := d.Timings[op]
	if setup != nil {
		v := *setup
		s = &v
	} else if hasDefault {
		v := def.SetupMinutes
		s = &v
	}
	if run != nil {
		v := *run
		r = &v
	} else if hasDefault {
		v := def.RunMinutes
		r = &v
	}
	return s, r
}

func (d Defaults) workCenterFor(op domain.RoutingOp, hinted string) string {
	if hinted != "" {
		return hinted
	}
	return d.WorkCenters[op]
}
