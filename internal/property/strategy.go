package property

import "partsync/internal/domain"

// strategy is how a routing category is placed into the part schema.
type strategy int

const (
	strategyUnknown strategy = iota
	strategyFixedSlot
	strategyOutsideProcess
	strategyFlexibleSlot
)

// fixedSlot is a schema location dedicated to exactly one routing category.
// hasFlag is false when the slot stores a work center instead of an enable flag.
type fixedSlot struct {
	hasFlag    bool
	flag       Field
	workCenter Field
	note       Field
}

var fixedSlots = map[domain.RoutingOp]fixedSlot{
	domain.RoutingOpDeburr:          {hasFlag: true, flag: FieldDeburrEnable, note: FieldDeburrNote},
	domain.RoutingOpTap:             {hasFlag: true, flag: FieldTapEnable, note: FieldTapNote},
	domain.RoutingOpProcessOverride: {workCenter: FieldOverrideWorkCenter, note: FieldOverrideNote},
}

// strategyFor must list every domain.RoutingOp; TestStrategyFor_CoversEveryOperation
// fails when a category is added without a case here.
func strategyFor(op domain.RoutingOp) strategy {
	switch op {
	case domain.RoutingOpDeburr, domain.RoutingOpTap, domain.RoutingOpProcessOverride:
		return strategyFixedSlot
	case domain.RoutingOpOutsideProcess, domain.RoutingOpFinish, domain.RoutingOpHeatTreat:
		return strategyOutsideProcess
	case domain.RoutingOpWeld, domain.RoutingOpInspect, domain.RoutingOpHardware,
		domain.RoutingOpMachine, domain.RoutingOpDrill:
		return strategyFlexibleSlot
	default:
		return strategyUnknown
	}
}
