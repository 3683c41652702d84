package domain

// RoutingOp is the manufacturing operation category a drawing note was classified into.
type RoutingOp string

const (
	RoutingOpDeburr          RoutingOp = "Deburr"
	RoutingOpFinish          RoutingOp = "Finish"
	RoutingOpHeatTreat       RoutingOp = "HeatTreat"
	RoutingOpWeld            RoutingOp = "Weld"
	RoutingOpTap             RoutingOp = "Tap"
	RoutingOpDrill           RoutingOp = "Drill"
	RoutingOpMachine         RoutingOp = "Machine"
	RoutingOpInspect         RoutingOp = "Inspect"
	RoutingOpHardware        RoutingOp = "Hardware"
	RoutingOpProcessOverride RoutingOp = "ProcessOverride"
	RoutingOpOutsideProcess  RoutingOp = "OutsideProcess"
)

// AllRoutingOps lists every routing operation category in declaration order.
var AllRoutingOps = []RoutingOp{
	RoutingOpDeburr,
	RoutingOpFinish,
	RoutingOpHeatTreat,
	RoutingOpWeld,
	RoutingOpTap,
	RoutingOpDrill,
	RoutingOpMachine,
	RoutingOpInspect,
	RoutingOpHardware,
	RoutingOpProcessOverride,
	RoutingOpOutsideProcess,
}

// Valid reports whether op is one of the known categories.
func (op RoutingOp) Valid() bool {
	for _, known := range AllRoutingOps {
		if op == known {
			return true
		}
	}
	return false
}

// Severity grades a conflict between the part and drawing records.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// SuggestionCategory groups property suggestions for the approval UI.
type SuggestionCategory string

const (
	CategoryIdentity SuggestionCategory = "identity"
	CategoryRouting  SuggestionCategory = "routing"
	CategoryMaterial SuggestionCategory = "material"
	CategoryOther    SuggestionCategory = "other"
)

// DocumentKind selects which property layout a run targets.
type DocumentKind string

const (
	DocumentKindPart     DocumentKind = "part"
	DocumentKindAssembly DocumentKind = "assembly"
)

// RunStatus tracks the review lifecycle of a persisted reconciliation run.
type RunStatus string

const (
	RunStatusPendingReview RunStatus = "pending_review"
	RunStatusPartial       RunStatus = "partially_reviewed"
	RunStatusReviewed      RunStatus = "reviewed"
	RunStatusNoAction      RunStatus = "no_action"
)

// Decision is an operator's verdict on a single property suggestion.
type Decision string

const (
	DecisionAccepted Decision = "accepted"
	DecisionRejected Decision = "rejected"
)

// ExportFormat is the file format of a review sheet export.
type ExportFormat string

const (
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

// ExportContentTypes maps export formats to their MIME content type.
var ExportContentTypes = map[ExportFormat]string{
	ExportFormatCSV:  "text/csv",
	ExportFormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// UserRole is the role carried in access tokens issued by the shop identity provider.
type UserRole string

const (
	RoleEngineer UserRole = "engineer"
	RoleOperator UserRole = "operator"
	RoleService  UserRole = "service"
)
