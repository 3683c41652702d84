package service

import (
	"fmt"

	"partsync/internal/domain"
	"partsync/internal/property"
	"partsync/internal/reconcile"
)

// ReconcileInput is the DTO for one reconcile + map pass.
type ReconcileInput struct {
	Kind      domain.DocumentKind
	Part      *domain.PartRecord
	Drawing   *domain.DrawingRecord
	Current   map[string]string
	BaseOp    int
	CreatedBy string
}

// Evaluation is the in-memory outcome of one pass.
type Evaluation struct {
	Kind        domain.DocumentKind     `json:"kind"`
	Result      *reconcile.Result       `json:"result"`
	Suggestions *property.SuggestionSet `json:"suggestions"`
	Summary     string                  `json:"summary"`
}

// Reconciler runs the engine and the mapper together. It has no I/O and is shared by
// the HTTP service and the batch CLI.
type Reconciler struct {
	engine *reconcile.Engine
	mapper *property.Mapper
}

// NewReconciler creates a Reconciler from prebuilt, immutable tables. The mapper
// compares materials with the engine's tables.
func NewReconciler(engine *reconcile.Engine, mapper *property.Mapper) *Reconciler {
	return &Reconciler{engine: engine, mapper: mapper.WithMaterials(engine)}
}

// Evaluate reconciles and maps input. The only error is an unknown document kind;
// an empty kind means part.
func (r *Reconciler) Evaluate(input *ReconcileInput) (*Evaluation, error) {
	kind := input.Kind
	if kind == "" {
		kind = domain.DocumentKindPart
	}
	if kind != domain.DocumentKindPart && kind != domain.DocumentKindAssembly {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDocumentKind, input.Kind)
	}

	res := r.engine.Reconcile(input.Part, input.Drawing)

	var set *property.SuggestionSet
	if kind == domain.DocumentKindAssembly {
		set = r.mapper.GenerateAssemblySuggestions(res, input.Current, input.BaseOp)
	} else {
		set = r.mapper.GeneratePartSuggestions(res, input.Current)
	}

	return &Evaluation{
		Kind:        kind,
		Result:      res,
		Suggestions: set,
		Summary:     res.Summary(),
	}, nil
}
