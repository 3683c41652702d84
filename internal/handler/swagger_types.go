package handler

import (
	"partsync/internal/domain"
	"partsync/internal/service"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// ReconcileRequest represents the reconcile request body.
type ReconcileRequest struct {
	Kind    domain.DocumentKind   `json:"kind" example:"part"`
	Part    *domain.PartRecord    `json:"part"`
	Drawing *domain.DrawingRecord `json:"drawing"`
	Current map[string]string     `json:"current" example:"Revision:B,F210_RN:BREAK ALL EDGES"`
	BaseOp  int                   `json:"base_op" example:"20"`
}

// DecideRequest represents the decisions request body.
type DecideRequest struct {
	Decisions []service.DecisionItem `json:"decisions" binding:"required,min=1,dive"`
}

// --- Response Types ---

// Response is the generic success envelope.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data"`
}

// PagedResponse is the success envelope for paginated listings.
type PagedResponse struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data"`
	Meta    PagMeta     `json:"meta"`
}

// ErrorResponseBody is the error envelope.
type ErrorResponseBody struct {
	Success bool     `json:"success" example:"false"`
	Error   APIError `json:"error"`
}
