package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"partsync/internal/service"
)

// ReviewHandler handles the approval endpoints for stored runs.
type ReviewHandler struct {
	reviewService service.ReviewService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// Decide handles POST /api/v1/runs/:id/decisions
// @Summary Accept or reject suggestions
// @Description Record operator decisions for property suggestions in a run. The whole batch is rejected if any item is invalid.
// @Tags review
// @Accept json
// @Produce json
// @Param id path string true "Run ID" format(uuid)
// @Param request body DecideRequest true "Decisions"
// @Success 200 {object} Response{data=service.ReviewOutput} "Decisions and run status"
// @Failure 400 {object} ErrorResponseBody "Invalid decision or unknown property key"
// @Failure 404 {object} ErrorResponseBody "Run not found"
// @Security BearerAuth
// @Router /runs/{id}/decisions [post]
func (h *ReviewHandler) Decide(c *gin.Context) {
	id, ok := parseRunID(c)
	if !ok {
		return
	}

	var req DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "decisions must be a non-empty list")
		return
	}

	out, err := h.reviewService.Decide(c.Request.Context(), &service.DecideInput{
		RunID:     id,
		DecidedBy: callerName(c),
		Items:     req.Decisions,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, out)
}

// ListDecisions handles GET /api/v1/runs/:id/decisions
// @Summary List decisions for a run
// @Tags review
// @Produce json
// @Param id path string true "Run ID" format(uuid)
// @Success 200 {object} Response{data=[]domain.SuggestionDecision} "Decisions"
// @Failure 404 {object} ErrorResponseBody "Run not found"
// @Security BearerAuth
// @Router /runs/{id}/decisions [get]
func (h *ReviewHandler) ListDecisions(c *gin.Context) {
	id, ok := parseRunID(c)
	if !ok {
		return
	}

	decisions, err := h.reviewService.ListDecisions(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, decisions)
}

// Approved handles GET /api/v1/runs/:id/approved
// @Summary Get approved property values
// @Description Returns the property key/value map the writer may apply: accepted suggestions only.
// @Tags review
// @Produce json
// @Param id path string true "Run ID" format(uuid)
// @Success 200 {object} Response{data=map[string]string} "Approved properties"
// @Failure 404 {object} ErrorResponseBody "Run not found"
// @Security BearerAuth
// @Router /runs/{id}/approved [get]
func (h *ReviewHandler) Approved(c *gin.Context) {
	id, ok := parseRunID(c)
	if !ok {
		return
	}

	props, err := h.reviewService.ApprovedProperties(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, props)
}
