package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"partsync/internal/domain"
	"partsync/internal/service"
)

// ReconcileHandler handles reconciliation endpoints.
type ReconcileHandler struct {
	reconcileService service.ReconcileService
}

// NewReconcileHandler creates a new ReconcileHandler.
func NewReconcileHandler(reconcileService service.ReconcileService) *ReconcileHandler {
	return &ReconcileHandler{reconcileService: reconcileService}
}

func (r *ReconcileRequest) toInput(createdBy string) *service.ReconcileInput {
	return &service.ReconcileInput{
		Kind:      r.Kind,
		Part:      r.Part,
		Drawing:   r.Drawing,
		Current:   r.Current,
		BaseOp:    r.BaseOp,
		CreatedBy: createdBy,
	}
}

// Reconcile handles POST /api/v1/reconcile
// @Summary Reconcile a part against its drawing
// @Description Compare the part model and drawing records, generate property suggestions, and store the run for review. Conflicts trigger an e-mail alert.
// @Tags reconcile
// @Accept json
// @Produce json
// @Param request body ReconcileRequest true "Part, drawing and current properties"
// @Success 201 {object} Response{data=domain.ReconciliationRun} "Stored run"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /reconcile [post]
func (h *ReconcileHandler) Reconcile(c *gin.Context) {
	var req ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid reconcile request body")
		return
	}

	run, err := h.reconcileService.Run(c.Request.Context(), req.toInput(callerName(c)))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, run)
}

// Preview handles POST /api/v1/reconcile/preview
// @Summary Preview a reconciliation
// @Description Run the engine and mapper without storing a run or sending alerts.
// @Tags reconcile
// @Accept json
// @Produce json
// @Param request body ReconcileRequest true "Part, drawing and current properties"
// @Success 200 {object} Response{data=service.Evaluation} "Evaluation"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Security BearerAuth
// @Router /reconcile/preview [post]
func (h *ReconcileHandler) Preview(c *gin.Context) {
	var req ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid reconcile request body")
		return
	}

	eval, err := h.reconcileService.Preview(c.Request.Context(), req.toInput(callerName(c)))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, eval)
}

// ListRuns handles GET /api/v1/runs
// @Summary List reconciliation runs
// @Tags runs
// @Produce json
// @Param status query string false "Filter by status" Enums(pending_review, partially_reviewed, reviewed, no_action)
// @Param kind query string false "Filter by document kind" Enums(part, assembly)
// @Param part_number query string false "Filter by part number prefix"
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Page size (max 100)" default(20)
// @Success 200 {object} PagedResponse{data=[]domain.ReconciliationRun} "Runs"
// @Security BearerAuth
// @Router /runs [get]
func (h *ReconcileHandler) ListRuns(c *gin.Context) {
	offset, limit := parsePagination(c)
	filter := domain.RunFilter{
		Status:     domain.RunStatus(c.Query("status")),
		Kind:       domain.DocumentKind(c.Query("kind")),
		PartNumber: c.Query("part_number"),
		Offset:     offset,
		Limit:      limit,
	}

	runs, total, err := h.reconcileService.ListRuns(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, runs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetRun handles GET /api/v1/runs/:id
// @Summary Get a reconciliation run
// @Tags runs
// @Produce json
// @Param id path string true "Run ID" format(uuid)
// @Success 200 {object} Response{data=domain.ReconciliationRun} "Run"
// @Failure 404 {object} ErrorResponseBody "Run not found"
// @Security BearerAuth
// @Router /runs/{id} [get]
func (h *ReconcileHandler) GetRun(c *gin.Context) {
	id, ok := parseRunID(c)
	if !ok {
		return
	}

	run, err := h.reconcileService.GetRun(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, run)
}

// GetStats handles GET /api/v1/stats
// @Summary Get run statistics
// @Tags runs
// @Produce json
// @Success 200 {object} Response{data=domain.RunStats} "Aggregate statistics"
// @Security BearerAuth
// @Router /stats [get]
func (h *ReconcileHandler) GetStats(c *gin.Context) {
	stats, err := h.reconcileService.GetStats(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stats)
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
