package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"partsync/internal/domain"
	"partsync/internal/service"
)

// ExportHandler handles review sheet exports.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

func exportFormat(c *gin.Context) domain.ExportFormat {
	return domain.ExportFormat(strings.ToLower(c.DefaultQuery("format", string(domain.ExportFormatXLSX))))
}

// Export handles POST /api/v1/runs/:id/export
// @Summary Export a review sheet to storage
// @Description Render the run as a CSV or XLSX review sheet, upload it, and return a presigned download URL.
// @Tags export
// @Produce json
// @Param id path string true "Run ID" format(uuid)
// @Param format query string false "Sheet format" Enums(csv, xlsx) default(xlsx)
// @Success 201 {object} Response{data=service.ExportOutput} "Uploaded sheet"
// @Failure 400 {object} ErrorResponseBody "Unsupported format"
// @Failure 404 {object} ErrorResponseBody "Run not found"
// @Security BearerAuth
// @Router /runs/{id}/export [post]
func (h *ExportHandler) Export(c *gin.Context) {
	id, ok := parseRunID(c)
	if !ok {
		return
	}

	out, err := h.exportService.Export(c.Request.Context(), id, exportFormat(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, out)
}

// Download handles GET /api/v1/runs/:id/export
// @Summary Download a review sheet
// @Tags export
// @Produce octet-stream
// @Param id path string true "Run ID" format(uuid)
// @Param format query string false "Sheet format" Enums(csv, xlsx) default(xlsx)
// @Success 200 {file} file "Review sheet"
// @Failure 400 {object} ErrorResponseBody "Unsupported format"
// @Failure 404 {object} ErrorResponseBody "Run not found"
// @Security BearerAuth
// @Router /runs/{id}/export [get]
func (h *ExportHandler) Download(c *gin.Context) {
	id, ok := parseRunID(c)
	if !ok {
		return
	}

	format := exportFormat(c)
	data, fileName, err := h.exportService.Render(c.Request.Context(), id, format)
	if err != nil {
		HandleError(c, err)
		return
	}

	contentType := domain.ExportContentTypes[format]
	if format == domain.ExportFormatCSV {
		contentType += "; charset=utf-8"
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	c.Data(http.StatusOK, contentType, data)
}
