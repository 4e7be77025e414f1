package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lasithahemajith/practicum-track-api/internal/service"
	"github.com/lasithahemajith/practicum-track-api/pkg/response"
)

// ExportHandler wires HTTP endpoints to the export service.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler creates a new handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Logs godoc
// @Summary Export the log report
// @Description Streams the full log report as csv, json or pdf
// @Tags Export
// @Produce json
// @Param format query string false "csv, json or pdf (default csv)"
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Param status query string false "Pending, Verified or Reviewed"
// @Param activity query string false "Exact activity name"
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /export/logs [get]
func (h *ExportHandler) Logs(c *gin.Context) {
	filter, err := logFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	format := c.DefaultQuery("format", "csv")
	result, err := h.service.Export(c.Request.Context(), format, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Body)
}
