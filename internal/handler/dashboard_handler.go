package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lasithahemajith/practicum-track-api/internal/models"
	"github.com/lasithahemajith/practicum-track-api/internal/service"
	appErrors "github.com/lasithahemajith/practicum-track-api/pkg/errors"
	"github.com/lasithahemajith/practicum-track-api/pkg/response"
)

// DashboardHandler wires HTTP endpoints to the dashboard service. Responses
// built from a partially reachable store carry meta.degraded = true.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler creates a new handler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Attendance godoc
// @Summary Attendance overview grouped per student
// @Tags Dashboard
// @Produce json
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Param type query string false "Class or Practicum"
// @Success 200 {object} response.Envelope
// @Router /dashboard/attendance [get]
func (h *DashboardHandler) Attendance(c *gin.Context) {
	filter, err := attendanceFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	rows, degraded, err := h.service.AttendanceOverview(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, rows, degradedMeta(degraded))
}

// Logs godoc
// @Summary Log paper summary by status, activity and month
// @Tags Dashboard
// @Produce json
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Param status query string false "Pending, Verified or Reviewed"
// @Param activity query string false "Exact activity name"
// @Success 200 {object} response.Envelope
// @Router /dashboard/logs [get]
func (h *DashboardHandler) Logs(c *gin.Context) {
	filter, err := logFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	summary, degraded, err := h.service.LogSummary(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, summary, degradedMeta(degraded))
}

// Progress godoc
// @Summary Per-student progress merged across both stores
// @Tags Dashboard
// @Produce json
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Param minHours query number false "Minimum total hours"
// @Param minLogs query int false "Minimum submitted logs"
// @Success 200 {object} response.Envelope
// @Router /dashboard/progress [get]
func (h *DashboardHandler) Progress(c *gin.Context) {
	req, err := progressRequestFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	progress, degraded, err := h.service.StudentProgress(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, progress, degradedMeta(degraded))
}

// Stats godoc
// @Summary Entity counts across both stores
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, degraded, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, stats, degradedMeta(degraded))
}

// Insights godoc
// @Summary Most active students and mentors with pending backlog
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /dashboard/insights [get]
func (h *DashboardHandler) Insights(c *gin.Context) {
	insights, degraded, err := h.service.Insights(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, insights, degradedMeta(degraded))
}

func degradedMeta(degraded bool) map[string]interface{} {
	if !degraded {
		return nil
	}
	return map[string]interface{}{"degraded": true}
}

func logFilterFromQuery(c *gin.Context) (models.LogFilter, error) {
	var filter models.LogFilter
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, appErrors.Clone(appErrors.ErrValidation, "invalid from date, expected YYYY-MM-DD")
		}
		filter.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, appErrors.Clone(appErrors.ErrValidation, "invalid to date, expected YYYY-MM-DD")
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.To = &end
	}
	if raw := c.Query("status"); raw != "" {
		status := models.LogStatus(raw)
		if !status.Valid() {
			return filter, appErrors.Clone(appErrors.ErrValidation, "invalid status, expected Pending, Verified or Reviewed")
		}
		filter.Status = &status
	}
	if raw := c.Query("activity"); raw != "" {
		activity := raw
		filter.Activity = &activity
	}
	return filter, nil
}

func progressRequestFromQuery(c *gin.Context) (service.ProgressRequest, error) {
	var req service.ProgressRequest

	filter, err := logFilterFromQuery(c)
	if err != nil {
		return req, err
	}
	req.From = filter.From
	req.To = filter.To

	if raw := c.Query("minHours"); raw != "" {
		hours, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, appErrors.Clone(appErrors.ErrValidation, "invalid minHours")
		}
		req.MinHours = &hours
	}
	if raw := c.Query("minLogs"); raw != "" {
		logs, err := strconv.Atoi(raw)
		if err != nil {
			return req, appErrors.Clone(appErrors.ErrValidation, "invalid minLogs")
		}
		req.MinLogs = &logs
	}
	return req, nil
}
