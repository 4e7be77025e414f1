package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lasithahemajith/practicum-track-api/internal/models"
	"github.com/lasithahemajith/practicum-track-api/internal/service"
	appErrors "github.com/lasithahemajith/practicum-track-api/pkg/errors"
	"github.com/lasithahemajith/practicum-track-api/pkg/response"
)

// AttendanceHandler wires HTTP endpoints to the attendance service.
type AttendanceHandler struct {
	service *service.AttendanceService
}

// NewAttendanceHandler creates a new handler.
func NewAttendanceHandler(svc *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: svc}
}

// Submit godoc
// @Summary Submit daily attendance
// @Description One submission per student per calendar day
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body service.SubmitAttendanceRequest true "Attendance payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /attendance [post]
func (h *AttendanceHandler) Submit(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.SubmitAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid attendance payload"))
		return
	}

	record, err := h.service.Submit(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, record)
}

// Mine godoc
// @Summary Attendance history of the calling student
// @Tags Attendance
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /attendance/my [get]
func (h *AttendanceHandler) Mine(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	records, err := h.service.ListMine(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, records)
}

// Mapped godoc
// @Summary Practicum attendance of the mentor's assigned students
// @Tags Attendance
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /attendance/mapped [get]
func (h *AttendanceHandler) Mapped(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	records, err := h.service.ListForMentor(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, records)
}

// All godoc
// @Summary All attendance records
// @Tags Attendance
// @Produce json
// @Param from query string false "Window start (YYYY-MM-DD)"
// @Param to query string false "Window end (YYYY-MM-DD)"
// @Param type query string false "Class or Practicum"
// @Success 200 {object} response.Envelope
// @Router /attendance [get]
func (h *AttendanceHandler) All(c *gin.Context) {
	filter, err := attendanceFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	records, err := h.service.ListAll(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, records)
}

func attendanceFilterFromQuery(c *gin.Context) (models.AttendanceFilter, error) {
	var filter models.AttendanceFilter
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
	if raw := c.Query("type"); raw != "" {
		attType := models.AttendanceType(raw)
		if attType != models.AttendanceClass && attType != models.AttendancePracticum {
			return filter, appErrors.Clone(appErrors.ErrValidation, "invalid attendance type")
		}
		filter.Type = &attType
	}
	return filter, nil
}
