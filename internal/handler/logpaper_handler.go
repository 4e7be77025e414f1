package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/lasithahemajith/practicum-track-api/internal/models"
	"github.com/lasithahemajith/practicum-track-api/internal/service"
	appErrors "github.com/lasithahemajith/practicum-track-api/pkg/errors"
	"github.com/lasithahemajith/practicum-track-api/pkg/response"
	"github.com/lasithahemajith/practicum-track-api/pkg/storage"
)

// LogPaperHandler wires HTTP endpoints to the log paper service.
type LogPaperHandler struct {
	service   *service.LogPaperService
	storage   *storage.LocalStorage
	maxUpload int64
}

// NewLogPaperHandler creates a new handler. maxUpload caps the size of a
// single attachment in bytes; zero disables the check.
func NewLogPaperHandler(svc *service.LogPaperService, store *storage.LocalStorage, maxUpload int64) *LogPaperHandler {
	return &LogPaperHandler{service: svc, storage: store, maxUpload: maxUpload}
}

// Create godoc
// @Summary Submit a log paper
// @Description Accepts JSON or multipart form with optional attachments
// @Tags Logs
// @Accept json
// @Accept multipart/form-data
// @Produce json
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /logs [post]
func (h *LogPaperHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.CreateLogRequest
	var attachments []models.Attachment

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		parsed, files, err := h.parseMultipart(c)
		if err != nil {
			response.Error(c, err)
			return
		}
		req = parsed
		attachments = files
	} else if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid log paper payload"))
		return
	}

	log, err := h.service.Create(c.Request.Context(), claims.UserID, req, attachments)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, log)
}

func (h *LogPaperHandler) parseMultipart(c *gin.Context) (service.CreateLogRequest, []models.Attachment, error) {
	var req service.CreateLogRequest

	form, err := c.MultipartForm()
	if err != nil {
		return req, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid multipart payload")
	}

	req.Date = c.PostForm("date")
	req.StartTime = c.PostForm("startTime")
	req.EndTime = c.PostForm("endTime")
	req.Activity = c.PostForm("activity")
	req.Description = c.PostForm("description")
	if raw := c.PostForm("totalHours"); raw != "" {
		hours, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return req, nil, appErrors.Clone(appErrors.ErrValidation, "invalid totalHours")
		}
		req.TotalHours = hours
	}

	attachments := []models.Attachment{}
	for _, fh := range form.File["attachments"] {
		if h.maxUpload > 0 && fh.Size > h.maxUpload {
			return req, nil, appErrors.Clone(appErrors.ErrValidation,
				fmt.Sprintf("attachment %s exceeds the %d byte limit", fh.Filename, h.maxUpload))
		}
		stored, err := h.storage.SaveUpload(fh)
		if err != nil {
			return req, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store attachment")
		}
		attachments = append(attachments, models.Attachment{
			Filename: stored.Filename,
			Path:     stored.Path,
			MimeType: stored.MimeType,
			Size:     stored.Size,
			URL:      stored.URL,
		})
	}
	return req, attachments, nil
}

// Mine godoc
// @Summary Log papers of the calling student
// @Tags Logs
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /logs/my [get]
func (h *LogPaperHandler) Mine(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	logs, err := h.service.ListMine(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, logs)
}

// Mapped godoc
// @Summary Log papers of the mentor's assigned students
// @Tags Logs
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /logs/mapped [get]
func (h *LogPaperHandler) Mapped(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	logs, err := h.service.ListForMentor(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, logs)
}

// All godoc
// @Summary All log papers
// @Tags Logs
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /logs [get]
func (h *LogPaperHandler) All(c *gin.Context) {
	logs, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, logs)
}

// Get godoc
// @Summary One log paper
// @Description Visible to the owning student, a mapped mentor, or any tutor
// @Tags Logs
// @Produce json
// @Param id path string true "Log paper id"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /logs/{id} [get]
func (h *LogPaperHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	log, err := h.service.Get(c.Request.Context(), c.Param("id"), claims)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, log)
}

// Verify godoc
// @Summary Verify a pending log paper
// @Description Fails with 412 when the record is not Pending
// @Tags Logs
// @Accept json
// @Produce json
// @Param id path string true "Log paper id"
// @Param payload body service.VerifyLogRequest true "Verification payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /logs/{id}/verify [patch]
func (h *LogPaperHandler) Verify(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.VerifyLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid verification payload"))
		return
	}

	log, err := h.service.Verify(c.Request.Context(), c.Param("id"), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, log)
}

// Review godoc
// @Summary Mark a verified log paper reviewed
// @Description Idempotent for already Reviewed records; 412 for Pending ones
// @Tags Logs
// @Produce json
// @Param id path string true "Log paper id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /logs/{id}/review [patch]
func (h *LogPaperHandler) Review(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	log, err := h.service.MarkReviewed(c.Request.Context(), c.Param("id"), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, log)
}
