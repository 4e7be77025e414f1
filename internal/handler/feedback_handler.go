package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lasithahemajith/practicum-track-api/internal/service"
	appErrors "github.com/lasithahemajith/practicum-track-api/pkg/errors"
	"github.com/lasithahemajith/practicum-track-api/pkg/response"
)

// FeedbackHandler wires HTTP endpoints to the feedback service.
type FeedbackHandler struct {
	service *service.FeedbackService
}

// NewFeedbackHandler creates a new handler.
func NewFeedbackHandler(svc *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: svc}
}

// AddMentorFeedback godoc
// @Summary Add mentor feedback to a log paper
// @Tags Feedback
// @Accept json
// @Produce json
// @Param payload body service.AddMentorFeedbackRequest true "Feedback payload"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /feedback/mentor [post]
func (h *FeedbackHandler) AddMentorFeedback(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.AddMentorFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid feedback payload"))
		return
	}

	feedback, err := h.service.AddMentorFeedback(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, feedback)
}

// GetMentorFeedback godoc
// @Summary Mentor feedback for a log paper
// @Tags Feedback
// @Produce json
// @Param logId path string true "Log paper id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /feedback/mentor/{logId} [get]
func (h *FeedbackHandler) GetMentorFeedback(c *gin.Context) {
	feedback, err := h.service.GetMentorFeedback(c.Request.Context(), c.Param("logId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, feedback)
}

// AddTutorFeedback godoc
// @Summary Append tutor feedback to a log paper
// @Description Appends to the thread; the log paper's status is untouched
// @Tags Feedback
// @Accept json
// @Produce json
// @Param logId path string true "Log paper id"
// @Param payload body service.AddTutorFeedbackRequest true "Feedback payload"
// @Success 201 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /feedback/tutor/{logId} [post]
func (h *FeedbackHandler) AddTutorFeedback(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.AddTutorFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid feedback payload"))
		return
	}

	feedback, err := h.service.AddTutorFeedback(c.Request.Context(), c.Param("logId"), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, feedback)
}

// ListTutorFeedback godoc
// @Summary Tutor feedback thread for a log paper
// @Tags Feedback
// @Produce json
// @Param logId path string true "Log paper id"
// @Success 200 {object} response.Envelope
// @Router /feedback/tutor/{logId} [get]
func (h *FeedbackHandler) ListTutorFeedback(c *gin.Context) {
	entries, err := h.service.ListTutorFeedback(c.Request.Context(), c.Param("logId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, entries)
}

// ListAllTutorFeedback godoc
// @Summary Every tutor feedback entry
// @Tags Feedback
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /feedback/tutor [get]
func (h *FeedbackHandler) ListAllTutorFeedback(c *gin.Context) {
	entries, err := h.service.ListAllTutorFeedback(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, entries)
}
