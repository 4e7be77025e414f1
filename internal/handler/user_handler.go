package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lasithahemajith/practicum-track-api/internal/models"
	"github.com/lasithahemajith/practicum-track-api/internal/service"
	appErrors "github.com/lasithahemajith/practicum-track-api/pkg/errors"
	"github.com/lasithahemajith/practicum-track-api/pkg/response"
)

// UserHandler wires HTTP endpoints to the user service.
type UserHandler struct {
	service *service.UserService
}

// NewUserHandler creates a new handler.
func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{service: svc}
}

// Create godoc
// @Summary Create a user
// @Description Tutor-only provisioning with a generated one-time credential
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body service.CreateUserRequest true "User payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid user payload"))
		return
	}

	res, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, res)
}

// List godoc
// @Summary List users
// @Tags Users
// @Produce json
// @Param role query string false "Filter by role"
// @Success 200 {object} response.Envelope
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.ListByRole(c.Request.Context(), c.Query("role"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, users)
}

// Map godoc
// @Summary Assign a student to a mentor
// @Description Idempotent; re-mapping an existing pair succeeds unchanged
// @Tags Mappings
// @Accept json
// @Produce json
// @Param payload body service.MapRequest true "Mapping payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /mappings [post]
func (h *UserHandler) Map(c *gin.Context) {
	var req service.MapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid mapping payload"))
		return
	}

	mapping, err := h.service.Map(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, mapping)
}

// Unmap godoc
// @Summary Remove a mentor-student mapping
// @Description Unlike mapping, removing an absent pair is a 404
// @Tags Mappings
// @Accept json
// @Produce json
// @Param payload body service.MapRequest true "Mapping payload"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /mappings [delete]
func (h *UserHandler) Unmap(c *gin.Context) {
	var req service.MapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid mapping payload"))
		return
	}

	if err := h.service.Unmap(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ListMappings godoc
// @Summary List mentor-student mappings
// @Tags Mappings
// @Produce json
// @Param mentorId query int false "Filter by mentor"
// @Param studentId query int false "Filter by student"
// @Success 200 {object} response.Envelope
// @Router /mappings [get]
func (h *UserHandler) ListMappings(c *gin.Context) {
	var filter models.MappingFilter
	if raw := c.Query("mentorId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid mentorId"))
			return
		}
		filter.MentorID = &id
	}
	if raw := c.Query("studentId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid studentId"))
			return
		}
		filter.StudentID = &id
	}

	mappings, err := h.service.ListMappings(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, mappings)
}

// AssignedStudents godoc
// @Summary Students assigned to the calling mentor
// @Tags Mappings
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /mappings/students [get]
func (h *UserHandler) AssignedStudents(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	students, err := h.service.AssignedStudents(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, students)
}
