package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutortrack-api/internal/middleware"
	"github.com/noah-isme/tutortrack-api/internal/service"
	"github.com/noah-isme/tutortrack-api/pkg/response"
)

// StateHandler exposes the account document and school-level settings.
type StateHandler struct {
	state    *service.StateService
	students *service.StudentService
	views    *service.ViewsService
}

// NewStateHandler constructs handler.
func NewStateHandler(state *service.StateService, students *service.StudentService, views *service.ViewsService) *StateHandler {
	return &StateHandler{state: state, students: students, views: views}
}

// Get godoc
// @Summary Get the full account state
// @Tags State
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /state [get]
func (h *StateHandler) Get(c *gin.Context) {
	identity := middleware.Identity(c)
	state, err := h.state.Get(identity.OwnerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state, nil)
}

type addTeacherRequest struct {
	Name string `json:"name" binding:"required"`
}

// AddTeacher godoc
// @Summary Register a teacher name
// @Tags State
// @Accept json
// @Produce json
// @Success 204
// @Router /teachers [post]
func (h *StateHandler) AddTeacher(c *gin.Context) {
	identity := middleware.Identity(c)
	var req addTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.students.AddTeacher(identity.OwnerID, req.Name); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

type selectTeacherRequest struct {
	Name string `json:"name" binding:"required"`
}

// SelectTeacher godoc
// @Summary Switch the active teacher
// @Tags State
// @Accept json
// @Success 204
// @Router /teachers/current [put]
func (h *StateHandler) SelectTeacher(c *gin.Context) {
	identity := middleware.Identity(c)
	var req selectTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.students.SetCurrentTeacher(identity.OwnerID, req.Name); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

type autoProcessingRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// SetAutoProcessing godoc
// @Summary Toggle auto lesson processing
// @Tags State
// @Accept json
// @Success 204
// @Router /settings/auto-processing [put]
func (h *StateHandler) SetAutoProcessing(c *gin.Context) {
	identity := middleware.Identity(c)
	var req autoProcessingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.students.SetAutoProcessing(identity.OwnerID, *req.Enabled); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// TeacherStats godoc
// @Summary Per-teacher roster aggregates
// @Tags State
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /teachers/stats [get]
func (h *StateHandler) TeacherStats(c *gin.Context) {
	identity := middleware.Identity(c)
	stats, err := h.views.TeacherStats(identity.OwnerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}
