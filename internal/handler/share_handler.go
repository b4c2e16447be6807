package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutortrack-api/internal/service"
	appErrors "github.com/noah-isme/tutortrack-api/pkg/errors"
	"github.com/noah-isme/tutortrack-api/pkg/response"
)

// ShareHandler serves the unauthenticated read-only share views. The link
// carries both the owner id and the target; there is no further
// authorization model.
type ShareHandler struct {
	views *service.ViewsService
}

// NewShareHandler constructs handler.
func NewShareHandler(views *service.ViewsService) *ShareHandler {
	return &ShareHandler{views: views}
}

// Parent godoc
// @Summary Read-only parent view of one student
// @Tags Share
// @Produce json
// @Param owner query string true "Owner ID"
// @Param student query string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /share/parent [get]
func (h *ShareHandler) Parent(c *gin.Context) {
	ownerID := c.Query("owner")
	studentID := c.Query("student")
	if ownerID == "" || studentID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "owner and student are required"))
		return
	}
	view, err := h.views.ParentView(c.Request.Context(), ownerID, studentID, time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// Teacher godoc
// @Summary Read-only weekly grid for one teacher
// @Tags Share
// @Produce json
// @Param owner query string true "Owner ID"
// @Param name query string true "Teacher display name"
// @Success 200 {object} response.Envelope
// @Router /share/teacher [get]
func (h *ShareHandler) Teacher(c *gin.Context) {
	ownerID := c.Query("owner")
	name := c.Query("name")
	if ownerID == "" || name == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "owner and name are required"))
		return
	}
	view, err := h.views.TeacherView(c.Request.Context(), ownerID, name)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}
