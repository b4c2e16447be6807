package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutortrack-api/internal/middleware"
	"github.com/noah-isme/tutortrack-api/internal/service"
	"github.com/noah-isme/tutortrack-api/pkg/response"
)

// ScheduleHandler manages weekly timetable endpoints.
type ScheduleHandler struct {
	service *service.ScheduleService
}

// NewScheduleHandler constructs handler.
func NewScheduleHandler(svc *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: svc}
}

// AddSlot godoc
// @Summary Add an open slot to the current teacher's day
// @Tags Schedule
// @Accept json
// @Success 204
// @Router /schedule/slots [post]
func (h *ScheduleHandler) AddSlot(c *gin.Context) {
	identity := middleware.Identity(c)
	var req service.AddSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.AddSlot(identity.OwnerID, req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeleteSlot godoc
// @Summary Delete a slot regardless of booking state
// @Tags Schedule
// @Param day path string true "Day name"
// @Param id path string true "Slot ID"
// @Success 204
// @Router /schedule/{day}/slots/{id} [delete]
func (h *ScheduleHandler) DeleteSlot(c *gin.Context) {
	identity := middleware.Identity(c)
	if err := h.service.DeleteSlot(identity.OwnerID, c.Param("day"), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Book godoc
// @Summary Assign a student to a slot
// @Tags Schedule
// @Accept json
// @Success 204
// @Router /schedule/book [post]
func (h *ScheduleHandler) Book(c *gin.Context) {
	identity := middleware.Identity(c)
	var req service.BookSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.BookSlot(identity.OwnerID, req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Cancel godoc
// @Summary Clear a booking, keeping the slot open
// @Tags Schedule
// @Param day path string true "Day name"
// @Param id path string true "Slot ID"
// @Success 204
// @Router /schedule/{day}/slots/{id}/booking [delete]
func (h *ScheduleHandler) Cancel(c *gin.Context) {
	identity := middleware.Identity(c)
	if err := h.service.CancelSlot(identity.OwnerID, c.Param("day"), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Move godoc
// @Summary Move a student's booking to another day/time
// @Tags Schedule
// @Accept json
// @Success 204
// @Router /schedule/move [post]
func (h *ScheduleHandler) Move(c *gin.Context) {
	identity := middleware.Identity(c)
	var req service.MoveStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.MoveStudent(identity.OwnerID, req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Gaps godoc
// @Summary Suggest open start times for a day
// @Tags Schedule
// @Produce json
// @Param day path string true "Day name"
// @Success 200 {object} response.Envelope
// @Router /schedule/{day}/gaps [get]
func (h *ScheduleHandler) Gaps(c *gin.Context) {
	identity := middleware.Identity(c)
	gaps, err := h.service.Gaps(identity.OwnerID, c.Param("day"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gaps, nil)
}
