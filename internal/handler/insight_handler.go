package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutortrack-api/internal/middleware"
	"github.com/noah-isme/tutortrack-api/internal/service"
	"github.com/noah-isme/tutortrack-api/pkg/response"
)

// InsightHandler exposes AI-drafted messages and summaries.
type InsightHandler struct {
	service *service.InsightService
}

// NewInsightHandler constructs handler.
func NewInsightHandler(svc *service.InsightService) *InsightHandler {
	return &InsightHandler{service: svc}
}

// PaymentReminder godoc
// @Summary Draft a payment reminder message for a student
// @Tags Insights
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{studentId}/insights/reminder [post]
func (h *InsightHandler) PaymentReminder(c *gin.Context) {
	identity := middleware.Identity(c)
	text, err := h.service.PaymentReminder(c.Request.Context(), identity.OwnerID, c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"text": text}, nil)
}

// LedgerAnalysis godoc
// @Summary Summarise a student's ledger activity
// @Tags Insights
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{studentId}/insights/analysis [post]
func (h *InsightHandler) LedgerAnalysis(c *gin.Context) {
	identity := middleware.Identity(c)
	text, err := h.service.LedgerAnalysis(c.Request.Context(), identity.OwnerID, c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"text": text}, nil)
}
