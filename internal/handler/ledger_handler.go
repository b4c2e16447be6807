package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutortrack-api/internal/middleware"
	"github.com/noah-isme/tutortrack-api/internal/service"
	"github.com/noah-isme/tutortrack-api/pkg/response"
)

// LedgerHandler manages per-student transaction endpoints.
type LedgerHandler struct {
	ledger *service.LedgerService
	views  *service.ViewsService
}

// NewLedgerHandler constructs handler.
func NewLedgerHandler(ledger *service.LedgerService, views *service.ViewsService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger, views: views}
}

// Add godoc
// @Summary Append a lesson debit or payment credit
// @Tags Ledger
// @Accept json
// @Success 204
// @Router /transactions [post]
func (h *LedgerHandler) Add(c *gin.Context) {
	identity := middleware.Identity(c)
	var req service.AddTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.ledger.AddTransaction(identity.OwnerID, req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Update godoc
// @Summary Replace a transaction's note and optionally its date
// @Tags Ledger
// @Accept json
// @Success 204
// @Router /transactions [put]
func (h *LedgerHandler) Update(c *gin.Context) {
	identity := middleware.Identity(c)
	var req service.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.ledger.UpdateTransaction(identity.OwnerID, req); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Delete godoc
// @Summary Delete a transaction
// @Tags Ledger
// @Param studentId path string true "Student ID"
// @Param id path string true "Transaction ID"
// @Success 204
// @Router /students/{studentId}/transactions/{id} [delete]
func (h *LedgerHandler) Delete(c *gin.Context) {
	identity := middleware.Identity(c)
	if err := h.ledger.DeleteTransaction(identity.OwnerID, c.Param("studentId"), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// CurrentPeriod godoc
// @Summary Current billing period for a student
// @Tags Ledger
// @Produce json
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{studentId}/period [get]
func (h *LedgerHandler) CurrentPeriod(c *gin.Context) {
	identity := middleware.Identity(c)
	period, err := h.views.CurrentPeriodFor(identity.OwnerID, c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{
		"period":  period,
		"lessons": service.LessonNumbering(period),
	}, nil)
}
