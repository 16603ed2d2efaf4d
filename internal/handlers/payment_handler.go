package handlers

import (
	"net/http"

	"estate_manager/internal/models"
	"estate_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	paymentService services.PaymentService
}

func NewPaymentHandler(paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

func (h *PaymentHandler) AddReceipt(c *gin.Context) {
	unitID, ok := idParam(c, "id")
	if !ok {
		return
	}
	var receipt models.UnitPaymentReceipt
	if err := c.ShouldBindJSON(&receipt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	receipt.UnitID = unitID

	if err := h.paymentService.AddReceipt(&receipt); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}

func (h *PaymentHandler) GetUnitReceipts(c *gin.Context) {
	unitID, ok := idParam(c, "id")
	if !ok {
		return
	}
	receipts, err := h.paymentService.GetReceiptsByUnit(unitID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipts)
}

func (h *PaymentHandler) UpdateReceipt(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var receipt models.UnitPaymentReceipt
	if err := c.ShouldBindJSON(&receipt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	receipt.ID = id

	if err := h.paymentService.UpdateReceipt(&receipt); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt)
}

func (h *PaymentHandler) DeleteReceipt(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.paymentService.DeleteReceipt(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
