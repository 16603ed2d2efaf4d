package handlers

import (
	"net/http"

	"estate_manager/internal/models"
	"estate_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type UnitHandler struct {
	unitService    services.UnitService
	paymentService services.PaymentService
}

func NewUnitHandler(unitService services.UnitService, paymentService services.PaymentService) *UnitHandler {
	return &UnitHandler{unitService: unitService, paymentService: paymentService}
}

func (h *UnitHandler) CreateUnit(c *gin.Context) {
	var unit models.UnitFlat
	if err := c.ShouldBindJSON(&unit); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if err := h.unitService.CreateUnit(&unit); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, unit)
}

func (h *UnitHandler) GetUnit(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	unit, err := h.unitService.GetUnit(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, unit)
}

func (h *UnitHandler) GetAllUnits(c *gin.Context) {
	units, err := h.unitService.GetAllUnits()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, units)
}

func (h *UnitHandler) GetUnitsByProject(c *gin.Context) {
	projectID, ok := idParam(c, "id")
	if !ok {
		return
	}
	units, err := h.unitService.GetUnitsByProject(projectID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, units)
}

func (h *UnitHandler) GetUnitSummary(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	summary, err := h.unitService.GetUnitSummary(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *UnitHandler) UpdateUnit(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var unit models.UnitFlat
	if err := c.ShouldBindJSON(&unit); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	unit.ID = id

	if err := h.unitService.UpdateUnit(&unit); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, unit)
}

func (h *UnitHandler) DeleteUnit(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.unitService.DeleteUnit(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *UnitHandler) GetUnitSchedules(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	schedules, err := h.paymentService.GetCustomerSchedulesByUnit(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schedules)
}

func (h *UnitHandler) GetUnitPaymentRequests(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	requests, err := h.paymentService.GetPaymentRequestsByUnit(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}
