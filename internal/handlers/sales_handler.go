package handlers

import (
	"net/http"
	"strconv"

	"estate_manager/internal/models"
	"estate_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type SalesHandler struct {
	salesService services.SalesService
}

func NewSalesHandler(salesService services.SalesService) *SalesHandler {
	return &SalesHandler{salesService: salesService}
}

func (h *SalesHandler) CreateLead(c *gin.Context) {
	var lead models.Lead
	if err := c.ShouldBindJSON(&lead); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if err := h.salesService.CreateLead(&lead); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lead)
}

func (h *SalesHandler) GetLead(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	lead, err := h.salesService.GetLead(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (h *SalesHandler) GetLeads(c *gin.Context) {
	companyID, err := strconv.ParseUint(c.Query("company_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company_id query parameter required"})
		return
	}
	leads, err := h.salesService.GetLeadsByCompany(uint(companyID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, leads)
}

func (h *SalesHandler) UpdateLead(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var lead models.Lead
	if err := c.ShouldBindJSON(&lead); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	lead.ID = id
	if err := h.salesService.UpdateLead(&lead); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

func (h *SalesHandler) DeleteLead(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.salesService.DeleteLead(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *SalesHandler) ConvertLead(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	client, err := h.salesService.ConvertLead(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *SalesHandler) CreateClient(c *gin.Context) {
	var client models.Client
	if err := c.ShouldBindJSON(&client); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if err := h.salesService.CreateClient(&client); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *SalesHandler) GetClient(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	client, err := h.salesService.GetClient(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *SalesHandler) GetClients(c *gin.Context) {
	companyID, err := strconv.ParseUint(c.Query("company_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company_id query parameter required"})
		return
	}
	clients, err := h.salesService.GetClientsByCompany(uint(companyID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (h *SalesHandler) UpdateClient(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var client models.Client
	if err := c.ShouldBindJSON(&client); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	client.ID = id
	if err := h.salesService.UpdateClient(&client); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (h *SalesHandler) DeleteClient(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.salesService.DeleteClient(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
