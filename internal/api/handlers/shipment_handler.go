package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nigelvd10/voorraad-analyse-app/internal/domain"
	"github.com/nigelvd10/voorraad-analyse-app/internal/service"
)

type ShipmentHandler struct {
	service *service.ReportService
}

func NewShipmentHandler(service *service.ReportService) *ShipmentHandler {
	return &ShipmentHandler{service: service}
}

func (h *ShipmentHandler) GetShipments(c *gin.Context) {
	shipments, err := h.service.Shipments(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch shipments", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"shipments": shipments})
}

func (h *ShipmentHandler) AddShipment(c *gin.Context) {
	var shipment domain.InboundShipment
	if err := c.ShouldBindJSON(&shipment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shipment payload", "details": err.Error()})
		return
	}

	if err := h.service.AddShipment(c.Request.Context(), &shipment); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to add shipment", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, shipment)
}

func (h *ShipmentHandler) DeleteShipment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shipment id", "details": err.Error()})
		return
	}

	if err := h.service.DeleteShipment(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to delete shipment", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
