package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nigelvd10/voorraad-analyse-app/internal/domain"
	"github.com/nigelvd10/voorraad-analyse-app/internal/service"
)

type TermsHandler struct {
	service *service.ReportService
}

func NewTermsHandler(service *service.ReportService) *TermsHandler {
	return &TermsHandler{service: service}
}

func (h *TermsHandler) GetTerms(c *gin.Context) {
	terms, err := h.service.Terms(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch terms", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"terms": terms})
}

type submitTermsRequest struct {
	Terms []domain.CommercialTerms `json:"terms"`
}

// SubmitTerms replaces the full commercial terms table with the submitted
// rows. The response reports whether anything actually changed.
func (h *TermsHandler) SubmitTerms(c *gin.Context) {
	var req submitTermsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid terms payload", "details": err.Error()})
		return
	}

	saved, err := h.service.SubmitTerms(c.Request.Context(), req.Terms)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to save terms", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": saved, "rows": len(req.Terms)})
}

func (h *TermsHandler) DeleteTerms(c *gin.Context) {
	ean := c.Param("ean")

	if err := h.service.DeleteTerms(c.Request.Context(), ean); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to delete terms", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": ean})
}
