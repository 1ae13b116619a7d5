package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nigelvd10/voorraad-analyse-app/internal/mapping"
	"github.com/nigelvd10/voorraad-analyse-app/internal/service"
)

type UploadHandler struct {
	service *service.UploadService
}

func NewUploadHandler(service *service.UploadService) *UploadHandler {
	return &UploadHandler{service: service}
}

// Stage accepts a multipart stock file and returns the staged preview with
// the suggested column mapping.
func (h *UploadHandler) Stage(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required", "details": err.Error()})
		return
	}
	defer file.Close()

	preview, err := h.service.Stage(c.Request.Context(), header.Filename, file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to stage upload", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, preview)
}

// Preview re-reads a staged file, optionally for a different worksheet.
func (h *UploadHandler) Preview(c *gin.Context) {
	fileID := c.Param("file_id")
	sheet := strings.TrimSpace(c.Query("sheet"))

	preview, err := h.service.Preview(c.Request.Context(), fileID, sheet)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "failed to preview upload", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, preview)
}

type commitRequest struct {
	Sheet   string          `json:"sheet"`
	Mapping mapping.Mapping `json:"mapping" binding:"required"`
}

// Commit normalizes a staged file with the confirmed mapping and replaces
// the stock snapshot.
func (h *UploadHandler) Commit(c *gin.Context) {
	fileID := c.Param("file_id")

	var req commitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid commit request", "details": err.Error()})
		return
	}

	rows, saved, err := h.service.Commit(c.Request.Context(), fileID, req.Sheet, req.Mapping)
	if err != nil {
		var fieldErr *mapping.FieldError
		if errors.As(err, &fieldErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "incomplete column mapping", "details": fieldErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to commit snapshot", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": rows, "saved": saved})
}
