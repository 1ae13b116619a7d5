package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nigelvd10/voorraad-analyse-app/internal/domain"
	"github.com/nigelvd10/voorraad-analyse-app/internal/service"
)

type ReportHandler struct {
	service *service.ReportService
}

func NewReportHandler(service *service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) parseFilter(c *gin.Context) domain.ReportFilter {
	return domain.ReportFilter{
		Supplier: strings.TrimSpace(c.Query("supplier")),
		Status:   strings.TrimSpace(c.Query("status")),
	}
}

func (h *ReportHandler) GetReport(c *gin.Context) {
	filter := h.parseFilter(c)

	report, err := h.service.Report(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute report", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) GetSuppliers(c *gin.Context) {
	suppliers, err := h.service.Suppliers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch suppliers", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"suppliers": suppliers})
}

// Export streams the filtered report as a download. Format defaults to xlsx;
// csv is the other supported value.
func (h *ReportHandler) Export(c *gin.Context) {
	filter := h.parseFilter(c)
	format := strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", "xlsx")))

	var (
		data        []byte
		contentType string
		err         error
	)
	switch format {
	case "csv":
		contentType = "text/csv"
		data, err = h.service.ExportCSV(c.Request.Context(), filter)
	case "xlsx":
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		data, err = h.service.ExportXLSX(c.Request.Context(), filter)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported export format %q", format)})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate export", "details": err.Error()})
		return
	}

	filename := fmt.Sprintf("voorraad_rapport_%s.%s", time.Now().UTC().Format("20060102"), format)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Data(http.StatusOK, contentType, data)
}
