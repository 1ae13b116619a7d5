package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nigelvd10/voorraad-analyse-app/internal/api/handlers"
	"github.com/nigelvd10/voorraad-analyse-app/internal/api/middleware"
	"github.com/nigelvd10/voorraad-analyse-app/internal/service"
)

type Services struct {
	Reports *service.ReportService
	Uploads *service.UploadService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Logger(),
		middleware.Recovery(),
	)

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.Uploads != nil {
			uploadHandler := handlers.NewUploadHandler(services.Uploads)
			uploadGroup := apiGroup.Group("/upload")
			{
				uploadGroup.POST("", uploadHandler.Stage)
				uploadGroup.GET("/:file_id/preview", uploadHandler.Preview)
				uploadGroup.POST("/:file_id/commit", uploadHandler.Commit)
			}
		}

		if services.Reports != nil {
			reportHandler := handlers.NewReportHandler(services.Reports)
			reportGroup := apiGroup.Group("/report")
			{
				reportGroup.GET("", reportHandler.GetReport)
				reportGroup.GET("/suppliers", reportHandler.GetSuppliers)
				reportGroup.GET("/export", reportHandler.Export)
			}

			termsHandler := handlers.NewTermsHandler(services.Reports)
			termsGroup := apiGroup.Group("/terms")
			{
				termsGroup.GET("", termsHandler.GetTerms)
				termsGroup.PUT("", termsHandler.SubmitTerms)
				termsGroup.DELETE("/:ean", termsHandler.DeleteTerms)
			}

			shipmentHandler := handlers.NewShipmentHandler(services.Reports)
			shipmentGroup := apiGroup.Group("/shipments")
			{
				shipmentGroup.GET("", shipmentHandler.GetShipments)
				shipmentGroup.POST("", shipmentHandler.AddShipment)
				shipmentGroup.DELETE("/:id", shipmentHandler.DeleteShipment)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
