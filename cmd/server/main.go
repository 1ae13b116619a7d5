package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nigelvd10/voorraad-analyse-app/internal/api"
	"github.com/nigelvd10/voorraad-analyse-app/internal/cache"
	"github.com/nigelvd10/voorraad-analyse-app/internal/config"
	"github.com/nigelvd10/voorraad-analyse-app/internal/engine"
	"github.com/nigelvd10/voorraad-analyse-app/internal/repository/postgres"
	"github.com/nigelvd10/voorraad-analyse-app/internal/service"
	"github.com/nigelvd10/voorraad-analyse-app/internal/storage"
	"github.com/nigelvd10/voorraad-analyse-app/pkg/logger"
)

func main() {
	cfg := config.Load()

	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	eng, err := buildEngine(cfg.Report)
	if err != nil {
		log.Fatalf("Invalid report configuration: %v", err)
	}

	reportCache, err := cache.NewReportCache(cfg.Cache, engineFingerprint(eng.Config()))
	if err != nil {
		log.Fatalf("Failed to connect to cache: %v", err)
	}

	reportService := service.NewReportService(
		postgres.NewSnapshotStore(db),
		postgres.NewTermsStore(db),
		postgres.NewShipmentStore(db),
		eng,
		reportCache,
	)

	if cfg.Archive.Enabled {
		archive, err := storage.NewArchiveClient(cfg.Archive)
		if err != nil {
			log.Fatalf("Failed to connect to archive storage: %v", err)
		}
		reportService.WithArchive(archive)
	}

	uploadService := service.NewUploadService(cfg.App.UploadDir, reportService)

	router := api.NewRouter(&api.Services{
		Reports: reportService,
		Uploads: uploadService,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}

func buildEngine(cfg config.ReportConfig) (*engine.Engine, error) {
	mode, ok := engine.ParseThresholdMode(cfg.ThresholdMode)
	if !ok {
		return nil, fmt.Errorf("unknown threshold mode %q (expected absolute or percent)", cfg.ThresholdMode)
	}

	return engine.New(engine.Config{
		Threshold: engine.ThresholdConfig{
			Mode:  mode,
			Value: cfg.ThresholdValue,
		},
		SafetyMarginPct: cfg.SafetyMarginPct,
	}), nil
}

// engineFingerprint identifies the classification configuration inside cache
// keys so a threshold change never serves rows computed under the old one.
func engineFingerprint(cfg engine.Config) string {
	return fmt.Sprintf("%s:%g:%g", cfg.Threshold.Mode, cfg.Threshold.Value, cfg.SafetyMarginPct)
}
