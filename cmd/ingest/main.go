package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/nigelvd10/voorraad-analyse-app/internal/cache"
	"github.com/nigelvd10/voorraad-analyse-app/internal/config"
	"github.com/nigelvd10/voorraad-analyse-app/internal/drive"
	"github.com/nigelvd10/voorraad-analyse-app/internal/engine"
	"github.com/nigelvd10/voorraad-analyse-app/internal/repository/postgres"
	"github.com/nigelvd10/voorraad-analyse-app/internal/service"
	"github.com/nigelvd10/voorraad-analyse-app/pkg/logger"
)

// The ingest server pulls stock exports out of a Google Drive folder and
// commits them as snapshots, either on request or via the polling watcher.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger.SetLevel(cfg.Server.Mode)

	if cfg.Drive.CredentialsJSON == "" {
		log.Fatal("GOOGLE_DRIVE_CREDENTIALS_JSON is required")
	}

	driveService, err := drive.NewService(cfg.Drive.CredentialsJSON)
	if err != nil {
		log.Fatalf("Failed to initialize Google Drive service: %v", err)
	}

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	eng, err := buildEngine(cfg.Report)
	if err != nil {
		log.Fatalf("Invalid report configuration: %v", err)
	}

	reportService := service.NewReportService(
		postgres.NewSnapshotStore(db),
		postgres.NewTermsStore(db),
		postgres.NewShipmentStore(db),
		eng,
		cache.NewNoopReportCache(),
	)

	ingestService := drive.NewIngestService(driveService, reportService, cfg.Drive.DownloadDir)

	r := mux.NewRouter()

	driveHandler := drive.NewHandler(driveService, ingestService, cfg.Drive.FolderPath)
	driveHandler.RegisterRoutes(r)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	if cfg.Drive.FolderPath != "" && cfg.Drive.PollSeconds > 0 {
		watcher := drive.NewWatcher(ingestService, cfg.Drive.FolderPath, time.Duration(cfg.Drive.PollSeconds)*time.Second)
		go watcher.Run(context.Background())
	}

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Ingest server starting on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
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
