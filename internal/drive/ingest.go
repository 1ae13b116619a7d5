package drive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/nigelvd10/voorraad-analyse-app/internal/mapping"
	"github.com/nigelvd10/voorraad-analyse-app/internal/normalize"
	"github.com/nigelvd10/voorraad-analyse-app/internal/service"
	"github.com/nigelvd10/voorraad-analyse-app/internal/tabular"
)

// IngestService pulls a stock export out of a Drive folder and commits it as
// the new stock snapshot. The column mapping is resolved with the same
// heuristics as a manual upload; a file whose headers cannot be resolved is
// rejected, not partially committed.
type IngestService struct {
	driveService *Service
	reports      *service.ReportService
	downloadDir  string
}

func NewIngestService(driveService *Service, reports *service.ReportService, downloadDir string) *IngestService {
	return &IngestService{
		driveService: driveService,
		reports:      reports,
		downloadDir:  downloadDir,
	}
}

// IngestResult reports what one ingest pass did.
type IngestResult struct {
	FileID   string `json:"file_id"`
	FileName string `json:"file_name"`
	Rows     int    `json:"rows"`
	Saved    bool   `json:"saved"`
}

// IngestFile downloads one Drive file and commits it as the stock snapshot.
func (s *IngestService) IngestFile(ctx context.Context, fileID, name string) (*IngestResult, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".csv" && ext != ".xlsx" {
		return nil, fmt.Errorf("unsupported file %s (expected .csv or .xlsx)", name)
	}

	if err := os.MkdirAll(s.downloadDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create download dir: %w", err)
	}

	localPath := filepath.Join(s.downloadDir, filepath.Base(name))
	out, err := os.Create(localPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create local file %s: %w", localPath, err)
	}
	if err := s.driveService.DownloadFile(fileID, out); err != nil {
		out.Close()
		return nil, fmt.Errorf("failed to download %s: %w", name, err)
	}
	out.Close()
	defer os.Remove(localPath)

	table, err := tabular.ReadFile(localPath)
	if err != nil {
		return nil, err
	}

	m := mapping.MapColumns(table.Headers)
	records, err := normalize.Rows(table, m)
	if err != nil {
		return nil, fmt.Errorf("ingest %s: %w", name, err)
	}

	saved, err := s.reports.CommitSnapshot(ctx, records)
	if err != nil {
		return nil, err
	}

	log.Info().Str("file", name).Int("rows", len(records)).Bool("saved", saved).Msg("drive ingest committed")
	return &IngestResult{FileID: fileID, FileName: name, Rows: len(records), Saved: saved}, nil
}

// IngestLatest ingests the most recently modified stock export in a Drive
// folder. Returns nil when the folder holds no csv or xlsx files.
func (s *IngestService) IngestLatest(ctx context.Context, folderPath string) (*IngestResult, error) {
	latest, err := s.LatestFile(folderPath)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return nil, nil
	}

	return s.IngestFile(ctx, latest.ID, latest.Name)
}

// LatestFile returns the most recently modified csv or xlsx file in a Drive
// folder, or nil when there is none. ModifiedTime is RFC 3339 so string
// comparison orders correctly.
func (s *IngestService) LatestFile(folderPath string) (*File, error) {
	folderID, err := s.driveService.FindFolderByPath(folderPath)
	if err != nil {
		return nil, err
	}

	files, err := s.driveService.ListFiles(folderID)
	if err != nil {
		return nil, err
	}

	candidates := make([]*File, 0, len(files))
	for _, f := range files {
		ext := strings.ToLower(filepath.Ext(f.Name))
		if ext == ".csv" || ext == ".xlsx" {
			candidates = append(candidates, f)
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ModifiedTime > candidates[j].ModifiedTime
	})
	return candidates[0], nil
}
