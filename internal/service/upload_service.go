package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nigelvd10/voorraad-analyse-app/internal/mapping"
	"github.com/nigelvd10/voorraad-analyse-app/internal/normalize"
	"github.com/nigelvd10/voorraad-analyse-app/internal/tabular"
)

const previewRows = 10

// UploadService handles the two-step upload workflow: stage a file and show
// the suggested column mapping, then commit it as the new stock snapshot
// once the user confirms the mapping. Nothing persists before commit.
type UploadService struct {
	dir     string
	reports *ReportService
}

func NewUploadService(dir string, reports *ReportService) *UploadService {
	return &UploadService{dir: dir, reports: reports}
}

// UploadPreview is what the mapping screen needs: the staged file id, the
// sheets of the workbook, the headers of the selected sheet, the suggested
// mapping and the first rows of data.
type UploadPreview struct {
	FileID  string          `json:"file_id"`
	Sheets  []string        `json:"sheets,omitempty"`
	Sheet   string          `json:"sheet,omitempty"`
	Headers []string        `json:"headers"`
	Mapping mapping.Mapping `json:"mapping"`
	Preview [][]string      `json:"preview"`
}

// Stage saves an uploaded file under the upload dir and returns the preview
// for its first sheet.
func (s *UploadService) Stage(ctx context.Context, filename string, r io.Reader) (*UploadPreview, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".csv" && ext != ".xlsx" {
		return nil, fmt.Errorf("unsupported file extension %s (expected .csv or .xlsx)", ext)
	}

	fileID := fmt.Sprintf("%s_%s", time.Now().UTC().Format("20060102T150405"), sanitizeFilename(filename))
	path := filepath.Join(s.dir, fileID)

	out, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stage upload: %w", err)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to stage upload: %w", err)
	}
	out.Close()

	preview, err := s.Preview(ctx, fileID, "")
	if err != nil {
		// The staged file is useless if it cannot be read back.
		_ = os.Remove(path)
		return nil, err
	}

	log.Info().Str("file_id", fileID).Int("headers", len(preview.Headers)).Msg("upload staged")
	return preview, nil
}

// Preview re-reads a staged file, optionally for another sheet.
func (s *UploadService) Preview(ctx context.Context, fileID, sheet string) (*UploadPreview, error) {
	path, err := s.stagedPath(fileID)
	if err != nil {
		return nil, err
	}

	preview := &UploadPreview{FileID: fileID}

	var table *tabular.Table
	if strings.ToLower(filepath.Ext(path)) == ".xlsx" {
		sheets, err := tabular.SheetNames(path)
		if err != nil {
			return nil, err
		}
		preview.Sheets = sheets

		if sheet == "" && len(sheets) > 0 {
			sheet = sheets[0]
		}
		preview.Sheet = sheet

		table, err = tabular.ReadXLSX(path, sheet)
		if err != nil {
			return nil, err
		}
	} else {
		table, err = tabular.ReadFile(path)
		if err != nil {
			return nil, err
		}
	}

	preview.Headers = table.Headers
	preview.Mapping = mapping.MapColumns(table.Headers)
	preview.Preview = table.Head(previewRows)

	return preview, nil
}

// Commit normalizes a staged file with the confirmed mapping and replaces
// the stock snapshot. A mapping that leaves a mandatory field unresolved
// fails fast; nothing is partially committed. Returns the number of
// committed rows and whether the snapshot actually changed.
func (s *UploadService) Commit(ctx context.Context, fileID, sheet string, m mapping.Mapping) (int, bool, error) {
	path, err := s.stagedPath(fileID)
	if err != nil {
		return 0, false, err
	}

	var table *tabular.Table
	if strings.ToLower(filepath.Ext(path)) == ".xlsx" {
		table, err = tabular.ReadXLSX(path, sheet)
	} else {
		table, err = tabular.ReadFile(path)
	}
	if err != nil {
		return 0, false, err
	}

	records, err := normalize.Rows(table, m)
	if err != nil {
		return 0, false, err
	}

	saved, err := s.reports.CommitSnapshot(ctx, records)
	if err != nil {
		return 0, false, err
	}

	log.Info().Str("file_id", fileID).Int("rows", len(records)).Bool("saved", saved).Msg("snapshot committed")
	return len(records), saved, nil
}

// stagedPath resolves a file id back to its staged location, refusing
// anything that tries to escape the upload dir.
func (s *UploadService) stagedPath(fileID string) (string, error) {
	if fileID == "" || fileID != filepath.Base(fileID) {
		return "", fmt.Errorf("invalid file id")
	}

	path := filepath.Join(s.dir, fileID)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("staged file %s not found: %w", fileID, err)
	}
	return path, nil
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
