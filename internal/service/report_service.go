package service

import (
	"bytes"
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/nigelvd10/voorraad-analyse-app/internal/cache"
	"github.com/nigelvd10/voorraad-analyse-app/internal/domain"
	"github.com/nigelvd10/voorraad-analyse-app/internal/engine"
	"github.com/nigelvd10/voorraad-analyse-app/internal/export"
	"github.com/nigelvd10/voorraad-analyse-app/internal/repository"
	"github.com/nigelvd10/voorraad-analyse-app/internal/storage"
)

// ReportService owns the reconciliation workflow: it loads the three source
// datasets, runs the engine, applies filters, and mediates every edit so the
// report cache is invalidated whenever a source changes.
type ReportService struct {
	snapshots repository.SnapshotStore
	terms     repository.TermsStore
	shipments repository.ShipmentStore
	engine    *engine.Engine
	cache     cache.ReportCache
	archive   storage.ObjectStorage
}

func NewReportService(
	snapshots repository.SnapshotStore,
	terms repository.TermsStore,
	shipments repository.ShipmentStore,
	eng *engine.Engine,
	cacheImpl cache.ReportCache,
) *ReportService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReportCache()
	}
	return &ReportService{
		snapshots: snapshots,
		terms:     terms,
		shipments: shipments,
		engine:    eng,
		cache:     cacheImpl,
	}
}

// WithArchive enables best-effort retention of generated exports.
func (s *ReportService) WithArchive(archive storage.ObjectStorage) *ReportService {
	s.archive = archive
	return s
}

// Report computes the enriched view for the current datasets, narrowed by
// the filter. Results are cached per filter; any dataset edit invalidates
// the cache, so a hit is always current.
func (s *ReportService) Report(ctx context.Context, filter domain.ReportFilter) (*domain.Report, error) {
	if report, ok, err := s.cache.GetReport(ctx, filter); err == nil && ok {
		return report, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("report: cache get failed")
	}

	stock, err := s.snapshots.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load stock snapshot: %w", err)
	}
	terms, err := s.terms.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load commercial terms: %w", err)
	}
	shipments, err := s.shipments.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load inbound shipments: %w", err)
	}

	full := s.engine.Recompute(stock, terms, shipments)
	report := filterReport(full, filter)

	if err := s.cache.SetReport(ctx, filter, report); err != nil {
		log.Warn().Err(err).Msg("report: cache set failed")
	}

	return report, nil
}

func filterReport(full domain.Report, filter domain.ReportFilter) *domain.Report {
	wantStatus, haveStatus := domain.ParseStockStatus(filter.Status)
	supplier := strings.ToLower(strings.TrimSpace(filter.Supplier))

	if supplier == "" && !haveStatus {
		return &full
	}

	rows := make([]domain.EnrichedRow, 0, len(full.Rows))
	for _, row := range full.Rows {
		if supplier != "" && strings.ToLower(row.SupplierName) != supplier {
			continue
		}
		if haveStatus && row.Status != wantStatus {
			continue
		}
		rows = append(rows, row)
	}

	return &domain.Report{Rows: rows, Summary: engine.Summarize(rows)}
}

// Suppliers returns the distinct supplier names present in the commercial
// terms, for the export subset picker.
func (s *ReportService) Suppliers(ctx context.Context) ([]string, error) {
	terms, err := s.terms.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load commercial terms: %w", err)
	}

	seen := make(map[string]struct{})
	suppliers := make([]string, 0)
	for _, t := range terms {
		name := strings.TrimSpace(t.SupplierName)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		suppliers = append(suppliers, name)
	}
	sort.Strings(suppliers)

	return suppliers, nil
}

// ExportCSV renders the filtered report as delimited text and archives it
// when an archive is configured.
func (s *ReportService) ExportCSV(ctx context.Context, filter domain.ReportFilter) ([]byte, error) {
	report, err := s.Report(ctx, filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, report.Rows); err != nil {
		return nil, fmt.Errorf("export csv: %w", err)
	}

	s.archiveExport(ctx, "csv", "text/csv", buf.Bytes())
	return buf.Bytes(), nil
}

// ExportXLSX renders the filtered report as an XLSX workbook and archives it
// when an archive is configured.
func (s *ReportService) ExportXLSX(ctx context.Context, filter domain.ReportFilter) ([]byte, error) {
	report, err := s.Report(ctx, filter)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, report.Rows); err != nil {
		return nil, fmt.Errorf("export xlsx: %w", err)
	}

	s.archiveExport(ctx, "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
	return buf.Bytes(), nil
}

// archiveExport pushes a generated file to the archive bucket. Retention is
// best-effort: a failure is logged, never surfaced to the caller.
func (s *ReportService) archiveExport(ctx context.Context, ext, contentType string, data []byte) {
	if s.archive == nil {
		return
	}

	key := fmt.Sprintf("rapporten/%s/voorraad_rapport_%s.%s",
		time.Now().UTC().Format("2006/01"),
		time.Now().UTC().Format("20060102T150405Z"),
		ext,
	)
	if err := s.archive.UploadObject(ctx, key, data, contentType); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("report: archive upload failed")
	}
}

func (s *ReportService) invalidateCache(ctx context.Context) {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("report: cache invalidation failed")
	}
}

// reflect.DeepEqual is fine here: both sides come from the same normalizers,
// so field-by-field comparison decides whether a save is needed at all.
func termsEqual(a, b []domain.CommercialTerms) bool {
	return reflect.DeepEqual(a, b)
}
