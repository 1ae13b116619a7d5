package service

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/nigelvd10/voorraad-analyse-app/internal/domain"
)

// Terms returns the current commercial terms set.
func (s *ReportService) Terms(ctx context.Context) ([]domain.CommercialTerms, error) {
	return s.terms.LoadAll(ctx)
}

// SubmitTerms replaces the commercial terms with the submitted set. The grid
// submits the complete edited table on every save, so the rows are first
// diffed against the committed set and persisted only on change. Returns
// whether a save happened.
func (s *ReportService) SubmitTerms(ctx context.Context, rows []domain.CommercialTerms) (bool, error) {
	normalized, err := normalizeTerms(rows)
	if err != nil {
		return false, err
	}

	current, err := s.terms.LoadAll(ctx)
	if err != nil {
		return false, fmt.Errorf("load commercial terms: %w", err)
	}
	sortTerms(current)

	if termsEqual(current, normalized) {
		log.Debug().Int("rows", len(normalized)).Msg("terms: no changes, skipping save")
		return false, nil
	}

	if err := s.terms.ReplaceAll(ctx, normalized); err != nil {
		return false, fmt.Errorf("replace commercial terms: %w", err)
	}

	s.invalidateCache(ctx)
	return true, nil
}

// DeleteTerms removes the terms row for one EAN.
func (s *ReportService) DeleteTerms(ctx context.Context, ean string) error {
	ean = strings.TrimSpace(ean)
	if ean == "" {
		return fmt.Errorf("ean is required")
	}

	if err := s.terms.DeleteByEAN(ctx, ean); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	return nil
}

// Shipments returns all inbound shipment lines.
func (s *ReportService) Shipments(ctx context.Context) ([]domain.InboundShipment, error) {
	return s.shipments.LoadAll(ctx)
}

// AddShipment appends one inbound shipment line.
func (s *ReportService) AddShipment(ctx context.Context, shipment *domain.InboundShipment) error {
	shipment.EAN = strings.TrimSpace(shipment.EAN)
	shipment.SupplierName = strings.TrimSpace(shipment.SupplierName)
	if shipment.EAN == "" {
		return fmt.Errorf("ean is required")
	}
	if shipment.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}

	if err := s.shipments.Insert(ctx, shipment); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	return nil
}

// DeleteShipment removes one shipment line by its surrogate id.
func (s *ReportService) DeleteShipment(ctx context.Context, id int64) error {
	if err := s.shipments.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	return nil
}

// Snapshot returns the last committed stock snapshot.
func (s *ReportService) Snapshot(ctx context.Context) ([]domain.StockRecord, error) {
	return s.snapshots.LoadAll(ctx)
}

// CommitSnapshot replaces the stock snapshot with a freshly normalized
// upload, skipping the write when nothing changed. Returns whether a save
// happened.
func (s *ReportService) CommitSnapshot(ctx context.Context, records []domain.StockRecord) (bool, error) {
	current, err := s.snapshots.LoadAll(ctx)
	if err != nil {
		return false, fmt.Errorf("load stock snapshot: %w", err)
	}

	if reflect.DeepEqual(current, records) {
		log.Debug().Int("rows", len(records)).Msg("snapshot: no changes, skipping save")
		return false, nil
	}

	if err := s.snapshots.ReplaceAll(ctx, records); err != nil {
		return false, fmt.Errorf("replace stock snapshot: %w", err)
	}

	s.invalidateCache(ctx)
	return true, nil
}

// normalizeTerms trims keys, applies field defaults and enforces the
// one-row-per-EAN constraint before anything is compared or persisted.
func normalizeTerms(rows []domain.CommercialTerms) ([]domain.CommercialTerms, error) {
	normalized := make([]domain.CommercialTerms, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))

	for _, row := range rows {
		row.EAN = strings.TrimSpace(row.EAN)
		if row.EAN == "" {
			return nil, fmt.Errorf("terms row without ean")
		}
		if _, ok := seen[row.EAN]; ok {
			return nil, fmt.Errorf("duplicate terms row for ean %s", row.EAN)
		}
		seen[row.EAN] = struct{}{}

		row.SupplierName = strings.TrimSpace(row.SupplierName)
		if row.SellPrice < 0 {
			row.SellPrice = 0
		}
		if row.BuyPrice < 0 {
			row.BuyPrice = 0
		}
		if row.ShippingCost < 0 {
			row.ShippingCost = 0
		}
		if row.OtherCost < 0 {
			row.OtherCost = 0
		}
		if row.MOQ < 1 {
			row.MOQ = 1
		}
		if row.LeadTimeDays < 0 {
			row.LeadTimeDays = 0
		}

		normalized = append(normalized, row)
	}

	sortTerms(normalized)
	return normalized, nil
}

func sortTerms(rows []domain.CommercialTerms) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].EAN < rows[j].EAN })
}
