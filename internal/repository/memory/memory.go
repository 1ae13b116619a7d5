// Package memory provides in-memory store implementations backing the CLI's
// file-only mode and the service tests. They honor the same contracts as the
// Postgres stores: whole-table replace, copy-on-read.
package memory

import (
	"context"
	"sync"

	"github.com/nigelvd10/voorraad-analyse-app/internal/domain"
	"github.com/nigelvd10/voorraad-analyse-app/internal/repository"
)

type TermsStore struct {
	mu   sync.Mutex
	rows []domain.CommercialTerms
}

func NewTermsStore(rows []domain.CommercialTerms) *TermsStore {
	return &TermsStore{rows: append([]domain.CommercialTerms(nil), rows...)}
}

func (s *TermsStore) LoadAll(ctx context.Context) ([]domain.CommercialTerms, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CommercialTerms(nil), s.rows...), nil
}

func (s *TermsStore) ReplaceAll(ctx context.Context, rows []domain.CommercialTerms) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append([]domain.CommercialTerms(nil), rows...)
	return nil
}

func (s *TermsStore) DeleteByEAN(ctx context.Context, ean string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.rows[:0]
	for _, row := range s.rows {
		if row.EAN != ean {
			kept = append(kept, row)
		}
	}
	s.rows = kept
	return nil
}

type ShipmentStore struct {
	mu     sync.Mutex
	nextID int64
	rows   []domain.InboundShipment
}

func NewShipmentStore(rows []domain.InboundShipment) *ShipmentStore {
	s := &ShipmentStore{nextID: 1}
	for _, row := range rows {
		row.ID = s.nextID
		s.nextID++
		s.rows = append(s.rows, row)
	}
	return s
}

func (s *ShipmentStore) LoadAll(ctx context.Context) ([]domain.InboundShipment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.InboundShipment(nil), s.rows...), nil
}

func (s *ShipmentStore) Insert(ctx context.Context, shipment *domain.InboundShipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	shipment.ID = s.nextID
	s.nextID++
	s.rows = append(s.rows, *shipment)
	return nil
}

func (s *ShipmentStore) DeleteByID(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.rows[:0]
	for _, row := range s.rows {
		if row.ID != id {
			kept = append(kept, row)
		}
	}
	s.rows = kept
	return nil
}

type SnapshotStore struct {
	mu   sync.Mutex
	rows []domain.StockRecord
}

func NewSnapshotStore(rows []domain.StockRecord) *SnapshotStore {
	return &SnapshotStore{rows: append([]domain.StockRecord(nil), rows...)}
}

func (s *SnapshotStore) LoadAll(ctx context.Context) ([]domain.StockRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.StockRecord(nil), s.rows...), nil
}

func (s *SnapshotStore) ReplaceAll(ctx context.Context, rows []domain.StockRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append([]domain.StockRecord(nil), rows...)
	return nil
}

var (
	_ repository.TermsStore    = (*TermsStore)(nil)
	_ repository.ShipmentStore = (*ShipmentStore)(nil)
	_ repository.SnapshotStore = (*SnapshotStore)(nil)
)
