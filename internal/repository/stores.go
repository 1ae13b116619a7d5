package repository

import (
	"context"

	"github.com/nigelvd10/voorraad-analyse-app/internal/domain"
)

// TermsStore persists the per-product commercial terms, keyed by EAN.
// ReplaceAll swaps the entire table atomically: the grid always submits the
// complete edited set, never incremental diffs.
type TermsStore interface {
	LoadAll(ctx context.Context) ([]domain.CommercialTerms, error)
	ReplaceAll(ctx context.Context, rows []domain.CommercialTerms) error
	DeleteByEAN(ctx context.Context, ean string) error
}

// ShipmentStore persists inbound shipment lines under a surrogate id, since
// one product may have many pending deliveries.
type ShipmentStore interface {
	LoadAll(ctx context.Context) ([]domain.InboundShipment, error)
	Insert(ctx context.Context, shipment *domain.InboundShipment) error
	DeleteByID(ctx context.Context, id int64) error
}

// SnapshotStore persists the last committed stock snapshot. Each new upload
// supersedes the previous snapshot wholesale.
type SnapshotStore interface {
	LoadAll(ctx context.Context) ([]domain.StockRecord, error)
	ReplaceAll(ctx context.Context, rows []domain.StockRecord) error
}
