package postgres

import (
	"context"
	"fmt"

	"github.com/nigelvd10/voorraad-analyse-app/internal/domain"
	"github.com/nigelvd10/voorraad-analyse-app/internal/repository"
)

type shipmentRepository struct {
	db *DB
}

// NewShipmentStore returns the Postgres-backed inbound shipment store.
func NewShipmentStore(db *DB) repository.ShipmentStore {
	return &shipmentRepository{db: db}
}

func (r *shipmentRepository) LoadAll(ctx context.Context) ([]domain.InboundShipment, error) {
	query := `
		SELECT id, ean, quantity, eta, supplier_name
		FROM inbound_shipments
		ORDER BY id
	`

	rows := make([]domain.InboundShipment, 0)
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("error loading inbound shipments: %w", err)
	}

	return rows, nil
}

func (r *shipmentRepository) Insert(ctx context.Context, shipment *domain.InboundShipment) error {
	query := `
		INSERT INTO inbound_shipments (ean, quantity, eta, supplier_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		shipment.EAN,
		shipment.Quantity,
		shipment.ETA,
		shipment.SupplierName,
	).Scan(&shipment.ID)
	if err != nil {
		return fmt.Errorf("error inserting inbound shipment: %w", err)
	}

	return nil
}

func (r *shipmentRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM inbound_shipments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("error deleting inbound shipment %d: %w", id, err)
	}
	return nil
}
