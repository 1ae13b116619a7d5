package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/nigelvd10/voorraad-analyse-app/internal/domain"
	"github.com/nigelvd10/voorraad-analyse-app/internal/repository"
)

type snapshotRepository struct {
	db *DB
}

// NewSnapshotStore returns the Postgres-backed stock snapshot store.
func NewSnapshotStore(db *DB) repository.SnapshotStore {
	return &snapshotRepository{db: db}
}

func (r *snapshotRepository) LoadAll(ctx context.Context) ([]domain.StockRecord, error) {
	query := `
		SELECT ean, reference, title, free_stock, sales_total, forecast_min_4w, position
		FROM stock_snapshot
		ORDER BY position
	`

	rows := make([]domain.StockRecord, 0)
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("error loading stock snapshot: %w", err)
	}

	return rows, nil
}

func (r *snapshotRepository) ReplaceAll(ctx context.Context, rows []domain.StockRecord) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM stock_snapshot`); err != nil {
			return fmt.Errorf("error clearing stock snapshot: %w", err)
		}

		if len(rows) == 0 {
			return nil
		}

		query := `
			INSERT INTO stock_snapshot (
				ean, reference, title, free_stock, sales_total, forecast_min_4w, position
			) VALUES (
				:ean, :reference, :title, :free_stock, :sales_total, :forecast_min_4w, :position
			)
		`
		if _, err := tx.NamedExecContext(ctx, query, rows); err != nil {
			return fmt.Errorf("error inserting stock snapshot: %w", err)
		}

		return nil
	})
}
