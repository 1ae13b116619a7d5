package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/nigelvd10/voorraad-analyse-app/internal/domain"
	"github.com/nigelvd10/voorraad-analyse-app/internal/repository"
)

type termsRepository struct {
	db *DB
}

// NewTermsStore returns the Postgres-backed commercial terms store.
func NewTermsStore(db *DB) repository.TermsStore {
	return &termsRepository{db: db}
}

func (r *termsRepository) LoadAll(ctx context.Context) ([]domain.CommercialTerms, error) {
	query := `
		SELECT ean, sell_price, buy_price, shipping_cost, other_cost,
		       supplier_name, moq, lead_time_days
		FROM commercial_terms
		ORDER BY ean
	`

	rows := make([]domain.CommercialTerms, 0)
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("error loading commercial terms: %w", err)
	}

	return rows, nil
}

func (r *termsRepository) ReplaceAll(ctx context.Context, rows []domain.CommercialTerms) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM commercial_terms`); err != nil {
			return fmt.Errorf("error clearing commercial terms: %w", err)
		}

		if len(rows) == 0 {
			return nil
		}

		query := `
			INSERT INTO commercial_terms (
				ean, sell_price, buy_price, shipping_cost, other_cost,
				supplier_name, moq, lead_time_days
			) VALUES (
				:ean, :sell_price, :buy_price, :shipping_cost, :other_cost,
				:supplier_name, :moq, :lead_time_days
			)
		`
		if _, err := tx.NamedExecContext(ctx, query, rows); err != nil {
			return fmt.Errorf("error inserting commercial terms: %w", err)
		}

		return nil
	})
}

func (r *termsRepository) DeleteByEAN(ctx context.Context, ean string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM commercial_terms WHERE ean = $1`, ean); err != nil {
		return fmt.Errorf("error deleting commercial terms for %s: %w", ean, err)
	}
	return nil
}
