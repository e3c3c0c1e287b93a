package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindByItemID(ctx context.Context, itemID string) (*model.StockItem, error) {
	return r.find(ctx, `SELECT * FROM stock_items WHERE item_id = $1 LIMIT 1`, itemID)
}

func (r *PGRepository) FindByItemIDForUpdate(ctx context.Context, itemID string) (*model.StockItem, error) {
	return r.find(ctx, `SELECT * FROM stock_items WHERE item_id = $1 FOR UPDATE`, itemID)
}

func (r *PGRepository) find(ctx context.Context, query, itemID string) (*model.StockItem, error) {
	var s model.StockItem
	err := sqlx.GetContext(ctx, postgres.Executor(ctx, r.DB), &s, query, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Create fails with a wrapped unique violation when the item already has stock.
func (r *PGRepository) Create(ctx context.Context, s *model.StockItem) error {
	query := `
        INSERT INTO stock_items (id, item_id, count, price, visible, created_at, updated_at)
        VALUES (:id, :item_id, :count, :price, :visible, :created_at, :updated_at)
    `
	_, err := sqlx.NamedExecContext(ctx, postgres.Executor(ctx, r.DB), query, s)
	if err != nil {
		return fmt.Errorf("failed to create stock: %w", err)
	}
	return nil
}

func (r *PGRepository) Update(ctx context.Context, s *model.StockItem) error {
	query := `
        UPDATE stock_items
        SET count = :count,
            price = :price,
            visible = :visible,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := sqlx.NamedExecContext(ctx, postgres.Executor(ctx, r.DB), query, s)
	if err != nil {
		return fmt.Errorf("failed to update stock: %w", err)
	}
	return nil
}
