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

func (r *PGRepository) SumReserved(ctx context.Context, stockItemID, excludeBasketItemID string) (int, error) {
	var total int
	query := `
        SELECT COALESCE(SUM(count), 0)
        FROM reservations
        WHERE stock_item_id = $1 AND basket_item_id <> $2
    `
	err := sqlx.GetContext(ctx, postgres.Executor(ctx, r.DB), &total, query, stockItemID, excludeBasketItemID)
	if err != nil {
		return 0, fmt.Errorf("failed to sum reservations: %w", err)
	}
	return total, nil
}

func (r *PGRepository) FindByBasketItem(ctx context.Context, basketItemID string) (*model.Reservation, error) {
	var res model.Reservation
	query := `SELECT * FROM reservations WHERE basket_item_id = $1 LIMIT 1`
	err := sqlx.GetContext(ctx, postgres.Executor(ctx, r.DB), &res, query, basketItemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &res, nil
}

func (r *PGRepository) Upsert(ctx context.Context, res *model.Reservation) error {
	query := `
        INSERT INTO reservations (id, stock_item_id, basket_item_id, count, created_at, updated_at)
        VALUES (:id, :stock_item_id, :basket_item_id, :count, :created_at, :updated_at)
        ON CONFLICT ON CONSTRAINT reservations_stock_basket_item_key
        DO UPDATE SET
            count = EXCLUDED.count,
            updated_at = EXCLUDED.updated_at
    `
	_, err := sqlx.NamedExecContext(ctx, postgres.Executor(ctx, r.DB), query, res)
	if err != nil {
		return fmt.Errorf("failed to upsert reservation: %w", err)
	}
	return nil
}

func (r *PGRepository) ListByStockItem(ctx context.Context, stockItemID string) ([]model.Reservation, error) {
	var items []model.Reservation
	query := `
        SELECT * FROM reservations
        WHERE stock_item_id = $1
        ORDER BY updated_at DESC, id DESC
    `
	err := sqlx.SelectContext(ctx, postgres.Executor(ctx, r.DB), &items, query, stockItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return items, nil
}

func (r *PGRepository) UpdateCount(ctx context.Context, id string, count int) error {
	query := `UPDATE reservations SET count = $2, updated_at = NOW() WHERE id = $1`
	_, err := postgres.Executor(ctx, r.DB).ExecContext(ctx, query, id, count)
	if err != nil {
		return fmt.Errorf("failed to update reservation: %w", err)
	}
	return nil
}
