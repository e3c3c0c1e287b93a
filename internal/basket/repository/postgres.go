package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-catalog-service/internal/basket/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/query"
	"github.com/fekuna/omnipos-catalog-service/pkg/apperr"
	"github.com/fekuna/omnipos-catalog-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, b *model.Basket) error {
	query := `
        INSERT INTO baskets (id, session, created_at, updated_at)
        VALUES (:id, :session, :created_at, :updated_at)
    `
	_, err := sqlx.NamedExecContext(ctx, postgres.Executor(ctx, r.DB), query, b)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperr.DuplicateSession(b.Session)
		}
		return fmt.Errorf("failed to create basket: %w", err)
	}
	return nil
}

func (r *PGRepository) FindBySession(ctx context.Context, session string) (*model.Basket, error) {
	var b model.Basket
	query := `SELECT * FROM baskets WHERE session = $1 LIMIT 1`
	err := sqlx.GetContext(ctx, postgres.Executor(ctx, r.DB), &b, query, session)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *PGRepository) Touch(ctx context.Context, basketID string) error {
	_, err := postgres.Executor(ctx, r.DB).ExecContext(ctx, "UPDATE baskets SET updated_at = NOW() WHERE id = $1", basketID)
	if err != nil {
		return fmt.Errorf("failed to touch basket: %w", err)
	}
	return nil
}

func (r *PGRepository) FindLine(ctx context.Context, basketID, stockItemID string) (*model.BasketItem, error) {
	var line model.BasketItem
	query := `SELECT * FROM basket_items WHERE basket_id = $1 AND stock_item_id = $2 LIMIT 1`
	err := sqlx.GetContext(ctx, postgres.Executor(ctx, r.DB), &line, query, basketID, stockItemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &line, nil
}

func (r *PGRepository) CreateLine(ctx context.Context, line *model.BasketItem) error {
	query := `
        INSERT INTO basket_items (id, basket_id, stock_item_id, count, created_at, updated_at)
        VALUES (:id, :basket_id, :stock_item_id, :count, :created_at, :updated_at)
    `
	_, err := sqlx.NamedExecContext(ctx, postgres.Executor(ctx, r.DB), query, line)
	if err != nil {
		return fmt.Errorf("failed to create basket line: %w", err)
	}
	return nil
}

func (r *PGRepository) UpdateLine(ctx context.Context, line *model.BasketItem) error {
	query := `UPDATE basket_items SET count = :count, updated_at = :updated_at WHERE id = :id`
	_, err := sqlx.NamedExecContext(ctx, postgres.Executor(ctx, r.DB), query, line)
	if err != nil {
		return fmt.Errorf("failed to update basket line: %w", err)
	}
	return nil
}

func (r *PGRepository) DeleteLine(ctx context.Context, id string) error {
	_, err := postgres.Executor(ctx, r.DB).ExecContext(ctx, "DELETE FROM basket_items WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete basket line: %w", err)
	}
	return nil
}

func (r *PGRepository) ListLines(ctx context.Context, f *dto.LineFilters) ([]model.BasketEntry, error) {
	q, args := buildLineQuery(f)

	var lines []model.BasketEntry
	err := sqlx.SelectContext(ctx, postgres.Executor(ctx, r.DB), &lines, r.DB.Rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list basket lines: %w", err)
	}
	return lines, nil
}

// buildLineQuery renders the basket listing with ? placeholders. The reserved
// column is this line's own reservation.
func buildLineQuery(f *dto.LineFilters) (string, []any) {
	var args []any

	group := "0"
	if len(f.PriceGroups) > 0 {
		group = f.PriceGroups.CaseSQL("s.price", &args)
	}

	inner := `
        SELECT ` + group + ` AS price_group,
               i.code, i.description, i.description_lower,
               s.price, bi.count, COALESCE(r.count, 0) AS reserved
        FROM basket_items bi
        JOIN stock_items s ON s.id = bi.stock_item_id
        JOIN items i ON i.id = s.item_id
        LEFT JOIN reservations r ON r.basket_item_id = bi.id
        WHERE bi.basket_id = ?`
	args = append(args, f.BasketID)

	q := "SELECT price_group, code, description, price, count, reserved FROM (" + inner + "\n) AS lines"
	if len(f.PriceGroups) > 0 {
		q += " WHERE price_group >= 0" + query.PriceGroupOrderClause(f.Ascending)
	} else {
		q += query.OrderClause(f.SortKey, f.Ascending)
	}
	return q, args
}
