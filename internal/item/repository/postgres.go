package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
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

func (r *PGRepository) Create(ctx context.Context, item *model.Item) error {
	db := postgres.Executor(ctx, r.DB)

	query := `
        INSERT INTO items (id, code, description, description_lower, long_description, created_at, updated_at)
        VALUES (:id, :code, :description, :description_lower, :long_description, :created_at, :updated_at)
    `
	if _, err := sqlx.NamedExecContext(ctx, db, query, item); err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperr.DuplicateItem(item.Code)
		}
		return fmt.Errorf("failed to create item: %w", err)
	}

	linkQuery := `
        INSERT INTO item_categories (item_id, category_id, is_primary)
        VALUES (:item_id, :category_id, :is_primary)
    `
	for _, link := range item.Categories {
		if _, err := sqlx.NamedExecContext(ctx, db, linkQuery, link); err != nil {
			return fmt.Errorf("failed to link item category: %w", err)
		}
	}
	return nil
}

func (r *PGRepository) FindByCode(ctx context.Context, code string) (*model.Item, error) {
	db := postgres.Executor(ctx, r.DB)

	var item model.Item
	query := `SELECT * FROM items WHERE code = $1 LIMIT 1`
	err := sqlx.GetContext(ctx, db, &item, query, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	linkQuery := `SELECT * FROM item_categories WHERE item_id = $1 ORDER BY is_primary DESC`
	if err := sqlx.SelectContext(ctx, db, &item.Categories, linkQuery, item.ID); err != nil {
		return nil, fmt.Errorf("failed to load item categories: %w", err)
	}
	return &item, nil
}

func (r *PGRepository) Update(ctx context.Context, item *model.Item) error {
	query := `
        UPDATE items
        SET code = :code,
            description = :description,
            description_lower = :description_lower,
            long_description = :long_description,
            updated_at = :updated_at
        WHERE id = :id
    `
	_, err := sqlx.NamedExecContext(ctx, postgres.Executor(ctx, r.DB), query, item)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperr.DuplicateItem(item.Code)
		}
		return fmt.Errorf("failed to update item: %w", err)
	}
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, id string) error {
	_, err := postgres.Executor(ctx, r.DB).ExecContext(ctx, "DELETE FROM items WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}
