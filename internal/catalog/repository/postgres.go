package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/catalog/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/query"
	"github.com/fekuna/omnipos-catalog-service/pkg/database/postgres"
	"github.com/jmoiron/sqlx"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) List(ctx context.Context, f *dto.ListFilters) ([]model.CatalogEntry, error) {
	q, args := buildListQuery(f)

	var items []model.CatalogEntry
	err := sqlx.SelectContext(ctx, postgres.Executor(ctx, r.DB), &items, r.DB.Rebind(q), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}
	return items, nil
}

// buildListQuery renders a catalog page with ? placeholders. reserved is the
// sum over all baskets.
func buildListQuery(f *dto.ListFilters) (string, []any) {
	var args []any

	group := "0"
	if len(f.PriceGroups) > 0 {
		group = f.PriceGroups.CaseSQL("s.price", &args)
	}

	conditions := []string{}
	if f.Prefix != nil && *f.Prefix != "" {
		conditions = append(conditions, "i.description_lower LIKE ?")
		args = append(args, postgres.EscapeLike(strings.ToLower(*f.Prefix))+"%")
	}
	if f.MinPrice != nil {
		conditions = append(conditions, "s.price >= ?")
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		conditions = append(conditions, "s.price <= ?")
		args = append(args, *f.MaxPrice)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "\n        WHERE " + strings.Join(conditions, " AND ")
	}

	inner := `
        SELECT ` + group + ` AS price_group,
               i.code, i.description, i.description_lower,
               c.name AS category, s.price, s.count,
               COALESCE(rs.reserved, 0) AS reserved
        FROM items i
        JOIN item_categories ic ON ic.item_id = i.id AND ic.is_primary
        JOIN categories c ON c.id = ic.category_id
        JOIN stock_items s ON s.item_id = i.id
        LEFT JOIN (
            SELECT stock_item_id, SUM(count) AS reserved
            FROM reservations
            GROUP BY stock_item_id
        ) rs ON rs.stock_item_id = s.id` + whereClause

	q := "SELECT price_group, code, description, category, price, count, reserved FROM (" + inner + "\n) AS listing"
	if len(f.PriceGroups) > 0 {
		q += " WHERE price_group >= 0" + query.PriceGroupOrderClause(f.Ascending)
	} else {
		q += query.OrderClause(f.SortKey, f.Ascending)
	}
	q += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Page.Limit(), f.Page.Offset())
	return q, args
}
