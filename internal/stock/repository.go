package stock

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Repository interface {
	FindByItemID(ctx context.Context, itemID string) (*model.StockItem, error)
	// FindByItemIDForUpdate also locks the row until the transaction ends.
	FindByItemIDForUpdate(ctx context.Context, itemID string) (*model.StockItem, error)
	Create(ctx context.Context, stock *model.StockItem) error
	Update(ctx context.Context, stock *model.StockItem) error
}
