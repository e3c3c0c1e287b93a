package stock

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/stock/dto"
)

type UseCase interface {
	AddStock(ctx context.Context, input *dto.AddStockInput) (*model.StockItem, error)
	// UpdateStock applies a count delta and a new price. An item without stock
	// gets a stock row with the delta as its count.
	UpdateStock(ctx context.Context, input *dto.UpdateStockInput) (*model.StockItem, error)
	GetStock(ctx context.Context, code string) (*model.StockItem, error)
}
