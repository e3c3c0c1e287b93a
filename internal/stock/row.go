package stock

import (
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/pkg/apperr"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NewStockItem validates count and price and builds a visible stock row for
// itemID. It does not store anything.
func NewStockItem(itemID string, count int, price decimal.Decimal) (*model.StockItem, error) {
	if count < 0 || count > model.MaxCount {
		return nil, apperr.InvalidQuantity(count)
	}
	if price.IsNegative() {
		return nil, apperr.InvalidPrice(price)
	}

	now := time.Now()
	return &model.StockItem{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ItemID:  itemID,
		Count:   count,
		Price:   price,
		Visible: true,
	}, nil
}
