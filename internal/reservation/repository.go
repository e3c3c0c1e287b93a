package reservation

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Repository interface {
	// SumReserved totals the reservations on a stock item, leaving out the one
	// held by excludeBasketItemID.
	SumReserved(ctx context.Context, stockItemID, excludeBasketItemID string) (int, error)
	FindByBasketItem(ctx context.Context, basketItemID string) (*model.Reservation, error)
	Upsert(ctx context.Context, r *model.Reservation) error
	// ListByStockItem returns the stock item's reservations, most recently updated first.
	ListByStockItem(ctx context.Context, stockItemID string) ([]model.Reservation, error)
	UpdateCount(ctx context.Context, id string, count int) error
}
