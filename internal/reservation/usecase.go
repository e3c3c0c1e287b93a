package reservation

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

// UseCase keeps reservations consistent with stock. Both methods expect to run
// inside a transaction that already holds the stock row lock.
type UseCase interface {
	// Reconcile recomputes the line's reservation from persisted state and
	// stores it.
	Reconcile(ctx context.Context, stock *model.StockItem, line *model.BasketItem) (*model.Reservation, error)
	// Trim lowers reservations, newest first, until they fit in stock.Count.
	Trim(ctx context.Context, stock *model.StockItem) error
}
