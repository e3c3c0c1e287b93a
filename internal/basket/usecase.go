package basket

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/basket/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/query"
	"github.com/shopspring/decimal"
)

type UseCase interface {
	CreateBasket(ctx context.Context, session string) (*model.Basket, error)
	GetBasket(ctx context.Context, session string) (*model.Basket, error)
	GetOrCreateBasket(ctx context.Context, session string) (*model.Basket, error)

	// AddItem adds input.Count to the line and reconciles its reservation.
	AddItem(ctx context.Context, input *dto.LineInput) (*dto.LineState, error)
	// UpdateItemCount replaces the line's count. Zero removes the line.
	UpdateItemCount(ctx context.Context, input *dto.LineInput) (*dto.LineState, error)
	RemoveItem(ctx context.Context, session, code string) error

	ListItems(ctx context.Context, session, sortKey string, ascending bool) ([]model.BasketEntry, error)
	ListItemsByPriceGroups(ctx context.Context, session string, groups query.PriceGroups, ascending bool) ([]model.BasketEntry, error)
	// Total is the price of the reserved units.
	Total(ctx context.Context, session string) (decimal.Decimal, error)
}
