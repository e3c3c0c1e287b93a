package basket

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/basket/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, basket *model.Basket) error
	FindBySession(ctx context.Context, session string) (*model.Basket, error)
	Touch(ctx context.Context, basketID string) error

	// Lines
	FindLine(ctx context.Context, basketID, stockItemID string) (*model.BasketItem, error)
	CreateLine(ctx context.Context, line *model.BasketItem) error
	UpdateLine(ctx context.Context, line *model.BasketItem) error
	DeleteLine(ctx context.Context, id string) error
	ListLines(ctx context.Context, filters *dto.LineFilters) ([]model.BasketEntry, error)
}
