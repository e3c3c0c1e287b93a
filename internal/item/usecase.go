package item

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/item/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type UseCase interface {
	AddItem(ctx context.Context, input *dto.AddItemInput) (*model.Item, error)
	// AddItems stores all items or none.
	AddItems(ctx context.Context, inputs []dto.AddItemInput) ([]model.Item, error)
	AddItemsWithStock(ctx context.Context, inputs []dto.AddItemWithStockInput) ([]model.Item, error)
	GetItem(ctx context.Context, code string) (*model.Item, error)
	UpdateItem(ctx context.Context, input *dto.UpdateItemInput) (*model.Item, error)
	RemoveItem(ctx context.Context, code string) error
}
