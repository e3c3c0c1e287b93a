package catalog

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/catalog/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type UseCase interface {
	ListItems(ctx context.Context, input *dto.ListInput) ([]model.CatalogEntry, error)
	SearchItems(ctx context.Context, input *dto.SearchInput) ([]model.CatalogEntry, error)
	// ListItemsByPriceGroups tags each item with the index of the first group
	// its price falls in and drops items that fall in none.
	ListItemsByPriceGroups(ctx context.Context, input *dto.PriceGroupInput) ([]model.CatalogEntry, error)
}
