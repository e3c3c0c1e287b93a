package catalog

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/catalog/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Repository interface {
	// List returns one page of stocked items that have a primary category.
	List(ctx context.Context, filters *dto.ListFilters) ([]model.CatalogEntry, error)
}
