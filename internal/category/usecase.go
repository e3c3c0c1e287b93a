package category

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type UseCase interface {
	// AddCategories creates the named categories that do not exist yet and
	// returns all of them in input order.
	AddCategories(ctx context.Context, names []string) ([]model.Category, error)
	ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error)
}
