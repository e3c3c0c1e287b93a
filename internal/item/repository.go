package item

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Repository interface {
	// Create stores the item and its category links.
	Create(ctx context.Context, item *model.Item) error
	FindByCode(ctx context.Context, code string) (*model.Item, error)
	Update(ctx context.Context, item *model.Item) error
	// Delete removes the item. Stock, basket lines and reservations go with it.
	Delete(ctx context.Context, id string) error
}
