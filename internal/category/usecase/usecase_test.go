package usecase

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/testutil/memstore"
	"github.com/fekuna/omnipos-catalog-service/pkg/apperr"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCategories_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	uc := NewCategoryUseCase(store.Categories(), store.Tx(), logger.NewNop())

	first, err := uc.AddCategories(ctx, []string{"Candy", "Drinks"})
	require.NoError(t, err)
	second, err := uc.AddCategories(ctx, []string{"Drinks", "Candy", "Kitchen"})
	require.NoError(t, err)

	assert.Equal(t, first[1].ID, second[0].ID)
	assert.Equal(t, first[0].ID, second[1].ID)

	cats, total, err := uc.ListCategories(ctx, &dto.CategoryFilters{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, cats, 2)
	assert.Equal(t, "Candy", cats[0].Name)
	assert.Equal(t, "Drinks", cats[1].Name)
}

func TestAddCategories_RejectsShortNames(t *testing.T) {
	store := memstore.New()
	uc := NewCategoryUseCase(store.Categories(), store.Tx(), logger.NewNop())

	_, err := uc.AddCategories(context.Background(), []string{"Candy", "Tea"})
	assert.ErrorIs(t, err, apperr.ErrInvalidItem)

	_, total, err := uc.ListCategories(context.Background(), &dto.CategoryFilters{})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
}
