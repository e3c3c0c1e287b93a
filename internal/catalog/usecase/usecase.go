package usecase

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-catalog-service/internal/catalog"
	"github.com/fekuna/omnipos-catalog-service/internal/catalog/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/query"
	"github.com/fekuna/omnipos-catalog-service/pkg/apperr"
	"github.com/fekuna/omnipos-catalog-service/pkg/cache"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"go.uber.org/zap"
)

type catalogUseCase struct {
	repo   catalog.Repository
	cache  *cache.ListCache
	logger logger.ZapLogger
}

func NewCatalogUseCase(repo catalog.Repository, cache *cache.ListCache, log logger.ZapLogger) catalog.UseCase {
	return &catalogUseCase{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
}

func parseList(input *dto.ListInput) (query.SortKey, query.Page, error) {
	key, err := query.ParseSortKey(input.SortKey)
	if err != nil {
		return "", query.Page{}, err
	}
	page, err := query.NewPage(input.Page, input.PageSize)
	if err != nil {
		return "", query.Page{}, err
	}
	return key, page, nil
}

func (uc *catalogUseCase) ListItems(ctx context.Context, input *dto.ListInput) ([]model.CatalogEntry, error) {
	key, page, err := parseList(input)
	if err != nil {
		return nil, err
	}
	return uc.list(ctx, &dto.ListFilters{
		SortKey:   key,
		Ascending: input.Ascending,
		Page:      page,
	})
}

func (uc *catalogUseCase) SearchItems(ctx context.Context, input *dto.SearchInput) ([]model.CatalogEntry, error) {
	key, page, err := parseList(&input.ListInput)
	if err != nil {
		return nil, err
	}
	if input.MinPrice.GreaterThan(input.MaxPrice) {
		return nil, apperr.InvalidPriceGroup(fmt.Sprintf("range(%s,%s)", input.MinPrice, input.MaxPrice))
	}

	prefix := input.Prefix
	return uc.list(ctx, &dto.ListFilters{
		Prefix:    &prefix,
		MinPrice:  &input.MinPrice,
		MaxPrice:  &input.MaxPrice,
		SortKey:   key,
		Ascending: input.Ascending,
		Page:      page,
	})
}

func (uc *catalogUseCase) ListItemsByPriceGroups(ctx context.Context, input *dto.PriceGroupInput) ([]model.CatalogEntry, error) {
	key, page, err := parseList(&input.ListInput)
	if err != nil {
		return nil, err
	}
	groups, err := query.NewPriceGroups(input.Groups...)
	if err != nil {
		return nil, err
	}
	return uc.list(ctx, &dto.ListFilters{
		Prefix:      input.Prefix,
		PriceGroups: groups,
		SortKey:     key,
		Ascending:   input.Ascending,
		Page:        page,
	})
}

func (uc *catalogUseCase) list(ctx context.Context, f *dto.ListFilters) ([]model.CatalogEntry, error) {
	// The key pins the cache generation, so it is taken before the query.
	cacheKey := uc.cache.Key(ctx, canonical(f))

	var items []model.CatalogEntry
	if uc.cache.Get(ctx, cacheKey, &items) {
		return items, nil
	}

	items, err := uc.repo.List(ctx, f)
	if err != nil {
		uc.logger.Error("failed to list catalog", zap.Error(err))
		return nil, err
	}
	if items == nil {
		items = []model.CatalogEntry{}
	}

	uc.cache.Set(ctx, cacheKey, items)
	return items, nil
}

// canonical describes f as a string in which equal queries look the same.
func canonical(f *dto.ListFilters) string {
	prefix, lo, hi := "-", "-", "-"
	if f.Prefix != nil {
		prefix = "'" + *f.Prefix + "'"
	}
	if f.MinPrice != nil {
		lo = f.MinPrice.String()
	}
	if f.MaxPrice != nil {
		hi = f.MaxPrice.String()
	}
	return fmt.Sprintf("sort=%s|asc=%t|page=%d|size=%d|prefix=%s|min=%s|max=%s|groups=%s",
		f.SortKey, f.Ascending, f.Page.Number, f.Page.Size, prefix, lo, hi, f.PriceGroups)
}
