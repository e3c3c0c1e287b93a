package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/item"
	"github.com/fekuna/omnipos-catalog-service/internal/item/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/stock"
	"github.com/fekuna/omnipos-catalog-service/pkg/apperr"
	"github.com/fekuna/omnipos-catalog-service/pkg/cache"
	"github.com/fekuna/omnipos-catalog-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const minFieldLength = 4

type itemUseCase struct {
	repo       item.Repository
	categories category.UseCase
	stock      stock.Repository
	tx         postgres.Transactor
	cache      *cache.ListCache
	logger     logger.ZapLogger
}

func NewItemUseCase(
	repo item.Repository,
	categories category.UseCase,
	stock stock.Repository,
	tx postgres.Transactor,
	cache *cache.ListCache,
	log logger.ZapLogger,
) item.UseCase {
	return &itemUseCase{
		repo:       repo,
		categories: categories,
		stock:      stock,
		tx:         tx,
		cache:      cache,
		logger:     log,
	}
}

func validateItem(input *dto.AddItemInput) error {
	if len([]rune(input.Code)) < minFieldLength {
		return apperr.InvalidItem("code", input.Code)
	}
	if len([]rune(input.Description)) < minFieldLength {
		return apperr.InvalidItem("description", input.Description)
	}
	if len(input.Categories) == 0 {
		return apperr.InvalidItem("categories", input.Categories)
	}
	return nil
}

func (uc *itemUseCase) AddItem(ctx context.Context, input *dto.AddItemInput) (*model.Item, error) {
	items, err := uc.AddItems(ctx, []dto.AddItemInput{*input})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

func (uc *itemUseCase) AddItems(ctx context.Context, inputs []dto.AddItemInput) ([]model.Item, error) {
	for i := range inputs {
		if err := validateItem(&inputs[i]); err != nil {
			return nil, err
		}
	}

	var items []model.Item
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		items = make([]model.Item, 0, len(inputs))
		for i := range inputs {
			it, err := uc.create(ctx, &inputs[i])
			if err != nil {
				return err
			}
			items = append(items, *it)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Flush(ctx)
	uc.logger.Info("items added", zap.Int("count", len(items)))
	return items, nil
}

func (uc *itemUseCase) AddItemsWithStock(ctx context.Context, inputs []dto.AddItemWithStockInput) ([]model.Item, error) {
	for i := range inputs {
		if err := validateItem(&inputs[i].AddItemInput); err != nil {
			return nil, err
		}
		if _, err := stock.NewStockItem("", inputs[i].Count, inputs[i].Price); err != nil {
			return nil, err
		}
	}

	var items []model.Item
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		items = make([]model.Item, 0, len(inputs))
		for i := range inputs {
			in := &inputs[i]
			it, err := uc.create(ctx, &in.AddItemInput)
			if err != nil {
				return err
			}
			row, err := stock.NewStockItem(it.ID, in.Count, in.Price)
			if err != nil {
				return err
			}
			if err := uc.stock.Create(ctx, row); err != nil {
				return err
			}
			items = append(items, *it)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Flush(ctx)
	uc.logger.Info("items added with stock", zap.Int("count", len(items)))
	return items, nil
}

// create must run inside a transaction.
func (uc *itemUseCase) create(ctx context.Context, input *dto.AddItemInput) (*model.Item, error) {
	existing, err := uc.repo.FindByCode(ctx, input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.DuplicateItem(input.Code)
	}

	cats, err := uc.categories.AddCategories(ctx, dedupe(input.Categories))
	if err != nil {
		return nil, err
	}

	now := time.Now()
	it := &model.Item{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Code:            input.Code,
		LongDescription: input.LongDescription,
	}
	it.SetDescription(input.Description)
	for i, c := range cats {
		it.Categories = append(it.Categories, model.ItemCategory{
			ItemID:     it.ID,
			CategoryID: c.ID,
			IsPrimary:  i == 0,
		})
	}

	if err := uc.repo.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

// dedupe drops repeated names and keeps the first occurrence, so the primary
// category stays first.
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func (uc *itemUseCase) GetItem(ctx context.Context, code string) (*model.Item, error) {
	return uc.repo.FindByCode(ctx, code)
}

func (uc *itemUseCase) UpdateItem(ctx context.Context, input *dto.UpdateItemInput) (*model.Item, error) {
	if input.NewCode != nil && len([]rune(*input.NewCode)) < minFieldLength {
		return nil, apperr.InvalidItem("code", *input.NewCode)
	}
	if input.Description != nil && len([]rune(*input.Description)) < minFieldLength {
		return nil, apperr.InvalidItem("description", *input.Description)
	}

	var it *model.Item
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		it, err = uc.repo.FindByCode(ctx, input.Code)
		if err != nil {
			return err
		}
		if it == nil {
			return apperr.UnknownItem(input.Code)
		}

		if input.NewCode != nil && *input.NewCode != it.Code {
			taken, err := uc.repo.FindByCode(ctx, *input.NewCode)
			if err != nil {
				return err
			}
			if taken != nil {
				return apperr.DuplicateItem(*input.NewCode)
			}
			it.Code = *input.NewCode
		}
		if input.Description != nil {
			it.SetDescription(*input.Description)
		}
		if input.LongDescription != nil {
			it.LongDescription = input.LongDescription
		}
		it.UpdatedAt = time.Now()

		return uc.repo.Update(ctx, it)
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Flush(ctx)
	return it, nil
}

func (uc *itemUseCase) RemoveItem(ctx context.Context, code string) error {
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		it, err := uc.repo.FindByCode(ctx, code)
		if err != nil {
			return err
		}
		if it == nil {
			return apperr.UnknownItem(code)
		}
		return uc.repo.Delete(ctx, it.ID)
	})
	if err != nil {
		return err
	}

	uc.cache.Flush(ctx)
	uc.logger.Info("item removed", zap.String("code", code))
	return nil
}
