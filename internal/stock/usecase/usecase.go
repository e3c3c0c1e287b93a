package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/item"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/reservation"
	"github.com/fekuna/omnipos-catalog-service/internal/stock"
	"github.com/fekuna/omnipos-catalog-service/internal/stock/dto"
	"github.com/fekuna/omnipos-catalog-service/pkg/apperr"
	"github.com/fekuna/omnipos-catalog-service/pkg/cache"
	"github.com/fekuna/omnipos-catalog-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"go.uber.org/zap"
)

type stockUseCase struct {
	repo         stock.Repository
	items        item.Repository
	reservations reservation.UseCase
	tx           postgres.Transactor
	cache        *cache.ListCache
	logger       logger.ZapLogger
}

func NewStockUseCase(
	repo stock.Repository,
	items item.Repository,
	reservations reservation.UseCase,
	tx postgres.Transactor,
	cache *cache.ListCache,
	log logger.ZapLogger,
) stock.UseCase {
	return &stockUseCase{
		repo:         repo,
		items:        items,
		reservations: reservations,
		tx:           tx,
		cache:        cache,
		logger:       log,
	}
}

func (uc *stockUseCase) AddStock(ctx context.Context, input *dto.AddStockInput) (*model.StockItem, error) {
	if _, err := stock.NewStockItem("", input.Count, input.Price); err != nil {
		return nil, err
	}

	var s *model.StockItem
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		it, err := uc.items.FindByCode(ctx, input.Code)
		if err != nil {
			return err
		}
		if it == nil {
			return apperr.UnknownItem(input.Code)
		}

		existing, err := uc.repo.FindByItemID(ctx, it.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperr.DuplicateStock(input.Code)
		}

		s, err = stock.NewStockItem(it.ID, input.Count, input.Price)
		if err != nil {
			return err
		}
		if err := uc.repo.Create(ctx, s); err != nil {
			if postgres.IsUniqueViolation(err) {
				return apperr.DuplicateStock(input.Code)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Flush(ctx)
	uc.logger.Info("stock added", zap.String("code", input.Code), zap.Int("count", s.Count))
	return s, nil
}

func (uc *stockUseCase) UpdateStock(ctx context.Context, input *dto.UpdateStockInput) (*model.StockItem, error) {
	if input.Price.IsNegative() {
		return nil, apperr.InvalidPrice(input.Price)
	}
	if input.CountDelta > model.MaxCount || input.CountDelta < -model.MaxCount {
		return nil, apperr.InvalidQuantity(input.CountDelta)
	}

	var s *model.StockItem
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		it, err := uc.items.FindByCode(ctx, input.Code)
		if err != nil {
			return err
		}
		if it == nil {
			return apperr.UnknownItem(input.Code)
		}

		s, err = uc.repo.FindByItemIDForUpdate(ctx, it.ID)
		if err != nil {
			return err
		}

		if s == nil {
			s, err = stock.NewStockItem(it.ID, input.CountDelta, input.Price)
			if err != nil {
				return err
			}
			return uc.repo.Create(ctx, s)
		}

		count, ok := model.CheckedSum(s.Count, input.CountDelta)
		if !ok {
			return apperr.InvalidQuantity(input.CountDelta)
		}
		s.Count = count
		s.Price = input.Price
		s.UpdatedAt = time.Now()
		if err := uc.repo.Update(ctx, s); err != nil {
			return err
		}

		if input.CountDelta < 0 {
			return uc.reservations.Trim(ctx, s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Flush(ctx)
	uc.logger.Info("stock updated",
		zap.String("code", input.Code),
		zap.Int("delta", input.CountDelta),
		zap.Int("count", s.Count),
	)
	return s, nil
}

func (uc *stockUseCase) GetStock(ctx context.Context, code string) (*model.StockItem, error) {
	it, err := uc.items.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, apperr.UnknownItem(code)
	}
	return uc.repo.FindByItemID(ctx, it.ID)
}
