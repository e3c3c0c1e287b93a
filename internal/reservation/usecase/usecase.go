package usecase

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/reservation"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type reservationUseCase struct {
	repo   reservation.Repository
	logger logger.ZapLogger
}

func NewReservationUseCase(repo reservation.Repository, log logger.ZapLogger) reservation.UseCase {
	return &reservationUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *reservationUseCase) Reconcile(ctx context.Context, stock *model.StockItem, line *model.BasketItem) (*model.Reservation, error) {
	other, err := uc.repo.SumReserved(ctx, stock.ID, line.ID)
	if err != nil {
		return nil, err
	}

	existing, err := uc.repo.FindByBasketItem(ctx, line.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	res := existing
	if res == nil {
		res = &model.Reservation{
			BaseModel: model.BaseModel{
				ID:        uuid.New().String(),
				CreatedAt: now,
			},
			StockItemID:  stock.ID,
			BasketItemID: line.ID,
		}
	}
	res.Count = reservation.Allowance(stock.Count, other, line.Count)
	res.UpdatedAt = now

	if err := uc.repo.Upsert(ctx, res); err != nil {
		return nil, err
	}

	if res.Count < line.Count {
		uc.logger.Debug("reservation limited by stock",
			zap.String("stock_item_id", stock.ID),
			zap.String("basket_item_id", line.ID),
			zap.Int("wanted", line.Count),
			zap.Int("reserved", res.Count),
		)
	}
	return res, nil
}

func (uc *reservationUseCase) Trim(ctx context.Context, stock *model.StockItem) error {
	current, err := uc.repo.ListByStockItem(ctx, stock.ID)
	if err != nil {
		return err
	}

	for _, res := range reservation.TrimPlan(stock.Count, current) {
		if err := uc.repo.UpdateCount(ctx, res.ID, res.Count); err != nil {
			return err
		}
		uc.logger.Info("reservation trimmed after stock decrease",
			zap.String("stock_item_id", stock.ID),
			zap.String("reservation_id", res.ID),
			zap.Int("count", res.Count),
		)
	}
	return nil
}
