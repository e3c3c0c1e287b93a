package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/basket"
	"github.com/fekuna/omnipos-catalog-service/internal/basket/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/item"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/query"
	"github.com/fekuna/omnipos-catalog-service/internal/reservation"
	"github.com/fekuna/omnipos-catalog-service/internal/stock"
	"github.com/fekuna/omnipos-catalog-service/pkg/apperr"
	"github.com/fekuna/omnipos-catalog-service/pkg/cache"
	"github.com/fekuna/omnipos-catalog-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type basketUseCase struct {
	repo         basket.Repository
	items        item.Repository
	stock        stock.Repository
	reservations reservation.UseCase
	tx           postgres.Transactor
	cache        *cache.ListCache
	opts         dto.Options
	logger       logger.ZapLogger
}

func NewBasketUseCase(
	repo basket.Repository,
	items item.Repository,
	stock stock.Repository,
	reservations reservation.UseCase,
	tx postgres.Transactor,
	cache *cache.ListCache,
	opts dto.Options,
	log logger.ZapLogger,
) basket.UseCase {
	return &basketUseCase{
		repo:         repo,
		items:        items,
		stock:        stock,
		reservations: reservations,
		tx:           tx,
		cache:        cache,
		opts:         opts,
		logger:       log,
	}
}

func (uc *basketUseCase) CreateBasket(ctx context.Context, session string) (*model.Basket, error) {
	return uc.create(ctx, session, uc.opts.IdempotentCreate)
}

func (uc *basketUseCase) GetOrCreateBasket(ctx context.Context, session string) (*model.Basket, error) {
	return uc.create(ctx, session, true)
}

func (uc *basketUseCase) create(ctx context.Context, session string, reuse bool) (*model.Basket, error) {
	if strings.TrimSpace(session) == "" {
		return nil, apperr.InvalidItem("session", session)
	}

	var b *model.Basket
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		existing, err := uc.repo.FindBySession(ctx, session)
		if err != nil {
			return err
		}
		if existing != nil {
			if !reuse {
				return apperr.DuplicateSession(session)
			}
			b = existing
			return nil
		}

		now := time.Now()
		b = &model.Basket{
			BaseModel: model.BaseModel{
				ID:        uuid.New().String(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			Session: session,
		}
		return uc.repo.Create(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (uc *basketUseCase) GetBasket(ctx context.Context, session string) (*model.Basket, error) {
	return uc.repo.FindBySession(ctx, session)
}

// lineTarget is everything a line change needs, loaded inside the
// transaction with the stock row locked.
type lineTarget struct {
	basket *model.Basket
	stock  *model.StockItem
	line   *model.BasketItem
}

func (uc *basketUseCase) loadTarget(ctx context.Context, session, code string) (*lineTarget, error) {
	b, err := uc.repo.FindBySession(ctx, session)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperr.BasketNotFound(session)
	}

	it, err := uc.items.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, apperr.UnknownItem(code)
	}

	s, err := uc.stock.FindByItemIDForUpdate(ctx, it.ID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, apperr.OutOfStock(code)
	}

	line, err := uc.repo.FindLine(ctx, b.ID, s.ID)
	if err != nil {
		return nil, err
	}
	return &lineTarget{basket: b, stock: s, line: line}, nil
}

func (uc *basketUseCase) AddItem(ctx context.Context, input *dto.LineInput) (*dto.LineState, error) {
	if input.Count < 0 || input.Count > model.MaxCount {
		return nil, apperr.InvalidQuantity(input.Count)
	}

	state := &dto.LineState{Code: input.Code}
	changed := false
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		t, err := uc.loadTarget(ctx, input.Session, input.Code)
		if err != nil {
			return err
		}

		now := time.Now()
		if t.line == nil {
			if input.Count == 0 {
				*state = dto.LineState{Code: input.Code}
				return nil
			}
			t.line = &model.BasketItem{
				BaseModel: model.BaseModel{
					ID:        uuid.New().String(),
					CreatedAt: now,
					UpdatedAt: now,
				},
				BasketID:    t.basket.ID,
				StockItemID: t.stock.ID,
				Count:       input.Count,
			}
			if err := uc.repo.CreateLine(ctx, t.line); err != nil {
				return err
			}
		} else {
			sum, ok := model.CheckedSum(t.line.Count, input.Count)
			if !ok {
				return apperr.InvalidQuantity(input.Count)
			}
			t.line.Count = sum
			t.line.UpdatedAt = now
			if err := uc.repo.UpdateLine(ctx, t.line); err != nil {
				return err
			}
		}

		return uc.reconcile(ctx, t, state, &changed)
	})
	if err != nil {
		return nil, err
	}

	uc.afterChange(ctx, changed, input, state)
	return state, nil
}

func (uc *basketUseCase) UpdateItemCount(ctx context.Context, input *dto.LineInput) (*dto.LineState, error) {
	if input.Count < 0 || input.Count > model.MaxCount {
		return nil, apperr.InvalidQuantity(input.Count)
	}

	state := &dto.LineState{Code: input.Code}
	changed := false
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		t, err := uc.loadTarget(ctx, input.Session, input.Code)
		if err != nil {
			return err
		}
		if t.line == nil {
			return apperr.ItemNotInBasket(input.Code)
		}

		if input.Count == 0 {
			if err := uc.repo.DeleteLine(ctx, t.line.ID); err != nil {
				return err
			}
			*state = dto.LineState{Code: input.Code}
			changed = true
			return uc.repo.Touch(ctx, t.basket.ID)
		}

		t.line.Count = input.Count
		t.line.UpdatedAt = time.Now()
		if err := uc.repo.UpdateLine(ctx, t.line); err != nil {
			return err
		}
		return uc.reconcile(ctx, t, state, &changed)
	})
	if err != nil {
		return nil, err
	}

	uc.afterChange(ctx, changed, input, state)
	return state, nil
}

func (uc *basketUseCase) reconcile(ctx context.Context, t *lineTarget, state *dto.LineState, changed *bool) error {
	res, err := uc.reservations.Reconcile(ctx, t.stock, t.line)
	if err != nil {
		return err
	}
	*state = dto.LineState{Code: state.Code, Count: t.line.Count, Reserved: res.Count}
	*changed = true
	return uc.repo.Touch(ctx, t.basket.ID)
}

func (uc *basketUseCase) afterChange(ctx context.Context, changed bool, input *dto.LineInput, state *dto.LineState) {
	if !changed {
		return
	}
	uc.cache.Flush(ctx)
	uc.logger.Debug("basket line changed",
		zap.String("code", input.Code),
		zap.Int("count", state.Count),
		zap.Int("reserved", state.Reserved),
	)
}

func (uc *basketUseCase) RemoveItem(ctx context.Context, session, code string) error {
	_, err := uc.UpdateItemCount(ctx, &dto.LineInput{Session: session, Code: code, Count: 0})
	return err
}

func (uc *basketUseCase) findBasket(ctx context.Context, session string) (*model.Basket, error) {
	b, err := uc.repo.FindBySession(ctx, session)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperr.BasketNotFound(session)
	}
	return b, nil
}

func (uc *basketUseCase) ListItems(ctx context.Context, session, sortKey string, ascending bool) ([]model.BasketEntry, error) {
	key, err := query.ParseSortKey(sortKey)
	if err != nil {
		return nil, err
	}

	b, err := uc.findBasket(ctx, session)
	if err != nil {
		return nil, err
	}
	return uc.repo.ListLines(ctx, &dto.LineFilters{
		BasketID:  b.ID,
		SortKey:   key,
		Ascending: ascending,
	})
}

func (uc *basketUseCase) ListItemsByPriceGroups(ctx context.Context, session string, groups query.PriceGroups, ascending bool) ([]model.BasketEntry, error) {
	groups, err := query.NewPriceGroups(groups...)
	if err != nil {
		return nil, err
	}

	b, err := uc.findBasket(ctx, session)
	if err != nil {
		return nil, err
	}
	return uc.repo.ListLines(ctx, &dto.LineFilters{
		BasketID:    b.ID,
		Ascending:   ascending,
		PriceGroups: groups,
	})
}

func (uc *basketUseCase) Total(ctx context.Context, session string) (decimal.Decimal, error) {
	b, err := uc.findBasket(ctx, session)
	if err != nil {
		return decimal.Zero, err
	}

	lines, err := uc.repo.ListLines(ctx, &dto.LineFilters{BasketID: b.ID, SortKey: query.SortByDescription, Ascending: true})
	if err != nil {
		return decimal.Zero, err
	}

	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Price.Mul(decimal.NewFromInt(int64(l.Reserved))))
	}
	return total, nil
}
