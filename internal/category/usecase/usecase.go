package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/pkg/apperr"
	"github.com/fekuna/omnipos-catalog-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const minNameLength = 4

type categoryUseCase struct {
	repo   category.Repository
	tx     postgres.Transactor
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, tx postgres.Transactor, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		tx:     tx,
		logger: log,
	}
}

func (uc *categoryUseCase) AddCategories(ctx context.Context, names []string) ([]model.Category, error) {
	for _, name := range names {
		if len([]rune(strings.TrimSpace(name))) < minNameLength {
			return nil, apperr.InvalidItem("category name", name)
		}
	}

	var result []model.Category
	err := uc.tx.WithinTx(ctx, func(ctx context.Context) error {
		result = make([]model.Category, 0, len(names))
		for _, name := range names {
			cat, err := uc.repo.FindByName(ctx, name)
			if err != nil {
				return err
			}
			if cat == nil {
				now := time.Now()
				cat = &model.Category{
					BaseModel: model.BaseModel{
						ID:        uuid.New().String(),
						CreatedAt: now,
						UpdatedAt: now,
					},
					Name: name,
				}
				if err := uc.repo.Create(ctx, cat); err != nil {
					return err
				}
				uc.logger.Info("category created", zap.String("name", name))
			}
			result = append(result, *cat)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, int, error) {
	return uc.repo.FindAll(ctx, filters)
}
