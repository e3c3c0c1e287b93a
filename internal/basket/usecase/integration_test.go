//go:build integration

package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/basket"
	"github.com/fekuna/omnipos-catalog-service/internal/basket/dto"
	basketrepo "github.com/fekuna/omnipos-catalog-service/internal/basket/repository"
	"github.com/fekuna/omnipos-catalog-service/internal/catalog"
	catalogdto "github.com/fekuna/omnipos-catalog-service/internal/catalog/dto"
	catalogrepo "github.com/fekuna/omnipos-catalog-service/internal/catalog/repository"
	catalogusecase "github.com/fekuna/omnipos-catalog-service/internal/catalog/usecase"
	categoryrepo "github.com/fekuna/omnipos-catalog-service/internal/category/repository"
	categoryusecase "github.com/fekuna/omnipos-catalog-service/internal/category/usecase"
	"github.com/fekuna/omnipos-catalog-service/internal/item"
	itemdto "github.com/fekuna/omnipos-catalog-service/internal/item/dto"
	itemrepo "github.com/fekuna/omnipos-catalog-service/internal/item/repository"
	itemusecase "github.com/fekuna/omnipos-catalog-service/internal/item/usecase"
	"github.com/fekuna/omnipos-catalog-service/internal/query"
	reservationrepo "github.com/fekuna/omnipos-catalog-service/internal/reservation/repository"
	reservationusecase "github.com/fekuna/omnipos-catalog-service/internal/reservation/usecase"
	"github.com/fekuna/omnipos-catalog-service/internal/stock"
	stockdto "github.com/fekuna/omnipos-catalog-service/internal/stock/dto"
	stockrepo "github.com/fekuna/omnipos-catalog-service/internal/stock/repository"
	stockusecase "github.com/fekuna/omnipos-catalog-service/internal/stock/usecase"
	"github.com/fekuna/omnipos-catalog-service/pkg/apperr"
	"github.com/fekuna/omnipos-catalog-service/pkg/database/postgres"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type services struct {
	db      *sqlx.DB
	items   item.UseCase
	stock   stock.UseCase
	catalog catalog.UseCase
	baskets basket.UseCase
}

func setupDB(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("omnipos_catalog"),
		tcpostgres.WithUsername("omnipos"),
		tcpostgres.WithPassword("omnipos"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sqlx.Open("pgx", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	db.SetMaxOpenConns(20)

	require.NoError(t, postgres.Migrate(ctx, db))
	return db
}

func wire(db *sqlx.DB) *services {
	log := logger.NewNop()
	tx := postgres.NewTxManager(db, 25, log)

	items := itemrepo.NewPGRepository(db)
	stocks := stockrepo.NewPGRepository(db)
	reservations := reservationusecase.NewReservationUseCase(reservationrepo.NewPGRepository(db), log)
	categories := categoryusecase.NewCategoryUseCase(categoryrepo.NewPGRepository(db), tx, log)
	stockUC := stockusecase.NewStockUseCase(stocks, items, reservations, tx, nil, log)

	return &services{
		db:      db,
		items:   itemusecase.NewItemUseCase(items, categories, stocks, tx, nil, log),
		stock:   stockUC,
		catalog: catalogusecase.NewCatalogUseCase(catalogrepo.NewPGRepository(db), nil, log),
		baskets: NewBasketUseCase(basketrepo.NewPGRepository(db), items, stocks, reservations, tx, nil, dto.Options{}, log),
	}
}

func seed(t *testing.T, s *services) {
	t.Helper()
	_, err := s.items.AddItemsWithStock(context.Background(), []itemdto.AddItemWithStockInput{
		{AddItemInput: itemdto.AddItemInput{Code: "LEMONADE01", Description: "Lemonade", Categories: []string{"Drinks"}}, Count: 5, Price: decimal.RequireFromString("2.50")},
		{AddItemInput: itemdto.AddItemInput{Code: "LEMONDROP20", Description: "Lemon drops", Categories: []string{"Sweets", "Drinks"}}, Count: 20, Price: decimal.RequireFromString("1.20")},
		{AddItemInput: itemdto.AddItemInput{Code: "DISCOUNT50", Description: "50% off voucher", Categories: []string{"Vouchers"}}, Count: 1, Price: decimal.RequireFromString("0.00")},
		{AddItemInput: itemdto.AddItemInput{Code: "TEAPOT01", Description: "Teapot", Categories: []string{"Kitchen"}}, Count: 2, Price: decimal.RequireFromString("19.99")},
	})
	require.NoError(t, err)
}

func TestIntegration_ConcurrentReservationsNeverOversell(t *testing.T) {
	s := wire(setupDB(t))
	seed(t, s)
	ctx := context.Background()

	const shoppers = 12
	for i := 0; i < shoppers; i++ {
		_, err := s.baskets.CreateBasket(ctx, fmt.Sprintf("session-%02d", i))
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, shoppers)
	for i := 0; i < shoppers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.baskets.AddItem(ctx, &dto.LineInput{Session: fmt.Sprintf("session-%02d", i), Code: "LEMONADE01", Count: 1})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var reserved int
	require.NoError(t, s.db.GetContext(ctx, &reserved, `
		SELECT COALESCE(SUM(r.count), 0) FROM reservations r
		JOIN stock_items s ON s.id = r.stock_item_id
		JOIN items i ON i.id = s.item_id
		WHERE i.code = $1`, "LEMONADE01"))
	assert.Equal(t, 5, reserved)
}

func TestIntegration_StockDecreaseTrimsNewestFirst(t *testing.T) {
	s := wire(setupDB(t))
	seed(t, s)
	ctx := context.Background()

	for _, session := range []string{"session-a", "session-b"} {
		_, err := s.baskets.CreateBasket(ctx, session)
		require.NoError(t, err)
	}
	_, err := s.baskets.AddItem(ctx, &dto.LineInput{Session: "session-a", Code: "LEMONDROP20", Count: 10})
	require.NoError(t, err)
	_, err = s.baskets.AddItem(ctx, &dto.LineInput{Session: "session-b", Code: "LEMONDROP20", Count: 8})
	require.NoError(t, err)

	_, err = s.stock.UpdateStock(ctx, &stockdto.UpdateStockInput{Code: "LEMONDROP20", CountDelta: -8, Price: decimal.RequireFromString("1.20")})
	require.NoError(t, err)

	a, err := s.baskets.ListItems(ctx, "session-a", "description", true)
	require.NoError(t, err)
	b, err := s.baskets.ListItems(ctx, "session-b", "description", true)
	require.NoError(t, err)
	require.Len(t, a, 1)
	require.Len(t, b, 1)
	assert.Equal(t, 10, a[0].Reserved)
	assert.Equal(t, 2, b[0].Reserved)
	assert.Equal(t, 8, b[0].Count)

	total, err := s.baskets.Total(ctx, "session-b")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("2.40").Equal(total), total.String())
}

func TestIntegration_CatalogQueries(t *testing.T) {
	s := wire(setupDB(t))
	seed(t, s)
	ctx := context.Background()

	_, err := s.baskets.CreateBasket(ctx, "session-a")
	require.NoError(t, err)
	_, err = s.baskets.AddItem(ctx, &dto.LineInput{Session: "session-a", Code: "TEAPOT01", Count: 1})
	require.NoError(t, err)

	page, err := s.catalog.ListItems(ctx, &catalogdto.ListInput{SortKey: "price", Ascending: false, Page: 1, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "TEAPOT01", page[0].Code)
	assert.Equal(t, 1, page[0].Reserved)
	assert.Equal(t, "Kitchen", page[0].Category)
	assert.Equal(t, "LEMONADE01", page[1].Code)

	found, err := s.catalog.SearchItems(ctx, &catalogdto.SearchInput{
		ListInput: catalogdto.ListInput{SortKey: "description", Ascending: true, Page: 1, PageSize: 10},
		Prefix:    "lemon",
		MinPrice:  decimal.Zero,
		MaxPrice:  decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "LEMONDROP20", found[0].Code)
	assert.Equal(t, "Sweets", found[0].Category)

	literal, err := s.catalog.SearchItems(ctx, &catalogdto.SearchInput{
		ListInput: catalogdto.ListInput{SortKey: "description", Ascending: true, Page: 1, PageSize: 10},
		Prefix:    "50%",
		MinPrice:  decimal.Zero,
		MaxPrice:  decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	require.Len(t, literal, 1)
	assert.Equal(t, "DISCOUNT50", literal[0].Code)

	none, err := s.catalog.SearchItems(ctx, &catalogdto.SearchInput{
		ListInput: catalogdto.ListInput{SortKey: "description", Ascending: true, Page: 1, PageSize: 10},
		Prefix:    "5_%",
		MinPrice:  decimal.Zero,
		MaxPrice:  decimal.NewFromInt(100),
	})
	require.NoError(t, err)
	assert.Empty(t, none)

	groups, err := query.NewPriceGroups(
		query.LessThan{Value: decimal.NewFromInt(2)},
		query.Range{Lo: decimal.NewFromInt(2), Hi: decimal.RequireFromString("4.99")},
	)
	require.NoError(t, err)
	grouped, err := s.catalog.ListItemsByPriceGroups(ctx, &catalogdto.PriceGroupInput{
		ListInput: catalogdto.ListInput{SortKey: "description", Ascending: true, Page: 1, PageSize: 10},
		Groups:    groups,
	})
	require.NoError(t, err)
	require.Len(t, grouped, 3)
	assert.Equal(t, []string{"DISCOUNT50", "LEMONDROP20", "LEMONADE01"},
		[]string{grouped[0].Code, grouped[1].Code, grouped[2].Code})
	assert.Equal(t, []int{0, 0, 1},
		[]int{grouped[0].PriceGroup, grouped[1].PriceGroup, grouped[2].PriceGroup})

	_, err = s.catalog.ListItems(ctx, &catalogdto.ListInput{SortKey: "description", Page: 0, PageSize: 10})
	assert.ErrorIs(t, err, apperr.ErrInvalidPage)
}

func TestIntegration_RemoveItemCascades(t *testing.T) {
	s := wire(setupDB(t))
	seed(t, s)
	ctx := context.Background()

	_, err := s.baskets.CreateBasket(ctx, "session-a")
	require.NoError(t, err)
	_, err = s.baskets.AddItem(ctx, &dto.LineInput{Session: "session-a", Code: "TEAPOT01", Count: 2})
	require.NoError(t, err)

	require.NoError(t, s.items.RemoveItem(ctx, "TEAPOT01"))

	lines, err := s.baskets.ListItems(ctx, "session-a", "description", true)
	require.NoError(t, err)
	assert.Empty(t, lines)

	_, err = s.items.AddItem(ctx, &itemdto.AddItemInput{Code: "LEMONADE01", Description: "Lemonade again", Categories: []string{"Drinks"}})
	assert.ErrorIs(t, err, apperr.ErrDuplicateItem)
}
