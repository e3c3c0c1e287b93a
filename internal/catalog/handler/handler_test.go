package handler

import (
	"context"
	"fmt"
	"net"
	"testing"

	catalogusecase "github.com/fekuna/omnipos-catalog-service/internal/catalog/usecase"
	categoryusecase "github.com/fekuna/omnipos-catalog-service/internal/category/usecase"
	itemusecase "github.com/fekuna/omnipos-catalog-service/internal/item/usecase"
	"github.com/fekuna/omnipos-catalog-service/internal/query"
	reservationusecase "github.com/fekuna/omnipos-catalog-service/internal/reservation/usecase"
	stockusecase "github.com/fekuna/omnipos-catalog-service/internal/stock/usecase"
	"github.com/fekuna/omnipos-catalog-service/internal/testutil/memstore"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/fekuna/omnipos-catalog-service/pkg/rpc"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)


func newHandler(store *memstore.Store) *CatalogHandler {
	log := logger.NewNop()
	tx := store.Tx()
	categories := categoryusecase.NewCategoryUseCase(store.Categories(), tx, log)
	reservations := reservationusecase.NewReservationUseCase(store.Reservations(), log)
	stock := stockusecase.NewStockUseCase(store.Stock(), store.Items(), reservations, tx, nil, log)
	items := itemusecase.NewItemUseCase(store.Items(), categories, store.Stock(), tx, nil, log)
	catalog := catalogusecase.NewCatalogUseCase(store.Catalog(), nil, log)
	return NewCatalogHandler(catalog, items, categories, stock, log)
}

func ptr[T any](v T) *T { return &v }

func code(t *testing.T, err error) codes.Code {
	t.Helper()
	st, ok := status.FromError(err)
	require.True(t, ok, "not a status error: %v", err)
	return st.Code()
}

func TestCatalogHandler_ItemLifecycle(t *testing.T) {
	ctx := context.Background()
	h := newHandler(memstore.New())

	added, err := h.AddItemsWithStock(ctx, &AddItemsRequest{Items: []AddItemRequest{
		{Code: "LEMONADE01", Description: "Lemonade", Categories: []string{"Drinks"}, Count: 10, Price: decimal.RequireFromString("2.50")},
		{Code: "TEAPOT01", Description: "Teapot", Categories: []string{"Kitchen"}, Count: 3, Price: decimal.RequireFromString("19.99")},
	}})
	require.NoError(t, err)
	require.Len(t, added.Items, 2)

	got, err := h.GetItem(ctx, &GetItemRequest{Code: "LEMONADE01"})
	require.NoError(t, err)
	assert.Equal(t, "Lemonade", got.Item.Description)

	st, err := h.GetStock(ctx, &GetStockRequest{Code: "TEAPOT01"})
	require.NoError(t, err)
	assert.Equal(t, 3, st.Stock.Count)

	desc := "Still lemonade"
	updated, err := h.UpdateItem(ctx, &UpdateItemRequest{Code: "LEMONADE01", Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, desc, updated.Item.Description)

	_, err = h.RemoveItem(ctx, &RemoveItemRequest{Code: "TEAPOT01"})
	require.NoError(t, err)

	_, err = h.GetItem(ctx, &GetItemRequest{Code: "TEAPOT01"})
	assert.Equal(t, codes.NotFound, code(t, err))

	cats, err := h.ListCategories(ctx, &ListCategoriesRequest{Page: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, cats.Total)
}

func TestCatalogHandler_ErrorCodes(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	store.SeedItem("LEMONADE01", "Lemonade", "Drinks", 5, "2.50")
	h := newHandler(store)

	_, err := h.AddItem(ctx, &AddItemRequest{Code: "LEMONADE01", Description: "Lemonade", Categories: []string{"Drinks"}})
	assert.Equal(t, codes.AlreadyExists, code(t, err))

	_, err = h.AddItem(ctx, &AddItemRequest{Code: "AB", Description: "Too short", Categories: []string{"Drinks"}})
	assert.Equal(t, codes.InvalidArgument, code(t, err))

	_, err = h.AddStock(ctx, &AddStockRequest{Code: "GHOST999", Count: 1, Price: decimal.NewFromInt(1)})
	assert.Equal(t, codes.NotFound, code(t, err))

	_, err = h.ListItems(ctx, &ListItemsRequest{SortKey: "price", Page: ptr(0)})
	assert.Equal(t, codes.InvalidArgument, code(t, err))

	_, err = h.ListItemsByPriceGroups(ctx, &ListItemsByPriceGroupsRequest{
		ListItemsRequest: ListItemsRequest{SortKey: "price"},
		Groups:           []query.PriceGroupSpec{{Op: "range", Lo: decimal.NewFromInt(5), Hi: decimal.NewFromInt(1)}},
	})
	assert.Equal(t, codes.InvalidArgument, code(t, err))
}

func TestCatalogHandler_SearchAndGroups(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	store.SeedItem("LEMONADE01", "Lemonade", "Drinks", 5, "2.50")
	store.SeedItem("LEMONDROP20", "Lemon drops", "Sweets", 5, "1.20")
	store.SeedItem("TEAPOT01", "Teapot", "Kitchen", 2, "19.99")
	h := newHandler(store)

	found, err := h.SearchItems(ctx, &SearchItemsRequest{
		ListItemsRequest: ListItemsRequest{SortKey: "description"},
		Prefix:           "LEMON",
		MinPrice:         decimal.Zero,
		MaxPrice:         decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	require.Len(t, found.Items, 2)
	assert.Equal(t, "LEMONDROP20", found.Items[0].Code)

	grouped, err := h.ListItemsByPriceGroups(ctx, &ListItemsByPriceGroupsRequest{
		ListItemsRequest: ListItemsRequest{SortKey: "description"},
		Groups: []query.PriceGroupSpec{
			{Op: "<", Value: decimal.NewFromInt(2)},
			{Op: ">=", Value: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)
	require.Len(t, grouped.Items, 2)
	assert.Equal(t, "LEMONDROP20", grouped.Items[0].Code)
	assert.Equal(t, 0, grouped.Items[0].PriceGroup)
	assert.Equal(t, "TEAPOT01", grouped.Items[1].Code)
	assert.Equal(t, 1, grouped.Items[1].PriceGroup)
}

func TestCatalogHandler_ListDefaults(t *testing.T) {
	ctx := context.Background()
	store := memstore.New()
	for i := 0; i < 12; i++ {
		store.SeedItem(fmt.Sprintf("ITEM%04d", i), fmt.Sprintf("Item %02d", 11-i), "Things", 5, fmt.Sprintf("%d.00", i+1))
	}
	h := newHandler(store)

	first, err := h.ListItems(ctx, &ListItemsRequest{})
	require.NoError(t, err)
	require.Len(t, first.Items, 10)
	assert.Equal(t, "Item 00", first.Items[0].Description)
	assert.Equal(t, "Item 09", first.Items[9].Description)

	second, err := h.ListItems(ctx, &ListItemsRequest{Page: ptr(2)})
	require.NoError(t, err)
	require.Len(t, second.Items, 2)
	assert.Equal(t, "Item 11", second.Items[1].Description)

	desc, err := h.ListItems(ctx, &ListItemsRequest{Ascending: ptr(false), PageSize: ptr(3)})
	require.NoError(t, err)
	require.Len(t, desc.Items, 3)
	assert.Equal(t, "Item 11", desc.Items[0].Description)

	_, err = h.ListItems(ctx, &ListItemsRequest{PageSize: ptr(0)})
	assert.Equal(t, codes.InvalidArgument, code(t, err))

	grouped, err := h.ListItemsByPriceGroups(ctx, &ListItemsByPriceGroupsRequest{
		Groups: []query.PriceGroupSpec{{Op: "<", Value: decimal.NewFromInt(100)}},
	})
	require.NoError(t, err)
	require.Len(t, grouped.Items, 10)
	assert.Equal(t, "ITEM0000", grouped.Items[0].Code)
	assert.True(t, grouped.Items[0].Price.LessThan(grouped.Items[1].Price))
}

func TestCatalogService_OverGRPC(t *testing.T) {
	store := memstore.New()
	store.SeedItem("LEMONADE01", "Lemonade", "Drinks", 5, "2.50")

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	RegisterCatalogServiceServer(srv, newHandler(store))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(rpc.CodecName)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	ctx := context.Background()
	var resp ItemResponse
	err = conn.Invoke(ctx, "/"+CatalogServiceName+"/GetItem", &GetItemRequest{Code: "LEMONADE01"}, &resp)
	require.NoError(t, err)
	assert.Equal(t, "LEMONADE01", resp.Item.Code)

	err = conn.Invoke(ctx, "/"+CatalogServiceName+"/GetItem", &GetItemRequest{Code: "NOPE0000"}, &resp)
	assert.Equal(t, codes.NotFound, code(t, err))

	var list ListItemsResponse
	err = conn.Invoke(ctx, "/"+CatalogServiceName+"/ListItems", &ListItemsRequest{}, &list)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "LEMONADE01", list.Items[0].Code)
}
