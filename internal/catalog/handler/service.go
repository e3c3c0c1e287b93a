package handler

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/pkg/rpc"
	"google.golang.org/grpc"
)

const CatalogServiceName = "omnipos.catalog.v1.CatalogService"

type CatalogServer interface {
	AddCategories(context.Context, *AddCategoriesRequest) (*CategoriesResponse, error)
	ListCategories(context.Context, *ListCategoriesRequest) (*CategoriesResponse, error)
	AddItem(context.Context, *AddItemRequest) (*ItemResponse, error)
	AddItems(context.Context, *AddItemsRequest) (*ItemsResponse, error)
	AddItemsWithStock(context.Context, *AddItemsRequest) (*ItemsResponse, error)
	GetItem(context.Context, *GetItemRequest) (*ItemResponse, error)
	UpdateItem(context.Context, *UpdateItemRequest) (*ItemResponse, error)
	RemoveItem(context.Context, *RemoveItemRequest) (*Empty, error)
	AddStock(context.Context, *AddStockRequest) (*StockResponse, error)
	UpdateStock(context.Context, *UpdateStockRequest) (*StockResponse, error)
	GetStock(context.Context, *GetStockRequest) (*StockResponse, error)
	ListItems(context.Context, *ListItemsRequest) (*ListItemsResponse, error)
	SearchItems(context.Context, *SearchItemsRequest) (*ListItemsResponse, error)
	ListItemsByPriceGroups(context.Context, *ListItemsByPriceGroupsRequest) (*ListItemsResponse, error)
}

var CatalogServiceDesc = grpc.ServiceDesc{
	ServiceName: CatalogServiceName,
	HandlerType: (*CatalogServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.UnaryMethod(CatalogServiceName, "AddCategories", CatalogServer.AddCategories),
		rpc.UnaryMethod(CatalogServiceName, "ListCategories", CatalogServer.ListCategories),
		rpc.UnaryMethod(CatalogServiceName, "AddItem", CatalogServer.AddItem),
		rpc.UnaryMethod(CatalogServiceName, "AddItems", CatalogServer.AddItems),
		rpc.UnaryMethod(CatalogServiceName, "AddItemsWithStock", CatalogServer.AddItemsWithStock),
		rpc.UnaryMethod(CatalogServiceName, "GetItem", CatalogServer.GetItem),
		rpc.UnaryMethod(CatalogServiceName, "UpdateItem", CatalogServer.UpdateItem),
		rpc.UnaryMethod(CatalogServiceName, "RemoveItem", CatalogServer.RemoveItem),
		rpc.UnaryMethod(CatalogServiceName, "AddStock", CatalogServer.AddStock),
		rpc.UnaryMethod(CatalogServiceName, "UpdateStock", CatalogServer.UpdateStock),
		rpc.UnaryMethod(CatalogServiceName, "GetStock", CatalogServer.GetStock),
		rpc.UnaryMethod(CatalogServiceName, "ListItems", CatalogServer.ListItems),
		rpc.UnaryMethod(CatalogServiceName, "SearchItems", CatalogServer.SearchItems),
		rpc.UnaryMethod(CatalogServiceName, "ListItemsByPriceGroups", CatalogServer.ListItemsByPriceGroups),
	},
	Streams: []grpc.StreamDesc{},
}

func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServer) {
	s.RegisterService(&CatalogServiceDesc, srv)
}
