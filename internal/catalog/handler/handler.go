package handler

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/catalog"
	"github.com/fekuna/omnipos-catalog-service/internal/catalog/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/category"
	categorydto "github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/item"
	itemdto "github.com/fekuna/omnipos-catalog-service/internal/item/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/query"
	"github.com/fekuna/omnipos-catalog-service/internal/stock"
	stockdto "github.com/fekuna/omnipos-catalog-service/internal/stock/dto"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/fekuna/omnipos-catalog-service/pkg/rpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var _ CatalogServer = (*CatalogHandler)(nil)

type CatalogHandler struct {
	catalog    catalog.UseCase
	items      item.UseCase
	categories category.UseCase
	stock      stock.UseCase
	logger     logger.ZapLogger
}

func NewCatalogHandler(
	catalog catalog.UseCase,
	items item.UseCase,
	categories category.UseCase,
	stock stock.UseCase,
	log logger.ZapLogger,
) *CatalogHandler {
	return &CatalogHandler{
		catalog:    catalog,
		items:      items,
		categories: categories,
		stock:      stock,
		logger:     log,
	}
}

func (h *CatalogHandler) AddCategories(ctx context.Context, req *AddCategoriesRequest) (*CategoriesResponse, error) {
	cats, err := h.categories.AddCategories(ctx, req.Names)
	if err != nil {
		return nil, rpc.ToStatus(err, h.logger)
	}
	return &CategoriesResponse{Categories: cats, Total: len(cats)}, nil
}

func (h *CatalogHandler) ListCategories(ctx context.Context, req *ListCategoriesRequest) (*CategoriesResponse, error) {
	cats, total, err := h.categories.ListCategories(ctx, &categorydto.CategoryFilters{
		NamePrefix: req.NamePrefix,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		return nil, rpc.ToStatus(err, h.logger)
	}
	return &CategoriesResponse{Categories: cats, Total: total}, nil
}

func toItemInput(req *AddItemRequest) itemdto.AddItemInput {
	return itemdto.AddItemInput{
		Code:            req.Code,
		Description:     req.Description,
		LongDescription: req.LongDescription,
		Categories:      req.Categories,
	}
}

func (h *CatalogHandler) AddItem(ctx context.Context, req *AddItemRequest) (*ItemResponse, error) {
	input := toItemInput(req)
	it, err := h.items.AddItem(ctx, &input)
	if err != nil {
		return nil, rpc.ToStatus(err, h.logger)
	}
	return &ItemResponse{Item: it}, nil
}

func (h *CatalogHandler) AddItems(ctx context.Context, req *AddItemsRequest) (*ItemsResponse, error) {
	inputs := make([]itemdto.AddItemInput, 0, len(req.Items))
	for i := range req.Items {
		inputs = append(inputs, toItemInput(&req.Items[i]))
	}
	items, err := h.items.AddItems(ctx, inputs)
	if err != nil {
		return nil, rpc.ToStatus(err, h.logger)
	}
	return &ItemsResponse{Items: items}, nil
}

func (h *CatalogHandler) AddItemsWithStock(ctx context.Context, req *AddItemsRequest) (*ItemsResponse, error) {
	inputs := make([]itemdto.AddItemWithStockInput, 0, len(req.Items))
	for i := range req.Items {
		inputs = append(inputs, itemdto.AddItemWithStockInput{
			AddItemInput: toItemInput(&req.Items[i]),
			Count:        req.Items[i].Count,
			Price:        req.Items[i].Price,
		})
	}
	items, err := h.items.AddItemsWithStock(ctx, inputs)
	if err != nil {
		return nil, rpc.ToStatus(err, h.logger)
	}
	return &ItemsResponse{Items: items}, nil
}

func (h *CatalogHandler) GetItem(ctx context.Context, req *GetItemRequest) (*ItemResponse, error) {
	it, err := h.items.GetItem(ctx, req.Code)
	if err != nil {
		return nil, rpc.ToStatus(err, h.logger)
	}
	if it == nil {
		return nil, status.Error(codes.NotFound, "item not found")
	}
	return &ItemResponse{Item: it}, nil
}

func (h *CatalogHandler) UpdateItem(ctx context.Context, req *UpdateItemRequest) (*ItemResponse, error) {
	it, err := h.items.UpdateItem(ctx, &itemdto.UpdateItemInput{
		Code:            req.Code,
		NewCode:         req.NewCode,
		Description:     req.Description,
		LongDescription: req.LongDescription,
	})
	if err != nil {
		return nil, rpc.ToStatus(err, h.logger)
	}
	return &ItemResponse{Item: it}, nil
}

func (h *CatalogHandler) RemoveItem(ctx context.Context, req *RemoveItemRequest) (*Empty, error) {
	if err := h.items.RemoveItem(ctx, req.Code); err != nil {
		return nil, rpc.ToStatus(err, h.logger)
	}
	return &Empty{}, nil
}

func (h *CatalogHandler) AddStock(ctx context.Context, req *AddStockRequest) (*StockResponse, error) {
	s, err := h.stock.AddStock(ctx, &stockdto.AddStockInput{
		Code:  req.Code,
		Count: req.Count,
		Price: req.Price,
	})
	if err != nil {
		return nil, rpc.ToStatus(err, h.logger)
	}
	return &StockResponse{Stock: s}, nil
}

func (h *CatalogHandler) UpdateStock(ctx context.Context, req *UpdateStockRequest) (*StockResponse, error) {
	s, err := h.stock.UpdateStock(ctx, &stockdto.UpdateStockInput{
		Code:       req.Code,
		CountDelta: req.CountDelta,
		Price:      req.Price,
	})
	if err != nil {
		return nil, rpc.ToStatus(err, h.logger)
	}
	return &StockResponse{Stock: s}, nil
}

func (h *CatalogHandler) GetStock(ctx context.Context, req *GetStockRequest) (*StockResponse, error) {
	s, err := h.stock.GetStock(ctx, req.Code)
	if err != nil {
		return nil, rpc.ToStatus(err, h.logger)
	}
	if s == nil {
		return nil, status.Error(codes.NotFound, "stock not found")
	}
	return &StockResponse{Stock: s}, nil
}

const (
	defaultPage     = 1
	defaultPageSize = 10
)

func toListInput(req *ListItemsRequest, sortKey query.SortKey) dto.ListInput {
	input := dto.ListInput{
		SortKey:   req.SortKey,
		Ascending: true,
		Page:      defaultPage,
		PageSize:  defaultPageSize,
	}
	if input.SortKey == "" {
		input.SortKey = string(sortKey)
	}
	if req.Ascending != nil {
		input.Ascending = *req.Ascending
	}
	if req.Page != nil {
		input.Page = *req.Page
	}
	if req.PageSize != nil {
		input.PageSize = *req.PageSize
	}
	return input
}

func (h *CatalogHandler) ListItems(ctx context.Context, req *ListItemsRequest) (*ListItemsResponse, error) {
	input := toListInput(req, query.SortByDescription)
	items, err := h.catalog.ListItems(ctx, &input)
	if err != nil {
		return nil, rpc.ToStatus(err, h.logger)
	}
	return &ListItemsResponse{Items: items}, nil
}

func (h *CatalogHandler) SearchItems(ctx context.Context, req *SearchItemsRequest) (*ListItemsResponse, error) {
	items, err := h.catalog.SearchItems(ctx, &dto.SearchInput{
		ListInput: toListInput(&req.ListItemsRequest, query.SortByDescription),
		Prefix:    req.Prefix,
		MinPrice:  req.MinPrice,
		MaxPrice:  req.MaxPrice,
	})
	if err != nil {
		return nil, rpc.ToStatus(err, h.logger)
	}
	return &ListItemsResponse{Items: items}, nil
}

func (h *CatalogHandler) ListItemsByPriceGroups(ctx context.Context, req *ListItemsByPriceGroupsRequest) (*ListItemsResponse, error) {
	groups, err := query.ParsePriceGroupSpecs(req.Groups)
	if err != nil {
		return nil, rpc.ToStatus(err, h.logger)
	}
	items, err := h.catalog.ListItemsByPriceGroups(ctx, &dto.PriceGroupInput{
		ListInput: toListInput(&req.ListItemsRequest, query.SortByPrice),
		Groups:    groups,
		Prefix:    req.Prefix,
	})
	if err != nil {
		return nil, rpc.ToStatus(err, h.logger)
	}
	return &ListItemsResponse{Items: items}, nil
}
