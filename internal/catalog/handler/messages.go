package handler

import (
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/query"
	"github.com/shopspring/decimal"
)

type AddCategoriesRequest struct {
	Names []string `json:"names"`
}

type CategoriesResponse struct {
	Categories []model.Category `json:"categories"`
	Total      int              `json:"total"`
}

type ListCategoriesRequest struct {
	NamePrefix string `json:"name_prefix"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
}

// AddItemRequest describes one item. Count and Price are only read by
// AddItemsWithStock.
type AddItemRequest struct {
	Code            string          `json:"code"`
	Description     string          `json:"description"`
	LongDescription *string         `json:"long_description,omitempty"`
	Categories      []string        `json:"categories"`
	Count           int             `json:"count,omitempty"`
	Price           decimal.Decimal `json:"price"`
}

type AddItemsRequest struct {
	Items []AddItemRequest `json:"items"`
}

type ItemResponse struct {
	Item *model.Item `json:"item"`
}

type ItemsResponse struct {
	Items []model.Item `json:"items"`
}

type GetItemRequest struct {
	Code string `json:"code"`
}

type UpdateItemRequest struct {
	Code            string  `json:"code"`
	NewCode         *string `json:"new_code,omitempty"`
	Description     *string `json:"description,omitempty"`
	LongDescription *string `json:"long_description,omitempty"`
}

type RemoveItemRequest struct {
	Code string `json:"code"`
}

type Empty struct{}

type AddStockRequest struct {
	Code  string          `json:"code"`
	Count int             `json:"count"`
	Price decimal.Decimal `json:"price"`
}

type UpdateStockRequest struct {
	Code       string          `json:"code"`
	CountDelta int             `json:"count_delta"`
	Price      decimal.Decimal `json:"price"`
}

type GetStockRequest struct {
	Code string `json:"code"`
}

type StockResponse struct {
	Stock *model.StockItem `json:"stock"`
}

// ListItemsRequest leaves every field optional. Omitted fields list the first
// ten items in ascending order of description, or of price for price groups.
type ListItemsRequest struct {
	SortKey   string `json:"sort_key,omitempty"`
	Ascending *bool  `json:"ascending,omitempty"`
	Page      *int   `json:"page,omitempty"`
	PageSize  *int   `json:"page_size,omitempty"`
}

type SearchItemsRequest struct {
	ListItemsRequest
	Prefix   string          `json:"prefix"`
	MinPrice decimal.Decimal `json:"price_min"`
	MaxPrice decimal.Decimal `json:"price_max"`
}

type ListItemsByPriceGroupsRequest struct {
	ListItemsRequest
	Groups []query.PriceGroupSpec `json:"groups"`
	Prefix *string                `json:"prefix,omitempty"`
}

type ListItemsResponse struct {
	Items []model.CatalogEntry `json:"items"`
}
