package handler

import (
	"github.com/fekuna/omnipos-catalog-service/internal/basket/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/query"
	"github.com/shopspring/decimal"
)

// Session fields may be left empty when the x-session-token header is sent.

type SessionRequest struct {
	Session string `json:"session,omitempty"`
}

type BasketResponse struct {
	Basket *model.Basket `json:"basket"`
}

type LineRequest struct {
	Session string `json:"session,omitempty"`
	Code    string `json:"code"`
	Count   int    `json:"count"`
}

type LineResponse struct {
	Line *dto.LineState `json:"line"`
}

type RemoveItemRequest struct {
	Session string `json:"session,omitempty"`
	Code    string `json:"code"`
}

type Empty struct{}

// ListItemsRequest sorts by description, ascending, when the fields are omitted.
type ListItemsRequest struct {
	Session   string `json:"session,omitempty"`
	SortKey   string `json:"sort_key,omitempty"`
	Ascending *bool  `json:"ascending,omitempty"`
}

type ListItemsByPriceGroupsRequest struct {
	Session   string                 `json:"session,omitempty"`
	Groups    []query.PriceGroupSpec `json:"groups"`
	Ascending *bool                  `json:"ascending,omitempty"`
}

type ListItemsResponse struct {
	Items []model.BasketEntry `json:"items"`
}

type TotalResponse struct {
	Total decimal.Decimal `json:"total"`
}
