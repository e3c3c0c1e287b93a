package dto

import (
	"github.com/fekuna/omnipos-catalog-service/internal/query"
	"github.com/shopspring/decimal"
)

// ListFilters is a validated catalog query. Nil fields do not filter.
type ListFilters struct {
	Prefix      *string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	PriceGroups query.PriceGroups
	SortKey     query.SortKey
	Ascending   bool
	Page        query.Page
}
