package dto

import (
	"github.com/fekuna/omnipos-catalog-service/internal/query"
	"github.com/shopspring/decimal"
)

type ListInput struct {
	SortKey   string
	Ascending bool
	Page      int
	PageSize  int
}

// SearchInput matches descriptions starting with Prefix, ignoring case, with
// a price in [MinPrice, MaxPrice].
type SearchInput struct {
	ListInput
	Prefix   string
	MinPrice decimal.Decimal
	MaxPrice decimal.Decimal
}

type PriceGroupInput struct {
	ListInput
	Groups query.PriceGroups
	Prefix *string
}
