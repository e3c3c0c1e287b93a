package dto

import "github.com/fekuna/omnipos-catalog-service/internal/query"

// LineFilters selects the lines of one basket. With PriceGroups set only
// lines that fall in a bucket are returned and SortKey is ignored.
type LineFilters struct {
	BasketID    string
	SortKey     query.SortKey
	Ascending   bool
	PriceGroups query.PriceGroups
}

// Options holds basket policy switches.
type Options struct {
	// IdempotentCreate makes CreateBasket return the existing basket for a
	// known session instead of failing.
	IdempotentCreate bool
}
