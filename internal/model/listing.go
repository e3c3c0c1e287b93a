package model

import "github.com/shopspring/decimal"

// CatalogEntry is one row of a catalog listing. Reserved is the sum of all
// baskets' reservations for the stock item.
type CatalogEntry struct {
	PriceGroup  int             `db:"price_group" json:"price_group"`
	Code        string          `db:"code" json:"code"`
	Description string          `db:"description" json:"description"`
	Category    string          `db:"category" json:"category"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Count       int             `db:"count" json:"count"`
	Reserved    int             `db:"reserved" json:"reserved"`
}

// BasketEntry is one line of a basket listing. Count is the desired quantity
// and Reserved this basket's own reservation.
type BasketEntry struct {
	PriceGroup  int             `db:"price_group" json:"price_group"`
	Code        string          `db:"code" json:"code"`
	Description string          `db:"description" json:"description"`
	Price       decimal.Decimal `db:"price" json:"price"`
	Count       int             `db:"count" json:"count"`
	Reserved    int             `db:"reserved" json:"reserved"`
}
