package dto

import "github.com/shopspring/decimal"

// AddStockInput sets the initial stock of an item.
type AddStockInput struct {
	Code  string
	Count int
	Price decimal.Decimal
}

// UpdateStockInput moves the stock count by CountDelta and sets the price.
type UpdateStockInput struct {
	Code       string
	CountDelta int
	Price      decimal.Decimal
}
