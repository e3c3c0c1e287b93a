package dto

import "github.com/shopspring/decimal"

type AddItemInput struct {
	Code            string
	Description     string
	LongDescription *string
	// Categories are category names. The first one becomes the primary
	// category; missing ones are created.
	Categories []string
}

type AddItemWithStockInput struct {
	AddItemInput
	Count int
	Price decimal.Decimal
}

// UpdateItemInput changes an item looked up by Code. Nil fields are left as
// they are.
type UpdateItemInput struct {
	Code            string
	NewCode         *string
	Description     *string
	LongDescription *string
}
