package model

import "github.com/shopspring/decimal"

type StockItem struct {
	BaseModel
	ItemID  string          `db:"item_id" json:"item_id"`
	Count   int             `db:"count" json:"count"`
	Price   decimal.Decimal `db:"price" json:"price"`
	Visible bool            `db:"visible" json:"visible"` // Stored only, listings do not filter on it
}
