package model

type Basket struct {
	BaseModel
	Session string `db:"session" json:"session"`
}

// BasketItem is a basket line. Count is what the customer wants, which can be
// more than what the line's Reservation holds.
type BasketItem struct {
	BaseModel
	BasketID    string `db:"basket_id" json:"basket_id"`
	StockItemID string `db:"stock_item_id" json:"stock_item_id"`
	Count       int    `db:"count" json:"count"`
}

type Reservation struct {
	BaseModel
	StockItemID  string `db:"stock_item_id" json:"stock_item_id"`
	BasketItemID string `db:"basket_item_id" json:"basket_item_id"`
	Count        int    `db:"count" json:"count"`
}
