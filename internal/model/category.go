package model

type Category struct {
	BaseModel
	Name string `db:"name" json:"name"`
}

// ItemCategory links an item to a category. Each item has exactly one
// primary link, the one shown in catalog listings.
type ItemCategory struct {
	ItemID     string `db:"item_id" json:"item_id"`
	CategoryID string `db:"category_id" json:"category_id"`
	IsPrimary  bool   `db:"is_primary" json:"is_primary"`
}
