package memstore

import (
	"strings"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SeedItem stores an item in category with a stock row holding count units
// at price. A negative count leaves the item without stock.
func (s *Store) SeedItem(code, description, category string, count int, price string) model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	base := func() model.BaseModel {
		return model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	}

	var cat model.Category
	found := false
	for _, c := range s.data.categories {
		if c.Name == category {
			cat, found = c, true
			break
		}
	}
	if !found {
		cat = model.Category{BaseModel: base(), Name: category}
		s.data.categories[cat.ID] = cat
	}

	it := model.Item{
		BaseModel:        base(),
		Code:             code,
		Description:      description,
		DescriptionLower: strings.ToLower(description),
	}
	it.Categories = []model.ItemCategory{{ItemID: it.ID, CategoryID: cat.ID, IsPrimary: true}}
	s.data.items[it.ID] = it

	if count >= 0 {
		st := model.StockItem{
			BaseModel: base(),
			ItemID:    it.ID,
			Count:     count,
			Price:     decimal.RequireFromString(price),
			Visible:   true,
		}
		s.data.stock[st.ID] = st
	}
	return it
}
