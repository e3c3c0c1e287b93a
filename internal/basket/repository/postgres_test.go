package repository

import (
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/basket/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/query"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBuildLineQuery_Sorted(t *testing.T) {
	q, args := buildLineQuery(&dto.LineFilters{BasketID: "b-1", SortKey: query.SortByPrice, Ascending: true})

	assert.Contains(t, q, "SELECT 0 AS price_group")
	assert.Contains(t, q, "LEFT JOIN reservations r ON r.basket_item_id = bi.id")
	assert.Contains(t, q, "WHERE bi.basket_id = ?")
	assert.NotContains(t, q, "price_group >= 0")
	assert.Contains(t, q, "ORDER BY price ASC, description_lower ASC, code ASC")
	assert.Equal(t, []any{"b-1"}, args)
}

func TestBuildLineQuery_PriceGroups(t *testing.T) {
	groups := query.PriceGroups{query.LessThan{Value: decimal.NewFromInt(2)}}
	q, args := buildLineQuery(&dto.LineFilters{BasketID: "b-1", PriceGroups: groups, Ascending: false})

	assert.Contains(t, q, "CASE WHEN s.price < ? THEN 0 ELSE -1 END AS price_group")
	assert.Contains(t, q, "WHERE price_group >= 0 ORDER BY price_group ASC, price DESC")
	assert.Equal(t, []any{decimal.NewFromInt(2), "b-1"}, args)
}
