package query

import (
	"testing"

	"github.com/fekuna/omnipos-catalog-service/pkg/apperr"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseSortKey(t *testing.T) {
	key, err := ParseSortKey("price")
	require.NoError(t, err)
	assert.Equal(t, SortByPrice, key)

	key, err = ParseSortKey("description")
	require.NoError(t, err)
	assert.Equal(t, SortByDescription, key)

	_, err = ParseSortKey("weight")
	assert.ErrorIs(t, err, apperr.ErrInvalidSortKey)
}

func TestNewPage(t *testing.T) {
	p, err := NewPage(3, 10)
	require.NoError(t, err)
	assert.Equal(t, 20, p.Offset())
	assert.Equal(t, 10, p.Limit())

	_, err = NewPage(0, 10)
	assert.ErrorIs(t, err, apperr.ErrInvalidPage)

	_, err = NewPage(1, 0)
	assert.ErrorIs(t, err, apperr.ErrInvalidPage)
}

func TestPagesAreContiguous(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		size := rapid.IntRange(1, 50).Draw(t, "size")
		n := rapid.IntRange(1, 100).Draw(t, "n")

		p, err := NewPage(n, size)
		require.NoError(t, err)
		next, err := NewPage(n+1, size)
		require.NoError(t, err)
		assert.Equal(t, p.Offset()+p.Limit(), next.Offset())
	})
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPriceGroupsBucket(t *testing.T) {
	groups, err := NewPriceGroups(LessThan{Value: d("2.0")}, Range{Lo: d("2.0"), Hi: d("5.0")}, GreaterThan{Value: d("5.0")})
	require.NoError(t, err)

	tests := []struct {
		price string
		want  int
	}{
		{"1.99", 0},
		{"2.0", 1},
		{"2.00", 1},
		{"5.0", 1},
		{"5.01", 2},
	}
	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			assert.Equal(t, tt.want, groups.Bucket(d(tt.price)))
		})
	}
}

func TestPriceGroupsBucket_NoMatch(t *testing.T) {
	groups, err := NewPriceGroups(Equal{Value: d("3")})
	require.NoError(t, err)

	assert.Equal(t, -1, groups.Bucket(d("4")))
}

func TestNewPriceGroups_Invalid(t *testing.T) {
	_, err := NewPriceGroups()
	assert.ErrorIs(t, err, apperr.ErrInvalidPriceGroupPredicate)

	_, err = NewPriceGroups(Range{Lo: d("5"), Hi: d("2")})
	assert.ErrorIs(t, err, apperr.ErrInvalidPriceGroupPredicate)

	_, err = NewPriceGroups(LessThan{Value: d("1")}, nil)
	assert.ErrorIs(t, err, apperr.ErrInvalidPriceGroupPredicate)
}

func TestParsePriceGroup(t *testing.T) {
	tests := []struct {
		op   string
		want PriceGroup
	}{
		{"<", LessThan{Value: d("2")}},
		{"<=", LessOrEqual{Value: d("2")}},
		{">", GreaterThan{Value: d("2")}},
		{">=", GreaterOrEqual{Value: d("2")}},
		{"==", Equal{Value: d("2")}},
		{"range", Range{Lo: d("2"), Hi: d("4")}},
	}
	for _, tt := range tests {
		t.Run(tt.op, func(t *testing.T) {
			got, err := ParsePriceGroup(tt.op, d("2"), d("4"))
			require.NoError(t, err)
			assert.Equal(t, tt.want.String(), got.String())
		})
	}

	_, err := ParsePriceGroup("!=", d("2"), decimal.Zero)
	assert.ErrorIs(t, err, apperr.ErrInvalidPriceGroupPredicate)

	_, err = ParsePriceGroup("range", d("4"), d("2"))
	assert.ErrorIs(t, err, apperr.ErrInvalidPriceGroupPredicate)
}

func TestCaseSQL(t *testing.T) {
	groups, err := NewPriceGroups(LessThan{Value: d("2")}, Range{Lo: d("2"), Hi: d("5")})
	require.NoError(t, err)

	var args []any
	sql := groups.CaseSQL("s.price", &args)

	assert.Equal(t, "CASE WHEN s.price < ? THEN 0 WHEN s.price BETWEEN ? AND ? THEN 1 ELSE -1 END", sql)
	assert.Equal(t, []any{d("2"), d("2"), d("5")}, args)
}

func TestBucketIsFirstMatch(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		cents := rapid.Int64Range(0, 100000).Draw(t, "cents")
		price := decimal.New(cents, -2)
		cut := decimal.New(rapid.Int64Range(0, 100000).Draw(t, "cut"), -2)

		groups, err := NewPriceGroups(LessThan{Value: cut}, GreaterOrEqual{Value: cut}, GreaterOrEqual{Value: decimal.Zero})
		require.NoError(t, err)

		got := groups.Bucket(price)
		if price.LessThan(cut) {
			assert.Equal(t, 0, got)
		} else {
			assert.Equal(t, 1, got)
		}
	})
}

func TestOrderClause(t *testing.T) {
	assert.Equal(t, " ORDER BY description_lower ASC, code ASC", OrderClause(SortByDescription, true))
	assert.Equal(t, " ORDER BY description_lower DESC, code DESC", OrderClause(SortByDescription, false))
	assert.Equal(t, " ORDER BY price DESC, description_lower ASC, code ASC", OrderClause(SortByPrice, false))
	assert.Equal(t, " ORDER BY price_group ASC, price DESC, description_lower ASC, code ASC", PriceGroupOrderClause(false))
}

func TestParsePriceGroupSpecs(t *testing.T) {
	groups, err := ParsePriceGroupSpecs([]PriceGroupSpec{
		{Op: "<", Value: d("2.0")},
		{Op: "range", Lo: d("2.0"), Hi: d("4.99")},
		{Op: ">=", Value: d("5.0")},
	})
	require.NoError(t, err)
	assert.Equal(t, "<2;range(2,4.99);>=5", groups.String())
	assert.Equal(t, 1, groups.Bucket(d("2.0")))

	_, err = ParsePriceGroupSpecs(nil)
	assert.ErrorIs(t, err, apperr.ErrInvalidPriceGroupPredicate)

	_, err = ParsePriceGroupSpecs([]PriceGroupSpec{{Op: "~", Value: d("1")}})
	assert.ErrorIs(t, err, apperr.ErrInvalidPriceGroupPredicate)
}
