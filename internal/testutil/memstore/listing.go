package memstore

import (
	"context"
	"sort"
	"strings"

	basketdto "github.com/fekuna/omnipos-catalog-service/internal/basket/dto"
	catalogdto "github.com/fekuna/omnipos-catalog-service/internal/catalog/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/query"
	"github.com/fekuna/omnipos-catalog-service/pkg/apperr"
	"github.com/shopspring/decimal"
)

type BasketRepo struct{ s *Store }

func (s *Store) Baskets() *BasketRepo { return &BasketRepo{s: s} }

func (r *BasketRepo) Create(ctx context.Context, b *model.Basket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.data.baskets {
		if other.Session == b.Session {
			return apperr.DuplicateSession(b.Session)
		}
	}
	r.s.data.baskets[b.ID] = *b
	return nil
}

func (r *BasketRepo) FindBySession(ctx context.Context, session string) (*model.Basket, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, b := range r.s.data.baskets {
		if b.Session == session {
			return &b, nil
		}
	}
	return nil, nil
}

func (r *BasketRepo) Touch(ctx context.Context, basketID string) error {
	return nil
}

func (r *BasketRepo) FindLine(ctx context.Context, basketID, stockItemID string) (*model.BasketItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.data.lines {
		if l.BasketID == basketID && l.StockItemID == stockItemID {
			return &l, nil
		}
	}
	return nil, nil
}

func (r *BasketRepo) CreateLine(ctx context.Context, line *model.BasketItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.lines[line.ID] = *line
	return nil
}

func (r *BasketRepo) UpdateLine(ctx context.Context, line *model.BasketItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.lines[line.ID] = *line
	return nil
}

func (r *BasketRepo) DeleteLine(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.deleteLine(id)
	return nil
}

func (r *BasketRepo) ListLines(ctx context.Context, f *basketdto.LineFilters) ([]model.BasketEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var rows []row
	for _, l := range r.s.data.lines {
		if l.BasketID != f.BasketID {
			continue
		}
		st := r.s.data.stock[l.StockItemID]
		it := r.s.data.items[st.ItemID]
		reserved := 0
		for _, res := range r.s.data.reservations {
			if res.BasketItemID == l.ID {
				reserved = res.Count
			}
		}
		rows = append(rows, row{
			group:     0,
			code:      it.Code,
			desc:      it.Description,
			descLower: it.DescriptionLower,
			price:     st.Price,
			count:     l.Count,
			reserved:  reserved,
		})
	}

	rows = arrange(rows, f.PriceGroups, f.SortKey, f.Ascending)
	out := make([]model.BasketEntry, 0, len(rows))
	for _, x := range rows {
		out = append(out, model.BasketEntry{
			PriceGroup:  x.group,
			Code:        x.code,
			Description: x.desc,
			Price:       x.price,
			Count:       x.count,
			Reserved:    x.reserved,
		})
	}
	return out, nil
}

type CatalogRepo struct{ s *Store }

func (s *Store) Catalog() *CatalogRepo { return &CatalogRepo{s: s} }

func (r *CatalogRepo) List(ctx context.Context, f *catalogdto.ListFilters) ([]model.CatalogEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected("catalog.List"); err != nil {
		return nil, err
	}

	reserved := map[string]int{}
	for _, res := range r.s.data.reservations {
		reserved[res.StockItemID] += res.Count
	}

	var rows []row
	for _, st := range r.s.data.stock {
		it, ok := r.s.data.items[st.ItemID]
		if !ok {
			continue
		}
		category, ok := r.s.primaryCategory(it)
		if !ok {
			continue
		}
		if f.Prefix != nil && !strings.HasPrefix(it.DescriptionLower, strings.ToLower(*f.Prefix)) {
			continue
		}
		if f.MinPrice != nil && st.Price.LessThan(*f.MinPrice) {
			continue
		}
		if f.MaxPrice != nil && st.Price.GreaterThan(*f.MaxPrice) {
			continue
		}
		rows = append(rows, row{
			code:      it.Code,
			desc:      it.Description,
			descLower: it.DescriptionLower,
			category:  category,
			price:     st.Price,
			count:     st.Count,
			reserved:  reserved[st.ID],
		})
	}

	rows = window(arrange(rows, f.PriceGroups, f.SortKey, f.Ascending), f.Page.Number, f.Page.Size)
	out := make([]model.CatalogEntry, 0, len(rows))
	for _, x := range rows {
		out = append(out, model.CatalogEntry{
			PriceGroup:  x.group,
			Code:        x.code,
			Description: x.desc,
			Category:    x.category,
			Price:       x.price,
			Count:       x.count,
			Reserved:    x.reserved,
		})
	}
	return out, nil
}

// primaryCategory must be called with mu held.
func (s *Store) primaryCategory(it model.Item) (string, bool) {
	for _, link := range it.Categories {
		if link.IsPrimary {
			c, ok := s.data.categories[link.CategoryID]
			return c.Name, ok
		}
	}
	return "", false
}

type row struct {
	group     int
	code      string
	desc      string
	descLower string
	category  string
	price     decimal.Decimal
	count     int
	reserved  int
}

// arrange buckets and orders rows the way the SQL listings do.
func arrange(rows []row, groups query.PriceGroups, key query.SortKey, ascending bool) []row {
	if len(groups) > 0 {
		kept := rows[:0]
		for _, x := range rows {
			x.group = groups.Bucket(x.price)
			if x.group >= 0 {
				kept = append(kept, x)
			}
		}
		rows = kept
	}

	byPrice := func(a, b row) int {
		c := a.price.Cmp(b.price)
		if !ascending {
			c = -c
		}
		return c
	}
	thenDescCode := func(a, b row) bool {
		if a.descLower != b.descLower {
			return a.descLower < b.descLower
		}
		return a.code < b.code
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch {
		case len(groups) > 0:
			if a.group != b.group {
				return a.group < b.group
			}
			if c := byPrice(a, b); c != 0 {
				return c < 0
			}
			return thenDescCode(a, b)
		case key == query.SortByPrice:
			if c := byPrice(a, b); c != 0 {
				return c < 0
			}
			return thenDescCode(a, b)
		default:
			if ascending {
				return thenDescCode(a, b)
			}
			return thenDescCode(b, a)
		}
	})
	return rows
}
