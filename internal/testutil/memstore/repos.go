package memstore

import (
	"context"
	"sort"
	"strings"

	categorydto "github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/pkg/apperr"
)

type CategoryRepo struct{ s *Store }

func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s: s} }

func (r *CategoryRepo) Create(ctx context.Context, c *model.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected("category.Create"); err != nil {
		return err
	}
	r.s.data.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) FindByName(ctx context.Context, name string) (*model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.data.categories {
		if c.Name == name {
			return &c, nil
		}
	}
	return nil, nil
}

func (r *CategoryRepo) FindAll(ctx context.Context, f *categorydto.CategoryFilters) ([]model.Category, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var all []model.Category
	for _, c := range r.s.data.categories {
		if strings.HasPrefix(c.Name, f.NamePrefix) {
			all = append(all, c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return window(all, f.Page, f.PageSize), len(all), nil
}

func window[T any](rows []T, page, size int) []T {
	if size <= 0 {
		return rows
	}
	from := (max(page, 1) - 1) * size
	if from >= len(rows) {
		return nil
	}
	return rows[from:min(from+size, len(rows))]
}

type ItemRepo struct{ s *Store }

func (s *Store) Items() *ItemRepo { return &ItemRepo{s: s} }

func (r *ItemRepo) Create(ctx context.Context, it *model.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected("item.Create"); err != nil {
		return err
	}
	for _, other := range r.s.data.items {
		if other.Code == it.Code {
			return apperr.DuplicateItem(it.Code)
		}
	}
	cp := *it
	cp.Categories = append([]model.ItemCategory(nil), it.Categories...)
	r.s.data.items[it.ID] = cp
	return nil
}

func (r *ItemRepo) FindByCode(ctx context.Context, code string) (*model.Item, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, it := range r.s.data.items {
		if it.Code == code {
			it.Categories = append([]model.ItemCategory(nil), it.Categories...)
			return &it, nil
		}
	}
	return nil, nil
}

func (r *ItemRepo) Update(ctx context.Context, it *model.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, other := range r.s.data.items {
		if id != it.ID && other.Code == it.Code {
			return apperr.DuplicateItem(it.Code)
		}
	}
	cp := *it
	cp.Categories = r.s.data.items[it.ID].Categories
	r.s.data.items[it.ID] = cp
	return nil
}

func (r *ItemRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.data.items, id)
	for sid, st := range r.s.data.stock {
		if st.ItemID == id {
			r.s.deleteStock(sid)
		}
	}
	return nil
}

// deleteStock must be called with mu held.
func (s *Store) deleteStock(id string) {
	delete(s.data.stock, id)
	for lid, l := range s.data.lines {
		if l.StockItemID == id {
			s.deleteLine(lid)
		}
	}
	for rid, res := range s.data.reservations {
		if res.StockItemID == id {
			delete(s.data.reservations, rid)
			delete(s.data.written, rid)
		}
	}
}

// deleteLine must be called with mu held.
func (s *Store) deleteLine(id string) {
	delete(s.data.lines, id)
	for rid, res := range s.data.reservations {
		if res.BasketItemID == id {
			delete(s.data.reservations, rid)
			delete(s.data.written, rid)
		}
	}
}

type StockRepo struct{ s *Store }

func (s *Store) Stock() *StockRepo { return &StockRepo{s: s} }

func (r *StockRepo) FindByItemID(ctx context.Context, itemID string) (*model.StockItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, st := range r.s.data.stock {
		if st.ItemID == itemID {
			return &st, nil
		}
	}
	return nil, nil
}

func (r *StockRepo) FindByItemIDForUpdate(ctx context.Context, itemID string) (*model.StockItem, error) {
	return r.FindByItemID(ctx, itemID)
}

func (r *StockRepo) Create(ctx context.Context, st *model.StockItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.data.stock {
		if other.ItemID == st.ItemID {
			return apperr.DuplicateStock(st.ItemID)
		}
	}
	r.s.data.stock[st.ID] = *st
	return nil
}

func (r *StockRepo) Update(ctx context.Context, st *model.StockItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected("stock.Update"); err != nil {
		return err
	}
	r.s.data.stock[st.ID] = *st
	return nil
}

type ReservationRepo struct{ s *Store }

func (s *Store) Reservations() *ReservationRepo { return &ReservationRepo{s: s} }

func (r *ReservationRepo) SumReserved(ctx context.Context, stockItemID, excludeBasketItemID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := 0
	for _, res := range r.s.data.reservations {
		if res.StockItemID == stockItemID && res.BasketItemID != excludeBasketItemID {
			total += res.Count
		}
	}
	return total, nil
}

func (r *ReservationRepo) FindByBasketItem(ctx context.Context, basketItemID string) (*model.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, res := range r.s.data.reservations {
		if res.BasketItemID == basketItemID {
			return &res, nil
		}
	}
	return nil, nil
}

func (r *ReservationRepo) Upsert(ctx context.Context, res *model.Reservation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.injected("reservation.Upsert"); err != nil {
		return err
	}
	for id, other := range r.s.data.reservations {
		if other.StockItemID == res.StockItemID && other.BasketItemID == res.BasketItemID {
			other.Count = res.Count
			other.UpdatedAt = res.UpdatedAt
			r.s.data.reservations[id] = other
			r.s.data.written[id] = r.s.next()
			return nil
		}
	}
	r.s.data.reservations[res.ID] = *res
	r.s.data.written[res.ID] = r.s.next()
	return nil
}

func (r *ReservationRepo) ListByStockItem(ctx context.Context, stockItemID string) ([]model.Reservation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Reservation
	for _, res := range r.s.data.reservations {
		if res.StockItemID == stockItemID {
			out = append(out, res)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return r.s.data.written[out[i].ID] > r.s.data.written[out[j].ID]
	})
	return out, nil
}

func (r *ReservationRepo) UpdateCount(ctx context.Context, id string, count int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	res, ok := r.s.data.reservations[id]
	if !ok {
		return nil
	}
	res.Count = count
	r.s.data.reservations[id] = res
	r.s.data.written[id] = r.s.next()
	return nil
}
