// Package memstore keeps the catalog in memory behind the repository
// interfaces, so usecases can be tested without PostgreSQL.
package memstore

import (
	"context"
	"maps"
	"sync"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	data *tables
	seq  int64

	// failOn makes the named operation return the given error once.
	failOn map[string]error
}

type tables struct {
	categories   map[string]model.Category
	items        map[string]model.Item
	stock        map[string]model.StockItem
	baskets      map[string]model.Basket
	lines        map[string]model.BasketItem
	reservations map[string]model.Reservation
	// written records the write sequence of each reservation, the in-memory
	// stand-in for updated_at ordering.
	written map[string]int64
}

func New() *Store {
	return &Store{
		data: &tables{
			categories:   map[string]model.Category{},
			items:        map[string]model.Item{},
			stock:        map[string]model.StockItem{},
			baskets:      map[string]model.Basket{},
			lines:        map[string]model.BasketItem{},
			reservations: map[string]model.Reservation{},
			written:      map[string]int64{},
		},
		failOn: map[string]error{},
	}
}

func (t *tables) clone() *tables {
	items := make(map[string]model.Item, len(t.items))
	for id, it := range t.items {
		it.Categories = append([]model.ItemCategory(nil), it.Categories...)
		items[id] = it
	}
	return &tables{
		categories:   maps.Clone(t.categories),
		items:        items,
		stock:        maps.Clone(t.stock),
		baskets:      maps.Clone(t.baskets),
		lines:        maps.Clone(t.lines),
		reservations: maps.Clone(t.reservations),
		written:      maps.Clone(t.written),
	}
}

// Fail arranges for the next call of op to return err.
func (s *Store) Fail(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failOn[op] = err
}

// injected must be called with mu held.
func (s *Store) injected(op string) error {
	if err, ok := s.failOn[op]; ok {
		delete(s.failOn, op)
		return err
	}
	return nil
}

func (s *Store) next() int64 {
	s.seq++
	return s.seq
}

type txKey struct{}

// Tx runs units of work one at a time and restores the previous state when
// they fail, like a serializable transaction.
type Tx struct {
	s *Store
}

func (s *Store) Tx() *Tx {
	return &Tx{s: s}
}

func (t *Tx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()

	t.s.mu.Lock()
	snapshot := t.s.data.clone()
	t.s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		t.s.mu.Lock()
		t.s.data = snapshot
		t.s.mu.Unlock()
		return err
	}
	return nil
}

// SumReservedFor totals the reservations on the stock item of code.
func (s *Store) SumReservedFor(code string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stockByCode(code)
	if !ok {
		return 0
	}
	total := 0
	for _, r := range s.data.reservations {
		if r.StockItemID == st.ID {
			total += r.Count
		}
	}
	return total
}

// StockCount returns the stock count of code, or -1 without stock.
func (s *Store) StockCount(code string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.stockByCode(code)
	if !ok {
		return -1
	}
	return st.Count
}

func (s *Store) stockByCode(code string) (model.StockItem, bool) {
	for _, it := range s.data.items {
		if it.Code != code {
			continue
		}
		for _, st := range s.data.stock {
			if st.ItemID == it.ID {
				return st, true
			}
		}
	}
	return model.StockItem{}, false
}
