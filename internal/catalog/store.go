package catalog

import (
	"errors"
	"sync"
)

var (
	ErrNotFound           = errors.New("product not found")
	ErrQuantityOutOfRange = errors.New("quantity out of range")
)

// Store is the single source of truth for product availability. Products
// are kept in load order; availability changes go through Update or the
// atomic Reserve/ApplyOrder operations.
type Store struct {
	mu     sync.RWMutex
	items  []Product
	byUUID map[string]int
}

func NewStore() *Store {
	return &Store{byUUID: map[string]int{}}
}

// Replace swaps the whole catalog in one step. The loader calls it exactly
// once per successful fetch, so consumers never observe a partial load.
func (s *Store) Replace(products []Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]Product, len(products))
	copy(s.items, products)

	s.byUUID = make(map[string]int, len(products))
	for i, p := range s.items {
		s.byUUID[p.UUID] = i
	}
}

// GetAll returns a snapshot of the catalog in load order.
func (s *Store) GetAll() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Get(uuid string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byUUID[uuid]
	if !ok {
		return Product{}, false
	}
	return s.items[i], true
}

// Update replaces the stored product with the same UUID wholesale.
// Unknown UUIDs are ignored.
func (s *Store) Update(p Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.byUUID[p.UUID]; ok {
		s.items[i] = p
	}
}

// Reserve checks the order bounds and takes quantity out of the available
// stock in one step, so concurrent reservations can never drive the stock
// negative. It returns the product as it was before the reservation: cart
// lines snapshot that value, and their bounds then exclude their own
// reserved units.
func (s *Store) Reserve(uuid string, quantity int) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.byUUID[uuid]
	if !ok {
		return Product{}, ErrNotFound
	}

	p := s.items[i]
	if !ValidOrder(p, quantity) {
		return Product{}, ErrQuantityOutOfRange
	}

	s.items[i].AvailableAmount -= quantity
	return p, nil
}

// ApplyOrder moves delta units from available stock into the committed
// order amount; a negative delta gives units back. Unknown UUIDs are
// ignored, like Update.
func (s *Store) ApplyOrder(uuid string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.byUUID[uuid]; ok {
		s.items[i].AvailableAmount -= delta
		s.items[i].OrderAmount += delta
	}
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
