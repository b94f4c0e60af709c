package cart

import (
	"errors"
	"sync"

	"Storefront/internal/catalog"
)

// LineItem is one cart row, keyed by Product.UUID. Product is the catalog
// entry as it was when the line reserved its stock; quantity bounds are
// checked against that snapshot, since the live amount already excludes
// this line's own units. PriceCents caches Product.PriceCents * Quantity
// and is recomputed in the same step as any quantity change.
type LineItem struct {
	Product    catalog.Product `json:"product"`
	Quantity   int             `json:"quantity"`
	PriceCents int64           `json:"price_cents"`
}

// Rejections are reported as sentinel errors rather than raised as panics;
// a rejected operation leaves both stores untouched.
var (
	ErrNotInCart          = errors.New("product not in cart")
	ErrUnknownProduct     = errors.New("unknown product")
	ErrQuantityOutOfRange = errors.New("quantity out of range")
	ErrAtStockLimit       = errors.New("no stock left to add")
	ErrAtMinimum          = errors.New("quantity at minimum order amount")
)

// Store holds the cart's line items in insertion order, at most one per
// product identity, and keeps them consistent with the catalog's bounds.
type Store struct {
	mu      sync.Mutex
	catalog *catalog.Store
	items   []LineItem
	byUUID  map[string]int
}

func NewStore(c *catalog.Store) *Store {
	return &Store{catalog: c, byUUID: map[string]int{}}
}

// Add merges quantity into an existing line or appends a new one. It does
// not validate the order and does not touch the catalog: the caller
// reserves the stock itself (catalog Reserve), where the pre-add available
// amount is freshest, and hands the pre-reservation product in as p.
func (s *Store) Add(p catalog.Product, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.byUUID[p.UUID]; ok {
		it := &s.items[i]
		it.Quantity += quantity
		it.PriceCents = it.Product.PriceCents * int64(it.Quantity)
		return
	}

	s.items = append(s.items, LineItem{
		Product:    p,
		Quantity:   quantity,
		PriceCents: p.PriceCents * int64(quantity),
	})
	s.byUUID[p.UUID] = len(s.items) - 1
}

// Remove deletes the line item, if present. Stock is not returned to the
// catalog; see the package doc for the asymmetry with Decrease.
func (s *Store) Remove(uuid string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.byUUID[uuid]
	if !ok {
		return
	}

	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.byUUID, uuid)
	for j := i; j < len(s.items); j++ {
		s.byUUID[s.items[j].Product.UUID] = j
	}
}

// UpdateQuantity is the single validation gate for direct quantity edits.
// The bounds come from the line's reservation snapshot, not the live
// catalog entry: the live amount was already decremented by this line's
// reserved units, so bounding by it would make the reserved stock count
// against itself.
func (s *Store) UpdateQuantity(uuid string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateQuantityLocked(uuid, quantity)
}

func (s *Store) updateQuantityLocked(uuid string, quantity int) error {
	i, ok := s.byUUID[uuid]
	if !ok {
		return ErrNotInCart
	}
	it := &s.items[i]

	if !catalog.ValidOrder(it.Product, quantity) {
		return ErrQuantityOutOfRange
	}

	it.Quantity = quantity
	it.PriceCents = it.Product.PriceCents * int64(quantity)
	return nil
}

// Increase adds one unit to the line and reserves it in the catalog. The
// two mutations happen inside one critical section, so a reader never
// observes the line incremented without the stock decremented.
func (s *Store) Increase(uuid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.catalog.Get(uuid); !ok {
		return ErrUnknownProduct
	}
	i, ok := s.byUUID[uuid]
	if !ok {
		return ErrNotInCart
	}

	// Strict less-than against the snapshot's available amount: the last
	// unit the catalog reported before this line reserved stock is
	// sellable, one past it is not.
	if s.items[i].Quantity >= s.items[i].Product.AvailableAmount {
		return ErrAtStockLimit
	}

	if err := s.updateQuantityLocked(uuid, s.items[i].Quantity+1); err != nil {
		return err
	}

	s.catalog.ApplyOrder(uuid, 1)
	return nil
}

// Decrease gives one unit back to the catalog. The quantity can never
// drop below the product's minimum this way; Remove drops the line.
func (s *Store) Decrease(uuid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.catalog.Get(uuid)
	if !ok {
		return ErrUnknownProduct
	}
	i, ok := s.byUUID[uuid]
	if !ok {
		return ErrNotInCart
	}

	if s.items[i].Quantity <= p.MinOrderAmount {
		return ErrAtMinimum
	}

	if err := s.updateQuantityLocked(uuid, s.items[i].Quantity-1); err != nil {
		return err
	}

	s.catalog.ApplyOrder(uuid, -1)
	return nil
}

// Items returns a snapshot of the line items in insertion order.
func (s *Store) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems counts distinct line items, not summed quantities.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) TotalPriceCents() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, it := range s.items {
		total += it.PriceCents
	}
	return total
}

// Clear empties the cart. Like Remove, it does not restore stock.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.byUUID = map[string]int{}
}
