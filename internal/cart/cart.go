// Package cart implements the client-side shopping cart: an ordered list of
// line items keyed by product id, persisted through the storage port on every
// mutation. Prices and stock counts are snapshots taken when a product is
// added; they are never re-synced against the live catalog. Server-side stock
// revalidation belongs to checkout, which this client does not perform.
package cart

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"shopfront/internal/api"
	"shopfront/internal/logging"
	"shopfront/internal/notify"
	"shopfront/internal/storage"
)

// ErrInsufficientStock is returned when a mutation would push a line's
// quantity past its recorded stock snapshot. The cart is left unchanged.
var ErrInsufficientStock = errors.New("cart: insufficient stock")

// recordName is the persisted document name under the storage port.
const recordName = "cart"

// Item is one cart line. Display fields and price are copied from the product
// at add time.
type Item struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Slug          string  `json:"slug"`
	Price         float64 `json:"price"`
	ImageURL      string  `json:"image_url,omitempty"`
	Quantity      int     `json:"quantity"`
	StockQuantity int     `json:"stock_quantity"`
}

// snapshot is the persisted shape: line items only. The visibility flag and
// derived totals are not stored.
type snapshot struct {
	Items []Item `json:"items"`
}

// Store holds the cart state. All operations are atomic: the in-memory list
// and the persisted snapshot are both updated before the call returns.
type Store struct {
	mu       sync.Mutex
	items    []Item
	isOpen   bool
	storage  storage.Store
	notifier notify.Notifier
	log      *zap.Logger
}

// NewStore creates a cart store, restoring any persisted snapshot verbatim.
// A missing or unreadable snapshot yields an empty cart.
func NewStore(st storage.Store, notifier notify.Notifier) *Store {
	s := &Store{
		storage:  st,
		notifier: notifier,
		log:      logging.Get(logging.CategoryCart),
	}

	var snap snapshot
	switch err := st.Read(recordName, &snap); {
	case err == nil:
		s.items = snap.Items
	case errors.Is(err, storage.ErrNotFound):
		// First run.
	default:
		s.log.Warn("discarding unreadable cart snapshot", zap.Error(err))
	}
	return s
}

// AddItem adds quantity units of product to the cart, merging into an
// existing line for the same product id. Quantities below 1 are treated as 1.
// If the resulting quantity would exceed the product's stock the cart is left
// unchanged, a warning is shown, and ErrInsufficientStock is returned.
func (s *Store) AddItem(product api.Product, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.ID != product.ID {
			continue
		}
		newQuantity := item.Quantity + quantity
		if newQuantity > product.StockQuantity {
			s.notifier.Error(fmt.Sprintf("Cannot add more items. Only %d available.", product.StockQuantity))
			return ErrInsufficientStock
		}
		s.items[i].Quantity = newQuantity
		s.persist()
		s.notifier.Success(fmt.Sprintf("Updated %s quantity to %d", product.Name, newQuantity))
		return nil
	}

	if quantity > product.StockQuantity {
		s.notifier.Error(fmt.Sprintf("Cannot add %d items. Only %d available.", quantity, product.StockQuantity))
		return ErrInsufficientStock
	}

	s.items = append(s.items, Item{
		ID:            product.ID,
		Name:          product.Name,
		Slug:          product.Slug,
		Price:         product.Price,
		ImageURL:      product.ImageURL,
		Quantity:      quantity,
		StockQuantity: product.StockQuantity,
	})
	s.persist()
	s.notifier.Success(fmt.Sprintf("Added %s to cart", product.Name))
	return nil
}

// RemoveItem deletes the line for productID. Removing an absent line is a
// silent no-op; removing a present one is announced by name.
func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(productID)
}

func (s *Store) removeLocked(productID string) {
	for i, item := range s.items {
		if item.ID != productID {
			continue
		}
		s.items = append(s.items[:i], s.items[i+1:]...)
		s.persist()
		s.notifier.Success(fmt.Sprintf("Removed %s from cart", item.Name))
		return
	}
}

// UpdateQuantity sets the quantity of an existing line. A quantity of zero or
// less removes the line, exactly as RemoveItem. A quantity above the line's
// recorded stock snapshot is rejected with a warning and the line is left
// unchanged. A successful update is deliberately silent; only add and remove
// announce themselves.
func (s *Store) UpdateQuantity(productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(productID)
		return nil
	}

	for i, item := range s.items {
		if item.ID != productID {
			continue
		}
		if quantity > item.StockQuantity {
			s.notifier.Error(fmt.Sprintf("Cannot add more items. Only %d available.", item.StockQuantity))
			return ErrInsufficientStock
		}
		s.items[i].Quantity = quantity
		s.persist()
		return nil
	}
	return nil
}

// ClearCart empties the cart.
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.persist()
	s.notifier.Success("Cart cleared")
}

// ToggleCart flips the cart overlay's visibility.
func (s *Store) ToggleCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = !s.isOpen
}

// OpenCart shows the cart overlay.
func (s *Store) OpenCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = true
}

// CloseCart hides the cart overlay.
func (s *Store) CloseCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isOpen = false
}

// IsOpen reports whether the cart overlay is visible.
func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isOpen
}

// Items returns a copy of the cart lines in insertion order.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Item, len(s.items))
	copy(out, s.items)
	return out
}

// TotalItems returns the sum of all line quantities.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalPrice returns the subtotal over all lines, using the price snapshots
// taken at add time.
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0.0
	for _, item := range s.items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// persist writes the current snapshot. The in-memory state is authoritative
// for this session; a failed write is logged and the session continues.
func (s *Store) persist() {
	if err := s.storage.Write(recordName, snapshot{Items: s.items}); err != nil {
		s.log.Warn("failed to persist cart", zap.Error(err))
	}
}
