// Package cart owns the device cart: item aggregation, quantity, unit and
// notes changes, derived totals and persistence after every change.
package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hardik88t/puredry/internal/domain"
	"github.com/hardik88t/puredry/internal/pricing"
	"github.com/hardik88t/puredry/internal/storage"
)

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrInvalidProduct  = errors.New("product id is required")
	ErrInvalidUnit     = errors.New("unit is required")
)

type Option func(*Store)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Store holds the single cart aggregate. Reads return copies; every mutation
// recomputes the estimate and writes the whole cart to storage.
type Store struct {
	mu      sync.Mutex
	cart    domain.Cart
	storage storage.Store
	logger  *slog.Logger
	now     func() time.Time
}

// NewStore restores the saved cart, or starts a fresh one in currency when
// nothing usable is stored.
func NewStore(ctx context.Context, st storage.Store, currency string, logger *slog.Logger, opts ...Option) *Store {
	s := &Store{
		storage: st,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}

	var saved domain.Cart
	err := storage.LoadJSON(ctx, st, storage.KeyCart, &saved)
	switch {
	case err == nil && saved.ID != "":
		s.cart = saved
		s.cart.EstimatedTotal = pricing.EstimateTotal(s.cart.Items)
		logger.Info("cart restored", "cart_id", saved.ID, "items", len(saved.Items))
		return s
	case err == nil, errors.Is(err, storage.ErrKeyNotFound):
	default:
		logger.Error("failed to parse saved cart", "error", err)
	}

	now := s.now()
	s.cart = domain.Cart{
		ID:        uuid.NewString(),
		Items:     []domain.CartItem{},
		Currency:  currency,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.persistLocked(ctx)
	return s
}

func (s *Store) Cart() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

func (s *Store) Summary() domain.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Summary()
}

// AddItem merges into the existing item with the same product and unit, or
// appends a new one. An empty unit means DefaultUnit. On merge, non-empty
// notes replace the old ones.
func (s *Store) AddItem(ctx context.Context, product domain.Product, quantity int, unit, notes string) (domain.CartItem, error) {
	if strings.TrimSpace(product.ID) == "" {
		return domain.CartItem{}, ErrInvalidProduct
	}
	if quantity <= 0 {
		return domain.CartItem{}, fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}
	if unit == "" {
		unit = domain.DefaultUnit
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart.Items {
		item := &s.cart.Items[i]
		if !item.Matches(product.ID, unit) {
			continue
		}
		item.Quantity += quantity
		if notes != "" {
			item.Notes = notes
		}
		s.commitLocked(ctx)
		return item.Clone(), nil
	}

	now := s.now()
	item := domain.CartItem{
		ID:       s.newItemIDLocked(product.ID, unit, now),
		Product:  product.Clone(),
		Quantity: quantity,
		Unit:     unit,
		Notes:    notes,
		AddedAt:  now,
	}
	s.cart.Items = append(s.cart.Items, item)
	s.commitLocked(ctx)
	return item.Clone(), nil
}

// RemoveItem is a no-op for unknown ids.
func (s *Store) RemoveItem(ctx context.Context, itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(ctx, itemID)
}

// UpdateQuantity removes the item when quantity is zero or negative.
func (s *Store) UpdateQuantity(ctx context.Context, itemID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(ctx, itemID)
		return
	}
	s.updateLocked(ctx, itemID, func(item *domain.CartItem) { item.Quantity = quantity })
}

// UpdateUnit changes the unit in place. It never merges with another item
// that already has the new unit.
func (s *Store) UpdateUnit(ctx context.Context, itemID, unit string) error {
	if strings.TrimSpace(unit) == "" {
		return ErrInvalidUnit
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateLocked(ctx, itemID, func(item *domain.CartItem) { item.Unit = unit })
	return nil
}

func (s *Store) UpdateNotes(ctx context.Context, itemID, notes string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateLocked(ctx, itemID, func(item *domain.CartItem) { item.Notes = notes })
}

// ClearCart empties the cart but keeps its id, currency and creation time.
func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Items = []domain.CartItem{}
	s.commitLocked(ctx)
}

func (s *Store) removeLocked(ctx context.Context, itemID string) {
	kept := s.cart.Items[:0]
	removed := false
	for _, item := range s.cart.Items {
		if item.ID == itemID {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	if !removed {
		return
	}
	s.cart.Items = kept
	s.commitLocked(ctx)
}

func (s *Store) updateLocked(ctx context.Context, itemID string, apply func(*domain.CartItem)) {
	for i := range s.cart.Items {
		if s.cart.Items[i].ID == itemID {
			apply(&s.cart.Items[i])
			s.commitLocked(ctx)
			return
		}
	}
}

func (s *Store) commitLocked(ctx context.Context) {
	s.cart.EstimatedTotal = pricing.EstimateTotal(s.cart.Items)
	s.cart.UpdatedAt = s.now()
	s.persistLocked(ctx)
}

// persistLocked is best effort: a failed write is logged and the in-memory
// cart stays authoritative.
func (s *Store) persistLocked(ctx context.Context) {
	if err := storage.SaveJSON(ctx, s.storage, storage.KeyCart, s.cart); err != nil {
		s.logger.Warn("failed to save cart", "cart_id", s.cart.ID, "error", err)
	}
}

func (s *Store) newItemIDLocked(productID, unit string, at time.Time) string {
	base := fmt.Sprintf("%s-%s-%d", productID, unit, at.UnixMilli())
	id := base
	for n := 2; s.hasItemLocked(id); n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}
	return id
}

func (s *Store) hasItemLocked(id string) bool {
	for _, item := range s.cart.Items {
		if item.ID == id {
			return true
		}
	}
	return false
}
