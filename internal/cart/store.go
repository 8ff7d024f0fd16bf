// Package cart owns the shopping-cart state for the current session: one
// line per product, quantities clamped into the product's ordering bounds,
// dual retail/wholesale totals, and write-through persistence.
package cart

import (
	"sync"

	"trade-kart/internal/model"
	"trade-kart/internal/pricing"

	"github.com/rs/zerolog"
)

// Store owns the cart line collection. All methods are safe for concurrent
// use; mutations persist write-through before returning.
type Store struct {
	mu      sync.Mutex
	lines   []model.CartLine
	storage Storage
	logger  zerolog.Logger
}

// NewStore creates a cart store, loading any previously persisted lines.
func NewStore(storage Storage, logger zerolog.Logger) *Store {
	return &Store{
		lines:   storage.Load(),
		storage: storage,
		logger:  logger.With().Str("store", "cart").Logger(),
	}
}

// AddToCart adds a product to the cart. A new line starts at the larger of
// the requested quantity and the product's minimum order quantity; an
// existing line has the requested quantity merged in. Either way the result
// is capped at the line's upper bound. Clamping is policy, not failure, so
// the caller observes the corrected quantity rather than an error.
func (s *Store) AddToCart(p *model.Product, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity < 1 {
		quantity = 1
	}

	for i := range s.lines {
		if s.lines[i].ProductID != p.ID {
			continue
		}
		// Merge never re-raises the floor: only add and cap.
		merged := s.lines[i].Quantity + quantity
		if upper := s.lines[i].UpperBound(); merged > upper {
			merged = upper
		}
		s.lines[i].Quantity = merged
		s.logger.Debug().
			Str("product_id", p.ID).
			Int("quantity", merged).
			Msg("cart line merged")
		s.persist()
		return
	}

	line := model.NewCartLine(p, quantity)
	if line.Quantity < line.MinOrderQty {
		line.Quantity = line.MinOrderQty
	}
	if upper := line.UpperBound(); line.Quantity > upper {
		line.Quantity = upper
	}
	if line.Quantity < 1 {
		s.logger.Warn().Str("product_id", p.ID).Msg("product has no available stock, not added")
		return
	}

	s.lines = append(s.lines, line)
	s.logger.Debug().
		Str("product_id", p.ID).
		Int("quantity", line.Quantity).
		Msg("cart line added")
	s.persist()
}

// UpdateQuantity overwrites a line's quantity, clamped into the line's
// bounds. A quantity of zero or less removes the line. Missing lines are a
// no-op.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveFromCart(productID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID != productID {
			continue
		}
		if quantity < s.lines[i].MinOrderQty {
			quantity = s.lines[i].MinOrderQty
		}
		if upper := s.lines[i].UpperBound(); quantity > upper {
			quantity = upper
		}
		s.lines[i].Quantity = quantity
		s.logger.Debug().
			Str("product_id", productID).
			Int("quantity", quantity).
			Msg("cart line quantity updated")
		s.persist()
		return
	}
}

// RemoveFromCart deletes a line if present. Idempotent.
func (s *Store) RemoveFromCart(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			s.logger.Debug().Str("product_id", productID).Msg("cart line removed")
			s.persist()
			return
		}
	}
}

// Clear empties the cart. Called by the checkout pipeline after order
// creation.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.logger.Debug().Msg("cart cleared")
	s.persist()
}

// TotalItems returns the sum of quantities across all lines.
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// RetailTotal returns the cart total at retail prices, recomputed on every
// call.
func (s *Store) RetailTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0.0
	for _, line := range s.lines {
		total += line.UnitRetailPrice * float64(line.Quantity)
	}
	return pricing.Round(total)
}

// WholesaleTotal returns the cart total at wholesale prices, recomputed on
// every call.
func (s *Store) WholesaleTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0.0
	for _, line := range s.lines {
		total += line.UnitWholesalePrice * float64(line.Quantity)
	}
	return pricing.Round(total)
}

// Contains reports whether a line exists for the product.
func (s *Store) Contains(productID string) bool {
	return s.Line(productID) != nil
}

// Line returns a copy of the line for the product, or nil when absent.
func (s *Store) Line(productID string) *model.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, line := range s.lines {
		if line.ProductID == productID {
			return &line
		}
	}
	return nil
}

// Lines returns a copy of all cart lines in insertion order.
func (s *Store) Lines() []model.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.CartLine, len(s.lines))
	copy(out, s.lines)
	return out
}

// persist writes the current line collection through to storage. Callers
// hold the mutex. A failed write is logged, not surfaced: the in-memory cart
// stays authoritative for this session.
func (s *Store) persist() {
	if err := s.storage.Save(s.lines); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist cart")
	}
}
