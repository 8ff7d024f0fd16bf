// Package catalog exposes the read-only product collection the cart copies
// from at add-time. The storefront ships with a static catalogue; nothing
// here mutates after construction.
package catalog

import (
	"sort"

	"trade-kart/internal/model"

	"github.com/rs/zerolog"
)

// Catalog defines read-only product lookups.
type Catalog interface {
	// GetByID retrieves a single product by ID. Returns nil when absent.
	GetByID(id string) *model.Product

	// ListByCategory retrieves all products in a category.
	ListByCategory(category string) []model.Product

	// All retrieves every product, ordered by ID.
	All() []model.Product
}

// memoryCatalog implements Catalog over a fixed product set.
type memoryCatalog struct {
	byID   map[string]model.Product
	logger zerolog.Logger
}

// New creates a catalog from a fixed product list. Later entries win on
// duplicate IDs.
func New(products []model.Product, logger zerolog.Logger) Catalog {
	byID := make(map[string]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	logger.Info().Int("product_count", len(byID)).Msg("catalogue loaded")

	return &memoryCatalog{
		byID:   byID,
		logger: logger.With().Str("component", "catalog").Logger(),
	}
}

// GetByID retrieves a single product by ID.
func (c *memoryCatalog) GetByID(id string) *model.Product {
	p, ok := c.byID[id]
	if !ok {
		return nil
	}
	return &p
}

// ListByCategory retrieves all products in a category, ordered by ID.
func (c *memoryCatalog) ListByCategory(category string) []model.Product {
	var products []model.Product
	for _, p := range c.byID {
		if p.Category == category {
			products = append(products, p)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products
}

// All retrieves every product, ordered by ID.
func (c *memoryCatalog) All() []model.Product {
	products := make([]model.Product, 0, len(c.byID))
	for _, p := range c.byID {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products
}
