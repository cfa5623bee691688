// Package catalog holds the static product catalog and the query engine that
// filters, searches, sorts and pages it.
package catalog

import (
	"errors"

	"github.com/hardik88t/puredry/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// Catalog is read-only after construction.
type Catalog struct {
	products   []domain.Product
	categories []domain.ProductCategory
	byID       map[string]int
}

func New(products []domain.Product, categories []domain.ProductCategory) *Catalog {
	c := &Catalog{
		products:   make([]domain.Product, len(products)),
		categories: make([]domain.ProductCategory, len(categories)),
		byID:       make(map[string]int, len(products)),
	}
	for i, p := range products {
		c.products[i] = p.Clone()
		c.byID[p.ID] = i
	}
	copy(c.categories, categories)
	return c
}

// Products returns the full product set in catalog order. Callers must not
// modify the returned products.
func (c *Catalog) Products() []domain.Product {
	return c.products
}

func (c *Catalog) Categories() []domain.ProductCategory {
	out := make([]domain.ProductCategory, len(c.categories))
	copy(out, c.categories)
	return out
}

func (c *Catalog) Get(id string) (domain.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	return c.products[i].Clone(), nil
}

// Related returns up to limit other products from the same category.
func (c *Catalog) Related(id string, limit int) ([]domain.Product, error) {
	p, err := c.Get(id)
	if err != nil {
		return nil, err
	}
	related := make([]domain.Product, 0, max(0, min(limit, len(c.products)-1)))
	for _, other := range c.products {
		if len(related) >= limit {
			break
		}
		if other.ID == p.ID || other.Category != p.Category {
			continue
		}
		related = append(related, other.Clone())
	}
	return related, nil
}
