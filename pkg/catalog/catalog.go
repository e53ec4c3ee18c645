// Package catalog provides the storefront's static product catalog.
//
// The catalog is read-only reference data: the session and cart stores
// treat product IDs as opaque keys and never mutate it.
package catalog

import "sort"

// Product is a single catalog entry.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image,omitempty"`
	Description string  `json:"description,omitempty"`
}

// Catalog is an immutable, ordered product collection with id and
// category lookups.
type Catalog struct {
	products []Product
	byID     map[string]Product
}

// New creates a catalog over the given products. Order is preserved;
// a later product with a duplicate ID wins the lookup.
func New(products []Product) *Catalog {
	c := &Catalog{
		products: make([]Product, len(products)),
		byID:     make(map[string]Product, len(products)),
	}
	copy(c.products, products)
	for _, p := range c.products {
		c.byID[p.ID] = p
	}
	return c
}

// Default returns the catalog seeded with the storefront's fixed
// product list.
func Default() *Catalog {
	return New(seedProducts)
}

// All returns the products in catalog order.
func (c *Catalog) All() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// ByID looks up a product by its id.
func (c *Catalog) ByID(id string) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// ByCategory returns the products in the given category, in catalog order.
func (c *Catalog) ByCategory(category string) []Product {
	var out []Product
	for _, p := range c.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns the distinct categories, sorted.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range c.products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	sort.Strings(out)
	return out
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}
