// Package catalog holds the read-only list of orderable menu items.
package catalog

import (
	"context"
	"fmt"

	"pizzeria/internal/models"
	"pizzeria/internal/validation"
)

// Catalog is an immutable, ordered set of menu items. It is built once at
// startup and shared by reference; no method mutates it.
type Catalog struct {
	items []models.MenuItem
	index map[string]int
}

// New validates items and builds a catalog preserving their order
func New(items []models.MenuItem) (*Catalog, error) {
	if err := validation.ValidateMenu(items); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	c := &Catalog{
		items: make([]models.MenuItem, len(items)),
		index: make(map[string]int, len(items)),
	}
	copy(c.items, items)
	for i, item := range c.items {
		c.index[item.ID] = i
	}
	return c, nil
}

// MustNew is New for static menus known to be valid
func MustNew(items []models.MenuItem) *Catalog {
	c, err := New(items)
	if err != nil {
		panic(err)
	}
	return c
}

// Items returns a copy of all items in catalog order
func (c *Catalog) Items() []models.MenuItem {
	out := make([]models.MenuItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of items
func (c *Catalog) Len() int {
	return len(c.items)
}

// Lookup returns the item with the given id
func (c *Catalog) Lookup(id string) (models.MenuItem, bool) {
	i, ok := c.index[id]
	if !ok {
		return models.MenuItem{}, false
	}
	return c.items[i], true
}

// ByCategory returns the items of one category in catalog order
func (c *Catalog) ByCategory(category models.Category) []models.MenuItem {
	var out []models.MenuItem
	for _, item := range c.items {
		if item.Category == category {
			out = append(out, item)
		}
	}
	return out
}

// Source loads menu items from some backing store
type Source interface {
	LoadMenu(ctx context.Context) ([]models.MenuItem, error)
}

// Load reads items from src and builds a catalog from them
func Load(ctx context.Context, src Source) (*Catalog, error) {
	items, err := src.LoadMenu(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}
	return New(items)
}
