package recipe

import (
	"sync"

	"github.com/google/uuid"
)

// Catalog indexes recipes by id for detail lookups.
type Catalog struct {
	mu      sync.RWMutex
	recipes map[uuid.UUID]Recipe
}

// NewCatalog creates an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{recipes: make(map[uuid.UUID]Recipe)}
}

// Upsert stores r, replacing any recipe with the same id.
func (c *Catalog) Upsert(r Recipe) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recipes[r.ID] = r.Clone()
}

// Get looks up a recipe by id.
func (c *Catalog) Get(id uuid.UUID) (Recipe, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.recipes[id]
	if !ok {
		return Recipe{}, false
	}
	return r.Clone(), true
}

// Len returns the number of stored recipes.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.recipes)
}
