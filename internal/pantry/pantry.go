package pantry

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"meal-planner/internal/recipe"
	"meal-planner/internal/shared"
)

// Item is something the user already has at home.
type Item struct {
	ID             uuid.UUID         `json:"id"`
	Barcode        *string           `json:"barcode,omitempty"`
	Ingredient     recipe.Ingredient `json:"ingredient"`
	QuantityOnHand float64           `json:"quantity_on_hand"`
	ExpiresOn      *time.Time        `json:"expires_on,omitempty"`
}

// Names returns the ingredient names of items, in order.
func Names(items []Item) []string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Ingredient.Name)
	}
	return names
}

// Store holds the pantry contents. Mutations are serialized and listeners are
// notified in mutation order with a snapshot of the full pantry.
type Store struct {
	writeMu  sync.Mutex
	mu       sync.RWMutex
	items    []Item
	notifier shared.Notifier[[]Item]
}

// NewStore creates an empty pantry.
func NewStore() *Store {
	return &Store{}
}

// Items returns a snapshot of the pantry.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Subscribe registers fn to receive the pantry after every mutation.
func (s *Store) Subscribe(fn func([]Item)) (cancel func()) {
	return s.notifier.Subscribe(fn)
}

// SetItems replaces the whole pantry.
func (s *Store) SetItems(items []Item) {
	s.commit(func([]Item) []Item { return slices.Clone(items) })
}

// Upsert replaces the item with the same id or appends it.
func (s *Store) Upsert(item Item) {
	s.commit(func(items []Item) []Item {
		for i := range items {
			if items[i].ID == item.ID {
				items[i] = item
				return items
			}
		}
		return append(items, item)
	})
}

// Remove deletes the item with the given id. It reports whether an item was
// removed; unknown ids change nothing and notify nobody.
func (s *Store) Remove(id uuid.UUID) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	current := s.Items()
	idx := slices.IndexFunc(current, func(it Item) bool { return it.ID == id })
	if idx < 0 {
		return false
	}
	s.publishLocked(slices.Delete(current, idx, idx+1))
	return true
}

// Restore loads persisted items without notifying listeners.
func (s *Store) Restore(items []Item) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.mu.Lock()
	s.items = slices.Clone(items)
	s.mu.Unlock()
}

func (s *Store) commit(mutate func([]Item) []Item) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.publishLocked(mutate(s.Items()))
}

func (s *Store) publishLocked(next []Item) {
	s.mu.Lock()
	s.items = next
	s.mu.Unlock()
	s.notifier.Publish(slices.Clone(next))
}
