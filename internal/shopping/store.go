package shopping

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"meal-planner/internal/pantry"
	"meal-planner/internal/planner"
	"meal-planner/internal/shared"
)

// Store holds the current shopping list.
type Store struct {
	writeMu  sync.Mutex
	mu       sync.RWMutex
	items    []Item
	notifier shared.Notifier[[]Item]
}

// NewStore creates an empty shopping list.
func NewStore() *Store {
	return &Store{}
}

// Items returns a snapshot of the list.
func (s *Store) Items() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

// Subscribe registers fn to receive the list after every change.
func (s *Store) Subscribe(fn func([]Item)) (cancel func()) {
	return s.notifier.Subscribe(fn)
}

// SetItems replaces the list wholesale.
func (s *Store) SetItems(items []Item) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.publishLocked(slices.Clone(items))
}

// Toggle flips the completed flag of the item with the given id and reports
// whether it was found.
func (s *Store) Toggle(id uuid.UUID) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	items := s.Items()
	for i := range items {
		if items[i].ID == id {
			items[i].Completed = !items[i].Completed
			s.publishLocked(items)
			return true
		}
	}
	return false
}

// Restore loads persisted items without notifying listeners.
func (s *Store) Restore(items []Item) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.mu.Lock()
	s.items = slices.Clone(items)
	s.mu.Unlock()
}

func (s *Store) publishLocked(items []Item) {
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	s.notifier.Publish(slices.Clone(items))
}

// PantrySource supplies the pantry contents at rebuild time.
type PantrySource interface {
	Items() []pantry.Item
}

// Builder rebuilds the shopping list whenever the plan changes.
type Builder struct {
	pantry PantrySource
	store  *Store
}

var _ planner.ListRebuilder = (*Builder)(nil)

// NewBuilder creates a Builder publishing into store. pantry may be nil.
func NewBuilder(pantry PantrySource, store *Store) *Builder {
	return &Builder{pantry: pantry, store: store}
}

// Rebuild derives the list for plan against the current pantry and replaces
// the store's contents.
func (b *Builder) Rebuild(plan planner.MealPlan) {
	var onHand []pantry.Item
	if b.pantry != nil {
		onHand = b.pantry.Items()
	}
	b.store.SetItems(BuildList(plan, onHand))
}
