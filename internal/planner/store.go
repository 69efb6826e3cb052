package planner

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"meal-planner/internal/recipe"
	"meal-planner/internal/shared"
)

// PlanGenerator produces a fresh plan on every call.
type PlanGenerator interface {
	GeneratePlan() MealPlan
}

// ListRebuilder derives and publishes the shopping list for a plan.
type ListRebuilder interface {
	Rebuild(plan MealPlan)
}

// RefreshReason says why a refresh regenerated the plan.
type RefreshReason string

const (
	// RefreshSkipped means the cached plan was kept.
	RefreshSkipped RefreshReason = ""
	RefreshInitial RefreshReason = "initial"
	RefreshStale   RefreshReason = "stale"
	RefreshForced  RefreshReason = "forced"
)

// Store caches the current plan and decides when it must be regenerated.
//
// refreshMu makes the store single-writer: at most one regeneration or
// substitution runs at a time, and the shopping list rebuild that follows a
// regeneration happens before the lock is released. Readers go through mu
// and always see a complete plan.
type Store struct {
	generator PlanGenerator
	lists     ListRebuilder
	now       func() time.Time

	refreshMu sync.Mutex

	mu       sync.RWMutex
	current  *MealPlan
	revision uint64

	notifier shared.Notifier[MealPlan]
	pending  sync.WaitGroup
}

// NewStore creates an empty plan cache. lists may be nil.
func NewStore(generator PlanGenerator, lists ListRebuilder) *Store {
	return &Store{generator: generator, lists: lists, now: time.Now}
}

// Current returns a copy of the cached plan, or nil before the first refresh.
func (s *Store) Current() *MealPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	plan := s.current.Clone()
	return &plan
}

// Subscribe registers fn to receive every published plan, in publish order.
func (s *Store) Subscribe(fn func(MealPlan)) (cancel func()) {
	return s.notifier.Subscribe(fn)
}

// Restore installs a previously persisted plan without notifying listeners.
// The staleness check still applies on the next refresh.
func (s *Store) Restore(plan MealPlan) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := plan.Clone()
	s.current = &cp
	s.revision++
}

// RefreshIfNeeded regenerates the plan when forced, when no plan is cached,
// or when the cached plan did not start today. It reports whether a new plan
// was published.
func (s *Store) RefreshIfNeeded(force bool) bool {
	return s.Refresh(force) != RefreshSkipped
}

// Refresh is RefreshIfNeeded reporting why the plan was regenerated, or
// RefreshSkipped when it was kept. The reason is decided under the refresh
// lock, so a caller that waited behind another refresh re-evaluates
// staleness and concurrent unforced triggers do not regenerate twice.
func (s *Store) Refresh(force bool) RefreshReason {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	reason := s.refreshReason(force)
	if reason == RefreshSkipped {
		return reason
	}

	plan := s.generator.GeneratePlan()
	s.publish(plan)
	if s.lists != nil {
		s.lists.Rebuild(plan.Clone())
	}
	return reason
}

// ApplySubstitution replaces one ingredient of one meal's recipe. The meal's
// macros are left as they were. The shopping list is rebuilt asynchronously
// from the substituted plan unless a newer plan replaces it first. Unknown
// meal or ingredient ids leave the plan untouched and return false.
func (s *Store) ApplySubstitution(mealID, ingredientID uuid.UUID, replacement recipe.Ingredient) bool {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	s.mu.RLock()
	cur := s.current
	s.mu.RUnlock()
	if cur == nil {
		return false
	}

	plan := cur.Clone()
	if !substitute(&plan, mealID, ingredientID, replacement) {
		return false
	}
	rev := s.publish(plan)

	if s.lists == nil {
		return true
	}
	snapshot := plan.Clone()
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		s.refreshMu.Lock()
		defer s.refreshMu.Unlock()
		if s.currentRevision() != rev {
			return
		}
		s.lists.Rebuild(snapshot)
	}()
	return true
}

// RebuildList re-derives the shopping list from the cached plan, e.g. after
// the pantry changed. It reports whether there was a plan to rebuild from.
func (s *Store) RebuildList() bool {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	s.mu.RLock()
	cur := s.current
	s.mu.RUnlock()
	if cur == nil || s.lists == nil {
		return false
	}
	s.lists.Rebuild(cur.Clone())
	return true
}

// Wait blocks until every asynchronous list rebuild has finished.
func (s *Store) Wait() {
	s.pending.Wait()
}

// refreshReason must be called with refreshMu held.
func (s *Store) refreshReason(force bool) RefreshReason {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch {
	case force:
		return RefreshForced
	case s.current == nil:
		return RefreshInitial
	case !sameDay(s.current.WeekOf, s.now()):
		return RefreshStale
	}
	return RefreshSkipped
}

func (s *Store) currentRevision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// publish must be called with refreshMu held.
func (s *Store) publish(plan MealPlan) uint64 {
	s.mu.Lock()
	cp := plan.Clone()
	s.current = &cp
	s.revision++
	rev := s.revision
	s.mu.Unlock()

	s.notifier.Publish(plan.Clone())
	return rev
}

func substitute(plan *MealPlan, mealID, ingredientID uuid.UUID, replacement recipe.Ingredient) bool {
	for d := range plan.Days {
		for m := range plan.Days[d].Meals {
			meal := &plan.Days[d].Meals[m]
			if meal.ID == mealID {
				return meal.Recipe.ReplaceIngredient(ingredientID, replacement)
			}
		}
	}
	return false
}
