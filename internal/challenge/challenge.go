package challenge

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"meal-planner/internal/shared"
)

// Challenge is a goal the user works towards.
type Challenge struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Target      int       `json:"target"`
	Progress    int       `json:"progress"`
	RewardBadge string    `json:"reward_badge"`
}

// Completed reports whether the target has been reached.
func (c Challenge) Completed() bool {
	return c.Progress >= c.Target
}

// Store holds the active challenges.
type Store struct {
	writeMu    sync.Mutex
	mu         sync.RWMutex
	challenges []Challenge
	notifier   shared.Notifier[[]Challenge]
}

// NewStore creates a store seeded with the default challenges.
func NewStore() *Store {
	return &Store{challenges: []Challenge{
		{
			ID:          uuid.New(),
			Title:       "Cook 3 new meals",
			Description: "Try three recipes you have never cooked.",
			Target:      3,
			RewardBadge: "Chef Explorer",
		},
		{
			ID:          uuid.New(),
			Title:       "Hydration Hero",
			Description: "Log your hydration for 5 consecutive days.",
			Target:      5,
			RewardBadge: "Hydration Hero",
		},
	}}
}

// Challenges returns a snapshot of every challenge.
func (s *Store) Challenges() []Challenge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.challenges)
}

// Subscribe registers fn to receive every challenge after each update.
func (s *Store) Subscribe(fn func([]Challenge)) (cancel func()) {
	return s.notifier.Subscribe(fn)
}

// UpdateProgress adds delta to the challenge's progress, clamped to
// [0, Target]. Unknown ids are ignored and notify nobody.
func (s *Store) UpdateProgress(id uuid.UUID, delta int) (Challenge, bool) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := s.Challenges()
	idx := slices.IndexFunc(next, func(c Challenge) bool { return c.ID == id })
	if idx < 0 {
		return Challenge{}, false
	}
	c := &next[idx]
	c.Progress = min(max(c.Progress+delta, 0), c.Target)
	updated := *c

	s.mu.Lock()
	s.challenges = next
	s.mu.Unlock()
	s.notifier.Publish(slices.Clone(next))
	return updated, true
}

// Restore replaces the seeded challenges with persisted ones without
// notifying listeners. An empty list keeps the seed.
func (s *Store) Restore(challenges []Challenge) {
	if len(challenges) == 0 {
		return
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.mu.Lock()
	s.challenges = slices.Clone(challenges)
	s.mu.Unlock()
}
