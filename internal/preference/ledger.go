package preference

import (
	"sync"
	"time"

	"meal-planner/internal/shared"
)

// Ledger owns the taste profile. All mutations go through a single writer and
// replace the profile wholesale, so readers never observe a partial update.
// Listeners run after each commit in mutation order; they must not mutate the
// ledger themselves.
type Ledger struct {
	writeMu  sync.Mutex
	mu       sync.RWMutex
	profile  Profile
	notifier shared.Notifier[Profile]
	now      func() time.Time
}

// NewLedger creates a Ledger holding an empty profile.
func NewLedger() *Ledger {
	return &Ledger{profile: Empty(), now: time.Now}
}

// Profile returns a snapshot of the current taste profile.
func (l *Ledger) Profile() Profile {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.profile.Clone()
}

// Subscribe registers fn to receive every committed profile.
func (l *Ledger) Subscribe(fn func(Profile)) (cancel func()) {
	return l.notifier.Subscribe(fn)
}

// ApplyFeedback moves the event's meal into the liked or disliked set.
func (l *Ledger) ApplyFeedback(event FeedbackEvent) {
	l.commit(func(p *Profile) {
		if event.Type.IsPositive() {
			p.LikedMeals[event.MealID] = struct{}{}
			delete(p.DislikedMeals, event.MealID)
			return
		}
		p.DislikedMeals[event.MealID] = struct{}{}
		delete(p.LikedMeals, event.MealID)
	})
}

// SeedTasteScores replaces all taste scores with one entry per cuisine.
func (l *Ledger) SeedTasteScores(cuisines []string) {
	l.commit(func(p *Profile) {
		scores := make([]TasteScore, 0, len(cuisines))
		for _, c := range cuisines {
			scores = append(scores, TasteScore{Cuisine: c, Score: InitialTasteScore})
		}
		p.TasteScores = scores
	})
}

// Restore loads persisted state without notifying listeners.
func (l *Ledger) Restore(p Profile) {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	l.mu.Lock()
	l.profile = p.Clone()
	l.mu.Unlock()
}

func (l *Ledger) commit(mutate func(*Profile)) {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	next := l.Profile()
	mutate(&next)
	next.LastUpdated = l.now()

	l.mu.Lock()
	l.profile = next
	l.mu.Unlock()

	l.notifier.Publish(next.Clone())
}
