package feedback

import (
	"slices"
	"sync"

	"meal-planner/internal/preference"
	"meal-planner/internal/shared"
)

// History is the append-only log of submitted feedback.
type History struct {
	writeMu  sync.Mutex
	mu       sync.RWMutex
	events   []preference.FeedbackEvent
	notifier shared.Notifier[preference.FeedbackEvent]
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{}
}

// Record appends event and notifies listeners with it.
func (h *History) Record(event preference.FeedbackEvent) {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	h.mu.Lock()
	h.events = append(h.events, event)
	h.mu.Unlock()

	h.notifier.Publish(event)
}

// Events returns every recorded event, oldest first.
func (h *History) Events() []preference.FeedbackEvent {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.events)
}

// Subscribe registers fn to receive each newly recorded event.
func (h *History) Subscribe(fn func(preference.FeedbackEvent)) (cancel func()) {
	return h.notifier.Subscribe(fn)
}

// Restore loads persisted events without notifying listeners.
func (h *History) Restore(events []preference.FeedbackEvent) {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	h.mu.Lock()
	h.events = slices.Clone(events)
	h.mu.Unlock()
}
