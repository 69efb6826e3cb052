package feedback

import (
	"sync"

	"meal-planner/internal/preference"
)

// PreferenceApplier folds feedback into the taste profile.
type PreferenceApplier interface {
	ApplyFeedback(event preference.FeedbackEvent)
}

// Refresher regenerates the plan.
type Refresher interface {
	RefreshIfNeeded(force bool) bool
}

// Coordinator turns submitted feedback into a preference update followed by
// a forced plan regeneration.
type Coordinator struct {
	history   *History
	ledger    PreferenceApplier
	refresher Refresher
	onRefresh func(regenerated bool)

	pending sync.WaitGroup
}

// NewCoordinator creates a Coordinator. history and refresher may be nil.
func NewCoordinator(history *History, ledger PreferenceApplier, refresher Refresher) *Coordinator {
	return &Coordinator{history: history, ledger: ledger, refresher: refresher}
}

// OnRefresh registers fn to run after each dispatched regeneration finishes.
// It must be called before the first Submit.
func (c *Coordinator) OnRefresh(fn func(regenerated bool)) {
	c.onRefresh = fn
}

// Submit records event and commits it to the preference ledger before
// returning. The plan regeneration it triggers runs in the background; the
// ledger update is kept even when no refresher is configured.
func (c *Coordinator) Submit(event preference.FeedbackEvent) {
	if c.history != nil {
		c.history.Record(event)
	}
	c.ledger.ApplyFeedback(event)

	if c.refresher == nil {
		return
	}
	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		regenerated := c.refresher.RefreshIfNeeded(true)
		if c.onRefresh != nil {
			c.onRefresh(regenerated)
		}
	}()
}

// Wait blocks until every dispatched regeneration has finished.
func (c *Coordinator) Wait() {
	c.pending.Wait()
}
