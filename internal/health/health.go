package health

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"meal-planner/internal/logger"
	"meal-planner/internal/shared"
)

// Provider reports what the user has eaten today, e.g. from a health data
// platform.
type Provider interface {
	DailySummary(ctx context.Context) (shared.MacroBreakdown, error)
}

// StaticProvider returns a fixed sample summary.
type StaticProvider struct{}

// DailySummary implements Provider.
func (StaticProvider) DailySummary(ctx context.Context) (shared.MacroBreakdown, error) {
	if err := ctx.Err(); err != nil {
		return shared.ZeroMacros, err
	}
	return shared.MacroBreakdown{Calories: 1800, Protein: 110, Carbs: 200, Fats: 60}, nil
}

// Insights reads today's intake, treating an unavailable provider as zero.
type Insights struct {
	provider Provider
	log      *logger.Logger
}

// NewInsights creates Insights over provider.
func NewInsights(provider Provider, log *logger.Logger) *Insights {
	return &Insights{provider: provider, log: log}
}

// TodaysSummary returns today's macros, or ZeroMacros when the provider fails.
func (i *Insights) TodaysSummary(ctx context.Context) shared.MacroBreakdown {
	summary, err := i.provider.DailySummary(ctx)
	if err != nil {
		i.log.Warn("nutrition summary unavailable", "error", err)
		return shared.ZeroMacros
	}
	return summary
}

// LogEntry is one consumed meal.
type LogEntry struct {
	ID          uuid.UUID             `json:"id"`
	MealID      uuid.UUID             `json:"meal_id"`
	ConsumedAt  time.Time             `json:"consumed_at"`
	Macros      shared.MacroBreakdown `json:"macros"`
	EnergyLevel *float64              `json:"energy_level,omitempty"`
	MoodNote    *string               `json:"mood_note,omitempty"`
}

// Log keeps the consumed meals in insertion order.
type Log struct {
	writeMu  sync.Mutex
	mu       sync.RWMutex
	entries  []LogEntry
	notifier shared.Notifier[LogEntry]
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{}
}

// Append adds entry, assigning an id when it has none.
func (l *Log) Append(entry LogEntry) LogEntry {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()
	l.notifier.Publish(entry)
	return entry
}

// Subscribe registers fn to receive every appended entry.
func (l *Log) Subscribe(fn func(LogEntry)) (cancel func()) {
	return l.notifier.Subscribe(fn)
}

// Restore replaces the log with persisted entries without notifying listeners.
func (l *Log) Restore(entries []LogEntry) {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()
	l.mu.Lock()
	l.entries = slices.Clone(entries)
	l.mu.Unlock()
}

// Entries returns every entry, oldest first.
func (l *Log) Entries() []LogEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.entries)
}

// Consumed sums the macros of the entries logged on the same calendar day as day.
func (l *Log) Consumed(day time.Time) shared.MacroBreakdown {
	y, m, d := day.Date()
	total := shared.ZeroMacros
	for _, e := range l.Entries() {
		ey, em, ed := e.ConsumedAt.In(day.Location()).Date()
		if ey == y && em == m && ed == d {
			total = total.Add(e.Macros)
		}
	}
	return total
}

// LogProvider is a Provider backed by a Log.
type LogProvider struct {
	Log *Log
	Now func() time.Time
}

// DailySummary implements Provider.
func (p LogProvider) DailySummary(ctx context.Context) (shared.MacroBreakdown, error) {
	if err := ctx.Err(); err != nil {
		return shared.ZeroMacros, err
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	return p.Log.Consumed(now()), nil
}
