package health

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meal-planner/internal/database"
	"meal-planner/internal/logger"
	"meal-planner/internal/shared"
)

type failingProvider struct{}

func (failingProvider) DailySummary(context.Context) (shared.MacroBreakdown, error) {
	return shared.MacroBreakdown{Calories: 999}, errors.New("permission denied")
}

func TestTodaysSummary(t *testing.T) {
	t.Run("Static", func(t *testing.T) {
		got := NewInsights(StaticProvider{}, logger.NewNop()).TodaysSummary(context.Background())
		assert.Equal(t, shared.MacroBreakdown{Calories: 1800, Protein: 110, Carbs: 200, Fats: 60}, got)
	})

	t.Run("ProviderErrorIsZero", func(t *testing.T) {
		got := NewInsights(failingProvider{}, logger.NewNop()).TodaysSummary(context.Background())
		assert.Equal(t, shared.ZeroMacros, got)
	})

	t.Run("CancelledContextIsZero", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		got := NewInsights(StaticProvider{}, logger.NewNop()).TodaysSummary(ctx)
		assert.Equal(t, shared.ZeroMacros, got)
	})
}

func TestLog(t *testing.T) {
	today := time.Date(2026, time.May, 10, 12, 0, 0, 0, time.UTC)
	log := NewLog()

	first := log.Append(LogEntry{MealID: uuid.New(), ConsumedAt: today.Add(-2 * time.Hour), Macros: shared.MacroBreakdown{Calories: 500, Protein: 30}})
	log.Append(LogEntry{MealID: uuid.New(), ConsumedAt: today.Add(3 * time.Hour), Macros: shared.MacroBreakdown{Calories: 700, Carbs: 80}})
	log.Append(LogEntry{MealID: uuid.New(), ConsumedAt: today.AddDate(0, 0, -1), Macros: shared.MacroBreakdown{Calories: 9000}})

	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.Len(t, log.Entries(), 3)
	assert.Equal(t, shared.MacroBreakdown{Calories: 1200, Protein: 30, Carbs: 80}, log.Consumed(today))

	p := LogProvider{Log: log, Now: func() time.Time { return today }}
	got := NewInsights(p, logger.NewNop()).TodaysSummary(context.Background())
	assert.Equal(t, 1200.0, got.Calories)
}

func TestLogNotifications(t *testing.T) {
	log := NewLog()
	var got []LogEntry
	cancel := log.Subscribe(func(e LogEntry) { got = append(got, e) })

	first := log.Append(LogEntry{MealID: uuid.New()})
	second := log.Append(LogEntry{MealID: uuid.New()})
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Equal(t, second.ID, got[1].ID)

	t.Run("RestoreIsSilent", func(t *testing.T) {
		log.Restore([]LogEntry{first})
		assert.Len(t, got, 2)
		assert.Equal(t, []LogEntry{first}, log.Entries())
	})

	cancel()
	log.Append(LogEntry{MealID: uuid.New()})
	assert.Len(t, got, 2)
}

func TestRepository(t *testing.T) {
	db, err := database.NewDB(filepath.Join(t.TempDir(), "health.db"))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db.SQL)
	ctx := context.Background()

	entries, err := repo.List(ctx, database.DefaultUserID)
	require.NoError(t, err)
	assert.Empty(t, entries)

	energy := 0.8
	mood := "great"
	at := time.Date(2026, time.May, 10, 8, 0, 0, 0, time.UTC)
	later := LogEntry{ID: uuid.New(), MealID: uuid.New(), ConsumedAt: at.Add(time.Hour), Macros: shared.MacroBreakdown{Calories: 600}}
	earlier := LogEntry{ID: uuid.New(), MealID: uuid.New(), ConsumedAt: at, Macros: shared.MacroBreakdown{Calories: 400}, EnergyLevel: &energy, MoodNote: &mood}
	require.NoError(t, repo.Append(ctx, database.DefaultUserID, later))
	require.NoError(t, repo.Append(ctx, database.DefaultUserID, earlier))
	require.NoError(t, repo.Append(ctx, "someone-else", LogEntry{ID: uuid.New(), ConsumedAt: at}))

	entries, err = repo.List(ctx, database.DefaultUserID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, earlier.ID, entries[0].ID)
	assert.Equal(t, later.ID, entries[1].ID)
	require.NotNil(t, entries[0].MoodNote)
	assert.Equal(t, "great", *entries[0].MoodNote)
	assert.Equal(t, 0.8, *entries[0].EnergyLevel)
	assert.True(t, at.Equal(entries[0].ConsumedAt))
}
