package feedback

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meal-planner/internal/database"
	"meal-planner/internal/preference"
)

type stubRefresher struct {
	mu     sync.Mutex
	forced []bool
	block  chan struct{}
}

func (s *stubRefresher) RefreshIfNeeded(force bool) bool {
	if s.block != nil {
		<-s.block
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.forced = append(s.forced, force)
	return true
}

func (s *stubRefresher) calls() []bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]bool(nil), s.forced...)
}

func TestSubmit(t *testing.T) {
	t.Run("LedgerUpdatedBeforeReturn", func(t *testing.T) {
		ledger := preference.NewLedger()
		refresher := &stubRefresher{block: make(chan struct{})}
		c := NewCoordinator(NewHistory(), ledger, refresher)
		meal := uuid.New()

		c.Submit(preference.NewFeedbackEvent(meal, preference.FeedbackLovedIt, nil))

		// The refresh is still blocked, the preference update is not.
		assert.True(t, ledger.Profile().Likes(meal))
		assert.Empty(t, refresher.calls())

		close(refresher.block)
		c.Wait()
		assert.Equal(t, []bool{true}, refresher.calls())
	})

	t.Run("NegativeMovesMealToDisliked", func(t *testing.T) {
		ledger := preference.NewLedger()
		c := NewCoordinator(nil, ledger, nil)
		meal := uuid.New()

		c.Submit(preference.NewFeedbackEvent(meal, preference.FeedbackThumbsUp, nil))
		c.Submit(preference.NewFeedbackEvent(meal, preference.FeedbackTooManyCarbs, nil))

		p := ledger.Profile()
		assert.False(t, p.Likes(meal))
		assert.True(t, p.Dislikes(meal))
	})

	t.Run("NilRefresherStillCommits", func(t *testing.T) {
		ledger := preference.NewLedger()
		c := NewCoordinator(nil, ledger, nil)
		meal := uuid.New()

		c.Submit(preference.NewFeedbackEvent(meal, preference.FeedbackSkip, nil))
		c.Wait()

		assert.True(t, ledger.Profile().Dislikes(meal))
	})

	t.Run("RecordsHistoryAndReportsRefresh", func(t *testing.T) {
		history := NewHistory()
		var seen []preference.FeedbackType
		history.Subscribe(func(e preference.FeedbackEvent) { seen = append(seen, e.Type) })

		c := NewCoordinator(history, preference.NewLedger(), &stubRefresher{})
		var refreshed sync.WaitGroup
		refreshed.Add(2)
		c.OnRefresh(func(regenerated bool) {
			assert.True(t, regenerated)
			refreshed.Done()
		})

		c.Submit(preference.NewFeedbackEvent(uuid.New(), preference.FeedbackThumbsUp, nil))
		c.Submit(preference.NewFeedbackEvent(uuid.New(), preference.FeedbackThumbsDown, nil))
		c.Wait()
		refreshed.Wait()

		assert.Equal(t, []preference.FeedbackType{preference.FeedbackThumbsUp, preference.FeedbackThumbsDown}, seen)
		assert.Len(t, history.Events(), 2)
	})
}

func TestRepository(t *testing.T) {
	db, err := database.NewDB(filepath.Join(t.TempDir(), "feedback.db"))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db.SQL)
	ctx := context.Background()

	comment := "too salty"
	first := preference.NewFeedbackEvent(uuid.New(), preference.FeedbackThumbsDown, &comment)
	second := preference.NewFeedbackEvent(uuid.New(), preference.FeedbackLovedIt, nil)
	second.CreatedAt = first.CreatedAt.Add(time.Second)

	require.NoError(t, repo.Append(ctx, database.DefaultUserID, first))
	require.NoError(t, repo.Append(ctx, database.DefaultUserID, second))

	events, err := repo.List(ctx, database.DefaultUserID)
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, first.ID, events[0].ID)
	assert.Equal(t, first.MealID, events[0].MealID)
	assert.Equal(t, preference.FeedbackThumbsDown, events[0].Type)
	require.NotNil(t, events[0].Comment)
	assert.Equal(t, "too salty", *events[0].Comment)

	assert.Equal(t, second.ID, events[1].ID)
	assert.Nil(t, events[1].Comment)

	others, err := repo.List(ctx, "someone_else")
	require.NoError(t, err)
	assert.Empty(t, others)
}
