package preference

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meal-planner/internal/database"
)

func TestApplyFeedback(t *testing.T) {
	t.Run("PositiveTypesLike", func(t *testing.T) {
		for _, ft := range []FeedbackType{FeedbackThumbsUp, FeedbackLovedIt} {
			l := NewLedger()
			meal := uuid.New()
			l.ApplyFeedback(NewFeedbackEvent(meal, ft, nil))

			p := l.Profile()
			assert.True(t, p.Likes(meal), "type %s", ft)
			assert.False(t, p.Dislikes(meal), "type %s", ft)
		}
	})

	t.Run("NegativeTypesDislike", func(t *testing.T) {
		for _, ft := range []FeedbackType{FeedbackThumbsDown, FeedbackTooManyCarbs, FeedbackSkip} {
			l := NewLedger()
			meal := uuid.New()
			l.ApplyFeedback(NewFeedbackEvent(meal, ft, nil))

			p := l.Profile()
			assert.True(t, p.Dislikes(meal), "type %s", ft)
			assert.False(t, p.Likes(meal), "type %s", ft)
		}
	})

	t.Run("LaterEventWins", func(t *testing.T) {
		l := NewLedger()
		meal := uuid.New()

		l.ApplyFeedback(NewFeedbackEvent(meal, FeedbackLovedIt, nil))
		l.ApplyFeedback(NewFeedbackEvent(meal, FeedbackTooManyCarbs, nil))

		p := l.Profile()
		assert.True(t, p.Dislikes(meal))
		assert.False(t, p.Likes(meal))
	})

	t.Run("LeavesTasteScoresUntouched", func(t *testing.T) {
		l := NewLedger()
		l.SeedTasteScores([]string{"Thai", "Greek"})
		before := l.Profile().TasteScores

		meal := uuid.New()
		l.ApplyFeedback(NewFeedbackEvent(meal, FeedbackThumbsUp, nil))

		p := l.Profile()
		assert.True(t, p.Likes(meal))
		assert.Equal(t, before, p.TasteScores)
	})

	t.Run("UpdatesTimestamp", func(t *testing.T) {
		l := NewLedger()
		before := l.Profile().LastUpdated

		l.ApplyFeedback(NewFeedbackEvent(uuid.New(), FeedbackSkip, nil))

		assert.False(t, l.Profile().LastUpdated.Before(before))
	})
}

func TestSeedTasteScores(t *testing.T) {
	l := NewLedger()
	l.SeedTasteScores([]string{"Italian", "Thai"})
	l.SeedTasteScores([]string{"Greek"})

	assert.Equal(t, []TasteScore{{Cuisine: "Greek", Score: 0.6}}, l.Profile().TasteScores)
}

func TestLedgerNotifications(t *testing.T) {
	l := NewLedger()
	meal := uuid.New()

	var got []Profile
	cancel := l.Subscribe(func(p Profile) { got = append(got, p) })

	l.SeedTasteScores([]string{"Thai"})
	l.ApplyFeedback(NewFeedbackEvent(meal, FeedbackLovedIt, nil))

	require.Len(t, got, 2)
	assert.Empty(t, got[0].LikedMeals, "first notification predates the feedback")
	assert.True(t, got[1].Likes(meal))

	cancel()
	l.SeedTasteScores(nil)
	assert.Len(t, got, 2)
}

func TestProfileSnapshotIsolation(t *testing.T) {
	l := NewLedger()
	l.SeedTasteScores([]string{"Thai"})

	snap := l.Profile()
	snap.LikedMeals[uuid.New()] = struct{}{}
	snap.TasteScores[0].Score = 1

	p := l.Profile()
	assert.Empty(t, p.LikedMeals)
	assert.Equal(t, 0.6, p.TasteScores[0].Score)
}

func TestTasteSummary(t *testing.T) {
	p := Empty()
	p.TasteScores = []TasteScore{{"Thai", 0.55}, {"Italian", 0.6}, {"Greek", 0.6}}

	assert.Equal(t, "Italian 60%, Greek 60%, Thai 55%", TasteSummary(p))
	assert.Equal(t, "", TasteSummary(Empty()))
}

func TestParseFeedbackType(t *testing.T) {
	ft, err := ParseFeedbackType("tooManyCarbs")
	require.NoError(t, err)
	assert.Equal(t, FeedbackTooManyCarbs, ft)

	_, err = ParseFeedbackType("meh")
	assert.Error(t, err)
}

func TestRepository(t *testing.T) {
	db, err := database.NewDB(filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db.SQL)
	ctx := context.Background()

	missing, err := repo.Load(ctx, database.DefaultUserID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	l := NewLedger()
	liked, disliked := uuid.New(), uuid.New()
	l.SeedTasteScores([]string{"Thai", "Greek"})
	l.ApplyFeedback(NewFeedbackEvent(liked, FeedbackThumbsUp, nil))
	l.ApplyFeedback(NewFeedbackEvent(disliked, FeedbackSkip, nil))
	require.NoError(t, repo.Save(ctx, database.DefaultUserID, l.Profile()))

	loaded, err := repo.Load(ctx, database.DefaultUserID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.True(t, loaded.Likes(liked))
	assert.True(t, loaded.Dislikes(disliked))
	assert.Equal(t, l.Profile().TasteScores, loaded.TasteScores)
}
