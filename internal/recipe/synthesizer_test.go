package recipe

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meal-planner/internal/preference"
	"meal-planner/internal/profile"
	"meal-planner/internal/shared"
)

func TestSelectCuisine(t *testing.T) {
	tests := []struct {
		name      string
		scores    []preference.TasteScore
		favorites []string
		want      string
	}{
		{
			name:   "HighestScoreWins",
			scores: []preference.TasteScore{{Cuisine: "Thai", Score: 0.4}, {Cuisine: "Greek", Score: 0.8}},
			want:   "Greek",
		},
		{
			name:   "TieKeepsFirst",
			scores: []preference.TasteScore{{Cuisine: "Thai", Score: 0.6}, {Cuisine: "Greek", Score: 0.6}},
			want:   "Thai",
		},
		{
			name:      "ScoresBeatFavorites",
			scores:    []preference.TasteScore{{Cuisine: "Thai", Score: 0.1}},
			favorites: []string{"Italian"},
			want:      "Thai",
		},
		{
			name:      "FallsBackToFirstFavorite",
			favorites: []string{"Italian", "Mexican"},
			want:      "Italian",
		},
		{
			name: "FallsBackToDefault",
			want: DefaultCuisine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectCuisine(tt.scores, tt.favorites))
		})
	}
}

func TestSynthesize(t *testing.T) {
	user := profile.Default()
	user.FavoriteCuisines = []string{"Italian"}
	macros := shared.MacroBreakdown{Calories: 600, Protein: 30, Carbs: 70, Fats: 20}

	r := Synthesize(shared.MealLunch, preference.Empty(), user, macros)

	assert.Equal(t, "Italian Lunch", r.Title)
	assert.Equal(t, "A balanced lunch tailored to your goals.", r.Summary)
	assert.Equal(t, "Italian", r.Cuisine)
	assert.Equal(t, 15, r.PrepTimeMinutes)
	assert.Equal(t, 20, r.CookTimeMinutes)
	assert.Equal(t, "Easy", r.Difficulty)
	assert.Equal(t, []string{"Italian", "lunch"}, r.Tags)
	assert.Len(t, r.Steps, 3)
	assert.Equal(t, macros, r.Macros)
	assert.GreaterOrEqual(t, r.SatisfactionScore, 0.5)
	assert.LessOrEqual(t, r.SatisfactionScore, 0.9)

	require.Len(t, r.Ingredients, 3)
	assert.Equal(t, "Italian greens", r.Ingredients[0].Name)
	assert.Equal(t, 2.0, r.Ingredients[0].Quantity)
	assert.Equal(t, "cups", r.Ingredients[0].Unit)
	assert.Equal(t, "Produce", *r.Ingredients[0].Aisle)
	assert.Equal(t, "Italian protein", r.Ingredients[1].Name)
	assert.Equal(t, "Butcher", *r.Ingredients[1].Aisle)
	assert.Equal(t, "Italian carbs", r.Ingredients[2].Name)
	assert.Equal(t, "Grains", *r.Ingredients[2].Aisle)

	t.Run("FreshIngredientIDs", func(t *testing.T) {
		other := Synthesize(shared.MealLunch, preference.Empty(), user, macros)
		assert.NotEqual(t, r.Ingredients[0].ID, other.Ingredients[0].ID)
		assert.Equal(t, r.Ingredients[0].Name, other.Ingredients[0].Name)
	})
}

func TestReplaceIngredient(t *testing.T) {
	r := Synthesize(shared.MealDinner, preference.Empty(), profile.Default(), shared.ZeroMacros)
	replacement := NewIngredient("Tofu", 200, "g", nil)

	t.Run("UnknownIDIsNoop", func(t *testing.T) {
		before := r.Clone()
		assert.False(t, r.ReplaceIngredient(uuid.New(), replacement))
		assert.Equal(t, before, r)
	})

	t.Run("ReplacesByID", func(t *testing.T) {
		target := r.Ingredients[1].ID
		assert.True(t, r.ReplaceIngredient(target, replacement))
		assert.Equal(t, "Tofu", r.Ingredients[1].Name)
	})
}

func TestCatalog(t *testing.T) {
	c := NewCatalog()
	r := Synthesize(shared.MealSnack, preference.Empty(), profile.Default(), shared.ZeroMacros)

	_, ok := c.Get(r.ID)
	assert.False(t, ok)

	c.Upsert(r)
	got, ok := c.Get(r.ID)
	require.True(t, ok)
	assert.Equal(t, r.Title, got.Title)
	assert.Equal(t, 1, c.Len())
}
