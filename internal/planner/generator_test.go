package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meal-planner/internal/preference"
	"meal-planner/internal/profile"
	"meal-planner/internal/shared"
)

func newTestGenerator(t *testing.T, update func(*profile.UserProfile), cuisines ...string) *Generator {
	t.Helper()
	profiles := profile.NewStore()
	if update != nil {
		profiles.Update(update)
	}
	ledger := preference.NewLedger()
	if len(cuisines) > 0 {
		ledger.SeedTasteScores(cuisines)
	}
	return NewGenerator(profiles, ledger)
}

func TestRecommendedMacros(t *testing.T) {
	p := profile.Default()
	p.ActivityLevel = 1.5 // 3000 kcal baseline

	tests := []struct {
		mealType shared.MealType
		want     shared.MacroBreakdown
	}{
		{shared.MealBreakfast, shared.MacroBreakdown{Calories: 3000 * 0.25, Protein: 750 * 0.25, Carbs: 750 * 0.35, Fats: 3000.0 / 9 * 0.4}},
		{shared.MealLunch, shared.MacroBreakdown{Calories: 3000 * 0.3, Protein: 750 * 0.3, Carbs: 750 * 0.3, Fats: 3000.0 / 9 * 0.4}},
		{shared.MealDinner, shared.MacroBreakdown{Calories: 3000 * 0.3, Protein: 750 * 0.35, Carbs: 750 * 0.25, Fats: 3000.0 / 9 * 0.4}},
		{shared.MealSnack, shared.MacroBreakdown{Calories: 3000 * 0.15, Protein: 750 * 0.1, Carbs: 750 * 0.1, Fats: 3000.0 / 9 * 0.2}},
	}

	for _, tt := range tests {
		t.Run(string(tt.mealType), func(t *testing.T) {
			got := RecommendedMacros(tt.mealType, p)
			assert.InDelta(t, tt.want.Calories, got.Calories, 1e-9)
			assert.InDelta(t, tt.want.Protein, got.Protein, 1e-9)
			assert.InDelta(t, tt.want.Carbs, got.Carbs, 1e-9)
			assert.InDelta(t, tt.want.Fats, got.Fats, 1e-9)
		})
	}

	t.Run("Deterministic", func(t *testing.T) {
		assert.Equal(t, RecommendedMacros(shared.MealDinner, p), RecommendedMacros(shared.MealDinner, p))
	})
}

func TestGeneratePlan(t *testing.T) {
	fixed := time.Date(2026, time.March, 4, 15, 30, 0, 0, time.Local)
	g := newTestGenerator(t, nil)
	g.now = func() time.Time { return fixed }

	plan := g.GeneratePlan()

	t.Run("SevenDaysFromStartOfToday", func(t *testing.T) {
		require.Len(t, plan.Days, DaysPerPlan)
		assert.Equal(t, time.Date(2026, time.March, 4, 0, 0, 0, 0, time.Local), plan.WeekOf)
		for i, day := range plan.Days {
			assert.Equal(t, plan.WeekOf.AddDate(0, 0, i), day.Date)
		}
	})

	t.Run("OneMealPerTypeInCanonicalOrder", func(t *testing.T) {
		for _, day := range plan.Days {
			require.Len(t, day.Meals, len(shared.AllMealTypes()))
			for i, mealType := range shared.AllMealTypes() {
				assert.Equal(t, mealType, day.Meals[i].Type)
				assert.Equal(t, "1 serving", day.Meals[i].PortionSize)
				assert.Equal(t, day.Meals[i].Recipe.Macros, day.Meals[i].Macros)
			}
		}
	})

	t.Run("DaySummaryIsSumOfMeals", func(t *testing.T) {
		for _, day := range plan.Days {
			sum := shared.ZeroMacros
			for _, meal := range day.Meals {
				sum = sum.Add(meal.Macros)
			}
			assert.Equal(t, sum, day.MacroSummary)
		}
	})

	t.Run("FreshPlanEveryCall", func(t *testing.T) {
		other := g.GeneratePlan()
		assert.NotEqual(t, plan.ID, other.ID)
		assert.NotEqual(t, plan.Days[0].Meals[0].ID, other.Days[0].Meals[0].ID)
	})
}

func TestGeneratePlanCuisine(t *testing.T) {
	t.Run("FavoriteCuisineWithoutTasteScores", func(t *testing.T) {
		g := newTestGenerator(t, func(p *profile.UserProfile) {
			p.FirstName = "Test"
			p.FavoriteCuisines = []string{"Italian"}
		})

		plan := g.GeneratePlan()
		count := 0
		for _, day := range plan.Days {
			for _, meal := range day.Meals {
				assert.Equal(t, "Italian", meal.Recipe.Cuisine)
				count++
			}
		}
		assert.Equal(t, 28, count)
	})

	t.Run("TasteScoresTakePrecedence", func(t *testing.T) {
		g := newTestGenerator(t, func(p *profile.UserProfile) {
			p.FavoriteCuisines = []string{"Italian"}
		}, "Thai", "Greek")

		plan := g.GeneratePlan()
		assert.Equal(t, "Thai", plan.Days[3].Meals[2].Recipe.Cuisine)
		assert.Equal(t, "Thai Dinner", plan.Days[3].Meals[2].Recipe.Title)
	})
}

func TestSameDay(t *testing.T) {
	loc := time.FixedZone("test", 2*60*60)
	now := time.Date(2026, time.March, 4, 0, 30, 0, 0, loc)

	assert.True(t, sameDay(time.Date(2026, time.March, 4, 23, 59, 0, 0, loc), now))
	assert.False(t, sameDay(time.Date(2026, time.March, 3, 23, 59, 0, 0, loc), now))
	// 23:00 UTC on the 3rd is 01:00 on the 4th in loc.
	assert.True(t, sameDay(time.Date(2026, time.March, 3, 23, 0, 0, 0, time.UTC), now))
}
