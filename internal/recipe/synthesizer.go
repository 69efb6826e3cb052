package recipe

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"meal-planner/internal/preference"
	"meal-planner/internal/profile"
	"meal-planner/internal/shared"
)

// DefaultCuisine is used when neither taste scores nor favourites exist.
const DefaultCuisine = "Fusion"

const (
	minSatisfaction = 0.5
	maxSatisfaction = 0.9
)

// SelectCuisine picks the best-scored cuisine; ties keep the first entry.
// Without scores it falls back to the first favourite, then DefaultCuisine.
func SelectCuisine(scores []preference.TasteScore, favorites []string) string {
	if sorted := preference.SortedTasteScores(scores); len(sorted) > 0 {
		return sorted[0].Cuisine
	}
	if len(favorites) > 0 {
		return favorites[0]
	}
	return DefaultCuisine
}

// Synthesize builds a recipe for one meal slot. Everything except the
// satisfaction score is deterministic in its inputs (ids aside).
func Synthesize(mealType shared.MealType, taste preference.Profile, user profile.UserProfile, macros shared.MacroBreakdown) Recipe {
	cuisine := SelectCuisine(taste.TasteScores, user.FavoriteCuisines)

	return Recipe{
		ID:              uuid.New(),
		Title:           fmt.Sprintf("%s %s", cuisine, mealType.Title()),
		Summary:         fmt.Sprintf("A balanced %s tailored to your goals.", mealType),
		PrepTimeMinutes: 15,
		CookTimeMinutes: 20,
		Difficulty:      "Easy",
		Ingredients:     sampleIngredients(cuisine),
		Steps: []string{
			"Gather ingredients and prep.",
			"Cook according to instructions.",
			"Plate and enjoy.",
		},
		Tags:              []string{cuisine, string(mealType)},
		Macros:            macros,
		SatisfactionScore: minSatisfaction + rand.Float64()*(maxSatisfaction-minSatisfaction),
		Cuisine:           cuisine,
	}
}

func sampleIngredients(cuisine string) []Ingredient {
	return []Ingredient{
		NewIngredient(cuisine+" greens", 2, "cups", aisle("Produce")),
		NewIngredient(cuisine+" protein", 1, "portion", aisle("Butcher")),
		NewIngredient(cuisine+" carbs", 1, "cup", aisle("Grains")),
	}
}

func aisle(name string) *string {
	return &name
}
