package planner

import (
	"meal-planner/internal/profile"
	"meal-planner/internal/shared"
)

// BaseDailyCalories is scaled by the profile's activity level.
const BaseDailyCalories = 2000.0

// macroSplit is the share of the daily budget a meal takes for calories,
// protein, carbs and fats respectively.
type macroSplit struct {
	calories, protein, carbs, fats float64
}

var macroSplits = map[shared.MealType]macroSplit{
	shared.MealBreakfast: {0.25, 0.25, 0.35, 0.4},
	shared.MealLunch:     {0.3, 0.3, 0.3, 0.4},
	shared.MealDinner:    {0.3, 0.35, 0.25, 0.4},
	shared.MealSnack:     {0.15, 0.1, 0.1, 0.2},
}

// RecommendedMacros returns the macro target for one meal of the given type.
// Protein and carbs carry 4 kcal per gram, fats 9.
func RecommendedMacros(mealType shared.MealType, p profile.UserProfile) shared.MacroBreakdown {
	base := BaseDailyCalories * p.ActivityLevel
	split := macroSplits[mealType]

	return shared.MacroBreakdown{
		Calories: base * split.calories,
		Protein:  base / 4 * split.protein,
		Carbs:    base / 4 * split.carbs,
		Fats:     base / 9 * split.fats,
	}
}
