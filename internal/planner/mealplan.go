package planner

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"meal-planner/internal/recipe"
	"meal-planner/internal/shared"
)

// DaysPerPlan is the number of days in every generated plan.
const DaysPerPlan = 7

// Meal is one slot of a day. Macros start as a copy of the recipe's and are
// not recomputed when an ingredient is substituted.
type Meal struct {
	ID          uuid.UUID             `json:"id"`
	Type        shared.MealType       `json:"type"`
	Recipe      recipe.Recipe         `json:"recipe"`
	PortionSize string                `json:"portion_size"`
	Macros      shared.MacroBreakdown `json:"macros"`
}

// MealDay holds one meal per meal type plus their summed macros.
type MealDay struct {
	ID           uuid.UUID             `json:"id"`
	Date         time.Time             `json:"date"`
	Meals        []Meal                `json:"meals"`
	MacroSummary shared.MacroBreakdown `json:"macro_summary"`
}

// MealPlan represents a full weekly meal plan.
type MealPlan struct {
	ID        uuid.UUID `json:"id"`
	WeekOf    time.Time `json:"week_of"`
	Days      []MealDay `json:"days"`
	CreatedAt time.Time `json:"created_at"`
}

// Clone returns a deep copy of p.
func (p MealPlan) Clone() MealPlan {
	p.Days = slices.Clone(p.Days)
	for i := range p.Days {
		p.Days[i].Meals = slices.Clone(p.Days[i].Meals)
		for j := range p.Days[i].Meals {
			p.Days[i].Meals[j].Recipe = p.Days[i].Meals[j].Recipe.Clone()
		}
	}
	return p
}

// FindMeal returns the meal with the given id.
func (p MealPlan) FindMeal(mealID uuid.UUID) (Meal, bool) {
	for _, day := range p.Days {
		for _, meal := range day.Meals {
			if meal.ID == mealID {
				return meal, true
			}
		}
	}
	return Meal{}, false
}

// Ingredients returns every ingredient of every meal in plan order.
func (p MealPlan) Ingredients() []recipe.Ingredient {
	var out []recipe.Ingredient
	for _, day := range p.Days {
		for _, meal := range day.Meals {
			out = append(out, meal.Recipe.Ingredients...)
		}
	}
	return out
}

// Recipes returns the recipe of every meal in plan order.
func (p MealPlan) Recipes() []recipe.Recipe {
	var out []recipe.Recipe
	for _, day := range p.Days {
		for _, meal := range day.Meals {
			out = append(out, meal.Recipe)
		}
	}
	return out
}
