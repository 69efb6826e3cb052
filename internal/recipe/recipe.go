package recipe

import (
	"slices"

	"github.com/google/uuid"

	"meal-planner/internal/shared"
)

// Ingredient is a single line of a recipe. Two ingredients with the same name
// may still carry different ids.
type Ingredient struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Quantity float64   `json:"quantity"`
	Unit     string    `json:"unit"`
	Aisle    *string   `json:"aisle,omitempty"`
}

// NewIngredient creates an ingredient with a fresh id.
func NewIngredient(name string, quantity float64, unit string, aisle *string) Ingredient {
	return Ingredient{ID: uuid.New(), Name: name, Quantity: quantity, Unit: unit, Aisle: aisle}
}

// Recipe is a synthesized dish. Only its ingredient list may change after
// synthesis (substitution).
type Recipe struct {
	ID                uuid.UUID             `json:"id"`
	Title             string                `json:"title"`
	Summary           string                `json:"summary"`
	PrepTimeMinutes   int                   `json:"prep_time_minutes"`
	CookTimeMinutes   int                   `json:"cook_time_minutes"`
	Difficulty        string                `json:"difficulty"`
	Ingredients       []Ingredient          `json:"ingredients"`
	Steps             []string              `json:"steps"`
	Tags              []string              `json:"tags"`
	Macros            shared.MacroBreakdown `json:"macro_breakdown"`
	SatisfactionScore float64               `json:"satisfaction_score"`
	Cuisine           string                `json:"cuisine"`
}

// Clone returns a deep copy of r.
func (r Recipe) Clone() Recipe {
	r.Ingredients = slices.Clone(r.Ingredients)
	r.Steps = slices.Clone(r.Steps)
	r.Tags = slices.Clone(r.Tags)
	return r
}

// ReplaceIngredient swaps the ingredient with the given id for replacement.
// It reports false, leaving r unchanged, when no ingredient matches.
func (r *Recipe) ReplaceIngredient(ingredientID uuid.UUID, replacement Ingredient) bool {
	i := slices.IndexFunc(r.Ingredients, func(in Ingredient) bool { return in.ID == ingredientID })
	if i < 0 {
		return false
	}
	r.Ingredients[i] = replacement
	return true
}
