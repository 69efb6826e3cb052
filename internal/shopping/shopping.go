package shopping

import (
	"github.com/google/uuid"

	"meal-planner/internal/pantry"
	"meal-planner/internal/planner"
	"meal-planner/internal/recipe"
)

// Source records where a shopping item came from.
type Source string

const (
	SourcePantry     Source = "pantry"
	SourceList       Source = "list"
	SourceSuggestion Source = "suggestion"
)

// Item is one line of the shopping list. Its id is the ingredient's id.
type Item struct {
	ID         uuid.UUID         `json:"id"`
	Ingredient recipe.Ingredient `json:"ingredient"`
	Completed  bool              `json:"completed"`
	Source     Source            `json:"source"`
	Store      *string           `json:"store,omitempty"`
}

// Aisle returns the ingredient's aisle, or "" when unknown.
func (i Item) Aisle() string {
	if i.Ingredient.Aisle == nil {
		return ""
	}
	return *i.Ingredient.Aisle
}

// BuildList derives the shopping list for plan. Ingredients are
// de-duplicated by id first: the last occurrence wins but the item keeps the
// position of the first. Items whose final name exactly matches the name of
// a pantry item are then left out.
func BuildList(plan planner.MealPlan, pantryItems []pantry.Item) []Item {
	index := make(map[uuid.UUID]int)
	var deduped []Item
	for _, ing := range plan.Ingredients() {
		item := Item{ID: ing.ID, Ingredient: ing, Source: SourceList}
		if i, seen := index[ing.ID]; seen {
			deduped[i] = item
			continue
		}
		index[ing.ID] = len(deduped)
		deduped = append(deduped, item)
	}

	onHand := make(map[string]struct{}, len(pantryItems))
	for _, name := range pantry.Names(pantryItems) {
		onHand[name] = struct{}{}
	}

	var items []Item
	for _, item := range deduped {
		if _, ok := onHand[item.Ingredient.Name]; ok {
			continue
		}
		items = append(items, item)
	}
	return items
}
