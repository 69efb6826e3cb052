package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllMealTypesOrder(t *testing.T) {
	assert.Equal(t, []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}, AllMealTypes())
}

func TestMealTypeTitle(t *testing.T) {
	assert.Equal(t, "Breakfast", MealBreakfast.Title())
	assert.Equal(t, "Snack", MealSnack.Title())
	assert.Equal(t, "", MealType("").Title())
}

func TestMealTypeValid(t *testing.T) {
	assert.True(t, MealDinner.Valid())
	assert.False(t, MealType("brunch").Valid())
}

func TestMacroBreakdownAdd(t *testing.T) {
	a := MacroBreakdown{Calories: 100, Protein: 10, Carbs: 20, Fats: 5}
	b := MacroBreakdown{Calories: 50, Protein: 1, Carbs: 2, Fats: 3}

	assert.Equal(t, MacroBreakdown{Calories: 150, Protein: 11, Carbs: 22, Fats: 8}, a.Add(b))
	assert.Equal(t, a, ZeroMacros.Add(a))
}

func TestNotifier(t *testing.T) {
	var n Notifier[int]
	var got []string

	cancelA := n.Subscribe(func(v int) { got = append(got, "a") })
	n.Subscribe(func(v int) { got = append(got, "b") })

	n.Publish(1)
	assert.Equal(t, []string{"a", "b"}, got)

	cancelA()
	got = nil
	n.Publish(2)
	assert.Equal(t, []string{"b"}, got)
}
