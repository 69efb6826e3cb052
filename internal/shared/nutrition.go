package shared

import "strings"

// MealType tags a meal slot within a day.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// AllMealTypes returns every meal type in canonical order.
func AllMealTypes() []MealType {
	return []MealType{MealBreakfast, MealLunch, MealDinner, MealSnack}
}

// Valid reports whether t is one of the known meal types.
func (t MealType) Valid() bool {
	for _, known := range AllMealTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// Title returns the capitalised name, e.g. "Breakfast".
func (t MealType) Title() string {
	if t == "" {
		return ""
	}
	s := string(t)
	return strings.ToUpper(s[:1]) + s[1:]
}

// MacroBreakdown holds energy and macro-nutrient amounts (kcal and grams).
type MacroBreakdown struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// ZeroMacros is the additive identity for MacroBreakdown.
var ZeroMacros = MacroBreakdown{}

// Add returns the element-wise sum of m and other.
func (m MacroBreakdown) Add(other MacroBreakdown) MacroBreakdown {
	return MacroBreakdown{
		Calories: m.Calories + other.Calories,
		Protein:  m.Protein + other.Protein,
		Carbs:    m.Carbs + other.Carbs,
		Fats:     m.Fats + other.Fats,
	}
}
