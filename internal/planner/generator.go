package planner

import (
	"time"

	"github.com/google/uuid"

	"meal-planner/internal/preference"
	"meal-planner/internal/profile"
	"meal-planner/internal/recipe"
	"meal-planner/internal/shared"
)

const defaultPortionSize = "1 serving"

// ProfileProvider supplies the user profile at generation time.
type ProfileProvider interface {
	Profile() profile.UserProfile
}

// TasteProvider supplies the learned taste profile at generation time.
type TasteProvider interface {
	Profile() preference.Profile
}

// Generator builds fresh weekly plans. It keeps no state between calls.
type Generator struct {
	profiles ProfileProvider
	tastes   TasteProvider
	now      func() time.Time
}

// NewGenerator creates a Generator reading from the given providers.
func NewGenerator(profiles ProfileProvider, tastes TasteProvider) *Generator {
	return &Generator{profiles: profiles, tastes: tastes, now: time.Now}
}

// GeneratePlan builds a 7-day plan starting at the beginning of today.
func (g *Generator) GeneratePlan() MealPlan {
	user := g.profiles.Profile()
	taste := g.tastes.Profile()

	now := g.now()
	weekStart := startOfDay(now)

	days := make([]MealDay, 0, DaysPerPlan)
	for offset := 0; offset < DaysPerPlan; offset++ {
		days = append(days, buildDay(weekStart.AddDate(0, 0, offset), user, taste))
	}

	return MealPlan{
		ID:        uuid.New(),
		WeekOf:    weekStart,
		Days:      days,
		CreatedAt: now,
	}
}

func buildDay(date time.Time, user profile.UserProfile, taste preference.Profile) MealDay {
	types := shared.AllMealTypes()
	meals := make([]Meal, 0, len(types))
	summary := shared.ZeroMacros

	for _, mealType := range types {
		meal := makeMeal(mealType, user, taste)
		summary = summary.Add(meal.Macros)
		meals = append(meals, meal)
	}

	return MealDay{
		ID:           uuid.New(),
		Date:         date,
		Meals:        meals,
		MacroSummary: summary,
	}
}

func makeMeal(mealType shared.MealType, user profile.UserProfile, taste preference.Profile) Meal {
	macros := RecommendedMacros(mealType, user)
	return Meal{
		ID:          uuid.New(),
		Type:        mealType,
		Recipe:      recipe.Synthesize(mealType, taste, user, macros),
		PortionSize: defaultPortionSize,
		Macros:      macros,
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// sameDay reports whether a and b fall on the same calendar day in b's location.
func sameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
