package telegram

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"meal-planner/internal/metrics"
	"meal-planner/internal/planner"
	"meal-planner/internal/preference"
	"meal-planner/internal/shared"
	"meal-planner/internal/shopping"
)

func formatPlan(plan *planner.MealPlan) string {
	if plan == nil {
		return "No meal plan yet. Send /refresh to create one."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📅 *Weekly Meal Plan* (from %s)\n", plan.WeekOf.Format("Mon 2 Jan")))
	for _, day := range plan.Days {
		sb.WriteString(fmt.Sprintf("\n*%s*\n", day.Date.Format("Monday 2 Jan")))
		for _, meal := range day.Meals {
			sb.WriteString(fmt.Sprintf("• %s: %s `%s`\n", meal.Type.Title(), meal.Recipe.Title, meal.ID))
		}
		sb.WriteString(fmt.Sprintf("_%.0f kcal, P %.0fg, C %.0fg, F %.0fg_\n",
			day.MacroSummary.Calories, day.MacroSummary.Protein, day.MacroSummary.Carbs, day.MacroSummary.Fats))
	}
	return sb.String()
}

// formatShoppingList groups items by aisle; items without one go last.
func formatShoppingList(items []shopping.Item) string {
	if len(items) == 0 {
		return "🛒 Your shopping list is empty."
	}

	var aisles []string
	byAisle := make(map[string][]shopping.Item)
	for _, it := range items {
		a := it.Aisle()
		if _, ok := byAisle[a]; !ok {
			aisles = append(aisles, a)
		}
		byAisle[a] = append(byAisle[a], it)
	}
	slices.SortStableFunc(aisles, func(x, y string) int {
		switch {
		case x == "":
			return 1
		case y == "":
			return -1
		}
		return cmp.Compare(x, y)
	})

	var sb strings.Builder
	sb.WriteString("🛒 *Shopping List*\n")
	for _, a := range aisles {
		title := a
		if title == "" {
			title = "Other"
		}
		sb.WriteString(fmt.Sprintf("\n*%s*\n", title))
		for _, it := range byAisle[a] {
			box := "☐"
			if it.Completed {
				box = "☑"
			}
			sb.WriteString(fmt.Sprintf("%s %s (%g %s)\n", box, it.Ingredient.Name, it.Ingredient.Quantity, it.Ingredient.Unit))
		}
	}
	return sb.String()
}

func formatTastes(p preference.Profile) string {
	summary := preference.TasteSummary(p)
	if summary == "" {
		summary = "_No taste scores yet_"
	}
	return fmt.Sprintf("😋 *Your Tastes*\n\n%s\n\n👍 %d liked, 👎 %d disliked", summary, len(p.LikedMeals), len(p.DislikedMeals))
}

func formatMacros(title string, m shared.MacroBreakdown) string {
	return fmt.Sprintf("%s\n\n• Calories: %.0f kcal\n• Protein: %.0f g\n• Carbs: %.0f g\n• Fats: %.0f g",
		title, m.Calories, m.Protein, m.Carbs, m.Fats)
}

func formatStatus(h metrics.SysHealth) string {
	var sb strings.Builder
	sb.WriteString("🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", h.AllocMB, h.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", h.Goroutines))
	sb.WriteString(fmt.Sprintf("• Database: %s\n", h.DatabaseSize))
	sb.WriteString(fmt.Sprintf("• Uptime: %s\n", h.Uptime))
	return sb.String()
}
