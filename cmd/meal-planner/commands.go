package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"meal-planner/internal/pantry"
	"meal-planner/internal/planner"
	"meal-planner/internal/preference"
	"meal-planner/internal/profile"
	"meal-planner/internal/shopping"
)

func planCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show this week's plan, generating it when missing or stale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			if rt.app.RefreshPlanIfNeeded(force) {
				fmt.Fprintln(cmd.OutOrStdout(), "Generated a new plan.")
			}
			printPlan(cmd.OutOrStdout(), rt.app.CurrentPlan())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Regenerate even if today's plan exists")
	return cmd
}

func shoppingCmd() *cobra.Command {
	var toggle string

	cmd := &cobra.Command{
		Use:   "shopping",
		Short: "Show the shopping list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			if toggle != "" {
				id, err := uuid.Parse(toggle)
				if err != nil {
					return fmt.Errorf("invalid item id %q: %w", toggle, err)
				}
				if !rt.app.ToggleShoppingItem(id) {
					return fmt.Errorf("shopping item %s not found", id)
				}
			}
			printShoppingList(cmd.OutOrStdout(), rt.app.ShoppingItems())
			return nil
		},
	}

	cmd.Flags().StringVar(&toggle, "toggle", "", "Toggle the completed flag of an item id")
	return cmd
}

func feedbackCmd() *cobra.Command {
	var comment string

	cmd := &cobra.Command{
		Use:   "feedback <meal-id> <type>",
		Short: "Rate a meal and regenerate the plan",
		Long: "Rate a meal of the current plan. Types: " + feedbackTypes() + `.

Positive feedback (thumbsUp, lovedIt) marks the meal as liked, anything else
as disliked. The plan is regenerated afterwards.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			mealID, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid meal id %q: %w", args[0], err)
			}
			feedbackType, err := preference.ParseFeedbackType(args[1])
			if err != nil {
				return err
			}

			rt, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			var c *string
			if comment != "" {
				c = &comment
			}
			event := rt.app.SubmitFeedback(mealID, feedbackType, c)
			rt.app.Wait()

			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s for meal %s.\n", event.Type, event.MealID)
			if plan := rt.app.CurrentPlan(); plan != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "New plan %s generated.\n", plan.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&comment, "comment", "c", "", "Optional comment")
	return cmd
}

func tastesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tastes",
		Short: "Show the learned taste profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			p := rt.app.PreferenceProfile()
			summary := preference.TasteSummary(p)
			if summary == "" {
				summary = "(no taste scores yet)"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Tastes:   %s\n", summary)
			fmt.Fprintf(out, "Liked:    %d meals\n", len(p.LikedMeals))
			fmt.Fprintf(out, "Disliked: %d meals\n", len(p.DislikedMeals))
			return nil
		},
	}
}

func pantryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pantry",
		Short: "Manage what you already have at home",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Replace the pantry with the items of a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open pantry file: %w", err)
			}
			defer f.Close()

			items, err := pantry.ParseYAML(f)
			if err != nil {
				return err
			}

			rt, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			rt.app.SetPantry(items)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d pantry items.\n", len(items))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List pantry items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			items := rt.app.PantryItems()
			if len(items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Pantry is empty.")
			}
			for _, it := range items {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s (%g on hand)\n", it.Ingredient.Name, it.QuantityOnHand)
			}
			return nil
		},
	})

	return cmd
}

func profileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update the user profile",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the user profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			printProfile(cmd.OutOrStdout(), rt.app.Profile())
			return nil
		},
	})

	cmd.AddCommand(profileSetCmd())
	return cmd
}

func profileSetCmd() *cobra.Command {
	var (
		name      string
		age       int
		weight    float64
		height    float64
		activity  float64
		diets     []string
		allergies []string
		cuisines  []string
		goals     []string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields; only the flags given are changed",
		Example: `  meal-planner profile set --name Sam --cuisines Italian,Thai
  meal-planner profile set --diet vegetarian --activity 1.5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			changed := cmd.Flags().Changed

			var parsedDiets []profile.DietaryPreference
			for _, raw := range diets {
				d, ok := profile.ParseDietaryPreference(raw)
				if !ok {
					return fmt.Errorf("unknown dietary preference %q", raw)
				}
				parsedDiets = append(parsedDiets, d)
			}

			rt, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer rt.Close()

			updated := rt.app.UpdateProfile(func(p *profile.UserProfile) {
				if changed("name") {
					p.FirstName = name
				}
				if changed("age") {
					p.Age = age
				}
				if changed("weight") {
					p.Weight = weight
				}
				if changed("height") {
					p.Height = height
				}
				if changed("activity") {
					p.ActivityLevel = activity
				}
				if changed("diet") {
					p.DietaryPreferences = parsedDiets
				}
				if changed("allergies") {
					p.Allergies = allergies
				}
				if changed("cuisines") {
					p.FavoriteCuisines = cuisines
				}
				if changed("goals") {
					p.Goals = goals
				}
			})
			printProfile(cmd.OutOrStdout(), updated)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "First name")
	cmd.Flags().IntVar(&age, "age", 0, "Age in years")
	cmd.Flags().Float64Var(&weight, "weight", 0, "Weight in kg")
	cmd.Flags().Float64Var(&height, "height", 0, "Height in cm")
	cmd.Flags().Float64Var(&activity, "activity", 0, "Activity level multiplier, e.g. 1.2")
	cmd.Flags().StringSliceVar(&diets, "diet", nil, "Dietary preferences")
	cmd.Flags().StringSliceVar(&allergies, "allergies", nil, "Allergies")
	cmd.Flags().StringSliceVar(&cuisines, "cuisines", nil, "Favourite cuisines, best first")
	cmd.Flags().StringSliceVar(&goals, "goals", nil, "Goals")
	return cmd
}

func printPlan(w io.Writer, plan *planner.MealPlan) {
	if plan == nil {
		fmt.Fprintln(w, "No meal plan yet.")
		return
	}

	fmt.Fprintf(w, "Plan %s (week of %s)\n", plan.ID, plan.WeekOf.Format("2006-01-02"))
	fmt.Fprintln(w, strings.Repeat("=", 40))
	for _, day := range plan.Days {
		fmt.Fprintf(w, "\n%s\n", day.Date.Format("Monday 2006-01-02"))
		for _, meal := range day.Meals {
			fmt.Fprintf(w, "  %-10s %-28s %s\n", meal.Type.Title(), meal.Recipe.Title, meal.ID)
		}
		m := day.MacroSummary
		fmt.Fprintf(w, "  %.0f kcal | P %.0fg | C %.0fg | F %.0fg\n", m.Calories, m.Protein, m.Carbs, m.Fats)
	}
}

func printShoppingList(w io.Writer, items []shopping.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, "Shopping list is empty.")
		return
	}
	for _, it := range items {
		box := "[ ]"
		if it.Completed {
			box = "[x]"
		}
		fmt.Fprintf(w, "%s %-24s %g %-8s %-10s %s\n", box, it.Ingredient.Name, it.Ingredient.Quantity, it.Ingredient.Unit, it.Aisle(), it.ID)
	}
}

func printProfile(w io.Writer, p profile.UserProfile) {
	fmt.Fprintf(w, "Name:      %s\n", p.FirstName)
	fmt.Fprintf(w, "Age:       %d\n", p.Age)
	fmt.Fprintf(w, "Weight:    %g kg\n", p.Weight)
	fmt.Fprintf(w, "Height:    %g cm\n", p.Height)
	fmt.Fprintf(w, "Activity:  %g\n", p.ActivityLevel)

	diets := make([]string, 0, len(p.DietaryPreferences))
	for _, d := range p.DietaryPreferences {
		diets = append(diets, string(d))
	}
	fmt.Fprintf(w, "Diet:      %s\n", strings.Join(diets, ", "))
	fmt.Fprintf(w, "Allergies: %s\n", strings.Join(p.Allergies, ", "))
	fmt.Fprintf(w, "Cuisines:  %s\n", strings.Join(p.FavoriteCuisines, ", "))
	fmt.Fprintf(w, "Goals:     %s\n", strings.Join(p.Goals, ", "))
}

func feedbackTypes() string {
	names := make([]string, 0, len(preference.AllFeedbackTypes()))
	for _, t := range preference.AllFeedbackTypes() {
		names = append(names, string(t))
	}
	return strings.Join(names, ", ")
}
