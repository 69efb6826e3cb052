package app

import (
	"context"
	"fmt"

	"meal-planner/internal/challenge"
	"meal-planner/internal/feedback"
	"meal-planner/internal/health"
	"meal-planner/internal/pantry"
	"meal-planner/internal/planner"
	"meal-planner/internal/preference"
	"meal-planner/internal/profile"
	"meal-planner/internal/recipe"
	"meal-planner/internal/shopping"
)

// restore loads every persisted store. Restores do not notify listeners.
func (a *App) restore(ctx context.Context) error {
	sqlDB := a.db.SQL

	p, err := profile.NewRepository(sqlDB).Load(ctx, a.userID)
	if err != nil {
		return fmt.Errorf("failed to restore profile: %w", err)
	}
	if p != nil {
		a.profiles.Restore(*p)
	}

	taste, err := preference.NewRepository(sqlDB).Load(ctx, a.userID)
	if err != nil {
		return fmt.Errorf("failed to restore preferences: %w", err)
	}
	if taste != nil {
		a.ledger.Restore(*taste)
	}

	items, err := pantry.NewRepository(sqlDB).Load(ctx, a.userID)
	if err != nil {
		return fmt.Errorf("failed to restore pantry: %w", err)
	}
	a.pantry.Restore(items)

	list, err := shopping.NewRepository(sqlDB).Load(ctx, a.userID)
	if err != nil {
		return fmt.Errorf("failed to restore shopping list: %w", err)
	}
	a.shopping.Restore(list)
	a.metrics.SetShoppingItems(len(list))

	plan, err := planner.NewRepository(sqlDB).Latest(ctx, a.userID)
	if err != nil {
		return fmt.Errorf("failed to restore meal plan: %w", err)
	}
	if plan != nil {
		a.plans.Restore(*plan)
		for _, r := range plan.Recipes() {
			a.catalog.Upsert(r)
		}
	}

	events, err := feedback.NewRepository(sqlDB).List(ctx, a.userID)
	if err != nil {
		return fmt.Errorf("failed to restore feedback history: %w", err)
	}
	a.history.Restore(events)

	entries, err := health.NewRepository(sqlDB).List(ctx, a.userID)
	if err != nil {
		return fmt.Errorf("failed to restore meal log: %w", err)
	}
	a.mealLog.Restore(entries)

	challenges, err := challenge.NewRepository(sqlDB).Load(ctx, a.userID)
	if err != nil {
		return fmt.Errorf("failed to restore challenges: %w", err)
	}
	a.challenges.Restore(challenges)

	a.log.Info("state restored",
		"user_id", a.userID,
		"has_plan", plan != nil,
		"pantry_items", len(items),
		"shopping_items", len(list),
		"feedback_events", len(events),
		"meal_log_entries", len(entries),
	)
	return nil
}

// persistChanges writes every committed change back to the database. Writes
// run on the committing goroutine, so they land in mutation order. A failed
// write is logged and the in-memory state stays authoritative.
func (a *App) persistChanges() {
	sqlDB := a.db.SQL
	profiles := profile.NewRepository(sqlDB)
	tastes := preference.NewRepository(sqlDB)
	pantryRepo := pantry.NewRepository(sqlDB)
	lists := shopping.NewRepository(sqlDB)
	plans := planner.NewRepository(sqlDB)
	events := feedback.NewRepository(sqlDB)
	mealLog := health.NewRepository(sqlDB)
	challenges := challenge.NewRepository(sqlDB)
	a.recipes = recipe.NewRepository(sqlDB)

	ctx := context.Background()
	a.cancels = append(a.cancels,
		a.profiles.Subscribe(func(p profile.UserProfile) {
			a.logPersistError("profile", profiles.Save(ctx, a.userID, p))
		}),
		a.ledger.Subscribe(func(p preference.Profile) {
			a.logPersistError("preferences", tastes.Save(ctx, a.userID, p))
		}),
		a.pantry.Subscribe(func(items []pantry.Item) {
			a.logPersistError("pantry", pantryRepo.Save(ctx, a.userID, items))
		}),
		a.shopping.Subscribe(func(items []shopping.Item) {
			a.logPersistError("shopping list", lists.Save(ctx, a.userID, items))
		}),
		a.plans.Subscribe(func(plan planner.MealPlan) {
			a.logPersistError("meal plan", plans.Save(ctx, a.userID, plan))
			a.logPersistError("recipes", a.recipes.SaveAll(ctx, plan.Recipes()))
		}),
		a.history.Subscribe(func(e preference.FeedbackEvent) {
			a.logPersistError("feedback event", events.Append(ctx, a.userID, e))
		}),
		a.mealLog.Subscribe(func(e health.LogEntry) {
			a.logPersistError("meal log entry", mealLog.Append(ctx, a.userID, e))
		}),
		a.challenges.Subscribe(func(c []challenge.Challenge) {
			a.logPersistError("challenges", challenges.Save(ctx, a.userID, c))
		}),
	)
}

func (a *App) logPersistError(what string, err error) {
	if err != nil {
		a.log.Error("failed to persist "+what, "error", err)
	}
}
