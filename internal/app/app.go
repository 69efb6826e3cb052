package app

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"meal-planner/internal/challenge"
	"meal-planner/internal/database"
	"meal-planner/internal/feedback"
	"meal-planner/internal/health"
	"meal-planner/internal/logger"
	"meal-planner/internal/metrics"
	"meal-planner/internal/pantry"
	"meal-planner/internal/planner"
	"meal-planner/internal/preference"
	"meal-planner/internal/profile"
	"meal-planner/internal/recipe"
	"meal-planner/internal/shared"
	"meal-planner/internal/shopping"
)

var (
	// ErrNoPlan is returned when an operation needs a cached plan.
	ErrNoPlan = errors.New("no meal plan")
	// ErrMealNotFound is returned for a meal id outside the cached plan.
	ErrMealNotFound = errors.New("meal not found")
)

// App holds the application's dependencies and exposes the planner's
// operations to the outer surfaces.
type App struct {
	log       *logger.Logger
	db        *database.DB
	userID    string
	startedAt time.Time

	profiles    *profile.Store
	ledger      *preference.Ledger
	pantry      *pantry.Store
	shopping    *shopping.Store
	plans       *planner.Store
	generator   *planner.Generator
	history     *feedback.History
	coordinator *feedback.Coordinator
	catalog     *recipe.Catalog
	recipes     *recipe.Repository
	insights    *health.Insights
	mealLog     *health.Log
	challenges  *challenge.Store
	metrics     *metrics.Collector

	cancels []func()
}

// Option customises an App.
type Option func(*options)

type options struct {
	provider     health.Provider
	userID       string
	loggedMacros bool
}

// WithHealthProvider replaces the static nutrition provider.
func WithHealthProvider(p health.Provider) Option {
	return func(o *options) { o.provider = p }
}

// WithLoggedNutrition derives today's summary from meals logged through
// LogMeal instead of an external provider.
func WithLoggedNutrition() Option {
	return func(o *options) { o.loggedMacros = true }
}

// WithUserID scopes persisted state to userID instead of the default user.
func WithUserID(id string) Option {
	return func(o *options) { o.userID = id }
}

// New wires every store together. When db is non-nil, persisted state is
// restored from it and every later change is written back. A nil db keeps
// everything in memory.
func New(ctx context.Context, db *database.DB, log *logger.Logger, opts ...Option) (*App, error) {
	o := options{provider: health.StaticProvider{}, userID: database.DefaultUserID}
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{
		log:        log,
		db:         db,
		userID:     o.userID,
		startedAt:  time.Now(),
		profiles:   profile.NewStore(),
		ledger:     preference.NewLedger(),
		pantry:     pantry.NewStore(),
		shopping:   shopping.NewStore(),
		history:    feedback.NewHistory(),
		catalog:    recipe.NewCatalog(),
		mealLog:    health.NewLog(),
		challenges: challenge.NewStore(),
		metrics:    metrics.NewCollector(),
	}
	if o.loggedMacros {
		o.provider = health.LogProvider{Log: a.mealLog}
	}
	a.insights = health.NewInsights(o.provider, log)
	a.generator = planner.NewGenerator(a.profiles, a.ledger)
	a.plans = planner.NewStore(timedGenerator{inner: a.generator, metrics: a.metrics}, shopping.NewBuilder(a.pantry, a.shopping))
	a.coordinator = feedback.NewCoordinator(a.history, a.ledger, a.plans)
	a.coordinator.OnRefresh(func(regenerated bool) {
		if regenerated {
			a.metrics.RecordRegeneration(metrics.ReasonFeedback)
		}
	})

	if db != nil {
		if err := a.restore(ctx); err != nil {
			return nil, err
		}
		a.persistChanges()
	}
	a.observeChanges()

	return a, nil
}

// GeneratePlan builds a fresh plan from the current profile and tastes
// without caching it.
func (a *App) GeneratePlan() planner.MealPlan {
	return a.generator.GeneratePlan()
}

// RefreshPlanIfNeeded regenerates the cached plan when forced or stale and
// reports whether it did.
func (a *App) RefreshPlanIfNeeded(force bool) bool {
	reason := a.plans.Refresh(force)
	if reason == planner.RefreshSkipped {
		return false
	}
	label := regenerationLabel(reason)
	a.metrics.RecordRegeneration(label)
	a.log.Info("meal plan regenerated", "reason", label)
	return true
}

func regenerationLabel(reason planner.RefreshReason) string {
	switch reason {
	case planner.RefreshInitial:
		return metrics.ReasonInitial
	case planner.RefreshStale:
		return metrics.ReasonStale
	default:
		return metrics.ReasonForced
	}
}

// ApplySubstitution swaps one ingredient of one meal in the cached plan.
func (a *App) ApplySubstitution(mealID, ingredientID uuid.UUID, replacement recipe.Ingredient) bool {
	ok := a.plans.ApplySubstitution(mealID, ingredientID, replacement)
	if !ok {
		a.log.Debug("substitution ignored", "meal_id", mealID, "ingredient_id", ingredientID)
	}
	return ok
}

// SubmitFeedback records feedback for a meal. The preference update is
// visible when it returns; the plan regeneration follows in the background.
func (a *App) SubmitFeedback(mealID uuid.UUID, feedbackType preference.FeedbackType, comment *string) preference.FeedbackEvent {
	event := preference.NewFeedbackEvent(mealID, feedbackType, comment)
	a.coordinator.Submit(event)
	return event
}

// CurrentPlan returns the cached plan, or nil.
func (a *App) CurrentPlan() *planner.MealPlan {
	return a.plans.Current()
}

// ShoppingItems returns the current shopping list.
func (a *App) ShoppingItems() []shopping.Item {
	return a.shopping.Items()
}

// PreferenceProfile returns the learned taste profile.
func (a *App) PreferenceProfile() preference.Profile {
	return a.ledger.Profile()
}

// Profile returns the user profile.
func (a *App) Profile() profile.UserProfile {
	return a.profiles.Profile()
}

// UpdateProfile applies update to the user profile. When the favourite
// cuisines change, taste scores are re-seeded from them.
func (a *App) UpdateProfile(update func(*profile.UserProfile)) profile.UserProfile {
	before := a.profiles.Profile()
	after := a.profiles.Update(update)
	if !slices.Equal(before.FavoriteCuisines, after.FavoriteCuisines) {
		a.ledger.SeedTasteScores(after.FavoriteCuisines)
	}
	return after
}

// SetPantry replaces the pantry and re-derives the shopping list.
func (a *App) SetPantry(items []pantry.Item) {
	a.pantry.SetItems(items)
	a.plans.RebuildList()
}

// PantryItems returns the pantry contents.
func (a *App) PantryItems() []pantry.Item {
	return a.pantry.Items()
}

// ToggleShoppingItem flips one item's completed flag.
func (a *App) ToggleShoppingItem(id uuid.UUID) bool {
	return a.shopping.Toggle(id)
}

// Recipe looks up a recipe that appeared in any plan, falling back to the
// database for recipes of earlier runs.
func (a *App) Recipe(id uuid.UUID) (recipe.Recipe, bool) {
	if r, ok := a.catalog.Get(id); ok {
		return r, true
	}
	if a.recipes == nil {
		return recipe.Recipe{}, false
	}
	r, err := a.recipes.Get(context.Background(), id)
	if err != nil {
		a.log.Error("failed to load recipe", "recipe_id", id, "error", err)
		return recipe.Recipe{}, false
	}
	if r == nil {
		return recipe.Recipe{}, false
	}
	a.catalog.Upsert(*r)
	return *r, true
}

// TodaysSummary returns today's intake from the health provider.
func (a *App) TodaysSummary(ctx context.Context) shared.MacroBreakdown {
	return a.insights.TodaysSummary(ctx)
}

// LogMeal records that a meal of the cached plan was eaten.
func (a *App) LogMeal(mealID uuid.UUID, energy *float64, mood *string) (health.LogEntry, error) {
	plan := a.plans.Current()
	if plan == nil {
		return health.LogEntry{}, ErrNoPlan
	}
	meal, ok := plan.FindMeal(mealID)
	if !ok {
		return health.LogEntry{}, fmt.Errorf("%w: %s", ErrMealNotFound, mealID)
	}
	return a.mealLog.Append(health.LogEntry{
		MealID:      meal.ID,
		ConsumedAt:  time.Now(),
		Macros:      meal.Macros,
		EnergyLevel: energy,
		MoodNote:    mood,
	}), nil
}

// MealLog returns every logged meal.
func (a *App) MealLog() []health.LogEntry {
	return a.mealLog.Entries()
}

// Challenges returns the active challenges.
func (a *App) Challenges() []challenge.Challenge {
	return a.challenges.Challenges()
}

// UpdateChallenge moves a challenge's progress by delta.
func (a *App) UpdateChallenge(id uuid.UUID, delta int) (challenge.Challenge, bool) {
	return a.challenges.UpdateProgress(id, delta)
}

// Metrics returns the Prometheus collectors.
func (a *App) Metrics() *metrics.Collector {
	return a.metrics
}

// SysHealth returns a runtime snapshot.
func (a *App) SysHealth() metrics.SysHealth {
	path := ""
	if a.db != nil {
		path = a.db.Path
	}
	return metrics.GetSysHealth(path, a.startedAt)
}

// Wait blocks until background regenerations and list rebuilds finish.
func (a *App) Wait() {
	a.coordinator.Wait()
	a.plans.Wait()
}

// Close waits for background work, detaches listeners and closes the
// database.
func (a *App) Close() error {
	a.Wait()
	for _, cancel := range a.cancels {
		cancel()
	}
	a.cancels = nil
	a.log.Sync()
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) observeChanges() {
	a.cancels = append(a.cancels,
		a.plans.Subscribe(func(plan planner.MealPlan) {
			for _, r := range plan.Recipes() {
				a.catalog.Upsert(r)
			}
		}),
		a.shopping.Subscribe(func(items []shopping.Item) {
			a.metrics.SetShoppingItems(len(items))
		}),
		a.history.Subscribe(func(e preference.FeedbackEvent) {
			a.metrics.RecordFeedback(string(e.Type))
		}),
	)
}

type timedGenerator struct {
	inner   planner.PlanGenerator
	metrics *metrics.Collector
}

func (g timedGenerator) GeneratePlan() planner.MealPlan {
	start := time.Now()
	plan := g.inner.GeneratePlan()
	g.metrics.ObserveGeneration(time.Since(start))
	return plan
}
