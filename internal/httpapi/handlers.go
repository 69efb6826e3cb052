package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"meal-planner/internal/app"
	"meal-planner/internal/pantry"
	"meal-planner/internal/preference"
	"meal-planner/internal/profile"
	"meal-planner/internal/recipe"
)

func (s *Server) getStatus(c *gin.Context) {
	plan := s.app.CurrentPlan()
	status := gin.H{
		"system":         s.app.SysHealth(),
		"has_plan":       plan != nil,
		"shopping_items": len(s.app.ShoppingItems()),
	}
	if plan != nil {
		status["plan_id"] = plan.ID
		status["week_of"] = plan.WeekOf
	}
	c.JSON(http.StatusOK, status)
}

func (s *Server) getPlan(c *gin.Context) {
	plan := s.app.CurrentPlan()
	if plan == nil {
		notFound(c, "no meal plan yet")
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (s *Server) refreshPlan(c *gin.Context) {
	force := false
	if raw := c.Query("force"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, fmt.Errorf("invalid force flag %q", raw))
			return
		}
		force = v
	}

	regenerated := s.app.RefreshPlanIfNeeded(force)
	c.JSON(http.StatusOK, gin.H{"regenerated": regenerated, "plan": s.app.CurrentPlan()})
}

type ingredientRequest struct {
	Name     string  `json:"name" binding:"required"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Aisle    *string `json:"aisle"`
}

type substitutionRequest struct {
	MealID       string            `json:"meal_id" binding:"required"`
	IngredientID string            `json:"ingredient_id" binding:"required"`
	Replacement  ingredientRequest `json:"replacement" binding:"required"`
}

func (s *Server) applySubstitution(c *gin.Context) {
	var req substitutionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	mealID, err := parseID("meal_id", req.MealID)
	if err != nil {
		badRequest(c, err)
		return
	}
	ingredientID, err := parseID("ingredient_id", req.IngredientID)
	if err != nil {
		badRequest(c, err)
		return
	}

	r := req.Replacement
	replacement := recipe.NewIngredient(r.Name, r.Quantity, r.Unit, r.Aisle)
	if !s.app.ApplySubstitution(mealID, ingredientID, replacement) {
		notFound(c, "meal or ingredient not found in the current plan")
		return
	}
	c.JSON(http.StatusOK, gin.H{"applied": true, "replacement": replacement})
}

func (s *Server) getRecipe(c *gin.Context) {
	id, err := parseID("id", c.Param("id"))
	if err != nil {
		badRequest(c, err)
		return
	}
	r, ok := s.app.Recipe(id)
	if !ok {
		notFound(c, "recipe not found")
		return
	}
	c.JSON(http.StatusOK, r)
}

func (s *Server) getShopping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": s.app.ShoppingItems()})
}

func (s *Server) toggleShoppingItem(c *gin.Context) {
	id, err := parseID("id", c.Param("id"))
	if err != nil {
		badRequest(c, err)
		return
	}
	if !s.app.ToggleShoppingItem(id) {
		notFound(c, "shopping item not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": s.app.ShoppingItems()})
}

type feedbackRequest struct {
	MealID  string  `json:"meal_id" binding:"required"`
	Type    string  `json:"type" binding:"required"`
	Comment *string `json:"comment"`
}

func (s *Server) submitFeedback(c *gin.Context) {
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	mealID, err := parseID("meal_id", req.MealID)
	if err != nil {
		badRequest(c, err)
		return
	}
	feedbackType, err := preference.ParseFeedbackType(req.Type)
	if err != nil {
		badRequest(c, err)
		return
	}

	event := s.app.SubmitFeedback(mealID, feedbackType, req.Comment)
	c.JSON(http.StatusAccepted, event)
}

type preferencesResponse struct {
	LikedMeals    []uuid.UUID             `json:"liked_meals"`
	DislikedMeals []uuid.UUID             `json:"disliked_meals"`
	TasteScores   []preference.TasteScore `json:"taste_scores"`
	Summary       string                  `json:"summary"`
}

func (s *Server) getPreferences(c *gin.Context) {
	p := s.app.PreferenceProfile()
	c.JSON(http.StatusOK, preferencesResponse{
		LikedMeals:    sortedIDs(p.LikedMeals),
		DislikedMeals: sortedIDs(p.DislikedMeals),
		TasteScores:   preference.SortedTasteScores(p.TasteScores),
		Summary:       preference.TasteSummary(p),
	})
}

func (s *Server) getProfile(c *gin.Context) {
	c.JSON(http.StatusOK, s.app.Profile())
}

type profileRequest struct {
	FirstName          *string   `json:"first_name"`
	Age                *int      `json:"age"`
	Weight             *float64  `json:"weight"`
	Height             *float64  `json:"height"`
	ActivityLevel      *float64  `json:"activity_level"`
	DietaryPreferences *[]string `json:"dietary_preferences"`
	Allergies          *[]string `json:"allergies"`
	FavoriteCuisines   *[]string `json:"favorite_cuisines"`
	Goals              *[]string `json:"goals"`
}

func (s *Server) updateProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var diets []profile.DietaryPreference
	if req.DietaryPreferences != nil {
		for _, raw := range *req.DietaryPreferences {
			d, ok := profile.ParseDietaryPreference(raw)
			if !ok {
				badRequest(c, fmt.Errorf("unknown dietary preference %q", raw))
				return
			}
			diets = append(diets, d)
		}
	}

	updated := s.app.UpdateProfile(func(p *profile.UserProfile) {
		if req.FirstName != nil {
			p.FirstName = strings.TrimSpace(*req.FirstName)
		}
		if req.Age != nil {
			p.Age = *req.Age
		}
		if req.Weight != nil {
			p.Weight = *req.Weight
		}
		if req.Height != nil {
			p.Height = *req.Height
		}
		if req.ActivityLevel != nil {
			p.ActivityLevel = *req.ActivityLevel
		}
		if req.DietaryPreferences != nil {
			p.DietaryPreferences = diets
		}
		if req.Allergies != nil {
			p.Allergies = *req.Allergies
		}
		if req.FavoriteCuisines != nil {
			p.FavoriteCuisines = *req.FavoriteCuisines
		}
		if req.Goals != nil {
			p.Goals = *req.Goals
		}
	})
	c.JSON(http.StatusOK, updated)
}

func (s *Server) getPantry(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": s.app.PantryItems()})
}

type pantryRequest struct {
	Items []pantryItemRequest `json:"items" binding:"dive"`
}

type pantryItemRequest struct {
	Ingredient     ingredientRequest `json:"ingredient" binding:"required"`
	QuantityOnHand float64           `json:"quantity_on_hand"`
	Barcode        *string           `json:"barcode"`
}

// setPantry accepts either JSON or the YAML pantry import format.
func (s *Server) setPantry(c *gin.Context) {
	var items []pantry.Item

	switch c.ContentType() {
	case "application/x-yaml", "application/yaml", "text/yaml":
		parsed, err := pantry.ParseYAML(c.Request.Body)
		if err != nil {
			badRequest(c, err)
			return
		}
		items = parsed
	default:
		var req pantryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
		for _, in := range req.Items {
			items = append(items, pantry.Item{
				ID:             uuid.New(),
				Ingredient:     recipe.NewIngredient(in.Ingredient.Name, in.Ingredient.Quantity, in.Ingredient.Unit, in.Ingredient.Aisle),
				QuantityOnHand: in.QuantityOnHand,
				Barcode:        in.Barcode,
			})
		}
	}

	s.app.SetPantry(items)
	c.JSON(http.StatusOK, gin.H{"items": s.app.PantryItems()})
}

func (s *Server) getTodaysNutrition(c *gin.Context) {
	c.JSON(http.StatusOK, s.app.TodaysSummary(c.Request.Context()))
}

func (s *Server) getMealLog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"entries": s.app.MealLog()})
}

type logMealRequest struct {
	MealID      string   `json:"meal_id" binding:"required"`
	EnergyLevel *float64 `json:"energy_level"`
	MoodNote    *string  `json:"mood_note"`
}

func (s *Server) logMeal(c *gin.Context) {
	var req logMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	mealID, err := parseID("meal_id", req.MealID)
	if err != nil {
		badRequest(c, err)
		return
	}

	entry, err := s.app.LogMeal(mealID, req.EnergyLevel, req.MoodNote)
	switch {
	case errors.Is(err, app.ErrNoPlan), errors.Is(err, app.ErrMealNotFound):
		notFound(c, err.Error())
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusCreated, entry)
	}
}

func (s *Server) getChallenges(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"challenges": s.app.Challenges()})
}

type progressRequest struct {
	Delta int `json:"delta"`
}

func (s *Server) updateChallenge(c *gin.Context) {
	id, err := parseID("id", c.Param("id"))
	if err != nil {
		badRequest(c, err)
		return
	}
	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	updated, ok := s.app.UpdateChallenge(id, req.Delta)
	if !ok {
		notFound(c, "challenge not found")
		return
	}
	c.JSON(http.StatusOK, updated)
}

func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s %q", field, raw)
	}
	return id, nil
}

func sortedIDs(set map[uuid.UUID]struct{}) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int { return strings.Compare(a.String(), b.String()) })
	return ids
}
