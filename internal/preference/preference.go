package preference

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// InitialTasteScore is the score given to each seeded cuisine.
const InitialTasteScore = 0.6

// TasteScore is a learned affinity for a cuisine.
type TasteScore struct {
	Cuisine string  `json:"cuisine"`
	Score   float64 `json:"score"`
}

// Profile is the learned taste profile of the user. A meal id is never in
// both LikedMeals and DislikedMeals.
type Profile struct {
	LikedMeals    map[uuid.UUID]struct{} `json:"liked_meals"`
	DislikedMeals map[uuid.UUID]struct{} `json:"disliked_meals"`
	TasteScores   []TasteScore           `json:"taste_scores"`
	LastUpdated   time.Time              `json:"last_updated"`
}

// Empty returns a profile with no likes, dislikes or scores.
func Empty() Profile {
	return Profile{
		LikedMeals:    map[uuid.UUID]struct{}{},
		DislikedMeals: map[uuid.UUID]struct{}{},
		LastUpdated:   time.Now(),
	}
}

// Likes reports whether mealID is in the liked set.
func (p Profile) Likes(mealID uuid.UUID) bool {
	_, ok := p.LikedMeals[mealID]
	return ok
}

// Dislikes reports whether mealID is in the disliked set.
func (p Profile) Dislikes(mealID uuid.UUID) bool {
	_, ok := p.DislikedMeals[mealID]
	return ok
}

// Clone returns a deep copy of p.
func (p Profile) Clone() Profile {
	p.LikedMeals = cloneSet(p.LikedMeals)
	p.DislikedMeals = cloneSet(p.DislikedMeals)
	p.TasteScores = slices.Clone(p.TasteScores)
	return p
}

func cloneSet(s map[uuid.UUID]struct{}) map[uuid.UUID]struct{} {
	if s == nil {
		return map[uuid.UUID]struct{}{}
	}
	return maps.Clone(s)
}

// SortedTasteScores returns the scores ordered by score, highest first.
// Equal scores keep their original relative order.
func SortedTasteScores(scores []TasteScore) []TasteScore {
	sorted := slices.Clone(scores)
	slices.SortStableFunc(sorted, func(a, b TasteScore) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})
	return sorted
}

// TasteSummary renders the scores as "Italian 60%, Thai 55%".
func TasteSummary(p Profile) string {
	parts := make([]string, 0, len(p.TasteScores))
	for _, s := range SortedTasteScores(p.TasteScores) {
		parts = append(parts, fmt.Sprintf("%s %d%%", s.Cuisine, int(s.Score*100)))
	}
	return strings.Join(parts, ", ")
}
