package profile

import (
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"meal-planner/internal/shared"
)

// DietaryPreference is one of the supported diet tags.
type DietaryPreference string

const (
	DietOmnivore    DietaryPreference = "omnivore"
	DietVegetarian  DietaryPreference = "vegetarian"
	DietVegan       DietaryPreference = "vegan"
	DietPescatarian DietaryPreference = "pescatarian"
	DietKeto        DietaryPreference = "keto"
	DietPaleo       DietaryPreference = "paleo"
	DietGlutenFree  DietaryPreference = "glutenFree"
)

// AllDietaryPreferences lists every diet tag.
func AllDietaryPreferences() []DietaryPreference {
	return []DietaryPreference{DietOmnivore, DietVegetarian, DietVegan, DietPescatarian, DietKeto, DietPaleo, DietGlutenFree}
}

// ParseDietaryPreference matches s case-insensitively against the known tags.
func ParseDietaryPreference(s string) (DietaryPreference, bool) {
	for _, d := range AllDietaryPreferences() {
		if strings.EqualFold(string(d), strings.TrimSpace(s)) {
			return d, true
		}
	}
	return "", false
}

const (
	DefaultAge           = 30
	DefaultWeight        = 70.0
	DefaultHeight        = 170.0
	DefaultActivityLevel = 1.2
)

// UserProfile describes the person the plan is generated for.
type UserProfile struct {
	ID                 uuid.UUID           `json:"id"`
	FirstName          string              `json:"first_name"`
	Age                int                 `json:"age"`
	Weight             float64             `json:"weight"`
	Height             float64             `json:"height"`
	ActivityLevel      float64             `json:"activity_level"`
	DietaryPreferences []DietaryPreference `json:"dietary_preferences"`
	Allergies          []string            `json:"allergies"`
	FavoriteCuisines   []string            `json:"favorite_cuisines"`
	Goals              []string            `json:"goals"`
}

// Default returns a profile with every required field populated.
func Default() UserProfile {
	return UserProfile{
		ID:                 uuid.New(),
		Age:                DefaultAge,
		Weight:             DefaultWeight,
		Height:             DefaultHeight,
		ActivityLevel:      DefaultActivityLevel,
		DietaryPreferences: []DietaryPreference{DietOmnivore},
	}
}

// IsEmpty reports whether onboarding has not happened yet.
func (p UserProfile) IsEmpty() bool {
	return p.FirstName == ""
}

// Clone returns a deep copy of p.
func (p UserProfile) Clone() UserProfile {
	p.DietaryPreferences = slices.Clone(p.DietaryPreferences)
	p.Allergies = slices.Clone(p.Allergies)
	p.FavoriteCuisines = slices.Clone(p.FavoriteCuisines)
	p.Goals = slices.Clone(p.Goals)
	return p
}

// normalize restores defaults for any required numeric field left invalid.
func (p *UserProfile) normalize() {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Age <= 0 {
		p.Age = DefaultAge
	}
	if p.Weight <= 0 {
		p.Weight = DefaultWeight
	}
	if p.Height <= 0 {
		p.Height = DefaultHeight
	}
	if p.ActivityLevel <= 0 {
		p.ActivityLevel = DefaultActivityLevel
	}
}

// Store holds the current user profile. Updates are copy-on-write: readers
// always see a complete snapshot.
type Store struct {
	writeMu  sync.Mutex
	mu       sync.RWMutex
	profile  UserProfile
	notifier shared.Notifier[UserProfile]
}

// NewStore creates a Store seeded with Default().
func NewStore() *Store {
	return &Store{profile: Default()}
}

// Profile returns a snapshot of the current profile.
func (s *Store) Profile() UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Clone()
}

// Update applies transform to a copy of the profile and commits it.
func (s *Store) Update(transform func(*UserProfile)) UserProfile {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := s.Profile()
	transform(&next)
	next.normalize()

	s.mu.Lock()
	s.profile = next
	s.mu.Unlock()

	s.notifier.Publish(next.Clone())
	return next.Clone()
}

// Restore replaces the profile with previously persisted state without
// notifying listeners.
func (s *Store) Restore(p UserProfile) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	p.normalize()
	s.mu.Lock()
	s.profile = p.Clone()
	s.mu.Unlock()
}

// Subscribe registers fn to run after every committed update.
func (s *Store) Subscribe(fn func(UserProfile)) (cancel func()) {
	return s.notifier.Subscribe(fn)
}
