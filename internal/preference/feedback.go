package preference

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// FeedbackType is the kind of reaction a user had to a meal.
type FeedbackType string

const (
	FeedbackThumbsUp     FeedbackType = "thumbsUp"
	FeedbackThumbsDown   FeedbackType = "thumbsDown"
	FeedbackTooManyCarbs FeedbackType = "tooManyCarbs"
	FeedbackLovedIt      FeedbackType = "lovedIt"
	FeedbackSkip         FeedbackType = "skip"
)

// AllFeedbackTypes lists every feedback type.
func AllFeedbackTypes() []FeedbackType {
	return []FeedbackType{FeedbackThumbsUp, FeedbackThumbsDown, FeedbackTooManyCarbs, FeedbackLovedIt, FeedbackSkip}
}

// ParseFeedbackType validates s against the closed set of feedback types.
func ParseFeedbackType(s string) (FeedbackType, error) {
	for _, t := range AllFeedbackTypes() {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown feedback type %q", s)
}

// IsPositive reports whether the feedback moves the meal into the liked set.
func (t FeedbackType) IsPositive() bool {
	return t == FeedbackThumbsUp || t == FeedbackLovedIt
}

// FeedbackEvent is a single reaction to a meal.
type FeedbackEvent struct {
	ID        uuid.UUID    `json:"id"`
	MealID    uuid.UUID    `json:"meal_id"`
	Type      FeedbackType `json:"type"`
	Comment   *string      `json:"comment,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// NewFeedbackEvent stamps a new event for mealID.
func NewFeedbackEvent(mealID uuid.UUID, t FeedbackType, comment *string) FeedbackEvent {
	return FeedbackEvent{
		ID:        uuid.New(),
		MealID:    mealID,
		Type:      t,
		Comment:   comment,
		CreatedAt: time.Now(),
	}
}
