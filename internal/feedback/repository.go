package feedback

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"meal-planner/internal/preference"
)

// Repository is an append-only store of feedback events.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Append stores one event for userID.
func (r *Repository) Append(ctx context.Context, userID string, event preference.FeedbackEvent) error {
	var comment sql.NullString
	if event.Comment != nil {
		comment = sql.NullString{String: *event.Comment, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO feedback_events (id, user_id, meal_id, type, comment, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		event.ID.String(), userID, event.MealID.String(), string(event.Type), comment, event.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to append feedback event %s: %w", event.ID, err)
	}
	return nil
}

// List returns every event of userID, oldest first.
func (r *Repository) List(ctx context.Context, userID string) ([]preference.FeedbackEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, meal_id, type, comment, created_at FROM feedback_events
		 WHERE user_id = ? ORDER BY created_at, rowid`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback events: %w", err)
	}
	defer rows.Close()

	var events []preference.FeedbackEvent
	for rows.Next() {
		var (
			id, mealID, kind string
			comment          sql.NullString
			createdAt        time.Time
		)
		if err := rows.Scan(&id, &mealID, &kind, &comment, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback event: %w", err)
		}

		event := preference.FeedbackEvent{Type: preference.FeedbackType(kind), CreatedAt: createdAt}
		if event.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid feedback event id %q: %w", id, err)
		}
		if event.MealID, err = uuid.Parse(mealID); err != nil {
			return nil, fmt.Errorf("invalid meal id %q: %w", mealID, err)
		}
		if comment.Valid {
			event.Comment = &comment.String
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
