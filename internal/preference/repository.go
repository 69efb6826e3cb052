package preference

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository persists the taste profile as a JSON document.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Save inserts or replaces the profile stored for userID.
func (r *Repository) Save(ctx context.Context, userID string, p Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal preference profile: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO preference_profiles (user_id, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		userID, string(data), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save preference profile: %w", err)
	}
	return nil
}

// Load returns the stored profile, or nil when none has been saved.
func (r *Repository) Load(ctx context.Context, userID string) (*Profile, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM preference_profiles WHERE user_id = ?`, userID).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load preference profile: %w", err)
	}

	p := Empty()
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preference profile: %w", err)
	}
	if p.LikedMeals == nil {
		p.LikedMeals = map[uuid.UUID]struct{}{}
	}
	if p.DislikedMeals == nil {
		p.DislikedMeals = map[uuid.UUID]struct{}{}
	}
	return &p, nil
}
