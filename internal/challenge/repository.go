package challenge

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// Repository is a database-backed repository for challenge progress.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Save replaces every stored challenge of userID with challenges.
func (r *Repository) Save(ctx context.Context, userID string, challenges []Challenge) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM challenges WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to clear challenges: %w", err)
	}
	for i, c := range challenges {
		data, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to marshal challenge: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO challenges (id, user_id, position, data) VALUES (?, ?, ?, ?)`,
			c.ID.String(), userID, i, string(data),
		); err != nil {
			return fmt.Errorf("failed to insert challenge %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit challenges: %w", err)
	}
	return nil
}

// Load returns the stored challenges of userID in saved order.
func (r *Repository) Load(ctx context.Context, userID string) ([]Challenge, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT data FROM challenges WHERE user_id = ? ORDER BY position`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load challenges: %w", err)
	}
	defer rows.Close()

	var challenges []Challenge
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan challenge: %w", err)
		}
		var c Challenge
		if err := json.Unmarshal([]byte(data), &c); err != nil {
			return nil, fmt.Errorf("failed to unmarshal challenge: %w", err)
		}
		challenges = append(challenges, c)
	}
	return challenges, rows.Err()
}
