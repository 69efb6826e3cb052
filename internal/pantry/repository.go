package pantry

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// Repository is a database-backed repository for pantry items.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Save replaces every stored pantry item of userID with items.
func (r *Repository) Save(ctx context.Context, userID string, items []Item) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM pantry_items WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to clear pantry items: %w", err)
	}
	for i, item := range items {
		data, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to marshal pantry item: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO pantry_items (id, user_id, position, data) VALUES (?, ?, ?, ?)`,
			item.ID.String(), userID, i, string(data),
		); err != nil {
			return fmt.Errorf("failed to insert pantry item %s: %w", item.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit pantry items: %w", err)
	}
	return nil
}

// Load returns the stored pantry of userID in saved order.
func (r *Repository) Load(ctx context.Context, userID string) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT data FROM pantry_items WHERE user_id = ? ORDER BY position`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pantry items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan pantry item: %w", err)
		}
		var item Item
		if err := json.Unmarshal([]byte(data), &item); err != nil {
			return nil, fmt.Errorf("failed to unmarshal pantry item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
