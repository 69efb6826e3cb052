package health

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// Repository is an append-only store of meal log entries.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Append stores one entry for userID.
func (r *Repository) Append(ctx context.Context, userID string, entry LogEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal meal log entry: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO meal_log_entries (id, user_id, consumed_at, data) VALUES (?, ?, ?, ?)`,
		entry.ID.String(), userID, entry.ConsumedAt.UTC(), string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to append meal log entry %s: %w", entry.ID, err)
	}
	return nil
}

// List returns every entry of userID, oldest first.
func (r *Repository) List(ctx context.Context, userID string) ([]LogEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT data FROM meal_log_entries WHERE user_id = ? ORDER BY consumed_at, rowid`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal log entries: %w", err)
	}
	defer rows.Close()

	var entries []LogEntry
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan meal log entry: %w", err)
		}
		var entry LogEntry
		if err := json.Unmarshal([]byte(data), &entry); err != nil {
			return nil, fmt.Errorf("failed to unmarshal meal log entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
