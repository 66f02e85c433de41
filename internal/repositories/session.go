package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/shared"
)

var _ models.Repository[*models.SessionEntry] = (*SessionRepository)(nil)

// SessionRepository implements [models.Repository] for [models.SessionEntry] persistence.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new [SessionRepository] with the given database connection
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new entry. It fails if the key already exists.
func (r *SessionRepository) Create(entry *models.SessionEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO session_entries (key, value, created_at, updated_at) VALUES (?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, entry.Key(), entry.Value(), entry.CreatedAt(), entry.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert session entry: %w", err)
	}

	return nil
}

// Get retrieves an entry by key. Missing keys return [shared.ErrSessionKeyNotFound].
func (r *SessionRepository) Get(key string) (*models.SessionEntry, error) {
	query := `
		SELECT key, value, created_at, updated_at
		FROM session_entries
		WHERE key = ?
	`

	entry, err := scanEntry(r.db.QueryRow(query, key))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrSessionKeyNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session entry: %w", err)
	}

	return entry, nil
}

// Update replaces the value of an existing entry
func (r *SessionRepository) Update(entry *models.SessionEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	entry.SetUpdatedAt(now)

	result, err := r.db.Exec(`UPDATE session_entries SET value = ?, updated_at = ? WHERE key = ?`, entry.Value(), now, entry.Key())
	if err != nil {
		return fmt.Errorf("failed to update session entry: %w", err)
	}

	return requireAffected(result, fmt.Errorf("%w: %s", shared.ErrSessionKeyNotFound, entry.Key()))
}

// Put inserts or replaces an entry, keeping the original creation time.
func (r *SessionRepository) Put(entry *models.SessionEntry) error {
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	entry.SetUpdatedAt(now)

	query := `
		INSERT INTO session_entries (key, value, created_at, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := r.db.Exec(query, entry.Key(), entry.Value(), entry.CreatedAt(), now); err != nil {
		return fmt.Errorf("failed to upsert session entry: %w", err)
	}

	return nil
}

// Delete removes an entry by key
func (r *SessionRepository) Delete(key string) error {
	result, err := r.db.Exec(`DELETE FROM session_entries WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete session entry: %w", err)
	}

	return requireAffected(result, fmt.Errorf("%w: %s", shared.ErrSessionKeyNotFound, key))
}

// List retrieves entries ordered by key. The "key" criterion filters to a single key.
func (r *SessionRepository) List(criteria map[string]any) ([]*models.SessionEntry, error) {
	query := `
		SELECT key, value, created_at, updated_at
		FROM session_entries
	`

	args := []any{}

	if key, ok := criteria["key"].(string); ok && key != "" {
		query += " WHERE key = ?"
		args = append(args, key)
	}

	query += " ORDER BY key ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query session entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.SessionEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return entries, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*models.SessionEntry, error) {
	var (
		key       string
		value     string
		createdAt time.Time
		updatedAt time.Time
	)

	if err := s.Scan(&key, &value, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	entry := models.NewSessionEntry(key, value)
	entry.SetCreatedAt(createdAt)
	entry.SetUpdatedAt(updatedAt)
	return entry, nil
}
