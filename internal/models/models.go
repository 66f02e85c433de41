package models

import (
	"fmt"
	"time"
)

// Model defines the base interface for all persistent models.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// SessionEntry is a single persisted session value keyed by name (token, plan, user).
type SessionEntry struct {
	key       string
	value     string
	createdAt time.Time
	updatedAt time.Time
}

// NewSessionEntry creates a [SessionEntry] stamped with the current time.
func NewSessionEntry(key, value string) *SessionEntry {
	now := time.Now()
	return &SessionEntry{key: key, value: value, createdAt: now, updatedAt: now}
}

func (e *SessionEntry) ID() string           { return e.key }
func (e *SessionEntry) Key() string          { return e.key }
func (e *SessionEntry) Value() string        { return e.value }
func (e *SessionEntry) CreatedAt() time.Time { return e.createdAt }
func (e *SessionEntry) UpdatedAt() time.Time { return e.updatedAt }

func (e *SessionEntry) SetValue(v string)        { e.value = v }
func (e *SessionEntry) SetCreatedAt(t time.Time) { e.createdAt = t }
func (e *SessionEntry) SetUpdatedAt(t time.Time) { e.updatedAt = t }

// Validate requires a non-empty key.
func (e *SessionEntry) Validate() error {
	if e.key == "" {
		return fmt.Errorf("session entry key is required")
	}
	return nil
}
