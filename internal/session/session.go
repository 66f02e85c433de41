// Package session holds the signed-in client state that outlives a single
// command: the bearer token, the active plan tier and a cached copy of the
// user profile.
//
// Values are read fresh on every call, so two commands sharing a database see
// each other's writes.
package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/shared"
)

// Keys under which values are persisted.
const (
	KeyToken = "token"
	KeyPlan  = "plan"
	KeyUser  = "user"
)

// Store persists session entries. [repositories.SessionRepository] satisfies it.
type Store interface {
	Get(key string) (*models.SessionEntry, error)
	Put(entry *models.SessionEntry) error
	Delete(key string) error
}

// Session is a typed view over a [Store].
type Session struct {
	store  Store
	logger *log.Logger
}

// New creates a Session backed by store.
func New(store Store, logger *log.Logger) *Session {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Session{store: store, logger: logger}
}

func (s *Session) get(key string) (string, bool) {
	entry, err := s.store.Get(key)
	if err != nil {
		if !errors.Is(err, shared.ErrSessionKeyNotFound) {
			s.logger.Warn("failed to read session entry", "key", key, "error", err)
		}
		return "", false
	}
	return entry.Value(), true
}

func (s *Session) put(key, value string) error {
	if err := s.store.Put(models.NewSessionEntry(key, value)); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

func (s *Session) remove(key string) error {
	if err := s.store.Delete(key); err != nil && !errors.Is(err, shared.ErrSessionKeyNotFound) {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

// Token returns the stored bearer token, or "" when signed out.
func (s *Session) Token() string {
	token, _ := s.get(KeyToken)
	return token
}

// Authenticated reports whether a token is present.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// SetToken stores the bearer token.
func (s *Session) SetToken(token string) error {
	if token == "" {
		return fmt.Errorf("%w: empty token", shared.ErrInvalidInput)
	}
	return s.put(KeyToken, token)
}

// Plan returns the persisted plan tier of the active subscription.
func (s *Session) Plan() (models.PlanType, bool) {
	plan, ok := s.get(KeyPlan)
	if !ok || plan == "" {
		return "", false
	}
	return models.PlanType(plan), true
}

// SetPlan persists the plan tier.
func (s *Session) SetPlan(plan models.PlanType) error {
	return s.put(KeyPlan, string(plan))
}

// ClearPlan removes the plan tier. Missing entries are not an error.
func (s *Session) ClearPlan() error {
	return s.remove(KeyPlan)
}

// CachedUser decodes the cached {user: {...}} profile.
//
// A malformed cache entry is logged and treated as absent.
func (s *Session) CachedUser() (*models.User, bool) {
	raw, ok := s.get(KeyUser)
	if !ok {
		return nil, false
	}

	var envelope models.UserEnvelope
	if err := json.Unmarshal([]byte(raw), &envelope); err != nil {
		s.logger.Warn("ignoring malformed cached user", "error", err)
		return nil, false
	}
	return &envelope.User, true
}

// SetCachedUser stores user in the {user: {...}} form.
func (s *Session) SetCachedUser(user models.User) error {
	data, err := json.Marshal(models.UserEnvelope{User: user})
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	return s.put(KeyUser, string(data))
}

// Clear removes every session value (sign out).
func (s *Session) Clear() error {
	var errs []error
	for _, key := range []string{KeyToken, KeyPlan, KeyUser} {
		if err := s.remove(key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
