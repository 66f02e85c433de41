package notify

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/desertthunder/cinex/internal/shared"
)

// Identity is the push provider project this client registers with.
type Identity struct {
	APIKey    string `validate:"required"`
	ProjectID string `validate:"required,hostname_rfc1123"`
	SenderID  string `validate:"required,numeric"`
	AppID     string
}

// IdentityFromConfig reads the identity from the push section.
func IdentityFromConfig(cfg shared.PushConfig) Identity {
	return Identity{
		APIKey:    cfg.APIKey,
		ProjectID: cfg.ProjectID,
		SenderID:  cfg.SenderID,
		AppID:     cfg.AppID,
	}
}

// Validate checks that the identity is complete.
func (i Identity) Validate() error {
	if err := validator.New().Struct(i); err != nil {
		return fmt.Errorf("%w: push identity: %v", shared.ErrInvalidConfig, err)
	}
	return nil
}

// Registration is a validated identity bound to its message topic.
type Registration struct {
	Identity
	Topic    string
	ClientID string
}

// Register validates id and derives the topic "<project>.<sender>.messages".
func Register(id Identity) (Registration, error) {
	if err := id.Validate(); err != nil {
		return Registration{}, err
	}
	return Registration{
		Identity: id,
		Topic:    fmt.Sprintf("%s.%s.messages", id.ProjectID, id.SenderID),
		ClientID: shared.GenerateID(),
	}, nil
}
