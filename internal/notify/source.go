package notify

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/cinex/internal/shared"
)

// NewSource builds the source named by cfg.Provider.
func NewSource(cfg shared.PushConfig, logger *log.Logger) (Source, error) {
	switch cfg.Provider {
	case "redis":
		return NewRedisSource(cfg.Redis), nil
	case "amqp":
		return NewAMQPSource(cfg.AMQP), nil
	case "webhook", "":
		return NewWebhookSource(cfg.Webhook, logger), nil
	default:
		return nil, fmt.Errorf("%w: unknown push provider %q", shared.ErrInvalidConfig, cfg.Provider)
	}
}
