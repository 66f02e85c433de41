package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/shared"
)

// Source delivers raw push payloads for a topic.
//
// Listen blocks until ctx ends (returning nil) or the source fails.
type Source interface {
	Listen(ctx context.Context, topic string, deliver func(ctx context.Context, payload []byte)) error
	Close() error
}

// Option configures a [Bridge].
type Option func(*Bridge)

// WithLogger sets the bridge logger.
func WithLogger(l *log.Logger) Option {
	return func(b *Bridge) { b.logger = l }
}

// WithFocus reports whether the foreground app has focus.
func WithFocus(focused func() bool) Option {
	return func(b *Bridge) { b.focused = focused }
}

// WithForeground receives messages that arrive while the app has focus.
func WithForeground(fn func(models.PushMessage)) Option {
	return func(b *Bridge) { b.foreground = fn }
}

// WithIcon replaces the default notification icon.
func WithIcon(icon string) Option {
	return func(b *Bridge) {
		if icon != "" {
			b.icon = icon
		}
	}
}

// Bridge relays background push messages to a [Displayer].
type Bridge struct {
	reg        Registration
	source     Source
	display    Displayer
	focused    func() bool
	foreground func(models.PushMessage)
	icon       string
	logger     *log.Logger
}

// NewBridge creates a bridge for reg.
func NewBridge(reg Registration, source Source, display Displayer, opts ...Option) *Bridge {
	b := &Bridge{
		reg:     reg,
		source:  source,
		display: display,
		focused: func() bool { return false },
		icon:    models.DefaultNotificationIcon,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = shared.NewLogger(nil)
	}
	b.logger = shared.WithLogger(b.logger, "topic", reg.Topic)
	return b
}

// Run listens until ctx ends. A source failure is returned wrapped in [shared.ErrPushSource].
func (b *Bridge) Run(ctx context.Context) error {
	b.logger.Info("listening for push messages", "client", b.reg.ClientID)
	err := b.source.Listen(ctx, b.reg.Topic, b.Handle)
	if err == nil || errors.Is(err, context.Canceled) {
		return nil
	}
	if errors.Is(err, shared.ErrPushSource) {
		return err
	}
	return fmt.Errorf("%w: %v", shared.ErrPushSource, err)
}

// Handle decodes one payload and shows it, or hands it to the foreground handler while focused.
func (b *Bridge) Handle(ctx context.Context, payload []byte) {
	var msg models.PushMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		b.logger.Warn("dropping malformed push message", "error", err)
		return
	}
	b.logger.Debug("received push message", "title", msg.Notification.Title)

	if b.focused() {
		if b.foreground != nil {
			b.foreground(msg)
		}
		return
	}

	n := Notification{
		Title: msg.Notification.Title,
		Body:  msg.Notification.Body,
		Icon:  msg.Notification.Image,
		Tag:   shared.GenerateID(),
	}
	if n.Icon == "" {
		n.Icon = b.icon
	}

	if err := b.display.Show(ctx, n); err != nil {
		b.logger.Error("failed to display notification", "error", err)
	}
}
