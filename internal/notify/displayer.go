package notify

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gen2brain/beeep"
)

// Notification is what a [Displayer] shows.
type Notification struct {
	Title string
	Body  string
	Icon  string
	Tag   string
}

// Displayer shows a notification to the user.
type Displayer interface {
	Show(ctx context.Context, n Notification) error
}

// DesktopDisplayer shows notifications through the platform notifier (beeep).
type DesktopDisplayer struct {
	notify func(title, body, icon string) error
}

// NewDesktopDisplayer creates a [DesktopDisplayer] for the running platform.
func NewDesktopDisplayer() *DesktopDisplayer {
	return &DesktopDisplayer{
		notify: func(title, body, icon string) error { return beeep.Notify(title, body, icon) },
	}
}

// Show hands n to the platform notifier.
func (d *DesktopDisplayer) Show(ctx context.Context, n Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := d.notify(n.Title, n.Body, n.Icon); err != nil {
		return fmt.Errorf("failed to show notification: %w", err)
	}
	return nil
}

// LogDisplayer writes notifications to a logger, for headless hosts.
type LogDisplayer struct {
	logger *log.Logger
}

// NewLogDisplayer creates a [LogDisplayer].
func NewLogDisplayer(logger *log.Logger) *LogDisplayer {
	return &LogDisplayer{logger: logger}
}

func (d *LogDisplayer) Show(_ context.Context, n Notification) error {
	d.logger.Info(n.Title, "body", n.Body, "icon", n.Icon, "tag", n.Tag)
	return nil
}
