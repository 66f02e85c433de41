package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/cinex/internal/views"
)

// screen is one routed view inside [App]. Each screen wraps a views controller.
type screen interface {
	activate(ctx context.Context) tea.Cmd
	deactivate()
	updates() <-chan views.Update
	// sync rebuilds widget state from the controller after an update.
	sync()
	handleKey(ctx context.Context, msg tea.KeyMsg) tea.Cmd
	resize(width, height int)
	view(width int) string
	helpKeys() []key.Binding
}

// waitForUpdate blocks on a controller's update channel until done is closed.
func waitForUpdate(gen int, ch <-chan views.Update, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case u := <-ch:
			return viewUpdateMsg(gen, u)
		case <-done:
			return nil
		}
	}
}
