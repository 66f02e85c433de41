package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/notify"
	"github.com/desertthunder/cinex/internal/shared"
	"github.com/desertthunder/cinex/internal/ui"
)

// TUI launches the interactive terminal UI.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	return r.runTUI(ctx, cmd.String("start"), cmd.Bool("notify"))
}

func (r *Runner) runTUI(ctx context.Context, start string, withNotify bool) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	app := ui.NewApp(ctx, ui.Options{
		Client:  r.client,
		Session: r.session,
		Logger:  fileLogger,
		Opener:  ui.Opener(r.opener),
		Start:   start,
	})
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithReportFocus(), tea.WithContext(ctx))

	if withNotify {
		bridge, source, err := r.newBridge("", false,
			notify.WithFocus(app.Focused),
			notify.WithForeground(func(msg models.PushMessage) { p.Send(ui.PushMsg(msg)) }),
		)
		if err != nil {
			return err
		}
		defer source.Close()

		go func() {
			if err := bridge.Run(ctx); err != nil {
				fileLogger.Error("notification bridge stopped", "error", err)
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return app.Err()
}
