package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/cinex/internal/notify"
)

// newBridge builds a bridge from the push config. provider overrides push.provider when set.
func (r *Runner) newBridge(provider string, logOnly bool, opts ...notify.Option) (*notify.Bridge, notify.Source, error) {
	cfg := r.config.Push
	if provider != "" {
		cfg.Provider = provider
	}

	reg, err := notify.Register(notify.IdentityFromConfig(cfg))
	if err != nil {
		return nil, nil, err
	}

	source, err := notify.NewSource(cfg, r.logger)
	if err != nil {
		return nil, nil, err
	}

	var display notify.Displayer = notify.NewDesktopDisplayer()
	if logOnly {
		display = notify.NewLogDisplayer(r.logger)
	}

	opts = append([]notify.Option{notify.WithLogger(r.logger), notify.WithIcon(cfg.Icon)}, opts...)
	return notify.NewBridge(reg, source, display, opts...), source, nil
}

// NotifyListen relays push messages until interrupted.
func (r *Runner) NotifyListen(ctx context.Context, cmd *cli.Command) error {
	bridge, source, err := r.newBridge(cmd.String("provider"), cmd.Bool("log-only"))
	if err != nil {
		return err
	}
	defer source.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.writePlain("Listening for push messages (Ctrl+C to stop)...\n")
	if err := bridge.Run(ctx); err != nil {
		return fmt.Errorf("notification bridge stopped: %w", err)
	}
	return r.writePlain("Stopped.\n")
}
