package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/cinex/internal/shared"
	"github.com/desertthunder/cinex/internal/views"
)

// Dashboard opens the dashboard screen, or prints it once with --plain or --json.
func (r *Runner) Dashboard(ctx context.Context, cmd *cli.Command) error {
	if !cmd.Bool("plain") && !cmd.Bool("json") {
		return r.runTUI(ctx, views.RouteDashboard, false)
	}
	if err := r.requireServices(); err != nil {
		return err
	}

	dash := views.NewDashboard(r.client, r.session, r.viewOptions()...)
	defer dash.Deactivate()

	if err := dash.Activate(ctx); err != nil {
		r.logger.Debug("dashboard loaded with errors", "error", err)
	}

	state := dash.State()
	if state.Redirect == views.RouteLogin {
		return fmt.Errorf("%w: run `cinex auth login` first", shared.ErrNotAuthenticated)
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{
			"user":         state.User,
			"subscription": state.Subscription,
			"days_left":    state.DaysLeftValue(),
			"error":        state.Error,
		}, true)
	}

	r.printDashboard(state)
	return nil
}

func (r *Runner) printDashboard(state views.DashboardState) {
	r.writePlainHeader("My Dashboard")

	if state.Error != "" {
		r.writePlain("%s\n", state.Error)
		return
	}

	if u := state.User; u != nil {
		r.writePlain("Name:  %s\n", u.DisplayName())
		if u.Email != "" {
			r.writePlain("Email: %s\n", u.Email)
		}
		r.writePlain("Role:  %s\n", u.Role.Label())
	}

	sub := state.Subscription
	if sub == nil {
		r.writePlainln(views.NoSubscriptionText)
		return
	}

	r.writePlainln("%s Plan (%s)", sub.PlanType.Label(), sub.Status)
	r.writePlain("Started: %s\n", sub.StartLabel())
	r.writePlain("Ends:    %s\n", sub.EndLabel())
	if state.HasDaysLeft {
		r.writePlain("%s\n", state.DaysLeftLabel())
	}
}

// DashboardCancel cancels the active subscription after confirmation.
func (r *Runner) DashboardCancel(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	dash := views.NewDashboard(r.client, r.session, r.viewOptions()...)
	defer dash.Deactivate()

	if err := dash.Activate(ctx); err != nil {
		return fmt.Errorf("failed to load subscription: %w", err)
	}
	if dash.State().Redirect == views.RouteLogin {
		return fmt.Errorf("%w: run `cinex auth login` first", shared.ErrNotAuthenticated)
	}

	if !dash.OpenCancelDialog() {
		return r.writePlain("%s\n", views.NoSubscriptionText)
	}

	if !cmd.Bool("yes") && !r.confirm(cmd, views.ConfirmCancelBody) {
		dash.CloseDialog()
		return r.writePlain("Kept your subscription.\n")
	}

	if err := dash.Confirm(ctx); err != nil {
		r.writePlain("✗ %s\n", dash.State().Alert)
		return err
	}
	return r.writePlain("✓ %s\n", dash.State().Notice)
}

// confirm asks a yes/no question on the command's reader.
func (r *Runner) confirm(cmd *cli.Command, question string) bool {
	r.writePlain("%s [y/N] ", question)
	answer, _ := bufio.NewReader(cmd.Root().Reader).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
