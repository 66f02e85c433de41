package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/cinex/internal/shared"
)

// AuthLogin signs in, then stores the token and a cached copy of the profile.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	email := cmd.String("email")
	password := cmd.String("password")
	if password == "" {
		return fmt.Errorf("%w: --password or CINEX_PASSWORD is required", shared.ErrMissingArgument)
	}

	r.logger.Info("signing in", "email", email)

	result, err := r.client.SignIn(ctx, email, password)
	if err != nil {
		return err
	}

	if err := r.session.SetToken(result.Token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	if err := r.session.SetCachedUser(result.User); err != nil {
		r.logger.Warn("failed to cache profile", "error", err)
	}

	return r.writePlain("✓ Signed in as %s\n", result.User.DisplayName())
}

// AuthLogout clears the session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}
	if err := r.session.Clear(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return r.writePlain("✓ Signed out\n")
}

// AuthStatus prints the cached profile and checks the token against the API.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.requireServices(); err != nil {
		return err
	}

	if !r.session.Authenticated() {
		return r.writePlain("✗ Not signed in. Run `cinex auth login`.\n")
	}

	if user, ok := r.session.CachedUser(); ok {
		r.writePlain("Signed in as: %s (%s)\n", user.DisplayName(), user.Role.Label())
	}
	if plan, ok := r.session.Plan(); ok {
		r.writePlain("Plan: %s\n", plan.Label())
	}

	user, err := r.client.FetchUserDetails(ctx)
	switch {
	case errors.Is(err, shared.ErrNotAuthenticated):
		return r.writePlain("Token: ✗ rejected, sign in again\n")
	case err != nil:
		return fmt.Errorf("failed to verify token: %w", err)
	}

	if err := r.session.SetCachedUser(*user); err != nil {
		r.logger.Warn("failed to refresh cached profile", "error", err)
	}
	return r.writePlain("Token: ✓ valid\n")
}
