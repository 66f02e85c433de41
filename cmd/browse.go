package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/cinex/internal/shared"
	"github.com/desertthunder/cinex/internal/views"
)

func (r *Runner) loadBrowse(ctx context.Context) (*views.Browse, error) {
	if err := r.requireServices(); err != nil {
		return nil, err
	}
	b := views.NewBrowse(r.client, r.session, r.viewOptions()...)
	if err := b.Activate(ctx); err != nil {
		b.Deactivate()
		return nil, fmt.Errorf("%s: %w", views.BrowseLoadError, err)
	}
	return b, nil
}

// Browse prints the catalogue.
func (r *Runner) Browse(ctx context.Context, cmd *cli.Command) error {
	b, err := r.loadBrowse(ctx)
	if err != nil {
		return err
	}
	defer b.Deactivate()

	state := b.State()
	if cmd.Bool("json") {
		return r.writeJSON(state.Movies, true)
	}
	r.printMovies("Movies", state.Movies)
	return nil
}

// BrowseOpen opens a catalogue entry in the browser.
func (r *Runner) BrowseOpen(ctx context.Context, cmd *cli.Command) error {
	id, err := movieIDArg(cmd)
	if err != nil {
		return err
	}

	b, err := r.loadBrowse(ctx)
	if err != nil {
		return err
	}
	defer b.Deactivate()

	for _, m := range b.State().Movies {
		if m.ID == id {
			return r.openRoute(b.Open(m.ID, m.Premium))
		}
	}
	return fmt.Errorf("%w: %d", shared.ErrMovieNotFound, id)
}

// BrowseDelete deletes a movie. Supervisor only.
func (r *Runner) BrowseDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := movieIDArg(cmd)
	if err != nil {
		return err
	}

	b, err := r.loadBrowse(ctx)
	if err != nil {
		return err
	}
	defer b.Deactivate()

	if err := b.Delete(ctx, id); err != nil {
		return err
	}
	return r.writePlain("✓ %s\n", b.State().Toast)
}
