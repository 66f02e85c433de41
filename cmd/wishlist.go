package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/cinex/internal/formatter"
	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/shared"
	"github.com/desertthunder/cinex/internal/views"
)

func movieIDArg(cmd *cli.Command) (int, error) {
	raw := cmd.StringArg("id")
	if raw == "" {
		return 0, fmt.Errorf("%w: movie id", shared.ErrMissingArgument)
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: movie id must be a positive integer, got %q", shared.ErrInvalidArgument, raw)
	}
	return id, nil
}

// loadWishlist activates a wishlist controller. The caller deactivates it.
func (r *Runner) loadWishlist(ctx context.Context) (*views.Wishlist, error) {
	if err := r.requireServices(); err != nil {
		return nil, err
	}
	wl := views.NewWishlist(r.client, r.session, r.viewOptions()...)
	if err := wl.Activate(ctx); err != nil {
		wl.Deactivate()
		return nil, fmt.Errorf("%s: %w", views.WishlistLoadError, err)
	}
	return wl, nil
}

func (r *Runner) printMovies(title string, movies []models.Movie) {
	r.writePlainHeader(title)
	for _, m := range movies {
		premium := ""
		if m.Premium {
			premium = " ♛"
		}
		r.writePlain("%5d  %s (%s)%s  %s  ★ %s\n", m.ID, m.Title, m.YearLabel(), premium, m.Director, m.RatingLabel())
	}
	r.writePlainln("Total: %d", len(movies))
}

// WishlistList prints the wishlist.
func (r *Runner) WishlistList(ctx context.Context, cmd *cli.Command) error {
	wl, err := r.loadWishlist(ctx)
	if err != nil {
		return err
	}
	defer wl.Deactivate()

	state := wl.State()
	if cmd.Bool("json") {
		return r.writeJSON(state.Movies, true)
	}
	if state.Empty() {
		return r.writePlain("%s\n", views.WishlistEmptyText)
	}

	r.printMovies("My WishList", state.Movies)
	return nil
}

// WishlistRemove removes one movie once the API confirms.
func (r *Runner) WishlistRemove(ctx context.Context, cmd *cli.Command) error {
	id, err := movieIDArg(cmd)
	if err != nil {
		return err
	}

	wl, err := r.loadWishlist(ctx)
	if err != nil {
		return err
	}
	defer wl.Deactivate()

	if err := wl.Remove(ctx, id); err != nil {
		r.writePlain("✗ %s\n", views.WishlistRemoveError)
		return err
	}
	return r.writePlain("✓ %s\n", wl.State().Toast)
}

// WishlistOpen opens a wishlist entry, routing premium titles without a plan to checkout.
func (r *Runner) WishlistOpen(ctx context.Context, cmd *cli.Command) error {
	id, err := movieIDArg(cmd)
	if err != nil {
		return err
	}

	wl, err := r.loadWishlist(ctx)
	if err != nil {
		return err
	}
	defer wl.Deactivate()

	for _, m := range wl.State().Movies {
		if m.ID == id {
			return r.openRoute(wl.Open(m.ID, m.Premium))
		}
	}
	return fmt.Errorf("%w: %d is not on your wishlist", shared.ErrMovieNotFound, id)
}

// WishlistExport writes the wishlist in the requested format.
func (r *Runner) WishlistExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	wl, err := r.loadWishlist(ctx)
	if err != nil {
		return err
	}
	defer wl.Deactivate()

	owner := ""
	if user, ok := r.session.CachedUser(); ok {
		owner = user.DisplayName()
	}
	export := formatter.NewWishlistExport(owner, wl.State().Movies, r.now())

	if format == formatter.FormatMarkdown {
		result, err := formatter.WriteMarkdownExport(ctx, export, cmd.String("output"), cmd.Bool("posters"), nil)
		if err != nil {
			return err
		}
		r.logger.Info("exported wishlist", "dir", result.Directory, "posters", result.Posters)
		return r.writePlain("✓ Exported %d movies to %s\n", len(export.Movies), result.Directory)
	}

	path, err := formatter.WriteExport(export, format, cmd.String("output"))
	if err != nil {
		return err
	}
	r.logger.Info("exported wishlist", "file", path, "format", format)
	return r.writePlain("✓ Exported %d movies to %s\n", len(export.Movies), path)
}

// openRoute hands a route to the opener and reports it.
func (r *Runner) openRoute(route string) error {
	if err := r.opener(route); err != nil {
		return fmt.Errorf("failed to open %s: %w", route, err)
	}
	return r.writePlain("Opened %s\n", route)
}
