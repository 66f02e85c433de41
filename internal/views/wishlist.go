package views

import (
	"context"
	"slices"

	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/services"
	"github.com/desertthunder/cinex/internal/session"
	"github.com/desertthunder/cinex/internal/shared"
)

// Wishlist messages.
const (
	WishlistLoadError   = "Failed to load movies"
	WishlistEmptyText   = "Your wishlist is empty"
	WishlistRemoved     = "Movie removed from WishList"
	WishlistRemoveError = "Failed to remove movie from WishList"
)

// WishlistState is a snapshot of the wishlist screen.
type WishlistState struct {
	Movies  []models.Movie
	Loading bool
	Error   string
	Toast   string
}

// Empty reports whether a successful load returned no movies.
func (s WishlistState) Empty() bool {
	return !s.Loading && s.Error == "" && len(s.Movies) == 0
}

// Wishlist controls the wishlist screen.
type Wishlist struct {
	base
	client  services.Client
	session *session.Session
	state   WishlistState
}

// NewWishlist creates a wishlist controller.
func NewWishlist(client services.Client, sess *session.Session, opts ...Option) *Wishlist {
	w := &Wishlist{client: client, session: sess}
	w.setup("wishlist", opts)
	return w
}

// State returns a copy of the current state.
func (w *Wishlist) State() WishlistState {
	w.mu.Lock()
	defer w.mu.Unlock()
	s := w.state
	s.Movies = slices.Clone(s.Movies)
	return s
}

// Activate loads the wishlist.
func (w *Wishlist) Activate(ctx context.Context) error {
	lifetime := w.begin(ctx)

	w.apply(lifetime, Update{Event: EventLoading}, func() {
		w.state = WishlistState{Loading: true}
	})

	resp, err := w.client.GetWishlistMovies(lifetime)
	if err != nil {
		w.apply(lifetime, Update{Event: EventFailed, Message: WishlistLoadError}, func() {
			w.logger.Error("failed to load wishlist", "error", err)
			w.state = WishlistState{Error: WishlistLoadError}
		})
		return err
	}

	w.apply(lifetime, Update{Event: EventLoaded}, func() {
		w.state = WishlistState{Movies: resp.Movies()}
	})
	return nil
}

// Remove toggles movieID off the wishlist and drops it from the list once the API confirms.
//
// A failed request leaves the list untouched and sets the failure toast.
func (w *Wishlist) Remove(ctx context.Context, movieID int) error {
	lifetime, err := w.lifetime()
	if err != nil {
		return err
	}

	token := w.session.Token()
	if token == "" {
		return shared.ErrNotAuthenticated
	}

	reqCtx, cancel := bind(ctx, lifetime)
	defer cancel()

	if err := w.client.ToggleWishlist(reqCtx, movieID, token); err != nil {
		w.apply(lifetime, Update{Event: EventToast, Message: WishlistRemoveError}, func() {
			w.logger.Error("failed to remove movie from wishlist", "movie_id", movieID, "error", err)
			w.state.Toast = WishlistRemoveError
		})
		return err
	}

	w.apply(lifetime, Update{Event: EventRemoved, Message: WishlistRemoved}, func() {
		w.state.Movies = slices.DeleteFunc(w.state.Movies, func(m models.Movie) bool {
			return m.ID == movieID
		})
		w.state.Toast = WishlistRemoved
	})
	return nil
}

// Open resolves the route for a wishlist entry.
func (w *Wishlist) Open(movieID int, premium bool) string {
	plan, _ := w.session.Plan()
	return OpenMovie(movieID, premium, plan)
}

// DismissToast clears the toast.
func (w *Wishlist) DismissToast() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.state.Toast = ""
}

// Back returns the route of the previous screen.
func (w *Wishlist) Back() string { return RouteHome }

// Deactivate ends the view lifetime.
func (w *Wishlist) Deactivate() {
	w.end()
}
