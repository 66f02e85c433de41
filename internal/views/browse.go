package views

import (
	"context"
	"fmt"
	"slices"

	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/services"
	"github.com/desertthunder/cinex/internal/session"
	"github.com/desertthunder/cinex/internal/shared"
)

// Browse messages.
const (
	BrowseLoadError   = "Failed to load movies"
	MovieDeleted      = "Movie deleted"
	MovieDeleteFailed = "Failed to delete movie"
)

// BrowseState is a snapshot of the movie catalogue screen.
type BrowseState struct {
	Movies     []models.Movie
	Privileged bool
	Loading    bool
	Error      string
	Toast      string
}

// Browse controls the movie catalogue screen.
type Browse struct {
	base
	client  services.Client
	session *session.Session
	state   BrowseState
}

// NewBrowse creates a catalogue controller.
func NewBrowse(client services.Client, sess *session.Session, opts ...Option) *Browse {
	b := &Browse{client: client, session: sess}
	b.setup("browse", opts)
	return b
}

// State returns a copy of the current state.
func (b *Browse) State() BrowseState {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.state
	s.Movies = slices.Clone(s.Movies)
	return s
}

// Activate loads the catalogue. Privilege comes from the cached profile.
func (b *Browse) Activate(ctx context.Context) error {
	lifetime := b.begin(ctx)

	cached, _ := b.session.CachedUser()
	privileged := cached.Privileged()

	b.apply(lifetime, Update{Event: EventLoading}, func() {
		b.state = BrowseState{Loading: true, Privileged: privileged}
	})

	resp, err := b.client.ListMovies(lifetime)
	if err != nil {
		b.apply(lifetime, Update{Event: EventFailed, Message: BrowseLoadError}, func() {
			b.logger.Error("failed to list movies", "error", err)
			b.state = BrowseState{Error: BrowseLoadError, Privileged: privileged}
		})
		return err
	}

	b.apply(lifetime, Update{Event: EventLoaded}, func() {
		b.state = BrowseState{Movies: resp.Movies(), Privileged: privileged}
	})
	return nil
}

// Delete removes a movie from the catalogue. Supervisor only.
func (b *Browse) Delete(ctx context.Context, movieID int) error {
	lifetime, err := b.lifetime()
	if err != nil {
		return err
	}

	if !b.State().Privileged {
		return shared.ErrForbidden
	}

	reqCtx, cancel := bind(ctx, lifetime)
	defer cancel()

	if err := b.client.DeleteMovie(reqCtx, movieID); err != nil {
		b.apply(lifetime, Update{Event: EventToast, Message: MovieDeleteFailed}, func() {
			b.logger.Error("failed to delete movie", "movie_id", movieID, "error", err)
			b.state.Toast = MovieDeleteFailed
		})
		return fmt.Errorf("delete movie %d: %w", movieID, err)
	}

	b.apply(lifetime, Update{Event: EventRemoved, Message: MovieDeleted}, func() {
		b.state.Movies = slices.DeleteFunc(b.state.Movies, func(m models.Movie) bool {
			return m.ID == movieID
		})
		b.state.Toast = MovieDeleted
	})
	return nil
}

// Open resolves the route for a catalogue entry.
func (b *Browse) Open(movieID int, premium bool) string {
	plan, _ := b.session.Plan()
	return OpenMovie(movieID, premium, plan)
}

// Edit returns the admin route for editing a movie. Supervisor only.
func (b *Browse) Edit(movieID int) (string, error) {
	if !b.State().Privileged {
		return "", shared.ErrForbidden
	}
	return fmt.Sprintf("%s?edit=%d", RouteAdmin, movieID), nil
}

// DismissToast clears the toast.
func (b *Browse) DismissToast() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state.Toast = ""
}

// Deactivate ends the view lifetime.
func (b *Browse) Deactivate() {
	b.end()
}
