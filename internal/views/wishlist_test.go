package views

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/shared"
	tu "github.com/desertthunder/cinex/internal/testing"
)

func wishlistMovies() []models.Movie {
	return []models.Movie{
		models.NewMovie(models.Movie{ID: 41, Title: "Alien"}),
		models.NewMovie(models.Movie{ID: 42, Title: "Brazil", Premium: true}),
		models.NewMovie(models.Movie{ID: 43, Title: "Chinatown"}),
	}
}

func ids(movies []models.Movie) []int {
	out := make([]int, len(movies))
	for i, m := range movies {
		out[i] = m.ID
	}
	return out
}

func TestWishlist(t *testing.T) {
	ctx := context.Background()

	t.Run("Activate loads movies", func(t *testing.T) {
		client := &tu.MockClient{Wishlist: wishlistMovies()}
		w := NewWishlist(client, newTestSession(t, "tok"), quiet())
		defer w.Deactivate()

		require.NoError(t, w.Activate(ctx))

		state := w.State()
		assert.Equal(t, []int{41, 42, 43}, ids(state.Movies))
		assert.False(t, state.Empty())
		assert.Empty(t, state.Error)
	})

	t.Run("Activate failure", func(t *testing.T) {
		client := &tu.MockClient{WishlistErr: shared.ErrAPIRequest}
		w := NewWishlist(client, newTestSession(t, "tok"), quiet())
		defer w.Deactivate()

		assert.ErrorIs(t, w.Activate(ctx), shared.ErrAPIRequest)

		state := w.State()
		assert.Equal(t, WishlistLoadError, state.Error)
		assert.False(t, state.Empty())
	})

	t.Run("empty wishlist", func(t *testing.T) {
		w := NewWishlist(&tu.MockClient{}, newTestSession(t, "tok"), quiet())
		defer w.Deactivate()

		require.NoError(t, w.Activate(ctx))
		assert.True(t, w.State().Empty())
	})

	t.Run("Remove keeps the order of the rest", func(t *testing.T) {
		client := &tu.MockClient{Wishlist: wishlistMovies()}
		w := NewWishlist(client, newTestSession(t, "tok"), quiet())
		defer w.Deactivate()
		require.NoError(t, w.Activate(ctx))

		require.NoError(t, w.Remove(ctx, 42))

		state := w.State()
		assert.Equal(t, []int{41, 43}, ids(state.Movies))
		assert.Equal(t, WishlistRemoved, state.Toast)
		assert.Equal(t, []int{42}, client.Toggled)
		assert.Equal(t, []string{"tok"}, client.Tokens)

		w.DismissToast()
		assert.Empty(t, w.State().Toast)
	})

	t.Run("Remove failure leaves the list untouched", func(t *testing.T) {
		client := &tu.MockClient{Wishlist: wishlistMovies(), ToggleErr: shared.ErrAPIRequest}
		w := NewWishlist(client, newTestSession(t, "tok"), quiet())
		defer w.Deactivate()
		require.NoError(t, w.Activate(ctx))

		assert.ErrorIs(t, w.Remove(ctx, 42), shared.ErrAPIRequest)

		state := w.State()
		assert.Equal(t, []int{41, 42, 43}, ids(state.Movies))
		assert.Equal(t, WishlistRemoveError, state.Toast)
	})

	t.Run("Remove needs a token", func(t *testing.T) {
		client := &tu.MockClient{Wishlist: wishlistMovies()}
		w := NewWishlist(client, newTestSession(t, ""), quiet())
		defer w.Deactivate()
		require.NoError(t, w.Activate(ctx))

		assert.ErrorIs(t, w.Remove(ctx, 42), shared.ErrNotAuthenticated)
		assert.Zero(t, client.Calls("ToggleWishlist"))
	})

	t.Run("Remove on an inactive view", func(t *testing.T) {
		w := NewWishlist(&tu.MockClient{}, newTestSession(t, "tok"), quiet())
		assert.ErrorIs(t, w.Remove(ctx, 1), ErrInactive)
	})

	t.Run("state snapshots are independent", func(t *testing.T) {
		w := NewWishlist(&tu.MockClient{Wishlist: wishlistMovies()}, newTestSession(t, "tok"), quiet())
		defer w.Deactivate()
		require.NoError(t, w.Activate(ctx))

		snapshot := w.State()
		snapshot.Movies[0].Title = "changed"
		assert.Equal(t, "Alien", w.State().Movies[0].Title)
	})

	t.Run("Open gates premium titles", func(t *testing.T) {
		sess := newTestSession(t, "tok")
		w := NewWishlist(&tu.MockClient{}, sess, quiet())

		assert.Equal(t, RouteSubscription, w.Open(42, true))
		require.NoError(t, sess.SetPlan(models.PlanDaily))
		assert.Equal(t, "/movie/42", w.Open(42, true))
		assert.Equal(t, RouteHome, w.Back())
	})
}
