package ui

import (
	"context"
	"io"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/session"
	"github.com/desertthunder/cinex/internal/shared"
	tu "github.com/desertthunder/cinex/internal/testing"
	"github.com/desertthunder/cinex/internal/views"
)

// exec runs cmd and flattens batches into the messages they produce.
func exec(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, exec(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// feed sends msgs to the app and returns the commands it produced.
func feed(a *App, msgs ...tea.Msg) []tea.Cmd {
	var cmds []tea.Cmd
	for _, msg := range msgs {
		_, cmd := a.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

type openerRecorder struct {
	mu     sync.Mutex
	routes []string
}

func (o *openerRecorder) open(route string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.routes = append(o.routes, route)
	return nil
}

func newTestApp(t *testing.T, client *tu.MockClient, token, start string) (*App, *openerRecorder) {
	t.Helper()
	logger := log.New(io.Discard)
	sess := session.New(tu.NewMemoryStore(), logger)
	if token != "" {
		require.NoError(t, sess.SetToken(token))
	}
	opener := &openerRecorder{}
	a := NewApp(context.Background(), Options{
		Client:  client,
		Session: sess,
		Logger:  logger,
		Opener:  opener.open,
		Start:   start,
	})
	t.Cleanup(a.Close)
	feed(a, tea.WindowSizeMsg{Width: 120, Height: 40})
	return a, opener
}

func TestApp(t *testing.T) {
	wishlist := []models.Movie{
		models.NewMovie(models.Movie{ID: 1, Title: "Alien", Premium: true}),
		models.NewMovie(models.Movie{ID: 2, Title: "Brazil"}),
	}

	t.Run("signed out dashboard ends with a login hint", func(t *testing.T) {
		client := &tu.MockClient{}
		a, _ := newTestApp(t, client, "", views.RouteDashboard)

		cmds := feed(a, exec(a.Init())...)
		require.NotEmpty(t, cmds)
		assert.ErrorIs(t, a.Err(), shared.ErrNotAuthenticated)
		assert.Zero(t, client.TotalCalls())
		assert.Contains(t, a.View(), "cinex auth login")
	})

	t.Run("wishlist renders loaded movies", func(t *testing.T) {
		a, _ := newTestApp(t, &tu.MockClient{Wishlist: wishlist}, "tok", views.RouteWishlist)
		feed(a, exec(a.Init())...)

		view := a.View()
		assert.Contains(t, view, "Alien")
		assert.Contains(t, view, "Brazil")
		assert.Contains(t, view, "WishList")
	})

	t.Run("opening a premium movie without a plan opens checkout", func(t *testing.T) {
		a, opener := newTestApp(t, &tu.MockClient{Wishlist: wishlist}, "tok", views.RouteWishlist)
		feed(a, exec(a.Init())...)

		nav := feed(a, tea.KeyMsg{Type: tea.KeyEnter})
		require.Len(t, nav, 1)
		open := feed(a, exec(nav[0])...)
		require.Len(t, open, 1)
		feed(a, exec(open[0])...)

		assert.Equal(t, []string{views.RouteSubscription}, opener.routes)
		assert.Equal(t, views.RouteWishlist, a.Route())
		assert.Contains(t, a.View(), "Opened /subscription")
	})

	t.Run("global keys switch screens", func(t *testing.T) {
		client := &tu.MockClient{Wishlist: wishlist, User: &models.User{ID: 1, Name: "Ada"}}
		a, _ := newTestApp(t, client, "tok", views.RouteWishlist)
		feed(a, exec(a.Init())...)

		feed(a, exec(feed(a, runes("D"))[0])...)
		assert.Equal(t, views.RouteDashboard, a.Route())
		assert.Contains(t, a.View(), "Ada")

		feed(a, exec(feed(a, runes("W"))[0])...)
		assert.Equal(t, views.RouteWishlist, a.Route())
	})

	t.Run("quit key", func(t *testing.T) {
		a, _ := newTestApp(t, &tu.MockClient{}, "tok", views.RouteWishlist)
		feed(a, exec(a.Init())...)

		cmds := feed(a, runes("q"))
		require.Len(t, cmds, 1)
		assert.IsType(t, tea.QuitMsg{}, cmds[0]())
	})

	t.Run("focus tracking", func(t *testing.T) {
		a, _ := newTestApp(t, &tu.MockClient{}, "tok", views.RouteWishlist)
		assert.True(t, a.Focused())
		feed(a, tea.BlurMsg{})
		assert.False(t, a.Focused())
		feed(a, tea.FocusMsg{})
		assert.True(t, a.Focused())
	})

	t.Run("foreground push shows a toast", func(t *testing.T) {
		a, _ := newTestApp(t, &tu.MockClient{Wishlist: wishlist}, "tok", views.RouteWishlist)
		feed(a, exec(a.Init())...)

		push := models.PushMessage{Notification: models.PushNotification{Title: "New", Body: "Dune is out"}}
		feed(a, PushMsg(push))
		assert.Contains(t, a.View(), "Dune is out")
	})

	t.Run("stale updates are ignored", func(t *testing.T) {
		a, _ := newTestApp(t, &tu.MockClient{Wishlist: wishlist}, "tok", views.RouteWishlist)
		feed(a, exec(a.Init())...)

		cmds := feed(a, viewUpdateMsg(a.gen-1, views.Update{Event: views.EventRedirect, Message: views.RouteLogin}))
		assert.Empty(t, cmds)
		assert.NoError(t, a.Err())
	})
}
