package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/cinex/internal/views"
)

// wishlistScreen renders [views.Wishlist] as a filterable list.
type wishlistScreen struct {
	ctrl *views.Wishlist
	list list.Model
	keys keyMap
}

func newWishlistScreen(ctrl *views.Wishlist, keys keyMap) *wishlistScreen {
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.Title = "My WishList"
	l.SetShowHelp(false)
	return &wishlistScreen{ctrl: ctrl, list: l, keys: keys}
}

func (s *wishlistScreen) activate(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		return activatedMsg(s.ctrl.Activate(ctx))
	}
}

func (s *wishlistScreen) deactivate()                  { s.ctrl.Deactivate() }
func (s *wishlistScreen) updates() <-chan views.Update { return s.ctrl.Updates() }

func (s *wishlistScreen) sync() {
	idx := s.list.Index()
	s.list.SetItems(movieItems(s.ctrl.State().Movies))
	if n := len(s.list.Items()); idx >= n && n > 0 {
		idx = n - 1
	}
	s.list.Select(idx)
}

func (s *wishlistScreen) resize(width, height int) {
	s.list.SetSize(width-4, height-8)
}

func (s *wishlistScreen) selected() (movieItem, bool) {
	item, ok := s.list.SelectedItem().(movieItem)
	return item, ok
}

func (s *wishlistScreen) handleKey(ctx context.Context, msg tea.KeyMsg) tea.Cmd {
	if s.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		s.list, cmd = s.list.Update(msg)
		return cmd
	}

	if s.ctrl.State().Toast != "" {
		s.ctrl.DismissToast()
	}

	switch {
	case key.Matches(msg, s.keys.back):
		return navigate(s.ctrl.Back())
	case key.Matches(msg, s.keys.enter):
		if item, ok := s.selected(); ok {
			return navigate(s.ctrl.Open(item.movie.ID, item.movie.Premium))
		}
		return nil
	case key.Matches(msg, s.keys.remove):
		if item, ok := s.selected(); ok {
			id := item.movie.ID
			return func() tea.Msg {
				return actionDoneMsg("remove from wishlist", s.ctrl.Remove(ctx, id))
			}
		}
		return nil
	case key.Matches(msg, s.keys.refresh):
		return s.activate(ctx)
	}

	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return cmd
}

func (s *wishlistScreen) view(int) string {
	state := s.ctrl.State()
	var b strings.Builder

	switch {
	case state.Loading:
		b.WriteString(styles.title.Render("My WishList"))
		b.WriteString("\nLoading...\n")
	case state.Error != "":
		b.WriteString(styles.title.Render("My WishList"))
		fmt.Fprintf(&b, "\n%s\n", styles.err.Render(state.Error))
	case state.Empty():
		b.WriteString(styles.title.Render("My WishList"))
		fmt.Fprintf(&b, "\n%s\n", styles.help.Render(views.WishlistEmptyText))
	default:
		b.WriteString(s.list.View())
	}

	if state.Toast != "" {
		style := styles.ok
		if state.Toast == views.WishlistRemoveError {
			style = styles.err
		}
		fmt.Fprintf(&b, "\n%s", style.Render(state.Toast))
	}
	return b.String()
}

func (s *wishlistScreen) helpKeys() []key.Binding {
	return []key.Binding{s.keys.enter, s.keys.remove, s.keys.back, s.keys.dashboard, s.keys.refresh, s.keys.quit}
}

// filtering reports whether the list is capturing keystrokes for its filter.
func (s *wishlistScreen) filtering() bool {
	return s.list.FilterState() == list.Filtering
}
