package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/views"
)

// browseScreen renders [views.Browse] as a grid of movie cards.
type browseScreen struct {
	ctrl    *views.Browse
	keys    keyMap
	cards   []Card
	variant int
	focus   int
	columns int
}

func newBrowseScreen(ctrl *views.Browse, keys keyMap) *browseScreen {
	return &browseScreen{
		ctrl:    ctrl,
		keys:    keys,
		cards:   []Card{BrowseCard{}, PosterCard{}},
		columns: 3,
	}
}

func (s *browseScreen) activate(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		return activatedMsg(s.ctrl.Activate(ctx))
	}
}

func (s *browseScreen) deactivate()                  { s.ctrl.Deactivate() }
func (s *browseScreen) updates() <-chan views.Update { return s.ctrl.Updates() }

func (s *browseScreen) sync() {
	if n := len(s.ctrl.State().Movies); s.focus >= n {
		s.focus = max(n-1, 0)
	}
}

func (s *browseScreen) resize(width, _ int) {
	s.columns = max(width/(cardWidth+6), 1)
}

func (s *browseScreen) card() Card { return s.cards[s.variant] }

// callbacks routes card interactions to the controller.
func (s *browseScreen) callbacks(ctx context.Context, out *tea.Cmd) CardCallbacks {
	return CardCallbacks{
		Open: func(id int, premium bool) {
			*out = navigate(s.ctrl.Open(id, premium))
		},
		Edit: func(movie models.Movie) {
			if route, err := s.ctrl.Edit(movie.ID); err == nil {
				*out = navigate(route)
			}
		},
		Delete: func(id int) {
			*out = func() tea.Msg {
				return actionDoneMsg("delete movie", s.ctrl.Delete(ctx, id))
			}
		},
	}
}

func (s *browseScreen) handleKey(ctx context.Context, msg tea.KeyMsg) tea.Cmd {
	state := s.ctrl.State()
	if state.Toast != "" {
		s.ctrl.DismissToast()
	}

	n := len(state.Movies)
	var action *CardAction
	pick := func(a CardAction) { action = &a }

	switch {
	case key.Matches(msg, s.keys.left):
		s.focus = max(s.focus-1, 0)
	case key.Matches(msg, s.keys.right):
		s.focus = min(s.focus+1, max(n-1, 0))
	case key.Matches(msg, s.keys.up):
		s.focus = max(s.focus-s.columns, 0)
	case key.Matches(msg, s.keys.down):
		s.focus = min(s.focus+s.columns, max(n-1, 0))
	case key.Matches(msg, s.keys.variant):
		s.variant = (s.variant + 1) % len(s.cards)
	case key.Matches(msg, s.keys.enter):
		pick(ActionOpen)
	case key.Matches(msg, s.keys.edit):
		pick(ActionEdit)
	case key.Matches(msg, s.keys.remove):
		pick(ActionDelete)
	case key.Matches(msg, s.keys.refresh):
		return s.activate(ctx)
	}

	if action == nil || s.focus >= n {
		return nil
	}

	var cmd tea.Cmd
	props := CardProps{Movie: state.Movies[s.focus], Privileged: state.Privileged}
	s.card().Press(props, *action, s.callbacks(ctx, &cmd))
	return cmd
}

func (s *browseScreen) view(int) string {
	state := s.ctrl.State()
	var b strings.Builder

	b.WriteString(styles.title.Render("Movies"))
	b.WriteString("\n")

	switch {
	case state.Loading:
		b.WriteString("Loading...\n")
		return b.String()
	case state.Error != "":
		fmt.Fprintf(&b, "%s\n", styles.err.Render(state.Error))
		return b.String()
	case len(state.Movies) == 0:
		fmt.Fprintf(&b, "%s\n", styles.help.Render("No movies yet"))
		return b.String()
	}

	var rows []string
	for start := 0; start < len(state.Movies); start += s.columns {
		end := min(start+s.columns, len(state.Movies))
		row := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			props := CardProps{Movie: state.Movies[i], Privileged: state.Privileged}
			row = append(row, s.card().Render(props, i == s.focus))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))

	if state.Toast != "" {
		style := styles.ok
		if state.Toast == views.MovieDeleteFailed {
			style = styles.err
		}
		fmt.Fprintf(&b, "\n%s", style.Render(state.Toast))
	}
	return b.String()
}

func (s *browseScreen) helpKeys() []key.Binding {
	keys := []key.Binding{s.keys.enter, s.keys.variant}
	if s.ctrl.State().Privileged {
		keys = append(keys, s.keys.edit, s.keys.remove)
	}
	return append(keys, s.keys.dashboard, s.keys.wishlist, s.keys.quit)
}
