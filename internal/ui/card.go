package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/desertthunder/cinex/internal/models"
)

const (
	crown     = "♛"
	cardWidth = 28
)

// CardProps is everything a movie card renders from.
type CardProps struct {
	Movie      models.Movie
	Privileged bool // shows the edit/delete cluster
}

// CardAction is a user interaction on a card.
type CardAction int

const (
	ActionOpen CardAction = iota
	ActionEdit
	ActionDelete
)

// CardCallbacks receive card interactions. Nil callbacks are skipped.
type CardCallbacks struct {
	Open   func(id int, premium bool)
	Edit   func(movie models.Movie)
	Delete func(id int)
}

// Card renders a movie and dispatches its interactions.
//
// Render is a pure function of its arguments. Focus is the terminal analogue
// of pointer hover: the detail overlay is only drawn for the focused card.
type Card interface {
	Render(props CardProps, focused bool) string
	Press(props CardProps, action CardAction, cb CardCallbacks) bool
}

var (
	_ Card = PosterCard{}
	_ Card = BrowseCard{}
)

// press dispatches an action. Edit and delete never reach the open callback
// and are ignored for ordinary users. It reports whether a callback ran.
func press(props CardProps, action CardAction, cb CardCallbacks) bool {
	switch action {
	case ActionOpen:
		if cb.Open == nil {
			return false
		}
		cb.Open(props.Movie.ID, props.Movie.Premium)
		return true
	case ActionEdit:
		if !props.Privileged || cb.Edit == nil {
			return false
		}
		cb.Edit(props.Movie)
		return true
	case ActionDelete:
		if !props.Privileged || cb.Delete == nil {
			return false
		}
		cb.Delete(props.Movie.ID)
		return true
	default:
		return false
	}
}

// header builds the badge row: premium crown on the left, controls on the right.
func header(props CardProps) string {
	left := ""
	if props.Movie.Premium {
		left = styles.badge.Render(crown + " Premium")
	}
	right := ""
	if props.Privileged {
		right = styles.help.Render("[e]dit ") + styles.err.Render("[d]el")
	}
	if left == "" && right == "" {
		return ""
	}
	gap := max(cardWidth-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func frame(lines []string, focused bool) string {
	style := styles.card
	if focused {
		style = styles.focused
	}
	return style.Width(cardWidth + 2).Render(strings.Join(lines, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// PosterCard is the catalogue card: poster with title and rating beneath,
// and year, duration and director in the overlay.
type PosterCard struct{}

func (PosterCard) Render(props CardProps, focused bool) string {
	m := props.Movie
	var lines []string

	if h := header(props); h != "" {
		lines = append(lines, h)
	}
	lines = append(lines, styles.help.Render(truncate(m.PosterURL, cardWidth)))

	if focused {
		lines = append(lines,
			"Year: "+m.YearLabel(),
			"Duration: "+orDash(m.RuntimeLabel()),
			"Director: "+m.Director,
		)
	}

	lines = append(lines,
		styles.title.UnsetMarginBottom().Render(truncate(m.Title, cardWidth)),
		m.RatingLabel()+" "+styles.badge.Render("★"),
	)
	return frame(lines, focused)
}

func (PosterCard) Press(props CardProps, action CardAction, cb CardCallbacks) bool {
	return press(props, action, cb)
}

// BrowseCard is the home-row card: poster with a rating tag, and the full
// detail overlay (title, release year, director, genre, runtime) on focus.
type BrowseCard struct{}

func (BrowseCard) Render(props CardProps, focused bool) string {
	m := props.Movie
	var lines []string

	if h := header(props); h != "" {
		lines = append(lines, h)
	}
	lines = append(lines, styles.help.Render(truncate(m.PosterURL, cardWidth)))

	if focused {
		lines = append(lines,
			styles.title.UnsetMarginBottom().Render(truncate(m.Title, cardWidth)),
			"Released: "+m.YearLabel(),
			"Director: "+m.Director,
		)
		if m.Genre != "" {
			lines = append(lines, "Genre: "+m.Genre)
		}
		if rt := m.RuntimeLabel(); rt != "" {
			lines = append(lines, "Runtime: "+rt)
		}
	}

	lines = append(lines, m.RatingLabel()+" "+styles.badge.Render("★"))
	return frame(lines, focused)
}

func (BrowseCard) Press(props CardProps, action CardAction, cb CardCallbacks) bool {
	return press(props, action, cb)
}

func orDash(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
