package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"

	"github.com/desertthunder/cinex/internal/models"
)

var _ list.Item = movieItem{}

// movieItem wraps [models.Movie] to implement [list.Item].
type movieItem struct {
	movie models.Movie
}

func (i movieItem) FilterValue() string { return i.movie.Title }
func (i movieItem) Title() string {
	if i.movie.Premium {
		return crown + " " + i.movie.Title
	}
	return i.movie.Title
}
func (i movieItem) Description() string {
	desc := fmt.Sprintf("%s • %s", i.movie.YearLabel(), i.movie.Director)
	if i.movie.Genre != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.movie.Genre)
	}
	return fmt.Sprintf("%s • ★ %s", desc, i.movie.RatingLabel())
}

func movieItems(movies []models.Movie) []list.Item {
	items := make([]list.Item, len(movies))
	for i, m := range movies {
		items[i] = movieItem{movie: m}
	}
	return items
}
