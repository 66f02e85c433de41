package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#E50914", "#04B575", "#FF4D4F", "#FFD700", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title   lipgloss.Style
	ok      lipgloss.Style
	err     lipgloss.Style
	warn    lipgloss.Style
	help    lipgloss.Style
	badge   lipgloss.Style // premium crown
	card    lipgloss.Style
	focused lipgloss.Style
	dialog  lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	border := lipgloss.RoundedBorder()
	return &Palette{
		title:   NewBold(t).MarginBottom(1),
		ok:      NewBold(s),
		err:     NewBold(e),
		warn:    NewStyle(w),
		help:    NewEm(h),
		badge:   NewBold(w),
		card:    lipgloss.NewStyle().Border(border).BorderForeground(lipgloss.Color(h)).Padding(0, 1),
		focused: lipgloss.NewStyle().Border(border).BorderForeground(lipgloss.Color(t)).Padding(0, 1),
		dialog:  lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color(e)).Padding(1, 2),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
