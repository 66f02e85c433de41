package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/views"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgViewUpdate MsgKind = iota
	MsgActivated
	MsgActionDone
	MsgNavigate
	MsgPush
	MsgOpened
)

// viewUpdateMsg is the constructor for [MsgViewUpdate]. gen ties the update to one activation.
func viewUpdateMsg(gen int, update views.Update) Msg {
	return Msg{
		kind: MsgViewUpdate,
		data: struct {
			gen    int
			update views.Update
		}{gen, update},
	}
}

// activatedMsg is the constructor for [MsgActivated]
func activatedMsg(err error) Msg {
	return Msg{kind: MsgActivated, data: err}
}

// actionDoneMsg is the constructor for [MsgActionDone]
func actionDoneMsg(action string, err error) Msg {
	return Msg{
		kind: MsgActionDone,
		data: struct {
			action string
			err    error
		}{action, err},
	}
}

// navigateMsg is the constructor for [MsgNavigate]
func navigateMsg(route string) Msg {
	return Msg{kind: MsgNavigate, data: route}
}

// openedMsg is the constructor for [MsgOpened], reporting a route handed to the browser.
func openedMsg(route string, err error) Msg {
	return Msg{
		kind: MsgOpened,
		data: struct {
			route string
			err   error
		}{route, err},
	}
}

// PushMsg wraps a foreground push message so it can be sent to a running program.
func PushMsg(msg models.PushMessage) tea.Msg {
	return Msg{kind: MsgPush, data: msg}
}

// navigate returns a command emitting [MsgNavigate].
func navigate(route string) tea.Cmd {
	return func() tea.Msg { return navigateMsg(route) }
}
