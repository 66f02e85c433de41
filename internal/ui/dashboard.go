package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/cinex/internal/views"
)

// dashboardScreen renders [views.Dashboard].
type dashboardScreen struct {
	ctrl *views.Dashboard
	ring progress.Model
	keys keyMap
}

func newDashboardScreen(ctrl *views.Dashboard, keys keyMap) *dashboardScreen {
	return &dashboardScreen{
		ctrl: ctrl,
		ring: progress.New(progress.WithGradient("#E50914", "#FFD700"), progress.WithWidth(30)),
		keys: keys,
	}
}

func (s *dashboardScreen) activate(ctx context.Context) tea.Cmd {
	return func() tea.Msg {
		return activatedMsg(s.ctrl.Activate(ctx))
	}
}

func (s *dashboardScreen) deactivate()                  { s.ctrl.Deactivate() }
func (s *dashboardScreen) updates() <-chan views.Update { return s.ctrl.Updates() }
func (s *dashboardScreen) sync()                        {}
func (s *dashboardScreen) resize(width, _ int) {
	s.ring.Width = min(max(width-20, 10), 40)
}

func (s *dashboardScreen) handleKey(ctx context.Context, msg tea.KeyMsg) tea.Cmd {
	state := s.ctrl.State()

	if state.Dialog == views.DialogConfirmCancel {
		switch {
		case key.Matches(msg, s.keys.yes):
			return func() tea.Msg {
				return actionDoneMsg("cancel subscription", s.ctrl.Confirm(ctx))
			}
		case key.Matches(msg, s.keys.no), key.Matches(msg, s.keys.back):
			s.ctrl.CloseDialog()
		}
		return nil
	}

	if state.Notice != "" || state.Alert != "" {
		if key.Matches(msg, s.keys.enter) || key.Matches(msg, s.keys.back) {
			s.ctrl.Dismiss()
			return nil
		}
	}

	switch {
	case key.Matches(msg, s.keys.back):
		return navigate(s.ctrl.Back())
	case key.Matches(msg, s.keys.cancel):
		s.ctrl.OpenCancelDialog()
	case key.Matches(msg, s.keys.subscribe):
		if state.Subscription == nil {
			return navigate(s.ctrl.Subscribe())
		}
	case key.Matches(msg, s.keys.add):
		if route, err := s.ctrl.AddMovie(); err == nil {
			return navigate(route)
		}
	case key.Matches(msg, s.keys.refresh):
		return s.activate(ctx)
	}
	return nil
}

func (s *dashboardScreen) view(width int) string {
	state := s.ctrl.State()
	var b strings.Builder

	b.WriteString(styles.title.Render("My Dashboard"))
	b.WriteString("\n")

	if state.Loading {
		b.WriteString("Loading...\n")
		return b.String()
	}

	if state.Error != "" {
		b.WriteString(styles.err.Render(state.Error))
		b.WriteString("\n")
		return b.String()
	}

	if u := state.User; u != nil {
		fmt.Fprintf(&b, "%s\n", styles.ok.Render(u.DisplayName()))
		if u.Email != "" {
			fmt.Fprintf(&b, "%s\n", u.Email)
		}
		role := u.Role.Label()
		if u.Privileged() {
			role = styles.badge.Render(crown + " " + role)
		}
		fmt.Fprintf(&b, "Role: %s\n\n", role)
	}

	if sub := state.Subscription; sub != nil {
		fmt.Fprintf(&b, "%s\n", styles.badge.Render(sub.PlanType.Label()+" Plan"))
		fmt.Fprintf(&b, "Status: %s\n", sub.Status)
		fmt.Fprintf(&b, "Started: %s\n", sub.StartLabel())
		fmt.Fprintf(&b, "Ends: %s\n\n", sub.EndLabel())
		if state.HasDaysLeft {
			fmt.Fprintf(&b, "%s %s\n", s.ring.ViewAs(state.Progress()), state.DaysLeftLabel())
		}
	} else {
		fmt.Fprintf(&b, "%s\n", styles.warn.Render(views.NoSubscriptionText))
	}

	if state.Notice != "" {
		fmt.Fprintf(&b, "\n%s\n", styles.ok.Render(state.Notice))
	}
	if state.Alert != "" {
		fmt.Fprintf(&b, "\n%s\n", styles.err.Render(state.Alert))
	}

	if state.Dialog == views.DialogConfirmCancel {
		dialog := styles.dialog.Width(min(width-4, 60)).Render(
			styles.err.Render(views.ConfirmCancelTitle) + "\n\n" + views.ConfirmCancelBody + "\n\n" +
				styles.help.Render("y: Yes, Cancel • n: No, Keep"),
		)
		fmt.Fprintf(&b, "\n%s\n", dialog)
	}

	return b.String()
}

func (s *dashboardScreen) helpKeys() []key.Binding {
	state := s.ctrl.State()
	if state.Dialog == views.DialogConfirmCancel {
		return []key.Binding{s.keys.yes, s.keys.no}
	}

	keys := []key.Binding{s.keys.back}
	if state.Subscription != nil {
		keys = append(keys, s.keys.cancel)
	} else {
		keys = append(keys, s.keys.subscribe)
	}
	if state.Privileged() {
		keys = append(keys, s.keys.add)
	}
	return append(keys, s.keys.wishlist, s.keys.refresh, s.keys.quit)
}
