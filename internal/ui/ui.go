package ui

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/services"
	"github.com/desertthunder/cinex/internal/session"
	"github.com/desertthunder/cinex/internal/shared"
	"github.com/desertthunder/cinex/internal/views"
)

// Opener hands a route the terminal does not render to the browser.
type Opener func(route string) error

// Options configures [NewApp].
type Options struct {
	Client      services.Client
	Session     *session.Session
	Logger      *log.Logger
	Opener      Opener
	Start       string // initial route, defaults to the dashboard
	ViewOptions []views.Option
}

// App is the root bubbletea model. It routes between screens and owns their lifetimes.
type App struct {
	ctx     context.Context
	screens map[string]screen
	route   string
	current screen
	gen     int
	done    chan struct{}
	opener  Opener
	logger  *log.Logger

	toast   string
	err     error
	width   int
	height  int
	help    help.Model
	keys    keyMap
	focused atomic.Bool
}

var _ tea.Model = (*App)(nil)

// NewApp creates the root model.
func NewApp(ctx context.Context, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	viewOpts := append([]views.Option{views.WithLogger(logger)}, opts.ViewOptions...)
	keys := newKeyMap()

	start := opts.Start
	if start == "" {
		start = views.RouteDashboard
	}

	a := &App{
		ctx: ctx,
		screens: map[string]screen{
			views.RouteHome:      newBrowseScreen(views.NewBrowse(opts.Client, opts.Session, viewOpts...), keys),
			views.RouteDashboard: newDashboardScreen(views.NewDashboard(opts.Client, opts.Session, viewOpts...), keys),
			views.RouteWishlist:  newWishlistScreen(views.NewWishlist(opts.Client, opts.Session, viewOpts...), keys),
		},
		route:  start,
		done:   make(chan struct{}),
		opener: opts.Opener,
		logger: logger,
		help:   help.New(),
		keys:   keys,
	}
	a.focused.Store(true)
	return a
}

// Focused reports whether the terminal window has focus.
func (a *App) Focused() bool { return a.focused.Load() }

// Route returns the current route.
func (a *App) Route() string { return a.route }

// Err returns the error that ended the program, if any.
func (a *App) Err() error { return a.err }

// Close ends the current screen's lifetime.
func (a *App) Close() {
	if a.current != nil {
		a.current.deactivate()
		a.current = nil
	}
	select {
	case <-a.done:
	default:
		close(a.done)
	}
}

// Init activates the start route.
func (a *App) Init() tea.Cmd {
	return a.switchTo(a.route)
}

// switchTo tears down the current screen and activates the one for route.
// Routes without a terminal screen are opened in the browser instead.
func (a *App) switchTo(route string) tea.Cmd {
	if route == views.RouteLogin {
		a.err = fmt.Errorf("%w: run `cinex auth login` first", shared.ErrNotAuthenticated)
		return tea.Quit
	}

	next, ok := a.screens[route]
	if !ok || !views.Terminal(route) {
		return a.open(route)
	}

	a.Close()
	a.done = make(chan struct{})
	a.gen++
	a.route = route
	a.current = next
	a.toast = ""
	if a.width > 0 {
		next.resize(a.width, a.height)
	}

	a.logger.Debug("switching screen", "route", route)
	return tea.Batch(next.activate(a.ctx), waitForUpdate(a.gen, next.updates(), a.done))
}

func (a *App) open(route string) tea.Cmd {
	opener := a.opener
	return func() tea.Msg {
		if opener == nil {
			return openedMsg(route, shared.ErrMissingConfig)
		}
		return openedMsg(route, opener(route))
	}
}

// Update handles incoming messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		if a.current != nil {
			a.current.resize(msg.Width, msg.Height)
		}
		return a, nil

	case tea.FocusMsg:
		a.focused.Store(true)
		return a, nil

	case tea.BlurMsg:
		a.focused.Store(false)
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case Msg:
		return a, a.handleMsg(msg)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if a.err != nil {
		return tea.Quit
	}

	if w, ok := a.current.(*wishlistScreen); !ok || !w.filtering() {
		switch {
		case key.Matches(msg, a.keys.quit):
			return tea.Quit
		case key.Matches(msg, a.keys.dashboard) && a.route != views.RouteDashboard:
			return a.switchTo(views.RouteDashboard)
		case key.Matches(msg, a.keys.wishlist) && a.route != views.RouteWishlist:
			return a.switchTo(views.RouteWishlist)
		}
	}

	if a.current == nil {
		return nil
	}
	a.toast = ""
	return a.current.handleKey(a.ctx, msg)
}

func (a *App) handleMsg(msg Msg) tea.Cmd {
	switch msg.kind {
	case MsgViewUpdate:
		data := msg.data.(struct {
			gen    int
			update views.Update
		})
		if data.gen != a.gen || a.current == nil {
			return nil
		}
		a.current.sync()
		if data.update.Event == views.EventRedirect {
			return a.switchTo(data.update.Message)
		}
		return waitForUpdate(a.gen, a.current.updates(), a.done)

	case MsgActivated:
		if err, _ := msg.data.(error); err != nil {
			a.logger.Warn("screen activation failed", "route", a.route, "error", err)
		}
		if a.current == nil {
			return nil
		}
		a.current.sync()
		if d, ok := a.current.(*dashboardScreen); ok {
			if route := d.ctrl.State().Redirect; route != "" {
				return a.switchTo(route)
			}
		}

	case MsgActionDone:
		data := msg.data.(struct {
			action string
			err    error
		})
		if data.err != nil {
			a.logger.Error("action failed", "action", data.action, "error", data.err)
		}
		if a.current != nil {
			a.current.sync()
		}

	case MsgNavigate:
		return a.switchTo(msg.data.(string))

	case MsgOpened:
		data := msg.data.(struct {
			route string
			err   error
		})
		if data.err != nil {
			a.toast = styles.err.Render(fmt.Sprintf("Could not open %s: %v", data.route, data.err))
		} else {
			a.toast = styles.help.Render(fmt.Sprintf("Opened %s in your browser", data.route))
		}

	case MsgPush:
		push := msg.data.(models.PushMessage)
		a.toast = styles.warn.Render(fmt.Sprintf("🔔 %s: %s", push.Notification.Title, push.Notification.Body))
	}
	return nil
}

// View renders the current screen with a tab bar, toast and help line.
func (a *App) View() string {
	if a.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", a.err))
	}
	if a.current == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(a.tabs())
	b.WriteString("\n\n")
	b.WriteString(a.current.view(a.width))
	if a.toast != "" {
		fmt.Fprintf(&b, "\n\n%s", a.toast)
	}
	fmt.Fprintf(&b, "\n\n%s", a.help.ShortHelpView(a.current.helpKeys()))
	return b.String()
}

func (a *App) tabs() string {
	tabs := []struct{ route, label string }{
		{views.RouteHome, "Movies"},
		{views.RouteDashboard, "Dashboard"},
		{views.RouteWishlist, "WishList"},
	}
	parts := make([]string, len(tabs))
	for i, t := range tabs {
		if t.route == a.route {
			parts[i] = styles.ok.Render("[" + t.label + "]")
		} else {
			parts[i] = styles.help.Render(" " + t.label + " ")
		}
	}
	return strings.Join(parts, " ")
}
