package views

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/cinex/internal/shared"
)

// ErrInactive is returned by operations that need an activated view.
var ErrInactive = errors.New("view is not active")

// DefaultTickInterval is how often the dashboard recomputes days left.
const DefaultTickInterval = time.Hour

// Event identifies what changed in a view.
type Event int

const (
	EventLoading Event = iota
	EventLoaded
	EventFailed
	EventRedirect
	EventDialog
	EventNotice
	EventAlert
	EventTick
	EventRemoved
	EventToast
)

func (e Event) String() string {
	switch e {
	case EventLoading:
		return "loading"
	case EventLoaded:
		return "loaded"
	case EventFailed:
		return "failed"
	case EventRedirect:
		return "redirect"
	case EventDialog:
		return "dialog"
	case EventNotice:
		return "notice"
	case EventAlert:
		return "alert"
	case EventTick:
		return "tick"
	case EventRemoved:
		return "removed"
	case EventToast:
		return "toast"
	default:
		return "unknown"
	}
}

// Update is published after each state change.
type Update struct {
	View    string // "dashboard", "wishlist" or "browse"
	Event   Event
	Message string // Human-readable message for display
}

// Option configures a controller.
type Option func(*base)

// WithLogger sets the controller's logger.
func WithLogger(l *log.Logger) Option {
	return func(b *base) { b.logger = l }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(b *base) { b.now = now }
}

// WithTickInterval sets the days-left refresh period.
func WithTickInterval(d time.Duration) Option {
	return func(b *base) { b.tick = d }
}

// base carries the lifetime and update plumbing shared by every controller.
//
// mu guards the embedding controller's state as well as the lifetime fields.
type base struct {
	name    string
	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	active  bool
	wg      sync.WaitGroup
	updates chan Update

	logger *log.Logger
	now    func() time.Time
	tick   time.Duration
}

func (b *base) setup(name string, opts []Option) {
	b.name = name
	b.updates = make(chan Update, 1)
	b.now = time.Now
	b.tick = DefaultTickInterval
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = shared.NewLogger(nil)
	}
	b.logger = shared.WithLogger(b.logger, "view", name)
}

// Updates returns the channel on which state changes are announced.
func (b *base) Updates() <-chan Update {
	return b.updates
}

// Active reports whether the view is between Activate and Deactivate.
func (b *base) Active() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active
}

// begin starts a new lifetime derived from parent, ending any previous one.
func (b *base) begin(parent context.Context) context.Context {
	b.end()

	b.mu.Lock()
	defer b.mu.Unlock()
	b.ctx, b.cancel = context.WithCancel(parent)
	b.active = true
	return b.ctx
}

// end cancels the current lifetime and waits for background tasks.
func (b *base) end() {
	b.mu.Lock()
	b.active = false
	if b.cancel != nil {
		b.cancel()
	}
	b.mu.Unlock()

	b.wg.Wait()
}

// lifetime returns the current view context, or ErrInactive.
func (b *base) lifetime() (context.Context, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.active {
		return nil, ErrInactive
	}
	return b.ctx, nil
}

// bind returns a context that ends when either ctx or the view lifetime ends.
func bind(ctx, lifetime context.Context) (context.Context, context.CancelFunc) {
	merged, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(lifetime, cancel)
	return merged, func() {
		stop()
		cancel()
	}
}

// apply runs fn under the state lock if ctx is still live and the view is active,
// then publishes u. It reports whether fn ran.
func (b *base) apply(ctx context.Context, u Update, fn func()) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.active || ctx.Err() != nil {
		return false
	}
	fn()
	u.View = b.name
	b.publish(u)
	return true
}

// publish sends without blocking. A pending update is replaced so the latest one wins.
// Callers hold mu, so there is a single sender.
func (b *base) publish(u Update) {
	for {
		select {
		case b.updates <- u:
			return
		default:
		}
		select {
		case <-b.updates:
		default:
		}
	}
}
