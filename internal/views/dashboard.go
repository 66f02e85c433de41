package views

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/services"
	"github.com/desertthunder/cinex/internal/session"
	"github.com/desertthunder/cinex/internal/shared"
)

// Dashboard messages.
const (
	DashboardLoadError  = "Failed to load your account details."
	CancelFailedAlert   = "Failed to cancel subscription. Please try again."
	CancelSuccessNotice = "Subscription canceled successfully!"
	NoSubscriptionText  = "No active subscription. Subscribe now to unlock premium features!"
	ConfirmCancelTitle  = "Confirm Cancellation"
	ConfirmCancelBody   = "Are you sure you want to cancel your subscription? This action cannot be undone."
)

// ProgressDays is the span the days-left ring is scaled against.
const ProgressDays = 30

// DialogState is the cancel-confirmation dialog state.
type DialogState int

const (
	DialogClosed DialogState = iota
	DialogConfirmCancel
)

// DashboardState is a snapshot of the dashboard screen.
type DashboardState struct {
	User         *models.User
	Subscription *models.Subscription
	DaysLeft     int
	HasDaysLeft  bool // false when there is no active subscription or its end date is unknown
	Loading      bool
	Error        string // set when the profile could not be loaded or recovered from the session
	Dialog       DialogState
	Notice       string
	Alert        string
	Redirect     string
}

// Privileged reports whether the loaded user unlocks supervisor actions.
func (s DashboardState) Privileged() bool {
	return s.User.Privileged()
}

// Progress returns days left as a fraction of [ProgressDays], capped at 1.
func (s DashboardState) Progress() float64 {
	if s.DaysLeft <= 0 {
		return 0
	}
	return min(float64(s.DaysLeft)/ProgressDays, 1)
}

// DaysLeftValue returns days left, or nil when it is unknown.
func (s DashboardState) DaysLeftValue() *int {
	if !s.HasDaysLeft {
		return nil
	}
	n := s.DaysLeft
	return &n
}

// DaysLeftLabel formats the remaining days, e.g. "1 Day Left" or "12 Days Left".
func (s DashboardState) DaysLeftLabel() string {
	if s.DaysLeft == 1 {
		return "1 Day Left"
	}
	return fmt.Sprintf("%d Days Left", s.DaysLeft)
}

// Dashboard controls the account dashboard: profile, active subscription and cancellation.
type Dashboard struct {
	base
	client  services.Client
	session *session.Session

	state      DashboardState
	stopTicker context.CancelFunc
}

// NewDashboard creates a dashboard controller.
func NewDashboard(client services.Client, sess *session.Session, opts ...Option) *Dashboard {
	d := &Dashboard{client: client, session: sess}
	d.setup("dashboard", opts)
	return d
}

// State returns a copy of the current state.
func (d *Dashboard) State() DashboardState {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := d.state
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	if s.Subscription != nil {
		sub := *s.Subscription
		s.Subscription = &sub
	}
	return s
}

// Activate loads the profile and subscriptions.
//
// Without a session token it only sets Redirect to the login route.
// On any fetch failure it falls back to the cached profile and clears the plan.
func (d *Dashboard) Activate(ctx context.Context) error {
	lifetime := d.begin(ctx)

	if !d.session.Authenticated() {
		d.apply(lifetime, Update{Event: EventRedirect, Message: RouteLogin}, func() {
			d.state = DashboardState{Redirect: RouteLogin}
		})
		return nil
	}

	d.apply(lifetime, Update{Event: EventLoading}, func() {
		d.state = DashboardState{Loading: true}
	})

	var (
		user *models.User
		subs []models.Subscription
	)

	p := pool.New().WithContext(lifetime)
	p.Go(func(ctx context.Context) error {
		u, err := d.client.FetchUserDetails(ctx)
		if err != nil {
			return fmt.Errorf("fetch user: %w", err)
		}
		user = u
		return nil
	})
	p.Go(func(ctx context.Context) error {
		s, err := d.client.GetSubscriptionStatuses(ctx)
		if err != nil {
			return fmt.Errorf("fetch subscriptions: %w", err)
		}
		subs = s
		return nil
	})

	if err := p.Wait(); err != nil {
		d.recover(lifetime, err)
		return err
	}

	active := models.ActiveSubscription(subs)
	d.apply(lifetime, Update{Event: EventLoaded}, func() {
		d.state.Loading = false
		d.state.User = user
		d.setSubscription(lifetime, active)
	})

	return nil
}

// recover shows the cached profile after a failed load.
func (d *Dashboard) recover(lifetime context.Context, err error) {
	d.apply(lifetime, Update{Event: EventFailed, Message: err.Error()}, func() {
		d.logger.Error("failed to load dashboard", "error", err)

		d.state.Loading = false
		d.setSubscription(lifetime, nil)

		if cached, ok := d.session.CachedUser(); ok {
			d.state.User = cached
			return
		}
		d.state.User = nil
		d.state.Error = DashboardLoadError
	})
}

// setSubscription stores sub, persists or clears the plan and (re)starts the ticker. Caller holds mu.
func (d *Dashboard) setSubscription(lifetime context.Context, sub *models.Subscription) {
	if d.stopTicker != nil {
		d.stopTicker()
		d.stopTicker = nil
	}

	d.state.Subscription = sub
	d.state.DaysLeft = 0
	d.state.HasDaysLeft = false

	if sub == nil {
		if err := d.session.ClearPlan(); err != nil {
			d.logger.Warn("failed to clear plan", "error", err)
		}
		return
	}

	if err := d.session.SetPlan(sub.PlanType); err != nil {
		d.logger.Warn("failed to persist plan", "error", err)
	}

	end, ok := sub.End()
	if !ok {
		d.logger.Warn("subscription has no parseable end date", "end_date", sub.EndDate)
		return
	}

	d.state.DaysLeft = models.DaysLeft(end, d.now())
	d.state.HasDaysLeft = true
	if d.tick > 0 {
		d.startTicker(lifetime, end)
	}
}

// startTicker recomputes days left every tick until the subscription is cleared or the view ends. Caller holds mu.
func (d *Dashboard) startTicker(lifetime context.Context, end time.Time) {
	ctx, cancel := context.WithCancel(lifetime)
	d.stopTicker = cancel

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		ticker := time.NewTicker(d.tick)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				d.apply(ctx, Update{Event: EventTick}, func() {
					d.state.DaysLeft = models.DaysLeft(end, d.now())
				})
			}
		}
	}()
}

// Deactivate ends the view lifetime and waits for the ticker to stop.
func (d *Dashboard) Deactivate() {
	d.end()
}

// OpenCancelDialog opens the confirmation dialog. It reports false when there is nothing to cancel.
func (d *Dashboard) OpenCancelDialog() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.active || d.state.Subscription == nil {
		return false
	}
	d.state.Dialog = DialogConfirmCancel
	d.publish(Update{View: d.name, Event: EventDialog})
	return true
}

// CloseDialog dismisses the confirmation dialog without cancelling.
func (d *Dashboard) CloseDialog() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.state.Dialog == DialogClosed {
		return
	}
	d.state.Dialog = DialogClosed
	d.publish(Update{View: d.name, Event: EventDialog})
}

// Confirm cancels the subscription. The dialog closes either way.
//
// On success the subscription, days left and persisted plan are cleared and a
// notice is set; on failure an alert is set and the subscription is kept.
func (d *Dashboard) Confirm(ctx context.Context) error {
	lifetime, err := d.lifetime()
	if err != nil {
		return err
	}

	d.mu.Lock()
	open := d.state.Dialog == DialogConfirmCancel
	d.mu.Unlock()
	if !open {
		return fmt.Errorf("%w: no cancellation pending", shared.ErrInvalidInput)
	}

	reqCtx, cancel := bind(ctx, lifetime)
	defer cancel()

	cancelErr := d.client.CancelSubscription(reqCtx)
	if cancelErr != nil {
		d.apply(lifetime, Update{Event: EventAlert, Message: CancelFailedAlert}, func() {
			d.logger.Error("failed to cancel subscription", "error", cancelErr)
			d.state.Dialog = DialogClosed
			d.state.Alert = CancelFailedAlert
		})
		return cancelErr
	}

	d.apply(lifetime, Update{Event: EventNotice, Message: CancelSuccessNotice}, func() {
		d.state.Dialog = DialogClosed
		d.setSubscription(lifetime, nil)
		d.state.Notice = CancelSuccessNotice
	})
	return nil
}

// Dismiss clears the notice and alert.
func (d *Dashboard) Dismiss() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Notice = ""
	d.state.Alert = ""
}

// Back returns the route of the previous screen.
func (d *Dashboard) Back() string { return RouteHome }

// Subscribe returns the route for buying a plan.
func (d *Dashboard) Subscribe() string { return RouteSubscription }

// AddMovie returns the admin route for supervisors.
func (d *Dashboard) AddMovie() (string, error) {
	if !d.State().Privileged() {
		return "", shared.ErrForbidden
	}
	return RouteAdmin, nil
}
