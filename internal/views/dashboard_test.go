package views

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/shared"
	tu "github.com/desertthunder/cinex/internal/testing"
)

var (
	dashNow = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	dashEnd = dashNow.Add(5*24*time.Hour + 2*time.Hour)
)

func activeClient() *tu.MockClient {
	return &tu.MockClient{
		User: &models.User{ID: 1, Name: "Ada", Role: models.RoleOrdinary},
		Subscriptions: []models.Subscription{
			{ID: 1, PlanType: models.PlanDaily, Status: "expired", EndDate: "2024-01-02T00:00:00Z"},
			{ID: 2, PlanType: models.PlanMonthly, Status: models.StatusActive, StartDate: "2024-02-06T02:00:00Z", EndDate: dashEnd.Format(time.RFC3339)},
		},
	}
}

func TestDashboardActivate(t *testing.T) {
	ctx := context.Background()

	t.Run("without a token redirects to login and makes no calls", func(t *testing.T) {
		client := activeClient()
		d := NewDashboard(client, newTestSession(t, ""), quiet())
		defer d.Deactivate()

		require.NoError(t, d.Activate(ctx))

		assert.Equal(t, RouteLogin, d.State().Redirect)
		assert.Zero(t, client.TotalCalls())
	})

	t.Run("loads user and active subscription", func(t *testing.T) {
		client := activeClient()
		sess := newTestSession(t, "tok")
		d := NewDashboard(client, sess, quiet(), WithClock(newFakeClock(dashNow).Now))
		defer d.Deactivate()

		require.NoError(t, d.Activate(ctx))

		state := d.State()
		assert.False(t, state.Loading)
		assert.Equal(t, "Ada", state.User.Name)
		require.NotNil(t, state.Subscription)
		assert.Equal(t, 2, state.Subscription.ID)
		assert.Equal(t, 6, state.DaysLeft)
		require.NotNil(t, state.DaysLeftValue())
		assert.Equal(t, 6, *state.DaysLeftValue())
		assert.Equal(t, "6 Days Left", state.DaysLeftLabel())
		assert.InDelta(t, 0.2, state.Progress(), 0.0001)

		plan, ok := sess.Plan()
		assert.True(t, ok)
		assert.Equal(t, models.PlanMonthly, plan)

		assert.Equal(t, 1, client.Calls("FetchUserDetails"))
		assert.Equal(t, 1, client.Calls("GetSubscriptionStatuses"))
	})

	t.Run("no active subscription clears the persisted plan", func(t *testing.T) {
		client := activeClient()
		client.Subscriptions = client.Subscriptions[:1]
		sess := newTestSession(t, "tok")
		require.NoError(t, sess.SetPlan(models.PlanDaily))

		d := NewDashboard(client, sess, quiet())
		defer d.Deactivate()

		require.NoError(t, d.Activate(ctx))

		assert.Nil(t, d.State().Subscription)
		assert.Zero(t, d.State().DaysLeft)
		assert.Nil(t, d.State().DaysLeftValue())
		_, ok := sess.Plan()
		assert.False(t, ok)
	})

	t.Run("unparseable end date leaves days left unknown", func(t *testing.T) {
		client := activeClient()
		client.Subscriptions[1].EndDate = "soon"
		sess := newTestSession(t, "tok")

		d := NewDashboard(client, sess, quiet())
		defer d.Deactivate()

		require.NoError(t, d.Activate(ctx))

		state := d.State()
		require.NotNil(t, state.Subscription)
		assert.False(t, state.HasDaysLeft)
		assert.Nil(t, state.DaysLeftValue())
	})

	t.Run("fetch failure falls back to the cached user", func(t *testing.T) {
		client := activeClient()
		client.SubsErr = errors.New("boom")
		sess := newTestSession(t, "tok")
		require.NoError(t, sess.SetCachedUser(models.User{Name: "Cached", Role: models.RoleSupervisor}))
		require.NoError(t, sess.SetPlan(models.PlanMonthly))

		d := NewDashboard(client, sess, quiet())
		defer d.Deactivate()

		assert.Error(t, d.Activate(ctx))

		state := d.State()
		assert.Equal(t, "Cached", state.User.Name)
		assert.True(t, state.Privileged())
		assert.Nil(t, state.Subscription)
		assert.Empty(t, state.Error)

		_, ok := sess.Plan()
		assert.False(t, ok, "plan should be cleared on failure")
		assert.Equal(t, 1, client.Calls("GetSubscriptionStatuses"), "no retry")
	})

	t.Run("fetch failure without a cached user shows an inline error", func(t *testing.T) {
		client := activeClient()
		client.UserErr = shared.ErrServiceUnavailable

		d := NewDashboard(client, newTestSession(t, "tok"), quiet())
		defer d.Deactivate()

		err := d.Activate(ctx)
		assert.ErrorIs(t, err, shared.ErrServiceUnavailable)

		state := d.State()
		assert.Nil(t, state.User)
		assert.Equal(t, DashboardLoadError, state.Error)
	})

	t.Run("results arriving after deactivate are discarded", func(t *testing.T) {
		client := activeClient()
		client.Gate = make(chan struct{})
		d := NewDashboard(client, newTestSession(t, "tok"), quiet())

		done := make(chan error, 1)
		go func() { done <- d.Activate(ctx) }()

		require.Eventually(t, func() bool { return client.TotalCalls() == 2 }, time.Second, time.Millisecond)

		d.Deactivate()
		close(client.Gate)
		<-done

		state := d.State()
		assert.Nil(t, state.User)
		assert.Nil(t, state.Subscription)
		assert.Empty(t, state.Error)
		assert.False(t, d.Active())
	})
}

func TestDashboardTicker(t *testing.T) {
	ctx := context.Background()

	t.Run("recomputes days left periodically", func(t *testing.T) {
		clock := newFakeClock(dashNow)
		d := NewDashboard(activeClient(), newTestSession(t, "tok"), quiet(),
			WithClock(clock.Now), WithTickInterval(2*time.Millisecond))
		defer d.Deactivate()

		require.NoError(t, d.Activate(ctx))
		require.Equal(t, 6, d.State().DaysLeft)

		clock.Set(dashEnd.Add(-20 * time.Hour))
		assert.Eventually(t, func() bool { return d.State().DaysLeft == 1 }, time.Second, time.Millisecond)
		assert.Equal(t, "1 Day Left", d.State().DaysLeftLabel())

		clock.Set(dashEnd.Add(time.Hour))
		assert.Eventually(t, func() bool { return d.State().DaysLeft == 0 }, time.Second, time.Millisecond)
	})

	t.Run("no updates after deactivate", func(t *testing.T) {
		clock := newFakeClock(dashNow)
		d := NewDashboard(activeClient(), newTestSession(t, "tok"), quiet(),
			WithClock(clock.Now), WithTickInterval(time.Millisecond))

		require.NoError(t, d.Activate(ctx))
		d.Deactivate()
		drain(d.Updates())

		before := d.State()
		clock.Set(dashEnd.Add(-time.Hour))
		time.Sleep(20 * time.Millisecond)

		assert.Equal(t, before.DaysLeft, d.State().DaysLeft)
		select {
		case u := <-d.Updates():
			t.Fatalf("unexpected update after deactivate: %+v", u)
		default:
		}
	})
}

func TestDashboardCancellation(t *testing.T) {
	ctx := context.Background()

	t.Run("confirm success clears the subscription", func(t *testing.T) {
		client := activeClient()
		sess := newTestSession(t, "tok")
		d := NewDashboard(client, sess, quiet(), WithClock(newFakeClock(dashNow).Now), WithTickInterval(time.Millisecond))
		defer d.Deactivate()

		require.NoError(t, d.Activate(ctx))
		require.True(t, d.OpenCancelDialog())
		assert.Equal(t, DialogConfirmCancel, d.State().Dialog)

		require.NoError(t, d.Confirm(ctx))

		state := d.State()
		assert.Equal(t, DialogClosed, state.Dialog)
		assert.Nil(t, state.Subscription)
		assert.Zero(t, state.DaysLeft)
		assert.Nil(t, state.DaysLeftValue())
		assert.Equal(t, CancelSuccessNotice, state.Notice)
		_, ok := sess.Plan()
		assert.False(t, ok)

		// the ticker stopped with the subscription
		time.Sleep(10 * time.Millisecond)
		assert.Zero(t, d.State().DaysLeft)

		d.Dismiss()
		assert.Empty(t, d.State().Notice)
	})

	t.Run("confirm failure keeps state and alerts", func(t *testing.T) {
		client := activeClient()
		client.CancelErr = shared.ErrAPIRequest
		sess := newTestSession(t, "tok")
		d := NewDashboard(client, sess, quiet(), WithClock(newFakeClock(dashNow).Now))
		defer d.Deactivate()

		require.NoError(t, d.Activate(ctx))
		require.True(t, d.OpenCancelDialog())

		assert.ErrorIs(t, d.Confirm(ctx), shared.ErrAPIRequest)

		state := d.State()
		assert.Equal(t, DialogClosed, state.Dialog)
		assert.Equal(t, CancelFailedAlert, state.Alert)
		require.NotNil(t, state.Subscription)
		assert.Equal(t, 6, state.DaysLeft)
		plan, ok := sess.Plan()
		assert.True(t, ok)
		assert.Equal(t, models.PlanMonthly, plan)
	})

	t.Run("close dialog does not cancel", func(t *testing.T) {
		client := activeClient()
		d := NewDashboard(client, newTestSession(t, "tok"), quiet())
		defer d.Deactivate()

		require.NoError(t, d.Activate(ctx))
		require.True(t, d.OpenCancelDialog())
		d.CloseDialog()

		assert.Equal(t, DialogClosed, d.State().Dialog)
		assert.ErrorIs(t, d.Confirm(ctx), shared.ErrInvalidInput)
		assert.Zero(t, client.Calls("CancelSubscription"))
	})

	t.Run("dialog needs an active subscription", func(t *testing.T) {
		client := activeClient()
		client.Subscriptions = nil
		d := NewDashboard(client, newTestSession(t, "tok"), quiet())
		defer d.Deactivate()

		require.NoError(t, d.Activate(ctx))
		assert.False(t, d.OpenCancelDialog())
	})

	t.Run("confirm on an inactive view", func(t *testing.T) {
		d := NewDashboard(activeClient(), newTestSession(t, "tok"), quiet())
		assert.ErrorIs(t, d.Confirm(ctx), ErrInactive)
	})
}

func TestDashboardNavigation(t *testing.T) {
	ctx := context.Background()

	t.Run("ordinary user", func(t *testing.T) {
		d := NewDashboard(activeClient(), newTestSession(t, "tok"), quiet())
		defer d.Deactivate()
		require.NoError(t, d.Activate(ctx))

		_, err := d.AddMovie()
		assert.ErrorIs(t, err, shared.ErrForbidden)
		assert.Equal(t, RouteHome, d.Back())
		assert.Equal(t, RouteSubscription, d.Subscribe())
	})

	t.Run("supervisor", func(t *testing.T) {
		client := activeClient()
		client.User = &models.User{Name: "Root", Role: "SUPERVISOR"}
		d := NewDashboard(client, newTestSession(t, "tok"), quiet())
		defer d.Deactivate()
		require.NoError(t, d.Activate(ctx))

		route, err := d.AddMovie()
		require.NoError(t, err)
		assert.Equal(t, RouteAdmin, route)
	})
}
