package views

import (
	"strconv"

	"github.com/desertthunder/cinex/internal/models"
)

// Application routes.
const (
	RouteHome         = "/"
	RouteLogin        = "/login"
	RouteSignup       = "/signup"
	RouteDashboard    = "/dashboard"
	RouteAdmin        = "/admin"
	RouteSubscription = "/subscription"
	RouteWishlist     = "/wishlist"
)

// MovieRoute returns the detail route for a movie.
func MovieRoute(id int) string {
	return "/movie/" + strconv.Itoa(id)
}

// Terminal reports whether route has a terminal screen. Other routes open in the browser.
func Terminal(route string) bool {
	switch route {
	case RouteHome, RouteLogin, RouteDashboard, RouteWishlist:
		return true
	default:
		return false
	}
}

// OpenMovie resolves where activating a movie card leads. Premium titles
// send users without an active plan to the subscription page.
func OpenMovie(id int, premium bool, plan models.PlanType) string {
	if premium && plan == "" {
		return RouteSubscription
	}
	return MovieRoute(id)
}
