package services

import (
	"context"

	"github.com/desertthunder/cinex/internal/models"
)

// Client defines the operations the views need from the movie API.
type Client interface {
	// SignIn exchanges credentials for a bearer token and the user's profile.
	SignIn(ctx context.Context, email, password string) (*models.SignInResult, error)

	// FetchUserDetails returns the signed-in user's profile.
	FetchUserDetails(ctx context.Context) (*models.User, error)

	// GetSubscriptionStatuses returns every subscription record for the signed-in user.
	GetSubscriptionStatuses(ctx context.Context) ([]models.Subscription, error)

	// CancelSubscription cancels the active subscription.
	CancelSubscription(ctx context.Context) error

	// GetWishlistMovies returns the wishlist, accepting either response shape.
	GetWishlistMovies(ctx context.Context) (models.WishlistResponse, error)

	// ToggleWishlist adds or removes movieID using an explicit token.
	ToggleWishlist(ctx context.Context, movieID int, token string) error

	// ListMovies returns the catalogue shown on the browse screen.
	ListMovies(ctx context.Context) (models.WishlistResponse, error)

	// DeleteMovie removes a movie from the catalogue. Supervisor only.
	DeleteMovie(ctx context.Context, movieID int) error
}
