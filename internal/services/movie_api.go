package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/shared"
)

const (
	signInPath        = "/api/v1/users/sign_in"
	userDetailsPath   = "/api/v1/users/me"
	subscriptionsPath = "/api/v1/subscriptions/status"
	cancelPath        = "/api/v1/subscriptions/cancel"
	wishlistPath      = "/api/v1/wishlist"
	moviesPath        = "/api/v1/movies"
)

// TokenFunc returns the current bearer token, or "" when signed out.
type TokenFunc func() string

// Token implements [oauth2.TokenSource].
func (f TokenFunc) Token() (*oauth2.Token, error) {
	token := f()
	if token == "" {
		return nil, shared.ErrNotAuthenticated
	}
	return &oauth2.Token{AccessToken: token, TokenType: "Bearer"}, nil
}

// MovieAPI implements [Client] over HTTP.
type MovieAPI struct {
	baseURL string
	base    *http.Client
	authed  *http.Client
	limiter *rate.Limiter
	logger  *log.Logger
}

// MovieAPIOptions configures [NewMovieAPI].
type MovieAPIOptions struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	Token             TokenFunc
	Transport         http.RoundTripper // defaults to http.DefaultTransport
	Logger            *log.Logger
}

// NewMovieAPI creates a [MovieAPI] from opts.
func NewMovieAPI(opts MovieAPIOptions) *MovieAPI {
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	token := opts.Token
	if token == nil {
		token = func() string { return "" }
	}
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}

	return &MovieAPI{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		base:    &http.Client{Transport: transport, Timeout: opts.Timeout},
		authed: &http.Client{
			Transport: &oauth2.Transport{Source: token, Base: transport},
			Timeout:   opts.Timeout,
		},
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
	}
}

// withToken returns a client that authenticates with a fixed token.
func (a *MovieAPI) withToken(token string) *http.Client {
	return &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   a.base.Transport,
		},
		Timeout: a.base.Timeout,
	}
}

// doRequest sends a JSON request and decodes the response into result when non-nil.
func (a *MovieAPI) doRequest(ctx context.Context, client *http.Client, method, endpoint string, body, result any) error {
	if err := a.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := shared.GenerateID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	a.logger.Debug("api request", "method", method, "endpoint", endpoint, "request_id", requestID)

	resp, err := client.Do(req)
	if err != nil {
		if errors.Is(err, shared.ErrNotAuthenticated) {
			return shared.ErrNotAuthenticated
		}
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		a.logger.Debug("api error", "endpoint", endpoint, "status", resp.StatusCode, "request_id", requestID)
		return err
	}

	if result == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidResponse, err)
	}

	return nil
}

// checkStatus maps non-2xx responses to shared errors, including the server's message when present.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	msg := http.StatusText(resp.StatusCode)
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if data, err := io.ReadAll(io.LimitReader(resp.Body, 4096)); err == nil && json.Unmarshal(data, &payload) == nil {
		if payload.Error != "" {
			msg = payload.Error
		} else if payload.Message != "" {
			msg = payload.Message
		}
	}

	return &StatusError{StatusCode: resp.StatusCode, Message: msg}
}

// StatusError is returned for non-2xx responses. It unwraps to the matching shared error.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v: status %d: %s", e.Unwrap(), e.StatusCode, e.Message)
}

func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return shared.ErrNotAuthenticated
	case http.StatusForbidden:
		return shared.ErrForbidden
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return shared.ErrServiceUnavailable
	default:
		return shared.ErrAPIRequest
	}
}

// SignIn posts credentials without a bearer token.
func (a *MovieAPI) SignIn(ctx context.Context, email, password string) (*models.SignInResult, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", shared.ErrMissingCredentials)
	}

	body := map[string]any{"user": map[string]string{"email": email, "password": password}}

	var result models.SignInResult
	if err := a.doRequest(ctx, a.base, http.MethodPost, signInPath, body, &result); err != nil {
		if errors.Is(err, shared.ErrNotAuthenticated) {
			return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
		}
		return nil, err
	}

	if result.Token == "" {
		return nil, fmt.Errorf("%w: sign-in response has no token", shared.ErrInvalidResponse)
	}

	return &result, nil
}

// FetchUserDetails retrieves the signed-in user's profile.
func (a *MovieAPI) FetchUserDetails(ctx context.Context) (*models.User, error) {
	var envelope models.UserEnvelope
	if err := a.doRequest(ctx, a.authed, http.MethodGet, userDetailsPath, nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.User, nil
}

// GetSubscriptionStatuses retrieves every subscription record.
func (a *MovieAPI) GetSubscriptionStatuses(ctx context.Context) ([]models.Subscription, error) {
	var subs []models.Subscription
	if err := a.doRequest(ctx, a.authed, http.MethodGet, subscriptionsPath, nil, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// CancelSubscription cancels the active subscription.
func (a *MovieAPI) CancelSubscription(ctx context.Context) error {
	return a.doRequest(ctx, a.authed, http.MethodPost, cancelPath, nil, nil)
}

// GetWishlistMovies retrieves the wishlist.
func (a *MovieAPI) GetWishlistMovies(ctx context.Context) (models.WishlistResponse, error) {
	var resp models.WishlistResponse
	err := a.doRequest(ctx, a.authed, http.MethodGet, wishlistPath, nil, &resp)
	return resp, err
}

// ToggleWishlist adds or removes a movie from the wishlist with the given token.
func (a *MovieAPI) ToggleWishlist(ctx context.Context, movieID int, token string) error {
	if token == "" {
		return shared.ErrNotAuthenticated
	}
	endpoint := fmt.Sprintf("%s/%d/toggle", wishlistPath, movieID)
	return a.doRequest(ctx, a.withToken(token), http.MethodPost, endpoint, nil, nil)
}

// ListMovies retrieves the movie catalogue.
func (a *MovieAPI) ListMovies(ctx context.Context) (models.WishlistResponse, error) {
	var resp models.WishlistResponse
	err := a.doRequest(ctx, a.authed, http.MethodGet, moviesPath, nil, &resp)
	return resp, err
}

// DeleteMovie removes a movie from the catalogue.
func (a *MovieAPI) DeleteMovie(ctx context.Context, movieID int) error {
	endpoint := fmt.Sprintf("%s/%d", moviesPath, movieID)
	err := a.doRequest(ctx, a.authed, http.MethodDelete, endpoint, nil, nil)

	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %d", shared.ErrMovieNotFound, movieID)
	}
	return err
}
