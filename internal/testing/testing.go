// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/cinex/internal/models"
	"github.com/desertthunder/cinex/internal/shared"
)

// MockClient is a test double for [services.Client].
//
// Each method returns the matching field. Calls are counted by method name.
type MockClient struct {
	mu    sync.Mutex
	calls map[string]int

	SignInResult  *models.SignInResult
	SignInErr     error
	User          *models.User
	UserErr       error
	Subscriptions []models.Subscription
	SubsErr       error
	CancelErr     error
	Wishlist      []models.Movie
	WishlistErr   error
	ToggleErr     error
	Movies        []models.Movie
	MoviesErr     error
	DeleteErr     error

	// Gate, when set, blocks every call until it is closed or the context ends.
	Gate chan struct{}

	Toggled []int
	Tokens  []string
	Deleted []int
}

func (m *MockClient) record(ctx context.Context, name string) error {
	m.mu.Lock()
	if m.calls == nil {
		m.calls = map[string]int{}
	}
	m.calls[name]++
	gate := m.Gate
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Calls returns how many times method was invoked.
func (m *MockClient) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// TotalCalls returns the number of calls across all methods.
func (m *MockClient) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := 0
	for _, n := range m.calls {
		total += n
	}
	return total
}

func (m *MockClient) SignIn(ctx context.Context, email, password string) (*models.SignInResult, error) {
	if err := m.record(ctx, "SignIn"); err != nil {
		return nil, err
	}
	return m.SignInResult, m.SignInErr
}

func (m *MockClient) FetchUserDetails(ctx context.Context) (*models.User, error) {
	if err := m.record(ctx, "FetchUserDetails"); err != nil {
		return nil, err
	}
	if m.UserErr != nil {
		return nil, m.UserErr
	}
	return m.User, nil
}

func (m *MockClient) GetSubscriptionStatuses(ctx context.Context) ([]models.Subscription, error) {
	if err := m.record(ctx, "GetSubscriptionStatuses"); err != nil {
		return nil, err
	}
	return m.Subscriptions, m.SubsErr
}

func (m *MockClient) CancelSubscription(ctx context.Context) error {
	if err := m.record(ctx, "CancelSubscription"); err != nil {
		return err
	}
	return m.CancelErr
}

func (m *MockClient) GetWishlistMovies(ctx context.Context) (models.WishlistResponse, error) {
	if err := m.record(ctx, "GetWishlistMovies"); err != nil {
		return models.WishlistResponse{}, err
	}
	return models.NewWishlistResponse(m.Wishlist), m.WishlistErr
}

func (m *MockClient) ToggleWishlist(ctx context.Context, movieID int, token string) error {
	if err := m.record(ctx, "ToggleWishlist"); err != nil {
		return err
	}
	m.mu.Lock()
	m.Toggled = append(m.Toggled, movieID)
	m.Tokens = append(m.Tokens, token)
	m.mu.Unlock()
	return m.ToggleErr
}

func (m *MockClient) ListMovies(ctx context.Context) (models.WishlistResponse, error) {
	if err := m.record(ctx, "ListMovies"); err != nil {
		return models.WishlistResponse{}, err
	}
	return models.NewWishlistResponse(m.Movies), m.MoviesErr
}

func (m *MockClient) DeleteMovie(ctx context.Context, movieID int) error {
	if err := m.record(ctx, "DeleteMovie"); err != nil {
		return err
	}
	m.mu.Lock()
	m.Deleted = append(m.Deleted, movieID)
	m.mu.Unlock()
	return m.DeleteErr
}

// MemoryStore is an in-memory [session.Store].
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*models.SessionEntry
}

// NewMemoryStore creates an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string]*models.SessionEntry{}}
}

func (s *MemoryStore) Get(key string) (*models.SessionEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[key]
	if !ok {
		return nil, shared.ErrSessionKeyNotFound
	}
	return models.NewSessionEntry(entry.Key(), entry.Value()), nil
}

func (s *MemoryStore) Put(entry *models.SessionEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entry.Key()] = entry
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; !ok {
		return shared.ErrSessionKeyNotFound
	}
	delete(s.entries, key)
	return nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Expected file %s to exist: %v", path, err)
	}
	if info.IsDir() {
		t.Fatalf("Expected %s to be a file, got a directory", path)
	}
}
