package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func quietLogger() *log.Logger { return log.New(io.Discard) }

func TestBasicRouter(t *testing.T) {
	t.Run("method patterns", func(t *testing.T) {
		r := NewBasicRouter()
		r.Handle(http.MethodGet, "/healthz", Health())

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}

		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/healthz", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
		if allow := rec.Header().Get("Allow"); !strings.Contains(allow, http.MethodGet) {
			t.Errorf("expected Allow to list GET, got %q", allow)
		}
	})

	t.Run("middleware order", func(t *testing.T) {
		var order []string
		mark := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		r := NewBasicRouter()
		r.Use(mark("first"), mark("second"))
		r.Handle(http.MethodGet, "/", http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			order = append(order, "handler")
		}))
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		want := []string{"first", "second", "handler"}
		if strings.Join(order, ",") != strings.Join(want, ",") {
			t.Errorf("expected %v, got %v", want, order)
		}
	})

	t.Run("request id", func(t *testing.T) {
		var seen string
		r := NewBasicRouter()
		r.Use(RequestID(), Logging(quietLogger()))
		r.Handle(http.MethodGet, "/", http.HandlerFunc(func(_ http.ResponseWriter, req *http.Request) {
			seen = RequestIDFrom(req.Context())
		}))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if seen == "" || rec.Header().Get(RequestIDHeader) != seen {
			t.Errorf("expected generated id echoed, got %q / %q", seen, rec.Header().Get(RequestIDHeader))
		}

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc")
		r.ServeHTTP(httptest.NewRecorder(), req)
		if seen != "abc" {
			t.Errorf("expected incoming id to be kept, got %q", seen)
		}
	})

	t.Run("recover", func(t *testing.T) {
		r := NewBasicRouter()
		r.Use(Recover(quietLogger()))
		r.Handle(http.MethodGet, "/", http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("boom")
		}))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", rec.Code)
		}
	})
}

func TestPushHandler(t *testing.T) {
	var (
		mu       sync.Mutex
		received []string
	)
	r := NewBasicRouter()
	r.Handler(NewPushHandler(func(_ context.Context, payload []byte) {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, string(payload))
	}))

	post := func(body string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body)))
		return rec
	}

	t.Run("accepts a notification", func(t *testing.T) {
		rec := post(`{"notification":{"title":"New movie","body":"Dune"}}`)
		if rec.Code != http.StatusAccepted {
			t.Fatalf("expected 202, got %d", rec.Code)
		}
		if len(received) != 1 || !strings.Contains(received[0], "Dune") {
			t.Errorf("expected payload to be delivered, got %v", received)
		}
	})

	t.Run("rejects malformed payloads", func(t *testing.T) {
		for _, body := range []string{`not json`, `{}`, `{"notification":{"body":"no title"}}`} {
			if rec := post(body); rec.Code != http.StatusBadRequest {
				t.Errorf("%q: expected 400, got %d", body, rec.Code)
			}
		}
	})

	t.Run("rejects oversized payloads", func(t *testing.T) {
		body := `{"notification":{"title":"` + strings.Repeat("x", MaxPushBody) + `"}}`
		if rec := post(body); rec.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("expected 413, got %d", rec.Code)
		}
	})

	t.Run("only POST", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/push", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}
	})
}

func TestServe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ready := make(chan string, 1)
	done := make(chan error, 1)

	go func() { done <- Serve(ctx, "127.0.0.1:0", Health(), quietLogger(), ready) }()

	addr := <-ready
	resp, err := http.Get("http://" + addr + "/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(2 * ShutdownTimeout):
		t.Fatal("server did not shut down")
	}
}

func TestServeUnreadReadyChannel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ready := make(chan string)
	done := make(chan error, 1)

	go func() { done <- Serve(ctx, "127.0.0.1:0", Health(), quietLogger(), ready) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(2 * ShutdownTimeout):
		t.Fatal("server blocked on an unread ready channel")
	}
}
