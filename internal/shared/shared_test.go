package shared

import (
	"bytes"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLogger(t *testing.T) {
	t.Run("NewLogger writes to the given writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		WithLogger(logger, "screen", "dashboard").Info("activated")

		out := buf.String()
		if !strings.Contains(out, "activated") || !strings.Contains(out, "screen=dashboard") {
			t.Errorf("unexpected log output %q", out)
		}
	})

	t.Run("SetLogLevel filters", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		SetLogLevel(logger, log.WarnLevel)
		logger.Info("hidden")

		if buf.Len() != 0 {
			t.Errorf("expected info to be filtered, got %q", buf.String())
		}
	})

	t.Run("ParseLevel", func(t *testing.T) {
		if ParseLevel("debug") != log.DebugLevel {
			t.Error("expected debug level")
		}
		if ParseLevel("nonsense") != log.InfoLevel {
			t.Error("expected info fallback")
		}
	})

	t.Run("NewFileLogger", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "cinex.log")
		logger, err := NewFileLogger(LogConfig{File: path, Level: "info", MaxSize: 1})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		logger.Info("hello from the tui")

		if _, err := NewFileLogger(LogConfig{}); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig for empty path, got %v", err)
		}
	})
}

func TestBrowser(t *testing.T) {
	t.Run("RouteURL", func(t *testing.T) {
		tc := []struct {
			base, route, want string
		}{
			{"http://localhost:5173", "/subscription", "http://localhost:5173/subscription"},
			{"http://localhost:5173/", "movie/4", "http://localhost:5173/movie/4"},
			{"https://films.example.com/app", "/admin", "https://films.example.com/app/admin"},
		}
		for _, tt := range tc {
			got, err := RouteURL(tt.base, tt.route)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("RouteURL(%q, %q) = %q, want %q", tt.base, tt.route, got, tt.want)
			}
		}

		if _, err := RouteURL("", "/admin"); !errors.Is(err, ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})

	t.Run("OpenBrowser", func(t *testing.T) {
		origRuntime, origStart := getRuntime, execStart
		t.Cleanup(func() { getRuntime, execStart = origRuntime, origStart })

		var launched []string
		execStart = func(cmd *exec.Cmd) error {
			launched = cmd.Args
			return nil
		}

		getRuntime = func() string { return "linux" }
		if err := OpenRoute("http://localhost:5173", "/signup"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(launched) != 2 || launched[0] != "xdg-open" || launched[1] != "http://localhost:5173/signup" {
			t.Errorf("unexpected command %v", launched)
		}

		getRuntime = func() string { return "plan9" }
		if err := OpenBrowser("http://x"); err == nil {
			t.Error("expected unsupported platform error")
		}
	})
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b || len(a) != 36 {
		t.Errorf("expected distinct uuids, got %q and %q", a, b)
	}
}
