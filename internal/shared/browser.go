package shared

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

var getRuntime = func() string { return runtime.GOOS }

// execStart is swapped in tests to avoid launching processes.
var execStart = func(cmd *exec.Cmd) error { return cmd.Start() }

// RouteURL joins a front-end base URL with an application route such as "/subscription".
func RouteURL(baseURL, route string) (string, error) {
	if baseURL == "" {
		return "", fmt.Errorf("%w: web base URL is not configured", ErrMissingConfig)
	}
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return base.JoinPath(route).String(), nil
}

// OpenBrowser opens the default system browser to the specified URL.
//
// Supports macOS, Linux, and Windows platforms.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	rt := getRuntime()
	switch rt {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return fmt.Errorf("unsupported platform: %s", rt)
	}

	if err := execStart(cmd); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return nil
}

// OpenRoute opens route on the configured web front-end.
func OpenRoute(baseURL, route string) error {
	target, err := RouteURL(baseURL, route)
	if err != nil {
		return err
	}
	return OpenBrowser(target)
}
