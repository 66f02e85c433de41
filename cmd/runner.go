package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/cinex/internal/services"
	"github.com/desertthunder/cinex/internal/session"
	"github.com/desertthunder/cinex/internal/shared"
	"github.com/desertthunder/cinex/internal/views"
)

// Opener hands a front-end route to the browser.
type Opener func(route string) error

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	client     services.Client
	api        *services.APIService
	session    *session.Session
	opener     Opener
	logger     *log.Logger
	output     io.Writer
	now        func() time.Time
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Client     services.Client
	API        *services.APIService
	Session    *session.Session
	Opener     Opener
	Logger     *log.Logger
	Output     io.Writer
	Now        func() time.Time
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.API == nil {
		opts.API = services.NewAPIService(opts.Config.API.BaseURL, nil)
	}
	if opts.Opener == nil {
		baseURL := opts.Config.Web.BaseURL
		opts.Opener = func(route string) error { return shared.OpenRoute(baseURL, route) }
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		client:     opts.Client,
		api:        opts.API,
		session:    opts.Session,
		opener:     opts.Opener,
		logger:     opts.Logger,
		output:     opts.Output,
		now:        opts.Now,
	}
}

// SetLogger replaces the runner's logger, e.g. with a file logger while a TUI owns the terminal.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, dashboardCommand, wishlistCommand, browseCommand, notifyCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// requireServices fails when the API client or session was not wired.
func (r *Runner) requireServices() error {
	if r.client == nil || r.session == nil {
		return fmt.Errorf("%w: API client or session not initialized", shared.ErrServiceUnavailable)
	}
	return nil
}

// viewOptions are the controller options for one-shot (non-interactive) commands.
func (r *Runner) viewOptions() []views.Option {
	return []views.Option{views.WithLogger(r.logger), views.WithClock(r.now), views.WithTickInterval(0)}
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
