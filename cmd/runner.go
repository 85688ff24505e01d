package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hcollier/showscout/internal/services"
	"github.com/hcollier/showscout/internal/shared"
	"github.com/hcollier/showscout/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	catalog services.Catalog
	events  services.EventFinder
	logger  *log.Logger
	output  io.Writer
	engine  tasks.ScanEngine
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Catalog services.Catalog
	Events  services.EventFinder
	Logger  *log.Logger
	Output  io.Writer
	Engine  tasks.ScanEngine
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
	if opts.Engine == nil {
		opts.Engine = tasks.NewConcertEngine(opts.Catalog, opts.Events)
	}

	return &Runner{
		config:  opts.Config,
		catalog: opts.Catalog,
		events:  opts.Events,
		logger:  opts.Logger,
		output:  opts.Output,
		engine:  opts.Engine,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		scanCommand, spotifyCommand, eventsCommand, setupCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// SetLogger replaces the runner's logger, e.g. with a file logger while the TUI runs.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// tuiLogPath returns the log file used while the TUI owns the terminal,
// preferring the configured logging file.
func (r *Runner) tuiLogPath() string {
	if r.config.Logging.File != "" {
		return r.config.Logging.File
	}
	return "./tmp/showscout-tui.log"
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
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
