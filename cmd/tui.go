package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hcollier/showscout/internal/shared"
	"github.com/hcollier/showscout/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for a playlist scan.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.catalog == nil {
		return fmt.Errorf("%w: Spotify credentials not configured", shared.ErrServiceUnavailable)
	}
	if r.events == nil {
		return fmt.Errorf("%w: Ticketmaster API key not configured", shared.ErrServiceUnavailable)
	}

	req, err := r.buildScanRequest(cmd)
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.tuiLogPath())
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.engine, req)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
