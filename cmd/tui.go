package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spindle-fm/spindle/internal/models"
	"github.com/spindle-fm/spindle/internal/shared"
	"github.com/spindle-fm/spindle/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive recommendation browser.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	engine, err := r.loadEngine()
	if err != nil {
		return err
	}

	songType, err := models.ParseSongType(cmd.String("song-type"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/spindle-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(engine, songType)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
