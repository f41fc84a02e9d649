package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nexusaudio/nexus/internal/models"
	"github.com/nexusaudio/nexus/internal/shared"
	"github.com/nexusaudio/nexus/internal/ui"
	"github.com/urfave/cli/v3"
)

// SearchTUI launches the interactive search overlay.
func (r *Runner) SearchTUI(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	db, svc, err := r.openCatalog(config)
	if err != nil {
		return err
	}
	defer db.Close()

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/nexus-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	searcher := func(ctx context.Context, keyword string) ([]models.Track, error) {
		return svc.SearchTracks(ctx, models.SearchFilters{Keyword: keyword})
	}

	model := ui.NewModel(ctx, fileLogger, searcher, nil)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
