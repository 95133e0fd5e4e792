package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"archiwum/cmd/archiwum/app"
	"archiwum/cmd/archiwum/ui"
	"archiwum/internal/logging"
	"archiwum/internal/store"
)

// runInteractive starts the terminal UI.
func runInteractive(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	db, err := openDatabase()
	if err != nil {
		return err
	}

	watcher := startWatcher(ctx, db)
	if watcher != nil {
		defer watcher.Stop()
	}

	model := app.New(ctx, app.Config{
		Database: db,
		Watcher:  watcher,
		Styles:   ui.NewStyles(ui.ThemeFor(cfg.UI.Theme)),
		Logger:   logging.Get(logging.CategoryUI),
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("running interface: %w", err)
	}
	return nil
}

// startWatcher returns a running watcher, or nil when watching is disabled
// or unavailable. The interface works without it.
func startWatcher(ctx context.Context, db *store.Database) *store.Watcher {
	if !cfg.Archive.Watch {
		return nil
	}
	log := logging.Get(logging.CategoryWatch)
	w, err := store.NewWatcher(db.BaseDir(), cfg.GetWatchDebounce(), log)
	if err != nil {
		log.Warn("archive watcher unavailable", zap.Error(err))
		return nil
	}
	if err := w.Start(ctx); err != nil {
		log.Warn("archive watcher unavailable", zap.Error(err))
		w.Stop()
		return nil
	}
	return w
}
