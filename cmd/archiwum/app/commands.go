package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"archiwum/internal/contract"
	"archiwum/internal/store"
)

func loadEntries(ctx context.Context, db *store.Database) tea.Cmd {
	return func() tea.Msg {
		entries, err := db.List(ctx)
		return entriesLoadedMsg{entries: entries, err: err}
	}
}

func saveContract(ctx context.Context, db *store.Database, c contract.RepairContract) tea.Cmd {
	return func() tea.Msg {
		entry, err := db.Create(ctx, c)
		return contractSavedMsg{entry: entry, err: err}
	}
}

// waitForChange blocks until the watcher reports a settled change.
func waitForChange(ctx context.Context, w *store.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-w.Changes():
			return archiveChangedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}
