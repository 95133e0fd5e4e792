// Package app is the interactive terminal front end of the archive: an
// index page, the list of stored contracts and the new contract form.
package app

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"archiwum/cmd/archiwum/ui"
	"archiwum/internal/form"
	"archiwum/internal/store"
	"archiwum/internal/value"
)

// Title is shown in the header of every page.
const Title = "Archiwum Z"

// DraftBadge marks the header while an unsaved contract form is parked.
const DraftBadge = "unsaved draft"

// Mode is the page the application shows.
type Mode int

const (
	ModeIndex Mode = iota
	ModeEntries
	ModeEntry
	ModeCreate
)

func (m Mode) String() string {
	switch m {
	case ModeEntries:
		return "entries"
	case ModeEntry:
		return "entry"
	case ModeCreate:
		return "create"
	}
	return "index"
}

// Config holds the collaborators of the application.
type Config struct {
	Database *store.Database
	// Watcher is optional. When set, the entries page reloads whenever the
	// archive directory changes.
	Watcher *store.Watcher
	Styles  ui.Styles
	Logger  *zap.Logger
}

// =============================================================================
// MESSAGES
// =============================================================================

// formUpdatedMsg carries the outcome of one form edit.
type formUpdatedMsg struct {
	result form.Result
}

type entriesLoadedMsg struct {
	entries []store.Entry
	err     error
}

type contractSavedMsg struct {
	entry store.Entry
	err   error
}

type archiveChangedMsg struct{}

// =============================================================================
// MODEL
// =============================================================================

// Model is the bubbletea model of the application.
type Model struct {
	ctx     context.Context
	db      *store.Database
	watcher *store.Watcher
	styles  ui.Styles
	logger  *zap.Logger
	keys    keyMap
	help    help.Model

	mode   Mode
	width  int
	height int
	layout ui.LayoutConfig
	body   viewport.Model

	renderer *glamour.TermRenderer

	// Entries page
	entries []store.Entry
	cursor  int
	loading bool
	loadErr error

	create createPage

	status       string
	statusErr    bool
	statusNotice bool
}

type formRow struct {
	widget form.Widget
	depth  int
}

// createPage is the state of the new contract form. lastGood is the last
// value the form rebuilt successfully; buffer is the outcome of the latest
// edit and may hold an error instead.
type createPage struct {
	lastGood value.Value
	buffer   form.Result
	rows     []formRow

	focus    value.Selector
	input    textinput.Model
	inputFor value.Selector
	bound    bool
}
