package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"archiwum/cmd/archiwum/ui"
	"archiwum/internal/contract"
	"archiwum/internal/form"
	"archiwum/internal/logging"
)

const indexMarkdown = `# Archiwum Z

Repair contracts of the workshop, one file per contract.

| Key | Action |
|-----|--------|
| ` + "`e`" + ` | browse stored contracts |
| ` + "`n`" + ` | write a new contract |
| ` + "`q`" + ` | quit |

In the contract form use **tab** and **shift+tab** to move between fields,
**space** to flip a checkbox, **ctrl+a** / **ctrl+d** to add or remove list
items and **ctrl+s** to save.
`

// New builds the application model.
func New(ctx context.Context, cfg Config) Model {
	if cfg.Logger == nil {
		cfg.Logger = logging.Get(logging.CategoryUI)
	}
	layout := ui.NewLayoutConfig(80, 24)
	m := Model{
		ctx:     ctx,
		db:      cfg.Database,
		watcher: cfg.Watcher,
		styles:  cfg.Styles,
		logger:  cfg.Logger,
		keys:    defaultKeyMap(),
		help:    help.New(),
		layout:  layout,
		body:    viewport.New(layout.ContentWidth(), layout.ContentHeight()),
		loading: true,
	}
	m.renderer = m.newRenderer()
	m.syncBody()
	return m
}

// Init loads the archive and starts listening for changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(loadEntries(m.ctx, m.db), waitForChange(m.ctx, m.watcher))
}

// Update handles one message.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		m, cmd = m.handleKey(msg)

	case formUpdatedMsg:
		m.applyForm(msg)

	case entriesLoadedMsg:
		m.loading = false
		m.loadErr = msg.err
		if msg.err != nil {
			m.logger.Error("loading entries", zap.Error(msg.err))
			m.setError(msg.err)
			break
		}
		m.entries = msg.entries
		m.cursor = max(0, min(m.cursor, len(m.entries)-1))
		m.logger.Debug("entries loaded", zap.Int("count", len(m.entries)))

	case contractSavedMsg:
		if msg.err != nil {
			m.logger.Error("saving contract", zap.Error(msg.err))
			m.setError(msg.err)
			break
		}
		m.setStatus("Saved " + msg.entry.Name())
		m.create = createPage{}
		m.mode = ModeEntries
		m.loading = true
		cmd = loadEntries(m.ctx, m.db)

	case archiveChangedMsg:
		m.logger.Debug("archive changed")
		cmds := []tea.Cmd{waitForChange(m.ctx, m.watcher)}
		if !m.loading {
			m.loading = true
			cmds = append(cmds, loadEntries(m.ctx, m.db))
		}
		cmd = tea.Batch(cmds...)
	}

	m.syncBody()
	return m, cmd
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.layout = ui.NewLayoutConfig(width, height)
	m.body.Width = m.layout.ContentWidth()
	m.body.Height = m.layout.ContentHeight()
	m.help.Width = width
	m.renderer = m.newRenderer()
}

func (m Model) newRenderer() *glamour.TermRenderer {
	style := "light"
	if m.styles.Theme.IsDark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(m.layout.ContentWidth()),
	)
	if err != nil {
		m.logger.Warn("markdown renderer unavailable", zap.Error(err))
		return nil
	}
	return r
}

func (m *Model) setStatus(s string) {
	m.status, m.statusErr, m.statusNotice = s, false, false
}

// setNotice shows s as a warning: an action is in flight or edits were
// discarded.
func (m *Model) setNotice(s string) {
	m.status, m.statusErr, m.statusNotice = s, false, true
}

func (m *Model) setError(err error) {
	m.status, m.statusErr, m.statusNotice = err.Error(), true, false
}

// applyForm feeds a message produced by a form callback back into the
// create page.
func (m *Model) applyForm(msg form.Msg) {
	up, ok := msg.(formUpdatedMsg)
	if !ok {
		return
	}
	m.create.apply(up.result)
	if up.result.OK() {
		m.status = ""
		return
	}
	logging.Get(logging.CategoryForm).Debug("edit rejected",
		zap.Stringer("selector", m.create.focus), zap.Error(up.result.Err))
}

// =============================================================================
// KEYS
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeCreate:
		return m.handleCreateKey(msg)

	case ModeEntries:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.cursor = max(0, m.cursor-1)
		case key.Matches(msg, m.keys.Down):
			m.cursor = max(0, min(len(m.entries)-1, m.cursor+1))
		case key.Matches(msg, m.keys.Open):
			if len(m.entries) > 0 {
				m.mode = ModeEntry
				m.body.GotoTop()
			}
		case key.Matches(msg, m.keys.Refresh):
			m.loading = true
			return m, loadEntries(m.ctx, m.db)
		case key.Matches(msg, m.keys.New):
			return m.startCreate()
		case key.Matches(msg, m.keys.Back):
			m.mode = ModeIndex
		case msg.String() == "q":
			return m, tea.Quit
		}

	case ModeEntry:
		switch {
		case key.Matches(msg, m.keys.Back):
			m.mode = ModeEntries
		case msg.String() == "q":
			return m, tea.Quit
		default:
			var cmd tea.Cmd
			m.body, cmd = m.body.Update(msg)
			return m, cmd
		}

	default:
		switch {
		case key.Matches(msg, m.keys.Entries):
			m.mode = ModeEntries
			if !m.loading {
				m.loading = true
				return m, loadEntries(m.ctx, m.db)
			}
		case key.Matches(msg, m.keys.New):
			return m.startCreate()
		case msg.String() == "q":
			return m, tea.Quit
		}
	}
	return m, nil
}

// startCreate opens the contract form, resuming an unsaved draft.
func (m Model) startCreate() (Model, tea.Cmd) {
	m.mode = ModeCreate
	if len(m.create.rows) > 0 {
		return m, textinputBlink(m.create)
	}
	return m.resetForm()
}

func (m Model) resetForm() (Model, tea.Cmd) {
	page, err := newCreatePage(contract.New())
	if err != nil {
		m.setError(err)
		m.mode = ModeIndex
		return m, nil
	}
	m.create = page
	m.body.GotoTop()
	return m, textinputBlink(m.create)
}

func (m Model) handleCreateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	p := &m.create
	switch {
	case key.Matches(msg, m.keys.Save):
		return m.save()
	case key.Matches(msg, m.keys.Reset):
		m.setNotice("Form reset")
		return m.resetForm()
	case key.Matches(msg, m.keys.Back):
		m.mode = ModeIndex
		return m, nil
	case key.Matches(msg, m.keys.Next):
		p.move(1)
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		p.move(-1)
		return m, nil
	case key.Matches(msg, m.keys.Append):
		return m.structural((*createPage).appendItem)
	case key.Matches(msg, m.keys.Remove):
		return m.structural((*createPage).removeItem)
	case key.Matches(msg, m.keys.Section):
		return m.structural((*createPage).toggleSection)
	}

	w, ok := p.focused()
	if !ok {
		return m, nil
	}
	switch w := w.(type) {
	case *form.Toggle:
		if key.Matches(msg, m.keys.Toggle) {
			m.applyForm(w.OnToggle(!w.Checked))
		}
		return m, nil
	case *form.TextInput:
		before := p.input.Value()
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		if text := p.input.Value(); text != before {
			m.applyForm(w.OnInput(text))
		}
		return m, cmd
	}
	return m, nil
}

func (m Model) structural(edit func(*createPage) (form.Msg, error)) (Model, tea.Cmd) {
	msg, err := edit(&m.create)
	if err != nil {
		m.setError(err)
		return m, nil
	}
	m.applyForm(msg)
	return m, textinputBlink(m.create)
}

func (m Model) save() (Model, tea.Cmd) {
	if !m.create.buffer.OK() {
		m.setError(fmt.Errorf("cannot save: %w", m.create.buffer.Err))
		return m, nil
	}
	record, err := form.FromValue[contract.RepairContract](m.create.lastGood)
	if err != nil {
		m.setError(err)
		return m, nil
	}
	m.setNotice("Saving…")
	return m, saveContract(m.ctx, m.db, record)
}

func textinputBlink(p createPage) tea.Cmd {
	if !p.bound {
		return nil
	}
	return p.input.Cursor.BlinkCmd()
}

// =============================================================================
// VIEW
// =============================================================================

// syncBody renders the current page into the body viewport and keeps the
// focused line in view.
func (m *Model) syncBody() {
	content, focusLine := m.bodyView()
	m.body.SetContent(content)
	if focusLine < 0 {
		return
	}
	switch {
	case focusLine < m.body.YOffset:
		m.body.SetYOffset(focusLine)
	case focusLine >= m.body.YOffset+m.body.Height:
		m.body.SetYOffset(focusLine - m.body.Height + 1)
	}
}

func (m Model) bodyView() (string, int) {
	switch m.mode {
	case ModeEntries:
		return m.entriesView()
	case ModeEntry:
		return m.entryView(), -1
	case ModeCreate:
		return m.create.view(m.styles, m.layout)
	}
	return m.indexView(), -1
}

func (m Model) indexView() string {
	out := indexMarkdown
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(indexMarkdown); err == nil {
			out = rendered
		}
	}
	if m.db != nil {
		out += m.styles.Muted.Render(fmt.Sprintf("%d contracts in %s", len(m.entries), m.db.BaseDir()))
	}
	return out
}

func (m Model) entriesView() (string, int) {
	switch {
	case m.loading && len(m.entries) == 0:
		return m.styles.Muted.Render("Loading…"), -1
	case m.loadErr != nil:
		return m.styles.ErrorBox.Render(m.loadErr.Error()), -1
	case len(m.entries) == 0:
		return m.styles.Muted.Render("No contracts yet. Press n to write one."), -1
	}

	table := ui.NewSimpleTable("", []string{"Date", "Customer", "Phone", "Prognosis", "Description"})
	table.Selected = m.cursor
	table.MaxCellWidth = 32
	if m.layout.IsCompact {
		table.MaxCellWidth = 18
	}
	for _, e := range m.entries {
		c := e.Contract
		customer := c.Info.Customer.Name
		if c.Info.Customer.IsCompany() {
			customer += " (" + c.Info.Customer.TaxNumber + ")"
		}
		table.AddRow(
			c.Date.String(),
			customer,
			c.Info.Customer.Phone,
			c.Info.PrognosisPrice.StringFixed(2),
			strings.Join(c.Info.Description, "; "),
		)
	}
	// header and divider precede the rows
	return table.View(m.styles), m.cursor + 2
}

func (m Model) entryView() string {
	if m.cursor >= len(m.entries) {
		return ""
	}
	e := m.entries[m.cursor]
	v, err := form.ToValue(e.Contract)
	if err != nil {
		return m.styles.ErrorBox.Render(err.Error())
	}
	table := ui.NewSimpleTable(e.Name(), []string{"Field", "Value"})
	for _, f := range Fields(v) {
		table.AddRow(f.Path, f.Text)
	}
	return table.View(m.styles)
}

func (m Model) headerView() string {
	tabs := []struct {
		label  string
		active bool
	}{
		{"Index", m.mode == ModeIndex},
		{fmt.Sprintf("Entries (%d)", len(m.entries)), m.mode == ModeEntries || m.mode == ModeEntry},
		{"New contract", m.mode == ModeCreate},
	}
	parts := []string{m.styles.Header.Render(Title)}
	for _, t := range tabs {
		if t.active {
			parts = append(parts, m.styles.ActiveTab.Render(t.label))
		} else {
			parts = append(parts, m.styles.Tab.Render(t.label))
		}
	}
	if m.hasDraft() {
		parts = append(parts, m.styles.Badge.Render(DraftBadge))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...) + "\n" + m.styles.RenderDivider(m.layout.ContentWidth()+4)
}

// hasDraft reports an unsaved form left open behind another page.
func (m Model) hasDraft() bool {
	return m.mode != ModeCreate && len(m.create.rows) > 0
}

// View renders the whole screen.
func (m Model) View() string {
	status := ""
	if m.status != "" {
		switch {
		case m.statusErr:
			status = m.styles.Error.Render(m.status)
		case m.statusNotice:
			status = m.styles.Warning.Render(m.status)
		default:
			status = m.styles.Success.Render(m.status)
		}
	}
	footer := m.styles.Footer.Render(m.help.View(m.keys.forMode(m.mode)))
	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		m.styles.Content.Padding(0, 2).Render(m.body.View()),
		status,
		footer,
	)
}
