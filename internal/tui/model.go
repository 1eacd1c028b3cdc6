package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/contactbook/internal/contact"
	"github.com/smileynet/contactbook/internal/export"
)

// chromeLines is the number of lines around the result list: title, search,
// three form fields, buttons, separators, list border, status and help bar.
const chromeLines = 14

// borderChrome is the number of columns consumed by left + right borders.
const borderChrome = 2

// DefaultListHeight is the number of result rows shown when not configured.
const DefaultListHeight = 15

// Model is the root Bubble Tea model for the contact book screen.
// It runs at most one command at a time: while busy, keys other than
// ctrl+c are ignored until the command's result message arrives.
type Model struct {
	cmds       Commands
	ctx        context.Context
	title      string
	listHeight int
	exportPath string

	mode    Mode
	focus   Focus
	width   int
	height  int
	busy    bool
	filter  string // Filter of the most recent search request.
	form    form
	results resultList
	notice  notice
	confirm confirmState
	prompt  promptState
	spinner spinner.Model
	help    help.Model
	keys    formKeys
}

// Option configures a Model.
type Option func(*Model)

// WithTitle sets the heading shown at the top of the screen.
func WithTitle(title string) Option {
	return func(m *Model) { m.title = title }
}

// WithListHeight sets the maximum number of visible result rows.
func WithListHeight(n int) Option {
	return func(m *Model) {
		if n > 0 {
			m.listHeight = n
		}
	}
}

// WithExportPath sets the path prefilled in the export prompt.
func WithExportPath(path string) Option {
	return func(m *Model) {
		if path != "" {
			m.exportPath = path
		}
	}
}

// WithContext sets the context passed to every command.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// NewModel creates a Model in form mode with the Name field focused.
func NewModel(cmds Commands, opts ...Option) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	m := Model{
		cmds:       cmds,
		ctx:        context.Background(),
		title:      "Smart Contact Book",
		listHeight: DefaultListHeight,
		exportPath: export.DefaultFileName(),
		mode:       ModeForm,
		focus:      FocusName,
		form:       newForm(),
		results:    newResultList(),
		spinner:    s,
		help:       help.New(),
		keys:       FormKeyMap(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.form, _ = m.form.Focus(m.focus)
	return m
}

// Init loads the unfiltered contact list.
func (m Model) Init() tea.Cmd {
	return tea.Batch(loadContacts(m.ctx, m.cmds, ""), m.spinner.Tick)
}

// Update handles incoming messages with mode-based routing.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.results = m.results.scrollTo(m.listRows())
		return m, nil

	case spinner.TickMsg:
		if !m.busy && !m.results.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ContactsLoadedMsg:
		// Results for a filter the user has already typed past are dropped.
		if msg.Filter != m.filter {
			return m, nil
		}
		m.results = m.results.apply(msg.Contacts, msg.Err)
		return m, nil

	case CommandDoneMsg:
		return m.handleDone(msg)

	case ContactLoadedMsg:
		m.busy = false
		if msg.Err != nil {
			m = m.showNotice(errorNotice(ActionUpdate, msg.Err))
			if errors.Is(msg.Err, contact.ErrNotFound) {
				return m.reload()
			}
			return m, nil
		}
		m.form = m.form.Fill(msg.Contact)
		return m.setFocus(FocusName)

	case ExportReadyMsg:
		m.busy = false
		if msg.Err != nil {
			return m.showNotice(errorNotice(ActionExport, msg.Err)), nil
		}
		if !msg.HasData {
			return m.showNotice(errorNotice(ActionExport, contact.ErrEmptyExport)), nil
		}
		m.mode = ModePrompt
		m.prompt = newPromptState(m.exportPath)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blink and other widget messages go to the active input.
	var cmd tea.Cmd
	if m.mode == ModePrompt {
		m.prompt.path, cmd = m.prompt.path.Update(msg)
	} else {
		m.form, cmd = m.form.Update(m.focus, msg)
	}
	return m, cmd
}

// handleKey processes key messages with global and mode-specific routing.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeNotice:
		m.mode = ModeForm
		return m, nil
	case ModeConfirm:
		return m.handleConfirmKey(msg)
	case ModePrompt:
		return m.handlePromptKey(msg)
	}

	if m.busy {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Add):
		return m.startAdd()
	case key.Matches(msg, m.keys.Update):
		return m.startUpdate()
	case key.Matches(msg, m.keys.Delete):
		return m.startDelete()
	case key.Matches(msg, m.keys.Clear):
		m.form = m.form.Clear()
		return m, nil
	case key.Matches(msg, m.keys.Export):
		m.busy = true
		return m, tea.Batch(checkExport(m.ctx, m.cmds), m.spinner.Tick)
	case key.Matches(msg, m.keys.Next):
		return m.setFocus((m.focus + 1) % focusCount)
	case key.Matches(msg, m.keys.Prev):
		return m.setFocus((m.focus + focusCount - 1) % focusCount)
	}

	if m.focus == FocusList {
		return m.handleListKey(msg)
	}
	return m.handleInputKey(msg)
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.listRows()
	switch msg.String() {
	case "up", "k":
		m.results = m.results.move(-1, rows)
	case "down", "j":
		m.results = m.results.move(1, rows)
	case "pgup":
		m.results = m.results.jump(m.results.selected-rows, rows)
	case "pgdown":
		m.results = m.results.jump(m.results.selected+rows, rows)
	case "home", "g":
		m.results = m.results.jump(0, rows)
	case "end", "G":
		m.results = m.results.jump(m.results.Len()-1, rows)
	case "enter":
		id, ok := m.results.SelectedID()
		if !ok {
			return m, nil
		}
		m.busy = true
		return m, tea.Batch(loadContact(m.ctx, m.cmds, id), m.spinner.Tick)
	}
	return m, nil
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "down":
		if m.focus == FocusSearch {
			next, cmd := m.setFocus(FocusList)
			next.results = next.results.move(1, next.listRows())
			return next, cmd
		}
		return m.setFocus((m.focus + 1) % focusCount)
	case "up":
		if m.focus > FocusSearch {
			return m.setFocus(m.focus - 1)
		}
		return m, nil
	case "enter":
		if m.focus == FocusSearch {
			return m.setFocus(FocusList)
		}
		return m.setFocus(m.focus + 1)
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(m.focus, msg)
	if m.focus == FocusSearch && m.form.Filter() != m.filter {
		m.filter = m.form.Filter()
		return m, tea.Batch(cmd, loadContacts(m.ctx, m.cmds, m.filter))
	}
	return m, cmd
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := ConfirmKeyMap()
	switch {
	case key.Matches(msg, km.Confirm):
		m.mode = ModeForm
		m.busy = true
		return m, tea.Batch(deleteContact(m.ctx, m.cmds, m.confirm.target.ID), m.spinner.Tick)
	case key.Matches(msg, km.Cancel):
		m.mode = ModeForm
		return m, nil
	}
	return m, nil
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := PromptKeyMap()
	switch {
	case key.Matches(msg, km.Confirm):
		path := strings.TrimSpace(m.prompt.path.Value())
		if path == "" {
			return m, nil
		}
		m.exportPath = path
		m.mode = ModeForm
		m.busy = true
		return m, tea.Batch(exportContacts(m.ctx, m.cmds, path), m.spinner.Tick)
	case key.Matches(msg, km.Cancel):
		m.mode = ModeForm
		return m, nil
	}
	var cmd tea.Cmd
	m.prompt.path, cmd = m.prompt.path.Update(msg)
	return m, cmd
}

// startAdd validates the form and dispatches Add.
func (m Model) startAdd() (tea.Model, tea.Cmd) {
	in := m.form.Input()
	if err := in.Validate(); err != nil {
		return m.showNotice(errorNotice(ActionAdd, err)), nil
	}
	m.busy = true
	return m, tea.Batch(addContact(m.ctx, m.cmds, in), m.spinner.Tick)
}

// startUpdate requires a selection, validates the form and dispatches Update.
func (m Model) startUpdate() (tea.Model, tea.Cmd) {
	id, ok := m.results.SelectedID()
	if !ok {
		return m.showNotice(errorNotice(ActionUpdate, contact.ErrNoSelection)), nil
	}
	in := m.form.Input()
	if err := in.Validate(); err != nil {
		return m.showNotice(errorNotice(ActionUpdate, err)), nil
	}
	m.busy = true
	return m, tea.Batch(updateContact(m.ctx, m.cmds, id, in), m.spinner.Tick)
}

// startDelete requires a selection and asks for confirmation.
func (m Model) startDelete() (tea.Model, tea.Cmd) {
	c, ok := m.results.Selected()
	if !ok {
		return m.showNotice(errorNotice(ActionDelete, contact.ErrNoSelection)), nil
	}
	m.mode = ModeConfirm
	m.confirm = confirmState{target: c}
	return m, nil
}

// handleDone shows the outcome of a command and refreshes the list.
func (m Model) handleDone(msg CommandDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.Err != nil {
		m = m.showNotice(errorNotice(msg.Action, msg.Err))
		if errors.Is(msg.Err, contact.ErrNotFound) {
			return m.reload()
		}
		return m, nil
	}

	m = m.showNotice(successNotice(msg))
	switch msg.Action {
	case ActionAdd, ActionUpdate:
		m.form = m.form.Clear()
		return m.reload()
	case ActionDelete:
		return m.reload()
	}
	return m, nil
}

// reload clears the search box and fetches the unfiltered list.
func (m Model) reload() (Model, tea.Cmd) {
	m.form = m.form.ClearSearch()
	m.filter = ""
	return m, loadContacts(m.ctx, m.cmds, "")
}

func (m Model) showNotice(n notice) Model {
	m.mode = ModeNotice
	m.notice = n
	return m
}

func (m Model) setFocus(f Focus) (Model, tea.Cmd) {
	m.focus = f
	var cmd tea.Cmd
	m.form, cmd = m.form.Focus(f)
	return m, cmd
}

// listRows returns the number of result rows that fit on screen.
func (m Model) listRows() int {
	rows := m.listHeight
	if m.height > 0 && m.height-chromeLines < rows {
		rows = m.height - chromeLines
	}
	if rows < 1 {
		return 1
	}
	return rows
}

// View renders the form, command bar, result list (or modal), status and help.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.form.View(m.focus, FocusSearch, "Search:"))
	b.WriteString("\n\n")
	b.WriteString(m.form.View(m.focus, FocusName, "Name:"))
	b.WriteString("\n")
	b.WriteString(m.form.View(m.focus, FocusPhone, "Phone:"))
	b.WriteString("\n")
	b.WriteString(m.form.View(m.focus, FocusEmail, "Email:"))
	b.WriteString("\n\n")
	b.WriteString(m.viewButtons())
	b.WriteString("\n")
	b.WriteString(m.viewBody())
	b.WriteString("\n")
	b.WriteString(m.viewStatus())
	b.WriteString("\n")
	b.WriteString(m.help.View(HelpBindings(m.mode)))
	return b.String()
}

func (m Model) viewButtons() string {
	return strings.Join([]string{
		Button("F2 Add", buttonColors[ActionAdd]),
		Button("F3 Update", buttonColors[ActionUpdate]),
		Button("F4 Delete", buttonColors[ActionDelete]),
		Button("F5 Clear", clearColor),
		Button("F6 Export CSV", buttonColors[ActionExport]),
	}, " ")
}

// viewBody renders the result list, or the active modal in its place.
func (m Model) viewBody() string {
	inner := m.width - borderChrome
	if inner < 1 {
		inner = 1
	}
	clip := lipgloss.NewStyle().MaxWidth(inner)

	switch m.mode {
	case ModeNotice:
		return m.notice.View()
	case ModeConfirm:
		return FocusedBorder().Render(clip.Render(m.confirm.View()))
	case ModePrompt:
		return FocusedBorder().Render(clip.Render(m.prompt.View()))
	}

	style := UnfocusedBorder()
	if m.focus == FocusList {
		style = FocusedBorder()
	}
	rows := m.listRows()
	content := m.results.View(rows, m.filter, m.spinner.View())
	return style.Width(inner).Height(rows).Render(clip.Render(content))
}

func (m Model) viewStatus() string {
	if m.busy {
		return fmt.Sprintf("%s Working...", m.spinner.View())
	}
	n := m.results.Len()
	word := "contacts"
	if n == 1 {
		word = "contact"
	}
	if m.filter != "" {
		return mutedText.Render(fmt.Sprintf("%d %s matching %q", n, word, m.filter))
	}
	return mutedText.Render(fmt.Sprintf("%d %s", n, word))
}
