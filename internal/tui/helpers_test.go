package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/contactbook/internal/contact"
)

// fakeCommands implements Commands over an in-memory slice.
type fakeCommands struct {
	rows      []contact.Contact
	nextID    int64
	failErr   error // Returned by every call when set.
	exported  []string
	searches  []string
	deleted   []int64
	updated   []int64
	addCalled int
}

func (f *fakeCommands) Add(_ context.Context, in contact.Input) (int64, error) {
	f.addCalled++
	if f.failErr != nil {
		return 0, f.failErr
	}
	if err := in.Validate(); err != nil {
		return 0, err
	}
	f.nextID++
	f.rows = append(f.rows, contact.Contact{ID: f.nextID, Name: in.Name, Phone: in.Phone, Email: in.Email})
	return f.nextID, nil
}

func (f *fakeCommands) Update(_ context.Context, id int64, in contact.Input) error {
	if f.failErr != nil {
		return f.failErr
	}
	for i, c := range f.rows {
		if c.ID == id {
			f.rows[i] = contact.Contact{ID: id, Name: in.Name, Phone: in.Phone, Email: in.Email}
			f.updated = append(f.updated, id)
			return nil
		}
	}
	return contact.ErrNotFound
}

func (f *fakeCommands) Delete(_ context.Context, id int64) error {
	if f.failErr != nil {
		return f.failErr
	}
	f.deleted = append(f.deleted, id)
	for i, c := range f.rows {
		if c.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeCommands) Get(_ context.Context, id int64) (contact.Contact, error) {
	if f.failErr != nil {
		return contact.Contact{}, f.failErr
	}
	for _, c := range f.rows {
		if c.ID == id {
			return c, nil
		}
	}
	return contact.Contact{}, contact.ErrNotFound
}

func (f *fakeCommands) Search(_ context.Context, filter string) ([]contact.Contact, error) {
	f.searches = append(f.searches, filter)
	if f.failErr != nil {
		return nil, f.failErr
	}
	var out []contact.Contact
	for _, c := range f.rows {
		if c.Matches(filter) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCommands) HasContacts(_ context.Context) (bool, error) {
	if f.failErr != nil {
		return false, f.failErr
	}
	return len(f.rows) > 0, nil
}

func (f *fakeCommands) Export(_ context.Context, path string) (string, error) {
	if f.failErr != nil {
		return "", f.failErr
	}
	if len(f.rows) == 0 {
		return "", contact.ErrEmptyExport
	}
	f.exported = append(f.exported, path)
	return path, nil
}

func sampleCommands() *fakeCommands {
	return &fakeCommands{
		rows: []contact.Contact{
			{ID: 1, Name: "Alice", Phone: "555-1000", Email: "alice@x.com"},
			{ID: 2, Name: "Bob", Phone: "555-2000"},
		},
		nextID: 2,
	}
}

var errDisk = &contact.StorageError{Op: "select", Err: errors.New("disk I/O error")}

// stripANSI removes ANSI escape sequences from a string.
func stripANSI(s string) string {
	var out []byte
	i := 0
	for i < len(s) {
		if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && (s[j] < 'A' || s[j] > 'Z') && (s[j] < 'a' || s[j] > 'z') {
				j++
			}
			if j < len(s) {
				j++
			}
			i = j
		} else {
			out = append(out, s[i])
			i++
		}
	}
	return string(out)
}

// containsPlainText checks if s contains sub after stripping ANSI escapes.
func containsPlainText(s, sub string) bool {
	return strings.Contains(stripANSI(s), sub)
}

// execBatch executes a tea.Cmd, flattening batch commands, and returns the
// resulting messages. Spinner ticks are skipped to avoid recursion.
func execBatch(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, execBatch(t, c)...)
		}
		return msgs
	}
	if _, isTick := msg.(spinner.TickMsg); isTick || msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// drive applies msg and then feeds every command result back into the
// model until no command messages remain, mimicking the program loop.
func drive(t *testing.T, m Model, msg tea.Msg) (Model, []tea.Msg) {
	t.Helper()
	updated, cmd := m.Update(msg)
	m = updated.(Model)
	var rest []tea.Msg
	for _, out := range execBatch(t, cmd) {
		switch out.(type) {
		case ContactsLoadedMsg, CommandDoneMsg, ContactLoadedMsg, ExportReadyMsg:
			var more []tea.Msg
			m, more = drive(t, m, out)
			rest = append(rest, more...)
		default:
			rest = append(rest, out)
		}
	}
	return m, rest
}

// startedModel returns a sized model with its initial list loaded.
func startedModel(t *testing.T, cmds Commands, opts ...Option) Model {
	t.Helper()
	m := NewModel(cmds, opts...)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = updated.(Model)
	for _, out := range execBatch(t, m.Init()) {
		m, _ = drive(t, m, out)
	}
	return m
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// typeInto focuses f and types s into it.
func typeInto(t *testing.T, m Model, f Focus, s string) Model {
	t.Helper()
	m, _ = m.setFocus(f)
	m, _ = drive(t, m, runes(s))
	return m
}

func hasQuit(msgs []tea.Msg) bool {
	for _, msg := range msgs {
		if _, ok := msg.(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}
