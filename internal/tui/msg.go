// Package tui implements the contact book screen: a search box, a three-field
// form, a scrollable result list and five commands, with modal notices,
// a delete confirmation and an export path prompt.
package tui

import (
	"context"

	"github.com/smileynet/contactbook/internal/contact"
)

// Mode represents what the screen is currently waiting for.
type Mode int

const (
	ModeForm    Mode = iota // Idle: editing the form, searching or browsing the list.
	ModeNotice              // A notice is shown; any key dismisses it.
	ModeConfirm             // Waiting for delete confirmation.
	ModePrompt              // Waiting for the export destination path.
)

// Focus identifies the widget receiving keystrokes in ModeForm.
type Focus int

const (
	FocusSearch Focus = iota
	FocusName
	FocusPhone
	FocusEmail
	FocusList
	focusCount
)

// Action names a command that changes stored state or writes a file.
type Action int

const (
	ActionAdd Action = iota
	ActionUpdate
	ActionDelete
	ActionExport
)

// String returns the verb used in user-facing messages.
func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	case ActionExport:
		return "export"
	default:
		return "run"
	}
}

// --- Consumer-side interface ---

// Commands is the command layer the screen dispatches to. *book.Book implements it.
type Commands interface {
	Add(ctx context.Context, in contact.Input) (int64, error)
	Update(ctx context.Context, id int64, in contact.Input) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (contact.Contact, error)
	Search(ctx context.Context, filter string) ([]contact.Contact, error)
	HasContacts(ctx context.Context) (bool, error)
	Export(ctx context.Context, path string) (string, error)
}

// --- tea.Msg types ---

// ContactsLoadedMsg carries the result of a Search for Filter.
type ContactsLoadedMsg struct {
	Filter   string
	Contacts []contact.Contact
	Err      error
}

// CommandDoneMsg reports the outcome of Add, Update, Delete or Export.
type CommandDoneMsg struct {
	Action Action
	ID     int64
	Path   string // Written file, for ActionExport.
	Err    error
}

// ContactLoadedMsg carries a single contact to copy into the form.
type ContactLoadedMsg struct {
	Contact contact.Contact
	Err     error
}

// ExportReadyMsg reports whether there is anything to export.
type ExportReadyMsg struct {
	HasData bool
	Err     error
}
