package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/contactbook/internal/contact"
)

// loadContacts returns a tea.Cmd that searches for filter and wraps the
// result in a ContactsLoadedMsg.
func loadContacts(ctx context.Context, cmds Commands, filter string) tea.Cmd {
	return func() tea.Msg {
		cs, err := cmds.Search(ctx, filter)
		return ContactsLoadedMsg{Filter: filter, Contacts: cs, Err: err}
	}
}

func addContact(ctx context.Context, cmds Commands, in contact.Input) tea.Cmd {
	return func() tea.Msg {
		id, err := cmds.Add(ctx, in)
		return CommandDoneMsg{Action: ActionAdd, ID: id, Err: err}
	}
}

func updateContact(ctx context.Context, cmds Commands, id int64, in contact.Input) tea.Cmd {
	return func() tea.Msg {
		err := cmds.Update(ctx, id, in)
		return CommandDoneMsg{Action: ActionUpdate, ID: id, Err: err}
	}
}

func deleteContact(ctx context.Context, cmds Commands, id int64) tea.Cmd {
	return func() tea.Msg {
		err := cmds.Delete(ctx, id)
		return CommandDoneMsg{Action: ActionDelete, ID: id, Err: err}
	}
}

func loadContact(ctx context.Context, cmds Commands, id int64) tea.Cmd {
	return func() tea.Msg {
		c, err := cmds.Get(ctx, id)
		return ContactLoadedMsg{Contact: c, Err: err}
	}
}

func checkExport(ctx context.Context, cmds Commands) tea.Cmd {
	return func() tea.Msg {
		ok, err := cmds.HasContacts(ctx)
		return ExportReadyMsg{HasData: ok, Err: err}
	}
}

func exportContacts(ctx context.Context, cmds Commands, path string) tea.Cmd {
	return func() tea.Msg {
		written, err := cmds.Export(ctx, path)
		return CommandDoneMsg{Action: ActionExport, Path: written, Err: err}
	}
}
