package tui

import "github.com/charmbracelet/bubbles/key"

// formKeys holds key bindings for form mode.
type formKeys struct {
	Add    key.Binding
	Update key.Binding
	Delete key.Binding
	Clear  key.Binding
	Export key.Binding
	Next   key.Binding
	Prev   key.Binding
	Up     key.Binding
	Down   key.Binding
	Load   key.Binding
	Quit   key.Binding
}

// ShortHelp returns the form mode bindings for the help bar.
func (k formKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Update, k.Delete, k.Clear, k.Export, k.Next, k.Quit}
}

// FullHelp returns the form mode bindings grouped for expanded help.
func (k formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Update, k.Delete, k.Clear, k.Export},
		{k.Next, k.Prev, k.Up, k.Down, k.Load},
		{k.Quit},
	}
}

// noticeKeys holds key bindings for notice mode.
type noticeKeys struct {
	AnyKey key.Binding
}

// ShortHelp returns the notice mode bindings for the help bar.
func (k noticeKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.AnyKey}
}

// FullHelp returns the notice mode bindings grouped for expanded help.
func (k noticeKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.AnyKey}}
}

// confirmKeys holds key bindings for the delete confirmation.
type confirmKeys struct {
	Confirm key.Binding
	Cancel  key.Binding
}

// ShortHelp returns the confirm mode bindings for the help bar.
func (k confirmKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Confirm, k.Cancel}
}

// FullHelp returns the confirm mode bindings grouped for expanded help.
func (k confirmKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Confirm, k.Cancel}}
}

// FormKeyMap returns the key bindings for form mode.
// Command keys avoid the editing shortcuts of the text inputs.
func FormKeyMap() formKeys {
	return formKeys{
		Add: key.NewBinding(
			key.WithKeys("f2", "ctrl+n"),
			key.WithHelp("f2", "add"),
		),
		Update: key.NewBinding(
			key.WithKeys("f3", "ctrl+r"),
			key.WithHelp("f3", "update"),
		),
		Delete: key.NewBinding(
			key.WithKeys("f4", "ctrl+x"),
			key.WithHelp("f4", "delete"),
		),
		Clear: key.NewBinding(
			key.WithKeys("f5", "ctrl+l"),
			key.WithHelp("f5", "clear"),
		),
		Export: key.NewBinding(
			key.WithKeys("f6", "ctrl+o"),
			key.WithHelp("f6", "export csv"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Load: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit selected"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("ctrl+q", "quit"),
		),
	}
}

// NoticeKeyMap returns the key bindings for notice mode.
func NoticeKeyMap() noticeKeys {
	return noticeKeys{
		// "any" is a display-only key for the help bar; actual any-key
		// handling is done in the Update() switch on tea.KeyMsg.
		AnyKey: key.NewBinding(
			key.WithKeys("any"),
			key.WithHelp("any key", "dismiss"),
		),
	}
}

// ConfirmKeyMap returns the key bindings for the delete confirmation.
func ConfirmKeyMap() confirmKeys {
	return confirmKeys{
		Confirm: key.NewBinding(
			key.WithKeys("enter", "y"),
			key.WithHelp("enter", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc", "n"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// PromptKeyMap returns the key bindings for the export path prompt.
func PromptKeyMap() confirmKeys {
	return confirmKeys{
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "export"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}
