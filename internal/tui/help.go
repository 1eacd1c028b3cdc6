package tui

import "github.com/charmbracelet/bubbles/help"

// HelpBindings returns the help.KeyMap for the given mode,
// providing context-aware help bar content.
func HelpBindings(mode Mode) help.KeyMap {
	switch mode {
	case ModeNotice:
		return NoticeKeyMap()
	case ModeConfirm:
		return ConfirmKeyMap()
	case ModePrompt:
		return PromptKeyMap()
	default:
		return FormKeyMap()
	}
}
