package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/smileynet/contactbook/internal/contact"
)

// confirmState holds the contact awaiting delete confirmation.
type confirmState struct {
	target contact.Contact
}

// View renders the confirmation screen.
func (cs confirmState) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Delete contact %d?\n", cs.target.ID)
	fmt.Fprintf(&b, "\n  %s\n  %s", cs.target.Name, cs.target.Phone)
	if cs.target.Email != "" {
		fmt.Fprintf(&b, "\n  %s", cs.target.Email)
	}
	b.WriteString("\n\n  [Enter] Confirm   [Esc] Cancel")
	return b.String()
}

// promptState holds the export destination input.
type promptState struct {
	path textinput.Model
}

// newPromptState returns a focused path input prefilled with defaultPath.
func newPromptState(defaultPath string) promptState {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Width = inputWidth
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.SetValue(defaultPath)
	ti.CursorEnd()
	ti.Focus()
	return promptState{path: ti}
}

// View renders the export prompt.
func (ps promptState) View() string {
	var b strings.Builder
	b.WriteString("Export contacts to CSV\n\n")
	b.WriteString(ps.path.View())
	b.WriteString("\n\n")
	b.WriteString(mutedText.Render("  .csv is added when the name has no extension"))
	b.WriteString("\n\n  [Enter] Export   [Esc] Cancel")
	return b.String()
}
