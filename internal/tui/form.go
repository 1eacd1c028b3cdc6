package tui

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/contactbook/internal/contact"
)

// inputWidth is the visible width of each text input.
const inputWidth = 40

// form holds the search box and the three contact fields.
type form struct {
	search textinput.Model
	name   textinput.Model
	phone  textinput.Model
	email  textinput.Model
}

func newInput(placeholder string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.Width = inputWidth
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func newForm() form {
	return form{
		search: newInput("type to filter"),
		name:   newInput("required"),
		phone:  newInput("required"),
		email:  newInput("optional"),
	}
}

// Input returns the current field values.
func (f form) Input() contact.Input {
	return contact.Input{
		Name:  f.name.Value(),
		Phone: f.phone.Value(),
		Email: f.email.Value(),
	}
}

// Fill copies a contact into the three fields.
func (f form) Fill(c contact.Contact) form {
	f.name.SetValue(c.Name)
	f.phone.SetValue(c.Phone)
	f.email.SetValue(c.Email)
	return f
}

// Clear empties the three contact fields. The search box is untouched.
func (f form) Clear() form {
	f.name.Reset()
	f.phone.Reset()
	f.email.Reset()
	return f
}

// Filter returns the search box contents.
func (f form) Filter() string {
	return f.search.Value()
}

// ClearSearch empties the search box.
func (f form) ClearSearch() form {
	f.search.Reset()
	return f
}

// input returns a pointer to the text input for focus, or nil for FocusList.
func (f *form) input(focus Focus) *textinput.Model {
	switch focus {
	case FocusSearch:
		return &f.search
	case FocusName:
		return &f.name
	case FocusPhone:
		return &f.phone
	case FocusEmail:
		return &f.email
	default:
		return nil
	}
}

// Focus focuses the input for focus and blurs the others.
func (f form) Focus(focus Focus) (form, tea.Cmd) {
	var cmd tea.Cmd
	for fc := FocusSearch; fc < FocusList; fc++ {
		in := f.input(fc)
		if fc == focus {
			cmd = in.Focus()
		} else {
			in.Blur()
		}
	}
	return f, cmd
}

// Update forwards msg to the focused input.
func (f form) Update(focus Focus, msg tea.Msg) (form, tea.Cmd) {
	in := f.input(focus)
	if in == nil {
		return f, nil
	}
	var cmd tea.Cmd
	*in, cmd = in.Update(msg)
	return f, cmd
}

// View renders one input line.
func (f form) View(focus, which Focus, label string) string {
	style := labelStyle
	if focus == which {
		style = focusedLabelStyle
	}
	in := f.input(which)
	return style.Render(label) + in.View()
}
