package tui

import (
	"fmt"
	"strings"

	"github.com/smileynet/contactbook/internal/contact"
)

// CursorMarker is the prefix shown on the selected row.
const CursorMarker = "▸ "

// noSelection is the selected index when no row is selected.
const noSelection = -1

// resultList holds the rendered contacts together with the contacts behind
// each row, so a selection maps to an id without parsing display text.
type resultList struct {
	contacts []contact.Contact
	selected int // noSelection or an index into contacts.
	offset   int // First visible row.
	loading  bool
	err      error
}

// newResultList returns a resultList in the loading state.
func newResultList() resultList {
	return resultList{selected: noSelection, loading: true}
}

// apply replaces the rows with a fetched list (or error). Like a refreshed
// list box, it drops the selection.
func (rl resultList) apply(contacts []contact.Contact, err error) resultList {
	rl.loading = false
	rl.selected = noSelection
	rl.offset = 0
	if err != nil {
		rl.err = err
		rl.contacts = nil
		return rl
	}
	rl.err = nil
	rl.contacts = append([]contact.Contact(nil), contacts...)
	return rl
}

// move shifts the selection by delta, wrapping at both ends. With nothing
// selected, moving down selects the first row and moving up the last.
func (rl resultList) move(delta, height int) resultList {
	n := len(rl.contacts)
	if n == 0 {
		return rl
	}
	switch {
	case rl.selected == noSelection && delta > 0:
		rl.selected = 0
	case rl.selected == noSelection:
		rl.selected = n - 1
	default:
		rl.selected = ((rl.selected+delta)%n + n) % n
	}
	return rl.scrollTo(height)
}

// jump selects an absolute row, clamped to the list.
func (rl resultList) jump(index, height int) resultList {
	n := len(rl.contacts)
	if n == 0 {
		return rl
	}
	if index < 0 {
		index = 0
	}
	if index >= n {
		index = n - 1
	}
	rl.selected = index
	return rl.scrollTo(height)
}

// scrollTo adjusts offset so the selected row is inside a window of height rows.
func (rl resultList) scrollTo(height int) resultList {
	if height < 1 {
		height = 1
	}
	if rl.selected < rl.offset {
		rl.offset = rl.selected
	}
	if rl.selected >= rl.offset+height {
		rl.offset = rl.selected - height + 1
	}
	return rl
}

// Selected returns the selected contact, or false when nothing is selected.
func (rl resultList) Selected() (contact.Contact, bool) {
	if rl.selected < 0 || rl.selected >= len(rl.contacts) {
		return contact.Contact{}, false
	}
	return rl.contacts[rl.selected], true
}

// SelectedID returns the id behind the selected row.
func (rl resultList) SelectedID() (int64, bool) {
	c, ok := rl.Selected()
	return c.ID, ok
}

// Len returns the number of rows.
func (rl resultList) Len() int {
	return len(rl.contacts)
}

// View renders at most height rows starting at offset.
// spinnerView is the current spinner frame (may be empty when idle).
func (rl resultList) View(height int, filter, spinnerView string) string {
	if rl.loading {
		return fmt.Sprintf("%s Loading contacts...", spinnerView)
	}

	if rl.err != nil {
		return fmt.Sprintf("Error: %s", rl.err)
	}

	if len(rl.contacts) == 0 {
		if filter != "" {
			return mutedText.Render(fmt.Sprintf("No contacts match %q", filter))
		}
		return mutedText.Render("No contacts yet. Fill in the form and press F2")
	}

	end := rl.offset + height
	if end > len(rl.contacts) {
		end = len(rl.contacts)
	}

	var b strings.Builder
	for i := rl.offset; i < end; i++ {
		if i > rl.offset {
			b.WriteByte('\n')
		}
		line := rl.contacts[i].Line()
		if i == rl.selected {
			b.WriteString(CursorMarker)
			b.WriteString(selectedRow.Render(line))
		} else {
			b.WriteString("  ")
			b.WriteString(line)
		}
	}
	return b.String()
}
