package tui

import (
	"errors"
	"fmt"

	"github.com/smileynet/contactbook/internal/contact"
)

// NoticeKind selects the notice border color.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeWarning
	NoticeError
)

// notice is a modal message; any key dismisses it.
type notice struct {
	kind  NoticeKind
	title string
	body  string
}

// View renders the notice box.
func (n notice) View() string {
	return NoticeBorder(n.kind).Render(n.title + "\n\n" + n.body + "\n\n" + mutedText.Render("press any key"))
}

// successNotice returns the notice shown after a command succeeds.
func successNotice(msg CommandDoneMsg) notice {
	switch msg.Action {
	case ActionAdd:
		return notice{kind: NoticeInfo, title: "Success", body: "Contact Added Successfully"}
	case ActionUpdate:
		return notice{kind: NoticeInfo, title: "Updated", body: "Contact Updated Successfully"}
	case ActionDelete:
		return notice{kind: NoticeInfo, title: "Deleted", body: "Contact Deleted Successfully"}
	default:
		return notice{kind: NoticeInfo, title: "Exported", body: fmt.Sprintf("Contacts exported successfully to %s", msg.Path)}
	}
}

// errorNotice maps a command error to the notice the user sees. Storage
// faults are reported as such and never as a selection problem.
func errorNotice(action Action, err error) notice {
	switch {
	case errors.Is(err, contact.ErrValidation):
		return notice{kind: NoticeWarning, title: "Input Error", body: "Name and Phone are required!"}
	case errors.Is(err, contact.ErrNoSelection):
		return notice{kind: NoticeError, title: "Error", body: fmt.Sprintf("Please select a contact to %s", action)}
	case errors.Is(err, contact.ErrEmptyExport):
		return notice{kind: NoticeWarning, title: "No Data", body: "No contacts to export!"}
	case errors.Is(err, contact.ErrNotFound):
		return notice{kind: NoticeError, title: "Error", body: "Contact no longer exists"}
	default:
		return notice{kind: NoticeError, title: "Error", body: fmt.Sprintf("Operation failed: %v", err)}
	}
}
