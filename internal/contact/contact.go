// Package contact defines the Contact entity, the form input used to create
// and edit one, and the error taxonomy shared by the store, the command
// layer and the UI.
package contact

import (
	"errors"
	"fmt"
	"strings"
)

// Contact is a single stored entry. ID is assigned by the store and never
// changes once assigned.
type Contact struct {
	ID    int64
	Name  string
	Phone string
	Email string
}

// Line renders the contact the way the result list shows it.
func (c Contact) Line() string {
	return fmt.Sprintf("ID:%d | %s | %s | %s", c.ID, c.Name, c.Phone, c.Email)
}

// Matches reports whether filter is a case-sensitive substring of the name,
// phone or email. An empty filter matches everything.
func (c Contact) Matches(filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(c.Name, filter) ||
		strings.Contains(c.Phone, filter) ||
		strings.Contains(c.Email, filter)
}

// Input holds the three editable fields of a contact.
type Input struct {
	Name  string
	Phone string
	Email string
}

// Validate checks the required fields. Values are taken as given: only the
// empty string counts as missing.
func (in Input) Validate() error {
	var missing []string
	if in.Name == "" {
		missing = append(missing, "name")
	}
	if in.Phone == "" {
		missing = append(missing, "phone")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// ErrValidation is matched by every *ValidationError via errors.Is.
var ErrValidation = errors.New("contact: name and phone are required")

// ErrNoSelection indicates an Update or Delete with no row selected.
var ErrNoSelection = errors.New("contact: no contact selected")

// ErrNotFound indicates the addressed contact does not exist.
var ErrNotFound = errors.New("contact: not found")

// ErrEmptyExport indicates an export was requested with no contacts stored.
var ErrEmptyExport = errors.New("contact: no contacts to export")

// ValidationError lists the required fields that were empty.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("contact: missing required %s", strings.Join(e.Fields, " and "))
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// StorageError wraps a failure of the underlying store so it is never
// confused with a selection or validation problem.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorage reports whether err is, or wraps, a *StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}
