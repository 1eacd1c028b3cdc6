// Package export writes contacts as CSV.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/smileynet/contactbook/internal/contact"
)

// DefaultExt is appended to export paths that have no extension.
const DefaultExt = ".csv"

// Header is the first row of every export.
var Header = []string{"ID", "Name", "Phone", "Email"}

// ErrEmpty indicates there is nothing to export. It matches contact.ErrEmptyExport.
var ErrEmpty = contact.ErrEmptyExport

// DefaultFileName returns the name offered when the user has not chosen one.
func DefaultFileName() string {
	return "contacts" + DefaultExt
}

// Write encodes contacts as CSV in the given order, preceded by Header.
func Write(w io.Writer, contacts []contact.Contact) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("export: writing header: %w", err)
	}
	for _, c := range contacts {
		rec := []string{strconv.FormatInt(c.ID, 10), c.Name, c.Phone, c.Email}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("export: writing contact %d: %w", c.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: flushing: %w", err)
	}
	return nil
}

// ResolvePath applies DefaultExt when path has no extension.
func ResolvePath(path string) string {
	if filepath.Ext(path) == "" {
		return path + DefaultExt
	}
	return path
}

// WriteFile writes contacts to path and returns the path actually written.
// No file is created when contacts is empty.
func WriteFile(path string, contacts []contact.Contact) (string, error) {
	if len(contacts) == 0 {
		return "", ErrEmpty
	}
	if path == "" {
		return "", errors.New("export: destination path is empty")
	}
	path = ResolvePath(path)

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("export: creating directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("export: creating %s: %w", path, err)
	}
	if err := Write(f, contacts); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("export: closing %s: %w", path, err)
	}
	return path, nil
}
