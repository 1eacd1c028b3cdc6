// Package book is the command layer of the contact book: one synchronous
// entry point per user action, shared by the terminal UI and the CLI.
package book

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/smileynet/contactbook/internal/contact"
	"github.com/smileynet/contactbook/internal/export"
)

// Store is the persistence the book needs. *store.Store satisfies it.
type Store interface {
	Create(ctx context.Context, in contact.Input) (int64, error)
	List(ctx context.Context, filter string) ([]contact.Contact, error)
	Get(ctx context.Context, id int64) (contact.Contact, error)
	Update(ctx context.Context, id int64, in contact.Input) error
	Delete(ctx context.Context, id int64) error
}

// Book dispatches contact commands to a Store.
type Book struct {
	store Store
	log   *zap.Logger
}

// Option configures a Book.
type Option func(*Book)

// WithLogger sets the logger used for command outcomes.
func WithLogger(l *zap.Logger) Option {
	return func(b *Book) {
		if l != nil {
			b.log = l
		}
	}
}

// New creates a Book over s.
func New(s Store, opts ...Option) *Book {
	b := &Book{store: s, log: zap.NewNop()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Add validates in and stores it, returning the new id.
func (b *Book) Add(ctx context.Context, in contact.Input) (int64, error) {
	if err := in.Validate(); err != nil {
		b.log.Debug("add rejected", zap.Error(err))
		return 0, err
	}
	id, err := b.store.Create(ctx, in)
	if err != nil {
		return 0, b.fail("add", err)
	}
	b.log.Info("contact added", zap.Int64("id", id), zap.String("name", in.Name))
	return id, nil
}

// Update validates in and overwrites the contact with the given id.
// A vanished row yields contact.ErrNotFound.
func (b *Book) Update(ctx context.Context, id int64, in contact.Input) error {
	if id <= 0 {
		return contact.ErrNoSelection
	}
	if err := in.Validate(); err != nil {
		b.log.Debug("update rejected", zap.Int64("id", id), zap.Error(err))
		return err
	}
	if err := b.store.Update(ctx, id, in); err != nil {
		return b.fail("update", err, zap.Int64("id", id))
	}
	b.log.Info("contact updated", zap.Int64("id", id))
	return nil
}

// Delete removes the contact with the given id. Deleting a missing id succeeds.
func (b *Book) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return contact.ErrNoSelection
	}
	if err := b.store.Delete(ctx, id); err != nil {
		return b.fail("delete", err, zap.Int64("id", id))
	}
	b.log.Info("contact deleted", zap.Int64("id", id))
	return nil
}

// Get returns one contact.
func (b *Book) Get(ctx context.Context, id int64) (contact.Contact, error) {
	c, err := b.store.Get(ctx, id)
	if err != nil {
		return contact.Contact{}, b.fail("get", err, zap.Int64("id", id))
	}
	return c, nil
}

// Search returns the contacts matching filter; "" returns all of them.
func (b *Book) Search(ctx context.Context, filter string) ([]contact.Contact, error) {
	cs, err := b.store.List(ctx, filter)
	if err != nil {
		return nil, b.fail("search", err, zap.String("filter", filter))
	}
	return cs, nil
}

// Export writes the full contact set to path as CSV and returns the path
// written. With no contacts it returns contact.ErrEmptyExport and writes nothing.
func (b *Book) Export(ctx context.Context, path string) (string, error) {
	cs, err := b.Search(ctx, "")
	if err != nil {
		return "", err
	}
	if len(cs) == 0 {
		return "", contact.ErrEmptyExport
	}
	written, err := export.WriteFile(path, cs)
	if err != nil {
		b.log.Error("export failed", zap.String("path", path), zap.Error(err))
		return "", fmt.Errorf("book: export: %w", err)
	}
	b.log.Info("contacts exported", zap.String("path", written), zap.Int("count", len(cs)))
	return written, nil
}

// ExportTo streams the full contact set as CSV to w and returns the row count.
func (b *Book) ExportTo(ctx context.Context, w io.Writer) (int, error) {
	cs, err := b.Search(ctx, "")
	if err != nil {
		return 0, err
	}
	if len(cs) == 0 {
		return 0, contact.ErrEmptyExport
	}
	if err := export.Write(w, cs); err != nil {
		return 0, fmt.Errorf("book: export: %w", err)
	}
	return len(cs), nil
}

// HasContacts reports whether anything is stored, for the empty-export check
// the UI performs before prompting for a path.
func (b *Book) HasContacts(ctx context.Context) (bool, error) {
	cs, err := b.Search(ctx, "")
	if err != nil {
		return false, err
	}
	return len(cs) > 0, nil
}

// fail logs a failed command and wraps the error. Store faults that are not
// already classified become *contact.StorageError.
func (b *Book) fail(op string, err error, fields ...zap.Field) error {
	fields = append(fields, zap.String("op", op), zap.Error(err))
	switch {
	case errors.Is(err, contact.ErrNotFound), errors.Is(err, contact.ErrValidation):
		b.log.Warn("command rejected", fields...)
		return fmt.Errorf("book: %s: %w", op, err)
	case contact.IsStorage(err):
		b.log.Error("storage failure", fields...)
		return fmt.Errorf("book: %s: %w", op, err)
	default:
		b.log.Error("storage failure", fields...)
		return fmt.Errorf("book: %s: %w", op, &contact.StorageError{Op: op, Err: err})
	}
}
