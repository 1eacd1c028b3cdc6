// Package store persists contacts in a local SQLite file.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"github.com/smileynet/contactbook/internal/contact"
)

//go:embed schema.sql
var schema string

// Supported database/sql driver names.
const (
	DriverPure = "sqlite"  // modernc.org/sqlite, no cgo
	DriverCgo  = "sqlite3" // github.com/mattn/go-sqlite3
)

// ErrUnknownDriver indicates Options.Driver is not one of the supported drivers.
var ErrUnknownDriver = errors.New("store: unknown driver")

// Options configures Open.
type Options struct {
	Driver string // DriverPure (default) or DriverCgo.
	Path   string // Database file; parent directories are created.
}

// Store is a contact table backed by a single SQLite connection.
// It is opened once by the application root and shared by every command.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the database file and applies the schema.
func Open(ctx context.Context, opts Options) (*Store, error) {
	driver := opts.Driver
	if driver == "" {
		driver = DriverPure
	}
	if driver != DriverPure && driver != DriverCgo {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
	if opts.Path == "" {
		return nil, errors.New("store: database path is empty")
	}

	if dir := filepath.Dir(opts.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: creating directory: %w", err)
		}
	}

	db, err := sql.Open(driver, opts.Path)
	if err != nil {
		return nil, fmt.Errorf("store: opening %s: %w", opts.Path, err)
	}
	// One connection: statements never interleave and pragmas stick.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, path: opts.Path}
	if err := s.init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("store: configuring %s: %w", s.path, err)
	}
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("store: applying schema to %s: %w", s.path, err)
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create inserts a contact and returns its assigned id.
func (s *Store) Create(ctx context.Context, in contact.Input) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO contacts (name, phone, email) VALUES (?, ?, ?)",
		in.Name, in.Phone, in.Email)
	if err != nil {
		return 0, &contact.StorageError{Op: "insert", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, &contact.StorageError{Op: "insert", Err: err}
	}
	return id, nil
}

// List returns every contact in id order, or only those where filter is a
// case-sensitive substring of name, phone or email.
func (s *Store) List(ctx context.Context, filter string) ([]contact.Contact, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if filter == "" {
		rows, err = s.db.QueryContext(ctx,
			"SELECT id, name, phone, email FROM contacts ORDER BY id")
	} else {
		// instr is byte-exact; LIKE would fold ASCII case.
		rows, err = s.db.QueryContext(ctx,
			`SELECT id, name, phone, email FROM contacts
			 WHERE instr(name, ?1) > 0 OR instr(phone, ?1) > 0 OR instr(COALESCE(email, ''), ?1) > 0
			 ORDER BY id`, filter)
	}
	if err != nil {
		return nil, &contact.StorageError{Op: "select", Err: err}
	}
	defer rows.Close()

	var out []contact.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, &contact.StorageError{Op: "select", Err: err}
	}
	return out, nil
}

// Get returns the contact with the given id, or contact.ErrNotFound.
func (s *Store) Get(ctx context.Context, id int64) (contact.Contact, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, phone, email FROM contacts WHERE id = ?", id)
	c, err := scanContact(row)
	if errors.Is(err, sql.ErrNoRows) {
		return contact.Contact{}, fmt.Errorf("%w: id %d", contact.ErrNotFound, id)
	}
	return c, err
}

// Update overwrites name, phone and email of the contact with the given id.
// It returns contact.ErrNotFound when no such row exists; nothing changes.
func (s *Store) Update(ctx context.Context, id int64, in contact.Input) error {
	if err := in.Validate(); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		"UPDATE contacts SET name = ?, phone = ?, email = ? WHERE id = ?",
		in.Name, in.Phone, in.Email, id)
	if err != nil {
		return &contact.StorageError{Op: "update", Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return &contact.StorageError{Op: "update", Err: err}
	}
	if n == 0 {
		return fmt.Errorf("%w: id %d", contact.ErrNotFound, id)
	}
	return nil
}

// Delete removes the contact with the given id. A missing id is a no-op.
func (s *Store) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM contacts WHERE id = ?", id); err != nil {
		return &contact.StorageError{Op: "delete", Err: err}
	}
	return nil
}

// Count returns the number of stored contacts.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM contacts").Scan(&n); err != nil {
		return 0, &contact.StorageError{Op: "count", Err: err}
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

// scanContact reads one row. A NULL email is returned as "".
func scanContact(sc scanner) (contact.Contact, error) {
	var (
		c     contact.Contact
		email sql.NullString
	)
	if err := sc.Scan(&c.ID, &c.Name, &c.Phone, &email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return contact.Contact{}, err
		}
		return contact.Contact{}, &contact.StorageError{Op: "scan", Err: err}
	}
	c.Email = email.String
	return c, nil
}
