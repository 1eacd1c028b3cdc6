package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/smileynet/contactbook/internal/book"
	"github.com/smileynet/contactbook/internal/config"
	"github.com/smileynet/contactbook/internal/contact"
	"github.com/smileynet/contactbook/internal/logging"
	"github.com/smileynet/contactbook/internal/store"
	"github.com/smileynet/contactbook/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Globals are flags shared by every command.
type Globals struct {
	DB     string `help:"SQLite database file (overrides config and CONTACTBOOK_DB)." name:"db" placeholder:"PATH"`
	Driver string `help:"SQL driver: sqlite (pure Go) or sqlite3 (cgo)." placeholder:"NAME"`
	Config string `help:"Extra config file layered over the user and project files." placeholder:"PATH"`
}

// CLI is the top-level command structure for contactbook.
type CLI struct {
	Globals

	Version kong.VersionFlag `help:"Show version." short:"V"`
	UI      UICmd            `cmd:"" default:"1" help:"Open the interactive contact book (default)."`
	Add     AddCmd           `cmd:"" help:"Add a contact and print its id."`
	List    ListCmd          `cmd:"" help:"List contacts, optionally filtered by a case-sensitive substring."`
	Update  UpdateCmd        `cmd:"" help:"Replace the fields of a contact."`
	Delete  DeleteCmd        `cmd:"" help:"Delete a contact."`
	Export  ExportCmd        `cmd:"" help:"Export all contacts as CSV."`
}

// contactBook abstracts *book.Book for the non-interactive commands.
type contactBook interface {
	Add(ctx context.Context, in contact.Input) (int64, error)
	Update(ctx context.Context, id int64, in contact.Input) error
	Delete(ctx context.Context, id int64) error
	Search(ctx context.Context, filter string) ([]contact.Contact, error)
	Export(ctx context.Context, path string) (string, error)
	ExportTo(ctx context.Context, w io.Writer) (int, error)
}

// loadConfig loads layered config from user and project paths, then applies
// env overrides and finally the global flags.
func (g *Globals) loadConfig() (*config.Config, error) {
	paths := []string{
		os.ExpandEnv("$HOME/.config/contactbook/config.yaml"),
		".contactbook/config.yaml",
	}
	if g.Config != "" {
		if _, err := os.Stat(g.Config); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		paths = append(paths, g.Config)
	}

	cfg, err := config.LoadLayered(paths...)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	// Apply CLI flag overrides.
	if g.DB != "" {
		cfg.Storage.Path = g.DB
	}
	if g.Driver != "" {
		cfg.Storage.Driver = g.Driver
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// app holds the dependencies built once per invocation.
type app struct {
	cfg   *config.Config
	log   *zap.Logger
	store *store.Store
	book  *book.Book
}

// open builds config, logger, store and book.
func (g *Globals) open(ctx context.Context) (*app, error) {
	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, store.Options{Driver: cfg.Storage.Driver, Path: cfg.Storage.Path})
	if err != nil {
		logger.Error("opening store failed", zap.String("path", cfg.Storage.Path), zap.Error(err))
		_ = logger.Sync()
		return nil, err
	}
	logger.Info("store opened",
		zap.String("version", version),
		zap.String("driver", cfg.Storage.Driver),
		zap.String("path", st.Path()),
	)

	return &app{
		cfg:   cfg,
		log:   logger,
		store: st,
		book:  book.New(st, book.WithLogger(logger)),
	}, nil
}

// Close releases the store and flushes the logger.
func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("closing store failed", zap.Error(err))
	}
	_ = a.log.Sync()
}

// withApp opens the app, runs fn with a cancellable context and closes the app.
func withApp(g *Globals, fn func(ctx context.Context, a *app) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(ctx, a)
}

// --- UI command ---

// UICmd opens the interactive contact book.
type UICmd struct{}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// Run builds real dependencies and launches the TUI.
func (u *UICmd) Run(g *Globals) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("ui: requires a terminal (TTY); use the list, add, update, delete or export commands instead")
	}

	return withApp(g, func(ctx context.Context, a *app) error {
		m := tui.NewModel(a.book,
			tui.WithContext(ctx),
			tui.WithTitle(a.cfg.UI.Title),
			tui.WithListHeight(a.cfg.UI.ListHeight),
			tui.WithExportPath(a.cfg.Export.DefaultPath),
		)
		prog := tea.NewProgram(m, tea.WithAltScreen())
		return u.run(true, prog)
	})
}

// run executes the tea program, enabling testable wiring.
func (u *UICmd) run(isTTY bool, prog teaRunner) error {
	if !isTTY {
		return fmt.Errorf("ui: requires a terminal (TTY)")
	}
	_, err := prog.Run()
	return err
}

// --- Add command ---

// AddCmd adds a contact.
type AddCmd struct {
	Name  string `help:"Contact name." required:""`
	Phone string `help:"Contact phone number." required:""`
	Email string `help:"Contact email address."`
}

// Run executes the add command.
func (c *AddCmd) Run(g *Globals) error {
	return withApp(g, func(ctx context.Context, a *app) error {
		return c.run(ctx, os.Stdout, a.book)
	})
}

// run adds the contact through b, enabling testable wiring.
func (c *AddCmd) run(ctx context.Context, w io.Writer, b contactBook) error {
	id, err := b.Add(ctx, contact.Input{Name: c.Name, Phone: c.Phone, Email: c.Email})
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	_, _ = fmt.Fprintf(w, "%d\n", id)
	return nil
}

// --- List command ---

// ListCmd lists contacts.
type ListCmd struct {
	Filter string `arg:"" optional:"" help:"Case-sensitive substring of name, phone or email."`
}

// Run executes the list command.
func (c *ListCmd) Run(g *Globals) error {
	return withApp(g, func(ctx context.Context, a *app) error {
		return c.run(ctx, os.Stdout, a.book)
	})
}

// run prints one line per matching contact, enabling testable wiring.
func (c *ListCmd) run(ctx context.Context, w io.Writer, b contactBook) error {
	cs, err := b.Search(ctx, c.Filter)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	for _, ct := range cs {
		_, _ = fmt.Fprintln(w, ct.Line())
	}
	return nil
}

// --- Update command ---

// UpdateCmd replaces the fields of a contact.
type UpdateCmd struct {
	ID    int64  `arg:"" help:"Contact id."`
	Name  string `help:"Contact name." required:""`
	Phone string `help:"Contact phone number." required:""`
	Email string `help:"Contact email address."`
}

// Run executes the update command.
func (c *UpdateCmd) Run(g *Globals) error {
	return withApp(g, func(ctx context.Context, a *app) error {
		return c.run(ctx, os.Stdout, a.book)
	})
}

// run updates the contact through b, enabling testable wiring.
func (c *UpdateCmd) run(ctx context.Context, w io.Writer, b contactBook) error {
	if err := b.Update(ctx, c.ID, contact.Input{Name: c.Name, Phone: c.Phone, Email: c.Email}); err != nil {
		return fmt.Errorf("update %d: %w", c.ID, err)
	}
	_, _ = fmt.Fprintf(w, "Updated contact %d\n", c.ID)
	return nil
}

// --- Delete command ---

// DeleteCmd deletes a contact.
type DeleteCmd struct {
	ID int64 `arg:"" help:"Contact id."`
}

// Run executes the delete command.
func (c *DeleteCmd) Run(g *Globals) error {
	return withApp(g, func(ctx context.Context, a *app) error {
		return c.run(ctx, os.Stdout, a.book)
	})
}

// run deletes the contact through b, enabling testable wiring.
// Deleting an id that does not exist succeeds.
func (c *DeleteCmd) run(ctx context.Context, w io.Writer, b contactBook) error {
	if err := b.Delete(ctx, c.ID); err != nil {
		return fmt.Errorf("delete %d: %w", c.ID, err)
	}
	_, _ = fmt.Fprintf(w, "Deleted contact %d\n", c.ID)
	return nil
}

// --- Export command ---

// ExportCmd writes all contacts as CSV.
type ExportCmd struct {
	Path string `arg:"" help:"Destination file (.csv is added when there is no extension), or - for stdout."`
}

// Run executes the export command.
func (c *ExportCmd) Run(g *Globals) error {
	return withApp(g, func(ctx context.Context, a *app) error {
		return c.run(ctx, os.Stdout, a.book)
	})
}

// run exports through b, enabling testable wiring.
func (c *ExportCmd) run(ctx context.Context, w io.Writer, b contactBook) error {
	if c.Path == "-" {
		if _, err := b.ExportTo(ctx, w); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		return nil
	}
	written, err := b.Export(ctx, c.Path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Contacts exported successfully to %s\n", written)
	return nil
}

const (
	exitSuccess = 0
	exitUsage   = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if contact.IsStorage(err) {
		return exitSetup
	}
	if errors.Is(err, contact.ErrValidation) ||
		errors.Is(err, contact.ErrNotFound) ||
		errors.Is(err, contact.ErrNoSelection) ||
		errors.Is(err, contact.ErrEmptyExport) {
		return exitUsage
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("contactbook"),
		kong.Description("A single-user contact book backed by SQLite."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
