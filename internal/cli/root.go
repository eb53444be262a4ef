// Package cli implements the deckctl command line.
//
// deckctl stands in for the hosting environment of the deck registry: it
// opens the store, attaches the authenticated caller identity (--as or the
// configured caller) to every mutation, and renders results.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/roach88/slidedeck/internal/config"
	"github.com/roach88/slidedeck/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	Database   string
	Caller     string

	logger *slog.Logger
	callID string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for deckctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "deckctl",
		Short: "deckctl - slide deck registry",
		Long: `Manage a persistent registry of slide decks.

Each owner has named decks; each deck is an ordered list of opaque slide
identifiers. Only the owner may create decks or append slides. Reads are
public.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.resolve(cmd)
		},
	}

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return WrapExitError(ExitCommandError, "invalid flags", err)
	})

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (default from config)")
	cmd.PersistentFlags().StringVar(&opts.Caller, "as", "", "authenticated caller identity for mutations")

	// Add subcommands
	cmd.AddCommand(NewCreateCommand(opts))
	cmd.AddCommand(NewAppendCommand(opts))
	cmd.AddCommand(NewAppendBatchCommand(opts))
	cmd.AddCommand(NewSlidesCommand(opts))
	cmd.AddCommand(NewDecksCommand(opts))
	cmd.AddCommand(NewCountCommand(opts))
	cmd.AddCommand(NewDeckCountCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// resolve layers explicit flags over the loaded configuration and builds the
// logger. Flags win over config file and environment.
func (o *RootOptions) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}

	flags := cmd.Flags()
	if !flags.Changed("format") {
		o.Format = cfg.Format
	}
	if !flags.Changed("db") {
		o.Database = cfg.Database
	}
	if !flags.Changed("as") {
		o.Caller = cfg.Caller
	}

	if !isValidFormat(o.Format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}

	level := cfg.Level()
	if o.Verbose {
		level = slog.LevelDebug
	}
	o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	o.callID = uuid.NewString()

	return nil
}

// openStore opens the configured database for a mutation, creating it if
// needed. The command's single store call is logged under o.callID.
func (o *RootOptions) openStore() (*store.Store, error) {
	return o.open(o.Database)
}

// openReader opens the configured database for a public read. A database
// file that does not exist holds no owners, so the read runs against an empty
// in-memory registry and nothing is created on disk.
func (o *RootOptions) openReader() (*store.Store, error) {
	if o.Database != ":memory:" {
		if _, err := os.Stat(o.Database); errors.Is(err, fs.ErrNotExist) {
			o.logger.Debug("database does not exist, reading empty registry", "db", o.Database)
			return o.open(":memory:")
		}
	}
	return o.open(o.Database)
}

func (o *RootOptions) open(path string) (*store.Store, error) {
	st, err := store.Open(path,
		store.WithLogger(o.logger),
		store.WithCallIDs(func() string { return o.callID }),
	)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

// requireCaller returns the authenticated caller or a command error.
func (o *RootOptions) requireCaller() (string, error) {
	if o.Caller == "" {
		return "", NewExitError(ExitCommandError, fmt.Sprintf("no caller identity: use --as or %s", config.EnvCaller))
	}
	return o.Caller, nil
}

// formatter returns an OutputFormatter writing to the command's streams.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:  o.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: o.Verbose,
		TraceID: o.callID,
	}
}

// usageArgs wraps a positional argument validator so that usage errors
// exit with ExitCommandError.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return WrapExitError(ExitCommandError, "invalid arguments", err)
		}
		return nil
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
