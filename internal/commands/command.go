// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"ghprojsync/internal/config"
	"ghprojsync/internal/exitcode"
	"ghprojsync/internal/logging"
	"ghprojsync/internal/service"
	"ghprojsync/internal/syncer"
)

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command talks to the GitHub API.
	// Commands like help, version, login, logout return false.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (environment, .env file and common flags).
	// svc is nil if NeedsAuth() returns false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int
}

// newLogger creates the run logger. Log lines go to errOut so stdout only
// carries results.
func newLogger(cfg *config.Config, errOut io.Writer) *logging.Logger {
	return logging.New(errOut, logging.LevelFor(cfg.Debug, cfg.Quiet))
}

// noArgs rejects stray positional arguments.
func noArgs(args []string, errOut io.Writer) bool {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return false
	}
	return true
}

// reportError prints err and maps it to an exit code.
func reportError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	switch {
	case config.IsConfigError(err),
		errors.Is(err, service.ErrNotFound),
		errors.Is(err, syncer.ErrNoReference):
		return exitcode.UserError
	case service.IsAuthError(err):
		return exitcode.AuthError
	default:
		return exitcode.BackendError
	}
}

// boardFlags holds the --source and --target overrides shared by board commands.
type boardFlags struct {
	source int
	target int
}

func (b *boardFlags) register(fs *flag.FlagSet) {
	fs.IntVar(&b.source, "source", 0, "")
	fs.IntVar(&b.target, "target", 0, "")
}

func (b *boardFlags) apply(cfg *config.Config) {
	if b.source > 0 {
		cfg.SourceProject = b.source
	}
	if b.target > 0 {
		cfg.TargetProject = b.target
	}
}
