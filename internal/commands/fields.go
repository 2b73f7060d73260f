package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"

	"ghprojsync/internal/config"
	"ghprojsync/internal/exitcode"
	"ghprojsync/internal/output"
	"ghprojsync/internal/service"
	"ghprojsync/internal/syncer"
)

func init() {
	Register(&FieldsCmd{})
}

// FieldsCmd implements the fields command.
type FieldsCmd struct{}

func (c *FieldsCmd) Name() string      { return "fields" }
func (c *FieldsCmd) Aliases() []string { return nil }
func (c *FieldsCmd) Synopsis() string  { return "Print a board's field catalog" }
func (c *FieldsCmd) Usage() string     { return "ghprojsync fields [common flags] [<project-number>]" }
func (c *FieldsCmd) NeedsAuth() bool   { return true }

func (c *FieldsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *FieldsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	}

	// Defaults to the source board.
	number := cfg.SourceProject
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			fmt.Fprintf(errOut, "error: invalid project number: %s\n", args[0])
			return exitcode.UserError
		}
		number = n
	}
	if cfg.Org == "" {
		return reportError(errOut, &config.Error{Var: config.EnvOrg, Reason: "is not set"})
	}
	if number < 1 {
		fmt.Fprintln(errOut, "error: project number required")
		return exitcode.UserError
	}

	id, err := svc.ProjectID(ctx, cfg.Org, number)
	if err != nil {
		return reportError(errOut, fmt.Errorf("%s project %d: %w", cfg.Org, number, err))
	}
	board := &syncer.Board{Org: cfg.Org, Number: number, ProjectID: id}
	if err := board.LoadFields(ctx, svc); err != nil {
		return reportError(errOut, err)
	}

	output.FormatFields(out, board.Fields)
	return exitcode.Success
}
