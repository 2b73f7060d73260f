package commands

import (
	"context"
	"flag"
	"io"

	"ghprojsync/internal/config"
	"ghprojsync/internal/exitcode"
	"ghprojsync/internal/output"
	"ghprojsync/internal/service"
	"ghprojsync/internal/syncer"
)

func init() {
	Register(&PropagateCmd{})
}

// PropagateCmd implements the propagate-ref command.
type PropagateCmd struct {
	issue   string
	project string
	field   string
}

func (c *PropagateCmd) Name() string      { return "propagate-ref" }
func (c *PropagateCmd) Aliases() []string { return []string{"propagate"} }
func (c *PropagateCmd) Synopsis() string  { return "Copy a parent issue's reference field to its sub-issues" }
func (c *PropagateCmd) Usage() string {
	return "ghprojsync propagate-ref [--issue <node-id>] [--project <node-id>] [--field <node-id>]"
}
func (c *PropagateCmd) NeedsAuth() bool { return true }

func (c *PropagateCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.issue, "issue", "", "")
	fs.StringVar(&c.project, "project", "", "")
	fs.StringVar(&c.field, "field", "", "")
}

func (c *PropagateCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if !noArgs(args, errOut) {
		return exitcode.UserError
	}
	if c.issue != "" {
		cfg.IssueNodeID = c.issue
	}
	if c.project != "" {
		cfg.ProjectID = c.project
	}
	if c.field != "" {
		cfg.FieldID = c.field
	}
	if err := cfg.RequirePropagation(); err != nil {
		return reportError(errOut, err)
	}

	log := newLogger(cfg, errOut)
	sum, err := syncer.NewPropagator(svc, log).Run(ctx, cfg.IssueNodeID, cfg.ProjectID, cfg.FieldID)
	if err != nil {
		return reportError(errOut, err)
	}
	if !cfg.Quiet {
		output.FormatPropagationSummary(out, sum)
	}
	return exitcode.Success
}
