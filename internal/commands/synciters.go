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
	Register(&SyncIterationsCmd{})
}

// SyncIterationsCmd implements the sync-iterations command.
type SyncIterationsCmd struct {
	boards boardFlags
	field  string
}

func (c *SyncIterationsCmd) Name() string      { return "sync-iterations" }
func (c *SyncIterationsCmd) Aliases() []string { return []string{"iterations"} }
func (c *SyncIterationsCmd) Synopsis() string  { return "Create iterations missing on the target board" }
func (c *SyncIterationsCmd) Usage() string {
	return "ghprojsync sync-iterations [--source <n>] [--target <n>] [--iteration-field <name>]"
}
func (c *SyncIterationsCmd) NeedsAuth() bool { return true }

func (c *SyncIterationsCmd) RegisterFlags(fs *flag.FlagSet) {
	c.boards.register(fs)
	fs.StringVar(&c.field, "iteration-field", "", "")
}

func (c *SyncIterationsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if !noArgs(args, errOut) {
		return exitcode.UserError
	}
	c.boards.apply(cfg)
	if c.field != "" {
		cfg.IterationField = c.field
	}
	if err := cfg.RequireBoards(); err != nil {
		return reportError(errOut, err)
	}

	log := newLogger(cfg, errOut)
	source, target, err := syncer.OpenBoards(ctx, svc, cfg.Org, cfg.SourceProject, cfg.TargetProject)
	if err != nil {
		return reportError(errOut, err)
	}
	for _, b := range []*syncer.Board{source, target} {
		if err := b.LoadFields(ctx, svc); err != nil {
			return reportError(errOut, err)
		}
	}

	sum, err := syncer.NewIterations(svc, log).Run(ctx, source, target, cfg.IterationField)
	if err != nil {
		return reportError(errOut, err)
	}
	log.Infof("iteration sync complete: %d created, %d existing", len(sum.Created), sum.Existing)
	if !cfg.Quiet {
		output.FormatIterationSummary(out, sum)
	}
	return exitcode.Success
}
