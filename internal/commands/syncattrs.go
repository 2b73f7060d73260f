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
	Register(&SyncAttributesCmd{})
}

// SyncAttributesCmd implements the sync-attributes command.
type SyncAttributesCmd struct {
	boards  boardFlags
	mapping string
}

func (c *SyncAttributesCmd) Name() string      { return "sync-attributes" }
func (c *SyncAttributesCmd) Aliases() []string { return []string{"attrs"} }
func (c *SyncAttributesCmd) Synopsis() string  { return "Copy mapped field values between boards" }
func (c *SyncAttributesCmd) Usage() string {
	return "ghprojsync sync-attributes [--source <n>] [--target <n>] [--mapping <file>]"
}
func (c *SyncAttributesCmd) NeedsAuth() bool { return true }

func (c *SyncAttributesCmd) RegisterFlags(fs *flag.FlagSet) {
	c.boards.register(fs)
	fs.StringVar(&c.mapping, "mapping", "", "")
}

func (c *SyncAttributesCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if !noArgs(args, errOut) {
		return exitcode.UserError
	}
	c.boards.apply(cfg)
	if c.mapping != "" {
		cfg.MappingFile = c.mapping
	}
	if err := cfg.RequireBoards(); err != nil {
		return reportError(errOut, err)
	}
	mappings, err := cfg.Mappings()
	if err != nil {
		return reportError(errOut, err)
	}

	log := newLogger(cfg, errOut)
	log.Infof("syncing attributes of %s from project %d to project %d", cfg.Org, cfg.SourceProject, cfg.TargetProject)
	for _, m := range mappings {
		log.Debugf("mapping %q -> %q", m.Source, m.Target)
	}

	source, target, err := syncer.OpenBoards(ctx, svc, cfg.Org, cfg.SourceProject, cfg.TargetProject)
	if err != nil {
		return reportError(errOut, err)
	}
	for _, b := range []*syncer.Board{source, target} {
		if err := b.LoadItems(ctx, svc); err != nil {
			return reportError(errOut, err)
		}
		log.Infof("fetched %d items from %s", len(b.Items), b)
	}
	for _, b := range []*syncer.Board{source, target} {
		if err := b.LoadFields(ctx, svc); err != nil {
			return reportError(errOut, err)
		}
	}

	sum := syncer.NewAttributes(svc, log).Run(ctx, source, target, mappings)
	if !cfg.Quiet {
		output.FormatAttributeSummary(out, sum)
	}
	return exitcode.Success
}
