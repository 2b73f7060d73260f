package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"ghprojsync/internal/config"
	"ghprojsync/internal/exitcode"
	"ghprojsync/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "ghprojsync help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Commands:")
	for _, cmd := range DefaultRegistry.All() {
		fmt.Fprintf(out, "  %-16s %s\n", cmd.Name(), cmd.Synopsis())
	}
	return exitcode.Success
}

const helpText = `Usage:
  ghprojsync sync-attributes [common flags] [--source <n>] [--target <n>] [--mapping <file>]
  ghprojsync attrs ...                             Alias for sync-attributes
  ghprojsync sync-iterations [common flags] [--source <n>] [--target <n>] [--iteration-field <name>]
  ghprojsync iterations ...                        Alias for sync-iterations
  ghprojsync propagate-ref [common flags] [--issue <id>] [--project <id>] [--field <id>]
  ghprojsync propagate ...                         Alias for propagate-ref
  ghprojsync fields [common flags] [<project-number>]
  ghprojsync login [common flags] [--token <token>]
  ghprojsync logout [common flags]
  ghprojsync help
  ghprojsync version

Common flags:
  --env-file <path>  Load variables from this file instead of ./.env
  --org <login>      Organization owning the boards (ORG)
  --quiet            Suppress informational output
  --debug            Print debug logs to stderr

Environment:
  GITHUB_TOKEN, PROJECTS_TOKEN, GH_TOKEN   GitHub token (first set wins)
  GITHUB_API                               GraphQL endpoint
  ORG                                      Organization login
  SOURCE_PROJECT_NUMBER                    Board values are copied from
  TARGET_PROJECT_NUMBER                    Board values are copied to
  FIELD_MAPPING_FILE                       YAML field mapping
  ITERATION_FIELD                          Iteration field name
  ISSUE_NODE_ID, PROJECT_ID, FIELD_ID      Reference propagation inputs
`
