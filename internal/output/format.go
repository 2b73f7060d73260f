// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"ghprojsync/internal/service"
	"ghprojsync/internal/syncer"
)

// FormatFields prints a board's field catalog, one field per line with its
// options or iterations indented below.
// Format: "{NAME}  [{TYPE}]  {ID}\n" then "    - {OPTION} ({ID})\n"
func FormatFields(w io.Writer, fields []service.Field) {
	if len(fields) == 0 {
		fmt.Fprintln(w, "(no fields)")
		return
	}
	for _, f := range fields {
		fmt.Fprintf(w, "%s  [%s]  %s\n", normalizeName(f.Name), f.DataType, f.ID)
		for _, o := range f.Options {
			fmt.Fprintf(w, "    - %s (%s)\n", normalizeName(o.Name), o.ID)
		}
		for _, it := range f.Iterations {
			fmt.Fprintf(w, "    - %s (%s, %d days)\n", normalizeName(it.Title), it.StartDate, it.Duration)
		}
	}
}

// FormatAttributeSummary prints the outcome of an attribute sync.
func FormatAttributeSummary(w io.Writer, sum syncer.Summary) {
	fmt.Fprintf(w, "matched %d items: %d updated, %d skipped, %d failed\n",
		sum.Pairs, sum.Updated, sum.Skipped, sum.Failed)
	if sum.UnmatchedSource > 0 || sum.UnmatchedTarget > 0 {
		fmt.Fprintf(w, "unmatched: %d source, %d target\n", sum.UnmatchedSource, sum.UnmatchedTarget)
	}
}

// FormatIterationSummary prints the outcome of an iteration sync.
func FormatIterationSummary(w io.Writer, sum syncer.IterationSummary) {
	if len(sum.Created) == 0 {
		fmt.Fprintf(w, "%s: up to date (%d existing)\n", sum.TargetField, sum.Existing)
		return
	}
	fmt.Fprintf(w, "%s: created %d, %d existing\n", sum.TargetField, len(sum.Created), sum.Existing)
	for _, title := range sum.Created {
		fmt.Fprintf(w, "    + %s\n", normalizeName(title))
	}
}

// FormatPropagationSummary prints the outcome of a reference propagation.
func FormatPropagationSummary(w io.Writer, sum syncer.PropagationSummary) {
	fmt.Fprintf(w, "reference %q written to %d of %d sub-issues", sum.Reference, sum.Updated, sum.SubIssues)
	if sum.Added > 0 {
		fmt.Fprintf(w, " (%d added to project)", sum.Added)
	}
	fmt.Fprintln(w)
}

// normalizeName normalizes a field, option or iteration name for display.
// - Empty or whitespace-only names become "(unnamed)"
// - Newlines are replaced with spaces
func normalizeName(name string) string {
	name = strings.ReplaceAll(name, "\r", " ")
	name = strings.ReplaceAll(name, "\n", " ")

	if strings.TrimSpace(name) == "" {
		return "(unnamed)"
	}
	return name
}
