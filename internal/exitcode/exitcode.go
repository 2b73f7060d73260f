// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion, including attribute syncs
	// where individual fields were skipped or failed.
	Success = 0

	// UserError indicates bad args, missing configuration, an unknown
	// board or issue, or a parent issue without a reference value.
	UserError = 1

	// AuthError indicates no usable GitHub credential.
	AuthError = 2

	// BackendError indicates a GitHub API or network error.
	BackendError = 3
)
