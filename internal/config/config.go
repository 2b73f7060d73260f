// Package config loads run configuration from the environment, an optional
// .env file, and the OS keychain.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// AppName is the application name, also used as the keychain service.
	AppName = "ghprojsync"

	// DefaultEnvFile is loaded from the working directory when present.
	DefaultEnvFile = ".env"
)

// Environment variable names.
const (
	EnvGitHubToken    = "GITHUB_TOKEN"
	EnvProjectsToken  = "PROJECTS_TOKEN"
	EnvGHToken        = "GH_TOKEN"
	EnvAPIURL         = "GITHUB_API"
	EnvOrg            = "ORG"
	EnvSourceProject  = "SOURCE_PROJECT_NUMBER"
	EnvTargetProject  = "TARGET_PROJECT_NUMBER"
	EnvIssueNodeID    = "ISSUE_NODE_ID"
	EnvProjectID      = "PROJECT_ID"
	EnvFieldID        = "FIELD_ID"
	EnvMappingFile    = "FIELD_MAPPING_FILE"
	EnvIterationField = "ITERATION_FIELD"
)

// tokenVars are checked in order; the first non-empty one wins.
var tokenVars = []string{EnvGitHubToken, EnvProjectsToken, EnvGHToken}

// Error reports a missing or invalid configuration input.
type Error struct {
	Var    string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s", e.Var, e.Reason)
}

// IsConfigError reports whether err is a configuration error.
func IsConfigError(err error) bool {
	var cfgErr *Error
	return errors.As(err, &cfgErr)
}

// Config holds settings for one invocation.
type Config struct {
	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Token is the GitHub credential from the environment. Empty means
	// ResolveToken falls back to the keychain.
	Token string

	// APIURL is the GraphQL endpoint.
	APIURL string

	// Org is the organization login that owns both boards.
	Org string

	// SourceProject and TargetProject are board numbers within Org.
	SourceProject int
	TargetProject int

	// IssueNodeID, ProjectID and FieldID drive reference propagation.
	IssueNodeID string
	ProjectID   string
	FieldID     string

	// MappingFile optionally overrides the default field mapping.
	MappingFile string

	// IterationField names the iteration field to sync. Empty picks the first.
	IterationField string
}

// Load reads configuration from the process environment after loading
// envFile. If envFile is empty, ./.env is loaded when it exists.
// Variables already set in the environment are never overwritten.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, &Error{Var: envFile, Reason: fmt.Sprintf("could not be loaded: %v", err)}
		}
	} else if _, err := os.Stat(DefaultEnvFile); err == nil {
		_ = godotenv.Load(DefaultEnvFile)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Token:          firstEnv(tokenVars...),
		APIURL:         os.Getenv(EnvAPIURL),
		Org:            strings.TrimSpace(os.Getenv(EnvOrg)),
		IssueNodeID:    strings.TrimSpace(os.Getenv(EnvIssueNodeID)),
		ProjectID:      strings.TrimSpace(os.Getenv(EnvProjectID)),
		FieldID:        strings.TrimSpace(os.Getenv(EnvFieldID)),
		MappingFile:    os.Getenv(EnvMappingFile),
		IterationField: os.Getenv(EnvIterationField),
	}

	var err error
	if cfg.SourceProject, err = envInt(EnvSourceProject); err != nil {
		return nil, err
	}
	if cfg.TargetProject, err = envInt(EnvTargetProject); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RequireBoards checks the inputs needed to resolve both boards.
func (c *Config) RequireBoards() error {
	if c.Org == "" {
		return &Error{Var: EnvOrg, Reason: "is not set"}
	}
	if c.SourceProject <= 0 {
		return &Error{Var: EnvSourceProject, Reason: "is not set"}
	}
	if c.TargetProject <= 0 {
		return &Error{Var: EnvTargetProject, Reason: "is not set"}
	}
	return nil
}

// RequirePropagation checks the inputs needed for reference propagation.
func (c *Config) RequirePropagation() error {
	if c.IssueNodeID == "" {
		return &Error{Var: EnvIssueNodeID, Reason: "is not set"}
	}
	if c.ProjectID == "" {
		return &Error{Var: EnvProjectID, Reason: "is not set"}
	}
	if c.FieldID == "" {
		return &Error{Var: EnvFieldID, Reason: "is not set"}
	}
	return nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

func envInt(key string) (int, error) {
	s := strings.TrimSpace(os.Getenv(key))
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, &Error{Var: key, Reason: fmt.Sprintf("is not a valid project number: %q", s)}
	}
	return n, nil
}
