package testutil

import (
	"os"
	"testing"
)

// UnsetEnv removes keys from the environment for the duration of the test.
func UnsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

// ConfigVars lists every variable the configuration reads.
var ConfigVars = []string{
	"GITHUB_TOKEN", "PROJECTS_TOKEN", "GH_TOKEN", "GITHUB_API", "ORG",
	"SOURCE_PROJECT_NUMBER", "TARGET_PROJECT_NUMBER", "ISSUE_NODE_ID",
	"PROJECT_ID", "FIELD_ID", "FIELD_MAPPING_FILE", "ITERATION_FIELD",
}
