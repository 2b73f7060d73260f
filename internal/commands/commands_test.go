package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ghprojsync/internal/commands"
	"ghprojsync/internal/config"
	"ghprojsync/internal/exitcode"
	"ghprojsync/internal/service"
	"ghprojsync/internal/testutil"
)

// runCommand is a helper to run a command with FakeService.
func runCommand(t *testing.T, cmd commands.Command, cfg *config.Config, svc *testutil.FakeService, args []string) (stdout, stderr string, code int) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	if cfg == nil {
		cfg = &config.Config{}
	}

	var s service.Service
	if svc != nil {
		s = svc
	}
	code = cmd.Run(context.Background(), cfg, s, args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func boardConfig() *config.Config {
	return &config.Config{Org: "acme", SourceProject: 68, TargetProject: 74}
}

func twoBoards() *testutil.FakeService {
	svc := testutil.NewFakeService()
	svc.AddBoard("acme", 68, "PVT_src",
		service.Field{ID: "s_status", Name: "Status", DataType: service.DataTypeSingleSelect,
			Options: []service.Option{{ID: "s1", Name: "Done"}, {ID: "s2", Name: "In Progress"}}},
		service.Field{ID: "s_est", Name: "Estimate", DataType: service.DataTypeNumber},
		service.Field{ID: "s_sprint", Name: "Sprint", DataType: service.DataTypeIteration, HasIterations: true,
			Iterations: []service.Iteration{
				{ID: "i5", Title: "Sprint 5", StartDate: "2026-01-05", Duration: 14},
				{ID: "i6", Title: "Sprint 6", StartDate: "2026-01-19", Duration: 14},
			}},
	)
	svc.AddBoard("acme", 74, "PVT_dst",
		service.Field{ID: "d_status", Name: "Status", DataType: service.DataTypeSingleSelect,
			Options: []service.Option{{ID: "o1", Name: "Done"}}},
		service.Field{ID: "d_est", Name: "Estimate", DataType: service.DataTypeNumber},
		service.Field{ID: "d_iter", Name: "Iteration", DataType: service.DataTypeIteration, HasIterations: true,
			Iterations: []service.Iteration{{ID: "x5", Title: "Sprint 5", StartDate: "2026-01-05", Duration: 14}}},
	)
	svc.AddBoardItem("PVT_src", service.Item{ID: "a12", IssueNumber: 12, RepositoryOwner: "X", RepositoryName: "Y",
		Values: map[string]service.Value{"Status": service.OptionValue("Done"), "Estimate": service.NumberValue(3)}})
	svc.AddBoardItem("PVT_src", service.Item{ID: "a13", IssueNumber: 13, RepositoryOwner: "X", RepositoryName: "Y",
		Values: map[string]service.Value{"Status": service.OptionValue("In Progress")}})
	svc.AddBoardItem("PVT_dst", service.Item{ID: "b12", IssueNumber: 12, RepositoryOwner: "X", RepositoryName: "Y"})
	svc.AddBoardItem("PVT_dst", service.Item{ID: "b13", IssueNumber: 13, RepositoryOwner: "X", RepositoryName: "Y"})
	return svc
}

// Tests for version command
func TestVersionCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.VersionCmd{}, nil, nil, nil)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ghprojsync 0.1.0\n" {
		t.Errorf("expected version output, got %q", stdout)
	}
}

// Tests for help command
func TestHelpCommand(t *testing.T) {
	stdout, stderr, code := runCommand(t, &commands.HelpCmd{}, nil, nil, nil)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	for _, want := range []string{"Usage:", "Commands:", "propagate-ref", "Copy mapped field values between boards"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help output should contain %q", want)
		}
	}
}

// Tests for sync-attributes command
func TestSyncAttributesCommand(t *testing.T) {
	svc := twoBoards()
	stdout, stderr, code := runCommand(t, &commands.SyncAttributesCmd{}, boardConfig(), svc, nil)

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d: %s", code, stderr)
	}
	// 12: Status + Estimate written, Sprint absent. 13: option missing, Estimate and Sprint absent.
	if stdout != "matched 2 items: 2 updated, 4 skipped, 0 failed\n" {
		t.Errorf("unexpected summary %q", stdout)
	}
	if !strings.Contains(stderr, `option "In Progress" not found`) {
		t.Errorf("expected missing option warning, got %q", stderr)
	}
	if n := len(svc.Updates()); n != 2 {
		t.Errorf("expected 2 mutations, got %d", n)
	}
}

func TestSyncAttributesCommand_FieldFailuresStillSucceed(t *testing.T) {
	svc := twoBoards()
	svc.UpdateErr["d_status"] = &service.APIError{Status: 500, Message: "boom"}

	stdout, _, code := runCommand(t, &commands.SyncAttributesCmd{}, boardConfig(), svc, nil)
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	if !strings.Contains(stdout, "1 failed") {
		t.Errorf("expected a failed field in summary, got %q", stdout)
	}
}

func TestSyncAttributesCommand_MappingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mapping.yaml")
	if err := os.WriteFile(path, []byte("Estimate: Estimate\n"), 0600); err != nil {
		t.Fatal(err)
	}
	cmd := &commands.SyncAttributesCmd{}
	svc := twoBoards()
	cfg := boardConfig()
	cfg.MappingFile = path

	stdout, stderr, code := runCommand(t, cmd, cfg, svc, nil)
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d: %s", code, stderr)
	}
	updates := svc.Updates()
	if len(updates) != 1 || updates[0].FieldID != "d_est" || updates[0].Value != service.NumberValue(3) {
		t.Fatalf("unexpected updates: %+v", updates)
	}
	if stdout != "matched 2 items: 1 updated, 1 skipped, 0 failed\n" {
		t.Errorf("unexpected summary %q", stdout)
	}
}

func TestSyncAttributesCommand_BadMappingFile(t *testing.T) {
	cfg := boardConfig()
	cfg.MappingFile = filepath.Join(t.TempDir(), "missing.yaml")

	_, stderr, code := runCommand(t, &commands.SyncAttributesCmd{}, cfg, twoBoards(), nil)
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "could not be read") {
		t.Errorf("unexpected error %q", stderr)
	}
}

func TestSyncAttributesCommand_MissingConfig(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.SyncAttributesCmd{}, &config.Config{Org: "acme", SourceProject: 1}, twoBoards(), nil)
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: TARGET_PROJECT_NUMBER is not set\n" {
		t.Errorf("unexpected error %q", stderr)
	}
}

func TestSyncAttributesCommand_UnexpectedArgument(t *testing.T) {
	_, stderr, code := runCommand(t, &commands.SyncAttributesCmd{}, boardConfig(), twoBoards(), []string{"extra"})
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: unexpected argument: extra\n" {
		t.Errorf("unexpected error %q", stderr)
	}
}

func TestSyncAttributesCommand_ItemsFetchFails(t *testing.T) {
	svc := twoBoards()
	svc.ItemsErr["PVT_dst"] = &service.TransportError{Op: "post", Err: os.ErrDeadlineExceeded}

	_, stderr, code := runCommand(t, &commands.SyncAttributesCmd{}, boardConfig(), svc, nil)
	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if !strings.Contains(stderr, "fetch items") {
		t.Errorf("unexpected error %q", stderr)
	}
	if n := len(svc.Updates()); n != 0 {
		t.Errorf("expected no mutations, got %d", n)
	}
}

// Tests for sync-iterations command
func TestSyncIterationsCommand(t *testing.T) {
	svc := twoBoards()
	stdout, stderr, code := runCommand(t, &commands.SyncIterationsCmd{}, boardConfig(), svc, nil)

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d: %s", code, stderr)
	}
	if stdout != "Iteration: created 1, 1 existing\n    + Sprint 6\n" {
		t.Errorf("unexpected output %q", stdout)
	}
	added := svc.AddedIterations()
	if len(added) != 1 || added[0].Iteration.Title != "Sprint 6" || added[0].FieldID != "d_iter" {
		t.Fatalf("unexpected calls: %+v", added)
	}

	// A second run finds nothing to do.
	stdout, _, _ = runCommand(t, &commands.SyncIterationsCmd{}, boardConfig(), svc, nil)
	if stdout != "Iteration: up to date (2 existing)\n" {
		t.Errorf("unexpected second run output %q", stdout)
	}
}

func TestSyncIterationsCommand_NamedFieldMissing(t *testing.T) {
	cfg := boardConfig()
	cfg.IterationField = "Release"

	_, stderr, code := runCommand(t, &commands.SyncIterationsCmd{}, cfg, twoBoards(), nil)
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, `iteration field "Release": not found`) {
		t.Errorf("unexpected error %q", stderr)
	}
}

func TestSyncIterationsCommand_AddFails(t *testing.T) {
	svc := twoBoards()
	svc.AddIterationErr = &service.APIError{Message: "Resource not accessible by integration"}

	_, stderr, code := runCommand(t, &commands.SyncIterationsCmd{}, boardConfig(), svc, nil)
	if code != exitcode.BackendError {
		t.Errorf("expected exit code %d, got %d", exitcode.BackendError, code)
	}
	if !strings.Contains(stderr, `create iteration "Sprint 6"`) {
		t.Errorf("unexpected error %q", stderr)
	}
}

// Tests for propagate-ref command
func propagationService(ref string) *testutil.FakeService {
	svc := testutil.NewFakeService()
	svc.AddIssue(service.Issue{
		ID: "I_parent", Number: 1, Repository: "X/Y",
		ProjectItems: []service.ProjectItem{{ID: "PVTI_p", ProjectID: "PVT_ref", TextValues: map[string]string{"FLD": ref}}},
		SubIssues: []service.Issue{
			{ID: "I_a", Number: 2, Repository: "X/Y", ProjectItems: []service.ProjectItem{{ID: "PVTI_a", ProjectID: "PVT_ref"}}},
			{ID: "I_b", Number: 3, Repository: "X/Y"},
		},
	})
	return svc
}

func propagationConfig() *config.Config {
	return &config.Config{IssueNodeID: "I_parent", ProjectID: "PVT_ref", FieldID: "FLD"}
}

func TestPropagateCommand(t *testing.T) {
	svc := propagationService("ESDIS-42")
	stdout, stderr, code := runCommand(t, &commands.PropagateCmd{}, propagationConfig(), svc, nil)

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d: %s", code, stderr)
	}
	if stdout != "reference \"ESDIS-42\" written to 2 of 2 sub-issues (1 added to project)\n" {
		t.Errorf("unexpected output %q", stdout)
	}
	if len(svc.Updates()) != 2 || len(svc.AddedItems()) != 1 {
		t.Errorf("expected 2 updates and 1 added item, got %d and %d", len(svc.Updates()), len(svc.AddedItems()))
	}
}

func TestPropagateCommand_NoReference(t *testing.T) {
	svc := propagationService("")
	_, stderr, code := runCommand(t, &commands.PropagateCmd{}, propagationConfig(), svc, nil)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.Contains(stderr, "parent issue has no reference value") {
		t.Errorf("unexpected error %q", stderr)
	}
	if len(svc.Updates()) != 0 {
		t.Error("no sub-issue may be written")
	}
}

func TestPropagateCommand_MissingConfig(t *testing.T) {
	cfg := propagationConfig()
	cfg.ProjectID = ""

	_, stderr, code := runCommand(t, &commands.PropagateCmd{}, cfg, propagationService("x"), nil)
	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if stderr != "error: PROJECT_ID is not set\n" {
		t.Errorf("unexpected error %q", stderr)
	}
}

// Tests for fields command
func TestFieldsCommand(t *testing.T) {
	svc := twoBoards()
	stdout, stderr, code := runCommand(t, &commands.FieldsCmd{}, boardConfig(), svc, []string{"74"})

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d: %s", code, stderr)
	}
	testutil.GoldenString(t, "fields_74", stdout)
}

func TestFieldsCommand_DefaultsToSource(t *testing.T) {
	stdout, _, code := runCommand(t, &commands.FieldsCmd{}, boardConfig(), twoBoards(), nil)
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d", code)
	}
	if !strings.HasPrefix(stdout, "Status  [SINGLE_SELECT]  s_status\n") {
		t.Errorf("expected source board fields, got %q", stdout)
	}
}

func TestFieldsCommand_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
		args []string
		code int
		want string
	}{
		{"bad number", boardConfig(), []string{"x"}, exitcode.UserError, "error: invalid project number: x\n"},
		{"too many args", boardConfig(), []string{"1", "2"}, exitcode.UserError, "error: unexpected argument: 2\n"},
		{"no org", &config.Config{}, []string{"1"}, exitcode.UserError, "error: ORG is not set\n"},
		{"no number", &config.Config{Org: "acme"}, nil, exitcode.UserError, "error: project number required\n"},
		{"unknown board", boardConfig(), []string{"99"}, exitcode.UserError, "error: acme project 99: not found\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, code := runCommand(t, &commands.FieldsCmd{}, tt.cfg, twoBoards(), tt.args)
			if code != tt.code {
				t.Errorf("expected exit code %d, got %d", tt.code, code)
			}
			if stderr != tt.want {
				t.Errorf("expected %q, got %q", tt.want, stderr)
			}
		})
	}
}
