package output

import (
	"bytes"
	"testing"

	"ghprojsync/internal/service"
	"ghprojsync/internal/syncer"
	"ghprojsync/internal/testutil"
)

func TestFormatFields(t *testing.T) {
	fields := []service.Field{
		{ID: "PVTF_1", Name: "Title", DataType: "TITLE"},
		{ID: "PVTSSF_2", Name: "Status", DataType: service.DataTypeSingleSelect, Options: []service.Option{
			{ID: "o1", Name: "Done"},
			{ID: "o2", Name: "In\nProgress"},
		}},
		{ID: "PVTIF_3", Name: "Sprint", DataType: service.DataTypeIteration, HasIterations: true, Iterations: []service.Iteration{
			{ID: "i1", Title: "Sprint 5", StartDate: "2026-01-05", Duration: 14},
		}},
		{ID: "PVTF_4", Name: " ", DataType: service.DataTypeText},
	}

	var buf bytes.Buffer
	FormatFields(&buf, fields)
	testutil.Golden(t, "fields", buf.Bytes())
}

func TestFormatFields_Empty(t *testing.T) {
	var buf bytes.Buffer
	FormatFields(&buf, nil)
	if buf.String() != "(no fields)\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestFormatAttributeSummary(t *testing.T) {
	var buf bytes.Buffer
	FormatAttributeSummary(&buf, syncer.Summary{Pairs: 3, Updated: 7, Skipped: 1, Failed: 1, UnmatchedSource: 2})
	testutil.Golden(t, "attribute_summary", buf.Bytes())

	buf.Reset()
	FormatAttributeSummary(&buf, syncer.Summary{Pairs: 1, Updated: 3})
	if buf.String() != "matched 1 items: 3 updated, 0 skipped, 0 failed\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestFormatIterationSummary(t *testing.T) {
	var buf bytes.Buffer
	FormatIterationSummary(&buf, syncer.IterationSummary{TargetField: "Iteration", Existing: 1, Created: []string{"Sprint 6", "Sprint 7"}})
	testutil.Golden(t, "iteration_summary", buf.Bytes())

	buf.Reset()
	FormatIterationSummary(&buf, syncer.IterationSummary{TargetField: "Iteration", Existing: 4})
	if buf.String() != "Iteration: up to date (4 existing)\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestFormatPropagationSummary(t *testing.T) {
	tests := []struct {
		sum  syncer.PropagationSummary
		want string
	}{
		{
			syncer.PropagationSummary{Reference: "ESDIS-1", SubIssues: 2, Updated: 2, Added: 1},
			"reference \"ESDIS-1\" written to 2 of 2 sub-issues (1 added to project)\n",
		},
		{
			syncer.PropagationSummary{Reference: "ESDIS-1"},
			"reference \"ESDIS-1\" written to 0 of 0 sub-issues\n",
		},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		FormatPropagationSummary(&buf, tt.sum)
		if buf.String() != tt.want {
			t.Errorf("expected %q, got %q", tt.want, buf.String())
		}
	}
}
