package syncer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ghprojsync/internal/logging"
	"ghprojsync/internal/service"
)

// ErrNoReference means the parent issue carries no reference value on the board.
var ErrNoReference = errors.New("parent issue has no reference value")

// PropagationSummary reports what a reference propagation did.
type PropagationSummary struct {
	Reference string
	SubIssues int
	Added     int
	Updated   int
}

// Propagator copies a text field value from a parent issue to its sub-issues
// on one board.
type Propagator struct {
	svc service.Service
	log *logging.Logger
}

// NewPropagator creates a reference propagator.
func NewPropagator(svc service.Service, log *logging.Logger) *Propagator {
	return &Propagator{svc: svc, log: log}
}

// Run reads the parent's value of fieldID on projectID and writes it to every
// sub-issue, adding sub-issues to the board when needed. Nothing is written
// unless the parent value exists. Any error aborts the run.
func (p *Propagator) Run(ctx context.Context, issueNodeID, projectID, fieldID string) (PropagationSummary, error) {
	var sum PropagationSummary

	parent, err := p.svc.IssueReference(ctx, issueNodeID)
	if err != nil {
		return sum, fmt.Errorf("fetch issue %s: %w", issueNodeID, err)
	}

	ref, ok := Reference(parent, projectID, fieldID)
	if !ok {
		return sum, fmt.Errorf("%s#%d: %w", parent.Repository, parent.Number, ErrNoReference)
	}
	sum.Reference = ref
	sum.SubIssues = len(parent.SubIssues)
	p.log.Infof("parent %s#%d reference %q, %d sub-issues", parent.Repository, parent.Number, ref, len(parent.SubIssues))

	for _, sub := range parent.SubIssues {
		itemID, added, err := p.ensureItem(ctx, sub, projectID)
		if err != nil {
			return sum, err
		}
		if added {
			sum.Added++
		}

		err = p.svc.UpdateItemField(ctx, service.FieldUpdate{
			ProjectID: projectID,
			ItemID:    itemID,
			FieldID:   fieldID,
			Value:     service.TextValue(ref),
		})
		if err != nil {
			return sum, fmt.Errorf("update %s#%d: %w", sub.Repository, sub.Number, err)
		}
		sum.Updated++
		p.log.Infof("set reference on %s#%d", sub.Repository, sub.Number)
	}
	return sum, nil
}

func (p *Propagator) ensureItem(ctx context.Context, sub service.Issue, projectID string) (string, bool, error) {
	if item, ok := sub.ItemIn(projectID); ok {
		return item.ID, false, nil
	}
	p.log.Infof("adding %s#%d to project %s", sub.Repository, sub.Number, projectID)
	id, err := p.svc.AddItem(ctx, projectID, sub.ID)
	if err != nil {
		return "", false, fmt.Errorf("add %s#%d to project: %w", sub.Repository, sub.Number, err)
	}
	return id, true, nil
}

// Reference returns the issue's text value for fieldID on projectID.
// A blank value counts as missing.
func Reference(issue service.Issue, projectID, fieldID string) (string, bool) {
	item, ok := issue.ItemIn(projectID)
	if !ok {
		return "", false
	}
	ref, ok := item.TextValues[fieldID]
	if !ok || strings.TrimSpace(ref) == "" {
		return "", false
	}
	return ref, true
}
