package syncer

import (
	"context"
	"fmt"

	"ghprojsync/internal/catalog"
	"ghprojsync/internal/logging"
	"ghprojsync/internal/service"
)

// IterationSummary reports what an iteration sync did.
type IterationSummary struct {
	SourceField string
	TargetField string
	Existing    int
	Created     []string
}

// Iterations copies iteration definitions missing on the target board.
// Existing iterations are matched by title only and never updated.
type Iterations struct {
	svc service.Service
	log *logging.Logger
}

// NewIterations creates an iteration definition synchronizer.
func NewIterations(svc service.Service, log *logging.Logger) *Iterations {
	return &Iterations{svc: svc, log: log}
}

// Run adds every source iteration whose title is absent on the target.
// fieldName selects the iteration field on both boards; empty picks the
// first iteration field of each. Boards must have their fields loaded.
// The first failed mutation aborts the run.
func (s *Iterations) Run(ctx context.Context, source, target *Board, fieldName string) (IterationSummary, error) {
	var sum IterationSummary

	srcField, err := s.iterationField(source, fieldName)
	if err != nil {
		return sum, err
	}
	dstField, err := s.iterationField(target, fieldName)
	if err != nil {
		return sum, err
	}
	sum.SourceField = srcField.Name
	sum.TargetField = dstField.Name

	existing := catalog.IterationTitles(dstField)
	for _, it := range srcField.Iterations {
		if existing[it.Title] {
			sum.Existing++
			continue
		}
		s.log.Infof("creating iteration %q (start %s, %d days) on %s", it.Title, it.StartDate, it.Duration, target)
		if err := s.svc.AddIteration(ctx, target.ProjectID, dstField.ID, it); err != nil {
			return sum, fmt.Errorf("create iteration %q: %w", it.Title, err)
		}
		existing[it.Title] = true
		sum.Created = append(sum.Created, it.Title)
	}
	return sum, nil
}

func (s *Iterations) iterationField(b *Board, name string) (service.Field, error) {
	f, ambiguous, ok := catalog.SelectIterationField(b.Fields, name)
	if !ok {
		if name != "" {
			return service.Field{}, fmt.Errorf("%s: iteration field %q: %w", b, name, service.ErrNotFound)
		}
		return service.Field{}, fmt.Errorf("%s: iteration field: %w", b, service.ErrNotFound)
	}
	if ambiguous {
		s.log.Warnf("%s has more than one iteration field, using %q (set ITERATION_FIELD to choose)", b, f.Name)
	}
	return f, nil
}
