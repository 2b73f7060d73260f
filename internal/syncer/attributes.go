package syncer

import (
	"context"
	"errors"

	"ghprojsync/internal/catalog"
	"ghprojsync/internal/config"
	"ghprojsync/internal/logging"
	"ghprojsync/internal/match"
	"ghprojsync/internal/service"
)

// Summary counts the outcomes of an attribute sync.
type Summary struct {
	Pairs           int
	Updated         int
	Skipped         int
	Failed          int
	UnmatchedSource int
	UnmatchedTarget int
}

type outcome int

const (
	updated outcome = iota
	skipped
	failed
)

// errUnsupportedType marks a target field type with no mutation shape.
var errUnsupportedType = errors.New("unsupported field type")

// Attributes copies mapped field values from source items to the matching
// target items. Every mapped value is written on every run, changed or not.
type Attributes struct {
	svc service.Service
	log *logging.Logger
}

// NewAttributes creates an attribute synchronizer.
func NewAttributes(svc service.Service, log *logging.Logger) *Attributes {
	return &Attributes{svc: svc, log: log}
}

// Run syncs every matched pair, applying mappings in declared order.
// Per-field problems are logged and counted; they never stop the run.
func (a *Attributes) Run(ctx context.Context, source, target *Board, mappings []config.FieldMapping) Summary {
	matched := match.Items(source.Items, target.Items)
	a.log.Infof("matched %d items (%d source and %d target items unmatched)",
		len(matched.Pairs), matched.UnmatchedSource, matched.UnmatchedTarget)

	sum := Summary{
		Pairs:           len(matched.Pairs),
		UnmatchedSource: matched.UnmatchedSource,
		UnmatchedTarget: matched.UnmatchedTarget,
	}
	for _, pair := range matched.Pairs {
		for _, m := range mappings {
			switch a.syncField(ctx, source, target, pair, m) {
			case updated:
				sum.Updated++
			case skipped:
				sum.Skipped++
			case failed:
				sum.Failed++
			}
		}
	}

	a.log.Infof("synchronization complete: updated %d field values", sum.Updated)
	return sum
}

func (a *Attributes) syncField(ctx context.Context, source, target *Board, pair match.Pair, m config.FieldMapping) outcome {
	issue := pair.Source

	srcField, ok := catalog.FindField(source.Fields, m.Source)
	if !ok {
		a.log.Warnf("field %q not found in source %s, skipping", m.Source, source)
		return skipped
	}
	dstField, ok := catalog.FindField(target.Fields, m.Target)
	if !ok {
		a.log.Warnf("field %q not found in target %s, skipping", m.Target, target)
		return skipped
	}

	value, ok := issue.Values[srcField.Name]
	if !ok {
		a.log.Infof("no value for field %q on %s#%d, skipping", srcField.Name, issue.Repository(), issue.IssueNumber)
		return skipped
	}

	out, err := translate(dstField, value)
	if err != nil {
		var convErr *service.TypeConversionError
		switch {
		case errors.As(err, &convErr):
			a.log.Errorf("%s#%d %q: %v, skipping", issue.Repository(), issue.IssueNumber, dstField.Name, err)
		case errors.Is(err, errUnsupportedType):
			a.log.Errorf("unsupported field type %s for target field %q, skipping", dstField.DataType, dstField.Name)
		default:
			a.log.Errorf("%s#%d %q: %v", issue.Repository(), issue.IssueNumber, dstField.Name, err)
		}
		return failed
	}
	if out == nil {
		a.log.Warnf("option %q not found in target field %q, skipping (manual intervention required)", value.Text, dstField.Name)
		return skipped
	}

	a.log.Infof("updating %q for %s#%d %q in target %s", dstField.Name, issue.Repository(), issue.IssueNumber, issue.Title, target)
	err = a.svc.UpdateItemField(ctx, service.FieldUpdate{
		ProjectID: target.ProjectID,
		ItemID:    pair.Target.ID,
		FieldID:   dstField.ID,
		Value:     *out,
	})
	if err != nil {
		a.log.Errorf("failed to update %q for %s#%d: %v", dstField.Name, issue.Repository(), issue.IssueNumber, err)
		return failed
	}
	a.log.Debugf("updated %q for %s#%d", dstField.Name, issue.Repository(), issue.IssueNumber)
	return updated
}

// translate converts a source value into the mutation input the target
// field expects. A nil value with no error means the single-select option
// could not be resolved.
//
// ITERATION targets receive the source value unresolved: there is no
// title-to-id lookup for item values.
func translate(field service.Field, v service.Value) (*service.Value, error) {
	var out service.Value
	switch field.DataType {
	case service.DataTypeText:
		out = service.TextValue(v.String())
	case service.DataTypeNumber:
		n, err := v.Float()
		if err != nil {
			return nil, err
		}
		out = service.NumberValue(n)
	case service.DataTypeSingleSelect:
		if v.Kind != service.KindOption {
			return nil, &service.TypeConversionError{Value: v, Want: field.DataType}
		}
		opt, ok := catalog.FindOption(field, v.Text)
		if !ok {
			return nil, nil
		}
		out = service.Value{Kind: service.KindOption, Text: opt.ID}
	case service.DataTypeIteration:
		out = service.Value{Kind: service.KindIteration, Text: v.String()}
	default:
		return nil, errUnsupportedType
	}
	return &out, nil
}
