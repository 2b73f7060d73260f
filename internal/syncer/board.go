// Package syncer reconciles metadata between GitHub project boards.
package syncer

import (
	"context"
	"fmt"

	"ghprojsync/internal/service"
)

// Board is a snapshot of one project board taken at the start of a run.
type Board struct {
	Org       string
	Number    int
	ProjectID string
	Fields    []service.Field
	Items     []service.Item
}

func (b *Board) String() string {
	return fmt.Sprintf("%s project %d", b.Org, b.Number)
}

// OpenBoards resolves the node ids of the source and target boards.
// The returned error wraps service.ErrNotFound when either board is missing.
func OpenBoards(ctx context.Context, svc service.Service, org string, source, target int) (*Board, *Board, error) {
	src := &Board{Org: org, Number: source}
	dst := &Board{Org: org, Number: target}
	for _, b := range []*Board{src, dst} {
		id, err := svc.ProjectID(ctx, org, b.Number)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", b, err)
		}
		b.ProjectID = id
	}
	return src, dst, nil
}

// LoadFields fetches the board's field catalog.
func (b *Board) LoadFields(ctx context.Context, svc service.Service) error {
	fields, err := svc.Fields(ctx, b.ProjectID)
	if err != nil {
		return fmt.Errorf("%s: fetch fields: %w", b, err)
	}
	b.Fields = fields
	return nil
}

// LoadItems fetches the board's issue items and their values.
func (b *Board) LoadItems(ctx context.Context, svc service.Service) error {
	items, err := svc.Items(ctx, b.ProjectID)
	if err != nil {
		return fmt.Errorf("%s: fetch items: %w", b, err)
	}
	b.Items = items
	return nil
}
