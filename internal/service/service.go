package service

import "context"

// Service defines the interface for project board operations.
// All GitHub API calls go through this interface; commands and the
// synchronizers never talk GraphQL directly.
type Service interface {
	// ProjectID resolves an organization project number to its node id.
	// Returns ErrNotFound if the organization or project does not exist.
	ProjectID(ctx context.Context, org string, number int) (string, error)

	// Fields returns the board's field definitions in board order.
	// Only the first page is fetched.
	Fields(ctx context.Context, projectID string) ([]Field, error)

	// Items returns the issue-backed items on the board in API order.
	// Pull requests and draft items are excluded. Only the first page is fetched.
	Items(ctx context.Context, projectID string) ([]Item, error)

	// UpdateItemField writes one field value on one item.
	UpdateItemField(ctx context.Context, update FieldUpdate) error

	// AddIteration creates an iteration on an iteration field.
	AddIteration(ctx context.Context, projectID, fieldID string, it Iteration) error

	// IssueReference returns an issue with its board memberships and sub-issues.
	// Returns ErrNotFound if the node is not an issue.
	IssueReference(ctx context.Context, issueNodeID string) (Issue, error)

	// AddItem adds an issue to a board and returns the new item id.
	AddItem(ctx context.Context, projectID, contentID string) (string, error)
}
