// Package githubprojects implements the service.Service interface using the GitHub GraphQL API.
package githubprojects

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ghprojsync/internal/config"
	"ghprojsync/internal/service"
)

const (
	// APITimeout bounds each API call.
	APITimeout = 30 * time.Second

	// FieldPageSize is the number of field definitions fetched per board.
	FieldPageSize = 50

	// ItemPageSize is the number of items fetched per board.
	// Boards with more items silently lose the rest.
	ItemPageSize = 100

	// ValuePageSize is the number of field values fetched per item.
	ValuePageSize = 50
)

// Client implements service.Service on top of the GraphQL transport.
type Client struct {
	gql *GraphQL
}

// New creates a client from configuration.
// Fails with *service.AuthError when no token can be found.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	token, err := cfg.ResolveToken()
	if err != nil {
		return nil, &service.AuthError{Reason: err.Error()}
	}
	return NewWithToken(ctx, cfg.APIURL, token)
}

// NewWithToken creates a client for endpoint authenticated with token.
func NewWithToken(ctx context.Context, endpoint, token string) (*Client, error) {
	gql, err := NewGraphQL(ctx, endpoint, token)
	if err != nil {
		return nil, err
	}
	return &Client{gql: gql}, nil
}

// ProjectID resolves an organization project number to its node id.
func (c *Client) ProjectID(ctx context.Context, org string, number int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var resp struct {
		Organization *struct {
			ProjectV2 *struct {
				ID string `json:"id"`
			} `json:"projectV2"`
		} `json:"organization"`
	}
	vars := map[string]any{"owner": org, "number": number}
	if err := c.gql.Execute(ctx, queryProjectID, vars, &resp); err != nil {
		if service.IsNotFoundError(err) {
			return "", service.ErrNotFound
		}
		return "", err
	}
	if resp.Organization == nil || resp.Organization.ProjectV2 == nil || resp.Organization.ProjectV2.ID == "" {
		return "", service.ErrNotFound
	}
	return resp.Organization.ProjectV2.ID, nil
}

type fieldNode struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	DataType string `json:"dataType"`
	Options  []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"options"`
	Configuration *struct {
		Iterations []struct {
			ID        string `json:"id"`
			Title     string `json:"title"`
			StartDate string `json:"startDate"`
			Duration  int    `json:"duration"`
		} `json:"iterations"`
	} `json:"configuration"`
}

// Fields returns the board's field definitions.
func (c *Client) Fields(ctx context.Context, projectID string) ([]service.Field, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var resp struct {
		Node *struct {
			Fields struct {
				Nodes []*fieldNode `json:"nodes"`
			} `json:"fields"`
		} `json:"node"`
	}
	vars := map[string]any{"projectId": projectID, "first": FieldPageSize}
	if err := c.gql.Execute(ctx, queryProjectFields, vars, &resp); err != nil {
		return nil, err
	}
	if resp.Node == nil {
		return nil, fmt.Errorf("project %s: %w", projectID, service.ErrNotFound)
	}

	var fields []service.Field
	for _, n := range resp.Node.Fields.Nodes {
		if n == nil || n.ID == "" {
			continue
		}
		fields = append(fields, convertField(n))
	}
	return fields, nil
}

// convertField flattens the three GraphQL field shapes into one descriptor.
func convertField(n *fieldNode) service.Field {
	f := service.Field{
		ID:       n.ID,
		Name:     n.Name,
		DataType: service.DataType(strings.ToUpper(n.DataType)),
	}
	for _, o := range n.Options {
		f.Options = append(f.Options, service.Option{ID: o.ID, Name: o.Name})
	}
	if n.Configuration != nil {
		f.HasIterations = true
		for _, it := range n.Configuration.Iterations {
			f.Iterations = append(f.Iterations, service.Iteration{
				ID:        it.ID,
				Title:     it.Title,
				StartDate: it.StartDate,
				Duration:  it.Duration,
			})
		}
	}
	return f
}

// valueNode is one raw field value. The API populates at most one of
// Text, Number, Name or Title depending on the value's type.
type valueNode struct {
	Text   *string  `json:"text"`
	Number *float64 `json:"number"`
	Name   *string  `json:"name"`
	Title  *string  `json:"title"`
	Date   *string  `json:"date"`
	Field  *struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"field"`
}

type itemNode struct {
	ID          string `json:"id"`
	FieldValues struct {
		Nodes []*valueNode `json:"nodes"`
	} `json:"fieldValues"`
	Content *struct {
		Typename   string `json:"__typename"`
		ID         string `json:"id"`
		Number     int    `json:"number"`
		Title      string `json:"title"`
		Repository struct {
			Name  string `json:"name"`
			Owner struct {
				Login string `json:"login"`
			} `json:"owner"`
		} `json:"repository"`
	} `json:"content"`
}

// Items returns the issue-backed items on the board.
func (c *Client) Items(ctx context.Context, projectID string) ([]service.Item, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var resp struct {
		Node *struct {
			Items struct {
				Nodes []*itemNode `json:"nodes"`
			} `json:"items"`
		} `json:"node"`
	}
	vars := map[string]any{"projectId": projectID, "first": ItemPageSize, "values": ValuePageSize}
	if err := c.gql.Execute(ctx, queryProjectItems, vars, &resp); err != nil {
		return nil, err
	}
	if resp.Node == nil {
		return nil, fmt.Errorf("project %s: %w", projectID, service.ErrNotFound)
	}

	var items []service.Item
	for _, n := range resp.Node.Items.Nodes {
		if item, ok := convertItem(n); ok {
			items = append(items, item)
		}
	}
	return items, nil
}

// convertItem normalizes an item node. Non-issue content is rejected.
func convertItem(n *itemNode) (service.Item, bool) {
	if n == nil || n.Content == nil || n.Content.Typename != "Issue" {
		return service.Item{}, false
	}
	item := service.Item{
		ID:              n.ID,
		IssueNumber:     n.Content.Number,
		RepositoryOwner: n.Content.Repository.Owner.Login,
		RepositoryName:  n.Content.Repository.Name,
		Title:           n.Content.Title,
		Values:          make(map[string]service.Value),
	}
	for _, v := range n.FieldValues.Nodes {
		if v == nil || v.Field == nil || v.Field.Name == "" {
			continue
		}
		value, ok := convertValue(v)
		if !ok {
			continue
		}
		// Last value under a name wins.
		item.Values[v.Field.Name] = value
	}
	return item, true
}

func convertValue(v *valueNode) (service.Value, bool) {
	switch {
	case v.Text != nil:
		return service.TextValue(*v.Text), true
	case v.Number != nil:
		return service.NumberValue(*v.Number), true
	case v.Name != nil:
		return service.OptionValue(*v.Name), true
	case v.Title != nil:
		return service.IterationValue(*v.Title), true
	default:
		return service.Value{}, false
	}
}

// UpdateItemField writes one field value using the mutation matching the value kind.
func (c *Client) UpdateItemField(ctx context.Context, u service.FieldUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	vars := map[string]any{
		"projectId": u.ProjectID,
		"itemId":    u.ItemID,
		"fieldId":   u.FieldID,
	}

	var mutation string
	switch u.Value.Kind {
	case service.KindText:
		mutation = mutationUpdateText
		vars["text"] = u.Value.Text
	case service.KindNumber:
		mutation = mutationUpdateNumber
		vars["number"] = u.Value.Number
	case service.KindOption:
		mutation = mutationUpdateOption
		vars["optionId"] = u.Value.Text
	case service.KindIteration:
		mutation = mutationUpdateIteration
		vars["iterationId"] = u.Value.Text
	default:
		return fmt.Errorf("unsupported value kind: %s", u.Value.Kind)
	}

	return c.gql.Execute(ctx, mutation, vars, nil)
}

// AddIteration creates an iteration on an iteration field.
func (c *Client) AddIteration(ctx context.Context, projectID, fieldID string, it service.Iteration) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	vars := map[string]any{
		"projectId": projectID,
		"fieldId":   fieldID,
		"title":     it.Title,
		"start":     it.StartDate,
		"duration":  it.Duration,
	}
	return c.gql.Execute(ctx, mutationAddIteration, vars, nil)
}

type projectItemNode struct {
	ID      string `json:"id"`
	Project *struct {
		ID string `json:"id"`
	} `json:"project"`
	FieldValues struct {
		Nodes []*valueNode `json:"nodes"`
	} `json:"fieldValues"`
}

type issueNode struct {
	Typename   string `json:"__typename"`
	ID         string `json:"id"`
	Number     int    `json:"number"`
	Repository struct {
		NameWithOwner string `json:"nameWithOwner"`
	} `json:"repository"`
	ProjectItems struct {
		Nodes []*projectItemNode `json:"nodes"`
	} `json:"projectItems"`
	SubIssues struct {
		Nodes []*issueNode `json:"nodes"`
	} `json:"subIssues"`
}

// IssueReference returns an issue with its board memberships and sub-issues.
func (c *Client) IssueReference(ctx context.Context, issueNodeID string) (service.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var resp struct {
		Node *issueNode `json:"node"`
	}
	if err := c.gql.Execute(ctx, queryIssueReference, map[string]any{"id": issueNodeID}, &resp); err != nil {
		if service.IsNotFoundError(err) {
			return service.Issue{}, service.ErrNotFound
		}
		return service.Issue{}, err
	}
	if resp.Node == nil || resp.Node.Typename != "Issue" {
		return service.Issue{}, service.ErrNotFound
	}

	issue := convertIssue(resp.Node)
	for _, sub := range resp.Node.SubIssues.Nodes {
		if sub == nil {
			continue
		}
		issue.SubIssues = append(issue.SubIssues, convertIssue(sub))
	}
	return issue, nil
}

func convertIssue(n *issueNode) service.Issue {
	issue := service.Issue{
		ID:         n.ID,
		Number:     n.Number,
		Repository: n.Repository.NameWithOwner,
	}
	for _, pi := range n.ProjectItems.Nodes {
		if pi == nil || pi.Project == nil {
			continue
		}
		item := service.ProjectItem{
			ID:         pi.ID,
			ProjectID:  pi.Project.ID,
			TextValues: make(map[string]string),
		}
		for _, v := range pi.FieldValues.Nodes {
			if v == nil || v.Field == nil || v.Text == nil {
				continue
			}
			if _, seen := item.TextValues[v.Field.ID]; !seen {
				item.TextValues[v.Field.ID] = *v.Text
			}
		}
		issue.ProjectItems = append(issue.ProjectItems, item)
	}
	return issue
}

// AddItem adds an issue to a board and returns the new item id.
func (c *Client) AddItem(ctx context.Context, projectID, contentID string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var resp struct {
		AddProjectV2ItemByID *struct {
			Item *struct {
				ID string `json:"id"`
			} `json:"item"`
		} `json:"addProjectV2ItemById"`
	}
	vars := map[string]any{"projectId": projectID, "contentId": contentID}
	if err := c.gql.Execute(ctx, mutationAddItem, vars, &resp); err != nil {
		return "", err
	}
	if resp.AddProjectV2ItemByID == nil || resp.AddProjectV2ItemByID.Item == nil {
		return "", fmt.Errorf("add item %s: empty response", contentID)
	}
	return resp.AddProjectV2ItemByID.Item.ID, nil
}
