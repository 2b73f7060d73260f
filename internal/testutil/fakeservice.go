// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"ghprojsync/internal/service"
)

// AddedIteration records an AddIteration call.
type AddedIteration struct {
	ProjectID string
	FieldID   string
	Iteration service.Iteration
}

// AddedItem records an AddItem call.
type AddedItem struct {
	ProjectID string
	ContentID string
	ItemID    string
}

// FakeService is an in-memory implementation of service.Service for testing.
// Every mutation is recorded so tests can assert on call counts and payloads.
type FakeService struct {
	mu       sync.RWMutex
	projects map[string]string // "org/number" -> project id
	fields   map[string][]service.Field
	items    map[string][]service.Item
	issues   map[string]service.Issue
	nextItem int

	updates    []service.FieldUpdate
	iterations []AddedIteration
	added      []AddedItem

	// Error injection for testing
	ProjectIDErr    error
	FieldsErr       map[string]error // projectID -> error
	ItemsErr        map[string]error // projectID -> error
	UpdateErr       map[string]error // fieldID -> error
	AddIterationErr error
	IssueErr        error
	AddItemErr      error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		projects:  make(map[string]string),
		fields:    make(map[string][]service.Field),
		items:     make(map[string][]service.Item),
		issues:    make(map[string]service.Issue),
		FieldsErr: make(map[string]error),
		ItemsErr:  make(map[string]error),
		UpdateErr: make(map[string]error),
	}
}

func projectKey(org string, number int) string {
	return fmt.Sprintf("%s/%d", strings.ToLower(org), number)
}

// AddBoard registers a board under org and number.
func (f *FakeService) AddBoard(org string, number int, projectID string, fields ...service.Field) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.projects[projectKey(org, number)] = projectID
	f.fields[projectID] = append(f.fields[projectID], fields...)
}

// AddBoardItem appends an item to a board.
func (f *FakeService) AddBoardItem(projectID string, item service.Item) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if item.Values == nil {
		item.Values = make(map[string]service.Value)
	}
	f.items[projectID] = append(f.items[projectID], item)
}

// AddIssue registers an issue for IssueReference.
func (f *FakeService) AddIssue(issue service.Issue) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.issues[issue.ID] = issue
}

// Updates returns the recorded UpdateItemField calls in call order.
func (f *FakeService) Updates() []service.FieldUpdate {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.FieldUpdate, len(f.updates))
	copy(out, f.updates)
	return out
}

// AddedIterations returns the recorded AddIteration calls in call order.
func (f *FakeService) AddedIterations() []AddedIteration {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]AddedIteration, len(f.iterations))
	copy(out, f.iterations)
	return out
}

// AddedItems returns the recorded AddItem calls in call order.
func (f *FakeService) AddedItems() []AddedItem {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]AddedItem, len(f.added))
	copy(out, f.added)
	return out
}

// ProjectID implements service.Service.
func (f *FakeService) ProjectID(ctx context.Context, org string, number int) (string, error) {
	if f.ProjectIDErr != nil {
		return "", f.ProjectIDErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	id, ok := f.projects[projectKey(org, number)]
	if !ok {
		return "", service.ErrNotFound
	}
	return id, nil
}

// Fields implements service.Service.
func (f *FakeService) Fields(ctx context.Context, projectID string) ([]service.Field, error) {
	if err := f.FieldsErr[projectID]; err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	fields, ok := f.fields[projectID]
	if !ok {
		return nil, service.ErrNotFound
	}
	out := make([]service.Field, len(fields))
	copy(out, fields)
	return out, nil
}

// Items implements service.Service.
func (f *FakeService) Items(ctx context.Context, projectID string) ([]service.Item, error) {
	if err := f.ItemsErr[projectID]; err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Item, len(f.items[projectID]))
	copy(out, f.items[projectID])
	return out, nil
}

// UpdateItemField implements service.Service.
func (f *FakeService) UpdateItemField(ctx context.Context, u service.FieldUpdate) error {
	if err := f.UpdateErr[u.FieldID]; err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, u)
	return nil
}

// AddIteration implements service.Service. The iteration is also added to
// the field so a second run sees it.
func (f *FakeService) AddIteration(ctx context.Context, projectID, fieldID string, it service.Iteration) error {
	if f.AddIterationErr != nil {
		return f.AddIterationErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.iterations = append(f.iterations, AddedIteration{ProjectID: projectID, FieldID: fieldID, Iteration: it})
	for i, field := range f.fields[projectID] {
		if field.ID == fieldID {
			f.fields[projectID][i].Iterations = append(field.Iterations, it)
		}
	}
	return nil
}

// IssueReference implements service.Service.
func (f *FakeService) IssueReference(ctx context.Context, issueNodeID string) (service.Issue, error) {
	if f.IssueErr != nil {
		return service.Issue{}, f.IssueErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	issue, ok := f.issues[issueNodeID]
	if !ok {
		return service.Issue{}, service.ErrNotFound
	}
	return issue, nil
}

// AddItem implements service.Service.
func (f *FakeService) AddItem(ctx context.Context, projectID, contentID string) (string, error) {
	if f.AddItemErr != nil {
		return "", f.AddItemErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextItem++
	id := fmt.Sprintf("PVTI_added_%d", f.nextItem)
	f.added = append(f.added, AddedItem{ProjectID: projectID, ContentID: contentID, ItemID: id})
	return id, nil
}
