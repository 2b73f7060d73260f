package service

import (
	"errors"
	"fmt"
	"testing"
)

func TestValueString(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{TextValue("hello"), "hello"},
		{NumberValue(3), "3"},
		{NumberValue(2.5), "2.5"},
		{OptionValue("Done"), "Done"},
		{IterationValue("Sprint 5"), "Sprint 5"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("%+v: expected %q, got %q", tt.v, tt.want, got)
		}
	}
}

func TestValueFloat(t *testing.T) {
	if n, err := NumberValue(4).Float(); err != nil || n != 4 {
		t.Errorf("expected 4, got %v, %v", n, err)
	}
	if n, err := TextValue(" 1.5 ").Float(); err != nil || n != 1.5 {
		t.Errorf("expected 1.5, got %v, %v", n, err)
	}

	_, err := OptionValue("Done").Float()
	var convErr *TypeConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("expected TypeConversionError, got %v", err)
	}
	if convErr.Want != DataTypeNumber {
		t.Errorf("expected NUMBER target, got %s", convErr.Want)
	}
}

func TestItemRepository(t *testing.T) {
	item := Item{RepositoryOwner: "X", RepositoryName: "Y"}
	if got := item.Repository(); got != "X/Y" {
		t.Fatalf("expected X/Y, got %q", got)
	}
}

func TestIssueItemIn(t *testing.T) {
	issue := Issue{ProjectItems: []ProjectItem{{ID: "a", ProjectID: "P1"}, {ID: "b", ProjectID: "P2"}}}
	if item, ok := issue.ItemIn("P2"); !ok || item.ID != "b" {
		t.Fatalf("expected item b, got %+v, %v", item, ok)
	}
	if _, ok := issue.ItemIn("P3"); ok {
		t.Fatal("expected no item on P3")
	}
}

func TestErrorClassification(t *testing.T) {
	wrapped := fmt.Errorf("fetch: %w", &APIError{Status: 500, Message: "boom"})
	if !IsBackendError(wrapped) {
		t.Error("APIError should be a backend error")
	}
	if !IsBackendError(&TransportError{Op: "post", Err: errors.New("reset")}) {
		t.Error("TransportError should be a backend error")
	}
	if IsBackendError(ErrNotFound) {
		t.Error("ErrNotFound is not a backend error")
	}
	if !IsNotFoundError(&APIError{Type: "NOT_FOUND", Message: "x"}) {
		t.Error("expected NOT_FOUND classification")
	}
	if !IsAuthError(fmt.Errorf("client: %w", &AuthError{Reason: "no token"})) {
		t.Error("expected auth classification")
	}
	if got := wrapped.Error(); got != "fetch: api error: status 500: boom" {
		t.Errorf("unexpected message %q", got)
	}
}
