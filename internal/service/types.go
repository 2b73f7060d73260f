// Package service defines the backend-agnostic interface for project board operations.
package service

import (
	"strconv"
	"strings"
)

// DataType is the declared type of a board field.
type DataType string

// Field data types understood by the synchronizer.
// Boards may report others (DATE, ASSIGNEES, ...); those pass through as-is.
const (
	DataTypeText         DataType = "TEXT"
	DataTypeNumber       DataType = "NUMBER"
	DataTypeSingleSelect DataType = "SINGLE_SELECT"
	DataTypeIteration    DataType = "ITERATION"
)

// Field describes a board field definition.
type Field struct {
	ID       string
	Name     string
	DataType DataType

	// Options is set only for SINGLE_SELECT fields, in board order.
	Options []Option

	// Iterations is set only for fields with an iteration configuration.
	// HasIterations distinguishes "no configuration" from "zero iterations".
	Iterations    []Iteration
	HasIterations bool
}

// Option is a single-select choice.
type Option struct {
	ID   string
	Name string
}

// Iteration is a dated sprint definition on an iteration field.
type Iteration struct {
	ID        string
	Title     string
	StartDate string // YYYY-MM-DD
	Duration  int    // days
}

// Item is a board row backed by an issue, with its current field values.
type Item struct {
	ID              string
	IssueNumber     int
	RepositoryOwner string
	RepositoryName  string
	Title           string

	// Values maps field name to value. A name appears at most once.
	Values map[string]Value
}

// Repository returns "owner/name".
func (i Item) Repository() string {
	return i.RepositoryOwner + "/" + i.RepositoryName
}

// ValueKind tags which variant a Value holds.
type ValueKind int

const (
	// KindText is a plain text value.
	KindText ValueKind = iota + 1
	// KindNumber is a numeric value.
	KindNumber
	// KindOption is a single-select option name.
	KindOption
	// KindIteration is an iteration title (or id, when used as a mutation input).
	KindIteration
)

func (k ValueKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindOption:
		return "option"
	case KindIteration:
		return "iteration"
	default:
		return "unknown"
	}
}

// Value is a tagged field value. Exactly one of Text or Number is meaningful,
// selected by Kind: Number for KindNumber, Text for everything else.
type Value struct {
	Kind   ValueKind
	Text   string
	Number float64
}

// TextValue returns a text value.
func TextValue(s string) Value { return Value{Kind: KindText, Text: s} }

// NumberValue returns a numeric value.
func NumberValue(n float64) Value { return Value{Kind: KindNumber, Number: n} }

// OptionValue returns a single-select option value.
func OptionValue(name string) Value { return Value{Kind: KindOption, Text: name} }

// IterationValue returns an iteration value.
func IterationValue(title string) Value { return Value{Kind: KindIteration, Text: title} }

// String renders the value as plain text.
func (v Value) String() string {
	if v.Kind == KindNumber {
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	}
	return v.Text
}

// Float coerces the value to a number.
func (v Value) Float() (float64, error) {
	if v.Kind == KindNumber {
		return v.Number, nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64)
	if err != nil {
		return 0, &TypeConversionError{Value: v, Want: DataTypeNumber}
	}
	return n, nil
}

// FieldUpdate is a single item field write.
// Value.Kind selects the mutation shape: KindText, KindNumber,
// KindOption (Text holds the option id) or KindIteration (Text holds the iteration id).
type FieldUpdate struct {
	ProjectID string
	ItemID    string
	FieldID   string
	Value     Value
}

// Issue is an issue together with its board memberships and sub-issues.
type Issue struct {
	ID           string
	Number       int
	Repository   string // owner/name
	ProjectItems []ProjectItem
	SubIssues    []Issue
}

// ProjectItem is an issue's membership on one board.
type ProjectItem struct {
	ID        string
	ProjectID string

	// TextValues maps field id to text value.
	TextValues map[string]string
}

// ItemIn returns the issue's item on the given board.
func (i Issue) ItemIn(projectID string) (ProjectItem, bool) {
	for _, item := range i.ProjectItems {
		if item.ProjectID == projectID {
			return item, true
		}
	}
	return ProjectItem{}, false
}
