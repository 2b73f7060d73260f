// Package catalog looks up field definitions fetched from a board.
// Not finding something is a normal outcome, reported with a bool.
package catalog

import (
	"strings"

	"ghprojsync/internal/service"
)

// FindField returns the first field whose name matches, ignoring case.
func FindField(fields []service.Field, name string) (service.Field, bool) {
	for _, f := range fields {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return service.Field{}, false
}

// FindOption returns the first option of a single-select field whose name
// matches, ignoring case.
func FindOption(field service.Field, name string) (service.Option, bool) {
	for _, o := range field.Options {
		if strings.EqualFold(o.Name, name) {
			return o, true
		}
	}
	return service.Option{}, false
}

// IterationFields returns the fields carrying an iteration configuration, in board order.
func IterationFields(fields []service.Field) []service.Field {
	var out []service.Field
	for _, f := range fields {
		if f.HasIterations {
			out = append(out, f)
		}
	}
	return out
}

// SelectIterationField picks the iteration field to sync. With a name, the
// matching iteration field is returned. Without one, the first iteration
// field wins and ambiguous reports whether there were others to choose from.
func SelectIterationField(fields []service.Field, name string) (field service.Field, ambiguous, ok bool) {
	candidates := IterationFields(fields)
	if name != "" {
		f, ok := FindField(candidates, name)
		return f, false, ok
	}
	if len(candidates) == 0 {
		return service.Field{}, false, false
	}
	return candidates[0], len(candidates) > 1, true
}

// IterationTitles returns the set of iteration titles defined on field.
func IterationTitles(field service.Field) map[string]bool {
	titles := make(map[string]bool, len(field.Iterations))
	for _, it := range field.Iterations {
		titles[it.Title] = true
	}
	return titles
}
