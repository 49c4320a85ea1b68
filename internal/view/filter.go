package view

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/DaDevFox/fridgemate/internal/domain"
)

// Filter keeps the items whose name contains search (case-insensitively) and
// whose status passes filter. Input order is preserved and the input slice is
// not modified.
func Filter(items []AnnotatedItem, search string, filter domain.FilterTag) []AnnotatedItem {
	matchName := nameMatcher(search)

	result := make([]AnnotatedItem, 0, len(items))
	for _, item := range items {
		if !filter.Matches(item.Status) {
			continue
		}
		if !matchName(item.Item.Name) {
			continue
		}
		result = append(result, item)
	}
	return result
}

// FilterByName keeps the values whose name contains search, case-insensitively.
// An empty search keeps everything. Input order is preserved.
func FilterByName[T any](values []T, search string, name func(T) string) []T {
	matchName := nameMatcher(search)

	result := make([]T, 0, len(values))
	for _, value := range values {
		if matchName(name(value)) {
			result = append(result, value)
		}
	}
	return result
}

// nameMatcher returns a case-folding substring matcher. The caser is not safe
// for concurrent use, so every Filter call builds its own.
func nameMatcher(search string) func(string) bool {
	if search == "" {
		return func(string) bool { return true }
	}
	folder := cases.Fold()
	needle := folder.String(search)
	return func(name string) bool {
		return strings.Contains(folder.String(name), needle)
	}
}
