// Package relay provides generic list plumbing: composable filters, named scopes and
// offset cursors over in-memory slices.
package relay

// FilterType represents the type of filter input
type FilterType string

const (
	FilterTypeText   FilterType = "TEXT"
	FilterTypeNumber FilterType = "NUMBER"
	FilterTypeSelect FilterType = "SELECT"
)

// FilterOption represents an option for select filters
type FilterOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FilterDefinition describes one user-adjustable filter control
type FilterDefinition struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Type         FilterType     `json:"type"`
	Options      []FilterOption `json:"options,omitempty"`
	DefaultValue *string        `json:"default_value,omitempty"`
	Min          *float64       `json:"min,omitempty"`
	Max          *float64       `json:"max,omitempty"`
	Step         *float64       `json:"step,omitempty"`
}

// Predicate reports whether an item passes a filter
type Predicate[T any] func(item T) bool

// And composes predicates conjunctively. Nil predicates are skipped, so inactive
// filters can be passed through unchanged.
func And[T any](preds ...Predicate[T]) Predicate[T] {
	active := make([]Predicate[T], 0, len(preds))
	for _, p := range preds {
		if p != nil {
			active = append(active, p)
		}
	}
	return func(item T) bool {
		for _, p := range active {
			if !p(item) {
				return false
			}
		}
		return true
	}
}

// ApplyFilters returns the items that satisfy every predicate, keeping input order.
// The input slice is never modified.
func ApplyFilters[T any](items []T, preds ...Predicate[T]) []T {
	match := And(preds...)

	filtered := make([]T, 0, len(items))
	for _, item := range items {
		if match(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
