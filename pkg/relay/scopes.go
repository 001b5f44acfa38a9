package relay

// Scope represents a named filter with the number of items it matches
type Scope struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ScopeDefinition defines a scope with its ID, name and filter function
type ScopeDefinition[T any] struct {
	ID     string
	Name   string
	Filter Predicate[T]
}

// CalculateScopes counts matches for every scope, in definition order.
// Scopes may overlap; an item is counted once per matching scope.
func CalculateScopes[T any](items []T, scopeDefs []ScopeDefinition[T]) []Scope {
	result := make([]Scope, len(scopeDefs))

	for i, def := range scopeDefs {
		count := 0
		for _, item := range items {
			if def.Filter(item) {
				count++
			}
		}

		result[i] = Scope{
			ID:    def.ID,
			Name:  def.Name,
			Count: count,
		}
	}

	return result
}

// FindScope looks up a scope definition by ID
func FindScope[T any](scopeDefs []ScopeDefinition[T], scopeID string) (ScopeDefinition[T], bool) {
	for _, def := range scopeDefs {
		if def.ID == scopeID {
			return def, true
		}
	}
	return ScopeDefinition[T]{}, false
}

// FilterByScope filters items by scope ID. An empty or "all" ID returns every item;
// the second result is false when the ID names no scope.
func FilterByScope[T any](items []T, scopeID string, scopeDefs []ScopeDefinition[T]) ([]T, bool) {
	if scopeID == "" || scopeID == "all" {
		return items, true
	}

	def, ok := FindScope(scopeDefs, scopeID)
	if !ok {
		return nil, false
	}

	return ApplyFilters(items, def.Filter), true
}

// MatchingScopes returns the IDs of every scope the item belongs to
func MatchingScopes[T any](item T, scopeDefs []ScopeDefinition[T]) []string {
	ids := make([]string, 0, len(scopeDefs))
	for _, def := range scopeDefs {
		if def.Filter(item) {
			ids = append(ids, def.ID)
		}
	}
	return ids
}
