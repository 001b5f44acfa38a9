package relay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testScopes() []ScopeDefinition[testItem] {
	return []ScopeDefinition[testItem]{
		{ID: "active", Name: "Active", Filter: func(i testItem) bool { return i.Status == "active" }},
		{ID: "strong", Name: "Strong", Filter: func(i testItem) bool { return i.Score >= 8 }},
		{ID: "paused", Name: "Paused", Filter: func(i testItem) bool { return i.Status == "paused" }},
	}
}

func TestCalculateScopes(t *testing.T) {
	scopes := CalculateScopes(testItems(), testScopes())

	assert.Equal(t, []Scope{
		{ID: "active", Name: "Active", Count: 2},
		{ID: "strong", Name: "Strong", Count: 2},
		{ID: "paused", Name: "Paused", Count: 1},
	}, scopes)
}

func TestFilterByScope(t *testing.T) {
	tests := []struct {
		name    string
		scopeID string
		wantIDs []int
		wantOK  bool
	}{
		{name: "empty returns all", scopeID: "", wantIDs: []int{1, 2, 3, 4}, wantOK: true},
		{name: "all returns all", scopeID: "all", wantIDs: []int{1, 2, 3, 4}, wantOK: true},
		{name: "strong", scopeID: "strong", wantIDs: []int{1, 4}, wantOK: true},
		{name: "unknown", scopeID: "missing", wantIDs: []int{}, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FilterByScope(testItems(), tt.scopeID, testScopes())

			assert.Equal(t, tt.wantOK, ok)
			ids := make([]int, 0, len(got))
			for _, item := range got {
				ids = append(ids, item.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestMatchingScopesOverlap(t *testing.T) {
	item := testItem{ID: 1, Status: "active", Score: 9}

	assert.Equal(t, []string{"active", "strong"}, MatchingScopes(item, testScopes()))
	assert.Empty(t, MatchingScopes(testItem{Status: "closed"}, testScopes()))
}
