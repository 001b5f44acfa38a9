// Package cohorts tags companies with overlapping, rule-based groups.
package cohorts

import (
	"math"

	"sentinel/internal/domain/company"
	"sentinel/pkg/relay"
)

// ID names a cohort
type ID string

const (
	HighPerformers   ID = "high_performers"
	RiskyCandidates  ID = "risky_candidates"
	StablePerformers ID = "stable_performers"
	HighGrowth       ID = "high_growth"
	Defensive        ID = "defensive"
	Value            ID = "value"
	Momentum         ID = "momentum"

	// All selects every company
	All ID = "all"
)

// Definitions holds the fixed cohort rules in display order
var Definitions = []relay.ScopeDefinition[company.Company]{
	{
		ID:   string(HighPerformers),
		Name: "High Performers",
		Filter: func(c company.Company) bool {
			return c.OverallScore >= 8.5 && c.Bull5YearReturn > 0.15 && c.Bear5YearReturn > -0.1
		},
	},
	{
		ID:   string(RiskyCandidates),
		Name: "Risky Candidates",
		Filter: func(c company.Company) bool {
			return c.OverallScore < 6 || (c.Bear5YearReturn < -0.15 && c.Bull5YearReturn < 0.1)
		},
	},
	{
		ID:   string(StablePerformers),
		Name: "Stable Performers",
		Filter: func(c company.Company) bool {
			return c.OverallScore >= 7 && math.Abs(c.Bear5YearReturn) < 0.1 && c.Bull5YearReturn >= 0.1
		},
	},
	{
		ID:   string(HighGrowth),
		Name: "High Growth",
		Filter: func(c company.Company) bool {
			return c.Bull5YearReturn > 0.2 && c.OutlookScore >= 8 && c.MarketPositionScore >= 7
		},
	},
	{
		ID:   string(Defensive),
		Name: "Defensive",
		Filter: func(c company.Company) bool {
			return c.Bear5YearReturn > -0.05 && c.FinancialHealthScore >= 8 && c.TrackRecordScore >= 7
		},
	},
	{
		ID:   string(Value),
		Name: "Value",
		Filter: func(c company.Company) bool {
			return c.FinancialHealthScore >= 7 && c.ProfitabilityScore >= 7 &&
				c.OverallScore >= 7 && c.Bull5YearReturn < 0.15
		},
	},
	{
		ID:   string(Momentum),
		Name: "Momentum",
		Filter: func(c company.Company) bool {
			return c.Bull5YearReturn > 0.15 && c.MarketPositionScore >= 7 && c.OutlookScore >= 7
		},
	},
}

// Valid reports whether id names a cohort. All is not a cohort.
func (id ID) Valid() bool {
	_, ok := relay.FindScope(Definitions, string(id))
	return ok
}

// Analysis holds the members of every cohort for one collection
type Analysis struct {
	members map[ID][]company.Company
}

// Classify runs every rule over companies. Members keep input order.
func Classify(companies []company.Company) Analysis {
	a := Analysis{members: make(map[ID][]company.Company, len(Definitions))}
	for _, def := range Definitions {
		a.members[ID(def.ID)] = relay.ApplyFilters(companies, def.Filter)
	}
	return a
}

// Members returns the companies in cohort id
func (a Analysis) Members(id ID) []company.Company {
	return a.members[id]
}

// Count returns the size of cohort id
func (a Analysis) Count(id ID) int {
	return len(a.members[id])
}

// Tickers returns the tickers of cohort id in member order
func (a Analysis) Tickers(id ID) []string {
	return company.Tickers(a.members[id])
}

// Tags returns every cohort c belongs to, possibly none
func Tags(c company.Company) []ID {
	raw := relay.MatchingScopes(c, Definitions)
	out := make([]ID, len(raw))
	for i, id := range raw {
		out[i] = ID(id)
	}
	return out
}

// Counts returns the member count of every cohort in display order
func Counts(companies []company.Company) []relay.Scope {
	return relay.CalculateScopes(companies, Definitions)
}

// Filter returns the members of cohort id; ok is false for an unknown id.
// An empty id or "all" returns every company.
func Filter(companies []company.Company, id ID) ([]company.Company, bool) {
	return relay.FilterByScope(companies, string(id), Definitions)
}
