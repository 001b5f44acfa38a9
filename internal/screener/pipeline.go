package screener

import (
	"cmp"
	"slices"
	"strings"

	"sentinel/internal/domain/company"
	"sentinel/pkg/relay"
)

// Apply filters and sorts companies. The result is a new slice holding the
// companies that satisfy every active predicate; the input is left untouched.
// Equal sort keys fall back to ascending ID.
func Apply(companies []company.Company, q Query) []company.Company {
	view := relay.ApplyFilters(companies, Predicates(q)...)
	SortCompanies(view, q.Sort)
	return view
}

// Predicates returns the active filters of q; inactive ones are nil
func Predicates(q Query) []relay.Predicate[company.Company] {
	return []relay.Predicate[company.Company]{
		searchPredicate(q.Search),
		minScorePredicate(q.MinScore),
		metricPredicate(q.Metric),
		ProfilePredicate(q.Profile),
	}
}

func searchPredicate(term string) relay.Predicate[company.Company] {
	if term == "" {
		return nil
	}
	return func(c company.Company) bool { return c.MatchesSearch(term) }
}

func minScorePredicate(min float64) relay.Predicate[company.Company] {
	return func(c company.Company) bool { return c.OverallScore >= min }
}

func metricPredicate(m *MetricFilter) relay.Predicate[company.Company] {
	if m == nil {
		return nil
	}
	return func(c company.Company) bool {
		v, ok := m.Field.Numeric(c)
		return ok && v >= m.Min
	}
}

// ProfilePredicate returns the return-based preset filter, nil for "all"
func ProfilePredicate(p Profile) relay.Predicate[company.Company] {
	switch p {
	case ProfileResilient:
		return func(c company.Company) bool { return c.Bear5YearReturn > -0.05 }
	case ProfileAggressive:
		return func(c company.Company) bool { return c.Bull5YearReturn > 0.15 }
	case ProfileBalanced:
		return func(c company.Company) bool {
			return c.Bull5YearReturn > 0.10 && c.Bear5YearReturn > -0.08
		}
	default:
		return nil
	}
}

// SortCompanies orders companies in place by s
func SortCompanies(companies []company.Company, s Sort) {
	sign := -1
	if s.Direction == Asc {
		sign = 1
	}

	slices.SortStableFunc(companies, func(a, b company.Company) int {
		if c := compareField(a, b, s.Key) * sign; c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

func compareField(a, b company.Company, key company.Field) int {
	if key.IsNumeric() {
		av, _ := key.Numeric(a)
		bv, _ := key.Numeric(b)
		return cmp.Compare(av, bv)
	}
	return strings.Compare(key.Text(a), key.Text(b))
}
