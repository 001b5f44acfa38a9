package cohorts

import (
	"github.com/dustin/go-humanize"

	"sentinel/internal/domain/company"
)

// SummaryLine is one headline count of the market summary panel
type SummaryLine struct {
	Cohort ID     `json:"cohort"`
	Label  string `json:"label"`
	Count  int    `json:"count"`
	Text   string `json:"text"`
}

// Summary is the market summary panel
type Summary struct {
	Total int           `json:"total"`
	Lines []SummaryLine `json:"lines"`
}

var summaryLabels = []struct {
	cohort ID
	label  string
}{
	{HighPerformers, "Market Leaders"},
	{Defensive, "Defensive Stocks"},
	{Value, "Quality Stocks"},
	{HighGrowth, "Growth Leaders"},
	{Momentum, "Momentum Stocks"},
	{RiskyCandidates, "Watch List"},
}

// Summarize builds the market summary from a classification
func Summarize(a Analysis, total int) Summary {
	lines := make([]SummaryLine, 0, len(summaryLabels))
	for _, l := range summaryLabels {
		n := a.Count(l.cohort)
		lines = append(lines, SummaryLine{
			Cohort: l.cohort,
			Label:  l.label,
			Count:  n,
			Text:   humanize.Comma(int64(n)) + " of " + humanize.Comma(int64(total)),
		})
	}
	return Summary{Total: total, Lines: lines}
}

// SummaryOf classifies companies and summarizes them
func SummaryOf(companies []company.Company) Summary {
	return Summarize(Classify(companies), len(companies))
}
