package stats

// Band is a coarse rating bucket used to color scores
type Band string

const (
	BandExcellent Band = "excellent"
	BandGood      Band = "good"
	BandNeutral   Band = "neutral"

	BandStrong   Band = "strong"
	BandModerate Band = "moderate"
	BandWeak     Band = "weak"
)

// ScoreBand buckets an overall score
func ScoreBand(score float64) Band {
	switch {
	case score >= 8.5:
		return BandExcellent
	case score >= 7:
		return BandGood
	default:
		return BandNeutral
	}
}

// MetricBand buckets a sub-score
func MetricBand(score float64) Band {
	switch {
	case score >= 8:
		return BandStrong
	case score >= 6:
		return BandModerate
	default:
		return BandWeak
	}
}
