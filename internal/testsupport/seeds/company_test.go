package seeds

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"sentinel/internal/cohorts"
)

func TestCompanyBuilderDefaultsJoinNoCohort(t *testing.T) {
	c := NewCompany().Build()

	assert.NotZero(t, c.ID)
	assert.NotEmpty(t, c.Ticker)
	assert.Empty(t, cohorts.Tags(c))
}

func TestCompanyBuilderPresets(t *testing.T) {
	high := NewCompany().HighPerformer().Build()
	risky := NewCompany().Risky().Build()

	assert.Contains(t, cohorts.Tags(high), cohorts.HighPerformers)
	assert.Equal(t, []cohorts.ID{cohorts.RiskyCandidates}, cohorts.Tags(risky))
}

func TestCompanyBuilderDetachedInsertFails(t *testing.T) {
	_, err := NewCompany().Insert()

	assert.Error(t, err)
}
