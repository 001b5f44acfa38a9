package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sentinel/internal/testsupport"
	"sentinel/internal/testsupport/seeds"
)

func TestCompanyRepository_FetchAllOrdersByOverallScore(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := testsupport.NewTestPostgres(t)
	defer testDB.Close()

	ctx := context.Background()
	seeder := seeds.New(testDB.Tx()).WithContext(ctx)
	require.NoError(t, seeder.EnsureSchema())

	seeder.Company().WithTicker("ZZLOW").WithOverallScore(4.2).MustInsert()
	top := seeder.Company().WithTicker("ZZTOP").WithOverallScore(9.9).WithPodcastURL("https://cdn.test/zztop.mp3").MustInsert()
	seeder.Company().WithTicker("ZZMID").WithOverallScore(7.1).MustInsert()

	repo := NewCompanyRepository(testDB.Tx())
	companies, err := repo.FetchAll(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(companies), 3)

	for i := 0; i+1 < len(companies); i++ {
		assert.GreaterOrEqual(t, companies[i].OverallScore, companies[i+1].OverallScore)
	}

	var found bool
	for _, c := range companies {
		if c.Ticker == "ZZTOP" {
			found = true
			assert.Equal(t, top.ID, c.ID)
			require.NotNil(t, c.PodcastURL)
			assert.Equal(t, "https://cdn.test/zztop.mp3", *c.PodcastURL)
		}
	}
	assert.True(t, found)
}
