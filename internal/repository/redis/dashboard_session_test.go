package redis

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisclient "sentinel/internal/adapters/redis"
	"sentinel/internal/domain/dashboard"
	"sentinel/internal/testsupport"
	"sentinel/pkg/errors"
)

func newTestRepository(t *testing.T) *DashboardSessionRepository {
	t.Helper()
	return NewDashboardSessionRepository(redisclient.Wrap(testsupport.NewTestRedis(t)))
}

func TestDashboardSessionRepository_SaveAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	repo := newTestRepository(t)
	ctx := context.Background()

	session := dashboard.NewSession()
	session.Apply(dashboard.SetSearch{Text: "acme"})
	session.Apply(dashboard.ToggleComparison{ID: 7})

	require.NoError(t, repo.Save(ctx, session, time.Minute))

	loaded, err := repo.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, loaded.ID)
	assert.Equal(t, "acme", loaded.State.Search)
	assert.Equal(t, []int64{7}, loaded.State.Comparison)
	assert.Equal(t, 2, loaded.Actions)
}

func TestDashboardSessionRepository_MissingSession(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	repo := newTestRepository(t)

	_, err := repo.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, errors.ErrSessionNotFound)
}

func TestDashboardSessionRepository_Delete(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	repo := newTestRepository(t)
	ctx := context.Background()

	session := dashboard.NewSession()
	require.NoError(t, repo.Save(ctx, session, time.Minute))
	require.NoError(t, repo.Delete(ctx, session.ID))

	_, err := repo.Get(ctx, session.ID)
	assert.ErrorIs(t, err, errors.ErrSessionNotFound)
}
