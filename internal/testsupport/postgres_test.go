package testsupport

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresTransactionIsRolledBack(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	configs := LoadDatabaseConfigsFromEnv(t)
	ctx := context.Background()

	helper := NewPostgresTestHelper(t, configs.Postgres)
	tx := helper.Tx()

	_, err := tx.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS integration_tx_check(id SERIAL PRIMARY KEY, value TEXT)")
	require.NoError(t, err)
	_, err = tx.ExecContext(ctx, "INSERT INTO integration_tx_check(value) VALUES('hello')")
	require.NoError(t, err)

	var count int
	require.NoError(t, tx.GetContext(ctx, &count, "SELECT COUNT(*) FROM integration_tx_check"))
	assert.Equal(t, 1, count)

	helper.Rollback()

	var exists bool
	err = helper.DB().GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'integration_tx_check')")
	require.NoError(t, err)
	assert.False(t, exists, "table must not survive the rollback")
}
