package migrations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresUp(t *testing.T) {
	scripts, err := PostgresUp()

	require.NoError(t, err)
	require.NotEmpty(t, scripts)
	assert.Contains(t, scripts[0], "CREATE TABLE IF NOT EXISTS companies")
}
