package workers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sentinel/pkg/errors"
)

func TestBaseWorker_Record(t *testing.T) {
	w := NewBaseWorker("catalog_refresh", time.Minute, true)

	w.Record(nil, 10*time.Millisecond)
	ok := w.Health()
	assert.Equal(t, int64(1), ok.Runs)
	assert.False(t, ok.LastSuccess.IsZero())
	assert.NoError(t, ok.LastError)

	w.Record(errors.ErrFetchFailed, 30*time.Millisecond)
	h := w.Health()
	assert.Equal(t, int64(2), h.Runs)
	assert.Equal(t, int64(1), h.Failures)
	assert.ErrorIs(t, h.LastError, errors.ErrFetchFailed)
	assert.Equal(t, ok.LastSuccess, h.LastSuccess)
	assert.Equal(t, 20*time.Millisecond, h.AvgDuration)
}
