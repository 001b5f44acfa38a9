package relay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestEncodeDecodeCursor(t *testing.T) {
	offset, err := DecodeCursor(EncodeCursor(42))

	require.NoError(t, err)
	assert.Equal(t, 42, offset)

	_, err = DecodeCursor("not-base64!")
	assert.Error(t, err)

	_, err = DecodeCursor(EncodeCursor(-1))
	assert.Error(t, err)
}

func TestPaginateWalksPages(t *testing.T) {
	items := []int{10, 20, 30, 40, 50}

	first, err := Paginate(items, PaginationParams{First: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20}, first.Nodes())
	assert.True(t, first.PageInfo.HasNextPage)
	assert.False(t, first.PageInfo.HasPreviousPage)
	assert.Equal(t, 5, first.TotalCount)

	second, err := Paginate(items, PaginationParams{First: intPtr(2), After: first.PageInfo.EndCursor})
	require.NoError(t, err)
	assert.Equal(t, []int{30, 40}, second.Nodes())
	assert.True(t, second.PageInfo.HasPreviousPage)

	last, err := Paginate(items, PaginationParams{First: intPtr(2), After: second.PageInfo.EndCursor})
	require.NoError(t, err)
	assert.Equal(t, []int{50}, last.Nodes())
	assert.False(t, last.PageInfo.HasNextPage)
}

func TestPaginateDefaultsAndBounds(t *testing.T) {
	conn, err := Paginate([]int{1, 2, 3}, PaginationParams{})
	require.NoError(t, err)
	assert.Len(t, conn.Edges, 3)

	past := EncodeCursor(10)
	conn, err = Paginate([]int{1, 2, 3}, PaginationParams{After: &past})
	require.NoError(t, err)
	assert.Empty(t, conn.Edges)
	assert.Nil(t, conn.PageInfo.StartCursor)

	_, err = Paginate([]int{1}, PaginationParams{First: intPtr(-1)})
	assert.Error(t, err)
}
