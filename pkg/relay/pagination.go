package relay

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// DefaultLimit is the page size used when a caller does not ask for one
const DefaultLimit = 50

// PageInfo describes where a page sits inside the full list
type PageInfo struct {
	HasNextPage     bool    `json:"has_next_page"`
	HasPreviousPage bool    `json:"has_previous_page"`
	StartCursor     *string `json:"start_cursor,omitempty"`
	EndCursor       *string `json:"end_cursor,omitempty"`
}

// Edge represents a single edge in a connection
type Edge[T any] struct {
	Node   T      `json:"node"`
	Cursor string `json:"cursor"`
}

// Connection represents one page of a list
type Connection[T any] struct {
	Edges      []Edge[T] `json:"edges"`
	PageInfo   PageInfo  `json:"page_info"`
	TotalCount int       `json:"total_count"`
}

// Nodes returns the page items without cursors
func (c *Connection[T]) Nodes() []T {
	nodes := make([]T, len(c.Edges))
	for i, e := range c.Edges {
		nodes[i] = e.Node
	}
	return nodes
}

// PaginationParams represents forward pagination parameters
type PaginationParams struct {
	First *int
	After *string
}

// Validate validates the pagination parameters
func (p PaginationParams) Validate() error {
	if p.First != nil && *p.First < 0 {
		return fmt.Errorf("'first' must be non-negative")
	}
	return nil
}

// GetLimit returns the effective page size
func (p PaginationParams) GetLimit() int {
	if p.First != nil {
		return *p.First
	}
	return DefaultLimit
}

// EncodeCursor encodes an offset into a cursor string
func EncodeCursor(offset int) string {
	str := fmt.Sprintf("cursor:%d", offset)
	return base64.StdEncoding.EncodeToString([]byte(str))
}

// DecodeCursor decodes a cursor string into an offset
func DecodeCursor(cursor string) (int, error) {
	decoded, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return 0, fmt.Errorf("invalid cursor: %w", err)
	}

	str := string(decoded)
	if !strings.HasPrefix(str, "cursor:") {
		return 0, fmt.Errorf("invalid cursor format")
	}

	offset, err := strconv.Atoi(strings.TrimPrefix(str, "cursor:"))
	if err != nil {
		return 0, fmt.Errorf("invalid cursor offset: %w", err)
	}
	if offset < 0 {
		return 0, fmt.Errorf("invalid cursor offset: %d", offset)
	}

	return offset, nil
}

// Paginate slices items into one page. The cursor of every edge is its absolute
// offset in items, so After continues right behind the last edge of a previous page.
func Paginate[T any](items []T, params PaginationParams) (*Connection[T], error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	start := 0
	if params.After != nil {
		after, err := DecodeCursor(*params.After)
		if err != nil {
			return nil, err
		}
		start = after + 1
	}
	if start > len(items) {
		start = len(items)
	}

	end := start + params.GetLimit()
	if end > len(items) {
		end = len(items)
	}

	edges := make([]Edge[T], 0, end-start)
	for i := start; i < end; i++ {
		edges = append(edges, Edge[T]{Node: items[i], Cursor: EncodeCursor(i)})
	}

	info := PageInfo{
		HasPreviousPage: start > 0,
		HasNextPage:     end < len(items),
	}
	if len(edges) > 0 {
		first := edges[0].Cursor
		last := edges[len(edges)-1].Cursor
		info.StartCursor = &first
		info.EndCursor = &last
	}

	return &Connection[T]{
		Edges:      edges,
		PageInfo:   info,
		TotalCount: len(items),
	}, nil
}
