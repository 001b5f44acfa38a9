// Package events defines the catalog lifecycle events exchanged over Kafka.
package events

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	TypeCatalogRefreshed     = "catalog.refreshed"
	TypeCatalogRefreshFailed = "catalog.refresh_failed"
	TypeCatalogInvalidated   = "catalog.invalidated"
)

// BaseEvent carries the fields shared by every event
type BaseEvent struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
}

// NewBaseEvent creates a new base event with defaults
func NewBaseEvent(eventType, source string) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    source,
		Version:   "1.0",
	}
}

// CatalogRefreshedEvent is published after a successful refresh replaced the collection
type CatalogRefreshedEvent struct {
	Base             BaseEvent `json:"base"`
	SnapshotVersion  uint64    `json:"snapshot_version"`
	Count            int       `json:"count"`
	MeanOverallScore float64   `json:"mean_overall_score"`
	DurationMs       int64     `json:"duration_ms"`
}

// CatalogRefreshFailedEvent is published when a refresh failed and the previous collection was kept
type CatalogRefreshFailedEvent struct {
	Base  BaseEvent `json:"base"`
	Error string    `json:"error"`
}

// CatalogInvalidatedEvent asks consumers to reload the collection from the record store.
// Loaders publish it after writing new records.
type CatalogInvalidatedEvent struct {
	Base   BaseEvent `json:"base"`
	Reason string    `json:"reason,omitempty"`
}

// SanitizeUTF8 drops invalid UTF-8 sequences so error text survives JSON encoding intact
func SanitizeUTF8(s string) string {
	return strings.ToValidUTF8(s, "")
}
