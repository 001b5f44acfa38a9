package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	redisclient "sentinel/internal/adapters/redis"
	"sentinel/internal/domain/dashboard"
	"sentinel/pkg/errors"
)

// Compile-time check
var _ dashboard.Repository = (*DashboardSessionRepository)(nil)

// DashboardSessionRepository implements dashboard.Repository using Redis
type DashboardSessionRepository struct {
	client *redisclient.Client
}

// NewDashboardSessionRepository creates a new dashboard session repository
func NewDashboardSessionRepository(client *redisclient.Client) *DashboardSessionRepository {
	return &DashboardSessionRepository{
		client: client,
	}
}

// Get retrieves a session by ID
func (r *DashboardSessionRepository) Get(ctx context.Context, id uuid.UUID) (*dashboard.Session, error) {
	var session dashboard.Session
	err := r.client.GetJSON(ctx, r.getKey(id), &session)
	if errors.Is(err, errors.ErrNotFound) {
		return nil, errors.Wrapf(errors.ErrSessionNotFound, "session_id=%s", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get dashboard session from redis: session_id=%s", id)
	}

	return &session, nil
}

// Save stores a session with TTL
func (r *DashboardSessionRepository) Save(ctx context.Context, session *dashboard.Session, ttl time.Duration) error {
	if err := r.client.SetJSON(ctx, r.getKey(session.ID), session, ttl); err != nil {
		return errors.Wrapf(err, "failed to save dashboard session to redis: session_id=%s", session.ID)
	}

	return nil
}

// Delete removes a session
func (r *DashboardSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Delete(ctx, r.getKey(id)); err != nil {
		return errors.Wrapf(err, "failed to delete dashboard session from redis: session_id=%s", id)
	}

	return nil
}

func (r *DashboardSessionRepository) getKey(id uuid.UUID) string {
	return fmt.Sprintf("dashboard_session:%s", id)
}
