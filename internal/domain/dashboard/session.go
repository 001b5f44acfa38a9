package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session is one client's dashboard state
type Session struct {
	ID        uuid.UUID `json:"id"`
	State     State     `json:"state"`
	Actions   int       `json:"actions"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession creates a session holding the initial state
func NewSession() *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.New(),
		State:     InitialState(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Apply reduces the session state with a and bumps the bookkeeping fields
func (s *Session) Apply(a Action) {
	s.State = Reduce(s.State, a)
	s.Actions++
	s.UpdatedAt = time.Now().UTC()
}

// Repository stores sessions with a time-to-live
type Repository interface {
	// Get retrieves a session; errors.ErrSessionNotFound when expired or unknown
	Get(ctx context.Context, id uuid.UUID) (*Session, error)

	// Save stores a session and resets its TTL
	Save(ctx context.Context, session *Session, ttl time.Duration) error

	// Delete removes a session
	Delete(ctx context.Context, id uuid.UUID) error
}
