// Package dashboard runs per-client dashboard sessions over the shared catalog.
package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "sentinel/internal/domain/dashboard"
	"sentinel/internal/metrics"
	"sentinel/internal/services/catalog"
	"sentinel/pkg/errors"
	"sentinel/pkg/logger"
)

// Catalog is the read side of the catalog service
type Catalog interface {
	Snapshot() *catalog.Snapshot
	Status() catalog.Status
}

// Service provides business logic for dashboard sessions
type Service struct {
	repo     domain.Repository
	catalog  Catalog
	renderer *Renderer
	ttl      time.Duration
	tracker  errors.Tracker
	log      *logger.Logger
}

// NewService creates a new dashboard session service
func NewService(repo domain.Repository, cat Catalog, renderer *Renderer, ttl time.Duration, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		catalog:  cat,
		renderer: renderer,
		ttl:      ttl,
		log:      log.With("service", "dashboard"),
	}
}

// SetTracker attaches an error tracker; applied actions are recorded as breadcrumbs
func (s *Service) SetTracker(t errors.Tracker) {
	s.tracker = t
}

// Create starts a session in the initial state
func (s *Service) Create(ctx context.Context) (*domain.Session, error) {
	session := domain.NewSession()

	if err := s.repo.Save(ctx, session, s.ttl); err != nil {
		s.log.Errorw("Failed to save dashboard session",
			"session_id", session.ID,
			"error", err,
		)
		return nil, errors.Wrap(err, "failed to create dashboard session")
	}

	metrics.SessionsCreated.Inc()
	s.log.Infow("Dashboard session created", "session_id", session.ID)

	return session, nil
}

// Get retrieves a session by ID
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, errors.ErrSessionNotFound) {
			s.log.Debugw("Dashboard session not found", "session_id", id)
		} else {
			s.log.Errorw("Failed to get dashboard session",
				"session_id", id,
				"error", err,
			)
		}
		return nil, err
	}

	return session, nil
}

// Dispatch validates action, reduces the session state with it and saves the
// result, which also renews the session TTL
func (s *Service) Dispatch(ctx context.Context, id uuid.UUID, action domain.Action) (*domain.Session, error) {
	if err := domain.Validate(action); err != nil {
		metrics.RecordSessionAction(actionType(action), "rejected")
		return nil, err
	}

	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	session.Apply(action)

	if err := s.repo.Save(ctx, session, s.ttl); err != nil {
		metrics.RecordSessionAction(action.Type(), "error")
		s.log.Errorw("Failed to save dashboard session",
			"session_id", id,
			"action", action.Type(),
			"error", err,
		)
		return nil, errors.Wrap(err, "failed to save dashboard session")
	}

	metrics.RecordSessionAction(action.Type(), "success")
	if s.tracker != nil {
		s.tracker.AddBreadcrumb(ctx, action.Type(), "dashboard", errors.LevelInfo, map[string]interface{}{
			"session_id": id.String(),
		})
	}
	s.log.Debugw("Dashboard action applied",
		"session_id", id,
		"action", action.Type(),
		"actions", session.Actions,
	)

	return session, nil
}

// Delete removes a session
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Errorw("Failed to delete dashboard session",
			"session_id", id,
			"error", err,
		)
		return err
	}
	return nil
}

// Render builds the current view of a session against the latest catalog snapshot
func (s *Service) Render(ctx context.Context, id uuid.UUID) (*View, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	v := s.renderer.Render(session.State, s.catalog.Snapshot(), s.catalog.Status())
	return &v, nil
}

func actionType(a domain.Action) string {
	if a == nil {
		return "unknown"
	}
	return a.Type()
}
