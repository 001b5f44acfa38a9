package sentry

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"

	"sentinel/pkg/errors"
)

const defaultFlushTimeout = 2 * time.Second

// Options configures the Sentry client
type Options struct {
	DSN         string
	Environment string
	Release     string
	ServerName  string

	// Transport overrides delivery; nil uses the default HTTP transport
	Transport sentry.Transport
}

// Tracker implements error tracking via Sentry
type Tracker struct {
	hub *sentry.Hub
}

// New creates a Sentry tracker with its own hub
func New(opts Options) (*Tracker, error) {
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:         opts.DSN,
		Environment: opts.Environment,
		Release:     opts.Release,
		ServerName:  opts.ServerName,
		Transport:   opts.Transport,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create sentry client")
	}

	return &Tracker{
		hub: sentry.NewHub(client, sentry.NewScope()),
	}, nil
}

// CaptureError sends an error to Sentry. A "session_id" tag also becomes the Sentry user.
func (t *Tracker) CaptureError(ctx context.Context, err error, tags map[string]string) error {
	hub := t.hub.Clone()

	hub.ConfigureScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		if sessionID, ok := tags["session_id"]; ok {
			scope.SetUser(sentry.User{ID: sessionID})
		}
		scope.SetContext("request", sentry.Context{"cancelled": ctx.Err() != nil})
	})

	hub.CaptureException(err)
	return nil
}

// CaptureMessage sends a message to Sentry
func (t *Tracker) CaptureMessage(ctx context.Context, message string, level errors.Level, tags map[string]string) error {
	hub := t.hub.Clone()

	hub.ConfigureScope(func(scope *sentry.Scope) {
		for k, v := range tags {
			scope.SetTag(k, v)
		}
		scope.SetLevel(convertLevel(level))
	})

	hub.CaptureMessage(message)
	return nil
}

// AddBreadcrumb records a dashboard action that precedes later errors
func (t *Tracker) AddBreadcrumb(ctx context.Context, message string, category string, level errors.Level, data map[string]interface{}) {
	t.hub.AddBreadcrumb(&sentry.Breadcrumb{
		Message:  message,
		Category: category,
		Level:    convertLevel(level),
		Data:     data,
	}, nil)
}

// Flush waits for pending events, bounded by the ctx deadline
func (t *Tracker) Flush(ctx context.Context) error {
	timeout := defaultFlushTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if !t.hub.Flush(timeout) {
		return errors.Wrap(errors.ErrTimeout, "sentry flush")
	}
	return nil
}

func convertLevel(level errors.Level) sentry.Level {
	switch level {
	case errors.LevelDebug:
		return sentry.LevelDebug
	case errors.LevelInfo:
		return sentry.LevelInfo
	case errors.LevelWarning:
		return sentry.LevelWarning
	case errors.LevelError:
		return sentry.LevelError
	case errors.LevelFatal:
		return sentry.LevelFatal
	default:
		return sentry.LevelInfo
	}
}

var _ errors.Tracker = (*Tracker)(nil)
