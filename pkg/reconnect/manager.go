// Package reconnect paces retries against flaky dependencies with exponential
// backoff and a circuit breaker.
package reconnect

import (
	"context"
	"sync"
	"time"

	"sentinel/pkg/errors"
	"sentinel/pkg/logger"
)

// Config configures the reconnect manager
type Config struct {
	MinBackoff        time.Duration // delay after the first failure (e.g. 1s)
	MaxBackoff        time.Duration // cap for the growing delay (e.g. 1min)
	BackoffMultiplier float64       // growth factor per consecutive failure (e.g. 2.0)
	MaxRetries        int           // consecutive failures before the circuit opens
	CircuitResetAfter time.Duration // pause while the circuit is open (e.g. 5min)
}

// Manager tracks consecutive failures of one dependency
type Manager struct {
	cfg Config

	mu                  sync.Mutex
	currentBackoff      time.Duration
	consecutiveFailures int
	circuitOpen         bool
	circuitOpenedAt     time.Time

	log *logger.Logger
}

// Stats is a point-in-time view of the manager
type Stats struct {
	ConsecutiveFailures int
	CurrentBackoff      time.Duration
	CircuitOpen         bool
}

// NewManager creates a manager, filling unset config with defaults
func NewManager(cfg Config, log *logger.Logger) *Manager {
	if cfg.MinBackoff == 0 {
		cfg.MinBackoff = time.Second
	}
	if cfg.MaxBackoff == 0 {
		cfg.MaxBackoff = time.Minute
	}
	if cfg.BackoffMultiplier == 0 {
		cfg.BackoffMultiplier = 2.0
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 10
	}
	if cfg.CircuitResetAfter == 0 {
		cfg.CircuitResetAfter = 5 * time.Minute
	}

	return &Manager{cfg: cfg, log: log}
}

// RecordFailure grows the backoff and opens the circuit after MaxRetries failures in a row
func (m *Manager) RecordFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.consecutiveFailures++
	if m.currentBackoff == 0 {
		m.currentBackoff = m.cfg.MinBackoff
	} else {
		m.currentBackoff = time.Duration(float64(m.currentBackoff) * m.cfg.BackoffMultiplier)
	}
	if m.currentBackoff > m.cfg.MaxBackoff {
		m.currentBackoff = m.cfg.MaxBackoff
	}

	if !m.circuitOpen && m.consecutiveFailures >= m.cfg.MaxRetries {
		m.circuitOpen = true
		m.circuitOpenedAt = time.Now()
		m.log.Errorw("🔴 Circuit breaker OPENED - too many consecutive failures",
			"consecutive_failures", m.consecutiveFailures,
			"circuit_reset_after", m.cfg.CircuitResetAfter,
		)
		return
	}

	m.log.Warnw("Attempt failed",
		"consecutive_failures", m.consecutiveFailures,
		"next_backoff", m.currentBackoff,
	)
}

// RecordSuccess resets the backoff and closes the circuit
func (m *Manager) RecordSuccess() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.circuitOpen {
		m.log.Infow("🟢 Circuit breaker CLOSED - dependency restored",
			"previous_consecutive_failures", m.consecutiveFailures,
		)
	}

	m.currentBackoff = 0
	m.consecutiveFailures = 0
	m.circuitOpen = false
	m.circuitOpenedAt = time.Time{}
}

// Delay returns how long to wait before the next attempt. While the circuit is open
// this is the remainder of the reset period.
func (m *Manager) Delay() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.circuitOpen {
		remaining := m.cfg.CircuitResetAfter - time.Since(m.circuitOpenedAt)
		if remaining < 0 {
			return 0
		}
		return remaining
	}
	return m.currentBackoff
}

// CircuitOpen reports whether MaxRetries consecutive failures have been recorded
func (m *Manager) CircuitOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.circuitOpen
}

// Wait sleeps for Delay or until ctx is done
func (m *Manager) Wait(ctx context.Context) error {
	d := m.Delay()
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Retry calls fn until it succeeds, ctx is done or the circuit opens.
// Opening the circuit ends the retry with ErrUnavailable wrapping the last failure.
func (m *Manager) Retry(ctx context.Context, fn func(context.Context) error) error {
	for {
		err := fn(ctx)
		if err == nil {
			m.RecordSuccess()
			return nil
		}

		m.RecordFailure()
		if m.CircuitOpen() {
			return errors.Wrapf(errors.ErrUnavailable, "giving up after %d attempts: %v", m.Stats().ConsecutiveFailures, err)
		}

		if werr := m.Wait(ctx); werr != nil {
			return werr
		}
	}
}

// Stats returns the current failure state
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Stats{
		ConsecutiveFailures: m.consecutiveFailures,
		CurrentBackoff:      m.currentBackoff,
		CircuitOpen:         m.circuitOpen,
	}
}
