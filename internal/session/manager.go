package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/planbuddy/internal/archive"
	"github.com/mmynk/planbuddy/internal/generator"
	"github.com/mmynk/planbuddy/internal/metrics"
	"github.com/mmynk/planbuddy/internal/models"
	"github.com/mmynk/planbuddy/internal/notify"
	"github.com/mmynk/planbuddy/internal/planner"
	"github.com/mmynk/planbuddy/internal/weather"
)

// ItineraryStore persists the archives of all users.
type ItineraryStore interface {
	archive.Store
	ListItineraries(ctx context.Context, ownerID string) ([]*models.FinalizedItinerary, error)
}

// Config holds what every new session is built from.
type Config struct {
	Backend    generator.Backend
	Forecaster weather.Forecaster
	Store      ItineraryStore
	Metrics    *metrics.Metrics

	// ReminderDelay is how long after finalization the reminder fires.
	ReminderDelay time.Duration

	// Notifier builds the reminder channel for a user. Defaults to logging.
	Notifier func(user models.User) notify.Notifier

	// Permissions builds the notification permission holder for a user.
	// Defaults to the value reported by the client.
	Permissions func(user models.User) notify.PermissionSource
}

// Manager tracks open sessions by ID.
type Manager struct {
	cfg Config

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a session manager.
func NewManager(cfg Config) *Manager {
	if cfg.Notifier == nil {
		cfg.Notifier = func(user models.User) notify.Notifier {
			return notify.LogNotifier{UserID: user.ID}
		}
	}
	if cfg.Permissions == nil {
		cfg.Permissions = func(models.User) notify.PermissionSource {
			return &notify.ReportedPermission{}
		}
	}
	return &Manager{
		cfg:      cfg,
		sessions: make(map[string]*Session),
	}
}

// Open starts a session for user with the default profile and the user's
// stored archive.
func (m *Manager) Open(ctx context.Context, user models.User) (*Session, error) {
	var existing []*models.FinalizedItinerary
	var store archive.Store
	if m.cfg.Store != nil {
		items, err := m.cfg.Store.ListItineraries(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load archive: %w", err)
		}
		existing = items
		store = m.cfg.Store
	}

	backend := m.cfg.Backend
	if backend == nil {
		backend = generator.NewFixture()
	}

	now := time.Now()
	arch := archive.New(user.ID, store, existing)
	s := &Session{
		ID:        uuid.New().String(),
		User:      user,
		CreatedAt: now,
		Planner: planner.New(planner.Deps{
			Backend:    backend,
			Forecaster: m.cfg.Forecaster,
			Archive:    arch,
			Metrics:    m.cfg.Metrics,
		}),
		Archive:    arch,
		permission: m.cfg.Permissions(user),
		reminders:  notify.NewScheduler(m.cfg.Notifier(user), m.cfg.ReminderDelay),
		assistant:  backend,
		profile:    models.DefaultProfile(),
		lastSeen:   now,
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.cfg.Metrics.SessionOpened()
	slog.Info("Session opened", "session_id", s.ID, "user_id", user.ID, "archived", arch.Len())
	return s, nil
}

// Get returns an open session and marks it as used.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		s.touch(time.Now())
	}
	return s, ok
}

// Close tears a session down and cancels its pending reminders.
// It reports whether the session was open.
func (m *Manager) Close(id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return false
	}

	s.close()
	m.cfg.Metrics.SessionClosed()
	slog.Info("Session closed", "session_id", id, "user_id", s.User.ID)
	return true
}

// CloseIdle closes sessions unused for longer than maxIdle and returns how
// many were closed.
func (m *Manager) CloseIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	m.mu.RLock()
	var idle []string
	for id, s := range m.sessions {
		if s.idleSince().Before(cutoff) {
			idle = append(idle, id)
		}
	}
	m.mu.RUnlock()

	closed := 0
	for _, id := range idle {
		if m.Close(id) {
			closed++
		}
	}
	return closed
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
