// Package notify schedules local reminder notifications for finalized outings.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Permission is the notification permission reported by the client device.
type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

var ErrPermissionDenied = errors.New("notification permission denied")

// ParsePermission converts a client-reported value. Empty means default.
func ParsePermission(s string) (Permission, error) {
	switch p := Permission(s); p {
	case "":
		return PermissionDefault, nil
	case PermissionDefault, PermissionGranted, PermissionDenied:
		return p, nil
	}
	return "", fmt.Errorf("unknown notification permission %q", s)
}

// PermissionSource holds the platform notification permission of one user.
// Set records what the device reported and Get returns it without prompting.
// RequestPermission returns PermissionGranted, or an error: ErrPermissionDenied
// when the user refused and the context error when the request timed out.
type PermissionSource interface {
	Set(p Permission)
	Get() Permission
	RequestPermission(ctx context.Context) (Permission, error)
}

var _ PermissionSource = (*ReportedPermission)(nil)

// ReportedPermission answers with the last value the client reported.
type ReportedPermission struct {
	mu    sync.RWMutex
	value Permission
}

// Set records the value reported by the client.
func (r *ReportedPermission) Set(p Permission) {
	r.mu.Lock()
	r.value = p
	r.mu.Unlock()
}

// Get returns the recorded value, PermissionDefault when none was reported.
func (r *ReportedPermission) Get() Permission {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.value == "" {
		return PermissionDefault
	}
	return r.value
}

func (r *ReportedPermission) RequestPermission(ctx context.Context) (Permission, error) {
	if err := ctx.Err(); err != nil {
		return PermissionDefault, err
	}
	switch p := r.Get(); p {
	case PermissionGranted:
		return p, nil
	case PermissionDenied:
		return p, ErrPermissionDenied
	default:
		return p, fmt.Errorf("%w: not granted yet", ErrPermissionDenied)
	}
}

// Notification is a local notification shown to the user.
type Notification struct {
	Title string
	Body  string
}

// Reminder builds the reminder shown before a finalized outing.
func Reminder(suggestion, group string) Notification {
	return Notification{
		Title: "Upcoming Outing Reminder!",
		Body:  fmt.Sprintf("Don't forget: \"%s\" with %s is happening soon!", suggestion, group),
	}
}

// Notifier delivers notifications.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// LogNotifier delivers notifications to the log.
type LogNotifier struct {
	UserID string
}

func (l LogNotifier) Notify(ctx context.Context, n Notification) error {
	slog.InfoContext(ctx, "Reminder notification", "user_id", l.UserID, "title", n.Title, "body", n.Body)
	return nil
}

// Scheduler delivers one-shot notifications after a fixed delay.
// Delivery is fire-and-forget: failures are logged, never returned.
type Scheduler struct {
	notifier Notifier
	delay    time.Duration

	mu      sync.Mutex
	timers  map[int]*time.Timer
	next    int
	stopped bool
}

// NewScheduler creates a scheduler delivering through n after delay.
func NewScheduler(n Notifier, delay time.Duration) *Scheduler {
	return &Scheduler{
		notifier: n,
		delay:    delay,
		timers:   make(map[int]*time.Timer),
	}
}

// Schedule queues n for delivery. It reports false after Stop.
func (s *Scheduler) Schedule(n Notification) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return false
	}

	id := s.next
	s.next++
	s.timers[id] = time.AfterFunc(s.delay, func() {
		s.mu.Lock()
		delete(s.timers, id)
		s.mu.Unlock()

		if err := s.notifier.Notify(context.Background(), n); err != nil {
			slog.Warn("Failed to deliver notification", "title", n.Title, "error", err)
		}
	})
	return true
}

// Pending returns the number of notifications not yet delivered.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop cancels every pending notification. Later calls to Schedule are ignored.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}
