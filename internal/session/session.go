// Package session holds the per-login state of a user: profile,
// notification permission, plan state machine and itinerary archive.
// A session is created at login and torn down at logout.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/mmynk/planbuddy/internal/archive"
	"github.com/mmynk/planbuddy/internal/generator"
	"github.com/mmynk/planbuddy/internal/models"
	"github.com/mmynk/planbuddy/internal/notify"
	"github.com/mmynk/planbuddy/internal/planner"
)

// maxChatHistory bounds the assistant turns kept per session.
const maxChatHistory = 20

// Session is the explicit context every planner operation runs in.
type Session struct {
	ID        string
	User      models.User
	CreatedAt time.Time

	Planner *planner.Machine
	Archive *archive.Archive

	permission notify.PermissionSource
	reminders  *notify.Scheduler
	assistant  generator.Backend

	mu       sync.RWMutex
	profile  models.Profile
	chat     []models.ChatMessage
	lastSeen time.Time
}

// Profile returns a copy of the session's planning preferences.
func (s *Session) Profile() models.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Clone()
}

// SetProfile replaces the planning preferences.
func (s *Session) SetProfile(p models.Profile) {
	s.mu.Lock()
	s.profile = p.Clone()
	s.mu.Unlock()
}

// Permission is the notification permission last reported by the client.
func (s *Session) Permission() notify.Permission {
	return s.permission.Get()
}

func (s *Session) SetPermission(p notify.Permission) {
	s.permission.Set(p)
}

// PendingReminders returns the number of reminders not yet delivered.
func (s *Session) PendingReminders() int {
	return s.reminders.Pending()
}

// CreatePlan starts a plan for group with the session's user and profile.
func (s *Session) CreatePlan(ctx context.Context, group *models.Group, date, clock, mood, movieGenre string) (*models.ActivePlan, error) {
	return s.Planner.CreatePlan(ctx, planner.CreateRequest{
		Group:      group,
		Date:       date,
		Time:       clock,
		Mood:       mood,
		MovieGenre: movieGenre,
		Profile:    s.Profile(),
		Requester:  s.User,
	})
}

// Finalize finalizes the active plan and, when notifications are enabled
// and permitted, schedules a reminder for it.
func (s *Session) Finalize(ctx context.Context) (*models.FinalizedItinerary, error) {
	it, err := s.Planner.Finalize(ctx)
	if err != nil || it == nil {
		return it, err
	}
	s.scheduleReminder(ctx, it)
	return it, nil
}

func (s *Session) scheduleReminder(ctx context.Context, it *models.FinalizedItinerary) {
	if !s.Profile().NotificationsEnabled {
		return
	}
	if _, err := s.permission.RequestPermission(ctx); err != nil {
		slog.Debug("Reminder not scheduled", "session_id", s.ID, "error", err)
		return
	}

	groupName := ""
	if it.Group != nil {
		groupName = it.Group.Name
	}
	if !s.reminders.Schedule(notify.Reminder(it.Destination.Name, groupName)) {
		slog.Debug("Reminder not scheduled, session closed", "session_id", s.ID)
	}
}

// Chat sends message to the assistant with the user's groups, the active
// plan and an optional live location as context. Both turns are kept in the
// session history once the assistant answers.
func (s *Session) Chat(ctx context.Context, groups []*models.Group, location *models.Coordinates, message string) (string, error) {
	s.mu.RLock()
	history := append([]models.ChatMessage(nil), s.chat...)
	s.mu.RUnlock()

	resp, err := s.assistant.Chat(ctx, generator.ChatRequest{
		UserName: s.User.Name,
		Groups:   groups,
		Plan:     s.Planner.Plan(),
		Location: location,
		History:  history,
		Message:  message,
	})
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	s.chat = append(s.chat,
		models.ChatMessage{Role: models.ChatRoleUser, Text: message},
		models.ChatMessage{Role: models.ChatRoleModel, Text: resp.Reply},
	)
	if n := len(s.chat); n > maxChatHistory {
		s.chat = append([]models.ChatMessage(nil), s.chat[n-maxChatHistory:]...)
	}
	s.mu.Unlock()
	return resp.Reply, nil
}

// ChatHistory returns a copy of the assistant conversation, oldest first.
func (s *Session) ChatHistory() []models.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.ChatMessage{}, s.chat...)
}

// ResetChat forgets the assistant conversation.
func (s *Session) ResetChat() {
	s.mu.Lock()
	s.chat = nil
	s.mu.Unlock()
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSeen
}

func (s *Session) close() {
	s.reminders.Stop()
}
