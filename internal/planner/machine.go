// Package planner implements the plan state machine: one active plan per
// session, created from generated suggestions, voted and RSVPed on, and
// finalized into an itinerary.
package planner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"

	"github.com/mmynk/planbuddy/internal/generator"
	"github.com/mmynk/planbuddy/internal/metrics"
	"github.com/mmynk/planbuddy/internal/models"
	"github.com/mmynk/planbuddy/internal/weather"
)

// State is the lifecycle state of a Machine.
type State int

const (
	NoPlan State = iota
	Drafting
	Active
	Finalizing
)

func (s State) String() string {
	switch s {
	case Drafting:
		return "drafting"
	case Active:
		return "active"
	case Finalizing:
		return "finalizing"
	default:
		return "no-plan"
	}
}

// VoteOutcome describes what a Vote call did.
type VoteOutcome int

const (
	VoteIgnored VoteOutcome = iota
	VoteAdded
	VoteReplaced
	VoteRemoved
)

func (o VoteOutcome) String() string {
	switch o {
	case VoteAdded:
		return "added"
	case VoteReplaced:
		return "replaced"
	case VoteRemoved:
		return "removed"
	default:
		return "ignored"
	}
}

// Archive receives finalized itineraries.
type Archive interface {
	Append(ctx context.Context, it *models.FinalizedItinerary) error
}

// Deps are the collaborators of a Machine. Forecaster and Metrics may be nil.
type Deps struct {
	Backend    generator.Backend
	Forecaster weather.Forecaster
	Archive    Archive
	Metrics    *metrics.Metrics

	// Now defaults to time.Now.
	Now func() time.Time
}

// CreateRequest holds the inputs of CreatePlan.
type CreateRequest struct {
	Group      *models.Group
	Date       string
	Time       string
	Mood       string
	MovieGenre string
	Profile    models.Profile
	Requester  models.User
}

type operation int

const (
	opNone operation = iota
	opCreate
	opFinalize
)

// Machine owns at most one ActivePlan. Generator calls run outside the lock
// and at most one of them is in flight at a time; a second one is rejected.
// Votes and RSVPs are applied while a finalization is running.
type Machine struct {
	deps     Deps
	inflight *semaphore.Weighted

	mu            sync.Mutex
	plan          *models.ActivePlan
	op            operation
	justFinalized *models.FinalizedItinerary
}

// New creates a Machine in the NoPlan state.
func New(deps Deps) *Machine {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Machine{
		deps:     deps,
		inflight: semaphore.NewWeighted(1),
	}
}

// State reports the current lifecycle state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stateLocked()
}

func (m *Machine) stateLocked() State {
	switch {
	case m.op == opCreate:
		return Drafting
	case m.op == opFinalize:
		return Finalizing
	case m.plan != nil:
		return Active
	default:
		return NoPlan
	}
}

// Plan returns a copy of the active plan, or nil.
func (m *Machine) Plan() *models.ActivePlan {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.plan.Clone()
}

// JustFinalized returns the itinerary produced by the last finalization
// until it is dismissed or a new plan is created.
func (m *Machine) JustFinalized() *models.FinalizedItinerary {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.justFinalized.Clone()
}

// DismissFinalized hides the just-finalized itinerary.
func (m *Machine) DismissFinalized() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.justFinalized = nil
}

// begin claims the single generator slot for op. The slot and m.op change
// together under m.mu, so a rejection always sees the running operation.
func (m *Machine) begin(op operation, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.inflight.TryAcquire(1) {
		m.deps.Metrics.Rejected(name)
		if m.op == opFinalize {
			return ErrFinalizationInFlight
		}
		return ErrGenerationInFlight
	}
	m.op = op
	return nil
}

func (m *Machine) end() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.op = opNone
	m.inflight.Release(1)
}

// CreatePlan generates suggestions and makes them the active plan.
//
// The forecast is requested first; a forecast failure leaves the weather
// empty and does not block creation. On generator failure the previous
// state is kept and ErrNoSuggestions is returned.
func (m *Machine) CreatePlan(ctx context.Context, req CreateRequest) (*models.ActivePlan, error) {
	if req.Group == nil || len(req.Group.Members) == 0 {
		return nil, ErrInvalidGroup
	}
	if err := m.begin(opCreate, "create_plan"); err != nil {
		return nil, err
	}
	defer m.end()

	group := req.Group.Clone()
	forecast := m.forecast(ctx, req.Date, req.Requester.Location)

	resp, err := m.deps.Backend.Suggest(ctx, generator.SuggestionRequest{
		Interests:       req.Profile.Interests,
		FoodPreferences: req.Profile.FoodPreferences,
		Budget:          req.Profile.Budget,
		GroupName:       group.Name,
		GroupMembers:    group.MemberNames(),
		Mood:            req.Mood,
		Date:            req.Date,
		Time:            req.Time,
		Location:        req.Requester.Location,
		Weather:         forecast,
		MovieGenre:      req.MovieGenre,
	})
	if err != nil || resp == nil || len(resp.Suggestions) == 0 {
		slog.Error("Failed to generate suggestions", "group_id", group.ID, "error", err)
		if err == nil {
			return nil, ErrNoSuggestions
		}
		return nil, fmt.Errorf("%w: %v", ErrNoSuggestions, err)
	}

	plan := &models.ActivePlan{
		ID:          uuid.New().String(),
		Group:       group,
		Date:        req.Date,
		Time:        req.Time,
		Mood:        req.Mood,
		MovieGenre:  req.MovieGenre,
		Theme:       resp.Theme,
		Weather:     forecast,
		Suggestions: make([]models.Suggestion, len(resp.Suggestions)),
		Rsvps:       make([]models.Rsvp, len(group.Members)),
		CreatedAt:   m.deps.Now().Unix(),
	}
	for i, s := range resp.Suggestions {
		s = s.Clone()
		s.Votes = []models.Vote{}
		plan.Suggestions[i] = s
	}
	for i, member := range group.Members {
		plan.Rsvps[i] = models.Rsvp{UserID: member.ID, Status: models.RsvpPending}
	}

	m.mu.Lock()
	m.plan = plan
	m.justFinalized = nil
	m.mu.Unlock()

	m.deps.Metrics.PlanCreated()
	slog.Info("Plan created",
		"plan_id", plan.ID,
		"group_id", group.ID,
		"theme", plan.Theme,
		"suggestions", len(plan.Suggestions),
		"weather", plan.Weather,
	)
	return plan.Clone(), nil
}

func (m *Machine) forecast(ctx context.Context, date string, at models.Coordinates) models.Weather {
	if m.deps.Forecaster == nil {
		return models.WeatherUnknown
	}
	w, err := m.deps.Forecaster.Forecast(ctx, date, at)
	if err != nil {
		slog.Warn("Weather forecast unavailable", "date", date, "error", err)
		return models.WeatherUnknown
	}
	return w
}

// Vote toggles voterID's emoji on a suggestion. Voting again with the same
// emoji removes the vote and a different emoji replaces it. Unknown
// suggestions, an empty voter or a missing plan are ignored.
func (m *Machine) Vote(voterID, suggestionID, emoji string) VoteOutcome {
	if voterID == "" || emoji == "" {
		return VoteIgnored
	}

	m.mu.Lock()
	outcome := m.voteLocked(voterID, suggestionID, emoji)
	m.mu.Unlock()

	if outcome != VoteIgnored {
		m.deps.Metrics.Vote(outcome.String())
	}
	return outcome
}

func (m *Machine) voteLocked(voterID, suggestionID, emoji string) VoteOutcome {
	if m.plan == nil {
		return VoteIgnored
	}
	s := m.plan.Suggestion(suggestionID)
	if s == nil {
		slog.Debug("Vote for unknown suggestion ignored", "plan_id", m.plan.ID, "suggestion_id", suggestionID)
		return VoteIgnored
	}

	for i, v := range s.Votes {
		if v.UserID != voterID {
			continue
		}
		if v.Emoji == emoji {
			s.Votes = append(s.Votes[:i], s.Votes[i+1:]...)
			return VoteRemoved
		}
		s.Votes[i].Emoji = emoji
		return VoteReplaced
	}
	s.Votes = append(s.Votes, models.Vote{UserID: voterID, Emoji: emoji})
	return VoteAdded
}

// Rsvp upserts userID's attendance status. It reports false when there is
// no active plan or no user.
func (m *Machine) Rsvp(userID string, status models.RsvpStatus) (bool, error) {
	if _, err := models.ParseRsvpStatus(string(status)); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidRsvp, err)
	}
	if userID == "" {
		return false, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.plan == nil {
		return false, nil
	}
	for i := range m.plan.Rsvps {
		if m.plan.Rsvps[i].UserID == userID {
			m.plan.Rsvps[i].Status = status
			m.deps.Metrics.Rsvp(string(status))
			return true, nil
		}
	}
	m.plan.Rsvps = append(m.plan.Rsvps, models.Rsvp{UserID: userID, Status: status})
	m.deps.Metrics.Rsvp(string(status))
	return true, nil
}

// Finalize picks the most voted suggestion, generates its itinerary and
// archives it. Without an active plan it returns (nil, nil).
//
// On failure the plan stays active with its votes and RSVPs untouched.
func (m *Machine) Finalize(ctx context.Context) (*models.FinalizedItinerary, error) {
	if err := m.begin(opFinalize, "finalize"); err != nil {
		return nil, err
	}
	defer m.end()

	m.mu.Lock()
	snapshot := m.plan.Clone()
	m.mu.Unlock()
	if snapshot == nil {
		return nil, nil
	}

	winner, ok := SelectWinner(snapshot.Suggestions)
	if !ok {
		return nil, ErrNoSuggestions
	}

	resp, err := m.deps.Backend.Itinerary(ctx, generator.ItineraryRequest{
		Suggestion: winner,
		Group:      snapshot.Group,
		Date:       snapshot.Date,
		StartTime:  snapshot.Time,
		Mood:       snapshot.Mood,
	})
	if err != nil || resp == nil || len(resp.Timeline) == 0 {
		slog.Error("Failed to generate itinerary", "plan_id", snapshot.ID, "error", err)
		if err == nil {
			return nil, ErrItineraryUnavailable
		}
		return nil, fmt.Errorf("%w: %v", ErrItineraryUnavailable, err)
	}

	m.mu.Lock()
	if m.plan != nil && m.plan.ID == snapshot.ID {
		// Votes cast while the itinerary was generated belong to the record.
		if current := m.plan.Suggestion(winner.ID); current != nil {
			winner = current.Clone()
		}
	}
	m.mu.Unlock()

	it := &models.FinalizedItinerary{
		ID:          uuid.New().String(),
		Destination: winner,
		Timeline:    append([]models.ItineraryActivity(nil), resp.Timeline...),
		Date:        snapshot.Date,
		Group:       snapshot.Group,
		FinalizedAt: m.deps.Now().Unix(),
	}
	if err := m.deps.Archive.Append(ctx, it); err != nil {
		slog.Error("Failed to archive itinerary", "plan_id", snapshot.ID, "error", err)
		return nil, fmt.Errorf("archive itinerary: %w", err)
	}

	m.mu.Lock()
	if m.plan != nil && m.plan.ID == snapshot.ID {
		m.plan = nil
	}
	m.justFinalized = it
	m.mu.Unlock()

	m.deps.Metrics.PlanFinalized()
	slog.Info("Plan finalized",
		"plan_id", snapshot.ID,
		"itinerary_id", it.ID,
		"destination", winner.Name,
		"votes", VoteCount(winner),
	)
	return it.Clone(), nil
}

// Discard drops the active plan. It reports whether there was one.
// The just-finalized itinerary is left alone.
func (m *Machine) Discard() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.plan == nil {
		return false
	}
	slog.Info("Plan discarded", "plan_id", m.plan.ID)
	m.plan = nil
	m.deps.Metrics.PlanDiscarded()
	return true
}
