package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/planbuddy/internal/archive"
	"github.com/mmynk/planbuddy/internal/generator"
	"github.com/mmynk/planbuddy/internal/models"
	"github.com/mmynk/planbuddy/internal/notify"
	"github.com/mmynk/planbuddy/internal/planner"
	"github.com/mmynk/planbuddy/internal/storage"
	"github.com/mmynk/planbuddy/pkg/api"
	"github.com/mmynk/planbuddy/pkg/api/apiconnect"
)

const timeLayout = "15:04"

// PlannerService implements the Connect PlannerService. Every call runs
// against the caller's session.
type PlannerService struct {
	apiconnect.UnimplementedPlannerServiceHandler
	store storage.Store
	now   func() time.Time
}

// NewPlannerService creates a new PlannerService reading groups from store.
func NewPlannerService(store storage.Store) *PlannerService {
	return &PlannerService{store: store, now: time.Now}
}

// CreatePlan generates suggestions for a group and makes them the active plan.
func (s *PlannerService) CreatePlan(ctx context.Context, req *connect.Request[api.CreatePlanRequest]) (*connect.Response[api.CreatePlanResponse], error) {
	sess, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}
	msg := req.Msg
	slog.Info("CreatePlan request received",
		"group_id", msg.GroupID,
		"date", msg.Date,
		"time", msg.Time,
		"mood", msg.Mood,
	)

	if strings.TrimSpace(msg.GroupID) == "" {
		return nil, toConnectError(planner.ErrInvalidGroup)
	}
	if _, err := time.Parse(archive.DateLayout, msg.Date); err != nil {
		return nil, invalidArgument(fmt.Sprintf("invalid date %q, want YYYY-MM-DD", msg.Date))
	}
	if _, err := time.Parse(timeLayout, msg.Time); err != nil {
		return nil, invalidArgument(fmt.Sprintf("invalid time %q, want HH:MM", msg.Time))
	}

	group, err := s.store.GetGroup(ctx, msg.GroupID)
	if err != nil {
		slog.Error("CreatePlan failed to load group", "group_id", msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	plan, err := sess.CreatePlan(ctx, group, msg.Date, msg.Time, msg.Mood, msg.MovieGenre)
	if err != nil {
		slog.Error("CreatePlan failed", "group_id", msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.CreatePlanResponse{
		Plan: planView(plan, sess.Planner.State(), sess.User),
	}), nil
}

// GetPlan returns the active plan and the just-finalized itinerary, if any.
func (s *PlannerService) GetPlan(ctx context.Context, req *connect.Request[api.GetPlanRequest]) (*connect.Response[api.GetPlanResponse], error) {
	sess, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}

	state := sess.Planner.State()
	return connect.NewResponse(&api.GetPlanResponse{
		State:         state.String(),
		Plan:          planView(sess.Planner.Plan(), state, sess.User),
		JustFinalized: sess.Planner.JustFinalized(),
	}), nil
}

// Vote toggles the caller's emoji vote on a suggestion.
func (s *PlannerService) Vote(ctx context.Context, req *connect.Request[api.VoteRequest]) (*connect.Response[api.VoteResponse], error) {
	sess, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Msg.Emoji) == "" {
		return nil, invalidArgument("emoji is required")
	}

	outcome := sess.Planner.Vote(sess.User.ID, req.Msg.SuggestionID, req.Msg.Emoji)
	slog.Info("Vote", "user_id", sess.User.ID, "suggestion_id", req.Msg.SuggestionID, "outcome", outcome)

	return connect.NewResponse(&api.VoteResponse{
		Outcome: outcome.String(),
		Plan:    planView(sess.Planner.Plan(), sess.Planner.State(), sess.User),
	}), nil
}

// Rsvp records the caller's attendance status.
func (s *PlannerService) Rsvp(ctx context.Context, req *connect.Request[api.RsvpRequest]) (*connect.Response[api.RsvpResponse], error) {
	sess, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}

	status := models.RsvpStatus(req.Msg.Status)
	switch status {
	case models.RsvpGoing, models.RsvpMaybe, models.RsvpNotGoing:
	default:
		return nil, invalidArgument(fmt.Sprintf("invalid rsvp status %q, want going, maybe or not-going", req.Msg.Status))
	}

	if _, err := sess.Planner.Rsvp(sess.User.ID, status); err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.RsvpResponse{
		Plan: planView(sess.Planner.Plan(), sess.Planner.State(), sess.User),
	}), nil
}

// FinalizePlan turns the most voted suggestion into an itinerary.
func (s *PlannerService) FinalizePlan(ctx context.Context, req *connect.Request[api.FinalizePlanRequest]) (*connect.Response[api.FinalizePlanResponse], error) {
	sess, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("FinalizePlan request received", "user_id", sess.User.ID)

	it, err := sess.Finalize(ctx)
	if err != nil {
		slog.Error("FinalizePlan failed", "user_id", sess.User.ID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.FinalizePlanResponse{Itinerary: it}), nil
}

// DiscardPlan drops the active plan ("Start Over").
func (s *PlannerService) DiscardPlan(ctx context.Context, req *connect.Request[api.DiscardPlanRequest]) (*connect.Response[emptypb.Empty], error) {
	sess, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}
	sess.Planner.Discard()
	return connect.NewResponse(&emptypb.Empty{}), nil
}

// DismissFinalized hides the just-finalized itinerary.
func (s *PlannerService) DismissFinalized(ctx context.Context, req *connect.Request[api.DismissFinalizedRequest]) (*connect.Response[emptypb.Empty], error) {
	sess, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}
	sess.Planner.DismissFinalized()
	return connect.NewResponse(&emptypb.Empty{}), nil
}

// ListItineraries returns the caller's archive split into upcoming and past.
func (s *PlannerService) ListItineraries(ctx context.Context, req *connect.Request[api.ListItinerariesRequest]) (*connect.Response[api.ListItinerariesResponse], error) {
	sess, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}

	p := sess.Archive.Partition(s.now())
	return connect.NewResponse(&api.ListItinerariesResponse{
		Upcoming: nonNil(p.Upcoming),
		Past:     nonNil(p.Past),
	}), nil
}

// GetProfile returns the caller's planning preferences.
func (s *PlannerService) GetProfile(ctx context.Context, req *connect.Request[api.GetProfileRequest]) (*connect.Response[api.GetProfileResponse], error) {
	sess, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.GetProfileResponse{
		Profile:    sess.Profile(),
		Permission: string(sess.Permission()),
	}), nil
}

// UpdateProfile replaces the caller's planning preferences.
func (s *PlannerService) UpdateProfile(ctx context.Context, req *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error) {
	sess, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}

	p := req.Msg.Profile
	if p.LocationRadius < 0 {
		return nil, invalidArgument("location radius must not be negative")
	}
	p.Interests = trimAll(p.Interests)
	p.FoodPreferences = trimAll(p.FoodPreferences)
	p.Budget = strings.TrimSpace(p.Budget)

	sess.SetProfile(p)
	slog.Info("Profile updated", "user_id", sess.User.ID, "notifications", p.NotificationsEnabled)
	return connect.NewResponse(&api.UpdateProfileResponse{Profile: sess.Profile()}), nil
}

// SetNotificationPermission records the permission reported by the device.
func (s *PlannerService) SetNotificationPermission(ctx context.Context, req *connect.Request[api.SetNotificationPermissionRequest]) (*connect.Response[api.SetNotificationPermissionResponse], error) {
	sess, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}

	p, err := notify.ParsePermission(req.Msg.Permission)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	sess.SetPermission(p)
	return connect.NewResponse(&api.SetNotificationPermissionResponse{Permission: string(p)}), nil
}

// Chat sends one message to the assistant. The caller's groups, active plan
// and shared location are its context.
func (s *PlannerService) Chat(ctx context.Context, req *connect.Request[api.ChatRequest]) (*connect.Response[api.ChatResponse], error) {
	sess, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}
	message := strings.TrimSpace(req.Msg.Message)
	if message == "" {
		return nil, invalidArgument("message is required")
	}
	slog.Info("Chat request received", "user_id", sess.User.ID, "location_shared", req.Msg.Location != nil)

	groups, err := s.memberGroups(ctx, sess.User.ID)
	if err != nil {
		slog.Error("Chat failed to load groups", "user_id", sess.User.ID, "error", err)
		return nil, toConnectError(err)
	}

	reply, err := sess.Chat(ctx, groups, req.Msg.Location, message)
	if err != nil {
		slog.Error("Chat failed", "user_id", sess.User.ID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ChatResponse{
		Reply:   reply,
		History: sess.ChatHistory(),
	}), nil
}

// GetChat returns the greeting and the conversation so far.
func (s *PlannerService) GetChat(ctx context.Context, req *connect.Request[api.GetChatRequest]) (*connect.Response[api.GetChatResponse], error) {
	sess, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.GetChatResponse{
		Greeting: generator.ChatGreeting(sess.User.Name),
		History:  sess.ChatHistory(),
	}), nil
}

// ResetChat starts a fresh conversation.
func (s *PlannerService) ResetChat(ctx context.Context, req *connect.Request[api.ResetChatRequest]) (*connect.Response[emptypb.Empty], error) {
	sess, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}
	sess.ResetChat()
	return connect.NewResponse(&emptypb.Empty{}), nil
}

func (s *PlannerService) memberGroups(ctx context.Context, userID string) ([]*models.Group, error) {
	all, err := s.store.ListGroups(ctx)
	if err != nil {
		return nil, err
	}
	var groups []*models.Group
	for _, g := range all {
		if g.HasMember(userID) {
			groups = append(groups, g)
		}
	}
	return groups, nil
}

func trimAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
