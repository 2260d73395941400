package api

import "github.com/mmynk/planbuddy/internal/models"

type CreatePlanRequest struct {
	GroupID string `json:"group_id"`
	// Date is "YYYY-MM-DD" and Time is "HH:MM".
	Date       string `json:"date"`
	Time       string `json:"time"`
	Mood       string `json:"mood"`
	MovieGenre string `json:"movie_genre,omitempty"`
}

type CreatePlanResponse struct {
	Plan *PlanView `json:"plan"`
}

// PlanView is the active plan as the caller sees it.
type PlanView struct {
	ID         string         `json:"id"`
	State      string         `json:"state"`
	Group      *models.Group  `json:"group"`
	Date       string         `json:"date"`
	Time       string         `json:"time"`
	Mood       string         `json:"mood"`
	MovieGenre string         `json:"movie_genre,omitempty"`
	Theme      string         `json:"theme"`
	Weather    models.Weather `json:"weather"`

	// Suggestions are in descending vote order.
	Suggestions []SuggestionView `json:"suggestions"`

	Rsvps       []models.Rsvp `json:"rsvps"`
	RsvpSummary RsvpSummary   `json:"rsvp_summary"`
	MyRsvp      string        `json:"my_rsvp"`
	CreatedAt   int64         `json:"created_at"`
}

type SuggestionView struct {
	models.Suggestion

	VoteCount int    `json:"vote_count"`
	MyVote    string `json:"my_vote,omitempty"`

	// DistanceMiles is measured from the caller's location.
	DistanceMiles float64 `json:"distance_miles"`

	// MemberDistances are nearest first.
	MemberDistances []MemberDistance `json:"member_distances"`
}

type MemberDistance struct {
	UserID string  `json:"user_id"`
	Name   string  `json:"name"`
	Miles  float64 `json:"miles"`
}

type RsvpSummary struct {
	Going    int `json:"going"`
	Maybe    int `json:"maybe"`
	NotGoing int `json:"not_going"`
	Pending  int `json:"pending"`
}

type GetPlanRequest struct{}

type GetPlanResponse struct {
	State string    `json:"state"`
	Plan  *PlanView `json:"plan,omitempty"`

	// JustFinalized is set until it is dismissed or a new plan is created.
	JustFinalized *models.FinalizedItinerary `json:"just_finalized,omitempty"`
}

type VoteRequest struct {
	SuggestionID string `json:"suggestion_id"`
	Emoji        string `json:"emoji"`
}

type VoteResponse struct {
	// Outcome is one of added, replaced, removed or ignored.
	Outcome string    `json:"outcome"`
	Plan    *PlanView `json:"plan,omitempty"`
}

type RsvpRequest struct {
	Status string `json:"status"`
}

type RsvpResponse struct {
	Plan *PlanView `json:"plan,omitempty"`
}

type FinalizePlanRequest struct{}

type FinalizePlanResponse struct {
	// Itinerary is nil when there was no active plan.
	Itinerary *models.FinalizedItinerary `json:"itinerary,omitempty"`
}

type DiscardPlanRequest struct{}

type DismissFinalizedRequest struct{}

type ListItinerariesRequest struct{}

type ListItinerariesResponse struct {
	Upcoming []*models.FinalizedItinerary `json:"upcoming"`
	Past     []*models.FinalizedItinerary `json:"past"`
}

type GetProfileRequest struct{}

type GetProfileResponse struct {
	Profile    models.Profile `json:"profile"`
	Permission string         `json:"permission"`
}

type UpdateProfileRequest struct {
	Profile models.Profile `json:"profile"`
}

type UpdateProfileResponse struct {
	Profile models.Profile `json:"profile"`
}

type SetNotificationPermissionRequest struct {
	// Permission is granted, denied or default as reported by the device.
	Permission string `json:"permission"`
}

type SetNotificationPermissionResponse struct {
	Permission string `json:"permission"`
}

type ChatRequest struct {
	Message string `json:"message"`

	// Location is the caller's live position, sent only while sharing is on.
	Location *models.Coordinates `json:"location,omitempty"`
}

type ChatResponse struct {
	Reply   string               `json:"reply"`
	History []models.ChatMessage `json:"history"`
}

type GetChatRequest struct{}

type GetChatResponse struct {
	// Greeting is the assistant's opening line, shown before the history.
	Greeting string               `json:"greeting"`
	History  []models.ChatMessage `json:"history"`
}

type ResetChatRequest struct{}
