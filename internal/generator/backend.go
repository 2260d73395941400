// Package generator is the contract with the external generative-AI service
// that proposes outing suggestions and builds itineraries.
//
// A Backend is selected once when the server starts: the live Gemini client
// wrapped in a fixture fallback when an API key is configured, the fixture
// backend alone otherwise. Callers never see which one answered.
package generator

import (
	"context"
	"errors"

	"github.com/mmynk/planbuddy/internal/models"
)

const (
	// MinSuggestions and MaxSuggestions bound every suggestion response.
	MinSuggestions = 3
	MaxSuggestions = 4

	// MovieMood restricts suggestions to cinemas and theaters.
	MovieMood = "Movie"

	// AnyGenre means no movie genre preference.
	AnyGenre = "Any"

	// AssistantName is how the planning assistant introduces itself.
	AssistantName = "PlanBuddy Genie"
)

var (
	ErrInvalidResponse = errors.New("invalid generator response")
	ErrEmptyResponse   = errors.New("empty generator response")
)

// SuggestionRequest is everything the generator knows when proposing outings.
type SuggestionRequest struct {
	Interests       []string
	FoodPreferences []string
	Budget          string

	GroupName    string
	GroupMembers []string

	Mood string
	Date string
	Time string

	// Location is the requester's position; suggestions should be nearby.
	Location models.Coordinates

	// Weather biases the indoor/outdoor mix. Empty when the forecast failed.
	Weather models.Weather

	// MovieGenre only applies to MovieMood. Empty or AnyGenre means no preference.
	MovieGenre string
}

// SuggestionResponse is a themed list of 3 to 4 ingested suggestions.
// Every suggestion carries a fresh ID and an empty vote list.
type SuggestionResponse struct {
	Theme       string
	Suggestions []models.Suggestion
}

// ItineraryRequest describes the finalized choice to plan a timeline for.
type ItineraryRequest struct {
	Suggestion models.Suggestion
	Group      *models.Group
	Date       string
	StartTime  string
	Mood       string
}

// ItineraryResponse is a timed activity sequence of roughly 3 to 4 hours.
type ItineraryResponse struct {
	Timeline []models.ItineraryActivity
}

// ChatRequest is one assistant turn with everything the assistant may know
// about the user.
type ChatRequest struct {
	UserName string
	Groups   []*models.Group

	// Plan is the active plan, nil when there is none.
	Plan *models.ActivePlan

	// Location is the live location the user chose to share, nil otherwise.
	Location *models.Coordinates

	// History holds earlier turns, oldest first.
	History []models.ChatMessage
	Message string
}

// ChatResponse is the assistant's plain text answer.
type ChatResponse struct {
	Reply string
}

// Backend generates suggestions, itineraries and assistant replies.
type Backend interface {
	// Name identifies the backend in logs and metrics.
	Name() string
	Suggest(ctx context.Context, req SuggestionRequest) (*SuggestionResponse, error)
	Itinerary(ctx context.Context, req ItineraryRequest) (*ItineraryResponse, error)
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// IsMovieMood reports whether mood selects movie venues only.
func IsMovieMood(mood string) bool {
	return mood == MovieMood
}
