package generator

import (
	"context"

	"github.com/mmynk/planbuddy/internal/models"
)

const (
	fixtureTheme = "Epic Gamer Night"

	// OfflineChatReply answers every chat message when no live backend is configured.
	OfflineChatReply = "I'm in mock mode! I'd love to help, but my brain is offline."
)

var fixtureSuggestions = []candidate{
	{Name: "Pixel Paradise Arcade", Description: "Relive the 80s with classic arcade games and neon lights.", Location: "Koregaon Park, Pune", Lat: 18.53, Lng: 73.89, Category: "Entertainment", BudgetINR: 1500, Rating: 4.8},
	{Name: "The Gilded Goblin Board Game Cafe", Description: "A cozy spot with hundreds of board games and great snacks.", Location: "Indiranagar, Bangalore", Lat: 12.97, Lng: 77.64, Category: "Food", BudgetINR: 800, Rating: 4.5},
	{Name: "VR Quest Arena", Description: "Immerse yourselves in a virtual world and battle zombies together.", Location: "Cyber Hub, Gurgaon", Lat: 28.49, Lng: 77.08, Category: "Entertainment", BudgetINR: 2000, Rating: 4.2},
	{Name: "Late Night Pizza & Console Bash", Description: "Grab some pizzas and have a classic console tournament at home.", Location: "Home", Lat: 19.06, Lng: 72.84, Category: "Food", BudgetINR: 600, Rating: 3.8},
}

var fixtureTimeline = []models.ItineraryActivity{
	{Time: "7:00 PM", Activity: "Arrival at Pixel Paradise", Description: "Everyone meets up at the entrance. Time to get your game face on!"},
	{Time: "7:15 PM", Activity: "Classic Arcade Challenge", Description: "Hit the classics! Compete for the high score on Pac-Man and Donkey Kong."},
	{Time: "8:30 PM", Activity: "Snack Bar Fuel-Up", Description: "Recharge with some loaded fries and milkshakes from the snack bar."},
	{Time: "9:00 PM", Activity: "Team Air Hockey Tournament", Description: "Pair up for a fast-paced, 2v2 air hockey showdown to end the night."},
}

// Fixture serves the same fixed theme, suggestions and timeline for every
// request. It backs offline and demo mode.
type Fixture struct{}

// NewFixture creates the fixed-fixture backend.
func NewFixture() *Fixture {
	return &Fixture{}
}

func (f *Fixture) Name() string { return "fixture" }

func (f *Fixture) Suggest(ctx context.Context, req SuggestionRequest) (*SuggestionResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ingestSuggestions(fixtureTheme, fixtureSuggestions, req.Mood)
}

func (f *Fixture) Itinerary(ctx context.Context, req ItineraryRequest) (*ItineraryResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ingestTimeline(fixtureTimeline)
}

func (f *Fixture) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &ChatResponse{Reply: OfflineChatReply}, nil
}
