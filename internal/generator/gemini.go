package generator

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/mmynk/planbuddy/internal/models"
)

const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	DefaultGeminiModel   = "gemini-2.5-flash"
)

var suggestionSchema = &geminiSchema{
	Type: "OBJECT",
	Properties: map[string]*geminiSchema{
		"theme": {Type: "STRING", Description: "A creative theme for the outing, like 'Retro Arcade Night'."},
		"suggestions": {
			Type:        "ARRAY",
			Description: "3 to 4 outing suggestions.",
			Items: &geminiSchema{
				Type: "OBJECT",
				Properties: map[string]*geminiSchema{
					"name":        {Type: "STRING"},
					"description": {Type: "STRING"},
					"location":    {Type: "STRING"},
					"lat":         {Type: "NUMBER"},
					"lng":         {Type: "NUMBER"},
					"category":    {Type: "STRING", Description: "One of Food, Entertainment, Outdoors, Nightlife, Creative."},
					"budgetINR":   {Type: "NUMBER", Description: "Per-person budget in INR."},
					"rating":      {Type: "NUMBER", Description: "Suitability out of 5."},
				},
				Required: []string{"name", "description", "location", "lat", "lng", "category", "budgetINR", "rating"},
			},
		},
	},
	Required: []string{"theme", "suggestions"},
}

var itinerarySchema = &geminiSchema{
	Type: "OBJECT",
	Properties: map[string]*geminiSchema{
		"timeline": {
			Type: "ARRAY",
			Items: &geminiSchema{
				Type: "OBJECT",
				Properties: map[string]*geminiSchema{
					"time":        {Type: "STRING", Description: "Time label such as '7:00 PM'."},
					"activity":    {Type: "STRING"},
					"description": {Type: "STRING"},
				},
				Required: []string{"time", "activity", "description"},
			},
		},
	},
	Required: []string{"timeline"},
}

// GeminiBackend implements Backend on the Gemini generateContent REST API.
// It is safe for concurrent use.
type GeminiBackend struct {
	client  *http.Client
	apiKey  string
	baseURL string
	model   string
	timeout time.Duration
}

// NewGeminiBackend creates a live backend. Empty model and baseURL select the defaults.
func NewGeminiBackend(apiKey, model, baseURL string, timeout time.Duration) (*GeminiBackend, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key is empty")
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	if baseURL == "" {
		baseURL = DefaultGeminiBaseURL
	}

	return &GeminiBackend{
		client:  &http.Client{},
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		timeout: timeout,
	}, nil
}

func (g *GeminiBackend) Name() string { return "gemini" }

func (g *GeminiBackend) Suggest(ctx context.Context, req SuggestionRequest) (*SuggestionResponse, error) {
	var out struct {
		Theme       string      `json:"theme"`
		Suggestions []candidate `json:"suggestions"`
	}
	if err := g.generate(ctx, suggestionPrompt(req), suggestionSchema, &out); err != nil {
		return nil, err
	}
	return ingestSuggestions(out.Theme, out.Suggestions, req.Mood)
}

func (g *GeminiBackend) Itinerary(ctx context.Context, req ItineraryRequest) (*ItineraryResponse, error) {
	var out struct {
		Timeline []models.ItineraryActivity `json:"timeline"`
	}
	if err := g.generate(ctx, itineraryPrompt(req), itinerarySchema, &out); err != nil {
		return nil, err
	}
	return ingestTimeline(out.Timeline)
}

// Chat answers one assistant turn. The conversation so far is replayed as
// alternating user and model contents under a system instruction.
func (g *GeminiBackend) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	contents := make([]geminiContent, 0, len(req.History)+1)
	for _, m := range req.History {
		contents = append(contents, geminiContent{
			Role:  string(m.Role),
			Parts: []geminiPart{{Text: m.Text}},
		})
	}
	contents = append(contents, geminiContent{
		Role:  string(models.ChatRoleUser),
		Parts: []geminiPart{{Text: req.Message}},
	})

	text, err := g.send(ctx, geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: chatInstruction(req)}}},
		Contents:          contents,
		GenerationConfig:  geminiGenerationConfig{ResponseMimeType: "text/plain"},
	})
	if err != nil {
		return nil, err
	}

	reply := strings.TrimSpace(text)
	if reply == "" {
		return nil, ErrEmptyResponse
	}
	return &ChatResponse{Reply: reply}, nil
}
