package generator

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/mmynk/planbuddy/internal/metrics"
)

// ChatTroubleReply is sent when the live assistant fails a turn.
const ChatTroubleReply = "Oops! Something went wrong. I'm having a little trouble thinking right now."

// Fallback answers from primary and falls back to secondary on any error or
// empty result. The failure is logged and reported, never returned.
type Fallback struct {
	primary   Backend
	secondary Backend
	metrics   *metrics.Metrics
}

// WithFallback wraps primary so that secondary answers when it fails.
func WithFallback(primary, secondary Backend, m *metrics.Metrics) *Fallback {
	return &Fallback{primary: primary, secondary: secondary, metrics: m}
}

func (f *Fallback) Name() string {
	return f.primary.Name() + "+" + f.secondary.Name()
}

func (f *Fallback) Suggest(ctx context.Context, req SuggestionRequest) (*SuggestionResponse, error) {
	resp, err := f.primary.Suggest(ctx, req)
	if err == nil && (resp == nil || len(resp.Suggestions) == 0) {
		err = ErrEmptyResponse
	}
	if err == nil {
		f.metrics.GeneratorCall("suggestions", f.primary.Name(), "ok")
		return resp, nil
	}

	f.degrade("suggestions", err)
	return f.secondary.Suggest(ctx, req)
}

func (f *Fallback) Itinerary(ctx context.Context, req ItineraryRequest) (*ItineraryResponse, error) {
	resp, err := f.primary.Itinerary(ctx, req)
	if err == nil && (resp == nil || len(resp.Timeline) == 0) {
		err = ErrEmptyResponse
	}
	if err == nil {
		f.metrics.GeneratorCall("itinerary", f.primary.Name(), "ok")
		return resp, nil
	}

	f.degrade("itinerary", err)
	return f.secondary.Itinerary(ctx, req)
}

// Chat answers from primary. A failed turn is answered with ChatTroubleReply
// instead of the secondary's reply.
func (f *Fallback) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	resp, err := f.primary.Chat(ctx, req)
	if err == nil && (resp == nil || strings.TrimSpace(resp.Reply) == "") {
		err = ErrEmptyResponse
	}
	if err == nil {
		f.metrics.GeneratorCall("chat", f.primary.Name(), "ok")
		return resp, nil
	}

	f.degrade("chat", err)
	return &ChatResponse{Reply: ChatTroubleReply}, nil
}

func (f *Fallback) degrade(kind string, err error) {
	f.metrics.GeneratorCall(kind, f.primary.Name(), "error")
	f.metrics.Fallback(kind)
	slog.Warn("Generator failed, serving fallback",
		"kind", kind,
		"backend", f.primary.Name(),
		"fallback", f.secondary.Name(),
		"error", err,
	)
	sentry.CaptureException(err)
}

// Config selects and configures the backend.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
	Metrics *metrics.Metrics
}

// New picks the backend for the process: the live client with a fixture
// fallback when an API key is configured, the fixture alone otherwise.
func New(cfg Config) Backend {
	fixture := NewFixture()
	if strings.TrimSpace(cfg.APIKey) == "" {
		slog.Warn("GEMINI_API_KEY not set, serving fixture suggestions and itineraries")
		return fixture
	}

	live, err := NewGeminiBackend(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.Timeout)
	if err != nil {
		slog.Warn("Gemini backend unavailable, serving fixtures", "error", err)
		return fixture
	}
	slog.Info("Gemini backend configured", "model", live.model)
	return WithFallback(live, fixture, cfg.Metrics)
}
