package weather

import (
	"context"
	"testing"

	"github.com/mmynk/planbuddy/internal/models"
)

func TestRandomForecasterReturnsKnownConditions(t *testing.T) {
	f := NewRandomForecaster(1, 2)
	seen := map[models.Weather]int{}

	for i := 0; i < 300; i++ {
		w, err := f.Forecast(context.Background(), "2026-10-20", models.Coordinates{Lat: 19.07, Lng: 72.87})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen[w]++
	}

	for w := range seen {
		if w != models.WeatherSunny && w != models.WeatherRainy && w != models.WeatherCloudy {
			t.Errorf("unexpected condition %q", w)
		}
	}
	if len(seen) != 3 {
		t.Errorf("expected all 3 conditions over 300 draws, saw %v", seen)
	}
}

func TestRandomForecasterCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewRandomForecaster(1, 2).Forecast(ctx, "2026-10-20", models.Coordinates{}); err == nil {
		t.Error("expected error for cancelled context")
	}
}
