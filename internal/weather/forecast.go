// Package weather provides the forecast collaborator used when creating plans.
package weather

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"

	"github.com/mmynk/planbuddy/internal/models"
)

// Conditions is the fixed set of forecast tags a Forecaster may return.
var Conditions = []models.Weather{
	models.WeatherSunny,
	models.WeatherRainy,
	models.WeatherCloudy,
}

// Forecaster returns the expected weather for a date ("YYYY-MM-DD") at a position.
type Forecaster interface {
	Forecast(ctx context.Context, date string, at models.Coordinates) (models.Weather, error)
}

// RandomForecaster picks a condition uniformly at random.
// It stands in for a real weather API.
type RandomForecaster struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomForecaster creates a forecaster seeded from seed1/seed2.
func NewRandomForecaster(seed1, seed2 uint64) *RandomForecaster {
	return &RandomForecaster{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

func (f *RandomForecaster) Forecast(ctx context.Context, date string, at models.Coordinates) (models.Weather, error) {
	if err := ctx.Err(); err != nil {
		return models.WeatherUnknown, err
	}
	slog.Debug("Fetching weather", "date", date, "lat", at.Lat, "lng", at.Lng)

	f.mu.Lock()
	i := f.rng.IntN(len(Conditions))
	f.mu.Unlock()
	return Conditions[i], nil
}

// Fixed always returns the same condition, or Err when set.
type Fixed struct {
	Weather models.Weather
	Err     error
}

func (f Fixed) Forecast(ctx context.Context, date string, at models.Coordinates) (models.Weather, error) {
	if f.Err != nil {
		return models.WeatherUnknown, f.Err
	}
	return f.Weather, nil
}
