package geo

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/mmynk/planbuddy/internal/models"
)

var (
	ErrDenied      = errors.New("location permission denied")
	ErrTimeout     = errors.New("location request timed out")
	ErrUnavailable = errors.New("location unavailable")
)

// Locator resolves the current device position.
// Failures are one of ErrDenied, ErrTimeout or ErrUnavailable (possibly wrapped).
type Locator interface {
	Locate(ctx context.Context) (models.Coordinates, error)
}

// ReportedLocator returns a position reported by the client device.
// A nil position means the device could not provide one.
type ReportedLocator struct {
	Position *models.Coordinates
	Denied   bool
}

func (r ReportedLocator) Locate(ctx context.Context) (models.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return models.Coordinates{}, fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	if r.Denied {
		return models.Coordinates{}, ErrDenied
	}
	if r.Position == nil {
		return models.Coordinates{}, ErrUnavailable
	}
	if !Valid(*r.Position) {
		return models.Coordinates{}, fmt.Errorf("%w: coordinates out of range", ErrUnavailable)
	}
	return *r.Position, nil
}

// Valid reports whether c is within latitude/longitude bounds.
func Valid(c models.Coordinates) bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// LocateOrDefault asks loc for the current position and falls back to def on
// any failure. The returned error is the locator failure, for logging only.
func LocateOrDefault(ctx context.Context, loc Locator, timeout time.Duration, def models.Coordinates) (models.Coordinates, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	pos, err := loc.Locate(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, ErrTimeout) {
			err = fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return def, err
	}
	return pos, nil
}

// Jitter returns a point near center, offset by up to half of spread degrees
// on each axis. It gives manually added members a plausible location.
func Jitter(center models.Coordinates, spread float64) models.Coordinates {
	return models.Coordinates{
		Lat: center.Lat + (rand.Float64()-0.5)*spread,
		Lng: center.Lng + (rand.Float64()-0.5)*spread,
	}
}
