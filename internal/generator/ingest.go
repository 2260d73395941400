package generator

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mmynk/planbuddy/internal/models"
)

// candidate is a suggestion as the generator describes it, before ingestion.
type candidate struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Category    string  `json:"category"`
	BudgetINR   float64 `json:"budgetINR"`
	Rating      float64 `json:"rating"`
}

// NormalizeCategory maps a free-text category onto the known set.
// Unknown labels become Entertainment.
func NormalizeCategory(raw string) models.Category {
	c := models.Category(cases.Title(language.English).String(strings.TrimSpace(raw)))
	if c.Valid() {
		return c
	}
	return models.CategoryEntertainment
}

// ingestSuggestions validates a raw response and assigns suggestion IDs.
//
// Duplicate names are dropped (first wins), extra entries beyond
// MaxSuggestions are truncated and fewer than MinSuggestions is an error.
// For MovieMood every category is forced to Entertainment.
func ingestSuggestions(theme string, raw []candidate, mood string) (*SuggestionResponse, error) {
	theme = strings.TrimSpace(theme)
	if theme == "" {
		return nil, fmt.Errorf("%w: missing theme", ErrInvalidResponse)
	}

	movie := IsMovieMood(mood)
	seen := make(map[string]struct{}, len(raw))
	out := make([]models.Suggestion, 0, MaxSuggestions)
	for _, c := range raw {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			slog.Debug("Dropping duplicate suggestion", "name", name)
			continue
		}
		seen[name] = struct{}{}

		category := NormalizeCategory(c.Category)
		if movie {
			category = models.CategoryEntertainment
		}

		out = append(out, models.Suggestion{
			ID:          uuid.New().String(),
			Name:        name,
			Description: strings.TrimSpace(c.Description),
			Location:    strings.TrimSpace(c.Location),
			Lat:         c.Lat,
			Lng:         c.Lng,
			Category:    category,
			Budget:      math.Max(c.BudgetINR, 0),
			Rating:      math.Min(math.Max(c.Rating, 0), 5),
			Votes:       []models.Vote{},
		})
		if len(out) == MaxSuggestions {
			break
		}
	}

	if len(out) < MinSuggestions {
		return nil, fmt.Errorf("%w: got %d usable suggestions, need at least %d", ErrInvalidResponse, len(out), MinSuggestions)
	}
	return &SuggestionResponse{Theme: theme, Suggestions: out}, nil
}

// ingestTimeline drops entries without an activity name.
func ingestTimeline(raw []models.ItineraryActivity) (*ItineraryResponse, error) {
	out := make([]models.ItineraryActivity, 0, len(raw))
	for _, a := range raw {
		a.Time = strings.TrimSpace(a.Time)
		a.Activity = strings.TrimSpace(a.Activity)
		a.Description = strings.TrimSpace(a.Description)
		if a.Activity == "" {
			continue
		}
		out = append(out, a)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty timeline", ErrInvalidResponse)
	}
	return &ItineraryResponse{Timeline: out}, nil
}
