package models

import "fmt"

// RsvpStatus is a member's attendance intent.
type RsvpStatus string

const (
	RsvpGoing    RsvpStatus = "going"
	RsvpMaybe    RsvpStatus = "maybe"
	RsvpNotGoing RsvpStatus = "not-going"
	RsvpPending  RsvpStatus = "pending"
)

// ParseRsvpStatus converts a string into a RsvpStatus.
func ParseRsvpStatus(s string) (RsvpStatus, error) {
	switch st := RsvpStatus(s); st {
	case RsvpGoing, RsvpMaybe, RsvpNotGoing, RsvpPending:
		return st, nil
	}
	return "", fmt.Errorf("unknown rsvp status %q", s)
}

// Rsvp is one member's attendance entry for the active plan.
type Rsvp struct {
	UserID string     `json:"user_id"`
	Status RsvpStatus `json:"status"`
}

// Weather is the forecast tag attached to a plan.
type Weather string

const (
	WeatherSunny   Weather = "Sunny"
	WeatherRainy   Weather = "Rainy"
	WeatherCloudy  Weather = "Cloudy"
	WeatherUnknown Weather = ""
)

// ActivePlan is the single in-progress outing proposal of a session.
// It exists from creation until it is finalized or discarded.
type ActivePlan struct {
	// ID is the unique identifier for the plan (UUID format).
	ID string `json:"id"`

	// Group is a snapshot of the group at creation time.
	Group *Group `json:"group"`

	// Date is the outing day as "YYYY-MM-DD".
	Date string `json:"date"`

	// Time is the start time as "HH:MM".
	Time string `json:"time"`

	Mood       string `json:"mood"`
	MovieGenre string `json:"movie_genre,omitempty"`
	Theme      string `json:"theme"`

	// Weather is the forecast used for generation; empty when unavailable.
	Weather Weather `json:"weather"`

	Suggestions []Suggestion `json:"suggestions"`
	Rsvps       []Rsvp       `json:"rsvps"`

	// CreatedAt is the Unix timestamp when the plan became active.
	CreatedAt int64 `json:"created_at"`
}

// Suggestion returns a pointer into the plan's suggestion list, or nil.
func (p *ActivePlan) Suggestion(id string) *Suggestion {
	for i := range p.Suggestions {
		if p.Suggestions[i].ID == id {
			return &p.Suggestions[i]
		}
	}
	return nil
}

// RsvpOf returns the status recorded for userID.
func (p *ActivePlan) RsvpOf(userID string) (RsvpStatus, bool) {
	for _, r := range p.Rsvps {
		if r.UserID == userID {
			return r.Status, true
		}
	}
	return "", false
}

// Clone returns a deep copy of the plan.
func (p *ActivePlan) Clone() *ActivePlan {
	if p == nil {
		return nil
	}
	c := *p
	c.Group = p.Group.Clone()
	c.Suggestions = make([]Suggestion, len(p.Suggestions))
	for i, s := range p.Suggestions {
		c.Suggestions[i] = s.Clone()
	}
	c.Rsvps = append([]Rsvp(nil), p.Rsvps...)
	return &c
}
