package planner

import "errors"

var (
	ErrInvalidGroup         = errors.New("please select a group")
	ErrGenerationInFlight   = errors.New("plan generation already in progress")
	ErrFinalizationInFlight = errors.New("plan finalization already in progress")
	ErrNoSuggestions        = errors.New("could not generate suggestions")
	ErrItineraryUnavailable = errors.New("could not generate itinerary")
	ErrInvalidRsvp          = errors.New("invalid rsvp status")
)
