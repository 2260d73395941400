package models

// ItineraryActivity is one timed step of a finalized outing.
type ItineraryActivity struct {
	// Time is a display label such as "7:00 PM".
	Time        string `json:"time"`
	Activity    string `json:"activity"`
	Description string `json:"description"`
}

// FinalizedItinerary is the permanent record of a finalized plan.
// It is immutable once created.
type FinalizedItinerary struct {
	// ID is the unique identifier for the itinerary (UUID format).
	ID string `json:"id"`

	// Destination is a snapshot of the winning suggestion, votes included.
	Destination Suggestion `json:"destination"`

	// Timeline is ordered as returned by the itinerary generator.
	// Times are usually non-decreasing but this is not enforced.
	Timeline []ItineraryActivity `json:"timeline"`

	// Date is the outing day as "YYYY-MM-DD".
	Date  string `json:"date"`
	Group *Group `json:"group"`

	// FinalizedAt is the Unix timestamp of finalization.
	FinalizedAt int64 `json:"finalized_at"`
}

// Clone returns a deep copy of the itinerary.
func (f *FinalizedItinerary) Clone() *FinalizedItinerary {
	if f == nil {
		return nil
	}
	c := *f
	c.Destination = f.Destination.Clone()
	c.Timeline = append([]ItineraryActivity(nil), f.Timeline...)
	c.Group = f.Group.Clone()
	return &c
}
