package models

// Category classifies a suggestion.
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryEntertainment Category = "Entertainment"
	CategoryOutdoors      Category = "Outdoors"
	CategoryNightlife     Category = "Nightlife"
	CategoryCreative      Category = "Creative"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryFood,
	CategoryEntertainment,
	CategoryOutdoors,
	CategoryNightlife,
	CategoryCreative,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Vote is one user's emoji-tagged vote on a suggestion.
// A user holds at most one vote per suggestion.
type Vote struct {
	UserID string `json:"user_id"`
	Emoji  string `json:"emoji"`
}

// Suggestion is one candidate venue or activity proposed for a plan.
type Suggestion struct {
	// ID is assigned when the generator response is ingested (UUID format).
	// All vote and lookup operations use it.
	ID string `json:"id"`

	// Name is unique within one plan's suggestion list.
	Name        string `json:"name"`
	Description string `json:"description"`

	// Location is a human readable location label.
	Location string   `json:"location"`
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
	Category Category `json:"category"`

	// Budget is the tentative per-person budget in INR.
	Budget float64 `json:"budget"`

	// Rating is the suitability for the group, 0 to 5.
	Rating float64 `json:"rating"`

	Votes []Vote `json:"votes"`
}

// Coordinates returns the suggestion position.
func (s *Suggestion) Coordinates() Coordinates {
	return Coordinates{Lat: s.Lat, Lng: s.Lng}
}

// VoteOf returns the vote cast by userID, if any.
func (s *Suggestion) VoteOf(userID string) (Vote, bool) {
	for _, v := range s.Votes {
		if v.UserID == userID {
			return v, true
		}
	}
	return Vote{}, false
}

// Clone returns a deep copy of the suggestion.
func (s Suggestion) Clone() Suggestion {
	s.Votes = append([]Vote(nil), s.Votes...)
	return s
}
