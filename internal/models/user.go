package models

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// User represents a person known to the application.
//
// Users are created at login or when a member is added to a group by name.
// They are immutable once created except for the phone and location fields,
// which are merged when the same person logs in again.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Phone is the optional phone number in E.164 format.
	Phone string `json:"phone,omitempty"`

	// Location is the last known position of the user.
	Location Coordinates `json:"location"`

	// CreatedAt is the Unix timestamp when the user was created.
	CreatedAt int64 `json:"created_at"`
}

// Profile holds the planning preferences of the logged-in user.
// It is an input to the suggestion generator and controls reminders.
type Profile struct {
	Interests       []string `json:"interests"`
	FoodPreferences []string `json:"food_preferences"`

	// Budget is a free-text budget label, e.g. "₹500 - ₹1500 (Mid-Range)".
	Budget string `json:"budget"`

	// LocationRadius is the preferred search radius in kilometers.
	LocationRadius int `json:"location_radius"`

	// NotificationsEnabled turns the post-finalization reminder on or off.
	NotificationsEnabled bool `json:"notifications_enabled"`
}

// DefaultProfile returns the profile every new session starts with.
func DefaultProfile() Profile {
	return Profile{
		Interests:            []string{"Movies", "Hiking", "Live Music"},
		FoodPreferences:      []string{"Italian", "Spicy", "Vegan"},
		Budget:               "₹500 - ₹1500 (Mid-Range)",
		LocationRadius:       10,
		NotificationsEnabled: true,
	}
}

// Clone returns a deep copy of the profile.
func (p Profile) Clone() Profile {
	p.Interests = append([]string(nil), p.Interests...)
	p.FoodPreferences = append([]string(nil), p.FoodPreferences...)
	return p
}
