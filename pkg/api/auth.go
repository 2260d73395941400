package api

import "github.com/mmynk/planbuddy/internal/models"

type LoginRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`

	// Location is the device position. Nil when the device could not
	// provide one; LocationDenied is set when the user refused.
	Location       *models.Coordinates `json:"location,omitempty"`
	LocationDenied bool                `json:"location_denied,omitempty"`
}

type LoginResponse struct {
	Token     string      `json:"token"`
	SessionID string      `json:"session_id"`
	User      models.User `json:"user"`
	ExpiresAt int64       `json:"expires_at"`
}

type LogoutRequest struct{}
