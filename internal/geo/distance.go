// Package geo provides distance calculations and the device location capability.
package geo

import (
	"math"
	"sort"

	"github.com/mmynk/planbuddy/internal/models"
)

// earthRadiusMiles is the mean Earth radius used by Distance.
const earthRadiusMiles = 3959.0

// Distance returns the great-circle distance between a and b in miles.
// It is used for display ranking only.
func Distance(a, b models.Coordinates) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusMiles * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// MemberDistance is how far one member is from a place.
type MemberDistance struct {
	UserID string
	Name   string
	Miles  float64
}

// RankMembers returns each member's distance to target, nearest first.
// Members at equal distance keep their group order.
func RankMembers(target models.Coordinates, members []models.User) []MemberDistance {
	out := make([]MemberDistance, len(members))
	for i, m := range members {
		out[i] = MemberDistance{
			UserID: m.ID,
			Name:   m.Name,
			Miles:  Distance(m.Location, target),
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Miles < out[j].Miles })
	return out
}
