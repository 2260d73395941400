package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mmynk/planbuddy/internal/models"
	"github.com/mmynk/planbuddy/internal/storage"
)

var (
	alice   = models.User{ID: "u1", Name: "Alice", Location: models.Coordinates{Lat: 19.0760, Lng: 72.8777}}
	bob     = models.User{ID: "u2", Name: "Bob", Location: models.Coordinates{Lat: 19.0790, Lng: 72.8737}}
	charlie = models.User{ID: "u3", Name: "Charlie", Location: models.Coordinates{Lat: 19.0728, Lng: 72.8826}}
	david   = models.User{ID: "u4", Name: "David", Location: models.Coordinates{Lat: 28.7041, Lng: 77.1025}}
	eve     = models.User{ID: "u5", Name: "Eve", Location: models.Coordinates{Lat: 28.6941, Lng: 77.1125}}
)

// DemoGroups returns the groups created by SeedDemo.
func DemoGroups() []models.Group {
	return []models.Group{
		{ID: "g1", Name: "Weekend Warriors", Members: []models.User{alice, bob, charlie}},
		{ID: "g2", Name: "Foodie Crew", Members: []models.User{david, eve}},
	}
}

// DemoUserID owns the itineraries created by SeedDemo.
const DemoUserID = "u1"

// DemoItineraries returns one past and two upcoming outings relative to now.
func DemoItineraries(now time.Time) []*models.FinalizedItinerary {
	groups := DemoGroups()
	day := func(offset int) string {
		return now.AddDate(0, 0, offset).Format(time.DateOnly)
	}
	return []*models.FinalizedItinerary{
		{
			ID:    "demo-it-1",
			Date:  day(-14),
			Group: &groups[0],
			Destination: models.Suggestion{
				ID: "demo-s-1", Name: "Pixel Paradise Arcade",
				Description: "Relive the 80s with classic arcade games and neon lights.",
				Location:    "Bandra, Mumbai", Lat: 19.05, Lng: 72.83,
				Category: models.CategoryEntertainment, Budget: 1500, Rating: 4.8,
			},
			Timeline: []models.ItineraryActivity{
				{Time: "7:00 PM", Activity: "Arrival at Pixel Paradise", Description: "Everyone meets up at the entrance."},
				{Time: "9:00 PM", Activity: "Team Air Hockey Tournament", Description: "Pair up for a fast-paced showdown."},
			},
		},
		{
			ID:    "demo-it-2",
			Date:  day(7),
			Group: &groups[1],
			Destination: models.Suggestion{
				ID: "demo-s-2", Name: "The Starry Night Bistro",
				Description: "Elegant dining under a simulated night sky.",
				Location:    "Connaught Place, Delhi", Lat: 28.63, Lng: 77.21,
				Category: models.CategoryFood, Budget: 4000, Rating: 4.9,
			},
			Timeline: []models.ItineraryActivity{
				{Time: "8:00 PM", Activity: "Cocktails & Appetizers", Description: "Meet for pre-dinner drinks."},
				{Time: "8:30 PM", Activity: "Main Course", Description: "Enjoy the main culinary event."},
			},
		},
		{
			ID:    "demo-it-3",
			Date:  day(21),
			Group: &groups[0],
			Destination: models.Suggestion{
				ID: "demo-s-3", Name: "Sanjay Gandhi National Park Hike",
				Description: "Enjoy stunning views of the city from the trails.",
				Location:    "Borivali, Mumbai", Lat: 19.21, Lng: 72.85,
				Category: models.CategoryOutdoors, Budget: 200, Rating: 4.7,
			},
			Timeline: []models.ItineraryActivity{
				{Time: "9:00 AM", Activity: "Meet at the Trailhead", Description: "Gather and get ready for the hike."},
				{Time: "11:00 AM", Activity: "Kanheri Caves Exploration", Description: "Explore the ancient Buddhist caves."},
			},
		},
	}
}

// SeedDemo creates the demo groups that do not exist yet and, when the demo
// user has no archive, the demo itineraries.
func (s *SQLiteStore) SeedDemo(ctx context.Context) error {
	return s.seedDemoAt(ctx, time.Now())
}

func (s *SQLiteStore) seedDemoAt(ctx context.Context, now time.Time) error {
	for _, group := range DemoGroups() {
		_, err := s.GetGroup(ctx, group.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return err
		}
		if err := s.CreateGroup(ctx, &group); err != nil {
			return fmt.Errorf("failed to seed group %s: %w", group.ID, err)
		}
	}

	existing, err := s.ListItineraries(ctx, DemoUserID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, it := range DemoItineraries(now) {
		it.FinalizedAt = now.Unix()
		if err := s.SaveItinerary(ctx, DemoUserID, it); err != nil {
			return fmt.Errorf("failed to seed itinerary %s: %w", it.ID, err)
		}
	}
	return nil
}
