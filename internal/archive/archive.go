// Package archive holds the finalized itineraries of a session.
package archive

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/mmynk/planbuddy/internal/models"
)

// DateLayout is the calendar-day format of itinerary dates.
const DateLayout = "2006-01-02"

// Store persists itineraries for an owner.
type Store interface {
	SaveItinerary(ctx context.Context, ownerID string, it *models.FinalizedItinerary) error
}

// Archive is an append-only list of finalized itineraries. When a store is
// set, every append is written through before it becomes visible.
type Archive struct {
	ownerID string
	store   Store

	mu    sync.RWMutex
	items []*models.FinalizedItinerary
}

// New creates an archive for ownerID seeded with existing items.
// store may be nil.
func New(ownerID string, store Store, existing []*models.FinalizedItinerary) *Archive {
	items := make([]*models.FinalizedItinerary, 0, len(existing))
	for _, it := range existing {
		items = append(items, it.Clone())
	}
	return &Archive{ownerID: ownerID, store: store, items: items}
}

// Append adds an itinerary.
func (a *Archive) Append(ctx context.Context, it *models.FinalizedItinerary) error {
	if it == nil {
		return fmt.Errorf("append nil itinerary")
	}
	if a.store != nil {
		if err := a.store.SaveItinerary(ctx, a.ownerID, it); err != nil {
			return fmt.Errorf("save itinerary: %w", err)
		}
	}

	a.mu.Lock()
	a.items = append(a.items, it.Clone())
	a.mu.Unlock()
	return nil
}

// All returns copies of every itinerary in insertion order.
func (a *Archive) All() []*models.FinalizedItinerary {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]*models.FinalizedItinerary, len(a.items))
	for i, it := range a.items {
		out[i] = it.Clone()
	}
	return out
}

// Len returns the number of archived itineraries.
func (a *Archive) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.items)
}

// Partition splits the archive relative to now.
func (a *Archive) Partition(now time.Time) Partition {
	return PartitionByDate(a.All(), now)
}

// Partition is the archive split around today.
type Partition struct {
	// Upcoming is sorted by date ascending and includes today.
	Upcoming []*models.FinalizedItinerary
	// Past is sorted by date descending.
	Past []*models.FinalizedItinerary
}

// ParseDay parses a "YYYY-MM-DD" date as midnight in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// PartitionByDate splits items into upcoming and past by calendar day.
// Dates are read in now's location, so an itinerary dated today is
// upcoming regardless of the time of day. Unparseable dates are skipped.
func PartitionByDate(items []*models.FinalizedItinerary, now time.Time) Partition {
	today := StartOfDay(now)

	type dated struct {
		it  *models.FinalizedItinerary
		day time.Time
	}
	var upcoming, past []dated
	for _, it := range items {
		day, err := ParseDay(it.Date, now.Location())
		if err != nil {
			slog.Warn("Skipping itinerary with invalid date", "itinerary_id", it.ID, "date", it.Date)
			continue
		}
		if day.Before(today) {
			past = append(past, dated{it, day})
		} else {
			upcoming = append(upcoming, dated{it, day})
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].day.Before(upcoming[j].day) })
	sort.SliceStable(past, func(i, j int) bool { return past[i].day.After(past[j].day) })

	p := Partition{
		Upcoming: make([]*models.FinalizedItinerary, len(upcoming)),
		Past:     make([]*models.FinalizedItinerary, len(past)),
	}
	for i, d := range upcoming {
		p.Upcoming[i] = d.it
	}
	for i, d := range past {
		p.Past[i] = d.it
	}
	return p
}
