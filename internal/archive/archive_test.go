package archive

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mmynk/planbuddy/internal/models"
)

func itineraryOn(id string, day time.Time) *models.FinalizedItinerary {
	return &models.FinalizedItinerary{
		ID:          id,
		Destination: models.Suggestion{Name: "Dest " + id},
		Date:        day.Format(DateLayout),
	}
}

func ids(items []*models.FinalizedItinerary) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPartitionByDate(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	now := time.Date(2026, 10, 16, 15, 30, 0, 0, loc)

	items := []*models.FinalizedItinerary{
		itineraryOn("plus21", now.AddDate(0, 0, 21)),
		itineraryOn("minus14", now.AddDate(0, 0, -14)),
		itineraryOn("plus7", now.AddDate(0, 0, 7)),
	}

	p := PartitionByDate(items, now)
	if got := ids(p.Past); !equal(got, []string{"minus14"}) {
		t.Errorf("Past = %v, want [minus14]", got)
	}
	if got := ids(p.Upcoming); !equal(got, []string{"plus7", "plus21"}) {
		t.Errorf("Upcoming = %v, want [plus7 plus21]", got)
	}
}

func TestPartitionByDateBoundaries(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	// Just after local midnight the UTC date is still the previous day.
	now := time.Date(2026, 10, 16, 0, 15, 0, 0, loc)

	items := []*models.FinalizedItinerary{
		{ID: "today", Date: "2026-10-16"},
		{ID: "yesterday", Date: "2026-10-15"},
		{ID: "older", Date: "2026-09-01"},
		{ID: "bad", Date: "next friday"},
	}

	p := PartitionByDate(items, now)
	if got := ids(p.Upcoming); !equal(got, []string{"today"}) {
		t.Errorf("Upcoming = %v, want [today]", got)
	}
	if got := ids(p.Past); !equal(got, []string{"yesterday", "older"}) {
		t.Errorf("Past = %v, want [yesterday older]", got)
	}
}

type fakeStore struct {
	saved []string
	err   error
}

func (s *fakeStore) SaveItinerary(_ context.Context, ownerID string, it *models.FinalizedItinerary) error {
	if s.err != nil {
		return s.err
	}
	s.saved = append(s.saved, ownerID+"/"+it.ID)
	return nil
}

func TestArchiveAppend(t *testing.T) {
	store := &fakeStore{}
	a := New("u1", store, []*models.FinalizedItinerary{{ID: "old", Date: "2026-01-01"}})

	if err := a.Append(context.Background(), &models.FinalizedItinerary{ID: "new", Date: "2026-12-01"}); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if a.Len() != 2 {
		t.Errorf("Len() = %d, want 2", a.Len())
	}
	if !equal(store.saved, []string{"u1/new"}) {
		t.Errorf("saved = %v", store.saved)
	}

	// Returned copies do not alias archive contents.
	all := a.All()
	all[0].Date = "1999-01-01"
	if a.All()[0].Date != "2026-01-01" {
		t.Error("All() leaked internal state")
	}

	store.err = errors.New("disk full")
	if err := a.Append(context.Background(), &models.FinalizedItinerary{ID: "lost"}); err == nil {
		t.Fatal("expected store error")
	}
	if a.Len() != 2 {
		t.Errorf("failed append must not be visible, Len() = %d", a.Len())
	}

	p := a.Partition(time.Date(2026, 6, 1, 12, 0, 0, 0, time.Local))
	if len(p.Upcoming) != 1 || len(p.Past) != 1 {
		t.Errorf("Partition() = %d upcoming, %d past", len(p.Upcoming), len(p.Past))
	}
}
