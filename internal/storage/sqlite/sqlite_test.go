package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmynk/planbuddy/internal/archive"
	"github.com/mmynk/planbuddy/internal/models"
	"github.com/mmynk/planbuddy/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateUser generates ID", func(t *testing.T) {
		user := &models.User{Name: "Priya", Phone: "+919876543210", Location: models.Coordinates{Lat: 19.1, Lng: 72.9}}
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
		if user.ID == "" || user.CreatedAt == 0 {
			t.Fatal("Expected ID and CreatedAt to be set")
		}

		got, err := store.GetUser(ctx, user.ID)
		if err != nil {
			t.Fatalf("GetUser failed: %v", err)
		}
		if got.Name != "Priya" || got.Phone != user.Phone || got.Location != user.Location {
			t.Errorf("Unexpected user %+v", got)
		}
	})

	t.Run("FindUserByName ignores case", func(t *testing.T) {
		got, err := store.FindUserByName(ctx, "PRIYA")
		if err != nil {
			t.Fatalf("FindUserByName failed: %v", err)
		}
		if got == nil || got.Name != "Priya" {
			t.Fatalf("Expected to find Priya, got %+v", got)
		}

		missing, err := store.FindUserByName(ctx, "Nobody")
		if err != nil || missing != nil {
			t.Errorf("Expected nil, nil for unknown name, got %+v, %v", missing, err)
		}
	})

	t.Run("UpdateUser merges location and phone", func(t *testing.T) {
		user, _ := store.FindUserByName(ctx, "priya")
		user.Phone = "+911234567890"
		user.Location = models.Coordinates{Lat: 28.6, Lng: 77.2}
		if err := store.UpdateUser(ctx, user); err != nil {
			t.Fatalf("UpdateUser failed: %v", err)
		}
		got, _ := store.GetUser(ctx, user.ID)
		if got.Phone != "+911234567890" || got.Location.Lat != 28.6 {
			t.Errorf("Update not applied: %+v", got)
		}

		err := store.UpdateUser(ctx, &models.User{ID: "missing"})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("GetUser not found", func(t *testing.T) {
		if _, err := store.GetUser(ctx, "missing"); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})
}

func TestGroups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	owner := &models.User{Name: "Alice"}
	if err := store.CreateUser(ctx, owner); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	group := &models.Group{
		Name:    "Weekend Warriors",
		Members: []models.User{*owner, {Name: "Bob"}, {Name: "Charlie"}},
	}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if group.ID == "" {
		t.Fatal("Expected group ID to be generated")
	}

	t.Run("GetGroup keeps member order", func(t *testing.T) {
		got, err := store.GetGroup(ctx, group.ID)
		if err != nil {
			t.Fatalf("GetGroup failed: %v", err)
		}
		names := got.MemberNames()
		want := []string{"Alice", "Bob", "Charlie"}
		if len(names) != len(want) {
			t.Fatalf("Expected %v, got %v", want, names)
		}
		for i := range want {
			if names[i] != want[i] {
				t.Errorf("Member %d = %q, want %q", i, names[i], want[i])
			}
		}
		if got.Members[0].ID != owner.ID {
			t.Error("Expected existing user to be reused")
		}
	})

	t.Run("AddGroupMembers appends and skips duplicates", func(t *testing.T) {
		err := store.AddGroupMembers(ctx, group.ID, []models.User{*owner, {Name: "Dana"}})
		if err != nil {
			t.Fatalf("AddGroupMembers failed: %v", err)
		}
		got, _ := store.GetGroup(ctx, group.ID)
		if len(got.Members) != 4 || got.Members[3].Name != "Dana" {
			t.Errorf("Unexpected members %v", got.MemberNames())
		}

		err = store.AddGroupMembers(ctx, "missing", []models.User{{Name: "X"}})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("RemoveGroupMember", func(t *testing.T) {
		if err := store.RemoveGroupMember(ctx, group.ID, owner.ID); err != nil {
			t.Fatalf("RemoveGroupMember failed: %v", err)
		}
		got, _ := store.GetGroup(ctx, group.ID)
		if got.HasMember(owner.ID) {
			t.Error("Expected owner to be removed")
		}
		if err := store.RemoveGroupMember(ctx, group.ID, owner.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
		// The user itself is kept.
		if _, err := store.GetUser(ctx, owner.ID); err != nil {
			t.Errorf("Expected user to survive removal: %v", err)
		}
	})

	t.Run("ListGroups and DeleteGroup", func(t *testing.T) {
		other := &models.Group{Name: "Foodie Crew", Members: []models.User{{Name: "Eve"}}}
		if err := store.CreateGroup(ctx, other); err != nil {
			t.Fatalf("CreateGroup failed: %v", err)
		}

		groups, err := store.ListGroups(ctx)
		if err != nil {
			t.Fatalf("ListGroups failed: %v", err)
		}
		if len(groups) != 2 {
			t.Fatalf("Expected 2 groups, got %d", len(groups))
		}
		for _, g := range groups {
			if len(g.Members) == 0 {
				t.Errorf("Group %s listed without members", g.Name)
			}
		}

		if err := store.DeleteGroup(ctx, other.ID); err != nil {
			t.Fatalf("DeleteGroup failed: %v", err)
		}
		if _, err := store.GetGroup(ctx, other.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}
		if err := store.DeleteGroup(ctx, other.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestItineraries(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := &models.FinalizedItinerary{
		ID:          "it1",
		Destination: models.Suggestion{ID: "s1", Name: "Regal Cinema", Votes: []models.Vote{{UserID: "u1", Emoji: "👍"}}},
		Timeline:    []models.ItineraryActivity{{Time: "7:00 PM", Activity: "Arrive", Description: "Meet up."}},
		Date:        "2026-10-20",
		Group:       &models.Group{ID: "g1", Name: "Weekend Warriors"},
		FinalizedAt: 100,
	}
	second := &models.FinalizedItinerary{ID: "it2", Date: "2026-09-01", FinalizedAt: 200}

	for _, it := range []*models.FinalizedItinerary{first, second} {
		if err := store.SaveItinerary(ctx, "owner", it); err != nil {
			t.Fatalf("SaveItinerary failed: %v", err)
		}
	}
	if err := store.SaveItinerary(ctx, "someone-else", &models.FinalizedItinerary{ID: "it3"}); err != nil {
		t.Fatalf("SaveItinerary failed: %v", err)
	}

	got, err := store.ListItineraries(ctx, "owner")
	if err != nil {
		t.Fatalf("ListItineraries failed: %v", err)
	}
	if len(got) != 2 || got[0].ID != "it1" || got[1].ID != "it2" {
		t.Fatalf("Unexpected itineraries %+v", got)
	}
	if got[0].Destination.Name != "Regal Cinema" || len(got[0].Destination.Votes) != 1 {
		t.Errorf("Destination not round-tripped: %+v", got[0].Destination)
	}
	if got[0].Group == nil || got[0].Group.Name != "Weekend Warriors" {
		t.Errorf("Group not round-tripped: %+v", got[0].Group)
	}

	if err := store.SaveItinerary(ctx, "owner", first); err == nil {
		t.Error("Expected duplicate itinerary ID to fail")
	}
}

func TestSeedDemo(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := store.SeedDemo(ctx); err != nil {
			t.Fatalf("SeedDemo failed: %v", err)
		}
	}

	groups, err := store.ListGroups(ctx)
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("Expected 2 demo groups, got %d", len(groups))
	}

	g1, err := store.GetGroup(ctx, "g1")
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if g1.Name != "Weekend Warriors" || len(g1.Members) != 3 {
		t.Errorf("Unexpected g1 %+v", g1)
	}

	alice, err := store.FindUserByName(ctx, "alice")
	if err != nil || alice == nil || alice.ID != "u1" {
		t.Errorf("Expected seeded Alice, got %+v, %v", alice, err)
	}

	items, err := store.ListItineraries(ctx, DemoUserID)
	if err != nil {
		t.Fatalf("ListItineraries failed: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("Expected 3 demo itineraries after seeding twice, got %d", len(items))
	}
	p := archive.PartitionByDate(items, time.Now())
	if len(p.Past) != 1 || len(p.Upcoming) != 2 {
		t.Errorf("Expected 1 past and 2 upcoming, got %d and %d", len(p.Past), len(p.Upcoming))
	}
	if p.Past[0].Destination.Name != "Pixel Paradise Arcade" || p.Past[0].Group == nil || p.Past[0].Group.ID != "g1" {
		t.Errorf("Unexpected past itinerary %+v", p.Past[0])
	}
}

func TestSeedDemoKeepsExistingArchive(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	own := DemoItineraries(time.Now())[1]
	own.ID = "mine"
	if err := store.SaveItinerary(ctx, DemoUserID, own); err != nil {
		t.Fatalf("SaveItinerary failed: %v", err)
	}
	if err := store.SeedDemo(ctx); err != nil {
		t.Fatalf("SeedDemo failed: %v", err)
	}

	items, err := store.ListItineraries(ctx, DemoUserID)
	if err != nil {
		t.Fatalf("ListItineraries failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != "mine" {
		t.Errorf("Expected only the existing itinerary, got %d", len(items))
	}
}
