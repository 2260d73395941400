package planner

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/planbuddy/internal/generator"
	"github.com/mmynk/planbuddy/internal/metrics"
	"github.com/mmynk/planbuddy/internal/models"
	"github.com/mmynk/planbuddy/internal/weather"
)

type memArchive struct {
	mu    sync.Mutex
	items []*models.FinalizedItinerary
	err   error
}

func (a *memArchive) Append(_ context.Context, it *models.FinalizedItinerary) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return a.err
	}
	a.items = append(a.items, it)
	return nil
}

func (a *memArchive) len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.items)
}

// stubBackend wraps the fixture and can fail or block either call.
type stubBackend struct {
	*generator.Fixture
	suggestErr   error
	itineraryErr error
	block        chan struct{}
	started      chan struct{}
	lastRequest  generator.SuggestionRequest

	itineraryBlock   chan struct{}
	itineraryStarted chan struct{}
}

func (b *stubBackend) Suggest(ctx context.Context, req generator.SuggestionRequest) (*generator.SuggestionResponse, error) {
	b.lastRequest = req
	if b.started != nil {
		close(b.started)
	}
	if b.block != nil {
		<-b.block
	}
	if b.suggestErr != nil {
		return nil, b.suggestErr
	}
	return b.Fixture.Suggest(ctx, req)
}

func (b *stubBackend) Itinerary(ctx context.Context, req generator.ItineraryRequest) (*generator.ItineraryResponse, error) {
	if b.itineraryStarted != nil {
		close(b.itineraryStarted)
	}
	if b.itineraryBlock != nil {
		<-b.itineraryBlock
	}
	if b.itineraryErr != nil {
		return nil, b.itineraryErr
	}
	return b.Fixture.Itinerary(ctx, req)
}

func testGroup(n int) *models.Group {
	g := &models.Group{ID: "g1", Name: "Weekend Warriors"}
	for i := 0; i < n; i++ {
		id := string(rune('a' + i))
		g.Members = append(g.Members, models.User{ID: id, Name: "User " + id})
	}
	return g
}

func newTestMachine(b generator.Backend, a Archive, m *metrics.Metrics) *Machine {
	return New(Deps{
		Backend:    b,
		Forecaster: weather.Fixed{Weather: models.WeatherSunny},
		Archive:    a,
		Metrics:    m,
	})
}

func createRequest(g *models.Group) CreateRequest {
	return CreateRequest{
		Group:     g,
		Date:      "2026-10-20",
		Time:      "19:00",
		Mood:      "Adventurous",
		Profile:   models.DefaultProfile(),
		Requester: g.Members[0],
	}
}

func mustCreate(t *testing.T, m *Machine, g *models.Group) *models.ActivePlan {
	t.Helper()
	plan, err := m.CreatePlan(context.Background(), createRequest(g))
	if err != nil {
		t.Fatalf("CreatePlan() error = %v", err)
	}
	return plan
}

func TestCreatePlanInitializesRsvps(t *testing.T) {
	for _, n := range []int{1, 3, 7} {
		m := newTestMachine(&stubBackend{Fixture: generator.NewFixture()}, &memArchive{}, nil)
		plan := mustCreate(t, m, testGroup(n))

		if len(plan.Rsvps) != n {
			t.Fatalf("group of %d: expected %d rsvps, got %d", n, n, len(plan.Rsvps))
		}
		for _, r := range plan.Rsvps {
			if r.Status != models.RsvpPending {
				t.Errorf("rsvp for %s = %q, want pending", r.UserID, r.Status)
			}
		}
		for _, s := range plan.Suggestions {
			if len(s.Votes) != 0 {
				t.Errorf("suggestion %q starts with %d votes", s.Name, len(s.Votes))
			}
		}
		if plan.Weather != models.WeatherSunny {
			t.Errorf("Weather = %q, want Sunny", plan.Weather)
		}
		if m.State() != Active {
			t.Errorf("State() = %v, want active", m.State())
		}
	}
}

func TestCreatePlanValidation(t *testing.T) {
	m := newTestMachine(&stubBackend{Fixture: generator.NewFixture()}, &memArchive{}, nil)

	if _, err := m.CreatePlan(context.Background(), CreateRequest{}); !errors.Is(err, ErrInvalidGroup) {
		t.Errorf("nil group: expected ErrInvalidGroup, got %v", err)
	}
	if _, err := m.CreatePlan(context.Background(), CreateRequest{Group: &models.Group{ID: "empty"}}); !errors.Is(err, ErrInvalidGroup) {
		t.Errorf("empty group: expected ErrInvalidGroup, got %v", err)
	}
}

func TestCreatePlanFailureKeepsPreviousState(t *testing.T) {
	backend := &stubBackend{Fixture: generator.NewFixture()}
	m := newTestMachine(backend, &memArchive{}, nil)
	g := testGroup(2)
	first := mustCreate(t, m, g)

	backend.suggestErr = errors.New("service down")
	if _, err := m.CreatePlan(context.Background(), createRequest(g)); !errors.Is(err, ErrNoSuggestions) {
		t.Fatalf("expected ErrNoSuggestions, got %v", err)
	}
	if got := m.Plan(); got == nil || got.ID != first.ID {
		t.Errorf("expected previous plan to survive the failure")
	}

	fresh := newTestMachine(backend, &memArchive{}, nil)
	if _, err := fresh.CreatePlan(context.Background(), createRequest(g)); err == nil {
		t.Fatal("expected error")
	}
	if fresh.Plan() != nil || fresh.State() != NoPlan {
		t.Errorf("expected no plan after failed creation, state %v", fresh.State())
	}
}

func TestCreatePlanWeatherFailureDoesNotBlock(t *testing.T) {
	backend := &stubBackend{Fixture: generator.NewFixture()}
	m := New(Deps{
		Backend:    backend,
		Forecaster: weather.Fixed{Err: errors.New("no forecast")},
		Archive:    &memArchive{},
	})

	plan := mustCreate(t, m, testGroup(2))
	if plan.Weather != models.WeatherUnknown {
		t.Errorf("Weather = %q, want empty", plan.Weather)
	}
	if backend.lastRequest.Weather != models.WeatherUnknown {
		t.Errorf("generator got weather %q, want empty", backend.lastRequest.Weather)
	}
}

func TestConcurrentCreateRejected(t *testing.T) {
	reg := prometheus.NewRegistry()
	met := metrics.New(reg)
	backend := &stubBackend{
		Fixture: generator.NewFixture(),
		block:   make(chan struct{}),
		started: make(chan struct{}),
	}
	m := newTestMachine(backend, &memArchive{}, met)
	g := testGroup(2)

	done := make(chan error, 1)
	go func() {
		_, err := m.CreatePlan(context.Background(), createRequest(g))
		done <- err
	}()
	<-backend.started

	if m.State() != Drafting {
		t.Errorf("State() = %v, want drafting", m.State())
	}
	if _, err := m.CreatePlan(context.Background(), createRequest(g)); !errors.Is(err, ErrGenerationInFlight) {
		t.Errorf("expected ErrGenerationInFlight, got %v", err)
	}
	if _, err := m.Finalize(context.Background()); !errors.Is(err, ErrGenerationInFlight) {
		t.Errorf("expected finalize to be rejected while drafting, got %v", err)
	}

	close(backend.block)
	if err := <-done; err != nil {
		t.Fatalf("first CreatePlan() error = %v", err)
	}
	if got := testutil.ToFloat64(met.PlanRejected.WithLabelValues("create_plan")); got != 1 {
		t.Errorf("rejected counter = %v, want 1", got)
	}
}

func TestConcurrentFinalizeRejected(t *testing.T) {
	reg := prometheus.NewRegistry()
	met := metrics.New(reg)
	backend := &stubBackend{
		Fixture:          generator.NewFixture(),
		itineraryBlock:   make(chan struct{}),
		itineraryStarted: make(chan struct{}),
	}
	archive := &memArchive{}
	m := newTestMachine(backend, archive, met)
	g := testGroup(3)
	plan := mustCreate(t, m, g)
	winner := plan.Suggestions[2]
	m.Vote("a", winner.ID, "🔥")
	m.Vote("b", winner.ID, "🎉")

	done := make(chan *models.FinalizedItinerary, 1)
	go func() {
		it, err := m.Finalize(context.Background())
		if err != nil {
			t.Errorf("first Finalize() error = %v", err)
		}
		done <- it
	}()
	<-backend.itineraryStarted

	if m.State() != Finalizing {
		t.Errorf("State() = %v, want finalizing", m.State())
	}
	if _, err := m.Finalize(context.Background()); !errors.Is(err, ErrFinalizationInFlight) {
		t.Errorf("second Finalize(): expected ErrFinalizationInFlight, got %v", err)
	}
	if _, err := m.CreatePlan(context.Background(), createRequest(g)); !errors.Is(err, ErrFinalizationInFlight) {
		t.Errorf("CreatePlan(): expected ErrFinalizationInFlight, got %v", err)
	}

	close(backend.itineraryBlock)
	it := <-done
	if it == nil || it.Destination.ID != winner.ID {
		t.Fatalf("expected %q to win, got %+v", winner.Name, it)
	}
	if archive.len() != 1 {
		t.Errorf("archive has %d entries, want 1", archive.len())
	}
	if m.Plan() != nil {
		t.Error("expected no active plan after finalize")
	}
	if m.State() != NoPlan {
		t.Errorf("State() = %v, want no-plan", m.State())
	}
	if got := testutil.ToFloat64(met.PlanRejected.WithLabelValues("finalize")); got != 1 {
		t.Errorf("finalize rejected counter = %v, want 1", got)
	}
	if got := testutil.ToFloat64(met.PlanRejected.WithLabelValues("create_plan")); got != 1 {
		t.Errorf("create_plan rejected counter = %v, want 1", got)
	}
}

// A rejection names the operation that holds the slot, also at the edges
// of that operation.
func TestRejectionNamesRunningOperation(t *testing.T) {
	g := testGroup(2)
	for i := 0; i < 200; i++ {
		m := newTestMachine(&stubBackend{Fixture: generator.NewFixture()}, &memArchive{}, nil)
		mustCreate(t, m, g)

		var wg sync.WaitGroup
		var createErr, finalizeErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, finalizeErr = m.Finalize(context.Background())
		}()
		go func() {
			defer wg.Done()
			_, createErr = m.CreatePlan(context.Background(), createRequest(g))
		}()
		wg.Wait()

		if createErr != nil && !errors.Is(createErr, ErrFinalizationInFlight) {
			t.Fatalf("iteration %d: CreatePlan() rejected with %v, want ErrFinalizationInFlight", i, createErr)
		}
		if finalizeErr != nil && !errors.Is(finalizeErr, ErrGenerationInFlight) {
			t.Fatalf("iteration %d: Finalize() rejected with %v, want ErrGenerationInFlight", i, finalizeErr)
		}
	}
}

func TestVoteToggleAndReplace(t *testing.T) {
	m := newTestMachine(&stubBackend{Fixture: generator.NewFixture()}, &memArchive{}, nil)
	plan := mustCreate(t, m, testGroup(2))
	cafe := plan.Suggestions[1].ID

	votesFor := func(userID string) []models.Vote {
		var out []models.Vote
		for _, v := range m.Plan().Suggestion(cafe).Votes {
			if v.UserID == userID {
				out = append(out, v)
			}
		}
		return out
	}

	if got := m.Vote("a", cafe, "👍"); got != VoteAdded {
		t.Errorf("first vote = %v, want added", got)
	}
	if got := m.Vote("a", cafe, "👍"); got != VoteRemoved {
		t.Errorf("repeat vote = %v, want removed", got)
	}
	if len(votesFor("a")) != 0 {
		t.Fatalf("expected toggle-off, got %v", votesFor("a"))
	}

	m.Vote("a", cafe, "👍")
	if got := m.Vote("a", cafe, "🔥"); got != VoteReplaced {
		t.Errorf("different emoji = %v, want replaced", got)
	}
	if v := votesFor("a"); len(v) != 1 || v[0].Emoji != "🔥" {
		t.Errorf("expected single 🔥 vote, got %v", v)
	}

	// Independent votes on another suggestion.
	m.Vote("a", plan.Suggestions[0].ID, "👍")
	if n := VoteCount(*m.Plan().Suggestion(plan.Suggestions[0].ID)); n != 1 {
		t.Errorf("expected 1 vote on first suggestion, got %d", n)
	}
}

func TestVoteNoOps(t *testing.T) {
	m := newTestMachine(&stubBackend{Fixture: generator.NewFixture()}, &memArchive{}, nil)
	if got := m.Vote("a", "x", "👍"); got != VoteIgnored {
		t.Errorf("vote without plan = %v, want ignored", got)
	}

	plan := mustCreate(t, m, testGroup(2))
	if got := m.Vote("", plan.Suggestions[0].ID, "👍"); got != VoteIgnored {
		t.Errorf("vote without user = %v, want ignored", got)
	}
	if got := m.Vote("a", "no-such-id", "👍"); got != VoteIgnored {
		t.Errorf("vote on unknown suggestion = %v, want ignored", got)
	}
	if got := m.Vote("a", plan.Suggestions[0].Name, "👍"); got != VoteIgnored {
		t.Errorf("vote by name = %v, want ignored", got)
	}
}

func TestRsvpUpsertIsIdempotent(t *testing.T) {
	m := newTestMachine(&stubBackend{Fixture: generator.NewFixture()}, &memArchive{}, nil)

	if ok, err := m.Rsvp("a", models.RsvpGoing); ok || err != nil {
		t.Errorf("rsvp without plan = %v, %v; want false, nil", ok, err)
	}

	mustCreate(t, m, testGroup(3))
	for i := 0; i < 2; i++ {
		if ok, err := m.Rsvp("a", models.RsvpGoing); !ok || err != nil {
			t.Fatalf("Rsvp() = %v, %v", ok, err)
		}
	}

	plan := m.Plan()
	if len(plan.Rsvps) != 3 {
		t.Fatalf("expected 3 rsvps, got %d", len(plan.Rsvps))
	}
	if st, _ := plan.RsvpOf("a"); st != models.RsvpGoing {
		t.Errorf("status = %q, want going", st)
	}

	// A user outside the group is appended.
	m.Rsvp("z", models.RsvpMaybe)
	if n := len(m.Plan().Rsvps); n != 4 {
		t.Errorf("expected 4 rsvps after outsider rsvp, got %d", n)
	}

	if _, err := m.Rsvp("a", "sometimes"); !errors.Is(err, ErrInvalidRsvp) {
		t.Errorf("expected ErrInvalidRsvp, got %v", err)
	}

	s := Summarize(m.Plan().Rsvps)
	if s != (RsvpSummary{Going: 1, Maybe: 1, Pending: 2}) {
		t.Errorf("Summarize() = %+v", s)
	}
}

func TestFinalizePicksMostVoted(t *testing.T) {
	archive := &memArchive{}
	m := newTestMachine(&stubBackend{Fixture: generator.NewFixture()}, archive, nil)
	plan := mustCreate(t, m, testGroup(6))
	a, b, c := plan.Suggestions[0].ID, plan.Suggestions[1].ID, plan.Suggestions[2].ID

	for _, u := range []string{"a", "b"} {
		m.Vote(u, a, "👍")
	}
	for _, u := range []string{"c", "d", "e"} {
		m.Vote(u, b, "❤️")
	}
	m.Vote("f", c, "🔥")

	ranked := RankByVotes(m.Plan().Suggestions)
	if ranked[0].ID != b || ranked[1].ID != a || ranked[2].ID != c {
		t.Errorf("unexpected ranking %v, %v, %v", ranked[0].Name, ranked[1].Name, ranked[2].Name)
	}

	it, err := m.Finalize(context.Background())
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if it.Destination.ID != b {
		t.Errorf("winner = %q, want %q", it.Destination.Name, plan.Suggestions[1].Name)
	}
	if len(it.Destination.Votes) != 3 {
		t.Errorf("destination snapshot has %d votes, want 3", len(it.Destination.Votes))
	}
}

func TestSelectWinnerTieGoesToFirst(t *testing.T) {
	suggestions := []models.Suggestion{
		{ID: "1", Votes: []models.Vote{{UserID: "a"}}},
		{ID: "2", Votes: []models.Vote{{UserID: "b"}, {UserID: "c"}}},
		{ID: "3", Votes: []models.Vote{{UserID: "d"}, {UserID: "e"}}},
	}
	w, ok := SelectWinner(suggestions)
	if !ok || w.ID != "2" {
		t.Errorf("SelectWinner() = %q, want 2", w.ID)
	}
	if _, ok := SelectWinner(nil); ok {
		t.Error("expected no winner for empty list")
	}
}

func TestEndToEnd(t *testing.T) {
	archive := &memArchive{}
	m := newTestMachine(&stubBackend{Fixture: generator.NewFixture()}, archive, nil)
	plan := mustCreate(t, m, testGroup(3))

	if len(plan.Rsvps) != 3 {
		t.Fatalf("expected 3 rsvps, got %d", len(plan.Rsvps))
	}
	x, y := plan.Suggestions[2], plan.Suggestions[0]
	m.Vote("a", x.ID, "👍")
	m.Vote("b", x.ID, "👍")
	m.Vote("c", y.ID, "👍")

	it, err := m.Finalize(context.Background())
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if archive.len() != 1 {
		t.Fatalf("expected 1 archived itinerary, got %d", archive.len())
	}
	if archive.items[0].Destination.Name != x.Name || it.Destination.Name != x.Name {
		t.Errorf("destination = %q, want %q", archive.items[0].Destination.Name, x.Name)
	}
	if m.Plan() != nil {
		t.Error("expected active plan to be cleared")
	}
	if m.State() != NoPlan {
		t.Errorf("State() = %v, want no-plan", m.State())
	}
	if jf := m.JustFinalized(); jf == nil || jf.ID != it.ID {
		t.Error("expected just-finalized itinerary")
	}
	if len(it.Timeline) == 0 || it.Date != plan.Date || it.Group.ID != plan.Group.ID {
		t.Errorf("unexpected itinerary %+v", it)
	}

	// A new plan clears the just-finalized view.
	mustCreate(t, m, testGroup(3))
	if m.JustFinalized() != nil {
		t.Error("expected just-finalized view to clear on new plan")
	}
}

func TestFinalizeFailureRestoresActive(t *testing.T) {
	archive := &memArchive{}
	backend := &stubBackend{Fixture: generator.NewFixture(), itineraryErr: errors.New("timeout")}
	m := newTestMachine(backend, archive, nil)
	plan := mustCreate(t, m, testGroup(2))
	m.Vote("a", plan.Suggestions[0].ID, "👍")
	m.Rsvp("b", models.RsvpGoing)

	if _, err := m.Finalize(context.Background()); !errors.Is(err, ErrItineraryUnavailable) {
		t.Fatalf("expected ErrItineraryUnavailable, got %v", err)
	}
	if m.State() != Active {
		t.Errorf("State() = %v, want active", m.State())
	}
	got := m.Plan()
	if got == nil || got.ID != plan.ID {
		t.Fatal("expected plan to survive failed finalize")
	}
	if VoteCount(*got.Suggestion(plan.Suggestions[0].ID)) != 1 {
		t.Error("expected votes to survive failed finalize")
	}
	if st, _ := got.RsvpOf("b"); st != models.RsvpGoing {
		t.Error("expected rsvps to survive failed finalize")
	}
	if archive.len() != 0 {
		t.Error("expected nothing archived")
	}

	archive.err = errors.New("disk full")
	backend.itineraryErr = nil
	if _, err := m.Finalize(context.Background()); err == nil {
		t.Fatal("expected archive error")
	}
	if m.Plan() == nil {
		t.Error("expected plan to survive archive failure")
	}
}

func TestFinalizeWithoutPlan(t *testing.T) {
	m := newTestMachine(&stubBackend{Fixture: generator.NewFixture()}, &memArchive{}, nil)
	it, err := m.Finalize(context.Background())
	if it != nil || err != nil {
		t.Errorf("Finalize() = %v, %v; want nil, nil", it, err)
	}
}

func TestDiscard(t *testing.T) {
	archive := &memArchive{}
	m := newTestMachine(&stubBackend{Fixture: generator.NewFixture()}, archive, nil)
	if m.Discard() {
		t.Error("expected Discard() = false without plan")
	}

	mustCreate(t, m, testGroup(2))
	if _, err := m.Finalize(context.Background()); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	mustCreate(t, m, testGroup(2))
	m.DismissFinalized()

	if !m.Discard() {
		t.Error("expected Discard() = true with plan")
	}
	if m.Plan() != nil || m.State() != NoPlan {
		t.Error("expected plan cleared")
	}
}
