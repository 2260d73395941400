package service

import (
	"github.com/mmynk/planbuddy/internal/geo"
	"github.com/mmynk/planbuddy/internal/models"
	"github.com/mmynk/planbuddy/internal/planner"
	"github.com/mmynk/planbuddy/pkg/api"
)

// planView renders plan for viewer: suggestions ranked by votes with
// distances from the viewer and from every member.
func planView(plan *models.ActivePlan, state planner.State, viewer models.User) *api.PlanView {
	if plan == nil {
		return nil
	}

	var members []models.User
	if plan.Group != nil {
		members = plan.Group.Members
	}

	ranked := planner.RankByVotes(plan.Suggestions)
	suggestions := make([]api.SuggestionView, len(ranked))
	for i, s := range ranked {
		view := api.SuggestionView{
			Suggestion:    s,
			VoteCount:     planner.VoteCount(s),
			DistanceMiles: geo.Distance(viewer.Location, s.Coordinates()),
		}
		if v, ok := s.VoteOf(viewer.ID); ok {
			view.MyVote = v.Emoji
		}
		for _, d := range geo.RankMembers(s.Coordinates(), members) {
			view.MemberDistances = append(view.MemberDistances, api.MemberDistance{
				UserID: d.UserID,
				Name:   d.Name,
				Miles:  d.Miles,
			})
		}
		suggestions[i] = view
	}

	summary := planner.Summarize(plan.Rsvps)
	myRsvp, _ := plan.RsvpOf(viewer.ID)

	return &api.PlanView{
		ID:          plan.ID,
		State:       state.String(),
		Group:       plan.Group,
		Date:        plan.Date,
		Time:        plan.Time,
		Mood:        plan.Mood,
		MovieGenre:  plan.MovieGenre,
		Theme:       plan.Theme,
		Weather:     plan.Weather,
		Suggestions: suggestions,
		Rsvps:       plan.Rsvps,
		RsvpSummary: api.RsvpSummary{
			Going:    summary.Going,
			Maybe:    summary.Maybe,
			NotGoing: summary.NotGoing,
			Pending:  summary.Pending,
		},
		MyRsvp:    string(myRsvp),
		CreatedAt: plan.CreatedAt,
	}
}

func nonNil(items []*models.FinalizedItinerary) []*models.FinalizedItinerary {
	if items == nil {
		return []*models.FinalizedItinerary{}
	}
	return items
}
