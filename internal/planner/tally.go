package planner

import (
	"sort"

	"github.com/mmynk/planbuddy/internal/models"
)

// VoteCount is the number of votes on s regardless of emoji.
func VoteCount(s models.Suggestion) int {
	return len(s.Votes)
}

// SelectWinner returns the suggestion with the most votes.
// Ties go to the suggestion listed first.
func SelectWinner(suggestions []models.Suggestion) (models.Suggestion, bool) {
	if len(suggestions) == 0 {
		return models.Suggestion{}, false
	}
	best := 0
	for i := 1; i < len(suggestions); i++ {
		if VoteCount(suggestions[i]) > VoteCount(suggestions[best]) {
			best = i
		}
	}
	return suggestions[best], true
}

// RankByVotes returns a copy of suggestions in descending vote order.
// Suggestions with equal votes keep their relative order.
func RankByVotes(suggestions []models.Suggestion) []models.Suggestion {
	out := make([]models.Suggestion, len(suggestions))
	copy(out, suggestions)
	sort.SliceStable(out, func(i, j int) bool {
		return VoteCount(out[i]) > VoteCount(out[j])
	})
	return out
}

// RsvpSummary counts RSVP entries per status.
type RsvpSummary struct {
	Going    int
	Maybe    int
	NotGoing int
	Pending  int
}

// Summarize tallies rsvps.
func Summarize(rsvps []models.Rsvp) RsvpSummary {
	var s RsvpSummary
	for _, r := range rsvps {
		switch r.Status {
		case models.RsvpGoing:
			s.Going++
		case models.RsvpMaybe:
			s.Maybe++
		case models.RsvpNotGoing:
			s.NotGoing++
		default:
			s.Pending++
		}
	}
	return s
}
