package generator

import (
	"fmt"
	"strings"
)

func joinOr(items []string, empty string) string {
	if len(items) == 0 {
		return empty
	}
	return strings.Join(items, ", ")
}

func weatherLabel(req SuggestionRequest) string {
	if req.Weather == "" {
		return "Unknown"
	}
	return string(req.Weather)
}

// suggestionPrompt renders the suggestion request as model instructions.
func suggestionPrompt(req SuggestionRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are PlanBuddy, an event planner that suggests fun outings for groups of friends. Every place you suggest MUST be in an Indian city.

Outing details:
- Group: %s
- Members: %s
- Planner location: latitude %.4f, longitude %.4f (prefer places reasonably close to it)
- Interests: %s
- Food: %s
- Budget: %s
- Mood: %s
- Date: %s
- Time: %s
- Weather forecast: %s

Adapt to the weather:
- Rainy: suggest INDOOR activities such as museums, indoor climbing, cozy cafes, arcades or cinemas.
- Sunny: strongly prefer OUTDOOR activities such as parks, hikes, outdoor markets or rooftop bars.
- Cloudy: mix indoor and outdoor options.
`,
		req.GroupName,
		joinOr(req.GroupMembers, "unknown"),
		req.Location.Lat, req.Location.Lng,
		joinOr(req.Interests, "none given"),
		joinOr(req.FoodPreferences, "none given"),
		req.Budget,
		req.Mood,
		req.Date,
		req.Time,
		weatherLabel(req),
	)

	if IsMovieMood(req.Mood) {
		fmt.Fprintf(&b, `
The mood is 'Movie': suggest ONLY cinemas, movie theaters, drive-ins or unique movie-watching venues. No restaurants, bars or parks. The category of every suggestion must be 'Entertainment'. With %s weather, consider whether an indoor cinema or an open-air screening fits better.
`, weatherLabel(req))
		if req.MovieGenre != "" && req.MovieGenre != AnyGenre {
			fmt.Fprintf(&b, `The group wants '%s' movies. Pick theaters likely to show popular Hindi or English films in that genre; a currently popular title in the description is welcome.
`, req.MovieGenre)
		}
	}

	fmt.Fprintf(&b, `
Create a creative theme for the outing and %d to %d specific suggestions. For each one give the name, a one-sentence description, a real location in an Indian city, latitude and longitude, a category (one of 'Food', 'Entertainment', 'Outdoors', 'Nightlife', 'Creative'), a per-person budget in INR (budgetINR) and a 0-5 rating of how well it suits the group and mood. Respond with JSON only.`,
		MinSuggestions, MaxSuggestions)

	return b.String()
}

// itineraryPrompt renders the finalized choice as model instructions.
func itineraryPrompt(req ItineraryRequest) string {
	groupName := ""
	var members []string
	if req.Group != nil {
		groupName = req.Group.Name
		members = req.Group.MemberNames()
	}

	return fmt.Sprintf(`You are an event planner. A group of friends has picked an outing; build a detailed, timed itinerary for it.

Chosen outing:
- Name: %s
- Description: %s
- Location: %s

Group and timing:
- Group: %s (%s)
- Date: %s
- Start time: %s
- Mood: %s

Build a step-by-step timeline starting at the start time and lasting about 3 to 4 hours. Steps must be in order and must not overlap. For each step give a time label such as '7:00 PM', the activity or place name, and a short description including when the group arrives. Respond with JSON only.`,
		req.Suggestion.Name,
		req.Suggestion.Description,
		req.Suggestion.Location,
		groupName, joinOr(members, "unknown"),
		req.Date,
		req.StartTime,
		req.Mood,
	)
}

// chatInstruction describes the user, their groups, the active plan and an
// optional live location to the assistant.
func chatInstruction(req ChatRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are %q, a friendly and helpful assistant for the PlanBuddy app. Give concise, useful answers about outing plans.
The current user is %s.
The user's groups:
`, AssistantName, req.UserName)
	if len(req.Groups) == 0 {
		b.WriteString("- none yet\n")
	}
	for _, g := range req.Groups {
		fmt.Fprintf(&b, "- %s: members are %s\n", g.Name, joinOr(g.MemberNames(), "nobody"))
	}

	if p := req.Plan; p != nil {
		groupName := ""
		if p.Group != nil {
			groupName = p.Group.Name
		}
		places := make([]string, len(p.Suggestions))
		for i, s := range p.Suggestions {
			places[i] = fmt.Sprintf("%s at %s (Budget: ₹%.0f)", s.Name, s.Location, s.Budget)
		}
		fmt.Fprintf(&b, `
An active plan is being considered:
- Theme: %s
- For group: %s
- Date: %s
- Suggestions: %s.
You can answer questions about distances to these places for different group members, details about the places, budget and similar.
`, p.Theme, groupName, p.Date, joinOr(places, "none"))
	} else {
		b.WriteString("\nThere is no active plan right now. Help the user brainstorm ideas or answer general questions about their groups.\n")
	}

	if req.Location != nil {
		fmt.Fprintf(&b, "\nThe user is sharing their live location: latitude %.4f, longitude %.4f. Prefer it for real-time, location-specific questions such as what is nearby.\n",
			req.Location.Lat, req.Location.Lng)
	}

	b.WriteString("\nDo not make up information you don't have. Be conversational and friendly.")
	return b.String()
}

// ChatGreeting is the assistant's opening line for a user.
func ChatGreeting(userName string) string {
	return fmt.Sprintf("Hi %s! I'm the %s. How can I help you plan your next adventure?", userName, AssistantName)
}
