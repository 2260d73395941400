// Package models defines the core domain models for PlanBuddy.
//
// # Models
//
//   - User: a person who can log in or be added to a group by name
//   - Profile: the planning preferences of the logged-in user
//   - Group: a reusable, ordered list of members
//   - Suggestion: one candidate venue or activity proposed for a plan
//   - Vote: an emoji-tagged vote cast by one user on one suggestion
//   - Rsvp: a member's attendance intent for the active plan
//   - ActivePlan: the single in-progress outing proposal of a session
//   - FinalizedItinerary: an immutable record of a finalized plan
//
// # Design Principles
//
// 1. **Plain values**: plans hold copies of groups and suggestions, never shared pointers
// 2. **Generated identity**: suggestions are addressed by an ID assigned at ingestion, not by name
// 3. **Immutability after finalization**: a FinalizedItinerary is never mutated once created
// 4. **Clone before exposing**: callers outside the planner only ever see deep copies
package models
