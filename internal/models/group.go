package models

import "strings"

// Group represents a reusable, ordered list of members.
//
// Member IDs are assumed unique within a group; callers adding members are
// responsible for that, the group itself does not enforce it.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Weekend Warriors").
	Name string `json:"name"`

	// Members is the ordered list of users in this group.
	Members []User `json:"members"`

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64 `json:"created_at"`
}

// MemberNames returns the member names in group order.
func (g *Group) MemberNames() []string {
	names := make([]string, len(g.Members))
	for i, m := range g.Members {
		names[i] = m.Name
	}
	return names
}

// HasMember reports whether a user with the given ID belongs to the group.
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

// FindMemberByName returns the first member whose name matches
// case-insensitively.
func (g *Group) FindMemberByName(name string) (User, bool) {
	for _, m := range g.Members {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return User{}, false
}

// Clone returns a deep copy of the group.
func (g *Group) Clone() *Group {
	if g == nil {
		return nil
	}
	c := *g
	c.Members = append([]User(nil), g.Members...)
	return &c
}
