package api

import "github.com/mmynk/planbuddy/internal/models"

type CreateGroupRequest struct {
	Name        string   `json:"name"`
	MemberNames []string `json:"member_names"`
}

type CreateGroupResponse struct {
	Group *models.Group `json:"group"`
}

type GetGroupRequest struct {
	GroupID string `json:"group_id"`
}

type GetGroupResponse struct {
	Group *models.Group `json:"group"`
}

type ListGroupsRequest struct{}

type ListGroupsResponse struct {
	Groups []*models.Group `json:"groups"`
}

type DeleteGroupRequest struct {
	GroupID string `json:"group_id"`
}

type AddMembersRequest struct {
	GroupID     string   `json:"group_id"`
	MemberNames []string `json:"member_names"`
}

type AddMembersResponse struct {
	Group *models.Group `json:"group"`
}

type RemoveMemberRequest struct {
	GroupID string `json:"group_id"`
	UserID  string `json:"user_id"`
}

type RemoveMemberResponse struct {
	Group *models.Group `json:"group"`
}
