package service

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/planbuddy/internal/geo"
	"github.com/mmynk/planbuddy/internal/models"
	"github.com/mmynk/planbuddy/internal/storage"
	"github.com/mmynk/planbuddy/pkg/api"
	"github.com/mmynk/planbuddy/pkg/api/apiconnect"
)

// memberSpread is how far, in degrees, manually added members are placed
// around the user who added them.
const memberSpread = 0.1

// GroupService implements the Connect GroupService
type GroupService struct {
	apiconnect.UnimplementedGroupServiceHandler
	store storage.Store
}

// NewGroupService creates a new GroupService with the given storage backend.
func NewGroupService(store storage.Store) *GroupService {
	return &GroupService{store: store}
}

// resolveMembers turns typed names into users. Known names reuse the
// existing user; new ones get a location near the caller. Blank names,
// repeats and names in skip are dropped.
func (s *GroupService) resolveMembers(ctx context.Context, names []string, near models.Coordinates, skip ...string) ([]models.User, error) {
	seen := make(map[string]bool)
	for _, name := range skip {
		seen[strings.ToLower(name)] = true
	}

	var members []models.User
	for _, name := range names {
		name = strings.TrimSpace(name)
		key := strings.ToLower(name)
		if name == "" || seen[key] {
			continue
		}
		seen[key] = true

		existing, err := s.store.FindUserByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			members = append(members, *existing)
			continue
		}
		members = append(members, models.User{Name: name, Location: geo.Jitter(near, memberSpread)})
	}
	return members, nil
}

// CreateGroup creates a new group with the caller as its first member.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	sess, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.MemberNames),
	)

	name := strings.TrimSpace(req.Msg.Name)
	if name == "" {
		return nil, invalidArgument("group name is required")
	}

	others, err := s.resolveMembers(ctx, req.Msg.MemberNames, sess.User.Location, sess.User.Name)
	if err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, toConnectError(err)
	}

	group := &models.Group{
		Name:    name,
		Members: append([]models.User{sess.User}, others...),
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Group created", "group_id", group.ID, "members", len(group.Members))
	return connect.NewResponse(&api.CreateGroupResponse{Group: group}), nil
}

// GetGroup retrieves a group by ID.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GetGroupResponse], error) {
	slog.Info("GetGroup request received", "group_id", req.Msg.GroupID)

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("GetGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetGroupResponse{Group: group}), nil
}

// ListGroups retrieves all groups.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if groups == nil {
		groups = []*models.Group{}
	}

	slog.Info("ListGroups successful", "count", len(groups))
	return connect.NewResponse(&api.ListGroupsResponse{Groups: groups}), nil
}

// DeleteGroup deletes a group. Active plans keep their group snapshot.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[emptypb.Empty], error) {
	slog.Info("DeleteGroup request received", "group_id", req.Msg.GroupID)

	if err := s.store.DeleteGroup(ctx, req.Msg.GroupID); err != nil {
		slog.Error("DeleteGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	slog.Info("Group deleted", "group_id", req.Msg.GroupID)
	return connect.NewResponse(&emptypb.Empty{}), nil
}

// AddMembers appends members to a group by name.
func (s *GroupService) AddMembers(ctx context.Context, req *connect.Request[api.AddMembersRequest]) (*connect.Response[api.AddMembersResponse], error) {
	sess, err := sessionFrom(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("AddMembers request received", "group_id", req.Msg.GroupID, "members_count", len(req.Msg.MemberNames))

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(err)
	}

	members, err := s.resolveMembers(ctx, req.Msg.MemberNames, sess.User.Location, group.MemberNames()...)
	if err != nil {
		return nil, toConnectError(err)
	}
	if len(members) == 0 {
		return nil, invalidArgument("no new member names given")
	}

	if err := s.store.AddGroupMembers(ctx, group.ID, members); err != nil {
		slog.Error("AddMembers failed", "group_id", group.ID, "error", err)
		return nil, toConnectError(err)
	}

	updated, err := s.store.GetGroup(ctx, group.ID)
	if err != nil {
		return nil, toConnectError(err)
	}
	slog.Info("Members added", "group_id", group.ID, "added", len(members))
	return connect.NewResponse(&api.AddMembersResponse{Group: updated}), nil
}

// RemoveMember removes a user from a group.
func (s *GroupService) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.RemoveMemberResponse], error) {
	slog.Info("RemoveMember request received", "group_id", req.Msg.GroupID, "user_id", req.Msg.UserID)

	if err := s.store.RemoveGroupMember(ctx, req.Msg.GroupID, req.Msg.UserID); err != nil {
		slog.Error("RemoveMember failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	group, err := s.store.GetGroup(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.RemoveMemberResponse{Group: group}), nil
}
