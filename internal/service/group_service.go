package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/memoryboard/internal/board"
	"github.com/mmynk/memoryboard/internal/middleware"
	"github.com/mmynk/memoryboard/pkg/api"
)

// Ensure GroupService implements the handler interface
var _ api.GroupServiceHandler = (*GroupService)(nil)

// GroupService implements the Connect GroupService
type GroupService struct {
	board *board.Service
}

// NewGroupService creates a new GroupService backed by the board.
func NewGroupService(b *board.Service) *GroupService {
	return &GroupService{board: b}
}

// CreateGroup creates a new group.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.CreateGroupResponse], error) {
	slog.Info("CreateGroup request received",
		"name", req.Msg.Name,
		"public", req.Msg.IsPublic,
	)

	group, err := s.board.CreateGroup(ctx, board.CreateGroupInput{
		Name:         req.Msg.Name,
		Secret:       req.Msg.Secret,
		ImageURL:     req.Msg.ImageURL,
		IsPublic:     req.Msg.IsPublic,
		Introduction: req.Msg.Introduction,
	})
	if err != nil {
		slog.Error("CreateGroup failed", "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.CreateGroupResponse{Group: groupViewToAPI(group)}), nil
}

// ListGroups returns one page of groups.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	slog.Info("ListGroups request received",
		"page", req.Msg.Page,
		"sort", req.Msg.SortBy,
		"keyword", req.Msg.Keyword,
	)

	res, err := s.board.ListGroups(ctx, board.GroupQuery{
		Page:     req.Msg.Page,
		PageSize: req.Msg.PageSize,
		Sort:     req.Msg.SortBy,
		Keyword:  req.Msg.Keyword,
		IsPublic: req.Msg.IsPublic,
	})
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, connectError(err)
	}

	groups := make([]*api.Group, len(res.Data))
	for i, g := range res.Data {
		groups[i] = groupSummaryToAPI(g)
	}

	slog.Info("ListGroups successful", "count", len(groups), "total", res.TotalItemCount)

	return connect.NewResponse(&api.ListGroupsResponse{
		PageInfo: pageInfo(res),
		Data:     groups,
	}), nil
}

// GetGroupDetail returns a group with its posts.
func (s *GroupService) GetGroupDetail(ctx context.Context, req *connect.Request[api.GetGroupDetailRequest]) (*connect.Response[api.GetGroupDetailResponse], error) {
	slog.Info("GetGroupDetail request received", "group_id", req.Msg.GroupID)

	detail, err := s.board.GetGroupDetail(ctx, req.Msg.GroupID, req.Msg.Secret, middleware.GetPass(ctx))
	if err != nil {
		slog.Error("GetGroupDetail failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, connectError(err)
	}

	posts := make([]*api.Post, len(detail.Posts))
	for i, p := range detail.Posts {
		posts[i] = postSummaryToAPI(p)
	}

	return connect.NewResponse(&api.GetGroupDetailResponse{
		Group: groupViewToAPI(&detail.GroupView),
		Posts: posts,
	}), nil
}

// UpdateGroup updates an existing group.
func (s *GroupService) UpdateGroup(ctx context.Context, req *connect.Request[api.UpdateGroupRequest]) (*connect.Response[api.UpdateGroupResponse], error) {
	slog.Info("UpdateGroup request received", "group_id", req.Msg.GroupID)

	group, err := s.board.UpdateGroup(ctx, req.Msg.GroupID, board.UpdateGroupInput{
		Secret:       req.Msg.Secret,
		Name:         req.Msg.Name,
		ImageURL:     req.Msg.ImageURL,
		IsPublic:     req.Msg.IsPublic,
		Introduction: req.Msg.Introduction,
		NewSecret:    req.Msg.NewSecret,
	})
	if err != nil {
		slog.Error("UpdateGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.UpdateGroupResponse{Group: groupViewToAPI(group)}), nil
}

// DeleteGroup removes a group together with its posts and comments.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	slog.Info("DeleteGroup request received", "group_id", req.Msg.GroupID)

	if err := s.board.DeleteGroup(ctx, req.Msg.GroupID, req.Msg.Secret); err != nil {
		slog.Error("DeleteGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

// LikeGroup adds one like to a group.
func (s *GroupService) LikeGroup(ctx context.Context, req *connect.Request[api.LikeGroupRequest]) (*connect.Response[api.LikeGroupResponse], error) {
	slog.Info("LikeGroup request received", "group_id", req.Msg.GroupID)

	likes, err := s.board.LikeGroup(ctx, req.Msg.GroupID)
	if err != nil {
		slog.Error("LikeGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.LikeGroupResponse{LikeCount: likes}), nil
}

// IsGroupPublic reports the visibility of a group.
func (s *GroupService) IsGroupPublic(ctx context.Context, req *connect.Request[api.IsGroupPublicRequest]) (*connect.Response[api.IsGroupPublicResponse], error) {
	public, err := s.board.IsGroupPublic(ctx, req.Msg.GroupID)
	if err != nil {
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.IsGroupPublicResponse{ID: req.Msg.GroupID, IsPublic: public}), nil
}

// VerifyGroupSecret checks a group secret and hands out an access pass on a match.
func (s *GroupService) VerifyGroupSecret(ctx context.Context, req *connect.Request[api.VerifyGroupSecretRequest]) (*connect.Response[api.VerifyGroupSecretResponse], error) {
	slog.Info("VerifyGroupSecret request received", "group_id", req.Msg.GroupID)

	res, err := s.board.VerifyGroupSecret(ctx, req.Msg.GroupID, req.Msg.Secret)
	if err != nil {
		slog.Error("VerifyGroupSecret failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, connectError(err)
	}

	resp := &api.VerifyGroupSecretResponse{Matched: res.Matched}
	if res.Matched {
		resp.AccessPass = res.Pass
		resp.ExpiresAt = &res.ExpiresAt
	}

	slog.Info("VerifyGroupSecret done", "group_id", req.Msg.GroupID, "matched", res.Matched)

	return connect.NewResponse(resp), nil
}
