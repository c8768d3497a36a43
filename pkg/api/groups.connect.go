package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// GroupServiceName is the fully-qualified name of the GroupService.
const GroupServiceName = ServiceVersion + "GroupService"

// Procedure names, usable as HTTP routes.
const (
	GroupServiceCreateGroupProcedure       = "/" + GroupServiceName + "/CreateGroup"
	GroupServiceListGroupsProcedure        = "/" + GroupServiceName + "/ListGroups"
	GroupServiceGetGroupDetailProcedure    = "/" + GroupServiceName + "/GetGroupDetail"
	GroupServiceUpdateGroupProcedure       = "/" + GroupServiceName + "/UpdateGroup"
	GroupServiceDeleteGroupProcedure       = "/" + GroupServiceName + "/DeleteGroup"
	GroupServiceLikeGroupProcedure         = "/" + GroupServiceName + "/LikeGroup"
	GroupServiceIsGroupPublicProcedure     = "/" + GroupServiceName + "/IsGroupPublic"
	GroupServiceVerifyGroupSecretProcedure = "/" + GroupServiceName + "/VerifyGroupSecret"
)

// GroupServiceHandler is implemented by the server side of the GroupService.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error)
	ListGroups(context.Context, *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error)
	GetGroupDetail(context.Context, *connect.Request[GetGroupDetailRequest]) (*connect.Response[GetGroupDetailResponse], error)
	UpdateGroup(context.Context, *connect.Request[UpdateGroupRequest]) (*connect.Response[UpdateGroupResponse], error)
	DeleteGroup(context.Context, *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteGroupResponse], error)
	LikeGroup(context.Context, *connect.Request[LikeGroupRequest]) (*connect.Response[LikeGroupResponse], error)
	IsGroupPublic(context.Context, *connect.Request[IsGroupPublicRequest]) (*connect.Response[IsGroupPublicResponse], error)
	VerifyGroupSecret(context.Context, *connect.Request[VerifyGroupSecretRequest]) (*connect.Response[VerifyGroupSecretResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	createGroupHandler := connect.NewUnaryHandler(GroupServiceCreateGroupProcedure, svc.CreateGroup, opts...)
	listGroupsHandler := connect.NewUnaryHandler(GroupServiceListGroupsProcedure, svc.ListGroups, opts...)
	getGroupDetailHandler := connect.NewUnaryHandler(GroupServiceGetGroupDetailProcedure, svc.GetGroupDetail, opts...)
	updateGroupHandler := connect.NewUnaryHandler(GroupServiceUpdateGroupProcedure, svc.UpdateGroup, opts...)
	deleteGroupHandler := connect.NewUnaryHandler(GroupServiceDeleteGroupProcedure, svc.DeleteGroup, opts...)
	likeGroupHandler := connect.NewUnaryHandler(GroupServiceLikeGroupProcedure, svc.LikeGroup, opts...)
	isGroupPublicHandler := connect.NewUnaryHandler(GroupServiceIsGroupPublicProcedure, svc.IsGroupPublic, opts...)
	verifyGroupSecretHandler := connect.NewUnaryHandler(GroupServiceVerifyGroupSecretProcedure, svc.VerifyGroupSecret, opts...)
	return "/" + GroupServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case GroupServiceCreateGroupProcedure:
			createGroupHandler.ServeHTTP(w, r)
		case GroupServiceListGroupsProcedure:
			listGroupsHandler.ServeHTTP(w, r)
		case GroupServiceGetGroupDetailProcedure:
			getGroupDetailHandler.ServeHTTP(w, r)
		case GroupServiceUpdateGroupProcedure:
			updateGroupHandler.ServeHTTP(w, r)
		case GroupServiceDeleteGroupProcedure:
			deleteGroupHandler.ServeHTTP(w, r)
		case GroupServiceLikeGroupProcedure:
			likeGroupHandler.ServeHTTP(w, r)
		case GroupServiceIsGroupPublicProcedure:
			isGroupPublicHandler.ServeHTTP(w, r)
		case GroupServiceVerifyGroupSecretProcedure:
			verifyGroupSecretHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// GroupServiceClient calls a remote GroupService.
type GroupServiceClient struct {
	createGroup       *connect.Client[CreateGroupRequest, CreateGroupResponse]
	listGroups        *connect.Client[ListGroupsRequest, ListGroupsResponse]
	getGroupDetail    *connect.Client[GetGroupDetailRequest, GetGroupDetailResponse]
	updateGroup       *connect.Client[UpdateGroupRequest, UpdateGroupResponse]
	deleteGroup       *connect.Client[DeleteGroupRequest, DeleteGroupResponse]
	likeGroup         *connect.Client[LikeGroupRequest, LikeGroupResponse]
	isGroupPublic     *connect.Client[IsGroupPublicRequest, IsGroupPublicResponse]
	verifyGroupSecret *connect.Client[VerifyGroupSecretRequest, VerifyGroupSecretResponse]
}

// NewGroupServiceClient creates a client for the GroupService at baseURL.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GroupServiceClient {
	opts = clientOptions(opts)
	return &GroupServiceClient{
		createGroup:       connect.NewClient[CreateGroupRequest, CreateGroupResponse](httpClient, baseURL+GroupServiceCreateGroupProcedure, opts...),
		listGroups:        connect.NewClient[ListGroupsRequest, ListGroupsResponse](httpClient, baseURL+GroupServiceListGroupsProcedure, opts...),
		getGroupDetail:    connect.NewClient[GetGroupDetailRequest, GetGroupDetailResponse](httpClient, baseURL+GroupServiceGetGroupDetailProcedure, opts...),
		updateGroup:       connect.NewClient[UpdateGroupRequest, UpdateGroupResponse](httpClient, baseURL+GroupServiceUpdateGroupProcedure, opts...),
		deleteGroup:       connect.NewClient[DeleteGroupRequest, DeleteGroupResponse](httpClient, baseURL+GroupServiceDeleteGroupProcedure, opts...),
		likeGroup:         connect.NewClient[LikeGroupRequest, LikeGroupResponse](httpClient, baseURL+GroupServiceLikeGroupProcedure, opts...),
		isGroupPublic:     connect.NewClient[IsGroupPublicRequest, IsGroupPublicResponse](httpClient, baseURL+GroupServiceIsGroupPublicProcedure, opts...),
		verifyGroupSecret: connect.NewClient[VerifyGroupSecretRequest, VerifyGroupSecretResponse](httpClient, baseURL+GroupServiceVerifyGroupSecretProcedure, opts...),
	}
}

// CreateGroup calls GroupService.CreateGroup.
func (c *GroupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[CreateGroupRequest]) (*connect.Response[CreateGroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

// ListGroups calls GroupService.ListGroups.
func (c *GroupServiceClient) ListGroups(ctx context.Context, req *connect.Request[ListGroupsRequest]) (*connect.Response[ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

// GetGroupDetail calls GroupService.GetGroupDetail.
func (c *GroupServiceClient) GetGroupDetail(ctx context.Context, req *connect.Request[GetGroupDetailRequest]) (*connect.Response[GetGroupDetailResponse], error) {
	return c.getGroupDetail.CallUnary(ctx, req)
}

// UpdateGroup calls GroupService.UpdateGroup.
func (c *GroupServiceClient) UpdateGroup(ctx context.Context, req *connect.Request[UpdateGroupRequest]) (*connect.Response[UpdateGroupResponse], error) {
	return c.updateGroup.CallUnary(ctx, req)
}

// DeleteGroup calls GroupService.DeleteGroup.
func (c *GroupServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[DeleteGroupRequest]) (*connect.Response[DeleteGroupResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

// LikeGroup calls GroupService.LikeGroup.
func (c *GroupServiceClient) LikeGroup(ctx context.Context, req *connect.Request[LikeGroupRequest]) (*connect.Response[LikeGroupResponse], error) {
	return c.likeGroup.CallUnary(ctx, req)
}

// IsGroupPublic calls GroupService.IsGroupPublic.
func (c *GroupServiceClient) IsGroupPublic(ctx context.Context, req *connect.Request[IsGroupPublicRequest]) (*connect.Response[IsGroupPublicResponse], error) {
	return c.isGroupPublic.CallUnary(ctx, req)
}

// VerifyGroupSecret calls GroupService.VerifyGroupSecret.
func (c *GroupServiceClient) VerifyGroupSecret(ctx context.Context, req *connect.Request[VerifyGroupSecretRequest]) (*connect.Response[VerifyGroupSecretResponse], error) {
	return c.verifyGroupSecret.CallUnary(ctx, req)
}
