package api

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
)

// PostServiceName is the fully-qualified name of the PostService.
const PostServiceName = ServiceVersion + "PostService"

// Procedure names, usable as HTTP routes.
const (
	PostServiceCreatePostProcedure       = "/" + PostServiceName + "/CreatePost"
	PostServiceListPostsProcedure        = "/" + PostServiceName + "/ListPosts"
	PostServiceGetPostDetailProcedure    = "/" + PostServiceName + "/GetPostDetail"
	PostServiceUpdatePostProcedure       = "/" + PostServiceName + "/UpdatePost"
	PostServiceDeletePostProcedure       = "/" + PostServiceName + "/DeletePost"
	PostServiceLikePostProcedure         = "/" + PostServiceName + "/LikePost"
	PostServiceIsPostPublicProcedure     = "/" + PostServiceName + "/IsPostPublic"
	PostServiceVerifyPostSecretProcedure = "/" + PostServiceName + "/VerifyPostSecret"
)

// PostServiceHandler is implemented by the server side of the PostService.
type PostServiceHandler interface {
	CreatePost(context.Context, *connect.Request[CreatePostRequest]) (*connect.Response[CreatePostResponse], error)
	ListPosts(context.Context, *connect.Request[ListPostsRequest]) (*connect.Response[ListPostsResponse], error)
	GetPostDetail(context.Context, *connect.Request[GetPostDetailRequest]) (*connect.Response[GetPostDetailResponse], error)
	UpdatePost(context.Context, *connect.Request[UpdatePostRequest]) (*connect.Response[UpdatePostResponse], error)
	DeletePost(context.Context, *connect.Request[DeletePostRequest]) (*connect.Response[DeletePostResponse], error)
	LikePost(context.Context, *connect.Request[LikePostRequest]) (*connect.Response[LikePostResponse], error)
	IsPostPublic(context.Context, *connect.Request[IsPostPublicRequest]) (*connect.Response[IsPostPublicResponse], error)
	VerifyPostSecret(context.Context, *connect.Request[VerifyPostSecretRequest]) (*connect.Response[VerifyPostSecretResponse], error)
}

// NewPostServiceHandler builds an HTTP handler for svc and returns the path to mount it on.
func NewPostServiceHandler(svc PostServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	createPostHandler := connect.NewUnaryHandler(PostServiceCreatePostProcedure, svc.CreatePost, opts...)
	listPostsHandler := connect.NewUnaryHandler(PostServiceListPostsProcedure, svc.ListPosts, opts...)
	getPostDetailHandler := connect.NewUnaryHandler(PostServiceGetPostDetailProcedure, svc.GetPostDetail, opts...)
	updatePostHandler := connect.NewUnaryHandler(PostServiceUpdatePostProcedure, svc.UpdatePost, opts...)
	deletePostHandler := connect.NewUnaryHandler(PostServiceDeletePostProcedure, svc.DeletePost, opts...)
	likePostHandler := connect.NewUnaryHandler(PostServiceLikePostProcedure, svc.LikePost, opts...)
	isPostPublicHandler := connect.NewUnaryHandler(PostServiceIsPostPublicProcedure, svc.IsPostPublic, opts...)
	verifyPostSecretHandler := connect.NewUnaryHandler(PostServiceVerifyPostSecretProcedure, svc.VerifyPostSecret, opts...)
	return "/" + PostServiceName + "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case PostServiceCreatePostProcedure:
			createPostHandler.ServeHTTP(w, r)
		case PostServiceListPostsProcedure:
			listPostsHandler.ServeHTTP(w, r)
		case PostServiceGetPostDetailProcedure:
			getPostDetailHandler.ServeHTTP(w, r)
		case PostServiceUpdatePostProcedure:
			updatePostHandler.ServeHTTP(w, r)
		case PostServiceDeletePostProcedure:
			deletePostHandler.ServeHTTP(w, r)
		case PostServiceLikePostProcedure:
			likePostHandler.ServeHTTP(w, r)
		case PostServiceIsPostPublicProcedure:
			isPostPublicHandler.ServeHTTP(w, r)
		case PostServiceVerifyPostSecretProcedure:
			verifyPostSecretHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// PostServiceClient calls a remote PostService.
type PostServiceClient struct {
	createPost       *connect.Client[CreatePostRequest, CreatePostResponse]
	listPosts        *connect.Client[ListPostsRequest, ListPostsResponse]
	getPostDetail    *connect.Client[GetPostDetailRequest, GetPostDetailResponse]
	updatePost       *connect.Client[UpdatePostRequest, UpdatePostResponse]
	deletePost       *connect.Client[DeletePostRequest, DeletePostResponse]
	likePost         *connect.Client[LikePostRequest, LikePostResponse]
	isPostPublic     *connect.Client[IsPostPublicRequest, IsPostPublicResponse]
	verifyPostSecret *connect.Client[VerifyPostSecretRequest, VerifyPostSecretResponse]
}

// NewPostServiceClient creates a client for the PostService at baseURL.
func NewPostServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *PostServiceClient {
	opts = clientOptions(opts)
	return &PostServiceClient{
		createPost:       connect.NewClient[CreatePostRequest, CreatePostResponse](httpClient, baseURL+PostServiceCreatePostProcedure, opts...),
		listPosts:        connect.NewClient[ListPostsRequest, ListPostsResponse](httpClient, baseURL+PostServiceListPostsProcedure, opts...),
		getPostDetail:    connect.NewClient[GetPostDetailRequest, GetPostDetailResponse](httpClient, baseURL+PostServiceGetPostDetailProcedure, opts...),
		updatePost:       connect.NewClient[UpdatePostRequest, UpdatePostResponse](httpClient, baseURL+PostServiceUpdatePostProcedure, opts...),
		deletePost:       connect.NewClient[DeletePostRequest, DeletePostResponse](httpClient, baseURL+PostServiceDeletePostProcedure, opts...),
		likePost:         connect.NewClient[LikePostRequest, LikePostResponse](httpClient, baseURL+PostServiceLikePostProcedure, opts...),
		isPostPublic:     connect.NewClient[IsPostPublicRequest, IsPostPublicResponse](httpClient, baseURL+PostServiceIsPostPublicProcedure, opts...),
		verifyPostSecret: connect.NewClient[VerifyPostSecretRequest, VerifyPostSecretResponse](httpClient, baseURL+PostServiceVerifyPostSecretProcedure, opts...),
	}
}

// CreatePost calls PostService.CreatePost.
func (c *PostServiceClient) CreatePost(ctx context.Context, req *connect.Request[CreatePostRequest]) (*connect.Response[CreatePostResponse], error) {
	return c.createPost.CallUnary(ctx, req)
}

// ListPosts calls PostService.ListPosts.
func (c *PostServiceClient) ListPosts(ctx context.Context, req *connect.Request[ListPostsRequest]) (*connect.Response[ListPostsResponse], error) {
	return c.listPosts.CallUnary(ctx, req)
}

// GetPostDetail calls PostService.GetPostDetail.
func (c *PostServiceClient) GetPostDetail(ctx context.Context, req *connect.Request[GetPostDetailRequest]) (*connect.Response[GetPostDetailResponse], error) {
	return c.getPostDetail.CallUnary(ctx, req)
}

// UpdatePost calls PostService.UpdatePost.
func (c *PostServiceClient) UpdatePost(ctx context.Context, req *connect.Request[UpdatePostRequest]) (*connect.Response[UpdatePostResponse], error) {
	return c.updatePost.CallUnary(ctx, req)
}

// DeletePost calls PostService.DeletePost.
func (c *PostServiceClient) DeletePost(ctx context.Context, req *connect.Request[DeletePostRequest]) (*connect.Response[DeletePostResponse], error) {
	return c.deletePost.CallUnary(ctx, req)
}

// LikePost calls PostService.LikePost.
func (c *PostServiceClient) LikePost(ctx context.Context, req *connect.Request[LikePostRequest]) (*connect.Response[LikePostResponse], error) {
	return c.likePost.CallUnary(ctx, req)
}

// IsPostPublic calls PostService.IsPostPublic.
func (c *PostServiceClient) IsPostPublic(ctx context.Context, req *connect.Request[IsPostPublicRequest]) (*connect.Response[IsPostPublicResponse], error) {
	return c.isPostPublic.CallUnary(ctx, req)
}

// VerifyPostSecret calls PostService.VerifyPostSecret.
func (c *PostServiceClient) VerifyPostSecret(ctx context.Context, req *connect.Request[VerifyPostSecretRequest]) (*connect.Response[VerifyPostSecretResponse], error) {
	return c.verifyPostSecret.CallUnary(ctx, req)
}
