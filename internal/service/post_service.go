package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/memoryboard/internal/board"
	"github.com/mmynk/memoryboard/pkg/api"
)

// Ensure PostService implements the handler interface
var _ api.PostServiceHandler = (*PostService)(nil)

// PostService implements the Connect PostService
type PostService struct {
	board *board.Service
}

// NewPostService creates a new PostService backed by the board.
func NewPostService(b *board.Service) *PostService {
	return &PostService{board: b}
}

// CreatePost creates a post in a group.
func (s *PostService) CreatePost(ctx context.Context, req *connect.Request[api.CreatePostRequest]) (*connect.Response[api.CreatePostResponse], error) {
	slog.Info("CreatePost request received",
		"group_id", req.Msg.GroupID,
		"title", req.Msg.Title,
		"tags_count", len(req.Msg.Tags),
	)

	post, err := s.board.CreatePost(ctx, req.Msg.GroupID, board.CreatePostInput{
		Nickname: req.Msg.Nickname,
		Title:    req.Msg.Title,
		Content:  req.Msg.Content,
		Secret:   req.Msg.Secret,
		ImageURL: req.Msg.ImageURL,
		Tags:     req.Msg.Tags,
		Location: req.Msg.Location,
		Moment:   req.Msg.Moment,
		IsPublic: req.Msg.IsPublic,
	})
	if err != nil {
		slog.Error("CreatePost failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.CreatePostResponse{Post: postViewToAPI(post)}), nil
}

// ListPosts returns one page of the posts of a group.
func (s *PostService) ListPosts(ctx context.Context, req *connect.Request[api.ListPostsRequest]) (*connect.Response[api.ListPostsResponse], error) {
	slog.Info("ListPosts request received",
		"group_id", req.Msg.GroupID,
		"page", req.Msg.Page,
		"sort", req.Msg.SortBy,
	)

	res, err := s.board.ListPosts(ctx, req.Msg.GroupID, board.PostQuery{
		Page:     req.Msg.Page,
		PageSize: req.Msg.PageSize,
		Sort:     req.Msg.SortBy,
		Keyword:  req.Msg.Keyword,
		IsPublic: req.Msg.IsPublic,
	})
	if err != nil {
		slog.Error("ListPosts failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, connectError(err)
	}

	posts := make([]*api.Post, len(res.Data))
	for i, p := range res.Data {
		posts[i] = postSummaryToAPI(p)
	}

	slog.Info("ListPosts successful", "group_id", req.Msg.GroupID, "count", len(posts))

	return connect.NewResponse(&api.ListPostsResponse{
		PageInfo: pageInfo(res),
		Data:     posts,
	}), nil
}

// GetPostDetail returns a post with its comments.
func (s *PostService) GetPostDetail(ctx context.Context, req *connect.Request[api.GetPostDetailRequest]) (*connect.Response[api.GetPostDetailResponse], error) {
	slog.Info("GetPostDetail request received", "post_id", req.Msg.PostID)

	detail, err := s.board.GetPostDetail(ctx, req.Msg.PostID)
	if err != nil {
		slog.Error("GetPostDetail failed", "post_id", req.Msg.PostID, "error", err)
		return nil, connectError(err)
	}

	comments := make([]*api.Comment, len(detail.Comments))
	for i, c := range detail.Comments {
		comments[i] = commentToAPI(c)
	}

	return connect.NewResponse(&api.GetPostDetailResponse{
		Post:     postViewToAPI(&detail.PostView),
		Comments: comments,
	}), nil
}

// UpdatePost updates an existing post.
func (s *PostService) UpdatePost(ctx context.Context, req *connect.Request[api.UpdatePostRequest]) (*connect.Response[api.UpdatePostResponse], error) {
	slog.Info("UpdatePost request received", "post_id", req.Msg.PostID)

	post, err := s.board.UpdatePost(ctx, req.Msg.PostID, board.UpdatePostInput{
		Secret:    req.Msg.Secret,
		Nickname:  req.Msg.Nickname,
		Title:     req.Msg.Title,
		Content:   req.Msg.Content,
		ImageURL:  req.Msg.ImageURL,
		Tags:      req.Msg.Tags,
		Location:  req.Msg.Location,
		Moment:    req.Msg.Moment,
		IsPublic:  req.Msg.IsPublic,
		NewSecret: req.Msg.NewSecret,
	})
	if err != nil {
		slog.Error("UpdatePost failed", "post_id", req.Msg.PostID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.UpdatePostResponse{Post: postViewToAPI(post)}), nil
}

// DeletePost removes a post together with its comments.
func (s *PostService) DeletePost(ctx context.Context, req *connect.Request[api.DeletePostRequest]) (*connect.Response[api.DeletePostResponse], error) {
	slog.Info("DeletePost request received", "post_id", req.Msg.PostID)

	if err := s.board.DeletePost(ctx, req.Msg.PostID, req.Msg.Secret); err != nil {
		slog.Error("DeletePost failed", "post_id", req.Msg.PostID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.DeletePostResponse{}), nil
}

// LikePost adds one like to a post.
func (s *PostService) LikePost(ctx context.Context, req *connect.Request[api.LikePostRequest]) (*connect.Response[api.LikePostResponse], error) {
	slog.Info("LikePost request received", "post_id", req.Msg.PostID)

	likes, err := s.board.LikePost(ctx, req.Msg.PostID)
	if err != nil {
		slog.Error("LikePost failed", "post_id", req.Msg.PostID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.LikePostResponse{LikeCount: likes}), nil
}

// IsPostPublic reports the visibility of a post.
func (s *PostService) IsPostPublic(ctx context.Context, req *connect.Request[api.IsPostPublicRequest]) (*connect.Response[api.IsPostPublicResponse], error) {
	public, err := s.board.IsPostPublic(ctx, req.Msg.PostID)
	if err != nil {
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.IsPostPublicResponse{ID: req.Msg.PostID, IsPublic: public}), nil
}

// VerifyPostSecret checks a post secret.
func (s *PostService) VerifyPostSecret(ctx context.Context, req *connect.Request[api.VerifyPostSecretRequest]) (*connect.Response[api.VerifyPostSecretResponse], error) {
	slog.Info("VerifyPostSecret request received", "post_id", req.Msg.PostID)

	res, err := s.board.VerifyPostSecret(ctx, req.Msg.PostID, req.Msg.Secret)
	if err != nil {
		slog.Error("VerifyPostSecret failed", "post_id", req.Msg.PostID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.VerifyPostSecretResponse{Matched: res.Matched}), nil
}
