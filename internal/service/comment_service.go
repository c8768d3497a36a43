package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/memoryboard/internal/board"
	"github.com/mmynk/memoryboard/pkg/api"
)

// Ensure CommentService implements the handler interface
var _ api.CommentServiceHandler = (*CommentService)(nil)

// CommentService implements the Connect CommentService
type CommentService struct {
	board *board.Service
}

// NewCommentService creates a new CommentService backed by the board.
func NewCommentService(b *board.Service) *CommentService {
	return &CommentService{board: b}
}

// CreateComment adds a comment to a post.
func (s *CommentService) CreateComment(ctx context.Context, req *connect.Request[api.CreateCommentRequest]) (*connect.Response[api.CreateCommentResponse], error) {
	slog.Info("CreateComment request received", "post_id", req.Msg.PostID, "nickname", req.Msg.Nickname)

	comment, err := s.board.CreateComment(ctx, req.Msg.PostID, board.CreateCommentInput{
		Nickname: req.Msg.Nickname,
		Content:  req.Msg.Content,
		Secret:   req.Msg.Secret,
	})
	if err != nil {
		slog.Error("CreateComment failed", "post_id", req.Msg.PostID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.CreateCommentResponse{Comment: commentToAPI(*comment)}), nil
}

// ListComments returns one page of the comments of a post, newest first.
func (s *CommentService) ListComments(ctx context.Context, req *connect.Request[api.ListCommentsRequest]) (*connect.Response[api.ListCommentsResponse], error) {
	slog.Info("ListComments request received", "post_id", req.Msg.PostID, "page", req.Msg.Page)

	res, err := s.board.ListComments(ctx, req.Msg.PostID, req.Msg.Page, req.Msg.PageSize)
	if err != nil {
		slog.Error("ListComments failed", "post_id", req.Msg.PostID, "error", err)
		return nil, connectError(err)
	}

	comments := make([]*api.Comment, len(res.Data))
	for i, c := range res.Data {
		comments[i] = commentToAPI(c)
	}

	return connect.NewResponse(&api.ListCommentsResponse{
		PageInfo: pageInfo(res),
		Data:     comments,
	}), nil
}

// UpdateComment changes the nickname or content of a comment.
func (s *CommentService) UpdateComment(ctx context.Context, req *connect.Request[api.UpdateCommentRequest]) (*connect.Response[api.UpdateCommentResponse], error) {
	slog.Info("UpdateComment request received", "comment_id", req.Msg.CommentID)

	comment, err := s.board.UpdateComment(ctx, req.Msg.CommentID, board.UpdateCommentInput{
		Secret:    req.Msg.Secret,
		Nickname:  req.Msg.Nickname,
		Content:   req.Msg.Content,
		NewSecret: req.Msg.NewSecret,
	})
	if err != nil {
		slog.Error("UpdateComment failed", "comment_id", req.Msg.CommentID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.UpdateCommentResponse{Comment: commentToAPI(*comment)}), nil
}

// DeleteComment removes a comment.
func (s *CommentService) DeleteComment(ctx context.Context, req *connect.Request[api.DeleteCommentRequest]) (*connect.Response[api.DeleteCommentResponse], error) {
	slog.Info("DeleteComment request received", "comment_id", req.Msg.CommentID)

	if err := s.board.DeleteComment(ctx, req.Msg.CommentID, req.Msg.Secret); err != nil {
		slog.Error("DeleteComment failed", "comment_id", req.Msg.CommentID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.DeleteCommentResponse{}), nil
}
