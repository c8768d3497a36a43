package board

import (
	"context"
	"log/slog"

	"github.com/mmynk/memoryboard/internal/listing"
	"github.com/mmynk/memoryboard/internal/models"
)

// CreateCommentInput holds the fields of a new comment.
type CreateCommentInput struct {
	Nickname string `valid:"required"`
	Content  string `valid:"required"`
	Secret   string `valid:"required"`
}

// UpdateCommentInput changes nickname and content. Secret must match the
// current secret; a non-empty NewSecret replaces it.
type UpdateCommentInput struct {
	Secret    string
	Nickname  *string
	Content   *string
	NewSecret string
}

// CreateComment stores a new comment on an existing post.
func (s *Service) CreateComment(ctx context.Context, postID string, in CreateCommentInput) (*CommentView, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	if _, err := s.store.GetPost(ctx, postID); err != nil {
		return nil, loadErr(err, "post", postID)
	}

	hashed, err := s.hashSecret(in.Secret)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:     postID,
		Nickname:   in.Nickname,
		Content:    in.Content,
		SecretHash: hashed,
	}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, internal("failed to create comment", err)
	}

	slog.Info("Comment created", "comment_id", comment.ID, "post_id", postID)

	view := viewComment(comment)
	return &view, nil
}

// ListComments returns one page of the comments of a post, newest first.
func (s *Service) ListComments(ctx context.Context, postID string, pageNumber, pageSize int) (*listing.Result[CommentView], error) {
	page := s.page(pageNumber, pageSize)

	if _, err := s.store.GetPost(ctx, postID); err != nil {
		return nil, loadErr(err, "post", postID)
	}

	comments, err := s.store.FindComments(ctx, postID)
	if err != nil {
		return nil, internal("failed to list comments", err)
	}

	views := make([]CommentView, len(comments))
	for i, c := range comments {
		views[i] = viewComment(c)
	}

	listing.Sort(views, listing.SortLatest)
	result := listing.Paginate(views, page)
	return &result, nil
}

// UpdateComment changes a comment after checking its secret.
func (s *Service) UpdateComment(ctx context.Context, commentID string, in UpdateCommentInput) (*CommentView, error) {
	if in.Nickname != nil && *in.Nickname == "" {
		return nil, invalid("Nickname: non zero value required")
	}
	if in.Content != nil && *in.Content == "" {
		return nil, invalid("Content: non zero value required")
	}

	comment, err := s.authorizeComment(ctx, commentID, in.Secret)
	if err != nil {
		return nil, err
	}

	if in.Nickname != nil {
		comment.Nickname = *in.Nickname
	}
	if in.Content != nil {
		comment.Content = *in.Content
	}
	if in.NewSecret != "" {
		if comment.SecretHash, err = s.hashSecret(in.NewSecret); err != nil {
			return nil, err
		}
	}

	if err := s.store.UpdateComment(ctx, comment); err != nil {
		return nil, loadErr(err, "comment", commentID)
	}

	slog.Info("Comment updated", "comment_id", commentID)

	view := viewComment(comment)
	return &view, nil
}

// DeleteComment removes a comment after checking its secret.
func (s *Service) DeleteComment(ctx context.Context, commentID, secret string) error {
	if _, err := s.authorizeComment(ctx, commentID, secret); err != nil {
		return err
	}

	if err := s.store.DeleteComment(ctx, commentID); err != nil {
		return internal("failed to delete comment", err)
	}

	slog.Info("Comment deleted", "comment_id", commentID)

	return nil
}

func (s *Service) authorizeComment(ctx context.Context, commentID, secret string) (*models.Comment, error) {
	comment, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		return nil, loadErr(err, "comment", commentID)
	}
	if !s.gate.Verify(secret, comment.SecretHash) {
		return nil, forbidden("comment")
	}
	return comment, nil
}
