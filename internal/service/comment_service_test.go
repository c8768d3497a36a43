package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/memoryboard/pkg/api"
)

func createComment(t *testing.T, c *testClients, postID string) *api.Comment {
	t.Helper()

	resp, err := c.comments.CreateComment(context.Background(), connect.NewRequest(&api.CreateCommentRequest{
		PostID:   postID,
		Nickname: "jun",
		Content:  "Great memory!",
		Secret:   "comment-secret",
	}))
	if err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}

	return resp.Msg.Comment
}

func TestCommentLifecycle(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	ctx := context.Background()
	group := createGroup(t, c, "Trips", "abc123", true)
	post := createPost(t, c, group.ID, "Beach")
	comment := createComment(t, c, post.ID)
	createComment(t, c, post.ID)

	list, err := c.comments.ListComments(ctx, connect.NewRequest(&api.ListCommentsRequest{PostID: post.ID}))
	if err != nil {
		t.Fatalf("ListComments failed: %v", err)
	}
	if list.Msg.TotalItemCount != 2 {
		t.Errorf("expected 2 comments, got %d", list.Msg.TotalItemCount)
	}

	content := "Edited"
	updated, err := c.comments.UpdateComment(ctx, connect.NewRequest(&api.UpdateCommentRequest{
		CommentID: comment.ID,
		Secret:    "comment-secret",
		Content:   &content,
	}))
	if err != nil {
		t.Fatalf("UpdateComment failed: %v", err)
	}
	if updated.Msg.Comment.Content != "Edited" {
		t.Errorf("content: expected 'Edited', got '%s'", updated.Msg.Comment.Content)
	}

	_, err = c.comments.DeleteComment(ctx, connect.NewRequest(&api.DeleteCommentRequest{
		CommentID: comment.ID,
		Secret:    "wrong",
	}))
	if connect.CodeOf(err) != connect.CodePermissionDenied {
		t.Errorf("expected PermissionDenied, got %v", err)
	}

	_, err = c.comments.DeleteComment(ctx, connect.NewRequest(&api.DeleteCommentRequest{
		CommentID: comment.ID,
		Secret:    "comment-secret",
	}))
	if err != nil {
		t.Fatalf("DeleteComment failed: %v", err)
	}

	detail, err := c.posts.GetPostDetail(ctx, connect.NewRequest(&api.GetPostDetailRequest{PostID: post.ID}))
	if err != nil {
		t.Fatalf("GetPostDetail failed: %v", err)
	}
	if detail.Msg.Post.CommentCount != 1 || len(detail.Msg.Comments) != 1 {
		t.Errorf("expected 1 comment left, got count=%d list=%d", detail.Msg.Post.CommentCount, len(detail.Msg.Comments))
	}
}

func TestCreateComment_UnknownPost(t *testing.T) {
	c, cleanup := setupTestServer(t)
	defer cleanup()

	_, err := c.comments.CreateComment(context.Background(), connect.NewRequest(&api.CreateCommentRequest{
		PostID:   "non-existent-id",
		Nickname: "jun",
		Content:  "hello",
		Secret:   "s",
	}))

	if connect.CodeOf(err) != connect.CodeNotFound {
		t.Errorf("expected NotFound error, got %v", err)
	}
}
