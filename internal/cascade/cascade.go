// Package cascade deletes groups and posts together with everything below them.
//
// Children are always removed before their parent. A crash part way through
// leaves a parent with fewer children, never children without a parent, and
// re-running the same delete finishes the job.
package cascade

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/memoryboard/internal/models"
	"github.com/mmynk/memoryboard/internal/storage"
)

// Store is the part of the entity store the coordinator needs.
type Store interface {
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)
	DeleteGroup(ctx context.Context, groupID string) error
	GetPost(ctx context.Context, postID string) (*models.Post, error)
	FindPosts(ctx context.Context, filter storage.PostFilter) ([]*models.Post, error)
	DeletePost(ctx context.Context, postID string) error
	DeletePostsByGroup(ctx context.Context, groupID string) (int, error)
	DeleteCommentsByPost(ctx context.Context, postIDs ...string) (int, error)
	PostGroupIDs(ctx context.Context) ([]string, error)
	CommentPostIDs(ctx context.Context) ([]string, error)
}

// Result counts what a delete removed.
type Result struct {
	Groups   int
	Posts    int
	Comments int
}

// Coordinator runs cascading deletes.
type Coordinator struct {
	store Store
}

// New creates a coordinator over store.
func New(store Store) *Coordinator {
	return &Coordinator{store: store}
}

// DeleteGroup removes the comments of every post in the group, then the
// posts, then the group. Deleting an absent group is a no-op.
func (c *Coordinator) DeleteGroup(ctx context.Context, groupID string) (Result, error) {
	var res Result

	exists, err := present(c.store.GetGroup(ctx, groupID))
	if err != nil {
		return res, fmt.Errorf("failed to load group %s: %w", groupID, err)
	}

	posts, err := c.store.FindPosts(ctx, storage.PostFilter{GroupID: groupID})
	if err != nil {
		return res, fmt.Errorf("failed to list posts of group %s: %w", groupID, err)
	}

	postIDs := make([]string, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	res.Comments, err = c.store.DeleteCommentsByPost(ctx, postIDs...)
	if err != nil {
		return res, fmt.Errorf("failed to delete comments of group %s: %w", groupID, err)
	}

	res.Posts, err = c.store.DeletePostsByGroup(ctx, groupID)
	if err != nil {
		return res, fmt.Errorf("failed to delete posts of group %s: %w", groupID, err)
	}

	if err := c.store.DeleteGroup(ctx, groupID); err != nil {
		return res, fmt.Errorf("failed to delete group %s: %w", groupID, err)
	}
	if exists {
		res.Groups = 1
	}

	return res, nil
}

// DeletePost removes the comments of a post, then the post.
// Deleting an absent post is a no-op.
func (c *Coordinator) DeletePost(ctx context.Context, postID string) (Result, error) {
	var res Result

	exists, err := present(c.store.GetPost(ctx, postID))
	if err != nil {
		return res, fmt.Errorf("failed to load post %s: %w", postID, err)
	}

	res.Comments, err = c.store.DeleteCommentsByPost(ctx, postID)
	if err != nil {
		return res, fmt.Errorf("failed to delete comments of post %s: %w", postID, err)
	}

	if err := c.store.DeletePost(ctx, postID); err != nil {
		return res, fmt.Errorf("failed to delete post %s: %w", postID, err)
	}
	if exists {
		res.Posts = 1
	}

	return res, nil
}

// SweepOrphans removes posts whose group is gone and comments whose post is
// gone. Such children appear when a write races a delete on a store without
// foreign keys; the parent delete cannot be repeated once the parent is gone.
func (c *Coordinator) SweepOrphans(ctx context.Context) (Result, error) {
	var res Result

	groupIDs, err := c.store.PostGroupIDs(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to list post groups: %w", err)
	}
	for _, groupID := range groupIDs {
		exists, err := present(c.store.GetGroup(ctx, groupID))
		if err != nil {
			return res, fmt.Errorf("failed to load group %s: %w", groupID, err)
		}
		if exists {
			continue
		}

		swept, err := c.DeleteGroup(ctx, groupID)
		res.Posts += swept.Posts
		res.Comments += swept.Comments
		if err != nil {
			return res, err
		}
	}

	postIDs, err := c.store.CommentPostIDs(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to list comment posts: %w", err)
	}
	for _, postID := range postIDs {
		exists, err := present(c.store.GetPost(ctx, postID))
		if err != nil {
			return res, fmt.Errorf("failed to load post %s: %w", postID, err)
		}
		if exists {
			continue
		}

		n, err := c.store.DeleteCommentsByPost(ctx, postID)
		res.Comments += n
		if err != nil {
			return res, fmt.Errorf("failed to delete comments of post %s: %w", postID, err)
		}
	}

	return res, nil
}

func present[T any](_ T, err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, storage.ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}
