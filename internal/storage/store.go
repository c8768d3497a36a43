// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/memoryboard/internal/models"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// GroupFilter selects groups. Zero values mean "no restriction".
type GroupFilter struct {
	// Public restricts to groups with the given visibility when set.
	Public *bool

	// Keyword is matched case-insensitively against the group name.
	Keyword string
}

// PostFilter selects posts of a single group.
type PostFilter struct {
	// GroupID is required: post queries are always scoped to a group.
	GroupID string

	// Public restricts to posts with the given visibility when set.
	Public *bool

	// Keyword is matched case-insensitively against the title and every tag.
	Keyword string
}

// Store defines the interface for board storage operations.
// This abstraction allows swapping storage backends (SQLite, MongoDB, ...)
// without changing the service layer.
type Store interface {
	GroupStore
	PostStore
	CommentStore

	// Close releases any resources held by the store.
	Close() error
}

// GroupStore persists groups and their badge sets.
type GroupStore interface {
	// CreateGroup persists a new group. ID and CreatedAt are assigned when empty.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with its badges. Returns ErrNotFound if absent.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// UpdateGroup replaces the mutable fields of a group (name, secret hash,
	// visibility, image, introduction). Like counter and badges are untouched.
	// Returns ErrNotFound if absent.
	UpdateGroup(ctx context.Context, group *models.Group) error

	// DeleteGroup removes a group. Deleting an absent group is not an error.
	DeleteGroup(ctx context.Context, groupID string) error

	// FindGroups returns every group matching the filter, in no particular order.
	FindGroups(ctx context.Context, filter GroupFilter) ([]*models.Group, error)

	// IncrementGroupLikes atomically adds one like and returns the new count.
	IncrementGroupLikes(ctx context.Context, groupID string) (int64, error)

	// AddGroupBadges adds badges to the group's set and returns how many were
	// not already present. Existing badges are never removed.
	AddGroupBadges(ctx context.Context, groupID string, badges ...models.Badge) (int, error)
}

// PostStore persists posts.
type PostStore interface {
	// CreatePost persists a new post. ID and CreatedAt are assigned when empty.
	CreatePost(ctx context.Context, post *models.Post) error

	// GetPost retrieves a post with its tags. Returns ErrNotFound if absent.
	GetPost(ctx context.Context, postID string) (*models.Post, error)

	// UpdatePost replaces the mutable fields of a post. The owning group, like
	// counter and creation time are untouched. Returns ErrNotFound if absent.
	UpdatePost(ctx context.Context, post *models.Post) error

	// DeletePost removes a post. Deleting an absent post is not an error.
	DeletePost(ctx context.Context, postID string) error

	// DeletePostsByGroup removes every post of a group and returns how many.
	DeletePostsByGroup(ctx context.Context, groupID string) (int, error)

	// FindPosts returns every post matching the filter, in no particular order.
	FindPosts(ctx context.Context, filter PostFilter) ([]*models.Post, error)

	// CountPostsByGroup returns the live number of posts per group ID.
	// Groups without posts are absent from the map.
	CountPostsByGroup(ctx context.Context, groupIDs ...string) (map[string]int, error)

	// IncrementPostLikes atomically adds one like and returns the new count.
	IncrementPostLikes(ctx context.Context, postID string) (int64, error)

	// PostGroupIDs returns every distinct group ID referenced by a post,
	// including groups that no longer exist.
	PostGroupIDs(ctx context.Context) ([]string, error)
}

// CommentStore persists comments.
type CommentStore interface {
	// CreateComment persists a new comment. ID and CreatedAt are assigned when empty.
	CreateComment(ctx context.Context, comment *models.Comment) error

	// GetComment retrieves a comment. Returns ErrNotFound if absent.
	GetComment(ctx context.Context, commentID string) (*models.Comment, error)

	// UpdateComment replaces nickname, content and secret hash.
	// Returns ErrNotFound if absent.
	UpdateComment(ctx context.Context, comment *models.Comment) error

	// DeleteComment removes a comment. Deleting an absent comment is not an error.
	DeleteComment(ctx context.Context, commentID string) error

	// DeleteCommentsByPost removes every comment of the given posts and
	// returns how many.
	DeleteCommentsByPost(ctx context.Context, postIDs ...string) (int, error)

	// FindComments returns every comment of a post, in no particular order.
	FindComments(ctx context.Context, postID string) ([]*models.Comment, error)

	// CountCommentsByPost returns the live number of comments per post ID.
	// Posts without comments are absent from the map.
	CountCommentsByPost(ctx context.Context, postIDs ...string) (map[string]int, error)

	// CommentPostIDs returns every distinct post ID referenced by a comment,
	// including posts that no longer exist.
	CommentPostIDs(ctx context.Context) ([]string, error)
}
