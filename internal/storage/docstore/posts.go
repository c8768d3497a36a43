package docstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mmynk/memoryboard/internal/models"
	"github.com/mmynk/memoryboard/internal/storage"
)

// CreatePost inserts a new post document.
func (s *Store) CreatePost(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = s.timestamp()
	}

	if _, err := s.posts.InsertOne(ctx, newPostDoc(post)); err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	return nil
}

// GetPost retrieves a post by ID.
func (s *Store) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	var doc postDoc
	err := s.posts.FindOne(ctx, bson.M{"_id": postID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("post %s: %w", postID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return doc.model(), nil
}

// UpdatePost sets the mutable fields of a post.
func (s *Store) UpdatePost(ctx context.Context, post *models.Post) error {
	tags := post.Tags
	if tags == nil {
		tags = []string{}
	}

	result, err := s.posts.UpdateOne(ctx, bson.M{"_id": post.ID}, bson.M{
		"$set": bson.M{
			"nickname":    post.Nickname,
			"title":       post.Title,
			"content":     post.Content,
			"secret_hash": post.SecretHash,
			"image_url":   post.ImageURL,
			"tags":        tags,
			"location":    post.Location,
			"moment":      post.Moment,
			"is_public":   post.IsPublic,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("post %s: %w", post.ID, storage.ErrNotFound)
	}

	return nil
}

// DeletePost removes a post document.
func (s *Store) DeletePost(ctx context.Context, postID string) error {
	if _, err := s.posts.DeleteOne(ctx, bson.M{"_id": postID}); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

// DeletePostsByGroup removes every post of a group.
func (s *Store) DeletePostsByGroup(ctx context.Context, groupID string) (int, error) {
	result, err := s.posts.DeleteMany(ctx, bson.M{"group_id": groupID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete posts: %w", err)
	}
	return int(result.DeletedCount), nil
}

// FindPosts returns all posts of a group matching the filter.
func (s *Store) FindPosts(ctx context.Context, filter storage.PostFilter) ([]*models.Post, error) {
	query := bson.M{"group_id": filter.GroupID}
	if filter.Public != nil {
		query["is_public"] = *filter.Public
	}
	if filter.Keyword != "" {
		query["$or"] = bson.A{
			bson.M{"title": keywordMatch(filter.Keyword)},
			bson.M{"tags": keywordMatch(filter.Keyword)},
		}
	}

	cursor, err := s.posts.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find posts: %w", err)
	}

	var docs []postDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}

	posts := make([]*models.Post, len(docs))
	for i := range docs {
		posts[i] = docs[i].model()
	}

	return posts, nil
}

// CountPostsByGroup counts live posts per group.
func (s *Store) CountPostsByGroup(ctx context.Context, groupIDs ...string) (map[string]int, error) {
	counts := make(map[string]int)
	if len(groupIDs) == 0 {
		return counts, nil
	}

	cursor, err := s.posts.Find(ctx, bson.M{"group_id": inIDs(groupIDs)})
	if err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	var refs []parentRef
	if err := cursor.All(ctx, &refs); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	for _, ref := range refs {
		counts[ref.GroupID]++
	}

	return counts, nil
}

// IncrementPostLikes adds one like and reads back the new count in one
// FindOneAndUpdate.
func (s *Store) IncrementPostLikes(ctx context.Context, postID string) (int64, error) {
	return incrementLikes(ctx, s.posts, postID, "post")
}

// PostGroupIDs lists the distinct group IDs referenced by posts.
func (s *Store) PostGroupIDs(ctx context.Context) ([]string, error) {
	ids, err := distinctIDs(ctx, s.posts, "group_id")
	if err != nil {
		return nil, fmt.Errorf("failed to list post groups: %w", err)
	}
	return ids, nil
}
