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

// CreateComment inserts a new comment document.
func (s *Store) CreateComment(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = s.timestamp()
	}

	if _, err := s.comments.InsertOne(ctx, newCommentDoc(comment)); err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	return nil
}

// GetComment retrieves a comment by ID.
func (s *Store) GetComment(ctx context.Context, commentID string) (*models.Comment, error) {
	var doc commentDoc
	err := s.comments.FindOne(ctx, bson.M{"_id": commentID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("comment %s: %w", commentID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return doc.model(), nil
}

// UpdateComment sets nickname, content and secret hash of a comment.
func (s *Store) UpdateComment(ctx context.Context, comment *models.Comment) error {
	result, err := s.comments.UpdateOne(ctx, bson.M{"_id": comment.ID}, bson.M{
		"$set": bson.M{
			"nickname":    comment.Nickname,
			"content":     comment.Content,
			"secret_hash": comment.SecretHash,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("comment %s: %w", comment.ID, storage.ErrNotFound)
	}

	return nil
}

// DeleteComment removes a comment document.
func (s *Store) DeleteComment(ctx context.Context, commentID string) error {
	if _, err := s.comments.DeleteOne(ctx, bson.M{"_id": commentID}); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// DeleteCommentsByPost removes every comment of the given posts.
func (s *Store) DeleteCommentsByPost(ctx context.Context, postIDs ...string) (int, error) {
	if len(postIDs) == 0 {
		return 0, nil
	}

	result, err := s.comments.DeleteMany(ctx, bson.M{"post_id": inIDs(postIDs)})
	if err != nil {
		return 0, fmt.Errorf("failed to delete comments: %w", err)
	}

	return int(result.DeletedCount), nil
}

// FindComments returns all comments of a post.
func (s *Store) FindComments(ctx context.Context, postID string) ([]*models.Comment, error) {
	cursor, err := s.comments.Find(ctx, bson.M{"post_id": postID})
	if err != nil {
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}

	var docs []commentDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}

	comments := make([]*models.Comment, len(docs))
	for i := range docs {
		comments[i] = docs[i].model()
	}

	return comments, nil
}

// CountCommentsByPost counts live comments per post.
func (s *Store) CountCommentsByPost(ctx context.Context, postIDs ...string) (map[string]int, error) {
	counts := make(map[string]int)
	if len(postIDs) == 0 {
		return counts, nil
	}

	cursor, err := s.comments.Find(ctx, bson.M{"post_id": inIDs(postIDs)})
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	var refs []parentRef
	if err := cursor.All(ctx, &refs); err != nil {
		return nil, fmt.Errorf("failed to decode comments: %w", err)
	}
	for _, ref := range refs {
		counts[ref.PostID]++
	}

	return counts, nil
}

// CommentPostIDs lists the distinct post IDs referenced by comments.
func (s *Store) CommentPostIDs(ctx context.Context) ([]string, error) {
	ids, err := distinctIDs(ctx, s.comments, "post_id")
	if err != nil {
		return nil, fmt.Errorf("failed to list comment posts: %w", err)
	}
	return ids, nil
}
