package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/memoryboard/internal/models"
	"github.com/mmynk/memoryboard/internal/storage"
)

const commentColumns = "id, post_id, nickname, content, secret_hash, created_at"

// CreateComment persists a new comment.
func (s *SQLiteStore) CreateComment(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = s.timestamp()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO comments (`+commentColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		comment.ID, comment.PostID, comment.Nickname, comment.Content, comment.SecretHash,
		toMillis(comment.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	return nil
}

// GetComment retrieves a comment by ID.
func (s *SQLiteStore) GetComment(ctx context.Context, commentID string) (*models.Comment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE id = ?`,
		commentID,
	)

	comment, err := scanComment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("comment %s: %w", commentID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return comment, nil
}

// UpdateComment updates nickname, content and secret hash of a comment.
func (s *SQLiteStore) UpdateComment(ctx context.Context, comment *models.Comment) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE comments SET nickname = ?, content = ?, secret_hash = ? WHERE id = ?",
		comment.Nickname, comment.Content, comment.SecretHash, comment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update comment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("comment %s: %w", comment.ID, storage.ErrNotFound)
	}

	return nil
}

// DeleteComment removes a comment.
func (s *SQLiteStore) DeleteComment(ctx context.Context, commentID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM comments WHERE id = ?", commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}

// DeleteCommentsByPost removes every comment of the given posts.
func (s *SQLiteStore) DeleteCommentsByPost(ctx context.Context, postIDs ...string) (int, error) {
	if len(postIDs) == 0 {
		return 0, nil
	}

	result, err := s.db.ExecContext(ctx,
		`DELETE FROM comments WHERE post_id IN (`+placeholders(len(postIDs))+`)`,
		stringArgs(postIDs)...,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to delete comments: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return int(n), nil
}

// FindComments returns all comments of a post.
func (s *SQLiteStore) FindComments(ctx context.Context, postID string) ([]*models.Comment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE post_id = ?`,
		postID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find comments: %w", err)
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}

	return comments, nil
}

// CountCommentsByPost counts live comments per post.
func (s *SQLiteStore) CountCommentsByPost(ctx context.Context, postIDs ...string) (map[string]int, error) {
	if len(postIDs) == 0 {
		return make(map[string]int), nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT post_id, COUNT(*) FROM comments WHERE post_id IN (`+placeholders(len(postIDs))+`) GROUP BY post_id`,
		stringArgs(postIDs)...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	return countBy(rows)
}

func scanComment(row scanner) (*models.Comment, error) {
	comment := &models.Comment{}
	var createdAt int64
	err := row.Scan(
		&comment.ID, &comment.PostID, &comment.Nickname, &comment.Content,
		&comment.SecretHash, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	comment.CreatedAt = fromMillis(createdAt)
	return comment, nil
}

// CommentPostIDs lists the distinct post IDs referenced by comments.
func (s *SQLiteStore) CommentPostIDs(ctx context.Context) ([]string, error) {
	ids, err := distinctIDs(ctx, s.db, "SELECT DISTINCT post_id FROM comments")
	if err != nil {
		return nil, fmt.Errorf("failed to list comment posts: %w", err)
	}
	return ids, nil
}
