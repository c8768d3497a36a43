package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mmynk/memoryboard/internal/models"
	"github.com/mmynk/memoryboard/internal/storage"
)

const postColumns = "id, group_id, nickname, title, content, secret_hash, image_url, like_count, location, moment, is_public, created_at"

// CreatePost persists a new post and its tags.
func (s *SQLiteStore) CreatePost(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = s.timestamp()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO posts (`+postColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		post.ID, post.GroupID, post.Nickname, post.Title, post.Content, post.SecretHash,
		post.ImageURL, post.LikeCount, post.Location, toMillis(post.Moment),
		boolToInt(post.IsPublic), toMillis(post.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}

	if err := insertTags(ctx, tx, post.ID, post.Tags); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetPost retrieves a post by ID, including its tags.
func (s *SQLiteStore) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+postColumns+` FROM posts WHERE id = ?`,
		postID,
	)

	post, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("post %s: %w", postID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	tags, err := s.loadTags(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	post.Tags = tags[post.ID]

	return post, nil
}

// UpdatePost updates the mutable fields of a post and replaces its tags.
func (s *SQLiteStore) UpdatePost(ctx context.Context, post *models.Post) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE posts SET nickname = ?, title = ?, content = ?, secret_hash = ?, image_url = ?,
		 location = ?, moment = ?, is_public = ?
		 WHERE id = ?`,
		post.Nickname, post.Title, post.Content, post.SecretHash, post.ImageURL,
		post.Location, toMillis(post.Moment), boolToInt(post.IsPublic),
		post.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("post %s: %w", post.ID, storage.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM post_tags WHERE post_id = ?", post.ID); err != nil {
		return fmt.Errorf("failed to clear tags: %w", err)
	}
	if err := insertTags(ctx, tx, post.ID, post.Tags); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// DeletePost removes a post. The schema refuses the delete while comments
// still reference the post.
func (s *SQLiteStore) DeletePost(ctx context.Context, postID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM posts WHERE id = ?", postID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}

// DeletePostsByGroup removes every post of a group.
func (s *SQLiteStore) DeletePostsByGroup(ctx context.Context, groupID string) (int, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM posts WHERE group_id = ?", groupID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete posts: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return int(n), nil
}

// FindPosts returns all posts of a group matching the filter.
func (s *SQLiteStore) FindPosts(ctx context.Context, filter storage.PostFilter) ([]*models.Post, error) {
	where := []string{"p.group_id = ?"}
	args := []any{filter.GroupID}
	if filter.Public != nil {
		where = append(where, "p.is_public = ?")
		args = append(args, boolToInt(*filter.Public))
	}
	if filter.Keyword != "" {
		keyword := strings.ToLower(filter.Keyword)
		where = append(where, `(instr(fold_case(p.title), ?) > 0 OR EXISTS (
			SELECT 1 FROM post_tags t WHERE t.post_id = p.id AND instr(fold_case(t.tag), ?) > 0))`)
		args = append(args, keyword, keyword)
	}

	columns := "p." + strings.ReplaceAll(postColumns, ", ", ", p.")
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+columns+` FROM posts p WHERE `+strings.Join(where, " AND "),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to find posts: %w", err)
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}
	rows.Close()

	if len(posts) == 0 {
		return posts, nil
	}

	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	tags, err := s.loadTags(ctx, ids...)
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		p.Tags = tags[p.ID]
	}

	return posts, nil
}

// CountPostsByGroup counts live posts per group.
func (s *SQLiteStore) CountPostsByGroup(ctx context.Context, groupIDs ...string) (map[string]int, error) {
	if len(groupIDs) == 0 {
		return make(map[string]int), nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT group_id, COUNT(*) FROM posts WHERE group_id IN (`+placeholders(len(groupIDs))+`) GROUP BY group_id`,
		stringArgs(groupIDs)...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count posts: %w", err)
	}

	return countBy(rows)
}

// IncrementPostLikes adds one like in a single statement.
func (s *SQLiteStore) IncrementPostLikes(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		"UPDATE posts SET like_count = like_count + 1 WHERE id = ? RETURNING like_count",
		postID,
	).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("post %s: %w", postID, storage.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to increment post likes: %w", err)
	}

	return count, nil
}

// PostGroupIDs lists the distinct group IDs referenced by posts.
func (s *SQLiteStore) PostGroupIDs(ctx context.Context) ([]string, error) {
	ids, err := distinctIDs(ctx, s.db, "SELECT DISTINCT group_id FROM posts")
	if err != nil {
		return nil, fmt.Errorf("failed to list post groups: %w", err)
	}
	return ids, nil
}

func insertTags(ctx context.Context, tx *sql.Tx, postID string, tags []string) error {
	for i, tag := range tags {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO post_tags (post_id, position, tag) VALUES (?, ?, ?)",
			postID, i, tag,
		)
		if err != nil {
			return fmt.Errorf("failed to insert tag: %w", err)
		}
	}
	return nil
}

// loadTags returns the ordered tags of the given posts keyed by post ID.
func (s *SQLiteStore) loadTags(ctx context.Context, postIDs ...string) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT post_id, tag FROM post_tags WHERE post_id IN (`+placeholders(len(postIDs))+`)
		 ORDER BY post_id, position`,
		stringArgs(postIDs)...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get tags: %w", err)
	}
	defer rows.Close()

	tags := make(map[string][]string)
	for rows.Next() {
		var postID, tag string
		if err := rows.Scan(&postID, &tag); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags[postID] = append(tags[postID], tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}

	return tags, nil
}

func scanPost(row scanner) (*models.Post, error) {
	post := &models.Post{}
	var isPublic int
	var moment, createdAt int64
	err := row.Scan(
		&post.ID, &post.GroupID, &post.Nickname, &post.Title, &post.Content, &post.SecretHash,
		&post.ImageURL, &post.LikeCount, &post.Location, &moment, &isPublic, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	post.IsPublic = isPublic != 0
	post.Moment = fromMillis(moment)
	post.CreatedAt = fromMillis(createdAt)
	return post, nil
}
