package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mmynk/memoryboard/internal/models"
	"github.com/mmynk/memoryboard/internal/storage"
)

const groupColumns = "id, name, secret_hash, is_public, image_url, introduction, like_count, created_at"

// CreateGroup persists a new group to the database.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group) error {
	// Generate ID if not set
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt.IsZero() {
		group.CreatedAt = s.timestamp()
	}
	if group.Badges == nil {
		group.Badges = models.NewBadgeSet()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO groups (`+groupColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		group.ID, group.Name, group.SecretHash, boolToInt(group.IsPublic),
		group.ImageURL, group.Introduction, group.LikeCount, toMillis(group.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	for _, badge := range group.Badges.Sorted() {
		_, err = tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO group_badges (group_id, badge) VALUES (?, ?)",
			group.ID, string(badge),
		)
		if err != nil {
			return fmt.Errorf("failed to insert badge: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetGroup retrieves a group by ID, including its badges.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+groupColumns+` FROM groups WHERE id = ?`,
		groupID,
	)

	group, err := scanGroup(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	badges, err := s.loadBadges(ctx, group.ID)
	if err != nil {
		return nil, err
	}
	group.Badges = badges[group.ID]
	if group.Badges == nil {
		group.Badges = models.NewBadgeSet()
	}

	return group, nil
}

// UpdateGroup updates the mutable fields of an existing group.
func (s *SQLiteStore) UpdateGroup(ctx context.Context, group *models.Group) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE groups SET name = ?, secret_hash = ?, is_public = ?, image_url = ?, introduction = ?
		 WHERE id = ?`,
		group.Name, group.SecretHash, boolToInt(group.IsPublic), group.ImageURL, group.Introduction,
		group.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("group %s: %w", group.ID, storage.ErrNotFound)
	}

	return nil
}

// DeleteGroup removes a group. The schema refuses the delete while posts
// still reference the group.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, groupID string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM groups WHERE id = ?", groupID); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}

// FindGroups returns all groups matching the filter.
func (s *SQLiteStore) FindGroups(ctx context.Context, filter storage.GroupFilter) ([]*models.Group, error) {
	var where []string
	var args []any
	if filter.Public != nil {
		where = append(where, "is_public = ?")
		args = append(args, boolToInt(*filter.Public))
	}
	if filter.Keyword != "" {
		where = append(where, "instr(fold_case(name), ?) > 0")
		args = append(args, strings.ToLower(filter.Keyword))
	}

	query := `SELECT ` + groupColumns + ` FROM groups`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}
	rows.Close()

	if len(groups) == 0 {
		return groups, nil
	}

	ids := make([]string, len(groups))
	for i, g := range groups {
		ids[i] = g.ID
	}
	badges, err := s.loadBadges(ctx, ids...)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		g.Badges = badges[g.ID]
		if g.Badges == nil {
			g.Badges = models.NewBadgeSet()
		}
	}

	return groups, nil
}

// IncrementGroupLikes adds one like in a single statement.
func (s *SQLiteStore) IncrementGroupLikes(ctx context.Context, groupID string) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx,
		"UPDATE groups SET like_count = like_count + 1 WHERE id = ? RETURNING like_count",
		groupID,
	).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to increment group likes: %w", err)
	}

	return count, nil
}

// AddGroupBadges inserts badges that the group does not hold yet.
func (s *SQLiteStore) AddGroupBadges(ctx context.Context, groupID string, badges ...models.Badge) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM groups WHERE id = ?", groupID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to check group: %w", err)
	}

	added := 0
	for _, badge := range badges {
		result, err := tx.ExecContext(ctx,
			"INSERT OR IGNORE INTO group_badges (group_id, badge) VALUES (?, ?)",
			groupID, string(badge),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert badge: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to check rows affected: %w", err)
		}
		added += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return added, nil
}

// loadBadges returns the badge sets of the given groups keyed by group ID.
func (s *SQLiteStore) loadBadges(ctx context.Context, groupIDs ...string) (map[string]models.BadgeSet, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT group_id, badge FROM group_badges WHERE group_id IN (`+placeholders(len(groupIDs))+`)`,
		stringArgs(groupIDs)...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get badges: %w", err)
	}
	defer rows.Close()

	sets := make(map[string]models.BadgeSet)
	for rows.Next() {
		var groupID, badge string
		if err := rows.Scan(&groupID, &badge); err != nil {
			return nil, fmt.Errorf("failed to scan badge: %w", err)
		}
		if !models.Badge(badge).Valid() {
			slog.Warn("Skipping unknown stored badge", "group_id", groupID, "badge", badge)
			continue
		}
		if sets[groupID] == nil {
			sets[groupID] = models.NewBadgeSet()
		}
		sets[groupID].Add(models.Badge(badge))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate badges: %w", err)
	}

	return sets, nil
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanGroup(row scanner) (*models.Group, error) {
	group := &models.Group{}
	var isPublic int
	var createdAt int64
	err := row.Scan(
		&group.ID, &group.Name, &group.SecretHash, &isPublic,
		&group.ImageURL, &group.Introduction, &group.LikeCount, &createdAt,
	)
	if err != nil {
		return nil, err
	}
	group.IsPublic = isPublic != 0
	group.CreatedAt = fromMillis(createdAt)
	return group, nil
}
