package docstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mmynk/memoryboard/internal/models"
	"github.com/mmynk/memoryboard/internal/storage"
)

// CreateGroup inserts a new group document.
func (s *Store) CreateGroup(ctx context.Context, group *models.Group) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt.IsZero() {
		group.CreatedAt = s.timestamp()
	}
	if group.Badges == nil {
		group.Badges = models.NewBadgeSet()
	}

	if _, err := s.groups.InsertOne(ctx, newGroupDoc(group)); err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	return nil
}

// GetGroup retrieves a group by ID.
func (s *Store) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	var doc groupDoc
	err := s.groups.FindOne(ctx, bson.M{"_id": groupID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return doc.model(), nil
}

// UpdateGroup sets the mutable fields of a group.
func (s *Store) UpdateGroup(ctx context.Context, group *models.Group) error {
	result, err := s.groups.UpdateOne(ctx, bson.M{"_id": group.ID}, bson.M{
		"$set": bson.M{
			"name":         group.Name,
			"secret_hash":  group.SecretHash,
			"is_public":    group.IsPublic,
			"image_url":    group.ImageURL,
			"introduction": group.Introduction,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to update group: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("group %s: %w", group.ID, storage.ErrNotFound)
	}

	return nil
}

// DeleteGroup removes a group document.
func (s *Store) DeleteGroup(ctx context.Context, groupID string) error {
	if _, err := s.groups.DeleteOne(ctx, bson.M{"_id": groupID}); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}

// FindGroups returns all groups matching the filter.
func (s *Store) FindGroups(ctx context.Context, filter storage.GroupFilter) ([]*models.Group, error) {
	query := bson.M{}
	if filter.Public != nil {
		query["is_public"] = *filter.Public
	}
	if filter.Keyword != "" {
		query["name"] = keywordMatch(filter.Keyword)
	}

	cursor, err := s.groups.Find(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find groups: %w", err)
	}

	var docs []groupDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode groups: %w", err)
	}

	groups := make([]*models.Group, len(docs))
	for i := range docs {
		groups[i] = docs[i].model()
	}

	return groups, nil
}

// IncrementGroupLikes adds one like and reads back the new count in one
// FindOneAndUpdate.
func (s *Store) IncrementGroupLikes(ctx context.Context, groupID string) (int64, error) {
	return incrementLikes(ctx, s.groups, groupID, "group")
}

// AddGroupBadges adds badges with $addToSet so existing ones stay untouched.
func (s *Store) AddGroupBadges(ctx context.Context, groupID string, badges ...models.Badge) (int, error) {
	if len(badges) == 0 {
		n, err := s.groups.CountDocuments(ctx, bson.M{"_id": groupID})
		if err != nil {
			return 0, fmt.Errorf("failed to check group: %w", err)
		}
		if n == 0 {
			return 0, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
		}
		return 0, nil
	}

	added := 0
	for _, badge := range badges {
		result, err := s.groups.UpdateOne(ctx, bson.M{"_id": groupID}, bson.M{
			"$addToSet": bson.M{"badges": string(badge)},
		})
		if err != nil {
			return added, fmt.Errorf("failed to add badge: %w", err)
		}
		if result.MatchedCount == 0 {
			return added, fmt.Errorf("group %s: %w", groupID, storage.ErrNotFound)
		}
		added += int(result.ModifiedCount)
	}

	return added, nil
}

// keywordMatch builds a case-insensitive substring match.
func keywordMatch(keyword string) bson.M {
	return bson.M{"$regex": regexp.QuoteMeta(keyword), "$options": "i"}
}
