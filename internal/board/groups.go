package board

import (
	"context"
	"log/slog"
	"time"

	"github.com/mmynk/memoryboard/internal/cascade"
	"github.com/mmynk/memoryboard/internal/listing"
	"github.com/mmynk/memoryboard/internal/models"
	"github.com/mmynk/memoryboard/internal/storage"
)

// CreateGroupInput holds the fields of a new group.
type CreateGroupInput struct {
	Name         string `valid:"required"`
	Secret       string `valid:"required"`
	ImageURL     string `valid:"-"`
	IsPublic     bool   `valid:"-"`
	Introduction string `valid:"-"`
}

// UpdateGroupInput changes the fields that are set. Secret must match the
// current secret; a non-empty NewSecret replaces it.
type UpdateGroupInput struct {
	Secret       string
	Name         *string
	ImageURL     *string
	IsPublic     *bool
	Introduction *string
	NewSecret    string
}

// GroupQuery filters, sorts and pages a group listing.
type GroupQuery struct {
	Page     int
	PageSize int
	Sort     string
	Keyword  string
	// IsPublic restricts the listing to one visibility when set.
	IsPublic *bool
}

// Verification is the result of a secret check.
type Verification struct {
	Matched bool
	// Pass opens the group detail without the secret until ExpiresAt.
	// Only set for matched group secrets.
	Pass      string
	ExpiresAt time.Time
}

// CreateGroup stores a new group and evaluates its badges.
func (s *Service) CreateGroup(ctx context.Context, in CreateGroupInput) (*GroupView, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	hashed, err := s.hashSecret(in.Secret)
	if err != nil {
		return nil, err
	}

	group := &models.Group{
		Name:         in.Name,
		SecretHash:   hashed,
		IsPublic:     in.IsPublic,
		ImageURL:     in.ImageURL,
		Introduction: in.Introduction,
		Badges:       models.NewBadgeSet(),
	}
	if err := s.store.CreateGroup(ctx, group); err != nil {
		return nil, internal("failed to create group", err)
	}

	slog.Info("Group created", "group_id", group.ID, "public", group.IsPublic)

	s.refreshBadges(ctx, group)

	view := viewGroup(group, 0, s.now())
	return &view, nil
}

// ListGroups returns one page of groups.
func (s *Service) ListGroups(ctx context.Context, q GroupQuery) (*listing.Result[GroupSummary], error) {
	key, err := listing.ParseGroupSort(q.Sort)
	if err != nil {
		return nil, invalid("%s", err.Error())
	}
	page := s.page(q.Page, q.PageSize)

	groups, err := s.store.FindGroups(ctx, storage.GroupFilter{Public: q.IsPublic, Keyword: q.Keyword})
	if err != nil {
		return nil, internal("failed to list groups", err)
	}

	ids := make([]string, len(groups))
	for i, g := range groups {
		ids[i] = g.ID
	}
	counts, err := s.store.CountPostsByGroup(ctx, ids...)
	if err != nil {
		return nil, internal("failed to count posts", err)
	}

	now := s.now()
	summaries := make([]GroupSummary, len(groups))
	for i, g := range groups {
		summaries[i] = summarizeGroup(g, counts[g.ID], now)
	}

	listing.Sort(summaries, key)
	result := listing.Paginate(summaries, page)
	return &result, nil
}

// GetGroupDetail returns a group with its posts. Private groups need the
// matching secret or a valid access pass for the group.
func (s *Service) GetGroupDetail(ctx context.Context, groupID, secret, pass string) (*GroupDetail, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, loadErr(err, "group", groupID)
	}

	if !group.IsPublic && !s.passes.Allows(pass, group.ID) && !s.gate.Verify(secret, group.SecretHash) {
		return nil, forbidden("group")
	}

	posts, err := s.store.FindPosts(ctx, storage.PostFilter{GroupID: groupID})
	if err != nil {
		return nil, internal("failed to list posts", err)
	}

	summaries, err := s.summarizePosts(ctx, posts)
	if err != nil {
		return nil, err
	}
	listing.Sort(summaries, listing.SortLatest)

	return &GroupDetail{
		GroupView: viewGroup(group, len(posts), s.now()),
		Posts:     summaries,
	}, nil
}

// UpdateGroup changes a group after checking its secret.
func (s *Service) UpdateGroup(ctx context.Context, groupID string, in UpdateGroupInput) (*GroupView, error) {
	if in.Name != nil && *in.Name == "" {
		return nil, invalid("Name: non zero value required")
	}

	group, err := s.authorizeGroup(ctx, groupID, in.Secret)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		group.Name = *in.Name
	}
	if in.ImageURL != nil {
		group.ImageURL = *in.ImageURL
	}
	if in.IsPublic != nil {
		group.IsPublic = *in.IsPublic
	}
	if in.Introduction != nil {
		group.Introduction = *in.Introduction
	}
	if in.NewSecret != "" {
		if group.SecretHash, err = s.hashSecret(in.NewSecret); err != nil {
			return nil, err
		}
	}

	if err := s.store.UpdateGroup(ctx, group); err != nil {
		return nil, loadErr(err, "group", groupID)
	}

	slog.Info("Group updated", "group_id", groupID)

	s.refreshBadges(ctx, group)

	counts, err := s.store.CountPostsByGroup(ctx, groupID)
	if err != nil {
		return nil, internal("failed to count posts", err)
	}

	view := viewGroup(group, counts[groupID], s.now())
	return &view, nil
}

// DeleteGroup removes a group, its posts and their comments after checking
// the group secret.
func (s *Service) DeleteGroup(ctx context.Context, groupID, secret string) error {
	if _, err := s.authorizeGroup(ctx, groupID, secret); err != nil {
		return err
	}

	res, err := s.cascade.DeleteGroup(ctx, groupID)
	s.recordCascade(res.Groups, res.Posts, res.Comments)
	if err != nil {
		s.metrics.Failed("cascade")
		return internal("failed to delete group", err)
	}

	slog.Info("Group deleted", "group_id", groupID, "posts", res.Posts, "comments", res.Comments)

	return nil
}

// SweepOrphans removes posts and comments whose parent no longer exists.
func (s *Service) SweepOrphans(ctx context.Context) (cascade.Result, error) {
	res, err := s.cascade.SweepOrphans(ctx)
	s.recordCascade(res.Groups, res.Posts, res.Comments)
	if err != nil {
		s.metrics.Failed("sweep")
		return res, internal("failed to sweep orphans", err)
	}

	if res.Posts > 0 || res.Comments > 0 {
		slog.Info("Orphans swept", "posts", res.Posts, "comments", res.Comments)
	}

	return res, nil
}

// LikeGroup adds one like and returns the new count.
func (s *Service) LikeGroup(ctx context.Context, groupID string) (int64, error) {
	likes, err := s.store.IncrementGroupLikes(ctx, groupID)
	if err != nil {
		return 0, loadErr(err, "group", groupID)
	}
	s.metrics.Liked("group")

	s.refreshBadgesFor(ctx, groupID)

	return likes, nil
}

// IsGroupPublic reports the visibility of a group.
func (s *Service) IsGroupPublic(ctx context.Context, groupID string) (bool, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return false, loadErr(err, "group", groupID)
	}
	return group.IsPublic, nil
}

// VerifyGroupSecret checks a group secret. A match also yields an access pass.
func (s *Service) VerifyGroupSecret(ctx context.Context, groupID, secret string) (*Verification, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, loadErr(err, "group", groupID)
	}

	if !s.gate.Verify(secret, group.SecretHash) {
		return &Verification{Matched: false}, nil
	}

	pass, err := s.passes.Issue(group.ID)
	if err != nil {
		return nil, internal("failed to issue access pass", err)
	}

	claims, err := s.passes.Validate(pass)
	if err != nil {
		return nil, internal("failed to issue access pass", err)
	}

	return &Verification{Matched: true, Pass: pass, ExpiresAt: claims.ExpiresAt.Time}, nil
}

func (s *Service) authorizeGroup(ctx context.Context, groupID, secret string) (*models.Group, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, loadErr(err, "group", groupID)
	}
	if !s.gate.Verify(secret, group.SecretHash) {
		return nil, forbidden("group")
	}
	return group, nil
}

func (s *Service) recordCascade(groups, posts, comments int) {
	s.metrics.Deleted("group", groups)
	s.metrics.Deleted("post", posts)
	s.metrics.Deleted("comment", comments)
}
