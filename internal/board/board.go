// Package board implements the group, post and comment operations.
//
// Every mutation goes through the entity store and is followed by either a
// cascading delete or a badge evaluation for the affected group. Reads are
// projected into views whose derived counts come from live child cardinality.
package board

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/memoryboard/internal/auth"
	"github.com/mmynk/memoryboard/internal/badge"
	"github.com/mmynk/memoryboard/internal/cascade"
	"github.com/mmynk/memoryboard/internal/listing"
	"github.com/mmynk/memoryboard/internal/metrics"
	"github.com/mmynk/memoryboard/internal/models"
	"github.com/mmynk/memoryboard/internal/storage"
)

// Service runs board operations against a store.
type Service struct {
	store   storage.Store
	gate    auth.Gate
	passes  *auth.PassManager
	cascade *cascade.Coordinator
	rules   badge.Rules
	metrics *metrics.Metrics
	now     func() time.Time

	defaultPageSize int
	maxPageSize     int
}

// Option configures a Service.
type Option func(*Service)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRules replaces the default badge rules.
func WithRules(rules badge.Rules) Option {
	return func(s *Service) { s.rules = rules }
}

// WithMetrics records board counters on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithPageSizes sets the default and maximum listing page size.
func WithPageSizes(defaultSize, maxSize int) Option {
	return func(s *Service) {
		s.defaultPageSize = defaultSize
		s.maxPageSize = maxSize
	}
}

// New creates a board service.
func New(store storage.Store, gate auth.Gate, passes *auth.PassManager, opts ...Option) *Service {
	s := &Service{
		store:           store,
		gate:            gate,
		passes:          passes,
		cascade:         cascade.New(store),
		rules:           badge.DefaultRules(),
		now:             time.Now,
		defaultPageSize: listing.DefaultPageSize,
		maxPageSize:     listing.MaxPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.New(prometheus.NewRegistry())
	}
	return s
}

func (s *Service) page(number, size int) listing.Page {
	return listing.Normalize(number, size, s.defaultPageSize, s.maxPageSize)
}

// validate checks `valid` struct tags.
func validate(in any) error {
	ok, err := govalidator.ValidateStruct(in)
	if err != nil {
		return invalid("%s", err.Error())
	}
	if !ok {
		return invalid("validation failed")
	}
	return nil
}

func (s *Service) hashSecret(secret string) (string, error) {
	hashed, err := s.gate.Hash(secret)
	switch {
	case errors.Is(err, auth.ErrEmptySecret), errors.Is(err, auth.ErrSecretTooLong):
		return "", invalid("%s", err.Error())
	case err != nil:
		return "", internal("failed to hash secret", err)
	}
	return hashed, nil
}

// loadErr maps a store lookup failure.
func loadErr(err error, entity, id string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return notFound(entity, id)
	}
	return internal("failed to load "+entity, err)
}

// EvaluateBadges grants every badge the group newly qualifies for and returns them.
// Nothing is written when no new badge qualifies.
func (s *Service) EvaluateBadges(ctx context.Context, groupID string) ([]models.Badge, error) {
	var (
		group *models.Group
		posts []*models.Post
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		group, err = s.store.GetGroup(gctx, groupID)
		return err
	})
	g.Go(func() error {
		var err error
		posts, err = s.store.FindPosts(gctx, storage.PostFilter{GroupID: groupID})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, loadErr(err, "group", groupID)
	}

	want := s.rules.Qualifying(badge.NewSnapshot(group, posts), s.now())
	missing := badge.Missing(group.Badges, want)
	if len(missing) == 0 {
		return nil, nil
	}

	if _, err := s.store.AddGroupBadges(ctx, groupID, missing...); err != nil {
		return nil, loadErr(err, "group", groupID)
	}
	s.metrics.Granted(missing...)

	slog.Info("Badges granted", "group_id", groupID, "badges", missing)

	return missing, nil
}

// refreshBadges runs badge evaluation after a primary write. Failures are
// logged and leave the write in place; a later trigger converges.
func (s *Service) refreshBadges(ctx context.Context, group *models.Group) {
	granted, err := s.EvaluateBadges(ctx, group.ID)
	if err != nil {
		s.metrics.Failed("badges")
		slog.Error("Badge evaluation failed", "group_id", group.ID, "error", err)
		return
	}
	if group.Badges == nil {
		group.Badges = models.NewBadgeSet()
	}
	for _, b := range granted {
		group.Badges.Add(b)
	}
}

// refreshBadgesFor evaluates the group owning a post.
func (s *Service) refreshBadgesFor(ctx context.Context, groupID string) {
	s.refreshBadges(ctx, &models.Group{ID: groupID})
}

// ReevaluateBadges re-runs badge evaluation for one group.
func (s *Service) ReevaluateBadges(ctx context.Context, groupID string) ([]models.Badge, error) {
	return s.EvaluateBadges(ctx, groupID)
}

// ReevaluateAllBadges re-runs badge evaluation for every group and returns
// the badges granted per group. Groups that gained nothing are left out.
func (s *Service) ReevaluateAllBadges(ctx context.Context) (map[string][]models.Badge, error) {
	groups, err := s.store.FindGroups(ctx, storage.GroupFilter{})
	if err != nil {
		return nil, internal("failed to list groups", err)
	}

	granted := make(map[string][]models.Badge)
	for _, group := range groups {
		badges, err := s.EvaluateBadges(ctx, group.ID)
		if KindOf(err) == KindNotFound {
			continue
		}
		if err != nil {
			return granted, err
		}
		if len(badges) > 0 {
			granted[group.ID] = badges
		}
	}

	return granted, nil
}
