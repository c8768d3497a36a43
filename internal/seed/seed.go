// Package seed loads the sample groups used for local development.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/memoryboard/internal/auth"
	"github.com/mmynk/memoryboard/internal/cascade"
	"github.com/mmynk/memoryboard/internal/models"
	"github.com/mmynk/memoryboard/internal/storage"
)

// Sample is one seeded group with its plain secret.
type Sample struct {
	Name         string
	Secret       string
	ImageURL     string
	IsPublic     bool
	Introduction string
	LikeCount    int64
	CreatedAt    time.Time
}

// Samples are the groups written by Load.
var Samples = []Sample{
	{
		Name:         "Tech Enthusiasts",
		Secret:       "password123",
		ImageURL:     "https://example.com/tech.jpg",
		IsPublic:     true,
		Introduction: "A group for technology lovers.",
		LikeCount:    10,
		CreatedAt:    time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
	},
	{
		Name:         "Book Lovers",
		Secret:       "read4life",
		ImageURL:     "https://example.com/book.jpg",
		IsPublic:     false,
		Introduction: "Discuss and share your favorite books.",
		LikeCount:    25,
		CreatedAt:    time.Date(2023, 12, 15, 8, 30, 0, 0, time.UTC),
	},
	{
		Name:         "Fitness Freaks",
		Secret:       "stayfit2024",
		ImageURL:     "https://example.com/fitness.jpg",
		IsPublic:     true,
		Introduction: "Stay healthy and share your fitness journey.",
		LikeCount:    40,
		CreatedAt:    time.Date(2024, 2, 1, 7, 0, 0, 0, time.UTC),
	},
	{
		Name:         "Food Lovers",
		Secret:       "foodie",
		ImageURL:     "https://example.com/food.jpg",
		IsPublic:     true,
		Introduction: "Share recipes and food experiences.",
		LikeCount:    15,
		CreatedAt:    time.Date(2024, 3, 1, 12, 45, 0, 0, time.UTC),
	},
	{
		Name:         "Travel Addicts",
		Secret:       "wanderlust",
		ImageURL:     "https://example.com/travel.jpg",
		IsPublic:     false,
		Introduction: "For those who love to explore the world.",
		LikeCount:    5,
		CreatedAt:    time.Date(2023, 11, 20, 5, 0, 0, 0, time.UTC),
	},
}

// Report summarizes a Load.
type Report struct {
	Created []string
	Removed cascade.Result
}

// Load writes samples to store. With reset, every existing group is first
// removed together with its posts and comments, and children left without a
// parent are swept.
func Load(ctx context.Context, store storage.Store, gate auth.Gate, samples []Sample, reset bool) (*Report, error) {
	report := &Report{}

	if reset {
		existing, err := store.FindGroups(ctx, storage.GroupFilter{})
		if err != nil {
			return nil, fmt.Errorf("failed to list groups: %w", err)
		}

		coordinator := cascade.New(store)
		for _, g := range existing {
			res, err := coordinator.DeleteGroup(ctx, g.ID)
			if err != nil {
				return report, fmt.Errorf("failed to reset group %s: %w", g.ID, err)
			}
			report.Removed.Groups += res.Groups
			report.Removed.Posts += res.Posts
			report.Removed.Comments += res.Comments
		}

		swept, err := coordinator.SweepOrphans(ctx)
		if err != nil {
			return report, fmt.Errorf("failed to sweep orphans: %w", err)
		}
		report.Removed.Posts += swept.Posts
		report.Removed.Comments += swept.Comments

		slog.Info("Existing groups removed",
			"groups", report.Removed.Groups,
			"posts", report.Removed.Posts,
			"comments", report.Removed.Comments,
		)
	}

	for _, s := range samples {
		hashed, err := gate.Hash(s.Secret)
		if err != nil {
			return report, fmt.Errorf("failed to hash secret of %q: %w", s.Name, err)
		}

		group := &models.Group{
			Name:         s.Name,
			SecretHash:   hashed,
			IsPublic:     s.IsPublic,
			ImageURL:     s.ImageURL,
			Introduction: s.Introduction,
			LikeCount:    s.LikeCount,
			Badges:       models.NewBadgeSet(),
			CreatedAt:    s.CreatedAt,
		}
		if err := store.CreateGroup(ctx, group); err != nil {
			return report, fmt.Errorf("failed to create group %q: %w", s.Name, err)
		}

		report.Created = append(report.Created, group.ID)
		slog.Debug("Group seeded", "group_id", group.ID, "name", group.Name)
	}

	return report, nil
}
