// Package badge decides which badges a group has earned.
//
// Evaluation is a pure function of a Snapshot of the group's counters and its
// posts. Callers persist only the badges returned by Missing, so running an
// evaluation twice on unchanged data performs no writes.
package badge

import (
	"slices"
	"time"

	"github.com/golang-sql/civil"

	"github.com/mmynk/memoryboard/internal/models"
)

// Rules holds the thresholds for every badge.
type Rules struct {
	HighVolumePosts   int
	AnniversaryDays   int
	PopularGroupLikes int64
	StreakDays        int
	LikedPostLikes    int64

	// Location defines calendar day boundaries for posting streaks.
	// Nil means UTC.
	Location *time.Location
}

// DefaultRules returns the standard thresholds.
func DefaultRules() Rules {
	return Rules{
		HighVolumePosts:   20,
		AnniversaryDays:   365,
		PopularGroupLikes: 10_000,
		StreakDays:        6,
		LikedPostLikes:    10_000,
		Location:          time.UTC,
	}
}

// PostStat is the part of a post that badge rules look at.
type PostStat struct {
	Moment    time.Time
	LikeCount int64
}

// Snapshot is the state of a group at evaluation time.
type Snapshot struct {
	PostCount int
	LikeCount int64
	CreatedAt time.Time
	Posts     []PostStat
}

// NewSnapshot builds a snapshot from a group and all of its live posts.
func NewSnapshot(group *models.Group, posts []*models.Post) Snapshot {
	stats := make([]PostStat, len(posts))
	for i, p := range posts {
		stats[i] = PostStat{Moment: p.Moment, LikeCount: p.LikeCount}
	}
	return Snapshot{
		PostCount: len(posts),
		LikeCount: group.LikeCount,
		CreatedAt: group.CreatedAt,
		Posts:     stats,
	}
}

// Qualifying returns every badge the snapshot satisfies, in models.AllBadges order.
func (r Rules) Qualifying(s Snapshot, now time.Time) []models.Badge {
	var out []models.Badge
	if s.PostCount >= r.HighVolumePosts {
		out = append(out, models.BadgeHighVolume)
	}
	if models.ElapsedDays(s.CreatedAt, now) >= r.AnniversaryDays {
		out = append(out, models.BadgeAnniversary)
	}
	if s.LikeCount >= r.PopularGroupLikes {
		out = append(out, models.BadgePopularGroup)
	}
	if r.hasStreak(s.Posts) {
		out = append(out, models.BadgePostingStreak)
	}
	if r.hasLikedPost(s.Posts) {
		out = append(out, models.BadgeLikedPost)
	}
	return out
}

// LongestStreak returns the longest run of consecutive calendar days that
// each hold at least one post moment.
func (r Rules) LongestStreak(posts []PostStat) int {
	if len(posts) == 0 {
		return 0
	}

	loc := r.Location
	if loc == nil {
		loc = time.UTC
	}

	days := make([]civil.Date, len(posts))
	for i, p := range posts {
		days[i] = civil.DateOf(p.Moment.In(loc))
	}
	slices.SortFunc(days, func(a, b civil.Date) int {
		return a.DaysSince(b)
	})

	run, longest := 1, 1
	for i := 1; i < len(days); i++ {
		switch days[i].DaysSince(days[i-1]) {
		case 0:
		case 1:
			run++
		default:
			run = 1
		}
		longest = max(longest, run)
	}
	return longest
}

func (r Rules) hasStreak(posts []PostStat) bool {
	return r.StreakDays > 0 && r.LongestStreak(posts) >= r.StreakDays
}

func (r Rules) hasLikedPost(posts []PostStat) bool {
	return slices.ContainsFunc(posts, func(p PostStat) bool {
		return p.LikeCount >= r.LikedPostLikes
	})
}

// Missing returns the badges in want that have is lacking.
func Missing(have models.BadgeSet, want []models.Badge) []models.Badge {
	var out []models.Badge
	for _, b := range want {
		if !have.Has(b) && !slices.Contains(out, b) {
			out = append(out, b)
		}
	}
	return out
}
