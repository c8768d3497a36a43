package board

import (
	"time"

	"github.com/mmynk/memoryboard/internal/listing"
	"github.com/mmynk/memoryboard/internal/models"
)

// GroupSummary is the compact listing form of a group.
type GroupSummary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ImageURL     string    `json:"imageUrl"`
	IsPublic     bool      `json:"isPublic"`
	LikeCount    int64     `json:"likeCount"`
	BadgeCount   int       `json:"badgeCount"`
	PostCount    int       `json:"postCount"`
	Introduction string    `json:"introduction"`
	CreatedAt    time.Time `json:"createdAt"`
	DDay         int       `json:"dDay"`
}

func (g GroupSummary) SortID() string           { return g.ID }
func (g GroupSummary) SortCreatedAt() time.Time { return g.CreatedAt }

func (g GroupSummary) SortValue(key listing.SortKey) int64 {
	switch key {
	case listing.SortMostLiked:
		return g.LikeCount
	case listing.SortMostPosted:
		return int64(g.PostCount)
	case listing.SortMostBadge:
		return int64(g.BadgeCount)
	}
	return 0
}

// GroupView is a group with its full badge set.
type GroupView struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	ImageURL     string          `json:"imageUrl"`
	IsPublic     bool            `json:"isPublic"`
	LikeCount    int64           `json:"likeCount"`
	Badges       models.BadgeSet `json:"badges"`
	PostCount    int             `json:"postCount"`
	Introduction string          `json:"introduction"`
	CreatedAt    time.Time       `json:"createdAt"`
	DDay         int             `json:"dDay"`
}

// GroupDetail is a group together with its posts, newest first.
type GroupDetail struct {
	GroupView
	Posts []PostSummary `json:"posts"`
}

// PostSummary is the listing form of a post.
type PostSummary struct {
	ID           string    `json:"id"`
	GroupID      string    `json:"groupId"`
	Nickname     string    `json:"nickname"`
	Title        string    `json:"title"`
	ImageURL     string    `json:"imageUrl"`
	Tags         []string  `json:"tags"`
	Location     string    `json:"location"`
	Moment       time.Time `json:"moment"`
	IsPublic     bool      `json:"isPublic"`
	LikeCount    int64     `json:"likeCount"`
	CommentCount int       `json:"commentCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (p PostSummary) SortID() string           { return p.ID }
func (p PostSummary) SortCreatedAt() time.Time { return p.CreatedAt }

func (p PostSummary) SortValue(key listing.SortKey) int64 {
	switch key {
	case listing.SortMostLiked:
		return p.LikeCount
	case listing.SortMostCommented:
		return int64(p.CommentCount)
	}
	return 0
}

// PostView is a post including its content.
type PostView struct {
	PostSummary
	Content string `json:"content"`
}

// PostDetail is a post together with its comments, newest first.
type PostDetail struct {
	PostView
	Comments []CommentView `json:"comments"`
}

// CommentView is a comment without its secret.
type CommentView struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	Nickname  string    `json:"nickname"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func (c CommentView) SortID() string                   { return c.ID }
func (c CommentView) SortCreatedAt() time.Time         { return c.CreatedAt }
func (c CommentView) SortValue(listing.SortKey) int64 { return 0 }

func summarizeGroup(g *models.Group, postCount int, now time.Time) GroupSummary {
	return GroupSummary{
		ID:           g.ID,
		Name:         g.Name,
		ImageURL:     g.ImageURL,
		IsPublic:     g.IsPublic,
		LikeCount:    g.LikeCount,
		BadgeCount:   g.Badges.Len(),
		PostCount:    postCount,
		Introduction: g.Introduction,
		CreatedAt:    g.CreatedAt,
		DDay:         g.DDay(now),
	}
}

func viewGroup(g *models.Group, postCount int, now time.Time) GroupView {
	badges := g.Badges
	if badges == nil {
		badges = models.NewBadgeSet()
	}
	return GroupView{
		ID:           g.ID,
		Name:         g.Name,
		ImageURL:     g.ImageURL,
		IsPublic:     g.IsPublic,
		LikeCount:    g.LikeCount,
		Badges:       badges,
		PostCount:    postCount,
		Introduction: g.Introduction,
		CreatedAt:    g.CreatedAt,
		DDay:         g.DDay(now),
	}
}

func summarizePost(p *models.Post, commentCount int) PostSummary {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return PostSummary{
		ID:           p.ID,
		GroupID:      p.GroupID,
		Nickname:     p.Nickname,
		Title:        p.Title,
		ImageURL:     p.ImageURL,
		Tags:         tags,
		Location:     p.Location,
		Moment:       p.Moment,
		IsPublic:     p.IsPublic,
		LikeCount:    p.LikeCount,
		CommentCount: commentCount,
		CreatedAt:    p.CreatedAt,
	}
}

func viewPost(p *models.Post, commentCount int) PostView {
	return PostView{PostSummary: summarizePost(p, commentCount), Content: p.Content}
}

func viewComment(c *models.Comment) CommentView {
	return CommentView{
		ID:        c.ID,
		PostID:    c.PostID,
		Nickname:  c.Nickname,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}
