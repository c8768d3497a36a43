package docstore

import (
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mmynk/memoryboard/internal/models"
)

// groupDoc is the stored form of a group.
type groupDoc struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	SecretHash   string    `bson:"secret_hash"`
	IsPublic     bool      `bson:"is_public"`
	ImageURL     string    `bson:"image_url"`
	Introduction string    `bson:"introduction"`
	LikeCount    int64     `bson:"like_count"`
	Badges       []string  `bson:"badges"`
	CreatedAt    time.Time `bson:"created_at"`
}

func newGroupDoc(g *models.Group) *groupDoc {
	badges := make([]string, 0, g.Badges.Len())
	for _, b := range g.Badges.Sorted() {
		badges = append(badges, string(b))
	}
	return &groupDoc{
		ID:           g.ID,
		Name:         g.Name,
		SecretHash:   g.SecretHash,
		IsPublic:     g.IsPublic,
		ImageURL:     g.ImageURL,
		Introduction: g.Introduction,
		LikeCount:    g.LikeCount,
		Badges:       badges,
		CreatedAt:    g.CreatedAt,
	}
}

func (d *groupDoc) model() *models.Group {
	badges := models.NewBadgeSet()
	for _, b := range d.Badges {
		if !models.Badge(b).Valid() {
			slog.Warn("Skipping unknown stored badge", "group_id", d.ID, "badge", b)
			continue
		}
		badges.Add(models.Badge(b))
	}
	return &models.Group{
		ID:           d.ID,
		Name:         d.Name,
		SecretHash:   d.SecretHash,
		IsPublic:     d.IsPublic,
		ImageURL:     d.ImageURL,
		Introduction: d.Introduction,
		LikeCount:    d.LikeCount,
		Badges:       badges,
		CreatedAt:    d.CreatedAt.UTC(),
	}
}

// postDoc is the stored form of a post.
type postDoc struct {
	ID         string    `bson:"_id"`
	GroupID    string    `bson:"group_id"`
	Nickname   string    `bson:"nickname"`
	Title      string    `bson:"title"`
	Content    string    `bson:"content"`
	SecretHash string    `bson:"secret_hash"`
	ImageURL   string    `bson:"image_url"`
	Tags       []string  `bson:"tags"`
	LikeCount  int64     `bson:"like_count"`
	Location   string    `bson:"location"`
	Moment     time.Time `bson:"moment"`
	IsPublic   bool      `bson:"is_public"`
	CreatedAt  time.Time `bson:"created_at"`
}

func newPostDoc(p *models.Post) *postDoc {
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	return &postDoc{
		ID:         p.ID,
		GroupID:    p.GroupID,
		Nickname:   p.Nickname,
		Title:      p.Title,
		Content:    p.Content,
		SecretHash: p.SecretHash,
		ImageURL:   p.ImageURL,
		Tags:       tags,
		LikeCount:  p.LikeCount,
		Location:   p.Location,
		Moment:     p.Moment,
		IsPublic:   p.IsPublic,
		CreatedAt:  p.CreatedAt,
	}
}

func (d *postDoc) model() *models.Post {
	var tags []string
	if len(d.Tags) > 0 {
		tags = d.Tags
	}
	return &models.Post{
		ID:         d.ID,
		GroupID:    d.GroupID,
		Nickname:   d.Nickname,
		Title:      d.Title,
		Content:    d.Content,
		SecretHash: d.SecretHash,
		ImageURL:   d.ImageURL,
		Tags:       tags,
		LikeCount:  d.LikeCount,
		Location:   d.Location,
		Moment:     d.Moment.UTC(),
		IsPublic:   d.IsPublic,
		CreatedAt:  d.CreatedAt.UTC(),
	}
}

// commentDoc is the stored form of a comment.
type commentDoc struct {
	ID         string    `bson:"_id"`
	PostID     string    `bson:"post_id"`
	Nickname   string    `bson:"nickname"`
	Content    string    `bson:"content"`
	SecretHash string    `bson:"secret_hash"`
	CreatedAt  time.Time `bson:"created_at"`
}

func newCommentDoc(c *models.Comment) *commentDoc {
	return &commentDoc{
		ID:         c.ID,
		PostID:     c.PostID,
		Nickname:   c.Nickname,
		Content:    c.Content,
		SecretHash: c.SecretHash,
		CreatedAt:  c.CreatedAt,
	}
}

func (d *commentDoc) model() *models.Comment {
	return &models.Comment{
		ID:         d.ID,
		PostID:     d.PostID,
		Nickname:   d.Nickname,
		Content:    d.Content,
		SecretHash: d.SecretHash,
		CreatedAt:  d.CreatedAt.UTC(),
	}
}

// parentRef decodes only the parent reference of a child document.
type parentRef struct {
	GroupID string `bson:"group_id"`
	PostID  string `bson:"post_id"`
}

func mongoIndex(field string) mongo.IndexModel {
	return mongo.IndexModel{Keys: bson.D{{Key: field, Value: 1}}}
}
