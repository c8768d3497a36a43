package service

import (
	"github.com/mmynk/memoryboard/internal/board"
	"github.com/mmynk/memoryboard/internal/listing"
	"github.com/mmynk/memoryboard/pkg/api"
)

func groupSummaryToAPI(g board.GroupSummary) *api.Group {
	return &api.Group{
		ID:           g.ID,
		Name:         g.Name,
		ImageURL:     g.ImageURL,
		IsPublic:     g.IsPublic,
		LikeCount:    g.LikeCount,
		BadgeCount:   g.BadgeCount,
		PostCount:    g.PostCount,
		Introduction: g.Introduction,
		CreatedAt:    g.CreatedAt,
		DDay:         g.DDay,
	}
}

func groupViewToAPI(g *board.GroupView) *api.Group {
	badges := make([]string, 0, g.Badges.Len())
	for _, b := range g.Badges.Sorted() {
		badges = append(badges, string(b))
	}
	return &api.Group{
		ID:           g.ID,
		Name:         g.Name,
		ImageURL:     g.ImageURL,
		IsPublic:     g.IsPublic,
		LikeCount:    g.LikeCount,
		Badges:       badges,
		BadgeCount:   len(badges),
		PostCount:    g.PostCount,
		Introduction: g.Introduction,
		CreatedAt:    g.CreatedAt,
		DDay:         g.DDay,
	}
}

func postSummaryToAPI(p board.PostSummary) *api.Post {
	return &api.Post{
		ID:           p.ID,
		GroupID:      p.GroupID,
		Nickname:     p.Nickname,
		Title:        p.Title,
		ImageURL:     p.ImageURL,
		Tags:         p.Tags,
		Location:     p.Location,
		Moment:       p.Moment,
		IsPublic:     p.IsPublic,
		LikeCount:    p.LikeCount,
		CommentCount: p.CommentCount,
		CreatedAt:    p.CreatedAt,
	}
}

func postViewToAPI(p *board.PostView) *api.Post {
	post := postSummaryToAPI(p.PostSummary)
	post.Content = p.Content
	return post
}

func commentToAPI(c board.CommentView) *api.Comment {
	return &api.Comment{
		ID:        c.ID,
		PostID:    c.PostID,
		Nickname:  c.Nickname,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

func pageInfo[T any](res *listing.Result[T]) api.PageInfo {
	return api.PageInfo{
		CurrentPage:    res.CurrentPage,
		TotalPages:     res.TotalPages,
		TotalItemCount: res.TotalItemCount,
	}
}
