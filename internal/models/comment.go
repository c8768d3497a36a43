package models

import "time"

// Comment is a reply to a post.
type Comment struct {
	ID string `json:"id"`

	// PostID is the owning post. Must reference a live post.
	PostID string `json:"postId"`

	Nickname   string    `json:"nickname"`
	Content    string    `json:"content"`
	SecretHash string    `json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
}
