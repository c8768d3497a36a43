package models

import "time"

// Post represents a memory shared inside a group.
type Post struct {
	ID string `json:"id"`

	// GroupID is the owning group. Must reference a live group.
	GroupID string `json:"groupId"`

	Nickname string `json:"nickname"`
	Title    string `json:"title"`
	Content  string `json:"content"`

	// SecretHash is the bcrypt hash of the post secret.
	SecretHash string `json:"-"`

	ImageURL string   `json:"imageUrl"`
	Tags     []string `json:"tags"`

	// LikeCount is only ever changed through atomic store increments.
	LikeCount int64 `json:"likeCount"`

	Location string `json:"location"`

	// Moment is the author supplied time the memory happened.
	// Posting streaks are evaluated on moments, not on CreatedAt.
	Moment time.Time `json:"moment"`

	IsPublic  bool      `json:"isPublic"`
	CreatedAt time.Time `json:"createdAt"`
}
