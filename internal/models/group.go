package models

import (
	"math"
	"time"
)

// Group represents a community that collects memories (posts).
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group.
	Name string `json:"name"`

	// SecretHash is the bcrypt hash of the group secret.
	SecretHash string `json:"-"`

	// IsPublic controls whether the detail view requires the secret.
	IsPublic bool `json:"isPublic"`

	// ImageURL is an opaque reference to the group image.
	ImageURL string `json:"imageUrl"`

	// Introduction is free text shown on the group page.
	Introduction string `json:"introduction"`

	// LikeCount is the number of likes the group received.
	// Only ever changed through atomic store increments.
	LikeCount int64 `json:"likeCount"`

	// Badges holds every badge granted to the group. Never shrinks.
	Badges BadgeSet `json:"badges"`

	// CreatedAt is when the group was created.
	CreatedAt time.Time `json:"createdAt"`
}

// DDay returns the number of days elapsed since the group was created,
// rounded up. A group created a moment ago is on day 1.
func (g *Group) DDay(now time.Time) int {
	return ElapsedDays(g.CreatedAt, now)
}

// ElapsedDays returns ceil(|now - since| / 24h).
func ElapsedDays(since, now time.Time) int {
	diff := now.Sub(since)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(float64(diff) / float64(24*time.Hour)))
}
