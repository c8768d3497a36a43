package models

import (
	"encoding/json"
	"slices"
)

// Badge identifies an achievement granted to a group.
type Badge string

const (
	// BadgeHighVolume is granted once a group holds 20 or more posts.
	BadgeHighVolume Badge = "high-volume"
	// BadgeAnniversary is granted once a group is a year old.
	BadgeAnniversary Badge = "anniversary"
	// BadgePopularGroup is granted once a group received 10,000 likes.
	BadgePopularGroup Badge = "popular-group"
	// BadgePostingStreak is granted for posts on 6 consecutive days.
	BadgePostingStreak Badge = "posting-streak"
	// BadgeLikedPost is granted once any post of the group received 10,000 likes.
	BadgeLikedPost Badge = "liked-post"
)

// AllBadges lists every known badge in a stable order.
var AllBadges = []Badge{
	BadgeHighVolume,
	BadgeAnniversary,
	BadgePopularGroup,
	BadgePostingStreak,
	BadgeLikedPost,
}

// Valid reports whether b is a known badge.
func (b Badge) Valid() bool {
	return slices.Contains(AllBadges, b)
}

// BadgeSet is a deduplicated set of badges.
type BadgeSet map[Badge]struct{}

// NewBadgeSet returns a set holding the given badges.
func NewBadgeSet(badges ...Badge) BadgeSet {
	set := make(BadgeSet, len(badges))
	for _, b := range badges {
		set[b] = struct{}{}
	}
	return set
}

// Has reports whether the set contains b.
func (s BadgeSet) Has(b Badge) bool {
	_, ok := s[b]
	return ok
}

// Add inserts b and reports whether it was new.
func (s BadgeSet) Add(b Badge) bool {
	if s.Has(b) {
		return false
	}
	s[b] = struct{}{}
	return true
}

// Len returns the number of badges in the set.
func (s BadgeSet) Len() int {
	return len(s)
}

// Sorted returns the badges in lexical order.
func (s BadgeSet) Sorted() []Badge {
	out := make([]Badge, 0, len(s))
	for b := range s {
		out = append(out, b)
	}
	slices.Sort(out)
	return out
}

// MarshalJSON encodes the set as a sorted array.
func (s BadgeSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes an array into the set, dropping duplicates.
func (s *BadgeSet) UnmarshalJSON(data []byte) error {
	var list []Badge
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*s = NewBadgeSet(list...)
	return nil
}
