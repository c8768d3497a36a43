package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElapsedDays(t *testing.T) {
	created := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"same instant", created, 0},
		{"one minute later", created.Add(time.Minute), 1},
		{"exactly one day", created.Add(24 * time.Hour), 1},
		{"just over one day", created.Add(24*time.Hour + time.Second), 2},
		{"one year", created.Add(365 * 24 * time.Hour), 365},
		{"clock behind creation", created.Add(-36 * time.Hour), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ElapsedDays(created, tt.now))
		})
	}

	group := &Group{CreatedAt: created}
	assert.Equal(t, 2, group.DDay(created.Add(25*time.Hour)))
}

func TestBadgeSet(t *testing.T) {
	set := NewBadgeSet(BadgeAnniversary, BadgeAnniversary)
	assert.Equal(t, 1, set.Len())

	assert.True(t, set.Add(BadgeHighVolume))
	assert.False(t, set.Add(BadgeHighVolume))
	assert.True(t, set.Has(BadgeHighVolume))
	assert.False(t, set.Has(BadgeLikedPost))

	assert.Equal(t, []Badge{BadgeAnniversary, BadgeHighVolume}, set.Sorted())
}

func TestBadgeValid(t *testing.T) {
	for _, b := range AllBadges {
		assert.True(t, b.Valid(), b)
	}
	assert.False(t, Badge("gold-star").Valid())
}

func TestBadgeSetJSON(t *testing.T) {
	group := Group{
		ID:         "g1",
		SecretHash: "$2a$10$secret",
		Badges:     NewBadgeSet(BadgePostingStreak, BadgeAnniversary),
	}

	data, err := json.Marshal(group)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")
	assert.Contains(t, string(data), `"badges":["anniversary","posting-streak"]`)

	var decoded Group
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 2, decoded.Badges.Len())
	assert.True(t, decoded.Badges.Has(BadgePostingStreak))
}
