package listing

import (
	"cmp"
	"fmt"
	"slices"
	"time"
)

// SortKey names a listing order.
type SortKey string

const (
	SortLatest        SortKey = "latest"
	SortMostLiked     SortKey = "mostLiked"
	SortMostPosted    SortKey = "mostPosted"
	SortMostBadge     SortKey = "mostBadge"
	SortMostCommented SortKey = "mostCommented"
)

var (
	groupKeys = []SortKey{SortLatest, SortMostLiked, SortMostPosted, SortMostBadge}
	postKeys  = []SortKey{SortLatest, SortMostLiked, SortMostCommented}
)

// ParseGroupSort validates a sort key for group listings. Empty means latest.
func ParseGroupSort(raw string) (SortKey, error) {
	return parseSort(raw, groupKeys, "groups")
}

// ParsePostSort validates a sort key for post listings. Empty means latest.
func ParsePostSort(raw string) (SortKey, error) {
	return parseSort(raw, postKeys, "posts")
}

func parseSort(raw string, allowed []SortKey, kind string) (SortKey, error) {
	if raw == "" {
		return SortLatest, nil
	}
	key := SortKey(raw)
	if !slices.Contains(allowed, key) {
		return "", fmt.Errorf("unsupported sort %q for %s", raw, kind)
	}
	return key, nil
}

// Sortable exposes the fields every listing order can use.
type Sortable interface {
	SortID() string
	SortCreatedAt() time.Time
	// SortValue returns the primary value for key. Latest is handled by
	// the creation time and never asked for.
	SortValue(key SortKey) int64
}

// Sort orders items by key descending, then newest first, then by ID.
func Sort[T Sortable](items []T, key SortKey) {
	slices.SortStableFunc(items, func(a, b T) int {
		if key != SortLatest {
			if c := cmp.Compare(b.SortValue(key), a.SortValue(key)); c != 0 {
				return c
			}
		}
		if c := b.SortCreatedAt().Compare(a.SortCreatedAt()); c != 0 {
			return c
		}
		return cmp.Compare(a.SortID(), b.SortID())
	})
}
