package sqlite

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/memoryboard/internal/models"
	"github.com/mmynk/memoryboard/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to create store")
	t.Cleanup(func() { store.Close() })

	return store
}

func createGroup(t *testing.T, store *SQLiteStore, name string, public bool) *models.Group {
	t.Helper()

	group := &models.Group{Name: name, SecretHash: "hash", IsPublic: public}
	require.NoError(t, store.CreateGroup(context.Background(), group))
	return group
}

func createPost(t *testing.T, store *SQLiteStore, groupID, title string, tags ...string) *models.Post {
	t.Helper()

	post := &models.Post{
		GroupID:    groupID,
		Nickname:   "nick",
		Title:      title,
		Content:    "content",
		SecretHash: "hash",
		Tags:       tags,
		Moment:     time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		IsPublic:   true,
	}
	require.NoError(t, store.CreatePost(context.Background(), post))
	return post
}

func TestGroups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateGroup generates ID and CreatedAt", func(t *testing.T) {
		group := createGroup(t, store, "Tech Enthusiasts", true)

		assert.NotEmpty(t, group.ID)
		assert.False(t, group.CreatedAt.IsZero())
		assert.Equal(t, 0, group.Badges.Len())
	})

	t.Run("GetGroup retrieves complete group", func(t *testing.T) {
		original := &models.Group{
			Name:         "Book Lovers",
			SecretHash:   "hash",
			IsPublic:     false,
			ImageURL:     "https://example.com/book.jpg",
			Introduction: "Discuss and share your favorite books.",
			Badges:       models.NewBadgeSet(models.BadgeAnniversary),
		}
		require.NoError(t, store.CreateGroup(ctx, original))

		retrieved, err := store.GetGroup(ctx, original.ID)
		require.NoError(t, err)

		assert.Equal(t, original.Name, retrieved.Name)
		assert.Equal(t, original.SecretHash, retrieved.SecretHash)
		assert.False(t, retrieved.IsPublic)
		assert.Equal(t, original.ImageURL, retrieved.ImageURL)
		assert.Equal(t, original.Introduction, retrieved.Introduction)
		assert.True(t, retrieved.Badges.Has(models.BadgeAnniversary))
		assert.True(t, original.CreatedAt.Equal(retrieved.CreatedAt))
	})

	t.Run("GetGroup returns ErrNotFound for nonexistent group", func(t *testing.T) {
		_, err := store.GetGroup(ctx, "nonexistent-id")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("UpdateGroup keeps likes and badges", func(t *testing.T) {
		group := createGroup(t, store, "Fitness Freaks", true)
		_, err := store.IncrementGroupLikes(ctx, group.ID)
		require.NoError(t, err)
		_, err = store.AddGroupBadges(ctx, group.ID, models.BadgeHighVolume)
		require.NoError(t, err)

		group.Name = "Fitness Fanatics"
		group.IsPublic = false
		require.NoError(t, store.UpdateGroup(ctx, group))

		retrieved, err := store.GetGroup(ctx, group.ID)
		require.NoError(t, err)
		assert.Equal(t, "Fitness Fanatics", retrieved.Name)
		assert.False(t, retrieved.IsPublic)
		assert.EqualValues(t, 1, retrieved.LikeCount)
		assert.True(t, retrieved.Badges.Has(models.BadgeHighVolume))
	})

	t.Run("UpdateGroup returns ErrNotFound for nonexistent group", func(t *testing.T) {
		err := store.UpdateGroup(ctx, &models.Group{ID: "nonexistent-id", Name: "x"})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("DeleteGroup is idempotent", func(t *testing.T) {
		group := createGroup(t, store, "Temporary", true)

		require.NoError(t, store.DeleteGroup(ctx, group.ID))
		require.NoError(t, store.DeleteGroup(ctx, group.ID))

		_, err := store.GetGroup(ctx, group.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestFindGroups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	createGroup(t, store, "Food Lovers", true)
	createGroup(t, store, "Travel Addicts", false)
	createGroup(t, store, "food truck fans", false)
	createGroup(t, store, "ÉCOLE Étoile", false)

	public := true
	private := false

	tests := []struct {
		name   string
		filter storage.GroupFilter
		want   int
	}{
		{name: "no filter", filter: storage.GroupFilter{}, want: 4},
		{name: "public only", filter: storage.GroupFilter{Public: &public}, want: 1},
		{name: "private only", filter: storage.GroupFilter{Public: &private}, want: 3},
		{name: "keyword is case insensitive", filter: storage.GroupFilter{Keyword: "FOOD"}, want: 2},
		{name: "keyword and visibility", filter: storage.GroupFilter{Keyword: "food", Public: &private}, want: 1},
		{name: "keyword without match", filter: storage.GroupFilter{Keyword: "chess"}, want: 0},
		{name: "non-ascii keyword folds case", filter: storage.GroupFilter{Keyword: "école"}, want: 1},
		{name: "non-ascii name folds case", filter: storage.GroupFilter{Keyword: "ÉTOILE"}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups, err := store.FindGroups(ctx, tt.filter)
			require.NoError(t, err)
			assert.Len(t, groups, tt.want)
			for _, g := range groups {
				assert.NotNil(t, g.Badges)
			}
		})
	}
}

func TestLikesAreAtomic(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := createGroup(t, store, "Popular", true)
	post := createPost(t, store, group.ID, "Hello")

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, err := store.IncrementGroupLikes(ctx, group.ID)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := store.IncrementPostLikes(ctx, post.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	g, err := store.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.EqualValues(t, workers, g.LikeCount)

	p, err := store.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.EqualValues(t, workers, p.LikeCount)

	_, err = store.IncrementGroupLikes(ctx, "nonexistent-id")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = store.IncrementPostLikes(ctx, "nonexistent-id")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestAddGroupBadges(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := createGroup(t, store, "Badges", true)

	added, err := store.AddGroupBadges(ctx, group.ID, models.BadgeHighVolume, models.BadgeLikedPost)
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	added, err = store.AddGroupBadges(ctx, group.ID, models.BadgeHighVolume, models.BadgeAnniversary)
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	retrieved, err := store.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t,
		[]models.Badge{models.BadgeAnniversary, models.BadgeHighVolume, models.BadgeLikedPost},
		retrieved.Badges.Sorted(),
	)

	_, err = store.AddGroupBadges(ctx, "nonexistent-id", models.BadgeHighVolume)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUnknownStoredBadgeIsSkipped(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := createGroup(t, store, "Legacy", true)
	_, err := store.AddGroupBadges(ctx, group.ID, models.BadgeAnniversary)
	require.NoError(t, err)
	_, err = store.db.ExecContext(ctx,
		"INSERT INTO group_badges (group_id, badge) VALUES (?, ?)", group.ID, "retired-badge")
	require.NoError(t, err)

	retrieved, err := store.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.Badge{models.BadgeAnniversary}, retrieved.Badges.Sorted())

	groups, err := store.FindGroups(ctx, storage.GroupFilter{Keyword: "legacy"})
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, 1, groups[0].Badges.Len())
}

func TestPosts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := createGroup(t, store, "Posts", true)

	t.Run("GetPost retrieves tags in order", func(t *testing.T) {
		post := createPost(t, store, group.ID, "Trip", "sea", "Summer", "friends")

		retrieved, err := store.GetPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"sea", "Summer", "friends"}, retrieved.Tags)
		assert.Equal(t, group.ID, retrieved.GroupID)
		assert.True(t, post.Moment.Equal(retrieved.Moment))
	})

	t.Run("UpdatePost replaces tags", func(t *testing.T) {
		post := createPost(t, store, group.ID, "Old title", "a", "b")

		post.Title = "New title"
		post.Tags = []string{"c"}
		require.NoError(t, store.UpdatePost(ctx, post))

		retrieved, err := store.GetPost(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "New title", retrieved.Title)
		assert.Equal(t, []string{"c"}, retrieved.Tags)
	})

	t.Run("CreatePost rejects unknown group", func(t *testing.T) {
		post := &models.Post{GroupID: "nonexistent-id", Title: "x", Moment: time.Now()}
		assert.Error(t, store.CreatePost(ctx, post))
	})

	t.Run("DeleteGroup is refused while posts exist", func(t *testing.T) {
		parent := createGroup(t, store, "Parent", true)
		createPost(t, store, parent.ID, "Child")

		assert.Error(t, store.DeleteGroup(ctx, parent.ID))

		_, err := store.GetGroup(ctx, parent.ID)
		assert.NoError(t, err)
	})
}

func TestFindPosts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := createGroup(t, store, "Search", true)
	other := createGroup(t, store, "Other", true)

	createPost(t, store, group.ID, "Beach day", "Summer")
	createPost(t, store, group.ID, "Mountain hike", "autumn", "summit")
	hidden := createPost(t, store, group.ID, "Secret summer plan")
	hidden.IsPublic = false
	require.NoError(t, store.UpdatePost(ctx, hidden))
	createPost(t, store, other.ID, "Summer elsewhere")
	createPost(t, store, group.ID, "ÉTÉ à Paris", "CAFÉ")

	public := true

	tests := []struct {
		name   string
		filter storage.PostFilter
		want   int
	}{
		{name: "scoped to group", filter: storage.PostFilter{GroupID: group.ID}, want: 4},
		{name: "keyword in title or tag", filter: storage.PostFilter{GroupID: group.ID, Keyword: "SUMMER"}, want: 2},
		{name: "keyword in tag substring", filter: storage.PostFilter{GroupID: group.ID, Keyword: "summ"}, want: 3},
		{name: "keyword and visibility", filter: storage.PostFilter{GroupID: group.ID, Keyword: "summer", Public: &public}, want: 1},
		{name: "unknown group", filter: storage.PostFilter{GroupID: "nonexistent-id"}, want: 0},
		{name: "non-ascii keyword in title", filter: storage.PostFilter{GroupID: group.ID, Keyword: "été"}, want: 1},
		{name: "non-ascii keyword in tag", filter: storage.PostFilter{GroupID: group.ID, Keyword: "café"}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, err := store.FindPosts(ctx, tt.filter)
			require.NoError(t, err)
			assert.Len(t, posts, tt.want)
		})
	}
}

func TestCounts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := createGroup(t, store, "A", true)
	b := createGroup(t, store, "B", true)
	empty := createGroup(t, store, "Empty", true)

	p1 := createPost(t, store, a.ID, "one")
	createPost(t, store, a.ID, "two")
	p3 := createPost(t, store, b.ID, "three")

	for i := 0; i < 3; i++ {
		require.NoError(t, store.CreateComment(ctx, &models.Comment{PostID: p1.ID, Nickname: "n", Content: "c", SecretHash: "h"}))
	}
	require.NoError(t, store.CreateComment(ctx, &models.Comment{PostID: p3.ID, Nickname: "n", Content: "c", SecretHash: "h"}))

	posts, err := store.CountPostsByGroup(ctx, a.ID, b.ID, empty.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{a.ID: 2, b.ID: 1}, posts)

	comments, err := store.CountCommentsByPost(ctx, p1.ID, p3.ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{p1.ID: 3, p3.ID: 1}, comments)

	none, err := store.CountPostsByGroup(ctx)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestComments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := createGroup(t, store, "Comments", true)
	post := createPost(t, store, group.ID, "Post")

	comment := &models.Comment{PostID: post.ID, Nickname: "alice", Content: "hi", SecretHash: "h"}
	require.NoError(t, store.CreateComment(ctx, comment))
	assert.NotEmpty(t, comment.ID)

	comment.Content = "hello"
	require.NoError(t, store.UpdateComment(ctx, comment))

	retrieved, err := store.GetComment(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", retrieved.Content)

	assert.Error(t, store.DeletePost(ctx, post.ID), "post with comments must not be deletable")

	n, err := store.DeleteCommentsByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = store.DeleteCommentsByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, store.DeletePost(ctx, post.ID))
	require.NoError(t, store.DeleteComment(ctx, comment.ID))

	_, err = store.GetComment(ctx, comment.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
