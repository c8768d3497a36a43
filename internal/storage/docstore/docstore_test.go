package docstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/mmynk/memoryboard/internal/models"
	"github.com/mmynk/memoryboard/internal/storage"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := OpenMemory(context.Background(), "memoryboard-test")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestGroupLifecycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.Group{
		Name:         "Tech Enthusiasts",
		SecretHash:   "hash",
		IsPublic:     true,
		ImageURL:     "https://example.com/tech.jpg",
		Introduction: "A group for technology lovers.",
	}
	require.NoError(t, store.CreateGroup(ctx, group))
	require.NotEmpty(t, group.ID)

	retrieved, err := store.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, group.Name, retrieved.Name)
	assert.Equal(t, group.Introduction, retrieved.Introduction)
	assert.True(t, group.CreatedAt.Equal(retrieved.CreatedAt))
	assert.Equal(t, 0, retrieved.Badges.Len())

	retrieved.Name = "Tech Lovers"
	require.NoError(t, store.UpdateGroup(ctx, retrieved))

	likes, err := store.IncrementGroupLikes(ctx, group.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, likes)

	added, err := store.AddGroupBadges(ctx, group.ID, models.BadgePopularGroup, models.BadgeHighVolume)
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	added, err = store.AddGroupBadges(ctx, group.ID, models.BadgePopularGroup)
	require.NoError(t, err)
	assert.Equal(t, 0, added)

	retrieved, err = store.GetGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tech Lovers", retrieved.Name)
	assert.EqualValues(t, 1, retrieved.LikeCount)
	assert.Equal(t, 2, retrieved.Badges.Len())

	require.NoError(t, store.DeleteGroup(ctx, group.ID))
	require.NoError(t, store.DeleteGroup(ctx, group.ID))

	_, err = store.GetGroup(ctx, group.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestNotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.GetGroup(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = store.GetPost(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = store.GetComment(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = store.IncrementGroupLikes(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = store.IncrementPostLikes(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = store.AddGroupBadges(ctx, "missing", models.BadgeAnniversary)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = store.UpdateComment(ctx, &models.Comment{ID: "missing"})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestFindGroups(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, g := range []*models.Group{
		{Name: "Food Lovers", IsPublic: true},
		{Name: "Travel Addicts", IsPublic: false},
		{Name: "food truck fans", IsPublic: false},
		{Name: "ÉCOLE Étoile", IsPublic: false},
	} {
		require.NoError(t, store.CreateGroup(ctx, g))
	}

	private := false

	all, err := store.FindGroups(ctx, storage.GroupFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	hidden, err := store.FindGroups(ctx, storage.GroupFilter{Public: &private})
	require.NoError(t, err)
	assert.Len(t, hidden, 3)

	food, err := store.FindGroups(ctx, storage.GroupFilter{Keyword: "FOOD"})
	require.NoError(t, err)
	assert.Len(t, food, 2)

	school, err := store.FindGroups(ctx, storage.GroupFilter{Keyword: "école"})
	require.NoError(t, err)
	assert.Len(t, school, 1)
}

func TestPostsAndComments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.Group{Name: "Hikers", IsPublic: true}
	require.NoError(t, store.CreateGroup(ctx, group))

	moment := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)
	var posts []*models.Post
	for _, title := range []string{"Summit", "Valley", "Ridge"} {
		post := &models.Post{GroupID: group.ID, Title: title, Tags: []string{"hike"}, Moment: moment, IsPublic: true}
		require.NoError(t, store.CreatePost(ctx, post))
		posts = append(posts, post)
	}

	retrieved, err := store.GetPost(ctx, posts[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"hike"}, retrieved.Tags)
	assert.True(t, moment.Equal(retrieved.Moment))

	retrieved.Title = "Summit push"
	retrieved.IsPublic = false
	require.NoError(t, store.UpdatePost(ctx, retrieved))

	public := true
	visible, err := store.FindPosts(ctx, storage.PostFilter{GroupID: group.ID, Public: &public})
	require.NoError(t, err)
	assert.Len(t, visible, 2)

	summit, err := store.FindPosts(ctx, storage.PostFilter{GroupID: group.ID, Keyword: "PUSH"})
	require.NoError(t, err)
	require.Len(t, summit, 1)
	assert.Equal(t, posts[0].ID, summit[0].ID)

	for i := 0; i < 2; i++ {
		require.NoError(t, store.CreateComment(ctx, &models.Comment{PostID: posts[0].ID, Nickname: "n", Content: "c"}))
	}
	require.NoError(t, store.CreateComment(ctx, &models.Comment{PostID: posts[1].ID, Nickname: "n", Content: "c"}))

	postCounts, err := store.CountPostsByGroup(ctx, group.ID, "other")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{group.ID: 3}, postCounts)

	commentCounts, err := store.CountCommentsByPost(ctx, posts[0].ID, posts[1].ID, posts[2].ID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{posts[0].ID: 2, posts[1].ID: 1}, commentCounts)

	comments, err := store.FindComments(ctx, posts[0].ID)
	require.NoError(t, err)
	assert.Len(t, comments, 2)

	likes, err := store.IncrementPostLikes(ctx, posts[2].ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, likes)

	n, err := store.DeleteCommentsByPost(ctx, posts[0].ID, posts[1].ID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = store.DeletePostsByGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = store.DeletePostsByGroup(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestIncrementLikes_ReturnsOwnCount(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	group := &models.Group{Name: "Popular", IsPublic: true}
	require.NoError(t, store.CreateGroup(ctx, group))
	post := &models.Post{GroupID: group.ID, Title: "Viral", Moment: time.Now()}
	require.NoError(t, store.CreatePost(ctx, post))

	const workers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		groupSeen = map[int64]bool{}
		postSeen  = map[int64]bool{}
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g, err := store.IncrementGroupLikes(ctx, group.ID)
			assert.NoError(t, err)
			p, err := store.IncrementPostLikes(ctx, post.ID)
			assert.NoError(t, err)

			mu.Lock()
			groupSeen[g] = true
			postSeen[p] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	// Every caller saw the value its own increment produced.
	assert.Len(t, groupSeen, workers)
	assert.Len(t, postSeen, workers)
	for n := int64(1); n <= workers; n++ {
		assert.True(t, groupSeen[n], "group count %d never returned", n)
		assert.True(t, postSeen[n], "post count %d never returned", n)
	}
}

func TestUnknownStoredBadgeIsSkipped(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.groups.InsertOne(ctx, bson.M{
		"_id":        "legacy",
		"name":       "Legacy",
		"is_public":  true,
		"badges":     bson.A{"anniversary", "retired-badge"},
		"created_at": time.Now(),
	})
	require.NoError(t, err)

	retrieved, err := store.GetGroup(ctx, "legacy")
	require.NoError(t, err)
	assert.Equal(t, []models.Badge{models.BadgeAnniversary}, retrieved.Badges.Sorted())
}
