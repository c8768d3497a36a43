package seed

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/memoryboard/internal/auth"
	"github.com/mmynk/memoryboard/internal/models"
	"github.com/mmynk/memoryboard/internal/storage"
	"github.com/mmynk/memoryboard/internal/storage/sqlite"
)

func TestLoad(t *testing.T) {
	ctx := context.Background()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "seed.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	gate := auth.NewBcryptGate(bcrypt.MinCost)

	stale := &models.Group{Name: "Stale", IsPublic: true}
	require.NoError(t, store.CreateGroup(ctx, stale))
	require.NoError(t, store.CreatePost(ctx, &models.Post{GroupID: stale.ID, Title: "old"}))

	report, err := Load(ctx, store, gate, Samples, true)
	require.NoError(t, err)
	assert.Len(t, report.Created, len(Samples))
	assert.Equal(t, 1, report.Removed.Groups)
	assert.Equal(t, 1, report.Removed.Posts)

	groups, err := store.FindGroups(ctx, storage.GroupFilter{})
	require.NoError(t, err)
	require.Len(t, groups, len(Samples))

	books, err := store.FindGroups(ctx, storage.GroupFilter{Keyword: "book"})
	require.NoError(t, err)
	require.Len(t, books, 1)
	assert.False(t, books[0].IsPublic)
	assert.EqualValues(t, 25, books[0].LikeCount)
	assert.True(t, Samples[1].CreatedAt.Equal(books[0].CreatedAt))
	assert.True(t, gate.Verify("read4life", books[0].SecretHash))

	_, err = Load(ctx, store, gate, Samples[:1], false)
	require.NoError(t, err)

	groups, err = store.FindGroups(ctx, storage.GroupFilter{})
	require.NoError(t, err)
	assert.Len(t, groups, len(Samples)+1)
}
