// Package docstore implements storage.Store on a MongoDB compatible document
// database. It talks to a real MongoDB deployment through the official driver
// or to lungo's embedded engine (in memory or file backed).
package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/256dpi/lungo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mmynk/memoryboard/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

var returnAfterUpdate = options.FindOneAndUpdate().SetReturnDocument(options.After)

const (
	groupsCollection   = "groups"
	postsCollection    = "posts"
	commentsCollection = "comments"
)

// Store implements storage.Store on top of a lungo client.
type Store struct {
	client   lungo.IClient
	engine   *lungo.Engine
	groups   lungo.ICollection
	posts    lungo.ICollection
	comments lungo.ICollection
	now      func() time.Time
}

// Connect dials a MongoDB deployment and returns a store using the database.
func Connect(ctx context.Context, uri, database string) (*Store, error) {
	client, err := lungo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return newStore(ctx, client, nil, database)
}

// OpenMemory returns a store backed by lungo's in-memory engine.
func OpenMemory(ctx context.Context, database string) (*Store, error) {
	return open(ctx, lungo.NewMemoryStore(), database)
}

// OpenFile returns a store backed by lungo's engine persisting to a file.
func OpenFile(ctx context.Context, path, database string) (*Store, error) {
	return open(ctx, lungo.NewFileStore(path, 0644), database)
}

func open(ctx context.Context, backend lungo.Store, database string) (*Store, error) {
	client, engine, err := lungo.Open(ctx, lungo.Options{Store: backend})
	if err != nil {
		return nil, fmt.Errorf("failed to open engine: %w", err)
	}

	return newStore(ctx, client, engine, database)
}

func newStore(ctx context.Context, client lungo.IClient, engine *lungo.Engine, database string) (*Store, error) {
	db := client.Database(database)
	s := &Store{
		client:   client,
		engine:   engine,
		groups:   db.Collection(groupsCollection),
		posts:    db.Collection(postsCollection),
		comments: db.Collection(commentsCollection),
		now:      time.Now,
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}

	return s, nil
}

// ensureIndexes creates the parent lookup indexes.
func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.posts.Indexes().CreateOne(ctx, mongoIndex("group_id"))
	if err != nil {
		return fmt.Errorf("failed to create posts index: %w", err)
	}

	_, err = s.comments.Indexes().CreateOne(ctx, mongoIndex("post_id"))
	if err != nil {
		return fmt.Errorf("failed to create comments index: %w", err)
	}

	return nil
}

// Close disconnects the client and stops the embedded engine if any.
func (s *Store) Close() error {
	err := s.client.Disconnect(context.Background())
	if s.engine != nil {
		s.engine.Close()
	}
	if err != nil {
		return fmt.Errorf("failed to disconnect: %w", err)
	}
	return nil
}

// timestamp returns the current time at the precision BSON dates keep.
func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// inIDs builds an {$in: ids} condition.
func inIDs(ids []string) bson.M {
	return bson.M{"$in": ids}
}

// incrementLikes bumps like_count of one document and returns the value the
// update produced.
func incrementLikes(ctx context.Context, coll lungo.ICollection, id, kind string) (int64, error) {
	var doc struct {
		LikeCount int64 `bson:"like_count"`
	}

	err := coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{
		"$inc": bson.M{"like_count": 1},
	}, returnAfterUpdate).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to increment %s likes: %w", kind, err)
	}

	return doc.LikeCount, nil
}

// distinctIDs returns the distinct string values of field across coll.
func distinctIDs(ctx context.Context, coll lungo.ICollection, field string) ([]string, error) {
	values, err := coll.Distinct(ctx, field, bson.M{})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(values))
	for _, v := range values {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
