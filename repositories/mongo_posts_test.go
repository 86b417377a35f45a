package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"batarikh-mirror/models"
)

type fakeCollection struct {
	total    int64
	countErr error
	docs     []any

	countFilter any
	findFilter  any
	findOpts    *options.FindOptions
	findCalls   int
}

func (f *fakeCollection) CountDocuments(_ context.Context, filter any, _ ...*options.CountOptions) (int64, error) {
	f.countFilter = filter
	return f.total, f.countErr
}

func (f *fakeCollection) Find(_ context.Context, filter any, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	f.findCalls++
	f.findFilter = filter
	if len(opts) > 0 {
		f.findOpts = opts[0]
	}
	return mongo.NewCursorFromDocuments(f.docs, nil, nil)
}

func TestMongoPostStoreList(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 5, 0, 0, time.UTC)
	col := &fakeCollection{
		total: 40,
		docs: []any{
			bson.D{
				{Key: "_id", Value: int64(902)},
				{Key: "created_at", Value: created},
				{Key: "content", Value: "کلیپ"},
				{Key: "media_type", Value: "video"},
				{Key: "media_url", Value: "https://media.batarikh.xyz/v.mp4"},
				{Key: "width", Value: 640},
				{Key: "height", Value: 360},
			},
			bson.D{
				{Key: "_id", Value: int64(901)},
				{Key: "created_at", Value: created.Add(-time.Hour)},
				{Key: "media_type", Value: "video"},
			},
		},
	}
	store := &MongoPostStore{posts: col}

	posts, total, err := store.List(context.Background(), ListPostsOptions{Type: models.MediaVideo, Offset: 18, Limit: 18})
	require.NoError(t, err)

	assert.Equal(t, int64(40), total)
	want := bson.D{{Key: "media_type", Value: "video"}}
	assert.Equal(t, want, col.countFilter)
	assert.Equal(t, want, col.findFilter)

	require.NotNil(t, col.findOpts)
	assert.Equal(t, int64(18), *col.findOpts.Skip)
	assert.Equal(t, int64(18), *col.findOpts.Limit)
	assert.Equal(t, mongoFeedSort, col.findOpts.Sort)

	require.Len(t, posts, 2)
	assert.Equal(t, int64(902), posts[0].ID)
	assert.True(t, created.Equal(posts[0].CreatedAt))
	assert.Equal(t, "کلیپ", posts[0].Text())
	require.NotNil(t, posts[0].Width)
	assert.Equal(t, 640, *posts[0].Width)
	assert.Equal(t, int64(901), posts[1].ID)
	assert.Nil(t, posts[1].Content)
	assert.Nil(t, posts[1].MediaURL)
}

func TestMongoPostStoreAllTypes(t *testing.T) {
	col := &fakeCollection{total: 3}
	store := &MongoPostStore{posts: col}

	posts, _, err := store.List(context.Background(), ListPostsOptions{Limit: -1})
	require.NoError(t, err)

	assert.Equal(t, bson.D{}, col.findFilter)
	assert.Equal(t, int64(0), *col.findOpts.Skip)
	assert.Equal(t, int64(18), *col.findOpts.Limit)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
}

func TestMongoPostStorePastTotal(t *testing.T) {
	col := &fakeCollection{total: 5}
	store := &MongoPostStore{posts: col}

	posts, total, err := store.List(context.Background(), ListPostsOptions{Offset: 18, Limit: 18})
	require.NoError(t, err)

	assert.Equal(t, int64(5), total)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
	assert.Zero(t, col.findCalls)
}

func TestMongoPostStoreCountError(t *testing.T) {
	col := &fakeCollection{countErr: errors.New("server selection timeout")}
	store := &MongoPostStore{posts: col}

	_, _, err := store.List(context.Background(), ListPostsOptions{})
	assert.EqualError(t, err, "server selection timeout")
	assert.Zero(t, col.findCalls)
}
