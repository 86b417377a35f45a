package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"batarikh-mirror/models"
)

var mongoFeedSort = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

// mongoCollection is the subset of *mongo.Collection used by MongoPostStore.
type mongoCollection interface {
	CountDocuments(ctx context.Context, filter any, opts ...*options.CountOptions) (int64, error)
	Find(ctx context.Context, filter any, opts ...*options.FindOptions) (*mongo.Cursor, error)
}

// MongoPostStore serves the feed from a MongoDB copy of the archive, one document per
// message keyed by its Telegram id.
type MongoPostStore struct {
	posts mongoCollection
}

func NewMongoPostStore(db *mongo.Database) *MongoPostStore {
	return &MongoPostStore{posts: db.Collection("posts")}
}

func (s *MongoPostStore) List(ctx context.Context, opt ListPostsOptions) ([]models.Post, int64, error) {
	opt = opt.normalized()

	filter := bson.D{}
	if opt.Type != "" {
		filter = bson.D{{Key: "media_type", Value: opt.Type.String()}}
	}

	total, err := s.posts.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 || int64(opt.Offset) >= total {
		return []models.Post{}, total, nil
	}

	cur, err := s.posts.Find(ctx, filter, options.Find().
		SetSort(mongoFeedSort).
		SetSkip(int64(opt.Offset)).
		SetLimit(int64(opt.Limit)))
	if err != nil {
		return nil, 0, err
	}

	posts := make([]models.Post, 0, opt.Limit)
	if err := cur.All(ctx, &posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

var _ PostStore = (*MongoPostStore)(nil)
