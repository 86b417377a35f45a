package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"batarikh-mirror/config"
)

const defaultMongoDatabase = "batarikh"

var postIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
		Options: options.Index().SetName("posts_feed_order"),
	},
	{
		Keys:    bson.D{{Key: "media_type", Value: 1}, {Key: "created_at", Value: -1}, {Key: "_id", Value: -1}},
		Options: options.Index().SetName("posts_feed_by_type"),
	},
}

// OpenMongo connects to cfg.URI, checks the primary is reachable and makes sure the
// feed indexes exist on the posts collection.
func OpenMongo(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	name := cfg.Database
	if name == "" {
		name = defaultMongoDatabase
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	database := client.Database(name)
	if _, err := database.Collection("posts").Indexes().CreateMany(connectCtx, postIndexes); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("create mongo indexes: %w", err)
	}
	return client, database, nil
}
