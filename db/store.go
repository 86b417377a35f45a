package db

import (
	"context"
	"fmt"

	"batarikh-mirror/config"
	"batarikh-mirror/repositories"
)

// CloseFunc releases the resources behind a PostStore.
type CloseFunc func(ctx context.Context) error

func noopClose(context.Context) error { return nil }

// OpenPostStore builds the PostStore selected by cfg.Driver. Missing credentials yield
// repositories.ErrNotConfigured so the caller can serve an empty feed.
// httpClient is used by the supabase driver only.
func OpenPostStore(ctx context.Context, cfg config.StoreConfig, httpClient repositories.Doer) (repositories.PostStore, CloseFunc, error) {
	switch cfg.Driver {
	case "", "supabase":
		store, err := repositories.NewSupabasePostStore(httpClient, cfg.Supabase.URL, cfg.Supabase.AnonKey, cfg.Supabase.Table)
		if err != nil {
			return nil, noopClose, err
		}
		return store, noopClose, nil

	case "postgres":
		if cfg.Postgres.DSN == "" {
			return nil, noopClose, repositories.ErrNotConfigured
		}
		pool, err := OpenPostgres(ctx, cfg.Postgres)
		if err != nil {
			return nil, noopClose, err
		}
		return repositories.NewPostgresPostStore(pool), func(context.Context) error {
			pool.Close()
			return nil
		}, nil

	case "mongo":
		if cfg.Mongo.URI == "" {
			return nil, noopClose, repositories.ErrNotConfigured
		}
		client, database, err := OpenMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, noopClose, err
		}
		return repositories.NewMongoPostStore(database), client.Disconnect, nil

	case "sqlite":
		if cfg.SQLite.Path == "" {
			return nil, noopClose, repositories.ErrNotConfigured
		}
		sqlDB, err := OpenSQLite(cfg.SQLite.Path)
		if err != nil {
			return nil, noopClose, fmt.Errorf("open sqlite: %w", err)
		}
		if err := MigrateSQLite(ctx, sqlDB); err != nil {
			_ = sqlDB.Close()
			return nil, noopClose, fmt.Errorf("migrate sqlite: %w", err)
		}
		return repositories.NewSQLitePostStore(sqlDB), func(context.Context) error { return sqlDB.Close() }, nil

	default:
		return nil, noopClose, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
