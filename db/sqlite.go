package db

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// OpenSQLite opens (creating if needed) a local archive snapshot.
func OpenSQLite(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); path != ":memory:" && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// MigrateSQLite creates the posts table and its feed indexes.
func MigrateSQLite(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS posts(
			id INTEGER PRIMARY KEY,
			created_at DATETIME NOT NULL,
			content TEXT,
			media_type TEXT NOT NULL CHECK(media_type IN ('image','video','audio','document','none')),
			media_url TEXT,
			width INTEGER,
			height INTEGER
		);`,
		`CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at DESC, id DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_posts_media_type ON posts(media_type, created_at DESC);`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}
