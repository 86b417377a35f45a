package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"batarikh-mirror/models"
)

// SQLitePostStore serves a local snapshot of the archive.
type SQLitePostStore struct {
	db    *sql.DB
	table string
}

func NewSQLitePostStore(db *sql.DB) *SQLitePostStore {
	return &SQLitePostStore{db: db, table: "posts"}
}

func (s *SQLitePostStore) List(ctx context.Context, opt ListPostsOptions) ([]models.Post, int64, error) {
	q := buildListQuery(s.table, questionPlaceholder, opt)

	var total int64
	if err := s.db.QueryRowContext(ctx, q.Count, q.CountArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, q.Rows, q.RowsArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, total, nil
}

var _ PostStore = (*SQLitePostStore)(nil)
