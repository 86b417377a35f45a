package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"batarikh-mirror/models"
)

// pgxQuerier is the subset of *pgxpool.Pool used by PostgresPostStore.
type pgxQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresPostStore reads posts straight from the Postgres database behind the
// hosted store.
type PostgresPostStore struct {
	db    pgxQuerier
	table string
}

func NewPostgresPostStore(db pgxQuerier) *PostgresPostStore {
	return &PostgresPostStore{db: db, table: "posts"}
}

func (s *PostgresPostStore) List(ctx context.Context, opt ListPostsOptions) ([]models.Post, int64, error) {
	opt = opt.normalized()
	q := buildListQuery(s.table, dollarPlaceholder, opt)

	var total int64
	if err := s.db.QueryRow(ctx, q.Count, q.CountArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	rows, err := s.db.Query(ctx, q.Rows, q.RowsArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("query posts: %w", err)
	}
	defer rows.Close()

	posts := make([]models.Post, 0, opt.Limit)
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

var _ PostStore = (*PostgresPostStore)(nil)
