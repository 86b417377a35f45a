package repositories

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRow struct{ total int64 }

func (r fakeRow) Scan(dest ...any) error {
	*dest[0].(*int64) = r.total
	return nil
}

// emptyRows is a result set without rows. Only the methods List uses are implemented.
type emptyRows struct {
	pgx.Rows
	closed bool
}

func (r *emptyRows) Next() bool { return false }
func (r *emptyRows) Err() error { return nil }
func (r *emptyRows) Close()     { r.closed = true }

type fakePgx struct {
	total    int64
	rows     *emptyRows
	rowsArgs []any
}

func (f *fakePgx) QueryRow(context.Context, string, ...any) pgx.Row {
	return fakeRow{total: f.total}
}

func (f *fakePgx) Query(_ context.Context, _ string, args ...any) (pgx.Rows, error) {
	f.rowsArgs = args
	return f.rows, nil
}

func TestPostgresPostStoreNormalizesOptions(t *testing.T) {
	db := &fakePgx{total: 7, rows: &emptyRows{}}
	store := NewPostgresPostStore(db)

	posts, total, err := store.List(context.Background(), ListPostsOptions{Offset: -5, Limit: -1})
	require.NoError(t, err)

	assert.Equal(t, int64(7), total)
	assert.NotNil(t, posts)
	assert.Empty(t, posts)
	assert.Equal(t, []any{18, 0}, db.rowsArgs)
	assert.True(t, db.rows.closed)
}
