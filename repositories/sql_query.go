package repositories

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"batarikh-mirror/models"
)

// placeholder renders the n-th (1-based) bind parameter of a SQL dialect.
type placeholder func(n int) string

func dollarPlaceholder(n int) string { return "$" + strconv.Itoa(n) }
func questionPlaceholder(int) string { return "?" }

// listQuery holds the page query and the matching count query with their arguments.
type listQuery struct {
	Rows      string
	RowsArgs  []any
	Count     string
	CountArgs []any
}

func buildListQuery(table string, ph placeholder, opt ListPostsOptions) listQuery {
	opt = opt.normalized()

	var where string
	var filterArgs []any
	if opt.Type != "" {
		where = " WHERE media_type = " + ph(1)
		filterArgs = append(filterArgs, string(opt.Type))
	}

	n := len(filterArgs)
	rows := fmt.Sprintf("SELECT %s FROM %s%s ORDER BY created_at DESC, id DESC LIMIT %s OFFSET %s",
		strings.Join(PostColumns, ", "), table, where, ph(n+1), ph(n+2))

	rowsArgs := append(append([]any{}, filterArgs...), opt.Limit, opt.Offset)

	return listQuery{
		Rows:      rows,
		RowsArgs:  rowsArgs,
		Count:     fmt.Sprintf("SELECT COUNT(*) FROM %s%s", table, where),
		CountArgs: filterArgs,
	}
}

// rowScanner is satisfied by both *sql.Rows and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(rs rowScanner) (models.Post, error) {
	var (
		p         models.Post
		createdAt time.Time
		content   sql.NullString
		mediaType string
		mediaURL  sql.NullString
		width     sql.NullInt64
		height    sql.NullInt64
	)
	if err := rs.Scan(&p.ID, &createdAt, &content, &mediaType, &mediaURL, &width, &height); err != nil {
		return models.Post{}, err
	}

	p.CreatedAt = createdAt
	p.MediaType = models.MediaType(mediaType)
	if content.Valid {
		p.Content = &content.String
	}
	if mediaURL.Valid {
		p.MediaURL = &mediaURL.String
	}
	if width.Valid {
		w := int(width.Int64)
		p.Width = &w
	}
	if height.Valid {
		h := int(height.Int64)
		p.Height = &h
	}
	return p, nil
}
