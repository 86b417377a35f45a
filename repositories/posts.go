package repositories

import (
	"context"
	"errors"

	"batarikh-mirror/models"
)

// ErrNotConfigured is returned when the selected store has no credentials.
var ErrNotConfigured = errors.New("post store is not configured")

// PostColumns is the projection shared by every backend.
var PostColumns = []string{"id", "created_at", "content", "media_type", "media_url", "width", "height"}

// ListPostsOptions selects one page of posts. An empty Type means all media types.
type ListPostsOptions struct {
	Type   models.MediaType
	Offset int
	Limit  int
}

// PostStore is the read-only query surface of the archive.
// List returns at most Limit posts ordered by created_at then id, both descending,
// together with the exact number of rows matching the filter.
type PostStore interface {
	List(ctx context.Context, opt ListPostsOptions) ([]models.Post, int64, error)
}

func (o ListPostsOptions) normalized() ListPostsOptions {
	if o.Offset < 0 {
		o.Offset = 0
	}
	if o.Limit <= 0 {
		o.Limit = 18
	}
	return o
}
