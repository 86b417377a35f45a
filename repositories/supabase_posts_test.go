package repositories

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"batarikh-mirror/models"
)

func TestParseContentRangeTotal(t *testing.T) {
	cases := map[string]int64{
		"0-17/120": 120,
		"*/0":      0,
		"36-53/54": 54,
	}
	for h, want := range cases {
		got, err := ParseContentRangeTotal(h)
		require.NoError(t, err, h)
		assert.Equal(t, want, got, h)
	}

	for _, h := range []string{"", "0-17", "0-17/*", "0-17/abc", "0-17/-1"} {
		_, err := ParseContentRangeTotal(h)
		assert.Error(t, err, h)
	}
}

func TestSupabasePostStoreList(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Range", "18-19/20")
		w.WriteHeader(http.StatusPartialContent)
		_, _ = w.Write([]byte(`[
			{"id": 42, "created_at": "2024-03-01T12:00:00+00:00", "content": "سلام", "media_type": "image",
			 "media_url": "https://media.batarikh.xyz/42.jpg", "width": 800, "height": 600},
			{"id": 41, "created_at": "2024-02-29T08:30:00.123456+00:00", "content": null, "media_type": "none",
			 "media_url": null, "width": null, "height": null}
		]`))
	}))
	defer srv.Close()

	store, err := NewSupabasePostStore(srv.Client(), srv.URL+"/", "anon-key", "")
	require.NoError(t, err)

	posts, total, err := store.List(context.Background(), ListPostsOptions{Type: models.MediaImage, Offset: 18, Limit: 18})
	require.NoError(t, err)

	assert.Equal(t, int64(20), total)
	require.Len(t, posts, 2)
	assert.Equal(t, int64(42), posts[0].ID)
	assert.Equal(t, "سلام", posts[0].Text())
	assert.Equal(t, models.MediaImage, posts[0].MediaType)
	assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), posts[0].CreatedAt.UTC())
	assert.Nil(t, posts[1].Content)
	assert.Nil(t, posts[1].Width)

	require.NotNil(t, got)
	assert.Equal(t, "/rest/v1/posts", got.URL.Path)
	assert.Equal(t, "id,created_at,content,media_type,media_url,width,height", got.URL.Query().Get("select"))
	assert.Equal(t, "created_at.desc,id.desc", got.URL.Query().Get("order"))
	assert.Equal(t, "eq.image", got.URL.Query().Get("media_type"))
	assert.Equal(t, "18-35", got.Header.Get("Range"))
	assert.Equal(t, "items", got.Header.Get("Range-Unit"))
	assert.Equal(t, "count=exact", got.Header.Get("Prefer"))
	assert.Equal(t, "anon-key", got.Header.Get("apikey"))
	assert.Equal(t, "Bearer anon-key", got.Header.Get("Authorization"))
}

func TestSupabasePostStoreNoFilter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("media_type"))
		assert.Equal(t, "0-17", r.Header.Get("Range"))
		w.Header().Set("Content-Range", "*/0")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	store, err := NewSupabasePostStore(srv.Client(), srv.URL, "k", "posts")
	require.NoError(t, err)

	posts, total, err := store.List(context.Background(), ListPostsOptions{Limit: 18})
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Equal(t, int64(0), total)
}

func TestSupabasePostStorePastLastPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Range", "*/20")
		w.WriteHeader(http.StatusRequestedRangeNotSatisfiable)
	}))
	defer srv.Close()

	store, err := NewSupabasePostStore(srv.Client(), srv.URL, "k", "posts")
	require.NoError(t, err)

	posts, total, err := store.List(context.Background(), ListPostsOptions{Offset: 900, Limit: 18})
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Equal(t, int64(20), total)
}

func TestSupabasePostStoreErrors(t *testing.T) {
	_, err := NewSupabasePostStore(nil, "", "k", "posts")
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = NewSupabasePostStore(nil, "https://x.supabase.co", " ", "posts")
	assert.ErrorIs(t, err, ErrNotConfigured)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"permission denied"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	store, err := NewSupabasePostStore(srv.Client(), srv.URL, "k", "posts")
	require.NoError(t, err)
	_, _, err = store.List(context.Background(), ListPostsOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "permission denied")
}
