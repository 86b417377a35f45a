package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"batarikh-mirror/models"
)

// Doer sends HTTP requests; *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// SupabasePostStore queries the hosted store through its PostgREST endpoint with
// the public anon key.
type SupabasePostStore struct {
	client  Doer
	baseURL string
	anonKey string
	table   string
}

func NewSupabasePostStore(client Doer, baseURL, anonKey, table string) (*SupabasePostStore, error) {
	if strings.TrimSpace(baseURL) == "" || strings.TrimSpace(anonKey) == "" {
		return nil, ErrNotConfigured
	}
	if client == nil {
		client = http.DefaultClient
	}
	if table == "" {
		table = "posts"
	}
	return &SupabasePostStore{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		table:   table,
	}, nil
}

func (s *SupabasePostStore) newRequest(ctx context.Context, opt ListPostsOptions) (*http.Request, error) {
	q := url.Values{}
	q.Set("select", strings.Join(PostColumns, ","))
	q.Set("order", "created_at.desc,id.desc")
	if opt.Type != "" {
		q.Set("media_type", "eq."+string(opt.Type))
	}

	endpoint := s.baseURL + "/rest/v1/" + url.PathEscape(s.table) + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	from := opt.Offset
	to := opt.Offset + opt.Limit - 1
	req.Header.Set("Range", fmt.Sprintf("%d-%d", from, to))
	req.Header.Set("Range-Unit", "items")
	req.Header.Set("Prefer", "count=exact")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", s.anonKey)
	req.Header.Set("Authorization", "Bearer "+s.anonKey)
	return req, nil
}

func (s *SupabasePostStore) List(ctx context.Context, opt ListPostsOptions) ([]models.Post, int64, error) {
	opt = opt.normalized()

	req, err := s.newRequest(ctx, opt)
	if err != nil {
		return nil, 0, fmt.Errorf("build supabase request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("supabase request: %w", err)
	}
	defer resp.Body.Close()

	// A page past the end answers 416 with the total still in Content-Range.
	if resp.StatusCode == http.StatusRequestedRangeNotSatisfiable {
		total, err := ParseContentRangeTotal(resp.Header.Get("Content-Range"))
		if err != nil {
			return nil, 0, fmt.Errorf("supabase range: %w", err)
		}
		return []models.Post{}, total, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, 0, fmt.Errorf("supabase status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var posts []models.Post
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return nil, 0, fmt.Errorf("decode supabase posts: %w", err)
	}

	total, err := ParseContentRangeTotal(resp.Header.Get("Content-Range"))
	if err != nil {
		return nil, 0, fmt.Errorf("supabase range: %w", err)
	}
	return posts, total, nil
}

// ParseContentRangeTotal extracts the total from a PostgREST Content-Range header such
// as "0-17/120" or "*/0".
func ParseContentRangeTotal(h string) (int64, error) {
	h = strings.TrimSpace(h)
	_, totalPart, ok := strings.Cut(h, "/")
	if !ok {
		return 0, fmt.Errorf("malformed Content-Range %q", h)
	}
	if totalPart == "*" {
		return 0, fmt.Errorf("no exact count in Content-Range %q", h)
	}
	total, err := strconv.ParseInt(totalPart, 10, 64)
	if err != nil || total < 0 {
		return 0, fmt.Errorf("malformed Content-Range %q", h)
	}
	return total, nil
}

var _ PostStore = (*SupabasePostStore)(nil)
