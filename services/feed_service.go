package services

import (
	"context"
	"errors"

	"batarikh-mirror/config"
	"batarikh-mirror/dto"
	"batarikh-mirror/models"
	"batarikh-mirror/pagination"
	"batarikh-mirror/repositories"
)

const (
	// StoreErrorMessage is shown instead of the feed when the store query fails.
	StoreErrorMessage = "خطا در بارگذاری پست‌ها. لطفاً بعداً دوباره تلاش کنید."
	// EmptyFeedMessage is shown when a page has no posts.
	EmptyFeedMessage = "هنوز پستی وجود ندارد."
)

// PageLink is one entry of the page window.
type PageLink struct {
	Number   int
	Href     string
	Current  bool
	Ellipsis bool
}

// FilterTab is one media type filter in the feed header.
type FilterTab struct {
	Label  string
	Href   string
	Active bool
}

// FeedPage is everything a view needs to render one page of the feed.
type FeedPage struct {
	Posts      []models.Post
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
	Type       models.MediaType

	HasPrev  bool
	HasNext  bool
	PrevHref string
	NextHref string

	Pages []PageLink
	Tabs  []FilterTab

	// Error is a user-facing message; empty on success.
	Error string
}

// feedTabs lists the header filters in display order. Tab labels differ from the card
// badge labels.
var feedTabs = []struct {
	Type  models.MediaType
	Label string
}{
	{"", "همه"},
	{models.MediaImage, "تصویر"},
	{models.MediaVideo, "ویدئو"},
	{models.MediaAudio, "صوتی"},
	{models.MediaNone, "متنی"},
	{models.MediaDocument, "سند"},
}

// FeedService composes the store query for a page request and degrades to an empty
// page when the store is missing or failing.
type FeedService struct {
	store    repositories.PostStore
	pageSize int
	rng      int
}

// NewFeedService accepts a nil store, which serves an empty feed.
func NewFeedService(store repositories.PostStore, cfg config.FeedConfig) *FeedService {
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = pagination.DefaultPageSize
	}
	rng := cfg.PaginationRange
	if rng < 0 {
		rng = pagination.DefaultRange
	}
	return &FeedService{store: store, pageSize: pageSize, rng: rng}
}

func (s *FeedService) PageSize() int { return s.pageSize }

// Page loads one feed page. The returned FeedPage is always renderable; a non-nil error
// is the store failure behind FeedPage.Error and is meant for logging only.
func (s *FeedService) Page(ctx context.Context, req pagination.PageRequest) (FeedPage, error) {
	if req.Page < 1 {
		req.Page = 1
	}

	var (
		posts   []models.Post
		total   int64
		loadErr error
		message string
	)
	if s.store == nil {
		loadErr = repositories.ErrNotConfigured
	} else {
		posts, total, loadErr = s.store.List(ctx, repositories.ListPostsOptions{
			Type:   req.Type,
			Offset: req.Offset(s.pageSize),
			Limit:  s.pageSize,
		})
		if loadErr != nil {
			posts, total = nil, 0
			message = StoreErrorMessage
		}
	}
	if posts == nil {
		posts = []models.Post{}
	}

	return s.build(req, posts, total, message), ignoreNotConfigured(loadErr)
}

// ignoreNotConfigured hides the missing store case, which is reported once at startup.
func ignoreNotConfigured(err error) error {
	if errors.Is(err, repositories.ErrNotConfigured) {
		return nil
	}
	return err
}

func (s *FeedService) build(req pagination.PageRequest, posts []models.Post, total int64, message string) FeedPage {
	totalPages := pagination.TotalPages(total, s.pageSize)
	t := req.Type.String()

	fp := FeedPage{
		Posts:      posts,
		Total:      total,
		Page:       req.Page,
		PageSize:   s.pageSize,
		TotalPages: totalPages,
		Type:       req.Type,
		HasPrev:    req.Page > 1,
		HasNext:    req.Page < totalPages,
		PrevHref:   pagination.BuildHref(t, max(1, req.Page-1)),
		NextHref:   pagination.BuildHref(t, min(totalPages, req.Page+1)),
		Error:      message,
	}

	for _, n := range pagination.MakePages(req.Page, totalPages, s.rng) {
		if n == pagination.Ellipsis {
			fp.Pages = append(fp.Pages, PageLink{Ellipsis: true})
			continue
		}
		fp.Pages = append(fp.Pages, PageLink{
			Number:  n,
			Href:    pagination.BuildHref(t, n),
			Current: n == req.Page,
		})
	}

	for _, tab := range feedTabs {
		fp.Tabs = append(fp.Tabs, FilterTab{
			Label:  tab.Label,
			Href:   pagination.BuildHref(tab.Type.String(), 1),
			Active: tab.Type == req.Type,
		})
	}
	return fp
}

// DTO converts the page to its API representation.
func (p FeedPage) DTO() dto.FeedPageDTO {
	out := dto.FeedPageDTO{
		Pagination: dto.Pagination[dto.PostDTO]{
			Data:       dto.NewPostDTOs(p.Posts),
			Page:       p.Page,
			PageSize:   p.PageSize,
			Total:      p.Total,
			TotalPages: p.TotalPages,
		},
		Type:  p.Type.String(),
		Pages: make([]dto.PageLinkDTO, 0, len(p.Pages)),
		Error: p.Error,
	}
	if p.HasPrev {
		out.PrevHref = p.PrevHref
	}
	if p.HasNext {
		out.NextHref = p.NextHref
	}
	for _, l := range p.Pages {
		out.Pages = append(out.Pages, dto.PageLinkDTO{
			Page:     l.Number,
			Href:     l.Href,
			Current:  l.Current,
			Ellipsis: l.Ellipsis,
		})
	}
	return out
}
