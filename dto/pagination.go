package dto

// Pagination is a generic pagination envelope for list results
// T is the element type of the Data slice
// Total represents the total number of items matching the filters (without pagination)
// Page is 1-based; PageSize is the requested page size
type Pagination[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// PageLinkDTO is one entry of the page window. Ellipsis entries carry no page or href.
type PageLinkDTO struct {
	Page     int    `json:"page,omitempty"`
	Href     string `json:"href,omitempty"`
	Current  bool   `json:"current,omitempty"`
	Ellipsis bool   `json:"ellipsis,omitempty"`
}

// FeedPageDTO is the JSON form of one feed page.
type FeedPageDTO struct {
	Pagination[PostDTO]
	Type     string        `json:"type,omitempty" example:"video"`
	PrevHref string        `json:"prev_href,omitempty" example:"/?type=video"`
	NextHref string        `json:"next_href,omitempty" example:"/?type=video&page=3"`
	Pages    []PageLinkDTO `json:"pages"`
	Error    string        `json:"error,omitempty"`
}
