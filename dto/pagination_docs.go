package dto

// PaginationPostDTO is a concrete swagger-friendly type for the paginated posts response
// swagger:model PaginationPostDTO
type PaginationPostDTO struct {
	Data       []PostDTO     `json:"data"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	Total      int64         `json:"total"`
	TotalPages int           `json:"total_pages"`
	Type       string        `json:"type,omitempty"`
	PrevHref   string        `json:"prev_href,omitempty"`
	NextHref   string        `json:"next_href,omitempty"`
	Pages      []PageLinkDTO `json:"pages"`
	Error      string        `json:"error,omitempty"`
}
