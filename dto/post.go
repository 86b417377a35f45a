package dto

import (
	"time"

	"batarikh-mirror/models"
)

// PostDTO is the API shape of one post. Absent optional values are null.
type PostDTO struct {
	ID             int64     `json:"id" example:"1024"`
	CreatedAt      time.Time `json:"created_at"`
	Content        *string   `json:"content"`
	MediaType      string    `json:"media_type" example:"image"`
	MediaTypeLabel string    `json:"media_type_label" example:"تصویر"`
	MediaURL       *string   `json:"media_url"`
	Width          *int      `json:"width"`
	Height         *int      `json:"height"`
}

// NewPostDTO constructs PostDTO from models.Post
func NewPostDTO(p models.Post) PostDTO {
	d := PostDTO{
		ID:             p.ID,
		CreatedAt:      p.CreatedAt,
		Content:        p.Content,
		MediaType:      p.MediaType.String(),
		MediaTypeLabel: p.MediaType.Label(),
	}
	if u, ok := p.Media(); ok {
		d.MediaURL = &u
	}
	if p.MediaType == models.MediaImage || p.MediaType == models.MediaVideo {
		d.Width = p.Width
		d.Height = p.Height
	}
	return d
}

func NewPostDTOs(posts []models.Post) []PostDTO {
	out := make([]PostDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewPostDTO(p))
	}
	return out
}
