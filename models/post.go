package models

import (
	"time"
)

// Post is one archived channel message.
// Collection/table: posts
//
// MediaType decides which of MediaURL/Width/Height are meaningful; MediaNone uses none
// of them. Width and Height are only set for images and videos.
type Post struct {
	ID        int64     `bson:"_id" json:"id"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	Content   *string   `bson:"content,omitempty" json:"content"`
	MediaType MediaType `bson:"media_type" json:"media_type"`
	MediaURL  *string   `bson:"media_url,omitempty" json:"media_url"`
	Width     *int      `bson:"width,omitempty" json:"width"`
	Height    *int      `bson:"height,omitempty" json:"height"`
}

// Text returns the content or an empty string.
func (p Post) Text() string {
	if p.Content == nil {
		return ""
	}
	return *p.Content
}

// Media returns the media URL when the media type uses one.
func (p Post) Media() (string, bool) {
	if p.MediaType == MediaNone || p.MediaURL == nil || *p.MediaURL == "" {
		return "", false
	}
	return *p.MediaURL, true
}

// Dimensions returns width and height for images and videos, with the given fallback
// when the store has none.
func (p Post) Dimensions(fallbackW, fallbackH int) (int, int) {
	w, h := fallbackW, fallbackH
	if p.MediaType != MediaImage && p.MediaType != MediaVideo {
		return w, h
	}
	if p.Width != nil && *p.Width > 0 {
		w = *p.Width
	}
	if p.Height != nil && *p.Height > 0 {
		h = *p.Height
	}
	return w, h
}
