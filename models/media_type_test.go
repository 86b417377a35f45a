package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMediaType(t *testing.T) {
	for _, v := range []string{"image", "video", "audio", "document", "none"} {
		mt, ok := ParseMediaType(v)
		assert.True(t, ok, v)
		assert.Equal(t, v, mt.String())
	}

	for _, v := range []string{"", "all", "IMAGE", "invalid", " image"} {
		mt, ok := ParseMediaType(v)
		assert.False(t, ok, v)
		assert.Empty(t, mt)
	}
}

func TestIsMediaType(t *testing.T) {
	assert.True(t, IsMediaType("image"))
	assert.True(t, IsMediaType("video"))
	assert.False(t, IsMediaType("invalid"))
	assert.False(t, IsMediaType(""))
}

func TestMediaTypeLabel(t *testing.T) {
	assert.Equal(t, "تصویر", MediaImage.Label())
	assert.Equal(t, "متن", MediaNone.Label())
	assert.Equal(t, "gif", MediaType("gif").Label())
}

func TestPostAccessors(t *testing.T) {
	url := "https://media.batarikh.xyz/a.jpg"
	w, h := 1024, 0
	p := Post{MediaType: MediaImage, MediaURL: &url, Width: &w, Height: &h}

	got, ok := p.Media()
	assert.True(t, ok)
	assert.Equal(t, url, got)

	gw, gh := p.Dimensions(800, 600)
	assert.Equal(t, 1024, gw)
	assert.Equal(t, 600, gh)
	assert.Equal(t, "", p.Text())

	none := Post{MediaType: MediaNone, MediaURL: &url, Width: &w}
	_, ok = none.Media()
	assert.False(t, ok)
	gw, _ = none.Dimensions(800, 600)
	assert.Equal(t, 800, gw)
}
