package pagination

import (
	"net/url"
	"strconv"
	"strings"

	"batarikh-mirror/models"
)

// BuildQuery renders the canonical query string for a feed page: "type" first, then
// "page". Unrecognized types and page 1 are omitted.
func BuildQuery(mediaType string, page int) string {
	var parts []string
	if mt, ok := models.ParseMediaType(mediaType); ok {
		parts = append(parts, "type="+url.QueryEscape(mt.String()))
	}
	if page > 1 {
		parts = append(parts, "page="+strconv.Itoa(page))
	}
	return strings.Join(parts, "&")
}

// BuildHref returns the feed link for the given filter and page, "/" when both are
// defaults.
func BuildHref(mediaType string, page int) string {
	q := BuildQuery(mediaType, page)
	if q == "" {
		return "/"
	}
	return "/?" + q
}

// Href is BuildHref for an already parsed request.
func (r PageRequest) Href() string {
	return BuildHref(r.Type.String(), r.Page)
}
