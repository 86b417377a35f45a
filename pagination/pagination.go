// Package pagination turns feed query parameters into bounded range queries and
// navigation links.
package pagination

import (
	"strconv"
	"strings"

	"batarikh-mirror/models"
)

const (
	DefaultPageSize = 18
	DefaultRange    = 2
	// MaxPage bounds the page number so offsets cannot overflow.
	MaxPage = 1_000_000
)

// Ellipsis marks a gap of hidden pages in the output of MakePages.
const Ellipsis = -1

// PageRequest is the parsed form of the feed query string.
// An empty Type means "all".
type PageRequest struct {
	Type models.MediaType
	Page int
}

// ParseRequest builds a PageRequest from raw query values.
func ParseRequest(rawType, rawPage string) PageRequest {
	mt, _ := models.ParseMediaType(rawType)
	return PageRequest{Type: mt, Page: ParsePage(rawPage)}
}

// ParsePage coerces a raw page value to a positive integer.
// Empty, non-numeric and values below 1 become 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	if n > MaxPage {
		return MaxPage
	}
	return n
}

// Offset returns the zero-based index of the first row of the page.
func (r PageRequest) Offset(pageSize int) int {
	page := r.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}

// Range returns the inclusive [from, to] row range of the page.
func (r PageRequest) Range(pageSize int) (int, int) {
	from := r.Offset(pageSize)
	return from, from + pageSize - 1
}

// TotalPages is ceil(total/pageSize), never less than 1.
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	pages := (total + int64(pageSize) - 1) / int64(pageSize)
	if pages < 1 {
		return 1
	}
	return int(pages)
}

// MakePages returns the page numbers to display around current, with Ellipsis where
// pages are skipped. Page 1 and the last page are always shown.
//
//	MakePages(5, 10, 2) == [1, …, 3, 4, 5, 6, 7, …, 10]
func MakePages(current, total, rng int) []int {
	if total < 1 {
		total = 1
	}
	if current < 1 {
		current = 1
	}
	if rng < 0 {
		rng = 0
	}

	start := max(2, current-rng)
	end := min(total-1, current+rng)

	pages := make([]int, 0, max(0, end-start+1)+4)
	pages = append(pages, 1)
	if start > 2 {
		pages = append(pages, Ellipsis)
	}
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	if end < total-1 {
		pages = append(pages, Ellipsis)
	}
	if total > 1 {
		pages = append(pages, total)
	}
	return pages
}
