package pagination

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"batarikh-mirror/models"
)

const E = Ellipsis

func TestMakePages(t *testing.T) {
	cases := []struct {
		current, total int
		want           []int
	}{
		{1, 1, []int{1}},
		{1, 2, []int{1, 2}},
		{2, 2, []int{1, 2}},
		{5, 10, []int{1, E, 3, 4, 5, 6, 7, E, 10}},
		{1, 10, []int{1, 2, 3, E, 10}},
		{10, 10, []int{1, E, 8, 9, 10}},
		{4, 10, []int{1, 2, 3, 4, 5, 6, E, 10}},
		{6, 10, []int{1, E, 4, 5, 6, 7, 8, E, 10}},
		{7, 10, []int{1, E, 5, 6, 7, 8, 9, 10}},
		{3, 7, []int{1, 2, 3, 4, 5, E, 7}},
		{4, 7, []int{1, 2, 3, 4, 5, 6, 7}},
		{50, 3, []int{1, E, 3}},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d_of_%d", tc.current, tc.total), func(t *testing.T) {
			assert.Equal(t, tc.want, MakePages(tc.current, tc.total, DefaultRange))
		})
	}
}

func TestMakePagesInvariants(t *testing.T) {
	for total := 1; total <= 30; total++ {
		for _, current := range pageProbes(total) {
			pages := MakePages(current, total, DefaultRange)
			require.NotEmpty(t, pages)

			assert.Equal(t, 1, pages[0], "first page %d/%d", current, total)
			if total > 1 {
				assert.Equal(t, total, pages[len(pages)-1], "last page %d/%d", current, total)
			}

			prev := 0
			for i, p := range pages {
				if p == Ellipsis {
					require.Greater(t, i, 0)
					assert.NotEqual(t, Ellipsis, pages[i-1], "adjacent ellipses %d/%d: %v", current, total, pages)
					continue
				}
				assert.Greater(t, p, prev, "ascending %d/%d: %v", current, total, pages)
				assert.LessOrEqual(t, p, total)
				prev = p
			}

			if current <= total {
				assert.Contains(t, pages, current)
			}
		}
	}
}

// pageProbes covers every page up to a few past the end, then pages far beyond it.
func pageProbes(total int) []int {
	var out []int
	for current := 1; current <= total+3; current++ {
		out = append(out, current)
	}
	return append(out, total+10, total*5+7, 1000)
}

func TestMakePagesFarPastEnd(t *testing.T) {
	assert.Equal(t, []int{1, E}, MakePages(1000, 1, DefaultRange))
	assert.Equal(t, []int{1, E, 2}, MakePages(1000, 2, DefaultRange))
	assert.Equal(t, []int{1, E, 10}, MakePages(1000, 10, DefaultRange))
	assert.Equal(t, []int{1, E, 10}, MakePages(1000, 10, 0))
}

func TestMakePagesZeroRange(t *testing.T) {
	assert.Equal(t, []int{1, E, 5, E, 10}, MakePages(5, 10, 0))
	assert.Equal(t, []int{1, 2, E, 10}, MakePages(2, 10, 0))
}

func TestParsePage(t *testing.T) {
	cases := map[string]int{
		"":        1,
		"abc":     1,
		"0":       1,
		"-5":      1,
		"1":       1,
		"3":       3,
		" 7 ":     7,
		"2.5":     1,
		"9999999": MaxPage,
	}
	for raw, want := range cases {
		assert.Equal(t, want, ParsePage(raw), "raw=%q", raw)
	}
}

func TestParseRequest(t *testing.T) {
	r := ParseRequest("video", "3")
	assert.Equal(t, models.MediaVideo, r.Type)
	assert.Equal(t, 3, r.Page)

	r = ParseRequest("invalid", "x")
	assert.Equal(t, models.MediaType(""), r.Type)
	assert.Equal(t, 1, r.Page)
}

func TestRangeAndOffset(t *testing.T) {
	from, to := PageRequest{Page: 1}.Range(DefaultPageSize)
	assert.Equal(t, 0, from)
	assert.Equal(t, 17, to)

	from, to = PageRequest{Page: 3}.Range(DefaultPageSize)
	assert.Equal(t, 36, from)
	assert.Equal(t, 53, to)

	assert.Equal(t, 0, PageRequest{}.Offset(DefaultPageSize))
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 18))
	assert.Equal(t, 1, TotalPages(18, 18))
	assert.Equal(t, 2, TotalPages(19, 18))
	assert.Equal(t, 6, TotalPages(100, 18))
	assert.Equal(t, 1, TotalPages(100, 0))
}
