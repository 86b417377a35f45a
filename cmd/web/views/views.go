// Package views renders the server-side HTML pages of the mirror.
package views

import (
	"embed"
	"html/template"
	"io"
	"net/url"
	"path"
	"regexp"
	"strings"

	"batarikh-mirror/models"
	"batarikh-mirror/pagination"
	"batarikh-mirror/services"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	defaultImageWidth  = 800
	defaultImageHeight = 600
)

// Site is the identity shown in the page chrome.
type Site struct {
	Title       string
	Description string
	URL         string
	Channel     string
	TelegramURL string
}

// Renderer executes the embedded templates. It is safe for concurrent use.
type Renderer struct {
	tmpl    *template.Template
	site    Site
	mention *regexp.Regexp
}

type feedData struct {
	Site  Site
	Feed  services.FeedPage
	Cards []card
	Empty string
	Canon string
}

type card struct {
	ID         int64
	MediaType  string
	Badge      string
	Date       string
	ISODate    string
	Content    string
	MediaURL   string
	Width      int
	Height     int
	IsImage    bool
	IsVideo    bool
	IsAudio    bool
	IsDocument bool
	Download   string
}

func New(site Site) (*Renderer, error) {
	funcs := template.FuncMap{
		"fa": FaNumber,
	}
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	r := &Renderer{tmpl: tmpl, site: site}
	if site.Channel != "" {
		r.mention = channelMentionRe(site.Channel)
	}
	return r, nil
}

// Feed renders the feed page.
func (r *Renderer) Feed(w io.Writer, fp services.FeedPage) error {
	data := feedData{
		Site:  r.site,
		Feed:  fp,
		Cards: make([]card, 0, len(fp.Posts)),
		Empty: services.EmptyFeedMessage,
		Canon: r.site.URL + pagination.BuildHref(fp.Type.String(), fp.Page),
	}
	for _, p := range fp.Posts {
		data.Cards = append(data.Cards, r.card(p))
	}
	return r.tmpl.ExecuteTemplate(w, "feed.html", data)
}

// Error renders the generic error page.
func (r *Renderer) Error(w io.Writer) error {
	return r.tmpl.ExecuteTemplate(w, "error.html", struct{ Site Site }{r.site})
}

func (r *Renderer) card(p models.Post) card {
	content := p.Text()
	if r.mention != nil {
		content = r.mention.ReplaceAllString(content, "")
	}

	c := card{
		ID:        p.ID,
		MediaType: p.MediaType.String(),
		Badge:     p.MediaType.Label(),
		Date:      JalaliDate(p.CreatedAt),
		ISODate:   p.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
		Content:   strings.TrimSpace(content),
	}
	if u, ok := p.Media(); ok {
		c.MediaURL = u
		switch p.MediaType {
		case models.MediaImage:
			c.IsImage = true
		case models.MediaVideo:
			c.IsVideo = true
		case models.MediaAudio:
			c.IsAudio = true
		case models.MediaDocument:
			c.IsDocument = true
			c.Download = downloadHref(u)
		}
	}
	c.Width, c.Height = p.Dimensions(defaultImageWidth, defaultImageHeight)
	return c
}

// downloadHref sends PDFs through the same-origin download proxy, which serves them as
// application/pdf. Any other document links straight to the media URL.
func downloadHref(mediaURL string) string {
	parsed, err := url.Parse(mediaURL)
	if err != nil {
		return mediaURL
	}
	name := path.Base(parsed.Path)
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return mediaURL
	}
	q := url.Values{"url": {mediaURL}, "name": {name}}
	return "/download?" + q.Encode()
}
