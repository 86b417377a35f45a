package services

import (
	"encoding/xml"
	"strings"
	"time"

	"batarikh-mirror/models"
	"batarikh-mirror/pagination"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// SitemapURL is one <url> entry.
type SitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapService lists the crawlable feed pages. The page count is a fixed bound, not
// the live total.
type SitemapService struct {
	siteURL  string
	maxPages int
	now      func() time.Time
}

func NewSitemapService(siteURL string, maxPages int) *SitemapService {
	if maxPages < 1 {
		maxPages = 1
	}
	return &SitemapService{
		siteURL:  strings.TrimRight(siteURL, "/"),
		maxPages: maxPages,
		now:      time.Now,
	}
}

func (s *SitemapService) URLs() []SitemapURL {
	lastMod := s.now().UTC().Format(time.RFC3339)
	entry := func(href, freq string, prio float64) SitemapURL {
		return SitemapURL{Loc: s.siteURL + href, LastMod: lastMod, ChangeFreq: freq, Priority: prio}
	}

	urls := []SitemapURL{entry("/", "daily", 1.0)}
	for _, t := range models.MediaTypes {
		urls = append(urls, entry(pagination.BuildHref(t.String(), 1), "weekly", 0.6))
	}
	for p := 2; p <= s.maxPages; p++ {
		urls = append(urls, entry(pagination.BuildHref("", p), "weekly", 0.5))
		for _, t := range models.MediaTypes {
			urls = append(urls, entry(pagination.BuildHref(t.String(), p), "weekly", 0.5))
		}
	}
	return urls
}

// XML renders the sitemap document including the XML declaration.
func (s *SitemapService) XML() ([]byte, error) {
	out, err := xml.MarshalIndent(urlSet{XMLNS: sitemapNS, URLs: s.URLs()}, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

// RobotsTxt allows crawling except for the download proxy.
func (s *SitemapService) RobotsTxt() string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("Disallow: /download\n")
	b.WriteString("\nSitemap: " + s.siteURL + "/sitemap.xml\n")
	return b.String()
}
