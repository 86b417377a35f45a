package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"unicode"

	"golang.org/x/net/idna"

	"batarikh-mirror/config"
)

var (
	ErrMissingURL       = errors.New("missing url")
	ErrInvalidURL       = errors.New("invalid url")
	ErrInvalidProtocol  = errors.New("invalid protocol")
	ErrForbiddenHost    = errors.New("forbidden host")
	ErrUpstream         = errors.New("upstream error")
	errRedirectRejected = errors.New("redirect leaves the media host")
)

const maxDownloadRedirects = 5

// DownloadError carries the HTTP status and the short plain text body for a rejected
// download.
type DownloadError struct {
	Status  int
	Message string
	Err     error
}

func (e *DownloadError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *DownloadError) Unwrap() error { return e.Err }

// DownloadRequest is a validated download target.
type DownloadRequest struct {
	URL      *url.URL
	Filename string
}

// Upstream is an open upstream response body. The caller must close Body.
type Upstream struct {
	Body          io.ReadCloser
	ContentLength int64
}

// DownloadService validates download targets against the media host and fetches them.
type DownloadService struct {
	client      *http.Client
	allowedHost string
	defaultName string
}

// NewDownloadService copies client and restricts its redirects to https on the media
// host.
func NewDownloadService(client *http.Client, mediaHost string, cfg config.DownloadConfig) *DownloadService {
	s := &DownloadService{
		allowedHost: NormalizeHost(mediaHost),
		defaultName: cfg.DefaultName,
	}
	if s.defaultName == "" {
		s.defaultName = "file.pdf"
	}

	var c http.Client
	if client != nil {
		c = *client
	}
	c.CheckRedirect = s.checkRedirect
	s.client = &c
	return s
}

func (s *DownloadService) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxDownloadRedirects {
		return fmt.Errorf("stopped after %d redirects", maxDownloadRedirects)
	}
	if req.URL.Scheme != "https" || NormalizeHost(req.URL.Hostname()) != s.allowedHost {
		return errRedirectRejected
	}
	return nil
}

// AllowedHost returns the normalized media host.
func (s *DownloadService) AllowedHost() string { return s.allowedHost }

// Validate checks the raw url and name query values in order: presence, syntax,
// scheme, host.
func (s *DownloadService) Validate(rawURL, name string) (DownloadRequest, error) {
	if rawURL == "" {
		return DownloadRequest{}, &DownloadError{Status: http.StatusBadRequest, Message: "Missing url", Err: ErrMissingURL}
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" {
		return DownloadRequest{}, &DownloadError{Status: http.StatusBadRequest, Message: "Invalid url", Err: ErrInvalidURL}
	}
	if u.Scheme != "https" {
		return DownloadRequest{}, &DownloadError{Status: http.StatusBadRequest, Message: "Invalid protocol", Err: ErrInvalidProtocol}
	}
	if u.Hostname() == "" {
		return DownloadRequest{}, &DownloadError{Status: http.StatusBadRequest, Message: "Invalid url", Err: ErrInvalidURL}
	}
	if NormalizeHost(u.Hostname()) != s.allowedHost {
		return DownloadRequest{}, &DownloadError{Status: http.StatusForbidden, Message: "Forbidden host", Err: ErrForbiddenHost}
	}

	filename := SanitizeFilename(name)
	if filename == "" {
		filename = s.defaultName
	}
	return DownloadRequest{URL: u, Filename: filename}, nil
}

// Fetch opens the upstream body with ctx, so a client disconnect aborts the transfer.
func (s *DownloadService) Fetch(ctx context.Context, dr DownloadRequest) (*Upstream, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, dr.URL.String(), nil)
	if err != nil {
		return nil, upstreamError(err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, upstreamError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, upstreamError(fmt.Errorf("status %d", resp.StatusCode))
	}
	return &Upstream{Body: resp.Body, ContentLength: resp.ContentLength}, nil
}

func upstreamError(cause error) *DownloadError {
	return &DownloadError{
		Status:  http.StatusBadGateway,
		Message: "Upstream error",
		Err:     fmt.Errorf("%w: %v", ErrUpstream, cause),
	}
}

// NormalizeHost lowercases a hostname and converts it to its IDNA ASCII form.
// Hosts that fail conversion are returned lowercased as they are.
func NormalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(host), "."))
	if ascii, err := idna.Lookup.ToASCII(host); err == nil {
		return ascii
	}
	return host
}

// SanitizeFilename drops characters that could break out of the Content-Disposition
// header value.
func SanitizeFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r == '"', r == '\\', r == '/':
			return -1
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, name)
	return strings.TrimSpace(name)
}

// ContentDisposition builds an attachment header for name. Non-ASCII names get an
// ASCII fallback plus an RFC 5987 filename* parameter.
func ContentDisposition(name string) string {
	ascii := true
	for _, r := range name {
		if r > unicode.MaxASCII {
			ascii = false
			break
		}
	}
	if ascii {
		return `attachment; filename="` + name + `"`
	}

	fallback := strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return '_'
		}
		return r
	}, name)
	encoded := strings.ReplaceAll(url.QueryEscape(name), "+", "%20")
	return `attachment; filename="` + fallback + `"; filename*=UTF-8''` + encoded
}
