// Package fetch retrieves web pages and normalizes them to plain text for
// LLM extraction.
package fetch

import (
	"context"
	"io"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"
)

const (
	defaultTimeout      = 15 * time.Second
	defaultMaxBodyBytes = 512 * 1024

	// htmlSniffWindow is how far into the body we look for an HTML marker
	// when the Content-Type header is missing or wrong.
	htmlSniffWindow = 1000
)

// Fetcher retrieves a URL and returns its normalized text content.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Option configures the fetcher.
type Option func(*PageFetcher)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *PageFetcher) {
		f.client.Timeout = d
	}
}

// WithMaxBodyBytes caps how much of the response body is read.
func WithMaxBodyBytes(n int) Option {
	return func(f *PageFetcher) {
		f.maxBodyBytes = int64(n)
	}
}

// PageFetcher fetches HTML via net/http and strips it to readable text.
type PageFetcher struct {
	client       *http.Client
	maxBodyBytes int64
}

// NewPageFetcher creates a PageFetcher with sensible defaults.
func NewPageFetcher(opts ...Option) *PageFetcher {
	f := &PageFetcher{
		client: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		maxBodyBytes: defaultMaxBodyBytes,
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Fetch retrieves the URL and returns its text content, prefixed with the
// page title as a heading. Non-HTML responses and HTTP failures return an
// error; callers treat that as empty content.
func (f *PageFetcher) Fetch(ctx context.Context, targetURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return "", eris.Wrap(err, "fetch: create request")
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; OutreachBot/1.0)")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "fetch: request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", eris.Errorf("fetch: status %d for %s", resp.StatusCode, targetURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return "", eris.Wrap(err, "fetch: read body")
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if !strings.Contains(contentType, "text/html") && !looksLikeHTML(body) {
		return "", eris.Errorf("fetch: not html (content-type %q) for %s", contentType, targetURL)
	}

	return Normalize(body)
}

// looksLikeHTML scans the first part of the body for an HTML marker. Some
// sites misreport Content-Type, so the header alone is not trusted.
func looksLikeHTML(body []byte) bool {
	window := body
	if len(window) > htmlSniffWindow {
		window = window[:htmlSniffWindow]
	}
	return strings.Contains(strings.ToLower(string(window)), "<html")
}

var (
	spaceRe = regexp.MustCompile(`[ \t]+`)
	nlRe    = regexp.MustCompile(`\n{3,}`)
)

// Normalize parses HTML, drops non-content elements and returns plain text
// with the page title as a heading line.
func Normalize(body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return "", eris.Wrap(err, "fetch: parse html")
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = "No Title"
	}

	doc.Find("script, style, iframe, nav, footer").Remove()

	text := doc.Find("body").Text()
	if text == "" {
		// Fragment without a body element; fall back to the whole document.
		text = doc.Text()
	}

	text = spaceRe.ReplaceAllString(text, " ")
	text = nlRe.ReplaceAllString(text, "\n\n")
	text = strings.TrimSpace(text)

	return "# " + title + "\n\n" + text, nil
}
