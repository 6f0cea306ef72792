// Package fetch resolves a URL to query text by downloading the page
// and extracting its leading paragraphs.
package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	// DefaultTimeout bounds the outbound page fetch.
	DefaultTimeout = 5 * time.Second

	// DefaultMaxParagraphs is how many leading <p> blocks contribute
	// to the extracted text.
	DefaultMaxParagraphs = 5
)

// IsValidURL reports whether raw has both a scheme and a host.
func IsValidURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// Extractor downloads pages and extracts paragraph text.
type Extractor struct {
	client        *http.Client
	maxParagraphs int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithTimeout overrides the fetch timeout.
func WithTimeout(d time.Duration) Option {
	return func(e *Extractor) { e.client.Timeout = d }
}

// WithMaxParagraphs overrides how many paragraphs are extracted.
func WithMaxParagraphs(n int) Option {
	return func(e *Extractor) { e.maxParagraphs = n }
}

// NewExtractor creates an Extractor with the default timeout and
// paragraph limit.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		client:        &http.Client{Timeout: DefaultTimeout},
		maxParagraphs: DefaultMaxParagraphs,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Text fetches rawURL and returns the text of its first paragraphs,
// joined with single spaces. The caller is expected to have checked
// IsValidURL first; network, status, and parse failures all return an
// error.
func (e *Extractor) Text(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("fetch: create request: %w", err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: get %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch: %s returned status %d", rawURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("fetch: parse %s: %w", rawURL, err)
	}

	var parts []string
	doc.Find("p").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if i >= e.maxParagraphs {
			return false
		}
		parts = append(parts, s.Text())
		return true
	})
	return strings.Join(parts, " "), nil
}
