package scraper

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Request describes a single page load.
type Request struct {
	URL       string
	Timeout   time.Duration
	UserAgent string
}

// Result is the raw outcome of one page load: the rendered HTML, the
// final URL, and (browser engine only) the captured screenshot bytes.
type Result struct {
	URL        string
	HTML       string
	Screenshot []byte
	Engine     string
}

// Scraper is a page-load engine.
type Scraper interface {
	Scrape(ctx context.Context, req Request) (*Result, error)
}

// HTTPScraper fetches pages with a plain HTTP client. It cannot render
// JavaScript or capture screenshots; it is the fallback engine when
// the browser is disabled.
type HTTPScraper struct {
	client *http.Client
}

func NewHTTPScraper(timeout time.Duration) *HTTPScraper {
	return &HTTPScraper{
		client: &http.Client{Timeout: timeout},
	}
}

func (s *HTTPScraper) Scrape(ctx context.Context, req Request) (*Result, error) {
	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" {
		u.Scheme = "http"
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	if req.UserAgent != "" {
		httpReq.Header.Set("User-Agent", req.UserAgent)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	finalURL := u.String()
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &Result{
		URL:    finalURL,
		HTML:   string(body),
		Engine: "http",
	}, nil
}
