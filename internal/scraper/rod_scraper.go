package scraper

import (
	"context"
	"net/url"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Screenshot clip dimensions. The viewport is sized to match so the
// captured region corresponds to what was laid out.
const (
	viewportWidth  = 1366
	viewportHeight = 1800
)

// requestIdleWindow is how long the network must stay quiet before a
// page load is considered settled. The overall browser timeout caps
// the wait, so a chatty page fails rather than returning a partial
// result.
const requestIdleWindow = 300 * time.Millisecond

// RodScraper renders pages in a real browser via rod. Each Scrape call
// is one browser session: connect, load, extract HTML, screenshot,
// close. The session is released on every exit path.
type RodScraper struct {
	ControlURL string
	Timeout    time.Duration
	UserAgent  string
}

func NewRodScraper(controlURL string, timeout time.Duration) *RodScraper {
	return &RodScraper{ControlURL: controlURL, Timeout: timeout}
}

func (r *RodScraper) Scrape(ctx context.Context, req Request) (*Result, error) {
	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" {
		u.Scheme = "http"
	}

	timeout := r.Timeout
	if req.Timeout > 0 {
		timeout = req.Timeout
	}

	browser := rod.New().Context(ctx).Timeout(timeout)
	if r.ControlURL != "" {
		browser = browser.ControlURL(r.ControlURL)
	}

	if err := browser.Connect(); err != nil {
		return nil, err
	}
	defer browser.MustClose()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, err
	}
	defer page.MustClose()

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             viewportWidth,
		Height:            viewportHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, err
	}

	ua := req.UserAgent
	if ua == "" {
		ua = r.UserAgent
	}
	if ua != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: ua}); err != nil {
			return nil, err
		}
	}

	// Start watching for network idle before navigating so requests
	// fired during load are counted.
	waitIdle := page.WaitRequestIdle(requestIdleWindow, nil, nil, nil)

	if err := page.Navigate(u.String()); err != nil {
		return nil, err
	}
	if err := page.WaitLoad(); err != nil {
		return nil, err
	}
	waitIdle()

	htmlStr, err := page.HTML()
	if err != nil {
		return nil, err
	}

	shot, err := page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
		Clip: &proto.PageViewport{
			X:      0,
			Y:      0,
			Width:  viewportWidth,
			Height: viewportHeight,
			Scale:  1,
		},
	})
	if err != nil {
		return nil, err
	}

	finalURL := u.String()
	if info, err := page.Info(); err == nil && info.URL != "" {
		finalURL = info.URL
	}

	return &Result{
		URL:        finalURL,
		HTML:       htmlStr,
		Screenshot: shot,
		Engine:     "browser",
	}, nil
}
