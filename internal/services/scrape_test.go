package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"prospect/internal/config"
	"prospect/internal/scraper"
)

// fakeEngine returns a canned result and records whether it was called.
type fakeEngine struct {
	result *scraper.Result
	err    error
	calls  int
}

func (f *fakeEngine) Scrape(ctx context.Context, req scraper.Request) (*scraper.Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server:  config.ServerConfig{Host: "localhost", Port: 3001},
		Uploads: config.UploadsConfig{Dir: t.TempDir()},
		Extract: config.ExtractConfig{PhoneRegion: "US"},
	}
}

func TestScrape_RejectsNonHTTPURLWithoutNetworkAccess(t *testing.T) {
	engine := &fakeEngine{}
	svc := NewScrapeService(testConfig(t), nil, nil)
	svc.engine = engine

	for _, u := range []string{"", "ftp://example.com", "example.com", "HTTP://example.com"} {
		_, err := svc.Scrape(context.Background(), u)
		if !errors.Is(err, ErrInvalidURL) {
			t.Fatalf("url %q: expected ErrInvalidURL, got %v", u, err)
		}
	}

	if engine.calls != 0 {
		t.Fatalf("expected no engine calls for invalid URLs, got %d", engine.calls)
	}
}

func TestScrape_AssemblesRecordFromPage(t *testing.T) {
	html := `<html><head>
		<meta name="description" content="Widgets since 1985.">
		<link rel="icon" href="/fav.png">
	</head><body>
		<a href="https://www.linkedin.com/company/acme">LinkedIn</a>
		<p>Contact us at hello@example.com or (415) 555-0199</p>
	</body></html>`

	engine := &fakeEngine{result: &scraper.Result{
		URL:    "https://www.example.com/about",
		HTML:   html,
		Engine: "http",
	}}

	svc := NewScrapeService(testConfig(t), nil, nil)
	svc.engine = engine

	company, err := svc.Scrape(context.Background(), "https://www.example.com/about")
	if err != nil {
		t.Fatalf("Scrape error: %v", err)
	}

	if company.Name != "example" {
		t.Fatalf("expected name %q, got %q", "example", company.Name)
	}
	if company.WebsiteURL != "https://www.example.com/about" {
		t.Fatalf("unexpected websiteUrl: %q", company.WebsiteURL)
	}
	if company.Description != "Widgets since 1985." {
		t.Fatalf("unexpected description: %q", company.Description)
	}
	if company.Logo != "https://www.example.com/fav.png" {
		t.Fatalf("unexpected logo: %q", company.Logo)
	}
	if company.LinkedinURL != "https://www.linkedin.com/company/acme" {
		t.Fatalf("unexpected linkedinUrl: %q", company.LinkedinURL)
	}
	if company.FacebookURL != "" {
		t.Fatalf("expected absent facebookUrl, got %q", company.FacebookURL)
	}
	if company.Email != "hello@example.com" {
		t.Fatalf("unexpected email: %q", company.Email)
	}
	if len(company.PhoneNumbers) != 1 || company.PhoneNumbers[0] != "(415) 555-0199" {
		t.Fatalf("unexpected phoneNumbers: %v", company.PhoneNumbers)
	}
	if company.ScreenshotURL != "" {
		t.Fatalf("expected no screenshotUrl without screenshot bytes, got %q", company.ScreenshotURL)
	}
}

func TestScrape_MissingFieldsAreNotErrors(t *testing.T) {
	engine := &fakeEngine{result: &scraper.Result{
		URL:    "https://bare.example.com",
		HTML:   "<html><body>nothing here</body></html>",
		Engine: "http",
	}}

	svc := NewScrapeService(testConfig(t), nil, nil)
	svc.engine = engine

	company, err := svc.Scrape(context.Background(), "https://bare.example.com")
	if err != nil {
		t.Fatalf("Scrape error: %v", err)
	}
	if company.Description != "" || company.Logo != "" || company.Email != "" || company.Address != "" {
		t.Fatalf("expected absent optional fields, got %+v", company)
	}
	if len(company.PhoneNumbers) != 0 {
		t.Fatalf("expected no phone numbers, got %v", company.PhoneNumbers)
	}
}

func TestScrape_EngineFailureCollapsesToError(t *testing.T) {
	engine := &fakeEngine{err: errors.New("navigation timeout")}

	svc := NewScrapeService(testConfig(t), nil, nil)
	svc.engine = engine

	_, err := svc.Scrape(context.Background(), "https://slow.example.com")
	if err == nil {
		t.Fatalf("expected error from engine failure")
	}
	if errors.Is(err, ErrInvalidURL) {
		t.Fatalf("engine failure must not be reported as invalid input")
	}
}

func TestScrape_WritesScreenshotWithTimestampName(t *testing.T) {
	cfg := testConfig(t)
	engine := &fakeEngine{result: &scraper.Result{
		URL:        "https://www.example.com",
		HTML:       "<html><body>ok</body></html>",
		Screenshot: []byte("png-bytes"),
		Engine:     "browser",
	}}

	svc := NewScrapeService(cfg, nil, nil)
	svc.engine = engine
	fixed := time.UnixMilli(1700000000000)
	svc.now = func() time.Time { return fixed }

	company, err := svc.Scrape(context.Background(), "https://www.example.com")
	if err != nil {
		t.Fatalf("Scrape error: %v", err)
	}

	want := "http://localhost:3001/uploads/1700000000000.png"
	if company.ScreenshotURL != want {
		t.Fatalf("expected screenshotUrl %q, got %q", want, company.ScreenshotURL)
	}

	data, err := os.ReadFile(filepath.Join(cfg.Uploads.Dir, "1700000000000.png"))
	if err != nil {
		t.Fatalf("screenshot file not written: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("unexpected screenshot contents: %q", data)
	}
}
