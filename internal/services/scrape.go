package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"prospect/internal/config"
	"prospect/internal/extract"
	"prospect/internal/metrics"
	"prospect/internal/model"
	"prospect/internal/scraper"
)

// ErrInvalidURL marks a scrape input that was rejected before any
// network access.
var ErrInvalidURL = errors.New("invalid URL: must start with http")

// ScrapeService runs the extraction pipeline for one URL: load the
// page, run every field extractor, persist the screenshot, assemble a
// Company. It does not write to the record store; persistence is a
// separate explicit step.
type ScrapeService struct {
	cfg    *config.Config
	pats   extract.Patterns
	logger *slog.Logger
	cache  *redis.Client

	// engine overrides the config-selected page-load engine; used by
	// tests to avoid a real browser.
	engine scraper.Scraper

	// now is swappable for deterministic screenshot filenames in tests.
	now func() time.Time
}

func NewScrapeService(cfg *config.Config, logger *slog.Logger, cache *redis.Client) *ScrapeService {
	return &ScrapeService{
		cfg:    cfg,
		pats:   extract.DefaultPatterns(),
		logger: logger,
		cache:  cache,
		now:    time.Now,
	}
}

// Scrape produces a Company for the given URL or fails as a unit. Any
// subset of fields may be absent in the result; only session-level
// failures (navigation, browser, filesystem) are errors.
func (s *ScrapeService) Scrape(ctx context.Context, rawURL string) (*model.Company, error) {
	if rawURL == "" || !strings.HasPrefix(rawURL, "http") {
		return nil, ErrInvalidURL
	}

	if c := s.cacheGet(ctx, rawURL); c != nil {
		return c, nil
	}

	res, err := s.pickEngine().Scrape(ctx, scraper.Request{
		URL:       rawURL,
		UserAgent: s.cfg.Browser.UserAgent,
	})
	if err != nil {
		metrics.RecordScrape(s.engineLabel(), false)
		return nil, fmt.Errorf("load %s: %w", rawURL, err)
	}
	metrics.RecordScrape(res.Engine, true)

	page, err := extract.NewPage(res.HTML, res.URL)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rawURL, err)
	}

	company := s.assemble(rawURL, page)

	if len(res.Screenshot) > 0 {
		shotURL, err := s.saveScreenshot(res.Screenshot)
		if err != nil {
			return nil, fmt.Errorf("save screenshot for %s: %w", rawURL, err)
		}
		company.ScreenshotURL = shotURL
	}

	s.cachePut(ctx, rawURL, company)

	return company, nil
}

// assemble runs every field extractor against the loaded page. The
// extractors are independent and order-insensitive; a miss leaves the
// field empty rather than failing the scrape.
func (s *ScrapeService) assemble(rawURL string, page extract.Page) *model.Company {
	return &model.Company{
		Name:         extract.NameFromURL(s.pats, rawURL),
		WebsiteURL:   rawURL,
		Description:  extract.MetaContent(page, "description"),
		Logo:         extract.Logo(page),
		FacebookURL:  extract.SocialLink(page, "facebook.com"),
		LinkedinURL:  extract.SocialLink(page, "linkedin.com"),
		TwitterURL:   extract.SocialLink(page, "twitter.com"),
		InstagramURL: extract.SocialLink(page, "instagram.com"),
		Address:      extract.Address(s.pats, page),
		Email:        extract.Email(s.pats, page),
		PhoneNumbers: extract.PhoneNumbers(s.pats, page, s.cfg.Extract.PhoneRegion),
	}
}

func (s *ScrapeService) engineLabel() string {
	if s.cfg.Browser.Enabled {
		return "browser"
	}
	return "http"
}

func (s *ScrapeService) pickEngine() scraper.Scraper {
	if s.engine != nil {
		return s.engine
	}

	timeout := time.Duration(s.cfg.Browser.TimeoutMs) * time.Millisecond
	if s.cfg.Browser.Enabled {
		return scraper.NewRodScraper(s.cfg.Browser.ControlURL, timeout)
	}
	return scraper.NewHTTPScraper(timeout)
}

// saveScreenshot writes the PNG bytes under the uploads directory with
// a timestamp-derived name and returns the public URL for it.
func (s *ScrapeService) saveScreenshot(data []byte) (string, error) {
	if err := os.MkdirAll(s.cfg.Uploads.Dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%d.png", s.now().UnixMilli())
	if err := os.WriteFile(filepath.Join(s.cfg.Uploads.Dir, name), data, 0o644); err != nil {
		return "", err
	}

	return s.publicBase() + "/uploads/" + name, nil
}

func (s *ScrapeService) publicBase() string {
	if s.cfg.Server.PublicURL != "" {
		return strings.TrimRight(s.cfg.Server.PublicURL, "/")
	}
	return fmt.Sprintf("http://%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
}

func (s *ScrapeService) cacheKey(rawURL string) string {
	return "prospect:scrape:" + rawURL
}

func (s *ScrapeService) cacheGet(ctx context.Context, rawURL string) *model.Company {
	if s.cache == nil || !s.cfg.Cache.Enabled {
		return nil
	}

	payload, err := s.cache.Get(ctx, s.cacheKey(rawURL)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) && s.logger != nil {
			s.logger.Warn("scrape cache read failed", "url", rawURL, "error", err)
		}
		return nil
	}

	var c model.Company
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil
	}
	return &c
}

func (s *ScrapeService) cachePut(ctx context.Context, rawURL string, c *model.Company) {
	if s.cache == nil || !s.cfg.Cache.Enabled {
		return
	}

	payload, err := json.Marshal(c)
	if err != nil {
		return
	}

	ttl := time.Duration(s.cfg.Cache.TTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	if err := s.cache.Set(ctx, s.cacheKey(rawURL), payload, ttl).Err(); err != nil && s.logger != nil {
		s.logger.Warn("scrape cache write failed", "url", rawURL, "error", err)
	}
}
