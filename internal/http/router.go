package http

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"prospect/internal/config"
	"prospect/internal/metrics"
	"prospect/internal/services"
	"prospect/internal/store"
)

type Server struct {
	app    *fiber.App
	config *config.Config
	store  *store.Store
	logger *slog.Logger
}

func NewServer(cfg *config.Config, st *store.Store, logger *slog.Logger) *Server {
	app := fiber.New()

	app.Use(cors.New())

	// Redis client for the optional scrape cache and health checks.
	var rdb *redis.Client
	if cfg.Redis.URL != "" {
		if opt, err := redis.ParseURL(cfg.Redis.URL); err == nil {
			rdb = redis.NewClient(opt)
		}
	}

	scrapeSvc := services.NewScrapeService(cfg, logger, rdb)

	// Inject config, store, and scrape service into context for handlers.
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("config", cfg)
		c.Locals("store", CompanyStore(st))
		c.Locals("scraper", CompanyScraper(scrapeSvc))
		return c.Next()
	})

	// Request logging + metrics middleware.
	app.Use(func(c *fiber.Ctx) error {
		start := time.Now()

		reqID := c.Get("X-Request-Id")
		if reqID == "" {
			reqID = uuid.New().String()
		}
		c.Locals("request_id", reqID)
		if logger != nil {
			c.Locals("logger", logger)
		}

		err := c.Next()

		latency := time.Since(start)
		status := c.Response().StatusCode()
		method := c.Method()
		path := c.Path()

		metrics.RecordRequest(method, path, status, latency.Milliseconds())

		if logger != nil {
			logger.Info("request",
				"request_id", reqID,
				"method", method,
				"path", path,
				"status", status,
				"latency_ms", latency.Milliseconds(),
			)
		}

		return err
	})

	// Health endpoints.
	app.Get("/healthz", func(c *fiber.Ctx) error {
		// Shallow health: process is up.
		if c.Query("deep") != "true" {
			return c.JSON(fiber.Map{"status": "ok"})
		}

		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()

		dbStatus := "ok"
		if st == nil || st.DB == nil {
			dbStatus = "disabled"
		} else if err := st.DB.PingContext(ctx); err != nil {
			dbStatus = "error"
		}

		redisStatus := "disabled"
		if rdb != nil {
			if err := rdb.Ping(ctx).Err(); err != nil {
				redisStatus = "error"
			} else {
				redisStatus = "ok"
			}
		}

		browserStatus := "disabled"
		if cfg.Browser.Enabled {
			browserStatus = "enabled"
		}

		status := "ok"
		if dbStatus == "error" || redisStatus == "error" {
			status = "error"
		}

		return c.JSON(fiber.Map{
			"status":  status,
			"db":      dbStatus,
			"redis":   redisStatus,
			"browser": browserStatus,
		})
	})

	// Prometheus-style metrics endpoint.
	app.Get("/metrics", func(c *fiber.Ctx) error {
		c.Type("text/plain")
		return c.SendString(metrics.Export())
	})

	// Captured screenshots are served as plain static files.
	app.Static("/uploads", cfg.Uploads.Dir)

	api := app.Group("/api")
	registerAPIRoutes(api)

	return &Server{
		app:    app,
		config: cfg,
		store:  st,
		logger: logger,
	}
}

func (s *Server) Listen() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	return s.app.Listen(addr)
}

func registerAPIRoutes(group fiber.Router) {
	group.Get("/data", dataListHandler)
	group.Get("/data/:companyId", dataDetailHandler)
	group.Post("/scrape", scrapeHandler)
	group.Post("/save", saveHandler)
	group.Post("/delete", deleteHandler)
	group.Get("/download-csv", downloadCSVHandler)
}
