package http

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

func requestLogger(c *fiber.Ctx) *slog.Logger {
	if val := c.Locals("logger"); val != nil {
		if l, ok := val.(*slog.Logger); ok {
			return l
		}
	}
	return slog.Default()
}

func companyStore(c *fiber.Ctx) CompanyStore {
	if val := c.Locals("store"); val != nil {
		if st, ok := val.(CompanyStore); ok {
			return st
		}
	}
	return nil
}

func companyScraper(c *fiber.Ctx) CompanyScraper {
	if val := c.Locals("scraper"); val != nil {
		if s, ok := val.(CompanyScraper); ok {
			return s
		}
	}
	return nil
}

func fail(c *fiber.Ctx, status int, message string, err error) error {
	resp := Response{Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	return c.Status(status).JSON(resp)
}
