package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"prospect/internal/services"
)

// scrapeHandler runs extraction for one URL and returns the assembled
// record with its screenshot reference. It does not persist; saving is
// an explicit separate call.
func scrapeHandler(c *fiber.Ctx) error {
	var req ScrapeRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid URL provided. Please provide a valid URL.", err)
	}

	svc := companyScraper(c)
	if svc == nil {
		return fail(c, fiber.StatusInternalServerError, "Error scraping website", errors.New("scraper not configured"))
	}

	company, err := svc.Scrape(c.Context(), req.URL)
	if err != nil {
		if errors.Is(err, services.ErrInvalidURL) {
			return fail(c, fiber.StatusBadRequest, "Invalid URL provided. Please provide a valid URL.", nil)
		}
		requestLogger(c).Error("scrape failed", "url", req.URL, "error", err)
		return fail(c, fiber.StatusInternalServerError, "Error scraping website", err)
	}

	return c.JSON(Response{
		Message: "Data scraped successfully",
		Data:    company,
	})
}
