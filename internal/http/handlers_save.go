package http

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"prospect/internal/model"
)

// saveHandler persists an arbitrary record payload, typically the
// output of /api/scrape after caller-side edits.
func saveHandler(c *fiber.Ctx) error {
	var req SaveRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Error saving data", err)
	}

	if req.WebsiteURL == "" {
		return fail(c, fiber.StatusBadRequest, "Error saving data", errors.New("missing required field 'websiteUrl'"))
	}

	st := companyStore(c)
	if st == nil {
		return fail(c, fiber.StatusInternalServerError, "Error saving data", errors.New("store not configured"))
	}

	company := model.Company{
		Name:          req.Name,
		Description:   req.Description,
		Logo:          req.Logo,
		FacebookURL:   req.FacebookURL,
		LinkedinURL:   req.LinkedinURL,
		TwitterURL:    req.TwitterURL,
		InstagramURL:  req.InstagramURL,
		Address:       req.Address,
		Email:         req.Email,
		PhoneNumbers:  flattenPhoneNumbers(req.PhoneNumbers),
		ScreenshotURL: req.ScreenshotURL,
		WebsiteURL:    req.WebsiteURL,
	}

	stored, err := st.CreateCompany(c.Context(), company)
	if err != nil {
		requestLogger(c).Error("save company failed", "website_url", req.WebsiteURL, "error", err)
		return fail(c, fiber.StatusInternalServerError, "Error saving data", err)
	}

	return c.Status(fiber.StatusCreated).JSON(Response{
		Message: "Data saved successfully",
		Data:    stored,
	})
}

// flattenPhoneNumbers reconciles the two phone-number shapes seen on
// the save path. The scrape output historically arrives as a list
// containing one inner list of matches; only that first inner list is
// kept and anything after it is discarded. A payload that is already a
// flat list of strings is accepted as-is. Anything else (absent, null,
// malformed) becomes an empty list.
func flattenPhoneNumbers(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return []string{}
	}

	var nested [][]string
	if err := json.Unmarshal(raw, &nested); err == nil {
		if len(nested) == 0 || nested[0] == nil {
			return []string{}
		}
		return nested[0]
	}

	var flat []string
	if err := json.Unmarshal(raw, &flat); err == nil && flat != nil {
		return flat
	}

	return []string{}
}
