package http

import (
	"database/sql"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// dataListHandler returns every persisted record.
func dataListHandler(c *fiber.Ctx) error {
	st := companyStore(c)
	if st == nil {
		return fail(c, fiber.StatusInternalServerError, "Error fetching data", errors.New("store not configured"))
	}

	companies, err := st.ListCompanies(c.Context())
	if err != nil {
		requestLogger(c).Error("list companies failed", "error", err)
		return fail(c, fiber.StatusInternalServerError, "Error fetching data", err)
	}

	return c.JSON(Response{
		Message: "Data fetched successfully",
		Data:    companies,
	})
}

// dataDetailHandler returns one record by identifier. An id that does
// not parse as a UUID cannot match anything, so it is reported the
// same way as a missing record.
func dataDetailHandler(c *fiber.Ctx) error {
	st := companyStore(c)
	if st == nil {
		return fail(c, fiber.StatusInternalServerError, "Error fetching company details", errors.New("store not configured"))
	}

	id, err := uuid.Parse(c.Params("companyId"))
	if err != nil {
		return fail(c, fiber.StatusNotFound, "Company not found", nil)
	}

	company, err := st.GetCompanyByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fail(c, fiber.StatusNotFound, "Company not found", nil)
		}
		requestLogger(c).Error("fetch company failed", "company_id", id, "error", err)
		return fail(c, fiber.StatusInternalServerError, "Error fetching company details", err)
	}

	return c.JSON(Response{
		Message: "Company details fetched successfully",
		Data:    company,
	})
}
