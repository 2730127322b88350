package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// deleteHandler bulk-deletes records by identifier set in a single
// store call; ids that do not exist (or do not even parse) are simply
// not counted.
func deleteHandler(c *fiber.Ctx) error {
	var req DeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Error deleting data", err)
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		if id, err := uuid.Parse(raw); err == nil {
			ids = append(ids, id)
		}
	}

	st := companyStore(c)
	if st == nil {
		return fail(c, fiber.StatusInternalServerError, "Error deleting data", errors.New("store not configured"))
	}

	deleted, err := st.DeleteCompanies(c.Context(), ids)
	if err != nil {
		requestLogger(c).Error("delete companies failed", "requested", len(req.IDs), "error", err)
		return fail(c, fiber.StatusInternalServerError, "Error deleting data", err)
	}

	return c.JSON(Response{
		Message: "Data deleted successfully",
		Data:    fiber.Map{"deleted": deleted},
	})
}
