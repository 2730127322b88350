package http

import (
	"errors"
	"os"

	"github.com/gofiber/fiber/v2"

	"prospect/internal/export"
	"prospect/internal/metrics"
)

// downloadCSVHandler streams a full snapshot of the record set as a
// CSV attachment. The snapshot is written to a temp file which is
// removed once the handler finishes; on Unix the open descriptor keeps
// the in-flight download valid.
func downloadCSVHandler(c *fiber.Ctx) error {
	st := companyStore(c)
	if st == nil {
		return fail(c, fiber.StatusInternalServerError, "Error downloading CSV", errors.New("store not configured"))
	}

	companies, err := st.ListCompanies(c.Context())
	if err != nil {
		requestLogger(c).Error("csv export failed", "error", err)
		return fail(c, fiber.StatusInternalServerError, "Error downloading CSV", err)
	}

	tmp, err := os.CreateTemp("", "companies-*.csv")
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Error downloading CSV", err)
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	if err := export.WriteFile(tmp.Name(), companies); err != nil {
		requestLogger(c).Error("csv export failed", "error", err)
		return fail(c, fiber.StatusInternalServerError, "Error downloading CSV", err)
	}

	metrics.RecordCSVExport()

	return c.Download(tmp.Name(), "companies.csv")
}
