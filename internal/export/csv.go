// Package export flattens the persisted record set into CSV.
package export

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"prospect/internal/model"
)

// Header is the fixed column order of the export. Callers rely on
// this order staying stable.
var Header = []string{
	"Name",
	"Description",
	"Logo",
	"Facebook URL",
	"LinkedIn URL",
	"Twitter URL",
	"Instagram URL",
	"Address",
	"Email",
	"Phone Numbers",
	"Website URL",
}

// Row maps one record to one CSV row. Absent fields render as empty
// cells; the phone list is joined with a comma.
func Row(c model.Company) []string {
	return []string{
		c.Name,
		c.Description,
		c.Logo,
		c.FacebookURL,
		c.LinkedinURL,
		c.TwitterURL,
		c.InstagramURL,
		c.Address,
		c.Email,
		strings.Join(c.PhoneNumbers, ","),
		c.WebsiteURL,
	}
}

// Write streams a full snapshot of the given records as CSV: the
// header line plus exactly one row per record.
func Write(w io.Writer, companies []model.Company) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, c := range companies {
		if err := cw.Write(Row(c)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile writes the snapshot to path, creating or truncating it.
func WriteFile(path string, companies []model.Company) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Write(f, companies); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
