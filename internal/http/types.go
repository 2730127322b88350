package http

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"prospect/internal/model"
)

// Response is the JSON envelope used by every endpoint: message plus
// data on success, message plus stringified cause on failure.
type Response struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ScrapeRequest is the body of POST /api/scrape.
type ScrapeRequest struct {
	URL string `json:"url"`
}

// SaveRequest is the body of POST /api/save: a record payload,
// typically the output of a scrape, potentially edited by the caller.
// PhoneNumbers is raw because the scrape-output and save-input shapes
// historically differ; see flattenPhoneNumbers.
type SaveRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Logo          string          `json:"logo"`
	FacebookURL   string          `json:"facebookUrl"`
	LinkedinURL   string          `json:"linkedinUrl"`
	TwitterURL    string          `json:"twitterUrl"`
	InstagramURL  string          `json:"instagramUrl"`
	Address       string          `json:"address"`
	Email         string          `json:"email"`
	PhoneNumbers  json.RawMessage `json:"phoneNumbers"`
	ScreenshotURL string          `json:"screenshotUrl"`
	WebsiteURL    string          `json:"websiteUrl"`
}

// DeleteRequest is the body of POST /api/delete.
type DeleteRequest struct {
	IDs []string `json:"ids"`
}

// CompanyStore is the record-store gateway consumed by the handlers.
type CompanyStore interface {
	CreateCompany(ctx context.Context, c model.Company) (model.Company, error)
	GetCompanyByID(ctx context.Context, id uuid.UUID) (model.Company, error)
	ListCompanies(ctx context.Context) ([]model.Company, error)
	DeleteCompanies(ctx context.Context, ids []uuid.UUID) (int64, error)
}

// CompanyScraper runs the extraction pipeline for one URL.
type CompanyScraper interface {
	Scrape(ctx context.Context, url string) (*model.Company, error)
}
