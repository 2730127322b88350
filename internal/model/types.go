package model

import (
	"time"

	"github.com/google/uuid"
)

// Company is one scraped company's assembled field set. Every field
// except WebsiteURL is best-effort: extraction that finds nothing
// leaves the field empty, which is a valid terminal state rather than
// an error.
type Company struct {
	ID            uuid.UUID `json:"id,omitempty"`
	Name          string    `json:"name,omitempty"`
	Description   string    `json:"description,omitempty"`
	Logo          string    `json:"logo,omitempty"`
	FacebookURL   string    `json:"facebookUrl,omitempty"`
	LinkedinURL   string    `json:"linkedinUrl,omitempty"`
	TwitterURL    string    `json:"twitterUrl,omitempty"`
	InstagramURL  string    `json:"instagramUrl,omitempty"`
	Address       string    `json:"address,omitempty"`
	Email         string    `json:"email,omitempty"`
	PhoneNumbers  []string  `json:"phoneNumbers"`
	ScreenshotURL string    `json:"screenshotUrl,omitempty"`
	WebsiteURL    string    `json:"websiteUrl"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty"`
}
