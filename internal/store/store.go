package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"prospect/internal/model"
)

// Store wraps access to the companies table on a shared *sql.DB.
type Store struct {
	DB *sql.DB
}

func New(database *sql.DB) *Store {
	return &Store{DB: database}
}

const companyColumns = `id, name, description, logo, facebook_url, linkedin_url, twitter_url,
	instagram_url, address, email, phone_numbers, screenshot_url, website_url, created_at, updated_at`

// CreateCompany inserts a record and returns it with its identifier
// and timestamps populated.
func (s *Store) CreateCompany(ctx context.Context, c model.Company) (model.Company, error) {
	phones, err := marshalPhones(c.PhoneNumbers)
	if err != nil {
		return model.Company{}, fmt.Errorf("encode phone numbers: %w", err)
	}

	row := s.DB.QueryRowContext(ctx, `
		INSERT INTO companies (
			id, name, description, logo, facebook_url, linkedin_url, twitter_url,
			instagram_url, address, email, phone_numbers, screenshot_url, website_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+companyColumns,
		uuid.New(), c.Name, c.Description, c.Logo, c.FacebookURL, c.LinkedinURL,
		c.TwitterURL, c.InstagramURL, c.Address, c.Email, phones, c.ScreenshotURL, c.WebsiteURL,
	)

	return scanCompany(row)
}

// GetCompanyByID fetches one record. The caller maps sql.ErrNoRows to
// its not-found representation.
func (s *Store) GetCompanyByID(ctx context.Context, id uuid.UUID) (model.Company, error) {
	row := s.DB.QueryRowContext(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	return scanCompany(row)
}

// ListCompanies returns every record, newest first.
func (s *Store) ListCompanies(ctx context.Context) ([]model.Company, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT `+companyColumns+` FROM companies ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies := make([]model.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}
	return companies, rows.Err()
}

// DeleteCompanies removes records by identifier in one statement and
// returns how many existed. Unknown ids are ignored, so a partial
// match never fails the call.
func (s *Store) DeleteCompanies(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
		args[i] = id
	}

	res, err := s.DB.ExecContext(ctx,
		`DELETE FROM companies WHERE id IN (`+strings.Join(placeholders, ", ")+`)`, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCompany(row rowScanner) (model.Company, error) {
	var (
		c         model.Company
		phonesRaw []byte
		createdAt time.Time
		updatedAt time.Time
	)

	err := row.Scan(
		&c.ID, &c.Name, &c.Description, &c.Logo, &c.FacebookURL, &c.LinkedinURL,
		&c.TwitterURL, &c.InstagramURL, &c.Address, &c.Email, &phonesRaw,
		&c.ScreenshotURL, &c.WebsiteURL, &createdAt, &updatedAt,
	)
	if err != nil {
		return model.Company{}, err
	}

	if len(phonesRaw) > 0 {
		if err := json.Unmarshal(phonesRaw, &c.PhoneNumbers); err != nil {
			return model.Company{}, fmt.Errorf("decode phone numbers: %w", err)
		}
	}
	if c.PhoneNumbers == nil {
		c.PhoneNumbers = []string{}
	}
	c.CreatedAt = createdAt
	c.UpdatedAt = updatedAt

	return c, nil
}

func marshalPhones(phones []string) ([]byte, error) {
	if phones == nil {
		phones = []string{}
	}
	return json.Marshal(phones)
}
