package postgres

import (
	"context"
	"database/sql"

	"realtyapi/internal/model"
	"realtyapi/internal/repository"
)

// InquiryPostgres is a PostgreSQL implementation of repository.InquiryRepository.
type InquiryPostgres struct {
	db *sql.DB
}

// NewInquiryPostgres creates a new InquiryPostgres repository.
func NewInquiryPostgres(db *sql.DB) *InquiryPostgres {
	return &InquiryPostgres{db: db}
}

var _ repository.InquiryRepository = (*InquiryPostgres)(nil)

// Create inserts an inquiry row. contact_date defaults to now() in the database.
func (r *InquiryPostgres) Create(ctx context.Context, in *model.Inquiry) (*model.Inquiry, error) {
	const q = `
		INSERT INTO contacts (listing_id, listing_title, name, email, phone, message, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, listing_id, listing_title, name, email, phone, message, user_id, contact_date
	`
	var userID sql.NullInt64
	if in.UserID != nil {
		userID = sql.NullInt64{Int64: *in.UserID, Valid: true}
	}
	row := r.db.QueryRowContext(ctx, q,
		in.ListingID,
		in.ListingTitle,
		in.Name,
		in.Email,
		in.Phone,
		in.Message,
		userID,
	)
	return scanInquiry(row)
}

// ListRecent returns the newest inquiries joined with their listing.
// The stored listing title wins; the live title fills in when it was never recorded.
func (r *InquiryPostgres) ListRecent(ctx context.Context, limit int) ([]model.Inquiry, error) {
	const q = `
		SELECT c.id, c.listing_id, COALESCE(NULLIF(c.listing_title, ''), l.title, ''),
			c.name, c.email, c.phone, c.message, c.user_id, c.contact_date
		FROM contacts c
		LEFT JOIN listings l ON l.id = c.listing_id
		ORDER BY c.contact_date DESC NULLS LAST, c.id DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Inquiry, 0)
	for rows.Next() {
		in, err := scanInquiry(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *in)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanInquiry(row rowScanner) (*model.Inquiry, error) {
	var (
		in          model.Inquiry
		userID      sql.NullInt64
		contactDate sql.NullTime
	)
	if err := row.Scan(
		&in.ID,
		&in.ListingID,
		&in.ListingTitle,
		&in.Name,
		&in.Email,
		&in.Phone,
		&in.Message,
		&userID,
		&contactDate,
	); err != nil {
		return nil, err
	}
	if userID.Valid {
		v := userID.Int64
		in.UserID = &v
	}
	if contactDate.Valid {
		t := contactDate.Time
		in.ContactDate = &t
	}
	return &in, nil
}
