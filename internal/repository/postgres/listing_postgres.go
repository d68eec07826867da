package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"realtyapi/internal/model"
	"realtyapi/internal/repository"
)

// ListingPostgres is a PostgreSQL implementation of repository.ListingRepository.
type ListingPostgres struct {
	db *sql.DB
}

// NewListingPostgres creates a new ListingPostgres repository.
func NewListingPostgres(db *sql.DB) *ListingPostgres {
	return &ListingPostgres{db: db}
}

var _ repository.ListingRepository = (*ListingPostgres)(nil)

const listingColumns = `id, realtor_id, title, address, city, state, zipcode, description, price,
		bedrooms, bathrooms, garage, sqft, lot_size, is_published, list_date`

// foreignKeyViolation is the SQLSTATE Postgres reports for a dangling reference.
const foreignKeyViolation = "23503"

// likeEscaper makes user input match literally inside an ILIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(row rowScanner) (*model.Listing, error) {
	var l model.Listing
	if err := row.Scan(
		&l.ID,
		&l.RealtorID,
		&l.Title,
		&l.Address,
		&l.City,
		&l.State,
		&l.Zipcode,
		&l.Description,
		&l.Price,
		&l.Bedrooms,
		&l.Bathrooms,
		&l.Garage,
		&l.Sqft,
		&l.LotSize,
		&l.IsPublished,
		&l.ListDate,
	); err != nil {
		return nil, err
	}
	return &l, nil
}

func collectListings(rows *sql.Rows) ([]model.Listing, error) {
	defer rows.Close()

	items := make([]model.Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Create inserts a listing row. The database assigns id and list_date.
func (r *ListingPostgres) Create(ctx context.Context, l *model.Listing) (*model.Listing, error) {
	q := `
		INSERT INTO listings (realtor_id, title, address, city, state, zipcode, description, price,
			bedrooms, bathrooms, garage, sqft, lot_size, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + listingColumns
	row := r.db.QueryRowContext(ctx, q,
		l.RealtorID,
		l.Title,
		l.Address,
		l.City,
		l.State,
		l.Zipcode,
		l.Description,
		l.Price,
		l.Bedrooms,
		l.Bathrooms,
		l.Garage,
		l.Sqft,
		l.LotSize,
		l.IsPublished,
	)
	stored, err := scanListing(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return nil, fmt.Errorf("%w: %d", repository.ErrUnknownRealtor, l.RealtorID)
		}
		return nil, err
	}
	return stored, nil
}

// FindByID fetches a single listing by its ID.
func (r *ListingPostgres) FindByID(ctx context.Context, id int64) (*model.Listing, error) {
	q := `SELECT ` + listingColumns + ` FROM listings WHERE id = $1`
	return scanListing(r.db.QueryRowContext(ctx, q, id))
}

// ListPublished returns published listings ordered by list date, newest first.
func (r *ListingPostgres) ListPublished(ctx context.Context, f model.ListingFilter) ([]model.Listing, error) {
	where := []string{"is_published = TRUE"}
	args := make([]any, 0, 4)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.Keyword != "" {
		add("title ILIKE $%d", containsPattern(f.Keyword))
	}
	if f.City != "" {
		add("city ILIKE $%d", containsPattern(f.City))
	}
	if f.MinBedrooms > 0 {
		add("bedrooms >= $%d", f.MinBedrooms)
	}
	if f.MaxPrice > 0 {
		add("price <= $%d", f.MaxPrice)
	}

	q := `SELECT ` + listingColumns + ` FROM listings WHERE ` +
		strings.Join(where, " AND ") + ` ORDER BY list_date DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	return collectListings(rows)
}

// ListByRealtor returns all listings owned by a realtor, newest first.
func (r *ListingPostgres) ListByRealtor(ctx context.Context, realtorID int64) ([]model.Listing, error) {
	q := `SELECT ` + listingColumns + ` FROM listings WHERE realtor_id = $1 ORDER BY list_date DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, realtorID)
	if err != nil {
		return nil, err
	}
	return collectListings(rows)
}
