package postgres

import (
	"context"
	"database/sql"

	"realtyapi/internal/model"
	"realtyapi/internal/repository"
)

// PropertyImagePostgres is a PostgreSQL implementation of repository.PropertyImageRepository.
type PropertyImagePostgres struct {
	db *sql.DB
}

// NewPropertyImagePostgres creates a new PropertyImagePostgres repository.
func NewPropertyImagePostgres(db *sql.DB) *PropertyImagePostgres {
	return &PropertyImagePostgres{db: db}
}

var _ repository.PropertyImageRepository = (*PropertyImagePostgres)(nil)

// Create inserts a new image row and returns the stored record.
func (r *PropertyImagePostgres) Create(ctx context.Context, img *model.PropertyImage) (*model.PropertyImage, error) {
	const q = `
		INSERT INTO property_images (id, listing_id, filename, storage_path, size, content_type, featured, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, listing_id, filename, storage_path, size, content_type, featured, sort_order, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		img.ID,
		img.ListingID,
		img.Filename,
		img.StoragePath,
		img.Size,
		img.ContentType,
		img.Featured,
		img.SortOrder,
		img.CreatedAt,
	)
	var out model.PropertyImage
	if err := row.Scan(
		&out.ID,
		&out.ListingID,
		&out.Filename,
		&out.StoragePath,
		&out.Size,
		&out.ContentType,
		&out.Featured,
		&out.SortOrder,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListByListing returns images of one listing, featured image first.
func (r *PropertyImagePostgres) ListByListing(ctx context.Context, listingID int64) ([]model.PropertyImage, error) {
	const q = `
		SELECT id, listing_id, filename, storage_path, size, content_type, featured, sort_order, created_at
		FROM property_images
		WHERE listing_id = $1
		ORDER BY sort_order ASC, created_at ASC
	`
	rows, err := r.db.QueryContext(ctx, q, listingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.PropertyImage, 0)
	for rows.Next() {
		var img model.PropertyImage
		if err := rows.Scan(
			&img.ID,
			&img.ListingID,
			&img.Filename,
			&img.StoragePath,
			&img.Size,
			&img.ContentType,
			&img.Featured,
			&img.SortOrder,
			&img.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, img)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes an image row by ID. It does not return an error if the row does not exist.
func (r *PropertyImagePostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM property_images WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
